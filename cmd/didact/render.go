package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/didact/internal/config"
	"github.com/vango-dev/didact/internal/demo"
	"github.com/vango-dev/didact/internal/scene"
	"github.com/vango-dev/didact/pkg/fiber"
	"github.com/vango-dev/didact/pkg/host"
	"github.com/vango-dev/didact/pkg/render"
	"github.com/vango-dev/didact/pkg/sched"
	"github.com/vango-dev/didact/pkg/vdom"
)

func renderCmd(flags *globalFlags) *cobra.Command {
	var (
		pretty bool
		units  int
		stats  bool
	)

	cmd := &cobra.Command{
		Use:   "render <scene.yaml>",
		Short: "Render a YAML scene to HTML",
		Long: `Render a YAML scene file through the engine and print the
committed host tree as HTML. Use "-" to read the scene from stdin.

Scenes may use the demo components App and Btn.

Examples:
  didact render page.yaml
  didact render page.yaml --pretty
  didact render page.yaml --units 1 --stats`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("pretty") {
				cfg.Render.Pretty = pretty
			}
			return runRender(cmd, cfg, args[0], units, stats)
		},
	}

	cmd.Flags().BoolVarP(&pretty, "pretty", "p", false, "Indent the HTML output (default from didact.json)")
	cmd.Flags().IntVarP(&units, "units", "u", 0, "Work units per idle slice; 0 renders in one pass")
	cmd.Flags().BoolVar(&stats, "stats", false, "Print commit statistics to stderr")

	return cmd
}

func runRender(cmd *cobra.Command, cfg *config.Config, path string, units int, stats bool) error {
	logger := newLogger(cmd, cfg)
	d := demo.New(logger)
	components := scene.Components{"App": d.App, "Btn": d.Btn}

	var (
		s   *scene.Scene
		err error
	)
	if path == "-" {
		s, err = scene.Read("stdin", cmd.InOrStdin(), components)
	} else {
		s, err = scene.LoadFile(path, components)
	}
	if err != nil {
		return err
	}

	root, err := renderScene(cmd, cfg, s.Root, units, stats)
	if err != nil {
		return err
	}

	r := render.NewRenderer(render.RendererConfig{Pretty: cfg.Render.Pretty, Indent: cfg.Render.Indent})
	if err := r.RenderToWriter(cmd.OutOrStdout(), root); err != nil {
		return err
	}
	if !cfg.Render.Pretty {
		fmt.Fprintln(cmd.OutOrStdout())
	}
	return nil
}

// renderScene commits el into a fresh memory host. With units > 0 the pass
// runs on a manual scheduler, units work units per slice.
func renderScene(cmd *cobra.Command, cfg *config.Config, el *vdom.Element, units int, stats bool) (*host.MemNode, error) {
	mem := host.NewMemory()
	root := mem.NewContainer("root")

	opts := []fiber.Option{
		fiber.WithLogger(newLogger(cmd, cfg)),
		fiber.WithYieldThreshold(cfg.YieldThresholdDuration()),
	}
	if stats {
		opts = append(opts, fiber.WithOnCommit(func(st fiber.CommitStats) {
			info(cmd.ErrOrStderr(), "%s", st)
		}))
	}
	var manual *sched.Manual
	if units > 0 {
		manual = sched.NewManual()
		opts = append(opts, fiber.WithScheduler(manual))
	}

	engine := fiber.New(mem, opts...)
	defer engine.Close()

	if err := engine.Render(el, root); err != nil {
		return nil, err
	}
	if manual == nil {
		if err := engine.Flush(); err != nil {
			return nil, err
		}
		return root, nil
	}

	slices := 0
	for !engine.Idle() {
		if manual.RunIdle(sched.Units(units)) == 0 {
			break
		}
		slices++
	}
	if err := engine.Err(); err != nil {
		return nil, err
	}
	if stats {
		info(cmd.ErrOrStderr(), "%d slices of %d units", slices, units)
	}
	return root, nil
}
