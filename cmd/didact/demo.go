package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/didact/internal/config"
	"github.com/vango-dev/didact/internal/demo"
	"github.com/vango-dev/didact/pkg/fiber"
	"github.com/vango-dev/didact/pkg/host"
	"github.com/vango-dev/didact/pkg/render"
)

func demoCmd(flags *globalFlags) *cobra.Command {
	var (
		name   string
		clicks []int
		add    int
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the counter demo",
		Long: `Run the counter demo: an App with a heading counter and three
buttons with their own counts. Scripted clicks are dispatched to the
buttons in order, then the App counter is advanced. The HTML of every
commit is printed.

Examples:
  didact demo
  didact demo --name ada --click 0,2,2 --add 5
  didact demo --log-level warn`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			return runDemo(cmd, cfg, name, clicks, add)
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "foso", "Name shown in the heading")
	cmd.Flags().IntSliceVar(&clicks, "click", nil, "Button indexes to click, in order")
	cmd.Flags().IntVar(&add, "add", 0, "Amount to add to the App counter after the clicks")

	return cmd
}

func runDemo(cmd *cobra.Command, cfg *config.Config, name string, clicks []int, add int) error {
	out := cmd.OutOrStdout()
	logger := newLogger(cmd, cfg)

	mem := host.NewMemory()
	root := mem.NewContainer("root")
	html := render.NewRenderer(render.RendererConfig{Pretty: cfg.Render.Pretty, Indent: cfg.Render.Indent})

	engine := fiber.New(mem,
		fiber.WithLogger(logger),
		fiber.WithOnCommit(func(st fiber.CommitStats) {
			markup, err := html.RenderToString(root)
			if err != nil {
				logger.Error("render failed", "error", err)
				return
			}
			fmt.Fprintf(out, "pass %d (%s): %s\n", st.Pass, st.Trigger, markup)
		}),
	)
	defer engine.Close()

	d := demo.New(logger)
	if err := engine.Render(d.Element(name), root); err != nil {
		return err
	}
	if err := engine.Flush(); err != nil {
		return err
	}

	for _, i := range clicks {
		buttons := root.FindAll(host.ByTag("button"))
		if i < 0 || i >= len(buttons) {
			return fmt.Errorf("click %d: demo has %d buttons", i, len(buttons))
		}
		if _, err := mem.Dispatch(buttons[i], "click", nil); err != nil {
			return err
		}
		if err := engine.Flush(); err != nil {
			return err
		}
	}

	if add != 0 {
		d.Add(add)
		if err := engine.Flush(); err != nil {
			return err
		}
	}

	success(out, "%d clicks, counter +%d", len(clicks), add)
	return nil
}
