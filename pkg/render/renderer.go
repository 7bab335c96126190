package render

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/vango-dev/didact/pkg/host"
	"github.com/vango-dev/didact/pkg/vdom"
)

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// Pretty enables indented output.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces.
	Indent string

	// EventMarkers adds a data-on-<event> attribute for each bound listener.
	EventMarkers bool

	// IncludeContainer renders the container element itself rather than
	// only its children.
	IncludeContainer bool
}

// Renderer writes host trees as HTML. It holds no per-render state and may
// be reused.
type Renderer struct {
	config RendererConfig
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{config: config}
}

// RenderToString renders the tree rooted at root to a string.
func (r *Renderer) RenderToString(root *host.MemNode) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, root); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams the tree rooted at root to w. Unless
// IncludeContainer is set, a container root contributes only its children.
func (r *Renderer) RenderToWriter(w io.Writer, root *host.MemNode) error {
	if root == nil {
		return nil
	}
	sw := &stickyWriter{w: w}
	if root.IsContainer() && !r.config.IncludeContainer {
		for _, c := range root.Children {
			r.renderNode(sw, c, 0)
		}
	} else {
		r.renderNode(sw, root, 0)
	}
	return sw.err
}

// stickyWriter remembers the first write error and drops later writes.
type stickyWriter struct {
	w   io.Writer
	err error
}

func (s *stickyWriter) WriteString(str string) {
	if s.err != nil {
		return
	}
	_, s.err = io.WriteString(s.w, str)
}

func (r *Renderer) renderNode(w *stickyWriter, n *host.MemNode, depth int) {
	if n.Kind == host.TextNode {
		if r.config.Pretty {
			r.writeIndent(w, depth)
		}
		w.WriteString(escapeText(n.Text))
		if r.config.Pretty {
			w.WriteString("\n")
		}
		return
	}

	if r.config.Pretty {
		r.writeIndent(w, depth)
	}
	w.WriteString("<" + n.Tag)
	r.renderAttributes(w, n)
	w.WriteString(">")

	if isVoid(n.Tag) {
		if r.config.Pretty {
			w.WriteString("\n")
		}
		return
	}

	// Inline elements and elements holding a single text node stay on one line.
	flat := !r.config.Pretty || len(n.Children) == 0 || isInline(n.Tag) ||
		(len(n.Children) == 1 && n.Children[0].Kind == host.TextNode)
	if flat {
		inner := *r
		inner.config.Pretty = false
		for _, c := range n.Children {
			inner.renderNode(w, c, 0)
		}
	} else {
		w.WriteString("\n")
		for _, c := range n.Children {
			r.renderNode(w, c, depth+1)
		}
		r.writeIndent(w, depth)
	}

	w.WriteString("</" + n.Tag + ">")
	if r.config.Pretty {
		w.WriteString("\n")
	}
}

func (r *Renderer) renderAttributes(w *stickyWriter, n *host.MemNode) {
	keys := make([]string, 0, len(n.Props))
	for k := range n.Props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := n.Props[key]
		if value == nil || key == vdom.ChildrenKey {
			continue
		}
		name := key
		if alias, ok := attrAliases[key]; ok {
			name = alias
		}
		if isBooleanAttr(strings.ToLower(name)) {
			if b, ok := value.(bool); ok {
				if b {
					w.WriteString(" " + name)
				}
				continue
			}
		}
		s := attrString(value)
		if s == "" {
			continue
		}
		w.WriteString(fmt.Sprintf(` %s="%s"`, name, escapeAttr(s)))
	}

	if r.config.EventMarkers {
		seen := make(map[string]bool)
		for _, ev := range n.Events() {
			if seen[ev] {
				continue
			}
			seen[ev] = true
			w.WriteString(fmt.Sprintf(` data-on-%s="true"`, ev))
		}
	}
}

// attrString converts a property value to attribute text. Style maps are
// written as declarations sorted by property name.
func attrString(value any) string {
	if m, ok := value.(map[string]string); ok {
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+": "+m[k])
		}
		return strings.Join(parts, "; ")
	}
	return vdom.ValueString(value)
}

func (r *Renderer) writeIndent(w *stickyWriter, depth int) {
	w.WriteString(strings.Repeat(r.config.Indent, depth))
}

// HTML renders root with the default configuration. It is a convenience for
// tests and the CLI.
func HTML(root *host.MemNode) string {
	s, _ := NewRenderer(RendererConfig{}).RenderToString(root)
	return s
}
