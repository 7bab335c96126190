package scene

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/didact/internal/errors"
	"github.com/vango-dev/didact/pkg/vdom"
)

// Scene is a parsed scene file.
type Scene struct {
	Title string
	Root  *vdom.Element
}

// Components resolves component names used by scene nodes.
type Components map[string]*vdom.Component

type document struct {
	Title string    `yaml:"title"`
	Root  yaml.Node `yaml:"root"`
}

type node struct {
	Tag       string         `yaml:"tag"`
	Text      *string        `yaml:"text"`
	Component string         `yaml:"component"`
	Props     map[string]any `yaml:"props"`
	Children  []yaml.Node    `yaml:"children"`
}

// LoadFile parses the scene file at path.
func LoadFile(path string, components Components) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("E050").
			WithDetail("Could not read " + path).
			Wrap(err)
	}
	return Parse(path, data, components)
}

// Read parses a scene from r. name is used in error locations.
func Read(name string, r io.Reader, components Components) (*Scene, error) {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return nil, errors.New("E050").Wrap(err)
	}
	return Parse(name, buf.Bytes(), components)
}

// Parse builds a scene from YAML data. name is used in error locations.
func Parse(name string, data []byte, components Components) (*Scene, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.New("E050").
			WithDetail(err.Error()).
			WithLocation(name, errorLine(err), 0)
	}
	if doc.Root.Kind == 0 {
		return nil, errors.New("E050").
			WithDetail("The scene has no root node.").
			WithSuggestion("Add a top-level \"root:\" entry").
			WithLocation(name, 1, 1)
	}

	b := builder{file: name, components: components}
	root, err := b.build(&doc.Root)
	if err != nil {
		return nil, err
	}
	return &Scene{Title: doc.Title, Root: root}, nil
}

type builder struct {
	file       string
	components Components
}

func (b *builder) build(y *yaml.Node) (*vdom.Element, error) {
	switch y.Kind {
	case yaml.ScalarNode:
		return vdom.TextElement(y.Value), nil
	case yaml.MappingNode:
	default:
		return nil, b.nodeError(y, "expected a mapping or a scalar")
	}

	var n node
	if err := y.Decode(&n); err != nil {
		return nil, errors.New("E050").
			WithDetail(err.Error()).
			WithLocation(b.file, y.Line, y.Column)
	}

	set := 0
	for _, ok := range []bool{n.Tag != "", n.Text != nil, n.Component != ""} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return nil, b.nodeError(y, "a node needs exactly one of tag, text or component")
	}

	if n.Text != nil {
		if len(n.Props) > 0 || len(n.Children) > 0 {
			return nil, b.nodeError(y, "a text node takes no props or children")
		}
		return vdom.TextElement(*n.Text), nil
	}

	children := make([]any, 0, len(n.Children))
	for i := range n.Children {
		child, err := b.build(&n.Children[i])
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}

	var kind any = n.Tag
	if n.Component != "" {
		comp, ok := b.components[n.Component]
		if !ok {
			return nil, b.nodeError(y, fmt.Sprintf("unknown component %q", n.Component)).
				WithSuggestion(b.knownComponents())
		}
		kind = comp
	}
	el, err := vdom.New(kind, vdom.Props(n.Props), children...)
	if err != nil {
		return nil, err
	}
	return el, nil
}

func (b *builder) nodeError(y *yaml.Node, detail string) *errors.DidactError {
	return errors.New("E051").
		WithDetail(detail).
		WithLocation(b.file, y.Line, y.Column)
}

func (b *builder) knownComponents() string {
	if len(b.components) == 0 {
		return "No components are registered for this scene"
	}
	names := make([]string, 0, len(b.components))
	for name := range b.components {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("Known components: %v", names)
}

// errorLine extracts the first line number from a yaml error message.
func errorLine(err error) int {
	msg := err.Error()
	i := strings.Index(msg, "line ")
	if i < 0 {
		return 0
	}
	var line int
	if _, err := fmt.Sscanf(msg[i:], "line %d", &line); err != nil {
		return 0
	}
	return line
}
