package vdom

import (
	"context"
	"strings"
	"testing"

	"github.com/vango-dev/didact/internal/errors"
)

type celsius float64

func (c celsius) String() string { return "warm" }

func TestCreateElementChildrenAlwaysPresent(t *testing.T) {
	el := CreateElement("div", nil)

	children, ok := el.Props[ChildrenKey].([]*Element)
	if !ok {
		t.Fatalf("children entry has type %T, want []*Element", el.Props[ChildrenKey])
	}
	if len(children) != 0 {
		t.Errorf("len(children) = %d, want 0", len(children))
	}
	if el.Type != HostType("div") {
		t.Errorf("Type = %v, want div", el.Type)
	}
}

func TestCreateElementCopiesProps(t *testing.T) {
	props := Props{"id": "a", ChildrenKey: "ignored"}
	el := CreateElement("div", props, "x")
	props["id"] = "b"

	if got := el.Props["id"]; got != "a" {
		t.Errorf("id = %v, want a (props must be copied)", got)
	}
	if len(el.Children()) != 1 {
		t.Errorf("children argument must replace the children prop, got %d", len(el.Children()))
	}
}

func TestCreateElementFlattensAndWrapsPrimitives(t *testing.T) {
	inner := CreateElement("span", nil)
	el := CreateElement("p", nil,
		"Hello ",
		[]any{"nested", []any{42, nil}},
		[]*Element{inner, nil},
		[]string{"a", "b"},
		true,
		1.5,
		uint8(7),
		celsius(30),
		nil,
	)

	var got []string
	for _, c := range el.Children() {
		if c.Type.IsText() {
			got = append(got, c.Text())
		} else {
			got = append(got, "<"+c.Type.Name+">")
		}
	}
	want := "Hello |nested|42|<span>|a|b|true|1.5|7|warm"
	if strings.Join(got, "|") != want {
		t.Errorf("children = %q, want %q", strings.Join(got, "|"), want)
	}
}

func TestTextElementShape(t *testing.T) {
	el := TextElement("hi")
	if el.Type != TextType {
		t.Errorf("Type = %v, want TextType", el.Type)
	}
	if el.Props[TextValueKey] != "hi" {
		t.Errorf("nodeValue = %v, want hi", el.Props[TextValueKey])
	}
	if el.Children() == nil || len(el.Children()) != 0 {
		t.Errorf("text element must carry an empty, non-nil children list")
	}
}

func TestNewRejectsInvalidChild(t *testing.T) {
	_, err := New("div", nil, "ok", struct{ X int }{1})
	if err == nil {
		t.Fatal("expected error for struct child")
	}
	if !errors.HasCode(err, "E010") {
		t.Errorf("error = %v, want code E010", err)
	}
}

func TestCreateElementPanicsOnInvalidChild(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
		err, ok := r.(error)
		if !ok || !errors.HasCode(err, "E010") {
			t.Errorf("panic value = %v, want E010 error", r)
		}
	}()
	CreateElement("div", nil, make(chan int))
}

func TestMalformedKindIsNotRejectedByFactory(t *testing.T) {
	el, err := New(42, nil)
	if err != nil {
		t.Fatalf("factory must not validate kind, got %v", err)
	}
	if el.Type.Tag != TypeInvalid {
		t.Errorf("Tag = %v, want Invalid", el.Type.Tag)
	}
	if el.Type.Name != "int" {
		t.Errorf("Name = %q, want int", el.Type.Name)
	}
}

func TestComponentTypeIdentity(t *testing.T) {
	render := func(ctx context.Context, p Props) *Element { return nil }
	a := Define("Btn", render)
	b := Define("Btn", render)

	if CreateElement(a, nil).Type != CreateElement(a, nil).Type {
		t.Error("elements of the same component must have equal types")
	}
	if CreateElement(a, nil).Type == CreateElement(b, nil).Type {
		t.Error("distinct components with the same name must have different types")
	}
	if !a.Type().IsComponent() {
		t.Error("IsComponent() = false")
	}
}

func TestTypeOf(t *testing.T) {
	comp := Define("X", nil)
	tests := []struct {
		name string
		kind any
		want TypeTag
	}{
		{"host tag", "div", TypeHost},
		{"text name", TextTypeName, TypeText},
		{"component", comp, TypeComponent},
		{"explicit type", HostType("ul"), TypeHost},
		{"empty string", "", TypeInvalid},
		{"nil component", (*Component)(nil), TypeInvalid},
		{"func", func() {}, TypeInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TypeOf(tt.kind).Tag; got != tt.want {
				t.Errorf("TypeOf(%v).Tag = %v, want %v", tt.kind, got, tt.want)
			}
		})
	}
}

func TestElHelpers(t *testing.T) {
	handler := func() {}
	el := Div(Class("card", "wide"), ID("main"), OnClick(handler),
		H1("Title"),
		nil,
		Props{"tabindex": 0},
	)

	if el.Props["class"] != "card wide" {
		t.Errorf("class = %v, want %q", el.Props["class"], "card wide")
	}
	if el.Props["onclick"] == nil {
		t.Error("onclick handler missing")
	}
	if el.Props["tabindex"] != 0 {
		t.Errorf("tabindex = %v, want 0", el.Props["tabindex"])
	}
	if len(el.Children()) != 1 || el.Children()[0].Type.Name != "h1" {
		t.Errorf("children = %v, want one h1", el.Children())
	}
	if got := el.String(); got != `<div><h1>"Title"</h1></div>` {
		t.Errorf("String() = %s", got)
	}
}
