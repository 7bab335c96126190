package vdom

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/vango-dev/didact/internal/errors"
)

// New creates an element of the given kind. Children are flattened into one
// ordered list; primitive children become text elements and nil children are
// dropped. A child that is neither an element nor convertible to text yields
// an E010 error.
//
// kind may be a host tag string, a *Component, or a Type. Other values are
// not rejected here; they produce a TypeInvalid element that fails when the
// reconciler reaches it.
func New(kind any, props Props, children ...any) (*Element, error) {
	flat, err := flattenChildren(make([]*Element, 0, len(children)), children)
	if err != nil {
		return nil, err
	}

	p := make(Props, len(props)+1)
	for k, v := range props {
		p[k] = v
	}
	p[ChildrenKey] = flat

	return &Element{Type: TypeOf(kind), Props: p}, nil
}

// CreateElement is like New but panics with the E010 error on an invalid child.
func CreateElement(kind any, props Props, children ...any) *Element {
	el, err := New(kind, props, children...)
	if err != nil {
		panic(err)
	}
	return el
}

// TextElement creates a text element with the given content.
func TextElement(text string) *Element {
	return &Element{
		Type: TextType,
		Props: Props{
			TextValueKey: text,
			ChildrenKey:  []*Element{},
		},
	}
}

// flattenChildren appends children to out, descending into nested groupings.
func flattenChildren(out []*Element, children []any) ([]*Element, error) {
	for i, child := range children {
		switch v := child.(type) {
		case nil:
			continue
		case *Element:
			if v != nil {
				out = append(out, v)
			}
		case []*Element:
			for _, c := range v {
				if c != nil {
					out = append(out, c)
				}
			}
		case []any:
			var err error
			if out, err = flattenChildren(out, v); err != nil {
				return nil, err
			}
		case string:
			out = append(out, TextElement(v))
		case fmt.Stringer:
			out = append(out, TextElement(v.String()))
		default:
			if s, ok := primitiveString(v); ok {
				out = append(out, TextElement(s))
				continue
			}
			rv := reflect.ValueOf(v)
			if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
				nested := make([]any, rv.Len())
				for j := range nested {
					nested[j] = rv.Index(j).Interface()
				}
				var err error
				if out, err = flattenChildren(out, nested); err != nil {
					return nil, err
				}
				continue
			}
			return nil, errors.New("E010").
				WithDetailf("child %d has type %T, which is neither an element nor a primitive", i, child).
				WithSuggestion("Render the value with fmt.Sprint or wrap it in an element")
		}
	}
	return out, nil
}

// primitiveString formats booleans and numbers the way a text node shows them.
func primitiveString(v any) (string, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10), true
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 32), true
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64), true
	case reflect.String:
		return rv.String(), true
	default:
		return "", false
	}
}
