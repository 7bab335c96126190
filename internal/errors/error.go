package errors

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"os"
)

// Category groups codes by the layer that raises them.
type Category string

const (
	CategoryRuntime Category = "runtime" // engine, hooks, effects
	CategoryElement Category = "element" // element factory
	CategoryHost    Category = "host"    // container mutations
	CategoryConfig  Category = "config"  // didact.json
	CategoryScene   Category = "scene"   // YAML scene files
	CategoryCLI     Category = "cli"
)

// Location points into a config or scene file.
type Location struct {
	File   string
	Line   int
	Column int
}

func (l *Location) String() string {
	switch {
	case l == nil:
		return ""
	case l.Column > 0:
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	default:
		return fmt.Sprintf("%s:%d", l.File, l.Line)
	}
}

// DidactError is the error type returned across the module. Every
// failure the engine or the tools report carries a registered code
// ("E001", "E040", ...) so callers can branch with HasCode or CodeOf
// instead of matching message text.
type DidactError struct {
	Code     string
	Category Category
	Message  string
	Detail   string

	// Location and Context are set for errors that point into a file.
	// Context holds the source lines surrounding Location.Line.
	Location *Location
	Context  []string

	Suggestion string
	Example    string
	DocURL     string

	Wrapped error
}

func (e *DidactError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = e.Code + ": " + msg
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

func (e *DidactError) Unwrap() error { return e.Wrapped }

// WithLocation records where in file the problem is and captures a few
// lines around it for Format.
func (e *DidactError) WithLocation(file string, line, column int) *DidactError {
	e.Location = &Location{File: file, Line: line, Column: column}
	e.Context = sourceWindow(file, line, contextRadius)
	return e
}

func (e *DidactError) WithSuggestion(s string) *DidactError {
	e.Suggestion = s
	return e
}

func (e *DidactError) WithExample(ex string) *DidactError {
	e.Example = ex
	return e
}

func (e *DidactError) WithDetail(d string) *DidactError {
	e.Detail = d
	return e
}

func (e *DidactError) WithDetailf(format string, args ...any) *DidactError {
	return e.WithDetail(fmt.Sprintf(format, args...))
}

// Wrap sets the cause reported by Unwrap.
func (e *DidactError) Wrap(err error) *DidactError {
	e.Wrapped = err
	return e
}

// contextRadius is how many lines either side of Location.Line are kept.
const contextRadius = 2

// sourceWindow returns lines line-radius..line+radius of path. A missing
// or unreadable file yields nil; the error is still useful without it.
func sourceWindow(path string, line, radius int) []string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for n := 1; sc.Scan() && n <= line+radius; n++ {
		if n >= line-radius {
			out = append(out, sc.Text())
		}
	}
	return out
}

// New returns a fresh error for a registered code. Unregistered codes
// still produce an error so a typo never turns into a nil.
func New(code string) *DidactError {
	def, ok := registry[code]
	if !ok {
		return &DidactError{Code: code, Message: "Unknown error"}
	}
	return &DidactError{
		Code:     code,
		Category: def.Category,
		Message:  def.Message,
		Detail:   def.Detail,
		DocURL:   def.DocURL,
	}
}

// Newf builds an uncoded error in category.
func Newf(category Category, format string, args ...any) *DidactError {
	return &DidactError{Category: category, Message: fmt.Sprintf(format, args...)}
}

// FromError returns the DidactError already in err's chain, or wraps err
// under code when there is none.
func FromError(err error, code string) *DidactError {
	if err == nil {
		return nil
	}
	var de *DidactError
	if stderrors.As(err, &de) {
		return de
	}
	return New(code).Wrap(err)
}

// CodeOf returns the code of the outermost DidactError in err's chain.
func CodeOf(err error) string {
	var de *DidactError
	if stderrors.As(err, &de) {
		return de.Code
	}
	return ""
}

// HasCode reports whether any DidactError in err's chain has code.
func HasCode(err error, code string) bool {
	for err != nil {
		if de, ok := err.(*DidactError); ok && de.Code == code {
			return true
		}
		err = stderrors.Unwrap(err)
	}
	return false
}
