package errors

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "hook context",
			code:    "E001",
			wantMsg: "Hook called outside component render",
			wantCat: CategoryRuntime,
		},
		{
			name:    "element child",
			code:    "E010",
			wantMsg: "Invalid element child",
			wantCat: CategoryElement,
		},
		{
			name:    "host container",
			code:    "E020",
			wantMsg: "Invalid host container",
			wantCat: CategoryHost,
		},
		{
			name:    "unknown error code",
			code:    "E999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestDidactError_Error(t *testing.T) {
	err := New("E002")
	want := "E002: Hook order changed"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	wrapped := New("E021").Wrap(fmt.Errorf("node 7 is detached"))
	want = "E021: Host operation failed: node 7 is detached"
	if got := wrapped.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	bare := &DidactError{Message: "test error"}
	if bare.Error() != "test error" {
		t.Errorf("Error() = %q, want %q", bare.Error(), "test error")
	}
}

func TestDidactError_WithLocation(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "scene.yaml")
	content := "root:\n  tag: div\n  children:\n    - bogus: true\n    - text: hi\n"
	if err := os.WriteFile(tmpFile, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	err := New("E051").WithLocation(tmpFile, 4, 7)
	if err.Location == nil {
		t.Fatal("Location is nil")
	}
	if err.Location.Line != 4 || err.Location.Column != 7 {
		t.Errorf("Location = %v, want line 4 column 7", err.Location)
	}
	if len(err.Context) == 0 {
		t.Fatal("Context should not be empty")
	}

	DisableColors()
	defer EnableColors()
	out := err.Format()
	if !strings.Contains(out, "→    4 │     - bogus: true") {
		t.Errorf("Format() should mark line 4, got:\n%s", out)
	}
}

func TestHasCode(t *testing.T) {
	inner := New("E030").Wrap(fmt.Errorf("boom"))
	outer := fmt.Errorf("step: %w", inner)

	if !HasCode(outer, "E030") {
		t.Error("HasCode should find E030 through fmt wrapping")
	}
	if HasCode(outer, "E001") {
		t.Error("HasCode should not match E001")
	}
	if HasCode(nil, "E030") {
		t.Error("HasCode(nil) should be false")
	}
	if got := CodeOf(outer); got != "E030" {
		t.Errorf("CodeOf = %q, want E030", got)
	}
	if got := CodeOf(fmt.Errorf("plain")); got != "" {
		t.Errorf("CodeOf(plain) = %q, want empty", got)
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E021") != nil {
		t.Error("FromError(nil, ...) should return nil")
	}

	de := New("E001")
	if FromError(fmt.Errorf("ctx: %w", de), "E021") != de {
		t.Error("FromError should return a chained DidactError as-is")
	}

	stdErr := stderrors.New("disk on fire")
	result := FromError(stdErr, "E021")
	if result.Wrapped != stdErr {
		t.Error("standard error should be wrapped")
	}
	if result.Code != "E021" {
		t.Errorf("Code = %q, want E021", result.Code)
	}
}

func TestFprint(t *testing.T) {
	DisableColors()
	defer EnableColors()

	tests := []struct {
		name string
		err  error
		want []string
	}{
		{
			name: "coded",
			err:  fmt.Errorf("render: %w", New("E040").WithSuggestion("use 16ms").Wrap(stderrors.New("got -1ms"))),
			want: []string{"ERROR E040: ", "Caused by: got -1ms", "Hint: use 16ms"},
		},
		{
			name: "plain",
			err:  stderrors.New("disk on fire"),
			want: []string{"ERROR: disk on fire"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b strings.Builder
			Fprint(&b, tt.err)
			for _, w := range tt.want {
				if !strings.Contains(b.String(), w) {
					t.Errorf("Fprint output missing %q:\n%s", w, b.String())
				}
			}
		})
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("hooks are identified by call order and must not move", 20)
	for _, l := range lines {
		if len(l) > 20 {
			t.Errorf("line %q exceeds width", l)
		}
	}
	if strings.Join(lines, " ") != "hooks are identified by call order and must not move" {
		t.Errorf("wrapText lost words: %v", lines)
	}
}

func TestGetAllCodesSorted(t *testing.T) {
	codes := GetAllCodes()
	for i := 1; i < len(codes); i++ {
		if codes[i-1] > codes[i] {
			t.Fatalf("codes not sorted: %v", codes)
		}
	}
	if _, ok := GetTemplate("E011"); !ok {
		t.Error("E011 should be registered")
	}
}
