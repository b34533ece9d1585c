package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
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
		{"runtime", "E001", "Message type mismatch", CategoryRuntime},
		{"render", "E010", "Live mutation failed", CategoryRender},
		{"protocol", "E101", "Frame decode failed", CategoryProtocol},
		{"config", "E141", "Configuration not found", CategoryConfig},
		{"unknown", "E999", "Unknown error", ""},
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

func TestErrorString(t *testing.T) {
	err := New("E010")
	if got, want := err.Error(), "E010: Live mutation failed"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	err.Wrap(fmt.Errorf("boom"))
	if got, want := err.Error(), "E010: Live mutation failed: boom"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	plain := Newf(CategoryCLI, "bad flag %q", "--x")
	if got, want := plain.Error(), `bad flag "--x"`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestUnwrapAndHasCode(t *testing.T) {
	cause := stderrors.New("disk full")
	err := fmt.Errorf("export: %w", New("E150").Wrap(cause))

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
	if !HasCode(err, "E150") {
		t.Error("HasCode(E150) = false, want true")
	}
	if HasCode(err, "E120") {
		t.Error("HasCode(E120) = true, want false")
	}

	var e *Error
	if !stderrors.As(err, &e) || e.Code != "E150" {
		t.Errorf("errors.As code = %v, want E150", e)
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E150") != nil {
		t.Error("FromError(nil) should be nil")
	}

	orig := New("E121")
	if got := FromError(fmt.Errorf("wrapped: %w", orig), "E150"); got != orig {
		t.Errorf("FromError() = %v, want original *Error", got)
	}

	got := FromError(stderrors.New("x"), "E150")
	if got.Code != "E150" {
		t.Errorf("Code = %q, want E150", got.Code)
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New("E120").
		Wrap(stderrors.New("permission denied")).
		With("path", "retain.json").
		WithSuggestion("chmod it")

	out := err.Format()
	for _, want := range []string{
		"ERROR E120: Cannot read configuration",
		"path: retain.json",
		"Cause: permission denied",
		"Hint: chmod it",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q in:\n%s", want, out)
		}
	}
}

func TestFormatJSON(t *testing.T) {
	err := New("E003").With("passes", 16)

	var got map[string]any
	if jerr := json.Unmarshal([]byte(err.FormatJSON()), &got); jerr != nil {
		t.Fatalf("FormatJSON() not valid JSON: %v", jerr)
	}
	if got["code"] != "E003" {
		t.Errorf("code = %v, want E003", got["code"])
	}
	fields, _ := got["fields"].(map[string]any)
	if fields["passes"] != "16" {
		t.Errorf("fields.passes = %v, want 16", fields["passes"])
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("one two three four five six seven", 10)
	for _, l := range lines {
		if len(l) > 10 {
			t.Errorf("line %q longer than 10", l)
		}
	}
	if got := strings.Join(lines, " "); got != "one two three four five six seven" {
		t.Errorf("rejoined = %q", got)
	}
}

func TestCodesSorted(t *testing.T) {
	codes := Codes()
	for i := 1; i < len(codes); i++ {
		if codes[i-1] > codes[i] {
			t.Fatalf("Codes() not sorted at %d: %v", i, codes)
		}
	}
	if _, ok := Lookup("E160"); !ok {
		t.Error("Lookup(E160) missing")
	}
}
