package render

import (
	"strings"
	"testing"
)

// plainRenderer returns a renderer with no styling or highlighting so that
// tests can assert on exact text content.
func plainRenderer(width int) *Renderer {
	return (&Renderer{width: width, wrap: true}).WithPlain(true)
}

func TestDocumentPlain(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "header and paragraph",
			input: "# Title\n\nBody **bold** text",
			want:  "Title\n\nBody bold text",
		},
		{
			name:  "unordered list stays adjacent",
			input: "- one\n- two\n\nafter",
			want:  "• one\n• two\n\nafter",
		},
		{
			name:  "ordered list renumbers from source order",
			input: "1. alpha\n7. beta\n99. gamma",
			want:  "1. alpha\n2. beta\n3. gamma",
		},
		{
			name:  "ordinal counter resets after a bullet",
			input: "1. a\n- b\n5. c\n6. d",
			want:  "1. a\n• b\n1. c\n2. d",
		},
		{
			name:  "code block indented in plain mode",
			input: "```go\nx := 1\ny := 2\n```",
			want:  "    x := 1\n    y := 2",
		},
		{
			name:  "inline code survives",
			input: "Use `foo()` here",
			want:  "Use foo() here",
		},
		{
			name:  "empty document",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := plainRenderer(80).Document(tt.input)
			if got != tt.want {
				t.Errorf("Document(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDocumentWrapping(t *testing.T) {
	got := plainRenderer(9).Document("aaaa bbbb cccc")
	want := "aaaa bbbb\ncccc"
	if got != want {
		t.Errorf("wrapped paragraph = %q, want %q", got, want)
	}
}

func TestDocumentWrapDisabled(t *testing.T) {
	r := (&Renderer{width: 9, wrap: false}).WithPlain(true)
	input := "aaaa bbbb cccc"
	if got := r.Document(input); got != input {
		t.Errorf("unwrapped paragraph = %q, want %q", got, input)
	}
}

func TestListItemContinuationIndent(t *testing.T) {
	got := plainRenderer(8).Document("- one two six")
	want := "• one\n  two\n  six"
	if got != want {
		t.Errorf("wrapped list item = %q, want %q", got, want)
	}
}

func TestHeaderLevelClamp(t *testing.T) {
	s := DefaultStyles()
	if s.Heading(7).GetBold() != s.Heading(3).GetBold() {
		t.Error("levels past three should reuse the deepest heading tier")
	}
	if !s.Heading(1).GetUnderline() {
		t.Error("level one should be underlined")
	}
	if s.Heading(2).GetUnderline() {
		t.Error("level two should not be underlined")
	}
}

func TestSplitTokens(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"a b", []string{"a", " ", "b"}},
		{"  a", []string{"  ", "a"}},
		{"ab", []string{"ab"}},
		{"", nil},
		{"a  b c", []string{"a", "  ", "b", " ", "c"}},
	}

	for _, tt := range tests {
		got := splitTokens(tt.input)
		if strings.Join(got, "|") != strings.Join(tt.want, "|") {
			t.Errorf("splitTokens(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) == 0 {
		t.Fatal("expected at least one chroma style")
	}
	found := false
	for _, n := range names {
		if n == "monokai" {
			found = true
			break
		}
	}
	if !found {
		t.Error("expected monokai among chroma styles")
	}
}
