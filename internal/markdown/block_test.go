package markdown

import (
	"reflect"
	"testing"
)

func TestSegment(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Block
	}{
		{
			name:  "header then paragraph",
			input: "# Title\nBody text",
			want: []Block{
				{Kind: Header, Text: "Title", Level: 1},
				{Kind: Paragraph, Text: "Body text"},
			},
		},
		{
			name:  "header levels",
			input: "# One\n## Two\n### Three\n#### Four",
			want: []Block{
				{Kind: Header, Text: "One", Level: 1},
				{Kind: Header, Text: "Two", Level: 2},
				{Kind: Header, Text: "Three", Level: 3},
				{Kind: Header, Text: "Four", Level: 4},
			},
		},
		{
			name:  "fenced code block",
			input: "```\ncode line\n```",
			want: []Block{
				{Kind: Code, Text: "code line"},
			},
		},
		{
			name:  "fenced code block with language",
			input: "```go\nfmt.Println(\"hi\")\n```",
			want: []Block{
				{Kind: Code, Text: "fmt.Println(\"hi\")", Lang: "go"},
			},
		},
		{
			name:  "fence absorbs blank lines and markers",
			input: "```\nfirst\n\n# not a header\n- not a list\n```\nafter",
			want: []Block{
				{Kind: Code, Text: "first\n\n# not a header\n- not a list"},
				{Kind: Paragraph, Text: "after"},
			},
		},
		{
			name:  "unterminated fence consumes to end",
			input: "before\n```\ntrailing code",
			want: []Block{
				{Kind: Paragraph, Text: "before"},
				{Kind: Code, Text: "trailing code"},
			},
		},
		{
			name:  "unordered list",
			input: "- item one\n- item two",
			want: []Block{
				{Kind: ListItem, Text: "item one"},
				{Kind: ListItem, Text: "item two"},
			},
		},
		{
			name:  "asterisk bullets",
			input: "* first\n* second",
			want: []Block{
				{Kind: ListItem, Text: "first"},
				{Kind: ListItem, Text: "second"},
			},
		},
		{
			name:  "ordered list strips numbering",
			input: "1. alpha\n2. beta\n10. gamma",
			want: []Block{
				{Kind: ListItem, Text: "alpha", Ordered: true},
				{Kind: ListItem, Text: "beta", Ordered: true},
				{Kind: ListItem, Text: "gamma", Ordered: true},
			},
		},
		{
			name:  "indented list items",
			input: "  - indented bullet\n  3. indented number",
			want: []Block{
				{Kind: ListItem, Text: "indented bullet"},
				{Kind: ListItem, Text: "indented number", Ordered: true},
			},
		},
		{
			name:  "blank lines emit nothing",
			input: "first\n\n\nsecond",
			want: []Block{
				{Kind: Paragraph, Text: "first"},
				{Kind: Paragraph, Text: "second"},
			},
		},
		{
			name:  "unsupported syntax falls through to paragraph",
			input: "> quoted\n| a | b |",
			want: []Block{
				{Kind: Paragraph, Text: "> quoted"},
				{Kind: Paragraph, Text: "| a | b |"},
			},
		},
		{
			name:  "empty document",
			input: "",
			want:  nil,
		},
		{
			name:  "dash without space is a paragraph",
			input: "-notalist\n1.notordered",
			want: []Block{
				{Kind: Paragraph, Text: "-notalist"},
				{Kind: Paragraph, Text: "1.notordered"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Segment(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Segment(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// TestSegmentHeaderSpaceStripping pins the exact header text rule: the '#'
// run and at most one following space are removed, nothing else.
func TestSegmentHeaderSpaceStripping(t *testing.T) {
	tests := []struct {
		input string
		text  string
		level int
	}{
		{"#Title", "Title", 1},
		{"# Title", "Title", 1},
		{"#  Title", " Title", 1},
		{"###", "", 3},
	}

	for _, tt := range tests {
		got := Segment(tt.input)
		if len(got) != 1 || got[0].Kind != Header {
			t.Fatalf("Segment(%q) = %v, want a single header", tt.input, got)
		}
		if got[0].Text != tt.text || got[0].Level != tt.level {
			t.Errorf("Segment(%q) = {%q, level %d}, want {%q, level %d}",
				tt.input, got[0].Text, got[0].Level, tt.text, tt.level)
		}
	}
}
