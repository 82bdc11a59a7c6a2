package snippets

import (
	"reflect"
	"testing"
)

func TestExtract(t *testing.T) {
	doc := "intro\n" +
		"```go\nfmt.Println(1)\n```\n" +
		"middle\n" +
		"```\nplain code\n```\n" +
		"```sh\n\n```\n" + // whitespace-only block is skipped
		"```python\nprint(2)\n```"

	got := Extract(doc)
	want := []Snippet{
		{Lang: "go", Code: "fmt.Println(1)"},
		{Lang: "", Code: "plain code"},
		{Lang: "python", Code: "print(2)"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract = %v, want %v", got, want)
	}
}

func TestExtractNone(t *testing.T) {
	if got := Extract("just text\nno fences"); got != nil {
		t.Errorf("Extract = %v, want nil", got)
	}
}

func TestFilterLang(t *testing.T) {
	snips := []Snippet{
		{Lang: "go", Code: "a"},
		{Lang: "Python", Code: "b"},
		{Lang: "go", Code: "c"},
	}

	got := FilterLang(snips, "GO")
	want := []Snippet{{Lang: "go", Code: "a"}, {Lang: "go", Code: "c"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FilterLang(GO) = %v, want %v", got, want)
	}

	if got := FilterLang(snips, ""); !reflect.DeepEqual(got, snips) {
		t.Errorf("FilterLang(empty) = %v, want all", got)
	}
}

// recordingClipboard captures copied text for assertions
type recordingClipboard struct {
	copied []string
}

func (c *recordingClipboard) Copy(text string) error {
	c.copied = append(c.copied, text)
	return nil
}

func TestWriterCopyMode(t *testing.T) {
	clip := &recordingClipboard{}
	w := NewWriter().WithClipboard(clip)

	if err := w.Output(Snippet{Code: "echo hi"}, OutputCopy); err != nil {
		t.Fatalf("Output: %v", err)
	}
	if len(clip.copied) != 1 || clip.copied[0] != "echo hi" {
		t.Errorf("copied = %v, want [echo hi]", clip.copied)
	}
}
