// Package snippets extracts fenced code blocks from a document and hands
// them off by output mode. Nothing here ever executes snippet content:
// replies come from a model and are treated as untrusted text.
package snippets

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/kerrian/replymd/internal/markdown"
)

// Snippet is one fenced code block lifted out of a document
type Snippet struct {
	Lang string
	Code string
}

// Extract returns every fenced code block in document order. Blocks whose
// content is empty after trimming are skipped.
func Extract(doc string) []Snippet {
	var out []Snippet
	for _, blk := range markdown.Segment(doc) {
		if blk.Kind != markdown.Code {
			continue
		}
		if strings.TrimSpace(blk.Text) == "" {
			continue
		}
		out = append(out, Snippet{Lang: blk.Lang, Code: blk.Text})
	}
	return out
}

// FilterLang keeps snippets whose language matches lang (case-insensitive).
// An empty lang keeps everything.
func FilterLang(snips []Snippet, lang string) []Snippet {
	if lang == "" {
		return snips
	}
	var out []Snippet
	for _, s := range snips {
		if strings.EqualFold(s.Lang, lang) {
			out = append(out, s)
		}
	}
	return out
}

// ============================================================================
// Clipboard Interface
// ============================================================================

// Clipboard defines the interface for clipboard operations
type Clipboard interface {
	Copy(text string) error
}

// systemClipboard implements Clipboard using system commands
type systemClipboard struct{}

// Copy copies text to the system clipboard
func (c *systemClipboard) Copy(text string) error {
	cmd := c.findClipboardCommand()
	if cmd == nil {
		// No clipboard tool found, just print
		fmt.Println(text)
		return nil
	}
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}

// findClipboardCommand returns the appropriate clipboard command for the system
func (c *systemClipboard) findClipboardCommand() *exec.Cmd {
	switch {
	case commandExists("wl-copy"):
		return exec.Command("wl-copy")
	case commandExists("xclip"):
		return exec.Command("xclip", "-selection", "clipboard")
	case commandExists("xsel"):
		return exec.Command("xsel", "--clipboard", "--input")
	case commandExists("pbcopy"):
		return exec.Command("pbcopy")
	default:
		return nil
	}
}

// commandExists checks if a command is available in PATH
func commandExists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// ============================================================================
// Output Handling
// ============================================================================

// OutputMode represents how an extracted snippet should be handled
type OutputMode string

const (
	OutputPrint OutputMode = "print"
	OutputCopy  OutputMode = "copy"
)

// Writer hands snippets off by output mode
type Writer struct {
	clipboard Clipboard
}

// NewWriter creates a snippet writer with the system clipboard
func NewWriter() *Writer {
	return &Writer{clipboard: &systemClipboard{}}
}

// WithClipboard sets a custom clipboard implementation (useful for testing)
func (w *Writer) WithClipboard(c Clipboard) *Writer {
	w.clipboard = c
	return w
}

// Output writes a snippet's code according to mode
func (w *Writer) Output(snip Snippet, mode OutputMode) error {
	switch mode {
	case OutputCopy:
		return w.clipboard.Copy(snip.Code)
	default: // print
		fmt.Println(snip.Code)
		return nil
	}
}
