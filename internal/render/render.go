// Package render maps parsed markdown blocks and spans to ANSI-styled
// terminal output.
package render

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/kerrian/replymd/internal/config"
	"github.com/kerrian/replymd/internal/markdown"
)

// Renderer converts a markdown document to styled terminal text
type Renderer struct {
	styles *StyleSet
	width  int
	wrap   bool
	theme  string
	plain  bool
}

// New creates a renderer from the current configuration
func New() *Renderer {
	return &Renderer{
		styles: Active(),
		width:  config.GetWidth(),
		wrap:   config.GetWrap(),
		theme:  config.GetTheme(),
	}
}

// WithWidth sets the target width
func (r *Renderer) WithWidth(width int) *Renderer {
	r.width = width
	return r
}

// WithWrap toggles paragraph wrapping
func (r *Renderer) WithWrap(wrap bool) *Renderer {
	r.wrap = wrap
	return r
}

// WithPlain disables all styling and syntax highlighting
func (r *Renderer) WithPlain(plain bool) *Renderer {
	r.plain = plain
	if plain {
		r.styles = PlainStyles()
	} else {
		r.styles = Active()
	}
	return r
}

// WithStyles sets an explicit style set (useful for testing)
func (r *Renderer) WithStyles(s *StyleSet) *Renderer {
	r.styles = s
	return r
}

// Document renders a full document. Consecutive list items sit on adjacent
// lines; all other block transitions get a separating blank line.
func (r *Renderer) Document(doc string) string {
	blocks := markdown.Segment(doc)

	var b strings.Builder
	ordinal := 0
	for i, blk := range blocks {
		if blk.Kind == markdown.ListItem && blk.Ordered {
			ordinal++
		} else {
			ordinal = 0
		}

		if i > 0 {
			if blk.Kind == markdown.ListItem && blocks[i-1].Kind == markdown.ListItem {
				b.WriteByte('\n')
			} else {
				b.WriteString("\n\n")
			}
		}
		b.WriteString(r.renderBlock(blk, ordinal))
	}
	return b.String()
}

// renderBlock renders one block. ordinal is the 1-based position within the
// current ordered-list run, 0 otherwise.
func (r *Renderer) renderBlock(blk markdown.Block, ordinal int) string {
	switch blk.Kind {
	case markdown.Header:
		return r.renderHeader(blk)
	case markdown.ListItem:
		return r.renderListItem(blk, ordinal)
	case markdown.Code:
		return r.renderCodeBlock(blk)
	default:
		return r.renderSpans(markdown.Spans(blk.Text), "")
	}
}

func (r *Renderer) renderHeader(blk markdown.Block) string {
	style := r.styles.Heading(blk.Level)
	spans := markdown.Spans(blk.Text)

	var b strings.Builder
	for _, s := range spans {
		b.WriteString(s.Text)
	}
	return style.Render(b.String())
}

func (r *Renderer) renderListItem(blk markdown.Block, ordinal int) string {
	marker := "• "
	if blk.Ordered {
		marker = itoa(ordinal) + ". "
	}

	indent := strings.Repeat(" ", runewidth.StringWidth(marker))
	body := r.renderSpansWidth(markdown.Spans(blk.Text), indent, r.width-len(indent))
	return r.styles.Bullet.Render(marker) + body
}

// renderCodeBlock renders a fenced code block with syntax highlighting and
// a bordered container. Plain mode emits the code indented, unhighlighted.
func (r *Renderer) renderCodeBlock(blk markdown.Block) string {
	if r.plain {
		var b strings.Builder
		for i, line := range strings.Split(blk.Text, "\n") {
			if i > 0 {
				b.WriteByte('\n')
			}
			b.WriteString("    ")
			b.WriteString(line)
		}
		return b.String()
	}

	code := highlightCode(blk.Text, blk.Lang, r.theme)

	var content string
	if blk.Lang != "" {
		content = r.styles.LangBadge.Render(blk.Lang) + "\n" + code
	} else {
		content = code
	}

	maxWidth := r.width
	if maxWidth < 20 {
		maxWidth = 20
	}
	return r.styles.CodeBlock.MaxWidth(maxWidth).Render(content)
}

// renderSpans styles and wraps an inline span sequence at the full width.
func (r *Renderer) renderSpans(spans []markdown.Span, indent string) string {
	return r.renderSpansWidth(spans, indent, r.width)
}

// renderSpansWidth word-wraps spans to the given width, styling each
// segment separately so escape sequences are never split. Wrapped lines
// are prefixed with indent.
func (r *Renderer) renderSpansWidth(spans []markdown.Span, indent string, width int) string {
	if !r.wrap || width <= 0 {
		var b strings.Builder
		for _, s := range spans {
			b.WriteString(r.spanStyle(s.Style).Render(s.Text))
		}
		return b.String()
	}

	var b strings.Builder
	line := 0
	wrapped := false

	for _, s := range spans {
		style := r.spanStyle(s.Style)
		for _, tok := range splitTokens(s.Text) {
			w := runewidth.StringWidth(tok)
			if isSpaces(tok) {
				// Spaces left over from a wrap are swallowed.
				if wrapped && line == 0 {
					continue
				}
				if line+w > width {
					b.WriteByte('\n')
					b.WriteString(indent)
					line = 0
					wrapped = true
					continue
				}
			} else if line > 0 && line+w > width {
				b.WriteByte('\n')
				b.WriteString(indent)
				line = 0
				wrapped = true
			}
			b.WriteString(style.Render(tok))
			line += w
		}
	}
	return b.String()
}

var noStyle = lipgloss.NewStyle()

func (r *Renderer) spanStyle(style markdown.SpanStyle) lipgloss.Style {
	switch style {
	case markdown.Bold:
		return r.styles.Bold
	case markdown.Italic:
		return r.styles.Italic
	case markdown.InlineCode:
		return r.styles.Code
	default:
		return noStyle
	}
}

// splitTokens splits text into alternating runs of spaces and non-spaces
func splitTokens(text string) []string {
	var tokens []string
	start := 0
	for i := 0; i < len(text); i++ {
		if (text[i] == ' ') != (text[start] == ' ') {
			tokens = append(tokens, text[start:i])
			start = i
		}
	}
	if start < len(text) {
		tokens = append(tokens, text[start:])
	}
	return tokens
}

func isSpaces(tok string) bool {
	return tok != "" && tok[0] == ' '
}

// itoa avoids fmt for a hot render path
func itoa(n int) string {
	if n <= 0 {
		return "0"
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

// highlightCode applies chroma syntax highlighting for terminal output,
// falling back to the raw code whenever anything is missing or fails.
func highlightCode(code, language, theme string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get(theme)
	if style == nil {
		style = chromaStyles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}
	return strings.TrimRight(buf.String(), "\n")
}

// ThemeNames lists the available chroma styles
func ThemeNames() []string {
	return chromaStyles.Names()
}
