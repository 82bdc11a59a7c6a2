package markdown

import "strings"

// SpanStyle identifies the inline style of a span.
type SpanStyle int

const (
	Plain SpanStyle = iota
	Bold
	Italic
	InlineCode
)

// Span is an inline styled run of text within a block.
type Span struct {
	Style SpanStyle
	Text  string
}

// Spans decomposes a block's text into an ordered sequence of styled spans.
// Delimiters are tried in strict priority order (`**` before `*` so the
// shorter delimiter never prefix-matches the longer one); an opener with no
// valid closer degrades to a literal character. Concatenating the span
// texts reproduces the input minus consumed delimiter syntax.
//
// Adjacent plain characters are coalesced into a single span; this is a
// rendering no-op. Scanning is byte-wise: all delimiters are ASCII and
// multi-byte runes pass through a coalesced plain run untouched.
func Spans(text string) []Span {
	var spans []Span
	var plain strings.Builder

	flush := func() {
		if plain.Len() > 0 {
			spans = append(spans, Span{Style: Plain, Text: plain.String()})
			plain.Reset()
		}
	}
	emit := func(style SpanStyle, s string) {
		flush()
		spans = append(spans, Span{Style: style, Text: s})
	}

	for i := 0; i < len(text); {
		switch {
		case strings.HasPrefix(text[i:], "**"):
			if end := strings.Index(text[i+2:], "**"); end >= 0 {
				emit(Bold, text[i+2:i+2+end])
				i += end + 4
				continue
			}
		case text[i] == '*':
			if end := closingStar(text, i+1); end >= 0 {
				emit(Italic, text[i+1:end])
				i = end + 1
				continue
			}
		case text[i] == '_':
			if end := strings.IndexByte(text[i+1:], '_'); end >= 0 {
				emit(Italic, text[i+1:i+1+end])
				i += end + 2
				continue
			}
		case text[i] == '`':
			if end := strings.IndexByte(text[i+1:], '`'); end >= 0 {
				emit(InlineCode, text[i+1:i+1+end])
				i += end + 2
				continue
			}
		}

		// No delimiter matched at this position: one literal character.
		plain.WriteByte(text[i])
		i++
	}

	flush()
	return spans
}

// closingStar finds the first '*' at or after from that is not immediately
// followed by another '*', so the tail of a bold run is never taken as an
// italic closer. Returns -1 if none exists.
func closingStar(text string, from int) int {
	for j := from; j < len(text); j++ {
		if text[j] == '*' && (j+1 >= len(text) || text[j+1] != '*') {
			return j
		}
	}
	return -1
}
