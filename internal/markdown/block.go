// Package markdown converts raw reply text into block-level structure and
// inline styled spans. It is deliberately permissive: every input string is
// valid, malformed syntax renders as literal text, and parsing never fails.
package markdown

import (
	"regexp"
	"strings"
)

// BlockKind identifies the structural type of a block.
type BlockKind int

const (
	Paragraph BlockKind = iota
	Header
	ListItem
	Code
)

// Block is a top-level structural unit of a document.
type Block struct {
	Kind    BlockKind
	Text    string
	Level   int    // Header: count of leading '#', not clamped here
	Ordered bool   // ListItem: numbered vs bulleted
	Lang    string // Code: info string after the opening fence
}

const fence = "```"

var orderedItemRegex = regexp.MustCompile(`^\d+\. `)

// Segment splits a document into an ordered sequence of blocks. Lines are
// classified with a single forward cursor; block boundaries align with line
// boundaries except for fenced code blocks, which absorb every line up to
// the closing fence or the end of input.
func Segment(doc string) []Block {
	lines := strings.Split(doc, "\n")
	var blocks []Block

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		trimmed := strings.TrimSpace(line)

		// Fenced code block. An unterminated fence consumes the rest of
		// the document rather than erroring.
		if strings.HasPrefix(trimmed, fence) {
			lang := strings.TrimSpace(strings.TrimPrefix(trimmed, fence))
			end := i + 1
			for end < len(lines) && !strings.HasPrefix(strings.TrimSpace(lines[end]), fence) {
				end++
			}
			blocks = append(blocks, Block{
				Kind: Code,
				Text: strings.Join(lines[i+1:end], "\n"),
				Lang: lang,
			})
			i = end // loop increment skips the closing fence line
			continue
		}

		// Header: leading '#' run sets the level.
		if strings.HasPrefix(line, "#") {
			level := 0
			for level < len(line) && line[level] == '#' {
				level++
			}
			text := strings.TrimPrefix(line[level:], " ")
			blocks = append(blocks, Block{Kind: Header, Text: text, Level: level})
			continue
		}

		// Unordered list item.
		if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") {
			blocks = append(blocks, Block{Kind: ListItem, Text: trimmed[2:]})
			continue
		}

		// Ordered list item: "1. text". The source number is discarded;
		// the renderer counts items itself.
		if orderedItemRegex.MatchString(trimmed) {
			idx := strings.Index(trimmed, ". ")
			blocks = append(blocks, Block{Kind: ListItem, Text: trimmed[idx+2:], Ordered: true})
			continue
		}

		// Anything else non-blank is a paragraph, rendered literally.
		// Blank lines are separators only.
		if trimmed != "" {
			blocks = append(blocks, Block{Kind: Paragraph, Text: line})
		}
	}

	return blocks
}
