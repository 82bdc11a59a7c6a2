package render

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/kerrian/replymd/internal/config"
)

// StyleSet encapsulates all output styles and provides methods for style operations
type StyleSet struct {
	// Heading tiers (levels past three reuse the deepest tier)
	H1 lipgloss.Style
	H2 lipgloss.Style
	H3 lipgloss.Style

	// Inline span styles
	Bold   lipgloss.Style
	Italic lipgloss.Style
	Code   lipgloss.Style

	// Block chrome
	Bullet    lipgloss.Style
	CodeBlock lipgloss.Style
	LangBadge lipgloss.Style

	// Shared chrome
	Dim     lipgloss.Style
	Divider lipgloss.Style
}

// DefaultStyles returns a StyleSet with default styles
func DefaultStyles() *StyleSet {
	return &StyleSet{
		H1:        lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("6")),
		H2:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		H3:        lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		Bold:      lipgloss.NewStyle().Bold(true),
		Italic:    lipgloss.NewStyle().Italic(true),
		Code:      lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		Bullet:    lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		CodeBlock: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
		LangBadge: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Bold(true),
		Dim:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Divider:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

// PlainStyles returns a StyleSet that applies no styling at all. Used for
// --plain output and for tests that assert on text content.
func PlainStyles() *StyleSet {
	plain := lipgloss.NewStyle()
	return &StyleSet{
		H1: plain, H2: plain, H3: plain,
		Bold: plain, Italic: plain, Code: plain,
		Bullet: plain, CodeBlock: plain, LangBadge: plain,
		Dim: plain, Divider: plain,
	}
}

// LoadFromConfig updates styles based on configuration
func (s *StyleSet) LoadFromConfig() {
	headingColor := parseANSIColor(config.GetColorHeading())
	bulletColor := parseANSIColor(config.GetColorBullet())
	italicColor := parseANSIColor(config.GetColorItalic())
	codeColor := parseANSIColor(config.GetColorCode())
	borderColor := lipgloss.Color(config.GetColorBorder())
	dimColor := lipgloss.Color(config.GetColorDim())

	s.H1 = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(headingColor)
	s.H2 = lipgloss.NewStyle().Bold(true).Foreground(headingColor)
	s.H3 = lipgloss.NewStyle().Foreground(headingColor)

	s.Bold = lipgloss.NewStyle().Bold(true)
	s.Italic = lipgloss.NewStyle().Italic(true).Foreground(italicColor)
	s.Code = lipgloss.NewStyle().Foreground(codeColor)

	s.Bullet = lipgloss.NewStyle().Foreground(bulletColor)
	s.CodeBlock = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderColor).Padding(0, 1)
	s.LangBadge = lipgloss.NewStyle().Foreground(dimColor).Bold(true)

	s.Dim = lipgloss.NewStyle().Foreground(dimColor)
	s.Divider = lipgloss.NewStyle().Foreground(borderColor)
}

// Heading returns the style for a header level, clamping levels past the
// deepest supported tier. The segmenter leaves levels unclamped; display
// depth is a renderer decision.
func (s *StyleSet) Heading(level int) lipgloss.Style {
	switch level {
	case 1:
		return s.H1
	case 2:
		return s.H2
	default:
		return s.H3
	}
}

// parseANSIColor converts ANSI color codes to lipgloss colors
func parseANSIColor(code string) lipgloss.Color {
	ansiToLipgloss := map[string]string{
		"30": "0", "31": "1", "32": "2", "33": "3",
		"34": "4", "35": "5", "36": "6", "37": "7",
		"90": "8", "91": "9", "92": "10", "93": "11",
		"94": "12", "95": "13", "96": "14", "97": "15",
	}
	if mapped, ok := ansiToLipgloss[code]; ok {
		return lipgloss.Color(mapped)
	}
	return lipgloss.Color(code)
}

// Global style set instance
var styles = DefaultStyles()

// Active returns the global style set
func Active() *StyleSet {
	return styles
}

// RefreshStyles updates the global styles from config
func RefreshStyles() {
	styles.LoadFromConfig()
}
