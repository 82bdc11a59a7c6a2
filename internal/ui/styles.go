package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/kerrian/replymd/internal/config"
)

// StyleManager encapsulates the pager chrome styles
type StyleManager struct {
	Divider lipgloss.Style
	Status  lipgloss.Style
	Path    lipgloss.Style
	Notice  lipgloss.Style
	Error   lipgloss.Style
	Prompt  lipgloss.Style
}

// DefaultStyles returns a StyleManager with default styles
func DefaultStyles() *StyleManager {
	return &StyleManager{
		Divider: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Status:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Path:    lipgloss.NewStyle().Bold(true),
		Notice:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		Prompt:  lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
	}
}

// LoadFromConfig updates styles based on configuration
func (s *StyleManager) LoadFromConfig() {
	borderColor := lipgloss.Color(config.GetColorBorder())
	dimColor := lipgloss.Color(config.GetColorDim())

	s.Divider = lipgloss.NewStyle().Foreground(borderColor)
	s.Status = lipgloss.NewStyle().Foreground(dimColor)
}

// Global style manager instance
var styles = DefaultStyles()

// RefreshStyles updates the global styles from config
func RefreshStyles() {
	styles.LoadFromConfig()
}
