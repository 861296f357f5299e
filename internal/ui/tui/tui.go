// Package tui provides the interactive terminal components behind the
// sync file picker.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Styles contains the lipgloss styles shared by tui components.
var Styles = struct {
	Title lipgloss.Style
	Help  lipgloss.Style
}{
	Title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")).Padding(0, 1),
	Help:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
}

// Run starts a BubbleTea program with the given model and options and
// returns the final model.
func Run(model tea.Model, opts ...tea.ProgramOption) (tea.Model, error) {
	return tea.NewProgram(model, opts...).Run()
}
