package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/taskdeck/taskdeck/internal/theme"
)

// Layout manages the terminal layout dimensions: a one-line header, the
// content area, and a one-line status bar.
type Layout struct {
	Width           int
	Height          int
	HeaderHeight    int
	StatusBarHeight int
}

// NewLayout creates a Layout with the given terminal dimensions.
func NewLayout(width, height int) Layout {
	return Layout{
		Width:           width,
		Height:          height,
		HeaderHeight:    1,
		StatusBarHeight: 1,
	}
}

// ContentWidth returns the full available width.
func (l Layout) ContentWidth() int {
	return l.Width
}

// ContentHeight returns the height available for the main content area.
func (l Layout) ContentHeight() int {
	return l.Height - l.HeaderHeight - l.StatusBarHeight
}

// RenderHeader renders the top header bar with the app title on the left
// and session/statistics info on the right.
func (l Layout) RenderHeader(t theme.Theme, title, right string) string {
	titleRendered := t.Header.Render(title)
	rightRendered := t.Header.Align(lipgloss.Right).Render(right)

	gap := l.Width - lipgloss.Width(titleRendered) - lipgloss.Width(rightRendered)
	if gap < 0 {
		gap = 0
	}

	filler := t.Header.Render(
		lipgloss.NewStyle().
			Width(gap).
			Background(t.Header.GetBackground()).
			Render(""),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, titleRendered, filler, rightRendered)
}

// RenderStatusBar renders the bottom status bar with hints or the most
// recent notification.
func (l Layout) RenderStatusBar(t theme.Theme, content string) string {
	rendered := t.StatusBar.Render(content)

	gap := l.Width - lipgloss.Width(rendered)
	if gap < 0 {
		gap = 0
	}

	filler := t.StatusBar.Render(
		lipgloss.NewStyle().
			Width(gap).
			Background(t.StatusBar.GetBackground()).
			Render(""),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered, filler)
}

// RenderWithFrame composes a full terminal view by vertically joining
// the header, content area, and status bar.
func (l Layout) RenderWithFrame(header, content, statusBar string) string {
	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}
