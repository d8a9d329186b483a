package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Rorical/BloodDesk/ui/styles"
)

const (
	listHints  = "↑/↓ select · x reject · r refresh · q quit"
	modalHints = "alt+1-4 quick reason · enter reject · esc cancel"
)

// RenderStatus renders the status bar with key hints aligned right
func RenderStatus(status string, loading bool, loadingDots int, modalOpen bool, width int) string {
	left := status
	if loading {
		left += strings.Repeat(".", loadingDots)
	}

	hints := listHints
	if modalOpen {
		hints = modalHints
	}

	gap := width - 2 - lipgloss.Width(left) - lipgloss.Width(hints)
	if gap < 1 {
		return styles.StatusStyle(width).Render(left)
	}
	return styles.StatusStyle(width).Render(left + strings.Repeat(" ", gap) + hints)
}
