package view

import (
	"strings"

	"f2bsentinel/internal/color"
	"f2bsentinel/internal/tui/model"

	"github.com/charmbracelet/lipgloss"
)

// Overlay frames are OverlayContainerStyle boxes: a one-cell border plus
// one row and two columns of padding.
const (
	overlayFrameW = 2 + 4
	overlayFrameH = 2 + 2
	// logChromeRows is the title row and the blank row under it.
	logChromeRows = 2
)

// LogViewportSize is the viewport size that fills the log overlay of a
// width x height terminal.
func LogViewportSize(width, height int) (int, int) {
	return max(width-overlayFrameW, 0), max(height-overlayFrameH-logChromeRows, 0)
}

func renderLogOverlay(m *model.Model) string {
	title := color.TitleStyle.Render("Activity Log") +
		color.SubtleStyle.Render("  (up/down scroll, L or esc close)")
	content := lipgloss.JoinVertical(lipgloss.Left, title, "", m.LogViewport.View())
	return color.OverlayContainerStyle.
		Width(max(m.Width-2, 0)).
		Height(max(m.Height-2, 0)).
		Render(content)
}

func renderHelpOverlay(m *model.Model) string {
	h := m.Help
	h.ShowAll = true
	content := lipgloss.JoinVertical(lipgloss.Left,
		color.TitleStyle.Render(AppTitle+" keys"),
		"",
		h.FullHelpView(m.Keys.FullHelp()),
		"",
		color.SubtleStyle.Render("Click a jail or address to select it. Press ? or esc to close."),
	)
	return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center,
		color.OverlayContainerStyle.Render(content))
}

// PrepareLogContent colours activity log lines by their level marker.
func PrepareLogContent(lines []string) string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = styleLogLine(l)
	}
	return strings.Join(out, "\n")
}

func styleLogLine(l string) string {
	switch {
	case strings.Contains(l, "[ERROR]"):
		return color.LogErrorStyle.Render(l)
	case strings.Contains(l, "[WARN]"):
		return color.LogWarnStyle.Render(l)
	case strings.Contains(l, "[DEBUG]"):
		return color.LogDebugStyle.Render(l)
	default:
		return color.LogInfoStyle.Render(l)
	}
}
