package controller

import (
	"f2bsentinel/internal/tui/model"
	"f2bsentinel/internal/tui/view"

	tea "github.com/charmbracelet/bubbletea"
)

// handleWindowSizeMsg records the terminal size and resizes the log viewport
// to fill its overlay.
func handleWindowSizeMsg(m *model.Model, msg tea.WindowSizeMsg) (*model.Model, tea.Cmd) {
	m.Width = msg.Width
	m.Height = msg.Height
	m.Help.Width = max(msg.Width-2, 0)

	m.LogViewport.Width, m.LogViewport.Height = view.LogViewportSize(msg.Width, msg.Height)
	if m.Overlay == model.OverlayLog {
		syncLogViewport(m)
	}
	return m, nil
}

// syncLogViewport reloads the viewport from the activity log when it changed.
func syncLogViewport(m *model.Model) {
	if !m.ActivityLogDirty {
		return
	}
	atBottom := m.LogViewport.AtBottom()
	m.LogViewport.SetContent(view.PrepareLogContent(m.ActivityLog))
	if atBottom || m.LogViewport.YOffset == 0 {
		m.LogViewport.GotoBottom()
	}
	m.ActivityLogDirty = false
}
