package controller

import (
	"f2bsentinel/internal/tui/model"
	"f2bsentinel/internal/tui/view"

	tea "github.com/charmbracelet/bubbletea"
)

// handleMouseMsg maps left presses onto the geometry the view draws with.
// The log overlay also takes wheel events for scrolling.
func handleMouseMsg(m *model.Model, msg tea.MouseMsg) (*model.Model, tea.Cmd) {
	if m.Overlay == model.OverlayLog {
		var cmd tea.Cmd
		m.LogViewport, cmd = m.LogViewport.Update(msg)
		return m, cmd
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if m.SearchActive || m.Overlay != model.OverlayNone {
		return m, nil
	}

	l := view.ComputeLayout(m.Width, m.Height)
	if l.TooSmall() {
		return m, nil
	}

	if m.Modal != nil {
		switch {
		case l.ConfirmButton.Contains(msg.X, msg.Y):
			return confirmModal(m)
		case l.CancelButton.Contains(msg.X, msg.Y):
			return cancelModal(m)
		}
		return m, nil
	}

	switch {
	case l.JailsContent.Contains(msg.X, msg.Y):
		if i, ok := view.RowAt(l.JailsContent, msg.Y, m.SelectedJail, len(m.Snapshot.Jails)); ok {
			m.SelectJail(i)
		}
	case l.BansContent.Contains(msg.X, msg.Y):
		if i, ok := view.RowAt(l.BansContent, msg.Y, m.SelectedRow, len(m.Projection())); ok {
			m.Focus = model.FocusBans
			m.SelectedRow = i
			openConfirmUnban(m)
		}
	}
	return m, nil
}
