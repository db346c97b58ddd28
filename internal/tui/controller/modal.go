package controller

import (
	"fmt"

	"f2bsentinel/internal/tui/model"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// handleModalKey routes a key to the open modal.
func handleModalKey(m *model.Model, keyMsg tea.KeyMsg) (*model.Model, tea.Cmd) {
	switch md := m.Modal.(type) {
	case model.NewBanInput:
		return handleBanInputKey(m, md, keyMsg)
	case model.ConfirmUnban, model.ConfirmUnbanAll:
		switch {
		case key.Matches(keyMsg, m.Keys.Confirm):
			return confirmModal(m)
		case key.Matches(keyMsg, m.Keys.Cancel):
			return cancelModal(m)
		}
		return m, nil
	}
	panic(fmt.Sprintf("controller: unhandled modal %T", m.Modal))
}

// confirmModal performs the confirm action of the open modal. It is shared
// by the confirm keys and the confirm button.
func confirmModal(m *model.Model) (*model.Model, tea.Cmd) {
	switch md := m.Modal.(type) {
	case model.ConfirmUnban:
		performUnban(m, md)
	case model.ConfirmUnbanAll:
		if md.Step == model.UnbanAllFirst {
			md.Step = model.UnbanAllFinal
			m.Modal = md
			m.SetStatusMessage("second confirmation required", model.StatusBarWarning)
			break
		}
		performUnbanAll(m, md)
	case model.NewBanInput:
		submitBan(m, md)
	default:
		panic(fmt.Sprintf("controller: unhandled modal %T", m.Modal))
	}
	return m, nil
}

// cancelModal closes the open modal without acting.
func cancelModal(m *model.Model) (*model.Model, tea.Cmd) {
	m.Modal = nil
	m.SetStatusMessage("Action canceled", model.StatusBarInfo)
	return m, nil
}
