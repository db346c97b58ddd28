package controller

import (
	"f2bsentinel/internal/tui/model"

	tea "github.com/charmbracelet/bubbletea"
)

// mainControllerDispatch is the central message routing function. It is the
// only place the model is mutated, and every fail2ban command it triggers
// runs to completion before it returns.
func mainControllerDispatch(m *model.Model, msg tea.Msg) (*model.Model, tea.Cmd) {
	switch msg.(type) {
	case model.TickMsg, tea.MouseMsg, model.NewLogEntryMsg:
	default:
		LogDebug(m, controllerSubsystem, "Received msg: %T", msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch {
		case m.Modal != nil:
			return handleModalKey(m, msg)
		case m.SearchActive:
			return handleSearchKey(m, msg)
		case m.Overlay != model.OverlayNone:
			return handleOverlayKey(m, msg)
		default:
			return handleKeyMsgGlobal(m, msg)
		}

	case tea.MouseMsg:
		return handleMouseMsg(m, msg)

	case tea.WindowSizeMsg:
		return handleWindowSizeMsg(m, msg)

	case model.StartupMsg:
		refresh(m, refreshReset)
		return m, nil

	case model.TickMsg:
		if m.AutoRefresh && m.Now().Sub(m.LastRefresh) >= m.RefreshInterval {
			refresh(m, refreshKeep)
		}
		return m, model.TickCmd()

	case model.NewLogEntryMsg:
		return handleNewLogEntryMsg(m, msg)
	}
	return m, nil
}
