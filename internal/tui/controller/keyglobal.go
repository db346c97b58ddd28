package controller

import (
	"fmt"
	"strings"

	"f2bsentinel/internal/tui/model"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// handleKeyMsgGlobal processes key presses while browsing: no modal, no
// search input and no overlay.
func handleKeyMsgGlobal(m *model.Model, keyMsg tea.KeyMsg) (*model.Model, tea.Cmd) {
	k := m.Keys
	switch {
	case key.Matches(keyMsg, k.Quit):
		return m, tea.Quit

	case key.Matches(keyMsg, k.Refresh):
		refresh(m, refreshReset)

	case key.Matches(keyMsg, k.ToggleAuto):
		m.AutoRefresh = !m.AutoRefresh
		if m.AutoRefresh {
			m.SetStatusMessage(fmt.Sprintf("Auto-refresh on (every %s)", m.RefreshInterval), model.StatusBarInfo)
		} else {
			m.SetStatusMessage("Auto-refresh off", model.StatusBarInfo)
		}

	case key.Matches(keyMsg, k.ToggleSort):
		m.SortMode = m.SortMode.Toggle()
		m.ResetRow()
		m.SetStatusMessage("Sorted by "+m.SortMode.String(), model.StatusBarInfo)

	case key.Matches(keyMsg, k.Ban):
		jail := m.CurrentJail()
		if jail == nil {
			m.SetStatusMessage("No jail selected", model.StatusBarWarning)
			break
		}
		m.Modal = model.NewBanInput{Jail: jail.Name}

	case key.Matches(keyMsg, k.Search):
		m.SearchActive = true

	case key.Matches(keyMsg, k.ClearFilter):
		m.SearchQuery = ""
		m.ResetRow()
		m.SetStatusMessage("Filter cleared", model.StatusBarInfo)

	case key.Matches(keyMsg, k.Tab):
		m.Focus = m.Focus.Toggle()

	case key.Matches(keyMsg, k.Up):
		moveCursor(m, -1)

	case key.Matches(keyMsg, k.Down):
		moveCursor(m, 1)

	case key.Matches(keyMsg, k.Enter):
		if m.Focus == model.FocusJails {
			m.Focus = model.FocusBans
			break
		}
		openConfirmUnban(m)

	case key.Matches(keyMsg, k.Unban):
		openConfirmUnban(m)

	case key.Matches(keyMsg, k.UnbanAll):
		jail := m.CurrentJail()
		switch {
		case jail == nil:
			m.SetStatusMessage("No jail selected", model.StatusBarWarning)
		case len(jail.Bans) == 0:
			m.SetStatusMessage(fmt.Sprintf("No addresses to unban in %s", jail.Name), model.StatusBarWarning)
		default:
			m.Modal = model.ConfirmUnbanAll{Jail: jail.Name, Step: model.UnbanAllFirst}
		}

	case key.Matches(keyMsg, k.Copy):
		copySelected(m)

	case key.Matches(keyMsg, k.Help):
		m.Overlay = model.OverlayHelp

	case key.Matches(keyMsg, k.ToggleLog):
		m.Overlay = model.OverlayLog
		m.ActivityLogDirty = true
		syncLogViewport(m)
		m.LogViewport.GotoBottom()
	}
	return m, nil
}

func moveCursor(m *model.Model, delta int) {
	if m.Focus == model.FocusJails {
		m.MoveJail(delta)
		return
	}
	m.MoveRow(delta)
}

// openConfirmUnban asks to unban the selected row, if there is one.
func openConfirmUnban(m *model.Model) {
	jail, e := m.CurrentJail(), m.SelectedEntry()
	if jail == nil || e == nil {
		m.SetStatusMessage("No address selected", model.StatusBarWarning)
		return
	}
	m.Modal = model.ConfirmUnban{Jail: jail.Name, IP: e.IP}
}

// handleOverlayKey handles the help and activity log overlays.
func handleOverlayKey(m *model.Model, keyMsg tea.KeyMsg) (*model.Model, tea.Cmd) {
	if m.Overlay == model.OverlayHelp {
		if key.Matches(keyMsg, m.Keys.Help) || keyMsg.Type == tea.KeyEsc {
			m.Overlay = model.OverlayNone
		}
		return m, nil
	}

	switch keyMsg.String() {
	case "L", "esc":
		m.Overlay = model.OverlayNone
		return m, nil
	case "y":
		if err := writeClipboard(strings.Join(m.ActivityLog, "\n")); err != nil {
			LogError(controllerSubsystem, err, "Failed to copy logs")
			m.SetStatusMessage("Copy logs failed", model.StatusBarError)
			return m, nil
		}
		m.SetStatusMessage("Logs copied to clipboard", model.StatusBarSuccess)
		return m, nil
	case "k", "up", "j", "down", "pgup", "pgdown", "home", "end":
		var cmd tea.Cmd
		m.LogViewport, cmd = m.LogViewport.Update(keyMsg)
		return m, cmd
	}
	return m, nil
}
