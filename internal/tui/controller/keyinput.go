package controller

import (
	"unicode"

	"f2bsentinel/internal/tui/model"
	"f2bsentinel/internal/tui/utils"

	tea "github.com/charmbracelet/bubbletea"
)

// editText applies a printable key or backspace to s. ok is false for any
// other key. Alt-modified keys are ignored and control runes inside a paste
// are dropped.
func editText(s string, keyMsg tea.KeyMsg) (string, bool) {
	if keyMsg.Alt {
		return s, false
	}
	switch keyMsg.Type {
	case tea.KeyBackspace:
		return utils.DropLastRune(s), true
	case tea.KeySpace:
		return s + " ", true
	case tea.KeyRunes:
		printable := make([]rune, 0, len(keyMsg.Runes))
		for _, r := range keyMsg.Runes {
			if unicode.IsPrint(r) {
				printable = append(printable, r)
			}
		}
		if len(printable) == 0 {
			return s, false
		}
		return s + string(printable), true
	}
	return s, false
}

// handleSearchKey edits the filter query. The filter applies while typing.
func handleSearchKey(m *model.Model, keyMsg tea.KeyMsg) (*model.Model, tea.Cmd) {
	switch keyMsg.Type {
	case tea.KeyEnter:
		m.SearchActive = false
		m.ResetRow()
		m.SetStatusMessage("Filter applied", model.StatusBarInfo)
		return m, nil
	case tea.KeyEsc:
		// The typed query stays active.
		m.SearchActive = false
		m.ClampSelection()
		m.SetStatusMessage("Filter canceled", model.StatusBarInfo)
		return m, nil
	}

	if q, ok := editText(m.SearchQuery, keyMsg); ok {
		m.SearchQuery = q
		m.ClampSelection()
	}
	return m, nil
}

// handleBanInputKey edits the address of the ban modal. Letters are input
// here, so only esc cancels and only enter confirms.
func handleBanInputKey(m *model.Model, in model.NewBanInput, keyMsg tea.KeyMsg) (*model.Model, tea.Cmd) {
	switch keyMsg.Type {
	case tea.KeyEnter:
		return confirmModal(m)
	case tea.KeyEsc:
		return cancelModal(m)
	}

	if input, ok := editText(in.Input, keyMsg); ok {
		in.Input = input
		in.Err = ""
		m.Modal = in
	}
	return m, nil
}
