package view

import (
	"fmt"
	"strings"

	"f2bsentinel/internal/color"
	"f2bsentinel/internal/tui/components"
	"f2bsentinel/internal/tui/model"

	"github.com/charmbracelet/lipgloss"
)

// renderModal draws the open modal as a box of exactly l.Modal's size with
// the Confirm and Cancel buttons on its bottom rows.
func renderModal(m *model.Model, l Layout) string {
	title, body, confirmLabel := modalContent(m)

	inner := l.Modal.Inner()
	bodyRows := inner.H - titleRows - buttonHeight
	rows := make([]string, 0, inner.H)
	for _, line := range body {
		if len(rows) == bodyRows {
			break
		}
		rows = append(rows, lipgloss.PlaceHorizontal(inner.W, lipgloss.Center, line))
	}
	for len(rows) < bodyRows {
		rows = append(rows, "")
	}
	rows = append(rows, strings.Split(renderButtons(l, confirmLabel), "\n")...)

	return components.NewPanel("").
		WithTitleLine(lipgloss.PlaceHorizontal(inner.W, lipgloss.Center, color.TitleStyle.Render(title))).
		WithDimensions(l.Modal.W, l.Modal.H).
		WithBorder(color.ModalBorderStyle).
		WithRows(rows).
		Render()
}

func renderButtons(l Layout, confirmLabel string) string {
	confirm := color.ConfirmButtonStyle.Width(max(l.ConfirmButton.W-2, 0)).Render(confirmLabel)
	cancel := color.CancelButtonStyle.Width(max(l.CancelButton.W-2, 0)).Render("Cancel (esc)")
	return lipgloss.JoinHorizontal(lipgloss.Top, confirm, cancel)
}

// modalContent returns the title, body lines and confirm button label of
// the open modal.
func modalContent(m *model.Model) (string, []string, string) {
	switch md := m.Modal.(type) {
	case model.ConfirmUnban:
		return "Confirm unban", []string{
			"",
			fmt.Sprintf("Unban %s from jail %s?", color.ValueStyle.Render(md.IP), md.Jail),
		}, "Unban (y)"

	case model.ConfirmUnbanAll:
		count := 0
		if j := m.Snapshot.Jail(md.Jail); j != nil {
			count = len(j.Bans)
		}
		if md.Step == model.UnbanAllFirst {
			return "Unban all", []string{
				"",
				fmt.Sprintf("Unban ALL %d addresses from jail %s?", count, md.Jail),
			}, "Continue (y)"
		}
		return "Unban all: final confirmation", []string{
			"",
			color.WarningStyle.Render("Second confirmation required."),
			fmt.Sprintf("Remove every ban in %s. This cannot be undone.", md.Jail),
		}, "Unban all (y)"

	case model.NewBanInput:
		body := []string{
			"",
			color.LabelStyle.Render("Address: ") + color.ValueStyle.Render(md.Input) + "_",
			"",
		}
		if md.Err != "" {
			body = append(body, color.ErrorStyle.Render(md.Err))
		}
		return "Ban address in " + md.Jail, body, "Ban (enter)"
	}
	panic(fmt.Sprintf("view: unhandled modal %T", m.Modal))
}
