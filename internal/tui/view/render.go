package view

import (
	"fmt"
	"strings"
	"time"

	"f2bsentinel/internal/color"
	"f2bsentinel/internal/fail2ban"
	"f2bsentinel/internal/tui/components"
	"f2bsentinel/internal/tui/model"
	"f2bsentinel/internal/tui/utils"

	"github.com/charmbracelet/lipgloss"
)

// AppTitle is shown in the header.
const AppTitle = "Fail2Ban Sentinel"

// Render draws one frame of the model. It never mutates m.
func Render(m *model.Model) string {
	if m.Width == 0 || m.Height == 0 {
		return "Initializing..."
	}
	l := ComputeLayout(m.Width, m.Height)
	if l.TooSmall() {
		msg := fmt.Sprintf("Terminal too small (%dx%d), need at least %dx%d", m.Width, m.Height, MinWidth, MinHeight)
		return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, color.WarningStyle.Render(msg))
	}

	switch m.Overlay {
	case model.OverlayHelp:
		return renderHelpOverlay(m)
	case model.OverlayLog:
		return renderLogOverlay(m)
	}

	lines := dashboardLines(m, l)
	if m.Modal != nil {
		lines = overlayAt(lines, renderModal(m, l), l.Modal)
	}
	return strings.Join(lines, "\n")
}

// dashboardLines renders every panel and returns exactly l.Height lines.
func dashboardLines(m *model.Model, l Layout) []string {
	left := lipgloss.JoinVertical(lipgloss.Left, renderJails(m, l), renderDetails(m, l))
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, renderBans(m, l))
	frame := lipgloss.JoinVertical(lipgloss.Left, renderHeader(m, l), body, renderFooter(m, l))

	lines := strings.Split(frame, "\n")
	for len(lines) < l.Height {
		lines = append(lines, "")
	}
	return lines[:l.Height]
}

// overlayAt replaces the rows covered by r with the lines of box, indented
// to r.X. Cells of the replaced rows outside the box are blanked.
func overlayAt(lines []string, box string, r Rect) []string {
	pad := strings.Repeat(" ", r.X)
	for i, row := range strings.Split(box, "\n") {
		y := r.Y + i
		if y < 0 || y >= len(lines) || i >= r.H {
			break
		}
		lines[y] = pad + row
	}
	return lines
}

func renderHeader(m *model.Model, l Layout) string {
	updated := "never"
	if !m.LastRefresh.IsZero() {
		updated = m.LastRefresh.Format("15:04:05")
	}
	right := fmt.Sprintf("%s %d  %s %d  %s %s",
		color.LabelStyle.Render("Jails:"), len(m.Snapshot.Jails),
		color.LabelStyle.Render("Banned:"), m.Snapshot.TotalBanned(),
		color.LabelStyle.Render("Updated:"), updated)
	return components.NewHeader(AppTitle).
		WithSubtitle("jail monitor").
		WithRightContent(right).
		WithWidth(l.Header.W).
		Render()
}

func renderJails(m *model.Model, l Layout) string {
	inner := l.Jails.Inner().W
	visible := l.JailsContent.H
	offset := ListOffset(m.SelectedJail, visible)

	var rows []string
	if len(m.Snapshot.Jails) == 0 {
		rows = append(rows, color.SubtleStyle.Render("No jails"))
	}
	for i := offset; i < len(m.Snapshot.Jails) && i < offset+visible; i++ {
		j := m.Snapshot.Jails[i]
		line := utils.SpreadLine(j.Name, fmt.Sprintf("%d", len(j.Bans)), inner)
		rows = append(rows, selectable(line, inner, i == m.SelectedJail, m.Focus == model.FocusJails))
	}

	return components.NewPanel(fmt.Sprintf("Jails (%d)", len(m.Snapshot.Jails))).
		WithDimensions(l.Jails.W, l.Jails.H).
		WithRows(rows).
		SetFocused(m.Focus == model.FocusJails && m.Modal == nil).
		Render()
}

func renderBans(m *model.Model, l Layout) string {
	inner := l.Bans.Inner().W
	visible := l.BansContent.H
	jail := m.CurrentJail()
	projection := m.Projection()
	offset := ListOffset(m.SelectedRow, visible)

	title := "Banned addresses"
	if jail != nil {
		title = fmt.Sprintf("Banned in %s (%d/%d)", jail.Name, len(projection), len(jail.Bans))
	}
	title += "  sort: " + m.SortMode.String()

	var rows []string
	switch {
	case jail == nil:
		rows = append(rows, color.SubtleStyle.Render("Select a jail"))
	case len(projection) == 0 && m.SearchQuery != "":
		rows = append(rows, color.SubtleStyle.Render(fmt.Sprintf("No addresses match %q", m.SearchQuery)))
	case len(projection) == 0:
		rows = append(rows, color.SubtleStyle.Render("No banned addresses"))
	}
	for i := offset; i < len(projection) && i < offset+visible; i++ {
		rows = append(rows, selectable(banRow(m, projection[i], inner), inner, i == m.SelectedRow, m.Focus == model.FocusBans))
	}

	return components.NewPanel(title).
		WithDimensions(l.Bans.W, l.Bans.H).
		WithRows(rows).
		SetFocused(m.Focus == model.FocusBans && m.Modal == nil).
		Render()
}

// banRow is the address on the left and its annotation on the right: the
// time left, preceded by the country code when GeoIP knows it.
func banRow(m *model.Model, e *fail2ban.BanEntry, width int) string {
	annotation := e.TimeLeftLabel()
	if geo := m.Enricher.Lookup(e.IP); geo.CountryCode != "" {
		annotation = geo.CountryCode + "  " + annotation
	}
	return utils.SpreadLine(e.IP, annotation, width)
}

// selectable fits line to width and highlights it when selected. The
// highlight is dimmer when the list is not focused.
func selectable(line string, width int, selected, focused bool) string {
	line = utils.FitWidth(line, width)
	if !selected {
		return line
	}
	if focused {
		return color.SelectedRowStyle.Render(line)
	}
	return color.SelectedRowBlurStyle.Render(line)
}

func renderDetails(m *model.Model, l Layout) string {
	var rows []string
	field := func(label, value string) {
		rows = append(rows, color.LabelStyle.Render(label+": ")+color.ValueStyle.Render(value))
	}

	jail := m.CurrentJail()
	if jail == nil {
		rows = append(rows, color.SubtleStyle.Render("No jail selected"))
	} else {
		field("Jail", jail.Name)
		field("Ban time", jail.Bantime.Display())
		field("Find time", jail.Findtime.Display())
		field("Max retry", fail2ban.FormatCount(jail.MaxRetry))
		field("Banned", fmt.Sprintf("%s now, %s total", fail2ban.FormatCount(jail.CurrentlyBanned), fail2ban.FormatCount(jail.TotalBanned)))
	}

	if e := m.SelectedEntry(); e != nil {
		field("Address", e.IP)
		expires := e.TimeLeftLabel()
		if e.ExpiryEpoch != nil {
			expires = fmt.Sprintf("%s (%s)", formatEpoch(*e.ExpiryEpoch), expires)
		}
		field("Expires", expires)
		if geo := m.Enricher.Lookup(e.IP); !geo.Empty() {
			field("Origin", describeOrigin(geo.Country, geo.City, geo.ASN, geo.ASNName))
		}
	}

	return components.NewPanel("Details").
		WithDimensions(l.Details.W, l.Details.H).
		WithRows(rows).
		Render()
}

func formatEpoch(epoch int64) string {
	return time.Unix(epoch, 0).Local().Format("2006-01-02 15:04:05")
}

func describeOrigin(country, city string, asn uint, asnName string) string {
	var parts []string
	if city != "" {
		parts = append(parts, city)
	}
	if country != "" {
		parts = append(parts, country)
	}
	if asn != 0 {
		parts = append(parts, fmt.Sprintf("AS%d %s", asn, asnName))
	}
	return strings.TrimSpace(strings.Join(parts, ", "))
}

func renderFooter(m *model.Model, l Layout) string {
	var legend string
	switch {
	case m.Modal != nil:
		legend = m.Help.ShortHelpView(m.Keys.ModalKeyMap().ShortHelp())
	case m.SearchActive:
		legend = "type to filter · enter apply · esc cancel"
	default:
		legend = m.Help.ShortHelpView(m.Keys.ShortHelp())
	}

	var indicators []string
	if m.SearchActive {
		indicators = append(indicators, components.NewIndicator("search", m.SearchQuery+"_", true).Render())
	} else if m.SearchQuery != "" {
		indicators = append(indicators, components.NewIndicator("filter", m.SearchQuery, true).Render())
	}
	indicators = append(indicators,
		components.NewIndicator("sort", m.SortMode.String(), false).Render(),
		components.OnOff("auto", m.AutoRefresh).Render())

	return components.NewStatusBar(l.Footer.W).
		WithLegend(legend).
		WithMessage(m.StatusMessage, m.StatusMessageType).
		WithIndicators(indicators...).
		Render()
}
