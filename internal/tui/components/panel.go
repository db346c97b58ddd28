package components

import (
	"strings"

	"f2bsentinel/internal/color"

	"github.com/charmbracelet/lipgloss"
)

// Panel is a bordered box of an exact outer size. The first inner row holds
// the title and the remaining rows hold Rows, clipped and padded to fit.
type Panel struct {
	Title   string
	Rows    []string
	Width   int
	Height  int
	Focused bool

	border    *lipgloss.Style
	titleLine string
}

// NewPanel creates a panel with the given title.
func NewPanel(title string) *Panel {
	return &Panel{Title: title}
}

// WithRows sets the rows shown below the title.
func (p *Panel) WithRows(rows []string) *Panel {
	p.Rows = rows
	return p
}

// WithDimensions sets the outer size, border included.
func (p *Panel) WithDimensions(width, height int) *Panel {
	p.Width = width
	p.Height = height
	return p
}

// SetFocused selects the focused border colour.
func (p *Panel) SetFocused(focused bool) *Panel {
	p.Focused = focused
	return p
}

// WithBorder overrides the border style.
func (p *Panel) WithBorder(style lipgloss.Style) *Panel {
	p.border = &style
	return p
}

// WithTitleLine replaces the styled title with a preformatted line.
func (p *Panel) WithTitleLine(line string) *Panel {
	p.titleLine = line
	return p
}

// InnerWidth is the number of columns available to a row.
func (p *Panel) InnerWidth() int {
	return max(p.Width-2, 0)
}

// Render draws the panel. A panel too small for its border renders empty.
func (p *Panel) Render() string {
	innerW, innerH := p.Width-2, p.Height-2
	if innerW < 1 || innerH < 1 {
		return ""
	}

	clip := lipgloss.NewStyle().MaxWidth(innerW)
	lines := make([]string, 0, innerH)
	lines = append(lines, clip.Render(p.renderTitle()))
	for _, row := range p.Rows {
		if len(lines) == innerH {
			break
		}
		lines = append(lines, clip.Render(row))
	}
	for len(lines) < innerH {
		lines = append(lines, "")
	}

	return p.style().
		Width(innerW).
		Height(innerH).
		Render(strings.Join(lines, "\n"))
}

func (p *Panel) style() lipgloss.Style {
	switch {
	case p.border != nil:
		return *p.border
	case p.Focused:
		return color.FocusedPanelBorder
	default:
		return color.PanelBorderStyle
	}
}

func (p *Panel) renderTitle() string {
	if p.titleLine != "" {
		return p.titleLine
	}
	if p.Title == "" {
		return ""
	}
	if p.Focused {
		return color.TitleStyle.Render(p.Title)
	}
	return color.SubtitleStyle.Bold(true).Render(p.Title)
}
