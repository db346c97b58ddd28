package components

import (
	"strings"

	"f2bsentinel/internal/color"

	"github.com/charmbracelet/lipgloss"
)

// Header is the bordered title bar at the top of the dashboard.
type Header struct {
	Title        string
	Subtitle     string
	RightContent string
	Width        int
}

// NewHeader creates a header.
func NewHeader(title string) *Header {
	return &Header{Title: title, Width: 80}
}

// WithSubtitle adds a subtitle after the title.
func (h *Header) WithSubtitle(subtitle string) *Header {
	h.Subtitle = subtitle
	return h
}

// WithRightContent adds right-aligned content.
func (h *Header) WithRightContent(content string) *Header {
	h.RightContent = content
	return h
}

// WithWidth sets the outer width.
func (h *Header) WithWidth(width int) *Header {
	h.Width = width
	return h
}

// Render returns the three-line header.
func (h *Header) Render() string {
	left := color.TitleStyle.Render(h.Title)
	if h.Subtitle != "" {
		left += "  " + color.SubtitleStyle.Render(h.Subtitle)
	}
	return NewPanel("").
		WithDimensions(h.Width, 3).
		WithTitleLine(Spread(left, h.RightContent, h.Width-2)).
		Render()
}

// Spread places left and right on one line of width cells. Styled strings
// are measured by their printed width. When both do not fit, right is
// dropped.
func Spread(left, right string, width int) string {
	lw, rw := lipgloss.Width(left), lipgloss.Width(right)
	if right == "" || lw+rw+1 > width {
		return left
	}
	return left + strings.Repeat(" ", width-lw-rw) + right
}
