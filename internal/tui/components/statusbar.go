package components

import (
	"strings"

	"f2bsentinel/internal/color"
	"f2bsentinel/internal/tui/model"

	"github.com/charmbracelet/lipgloss"
)

// StatusBar is the bordered footer: a key legend above the status message
// and the right-aligned indicators.
type StatusBar struct {
	Width       int
	Legend      string
	Message     string
	MessageType model.MessageType
	Indicators  []string
}

// NewStatusBar creates a status bar of the given outer width.
func NewStatusBar(width int) *StatusBar {
	return &StatusBar{Width: width}
}

// WithLegend sets the key legend line.
func (s *StatusBar) WithLegend(legend string) *StatusBar {
	s.Legend = legend
	return s
}

// WithMessage sets the status message.
func (s *StatusBar) WithMessage(message string, msgType model.MessageType) *StatusBar {
	s.Message = message
	s.MessageType = msgType
	return s
}

// WithIndicators sets the right-aligned indicators.
func (s *StatusBar) WithIndicators(indicators ...string) *StatusBar {
	s.Indicators = indicators
	return s
}

// Render returns the four-line footer.
func (s *StatusBar) Render() string {
	right := strings.Join(s.Indicators, color.SubtleStyle.Render(" | "))
	message := s.messageStyle().Render(s.Message)

	inner := s.Width - 2
	if avail := inner - lipgloss.Width(right) - 1; lipgloss.Width(message) > avail && avail > 0 {
		message = lipgloss.NewStyle().MaxWidth(avail).Render(message)
	}

	return NewPanel("").
		WithDimensions(s.Width, 4).
		WithTitleLine(color.SubtleStyle.Render(s.Legend)).
		WithRows([]string{Spread(message, right, inner)}).
		Render()
}

func (s *StatusBar) messageStyle() lipgloss.Style {
	switch s.MessageType {
	case model.StatusBarSuccess:
		return color.SuccessStyle
	case model.StatusBarError:
		return color.ErrorStyle
	case model.StatusBarWarning:
		return color.WarningStyle
	default:
		return color.InfoStyle
	}
}
