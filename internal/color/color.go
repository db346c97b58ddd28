package color

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ThemeEnv forces the light or dark palette.
const ThemeEnv = "F2BSENTINEL_THEME"

// Define colors
var (
	Primary = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	Success = lipgloss.AdaptiveColor{Light: "#05A167", Dark: "#05D176"}
	Error   = lipgloss.AdaptiveColor{Light: "#E06A56", Dark: "#F97171"}
	Warning = lipgloss.AdaptiveColor{Light: "#E0A956", Dark: "#F9C171"}
	Info    = lipgloss.AdaptiveColor{Light: "#5A9FE0", Dark: "#71B7F9"}
	Subtle  = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"}
	Border  = lipgloss.AdaptiveColor{Light: "#D1D1D1", Dark: "#3C3C3C"}
	Text    = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#EDEDED"}
	Inverse = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1A1A1A"}
)

// Define styles
var (
	SuccessStyle = lipgloss.NewStyle().Foreground(Success)
	ErrorStyle   = lipgloss.NewStyle().Foreground(Error)
	WarningStyle = lipgloss.NewStyle().Foreground(Warning)
	InfoStyle    = lipgloss.NewStyle().Foreground(Info)
	SubtleStyle  = lipgloss.NewStyle().Foreground(Subtle)

	TitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	SubtitleStyle = lipgloss.NewStyle().Foreground(Subtle).Italic(true)
	LabelStyle    = lipgloss.NewStyle().Foreground(Subtle)
	ValueStyle    = lipgloss.NewStyle().Foreground(Text).Bold(true)

	SelectedRowStyle      = lipgloss.NewStyle().Foreground(Inverse).Background(Primary).Bold(true)
	SelectedRowBlurStyle  = lipgloss.NewStyle().Reverse(true)
	PanelBorderStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(Border)
	FocusedPanelBorder    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(Primary)
	ModalBorderStyle      = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(Warning)
	ConfirmButtonStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(Error).Foreground(Error).Bold(true).Align(lipgloss.Center)
	CancelButtonStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(Subtle).Foreground(Text).Align(lipgloss.Center)
	OverlayContainerStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(Primary).Padding(1, 2)

	LogErrorStyle = lipgloss.NewStyle().Foreground(Error)
	LogWarnStyle  = lipgloss.NewStyle().Foreground(Warning)
	LogDebugStyle = lipgloss.NewStyle().Foreground(Subtle)
	LogInfoStyle  = lipgloss.NewStyle().Foreground(Text)
)

// Initialize sets the background lipgloss assumes when resolving adaptive
// colors.
func Initialize(isDarkMode bool) {
	lipgloss.SetHasDarkBackground(isDarkMode)
}

// InitializeFromEnv applies ThemeEnv when it names a theme and reports
// whether it did.
func InitializeFromEnv() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(ThemeEnv))) {
	case "dark":
		Initialize(true)
		return true
	case "light":
		Initialize(false)
		return true
	}
	return false
}
