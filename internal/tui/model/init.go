package model

import (
	"time"

	"f2bsentinel/internal/config"
	"f2bsentinel/internal/enrich"
	"f2bsentinel/internal/fail2ban"
	"f2bsentinel/pkg/logging"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// TickInterval is how often the auto-refresh timer is checked.
const TickInterval = 200 * time.Millisecond

// DefaultKeyMap returns a KeyMap with the default bindings used by the TUI.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		ToggleAuto: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "toggle auto-refresh"),
		),
		ToggleSort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "toggle sort"),
		),
		Ban: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "ban ip"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		ClearFilter: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear filter"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch panel"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open/unban"),
		),
		Unban: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "unban"),
		),
		UnbanAll: key.NewBinding(
			key.WithKeys("U"),
			key.WithHelp("U", "unban all"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy ip"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		ToggleLog: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "activity log"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "Y", "enter"),
			key.WithHelp("y/enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n/esc", "cancel"),
		),
	}
}

// InitialModel builds the dashboard state from the loaded configuration.
// The snapshot is empty until the first refresh.
func InitialModel(cfg config.Config, client *fail2ban.Client, enricher *enrich.Enricher, logChannel <-chan logging.LogEntry, debugMode bool) *Model {
	interval := cfg.Dashboard.RefreshInterval
	if interval < config.MinRefreshInterval {
		interval = config.MinRefreshInterval
	}

	return &Model{
		SelectedJail:     NoSelection,
		SelectedRow:      NoSelection,
		Focus:            FocusJails,
		SortMode:         ParseSortMode(cfg.Dashboard.SortMode),
		AutoRefresh:      cfg.Dashboard.AutoRefreshEnabled(),
		RefreshInterval:  interval,
		ActivityLog:      make([]string, 0),
		ActivityLogDirty: true,
		LogViewport:      viewport.New(0, 0),
		Keys:             DefaultKeyMap(),
		Help:             help.New(),
		Client:           client,
		Enricher:         enricher,
		LogChannel:       logChannel,
		DebugMode:        debugMode,
		Now:              time.Now,
	}
}

// Init implements tea.Model: it requests the first refresh, starts the
// auto-refresh ticker and listens for log entries.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return StartupMsg{} },
		TickCmd(),
		ListenForLogEntriesCmd(m.LogChannel),
	)
}
