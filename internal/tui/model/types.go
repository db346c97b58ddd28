package model

import (
	"strings"
	"time"

	"f2bsentinel/internal/enrich"
	"f2bsentinel/internal/fail2ban"
	"f2bsentinel/pkg/logging"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
)

// NoSelection marks an empty jail or row selection.
const NoSelection = -1

// Focus is the panel receiving navigation keys.
type Focus int

const (
	FocusJails Focus = iota
	FocusBans
)

func (f Focus) String() string {
	if f == FocusBans {
		return "bans"
	}
	return "jails"
}

// Toggle returns the other panel.
func (f Focus) Toggle() Focus {
	if f == FocusJails {
		return FocusBans
	}
	return FocusJails
}

// SortMode orders the bans list.
type SortMode int

const (
	SortByIP SortMode = iota
	SortByTimeLeft
)

func (s SortMode) String() string {
	if s == SortByTimeLeft {
		return "time left"
	}
	return "ip"
}

// Toggle returns the other sort mode.
func (s SortMode) Toggle() SortMode {
	if s == SortByIP {
		return SortByTimeLeft
	}
	return SortByIP
}

// ParseSortMode maps the config names "ip" and "timeleft".
func ParseSortMode(s string) SortMode {
	if strings.EqualFold(strings.TrimSpace(s), "timeleft") {
		return SortByTimeLeft
	}
	return SortByIP
}

// Overlay is a full-screen panel drawn over the dashboard.
type Overlay int

const (
	OverlayNone Overlay = iota
	OverlayHelp
	OverlayLog
)

// MessageType represents the type of status bar message
type MessageType int

const (
	StatusBarInfo MessageType = iota
	StatusBarSuccess
	StatusBarError
	StatusBarWarning
)

// KeyMap defines the keybindings for the dashboard.
type KeyMap struct {
	Quit        key.Binding
	Refresh     key.Binding
	ToggleAuto  key.Binding
	ToggleSort  key.Binding
	Ban         key.Binding
	Search      key.Binding
	ClearFilter key.Binding
	Tab         key.Binding
	Up          key.Binding
	Down        key.Binding
	Enter       key.Binding
	Unban       key.Binding
	UnbanAll    key.Binding
	Copy        key.Binding
	Help        key.Binding
	ToggleLog   key.Binding

	Confirm key.Binding
	Cancel  key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Tab, k.Unban, k.Ban, k.Search, k.Refresh, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Tab, k.Enter},
		{k.Unban, k.UnbanAll, k.Ban, k.Copy},
		{k.Search, k.ClearFilter, k.ToggleSort},
		{k.Refresh, k.ToggleAuto, k.ToggleLog, k.Help, k.Quit},
	}
}

// ModalKeyMap returns the bindings shown while a confirmation is open.
func (k KeyMap) ModalKeyMap() help.KeyMap {
	return modalKeys{k}
}

type modalKeys struct{ k KeyMap }

func (m modalKeys) ShortHelp() []key.Binding  { return []key.Binding{m.k.Confirm, m.k.Cancel} }
func (m modalKeys) FullHelp() [][]key.Binding { return [][]key.Binding{m.ShortHelp()} }

// Model is the whole dashboard state. The controller is its only mutator.
type Model struct {
	Snapshot fail2ban.Snapshot

	// SelectedJail indexes Snapshot.Jails; SelectedRow indexes the current
	// projection of that jail, not its Bans slice.
	SelectedJail int
	SelectedRow  int
	Focus        Focus

	Modal        Modal
	SearchQuery  string
	SearchActive bool
	SortMode     SortMode

	AutoRefresh     bool
	RefreshInterval time.Duration
	LastRefresh     time.Time

	StatusMessage     string
	StatusMessageType MessageType

	Width  int
	Height int

	Overlay          Overlay
	ActivityLog      []string
	ActivityLogDirty bool
	LogViewport      viewport.Model
	Keys             KeyMap
	Help             help.Model

	Client     *fail2ban.Client
	Enricher   *enrich.Enricher
	LogChannel <-chan logging.LogEntry
	DebugMode  bool

	// Now is the clock used for refresh timing.
	Now func() time.Time
}

// SetStatusMessage replaces the status line.
func (m *Model) SetStatusMessage(message string, msgType MessageType) {
	m.StatusMessage = message
	m.StatusMessageType = msgType
}
