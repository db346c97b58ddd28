package model

import (
	"testing"
	"time"

	"f2bsentinel/internal/config"
	"f2bsentinel/internal/fail2ban"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSnapshot() fail2ban.Snapshot {
	return fail2ban.Snapshot{Jails: []fail2ban.JailState{
		{Name: "sshd", Bans: []fail2ban.BanEntry{{IP: "10.0.0.3"}, {IP: "10.0.0.1"}, {IP: "10.0.0.2"}}},
		{Name: "nginx", Bans: []fail2ban.BanEntry{{IP: "192.168.0.1"}}},
		{Name: "idle"},
	}}
}

func newTestModel() *Model {
	m := InitialModel(config.GetDefaultConfig(), nil, nil, nil, false)
	m.ReplaceSnapshot(testSnapshot(), false)
	return m
}

func TestInitialModel(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.Dashboard.SortMode = config.SortModeTimeLeft
	cfg.Dashboard.AutoRefresh = config.Bool(false)
	cfg.Dashboard.RefreshInterval = 10 * time.Millisecond

	m := InitialModel(cfg, nil, nil, nil, true)
	assert.Equal(t, NoSelection, m.SelectedJail)
	assert.Equal(t, NoSelection, m.SelectedRow)
	assert.Equal(t, SortByTimeLeft, m.SortMode)
	assert.False(t, m.AutoRefresh)
	assert.Equal(t, config.MinRefreshInterval, m.RefreshInterval)
	assert.Nil(t, m.Modal)
	assert.True(t, m.DebugMode)
}

func TestReplaceSnapshot_ResetSelection(t *testing.T) {
	m := newTestModel()
	assert.Equal(t, 0, m.SelectedJail)
	assert.Equal(t, 0, m.SelectedRow)
	require.NotNil(t, m.SelectedEntry())
	assert.Equal(t, "10.0.0.1", m.SelectedEntry().IP)

	m.ReplaceSnapshot(fail2ban.Snapshot{}, false)
	assert.Equal(t, NoSelection, m.SelectedJail)
	assert.Equal(t, NoSelection, m.SelectedRow)
	assert.Nil(t, m.CurrentJail())
	assert.Nil(t, m.SelectedEntry())
}

func TestReplaceSnapshot_KeepSelectionByName(t *testing.T) {
	m := newTestModel()
	m.MoveRow(2)
	require.Equal(t, "10.0.0.3", m.SelectedEntry().IP)

	next := testSnapshot()
	next.Jails[0], next.Jails[1] = next.Jails[1], next.Jails[0]
	next.Jails[1].Bans = next.Jails[1].Bans[:1]
	m.ReplaceSnapshot(next, true)

	assert.Equal(t, 1, m.SelectedJail, "jail followed by name")
	require.NotNil(t, m.SelectedEntry())
	assert.Equal(t, "10.0.0.3", m.SelectedEntry().IP, "row followed by address")

	next = testSnapshot()
	next.Jails[0].Bans = []fail2ban.BanEntry{{IP: "10.0.0.1"}}
	m.ReplaceSnapshot(next, true)
	assert.Equal(t, 0, m.SelectedJail)
	assert.Equal(t, 0, m.SelectedRow, "vanished address clamps into the projection")
}

func TestMoveJailAndRow(t *testing.T) {
	m := newTestModel()

	m.MoveRow(1)
	assert.Equal(t, 1, m.SelectedRow)
	m.MoveRow(10)
	assert.Equal(t, 2, m.SelectedRow)
	m.MoveRow(-10)
	assert.Equal(t, 0, m.SelectedRow)

	m.MoveRow(2)
	m.MoveJail(1)
	assert.Equal(t, 1, m.SelectedJail)
	assert.Equal(t, 0, m.SelectedRow, "moving the jail resets the row")

	m.MoveJail(1)
	assert.Equal(t, 2, m.SelectedJail)
	assert.Equal(t, NoSelection, m.SelectedRow, "empty jail has no row")
	m.MoveJail(1)
	assert.Equal(t, 2, m.SelectedJail)
	m.MoveJail(-5)
	assert.Equal(t, 0, m.SelectedJail)
}

func TestClampSelectionAfterFilter(t *testing.T) {
	m := newTestModel()
	m.MoveRow(2)
	m.SearchQuery = "10.0.0.2"
	m.ClampSelection()
	assert.Equal(t, 0, m.SelectedRow)

	m.SearchQuery = "nothing"
	m.ClampSelection()
	assert.Equal(t, NoSelection, m.SelectedRow)
}

func TestSelectJail(t *testing.T) {
	m := newTestModel()
	m.Focus = FocusBans
	assert.True(t, m.SelectJail(1))
	assert.Equal(t, FocusJails, m.Focus)
	assert.Equal(t, 1, m.SelectedJail)
	assert.Equal(t, 0, m.SelectedRow)
	assert.False(t, m.SelectJail(3))
	assert.Equal(t, 1, m.SelectedJail)
}

func TestModalVariants(t *testing.T) {
	modals := []Modal{
		ConfirmUnban{Jail: "sshd", IP: "10.0.0.1"},
		ConfirmUnbanAll{Jail: "nginx", Step: UnbanAllFirst},
		NewBanInput{Jail: "idle"},
	}
	var names []string
	for _, md := range modals {
		names = append(names, md.JailName())
	}
	assert.Equal(t, []string{"sshd", "nginx", "idle"}, names)
}

func TestKeyMap(t *testing.T) {
	keys := DefaultKeyMap()

	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'U'}}, keys.UnbanAll))
	assert.False(t, key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'U'}}, keys.Unban))
	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyEnter}, keys.Confirm))
	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyEsc}, keys.Cancel))
	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyCtrlC}, keys.Quit))

	full := keys.FullHelp()
	require.NotEmpty(t, full)
	for i, group := range full {
		assert.NotEmpty(t, group, "group %d", i)
	}
	assert.Len(t, keys.ModalKeyMap().ShortHelp(), 2)
}

func TestSortModeAndFocus(t *testing.T) {
	assert.Equal(t, SortByTimeLeft, SortByIP.Toggle())
	assert.Equal(t, SortByIP, SortByTimeLeft.Toggle())
	assert.Equal(t, SortByTimeLeft, ParseSortMode("TimeLeft"))
	assert.Equal(t, SortByIP, ParseSortMode("bogus"))
	assert.Equal(t, FocusBans, FocusJails.Toggle())
	assert.Equal(t, "time left", SortByTimeLeft.String())
}

func TestActivityLogIsCapped(t *testing.T) {
	m := newTestModel()
	for i := 0; i < MaxActivityLogLines+10; i++ {
		AddRawLineToActivityLog(m, "line")
	}
	assert.Len(t, m.ActivityLog, MaxActivityLogLines)
	assert.True(t, m.ActivityLogDirty)
}
