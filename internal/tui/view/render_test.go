package view

import (
	"strings"
	"testing"

	"f2bsentinel/internal/config"
	"f2bsentinel/internal/fail2ban"
	"f2bsentinel/internal/tui/model"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderModel(t *testing.T) *model.Model {
	t.Helper()
	m := model.InitialModel(config.GetDefaultConfig(), nil, nil, nil, false)
	m.Width, m.Height = 100, 30
	m.ReplaceSnapshot(fail2ban.Snapshot{Jails: []fail2ban.JailState{
		{Name: "sshd", Bans: []fail2ban.BanEntry{{IP: "10.0.0.1"}, {IP: "10.0.0.2", RawTime: "600"}}},
		{Name: "nginx-http-auth"},
	}}, false)
	return m
}

func TestRender_Dashboard(t *testing.T) {
	m := renderModel(t)
	m.SetStatusMessage("Refreshed", model.StatusBarSuccess)

	out := Render(m)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 30)
	for i, l := range lines {
		assert.Equal(t, 100, lipgloss.Width(l), "line %d", i)
	}

	assert.Contains(t, out, AppTitle)
	assert.Contains(t, out, "Jails (2)")
	assert.Contains(t, out, "nginx-http-auth")
	assert.Contains(t, out, "Banned in sshd (2/2)")
	assert.Contains(t, out, "10.0.0.1")
	assert.Contains(t, out, "10m")
	assert.Contains(t, out, "unknown")
	assert.Contains(t, out, "Refreshed")
	assert.Contains(t, out, "auto: on")
}

func TestRender_BansFollowSelection(t *testing.T) {
	m := renderModel(t)
	l := ComputeLayout(m.Width, m.Height)
	lines := strings.Split(Render(m), "\n")
	assert.Contains(t, lines[l.BansContent.Y], "10.0.0.1")
	assert.Contains(t, lines[l.BansContent.Y+1], "10.0.0.2")

	m.SearchQuery = "0.2"
	m.ClampSelection()
	lines = strings.Split(Render(m), "\n")
	assert.Contains(t, lines[l.BansContent.Y], "10.0.0.2")
	assert.Contains(t, strings.Join(lines, "\n"), "filter: 0.2")

	m.SearchQuery = "zzz"
	m.ClampSelection()
	assert.Contains(t, Render(m), `No addresses match "zzz"`)
}

func TestRender_JailListScrollsToSelection(t *testing.T) {
	m := renderModel(t)
	var jails []fail2ban.JailState
	for _, name := range []string{"j00", "j01", "j02", "j03", "j04", "j05", "j06", "j07", "j08", "j09", "j10", "j11"} {
		jails = append(jails, fail2ban.JailState{Name: name})
	}
	m.ReplaceSnapshot(fail2ban.Snapshot{Jails: jails}, false)
	m.MoveJail(11)

	l := ComputeLayout(m.Width, m.Height)
	lines := strings.Split(Render(m), "\n")
	last := l.JailsContent.Y + l.JailsContent.H - 1
	assert.Contains(t, lines[last], "j11")
	assert.Contains(t, lines[l.JailsContent.Y], "j03")
}

func TestRender_Modals(t *testing.T) {
	tests := []struct {
		name  string
		modal model.Modal
		want  []string
	}{
		{"confirm unban", model.ConfirmUnban{Jail: "sshd", IP: "10.0.0.2"}, []string{"Confirm unban", "from jail sshd?", "Unban (y)", "Cancel (esc)"}},
		{"unban all first", model.ConfirmUnbanAll{Jail: "sshd"}, []string{"Unban ALL 2 addresses from jail sshd?"}},
		{"unban all final", model.ConfirmUnbanAll{Jail: "sshd", Step: model.UnbanAllFinal}, []string{"Second confirmation required."}},
		{"ban input", model.NewBanInput{Jail: "sshd", Input: "not-an-ip", Err: `"not-an-ip" is not a valid IP address`}, []string{"Ban address in sshd", "not-an-ip", "is not a valid IP address", "Ban (enter)"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := renderModel(t)
			m.Modal = tt.modal
			l := ComputeLayout(m.Width, m.Height)

			out := Render(m)
			lines := strings.Split(out, "\n")
			require.Len(t, lines, m.Height)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
			assert.True(t, strings.HasPrefix(lines[l.Modal.Y], strings.Repeat(" ", l.Modal.X)+"╔"))
			assert.Equal(t, l.Modal.X+l.Modal.W, lipgloss.Width(lines[l.Modal.Y+l.Modal.H-1]))
			assert.Contains(t, lines[l.CancelButton.Y+1], "Cancel (esc)")
		})
	}
}

func TestRender_TooSmallAndOverlays(t *testing.T) {
	m := renderModel(t)
	m.Width, m.Height = 40, 12
	assert.Contains(t, Render(m), "Terminal too small")

	m.Width, m.Height = 0, 0
	assert.Equal(t, "Initializing...", Render(m))

	m.Width, m.Height = 100, 30
	m.Overlay = model.OverlayHelp
	out := Render(m)
	assert.Contains(t, out, "unban all")
	assert.Contains(t, out, "toggle auto-refresh")

	m.Overlay = model.OverlayLog
	w, h := LogViewportSize(m.Width, m.Height)
	m.LogViewport.Width, m.LogViewport.Height = w, h
	m.LogViewport.SetContent(PrepareLogContent([]string{"12:00:00.000 [ERROR] [Fetch] boom"}))
	out = Render(m)
	assert.Contains(t, out, "Activity Log")
	assert.Contains(t, out, "boom")
	assert.Len(t, strings.Split(out, "\n"), 30)
}

func TestPrepareLogContent(t *testing.T) {
	out := PrepareLogContent([]string{"a [WARN] x", "b [DEBUG] y", "c"})
	assert.Len(t, strings.Split(out, "\n"), 3)
	assert.Contains(t, out, "a [WARN] x")
}
