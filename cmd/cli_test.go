package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"f2bsentinel/internal/app"
	"f2bsentinel/internal/config"
	"f2bsentinel/internal/fail2ban"
	"f2bsentinel/internal/fail2ban/fail2bantest"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func newTestDaemon() *fail2bantest.Daemon {
	d := fail2bantest.NewDaemon()
	d.AddJail("sshd", map[string]string{"10.0.0.1": "", "10.0.0.2": ""}, "10.0.0.2", "10.0.0.1")
	d.AddJail("nginx", nil)
	return d
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// runCLI executes the root command against d with GeoIP off and colours
// disabled, returning stdout.
func runCLI(t *testing.T, d *fail2bantest.Daemon, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	cfgFile := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("geoip:\n  enabled: false\n"), 0o600))

	origRunner := app.RunnerFactory
	app.RunnerFactory = func(config.ClientConfig) fail2ban.Runner { return d }
	origNoColor := color.NoColor
	color.NoColor = true
	text.DisableColors()
	t.Cleanup(func() {
		app.RunnerFactory = origRunner
		color.NoColor = origNoColor
		text.EnableColors()
		resetFlags(rootCmd)
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append(args, "--config", cfgFile))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestStatus_Table(t *testing.T) {
	out, err := runCLI(t, newTestDaemon(), "status")
	require.NoError(t, err)

	assert.Contains(t, out, "sshd")
	assert.Contains(t, out, "nginx")
	assert.Contains(t, out, "10m", "ban time is humanized")
	assert.Contains(t, out, "sshd (2)")
	assert.Contains(t, out, "10.0.0.1")
	assert.Contains(t, out, "10.0.0.2")
	assert.NotContains(t, out, "nginx (0)", "empty jails get no address table")
}

func TestStatus_JSON(t *testing.T) {
	out, err := runCLI(t, newTestDaemon(), "status", "-o", "json")
	require.NoError(t, err)

	var snap fail2ban.Snapshot
	require.NoError(t, json.Unmarshal([]byte(out), &snap))
	require.Len(t, snap.Jails, 2)
	assert.Equal(t, "sshd", snap.Jails[0].Name, "busiest jail first")
	assert.Equal(t, []string{"10.0.0.2", "10.0.0.1"}, snap.Jails[0].Addresses())
	assert.Equal(t, "600", snap.Jails[0].Bantime.Raw)
}

func TestStatus_YAMLWithJailSelection(t *testing.T) {
	out, err := runCLI(t, newTestDaemon(), "status", "nginx", "--output", "yaml")
	require.NoError(t, err)

	var snap fail2ban.Snapshot
	require.NoError(t, yaml.Unmarshal([]byte(out), &snap))
	require.Len(t, snap.Jails, 1)
	assert.Equal(t, "nginx", snap.Jails[0].Name)
	assert.Empty(t, snap.Jails[0].Bans)
}

func TestStatus_Errors(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(d *fail2bantest.Daemon)
		args    []string
		wantErr string
	}{
		{
			name:    "unknown format",
			args:    []string{"status", "-o", "xml"},
			wantErr: `unknown output format "xml"`,
		},
		{
			name:    "unknown jail",
			args:    []string{"status", "postfix"},
			wantErr: "jail not found: postfix",
		},
		{
			name:    "client failure",
			setup:   func(d *fail2bantest.Daemon) { d.FailOn("status", "Permission denied to socket") },
			args:    []string{"status"},
			wantErr: "fail2ban-client failed: Permission denied to socket",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDaemon()
			if tt.setup != nil {
				tt.setup(d)
			}
			_, err := runCLI(t, d, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestStatus_NoJails(t *testing.T) {
	out, err := runCLI(t, fail2bantest.NewDaemon(), "status")
	require.NoError(t, err)
	assert.Contains(t, out, "No jails reported by fail2ban-client")
}

func TestBan(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		fail     string
		wantOut  string
		wantErr  string
		wantSets []string
	}{
		{
			name:     "valid address is trimmed",
			args:     []string{"ban", "sshd", " 192.0.2.7 "},
			wantOut:  "Banned 192.0.2.7 in sshd",
			wantSets: []string{"set sshd banip 192.0.2.7"},
		},
		{
			name:    "invalid address runs nothing",
			args:    []string{"ban", "sshd", "999.1.1.1"},
			wantErr: `"999.1.1.1" is not a valid IP address`,
		},
		{
			name:     "client failure",
			args:     []string{"ban", "sshd", "192.0.2.7"},
			fail:     "set sshd banip 192.0.2.7",
			wantErr:  "ban failed for 192.0.2.7: refused",
			wantSets: []string{"set sshd banip 192.0.2.7"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDaemon()
			if tt.fail != "" {
				d.FailOn(tt.fail, "refused")
			}
			out, err := runCLI(t, d, tt.args...)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Contains(t, out, tt.wantOut)
			}
			assert.Equal(t, tt.wantSets, d.Mutations())
		})
	}
}

func TestBan_RequiresTwoArguments(t *testing.T) {
	d := newTestDaemon()
	_, err := runCLI(t, d, "ban", "sshd")
	require.Error(t, err)
	assert.Empty(t, d.CallLines())
}

func TestUnban_Addresses(t *testing.T) {
	d := newTestDaemon()
	out, err := runCLI(t, d, "unban", "sshd", "10.0.0.1", "10.0.0.2")
	require.NoError(t, err)
	assert.Contains(t, out, "Unbanned 2 addresses from sshd")
	assert.Equal(t, []string{"set sshd unbanip 10.0.0.1 10.0.0.2"}, d.Mutations())
}

func TestUnban_SingleAddress(t *testing.T) {
	d := newTestDaemon()
	out, err := runCLI(t, d, "unban", "sshd", "10.0.0.1")
	require.NoError(t, err)
	assert.Contains(t, out, "Unbanned 10.0.0.1 from sshd")
}

func TestUnban_InvalidAddressRunsNothing(t *testing.T) {
	d := newTestDaemon()
	_, err := runCLI(t, d, "unban", "sshd", "10.0.0.1", "nope")
	require.Error(t, err)
	assert.Empty(t, d.CallLines())
}

func TestUnban_All(t *testing.T) {
	d := fail2bantest.NewDaemon()
	bans := map[string]string{}
	for i := 1; i <= fail2ban.UnbanBatchSize+5; i++ {
		bans[fmt.Sprintf("192.0.2.%d", i)] = ""
	}
	d.AddJail("big", bans)

	out, err := runCLI(t, d, "unban", "--all", "big")
	require.NoError(t, err)
	assert.Contains(t, out, fmt.Sprintf("Unbanned %d addresses from big", fail2ban.UnbanBatchSize+5))
	assert.Len(t, d.Mutations(), 2, "one call per batch")
	assert.Empty(t, d.Jails["big"].Bans)
}

func TestUnban_AllEdgeCases(t *testing.T) {
	t.Run("empty jail", func(t *testing.T) {
		d := newTestDaemon()
		out, err := runCLI(t, d, "unban", "--all", "nginx")
		require.NoError(t, err)
		assert.Contains(t, out, "No addresses to unban in nginx")
		assert.Empty(t, d.Mutations())
	})

	t.Run("unknown jail", func(t *testing.T) {
		_, err := runCLI(t, newTestDaemon(), "unban", "--all", "postfix")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jail not found: postfix")
	})

	t.Run("extra arguments", func(t *testing.T) {
		_, err := runCLI(t, newTestDaemon(), "unban", "--all", "sshd", "10.0.0.1")
		require.Error(t, err)
	})

	t.Run("batch failure", func(t *testing.T) {
		d := newTestDaemon()
		d.FailOn("set sshd unbanip 10.0.0.2 10.0.0.1", "socket gone")
		_, err := runCLI(t, d, "unban", "--all", "sshd")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unban failed after 0 removed: socket gone")
	})
}

func TestMCPCommand(t *testing.T) {
	mcpCmd := newMCPCmd()
	assert.Equal(t, "mcp", mcpCmd.Use)
	assert.Contains(t, mcpCmd.Long, "list_jails")
	assert.NotNil(t, mcpCmd.RunE)
}

func TestDashboardFlags(t *testing.T) {
	for _, c := range []*cobra.Command{rootCmd, newDashboardCmd()} {
		assert.NotNil(t, c.Flags().Lookup("refresh"), c.Name())
		assert.NotNil(t, c.Flags().Lookup("no-auto-refresh"), c.Name())
	}
	for _, name := range []string{"config", "debug", "log-file"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), name)
	}
}
