package fail2ban_test

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"f2bsentinel/internal/fail2ban"
	"f2bsentinel/internal/fail2ban/fail2bantest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch_BuildsSortedSnapshot(t *testing.T) {
	future := strconv.FormatInt(time.Now().Add(time.Hour).Unix(), 10)

	d := fail2bantest.NewDaemon()
	d.AddJail("sshd", map[string]string{"10.0.0.1": "", "10.0.0.2": future}, "10.0.0.1", "10.0.0.2")
	d.AddJail("nginx", map[string]string{"10.1.0.1": ""})
	d.AddJail("apache", map[string]string{"10.2.0.1": ""})
	d.AddJail("idle", nil)

	snap, err := fail2ban.NewFetcher(d).Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Jails, 4)

	var names []string
	for _, j := range snap.Jails {
		names = append(names, j.Name)
	}
	assert.Equal(t, []string{"sshd", "apache", "nginx", "idle"}, names)
	assert.False(t, snap.FetchedAt.IsZero())

	sshd := snap.Jail("sshd")
	require.NotNil(t, sshd)
	require.Len(t, sshd.Bans, 2)
	assert.Equal(t, "10.0.0.1", sshd.Bans[0].IP)
	assert.Nil(t, sshd.Bans[0].ExpiryEpoch)
	require.NotNil(t, sshd.Bans[1].ExpiryEpoch)
	assert.Equal(t, future, strconv.FormatInt(*sshd.Bans[1].ExpiryEpoch, 10))
	require.NotNil(t, sshd.Bantime.Seconds)
	assert.Equal(t, uint64(600), *sshd.Bantime.Seconds)
	require.NotNil(t, sshd.MaxRetry)
	assert.Equal(t, uint32(5), *sshd.MaxRetry)
	require.NotNil(t, sshd.CurrentlyBanned)
	assert.Equal(t, uint32(2), *sshd.CurrentlyBanned)
	assert.Equal(t, 4, snap.TotalBanned())
}

func TestFetch_CommandSequence(t *testing.T) {
	d := fail2bantest.NewDaemon()
	d.AddJail("sshd", nil)

	_, err := fail2ban.NewFetcher(d).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"status",
		"status sshd",
		"get sshd bantime",
		"get sshd findtime",
		"get sshd maxretry",
		"get sshd banip --with-time",
	}, d.CallLines())
}

func TestFetch_StatusFailureAborts(t *testing.T) {
	d := fail2bantest.NewDaemon()
	d.AddJail("sshd", nil)
	d.FailOn("status", "Failed to access socket path: /var/run/fail2ban/fail2ban.sock")

	snap, err := fail2ban.NewFetcher(d).Fetch(context.Background())
	require.Error(t, err)
	assert.Empty(t, snap.Jails)

	var toolErr *fail2ban.ToolError
	require.True(t, errors.As(err, &toolErr))
	assert.Equal(t, []string{"status"}, toolErr.Args)
	assert.Contains(t, fail2ban.ErrorMessage(err), "Failed to access socket")
}

func TestFetch_PerJailFallbacks(t *testing.T) {
	d := fail2bantest.NewDaemon()
	d.AddJail("sshd", map[string]string{"10.0.0.1": "1999999999", "10.0.0.2": ""}, "10.0.0.1", "10.0.0.2")
	d.FailOn("get sshd banip --with-time", "Invalid command")
	d.FailOn("get sshd bantime", "boom")
	d.FailOn("get sshd findtime", "boom")
	d.FailOn("get sshd maxretry", "boom")

	snap, err := fail2ban.NewFetcher(d).Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Jails, 1)

	sshd := snap.Jails[0]
	assert.Equal(t, fail2ban.Unavailable(), sshd.Bantime)
	assert.Equal(t, fail2ban.Unavailable(), sshd.Findtime)
	assert.Nil(t, sshd.MaxRetry)
	require.Len(t, sshd.Bans, 2)
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, sshd.Addresses())
	for _, b := range sshd.Bans {
		assert.Nil(t, b.ExpiryEpoch, "fallback list carries no expiry")
	}
}

func TestFetch_JailStatusFailureTolerated(t *testing.T) {
	d := fail2bantest.NewDaemon()
	d.AddJail("sshd", map[string]string{"10.0.0.1": ""})
	d.FailOn("status sshd", "boom")

	snap, err := fail2ban.NewFetcher(d).Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Jails, 1)
	assert.Nil(t, snap.Jails[0].CurrentlyBanned)
	assert.Nil(t, snap.Jails[0].TotalBanned)
	assert.Len(t, snap.Jails[0].Bans, 1)
}
