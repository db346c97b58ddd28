package model

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"f2bsentinel/internal/fail2ban"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func epoch(d time.Duration) *int64 {
	v := time.Now().Add(d).Unix()
	return &v
}

func ips(rows []*fail2ban.BanEntry) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.IP)
	}
	return out
}

func TestProject_SshdTimeLeftScenario(t *testing.T) {
	jail := &fail2ban.JailState{
		Name: "sshd",
		Bans: []fail2ban.BanEntry{
			{IP: "10.0.0.1"},
			{IP: "10.0.0.2", ExpiryEpoch: epoch(time.Hour)},
		},
	}

	assert.Equal(t, []string{"10.0.0.2", "10.0.0.1"}, ips(Project(jail, "", SortByTimeLeft)))
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, ips(Project(jail, "", SortByIP)))
}

func TestProject_PointsIntoJail(t *testing.T) {
	jail := &fail2ban.JailState{Bans: []fail2ban.BanEntry{{IP: "10.0.0.2"}, {IP: "10.0.0.1"}}}
	rows := Project(jail, "", SortByIP)
	require.Len(t, rows, 2)
	assert.Same(t, &jail.Bans[1], rows[0])
	assert.Equal(t, "10.0.0.2", jail.Bans[0].IP, "projection must not reorder the jail")
}

func TestProject_NilJail(t *testing.T) {
	assert.Empty(t, Project(nil, "x", SortByIP))
}

func TestProject_Filter(t *testing.T) {
	jail := &fail2ban.JailState{Bans: []fail2ban.BanEntry{
		{IP: "10.0.0.1"}, {IP: "192.168.1.10"}, {IP: "2001:DB8::1"}, {IP: "2001:db8::2"}, {IP: "10.0.0.10"},
	}}

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"10.0.0.1", "10.0.0.10", "192.168.1.10", "2001:DB8::1", "2001:db8::2"}},
		{"10.0.0.1", []string{"10.0.0.1", "10.0.0.10"}},
		{"db8", []string{"2001:DB8::1", "2001:db8::2"}},
		{"DB8::2", []string{"2001:db8::2"}},
		{"nomatch", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, ips(Project(jail, tt.query, SortByIP)))
		})
	}
}

func randomJail(r *rand.Rand, n int) *fail2ban.JailState {
	jail := &fail2ban.JailState{Name: "random"}
	for i := 0; i < n; i++ {
		e := fail2ban.BanEntry{IP: fmt.Sprintf("10.%d.%d.%d", r.Intn(3), r.Intn(20), i)}
		switch r.Intn(3) {
		case 0:
			e.ExpiryEpoch = epoch(time.Duration(r.Intn(7200)) * time.Second)
		case 1:
			e.ExpiryEpoch = epoch(-time.Duration(r.Intn(7200)) * time.Second)
		}
		jail.Bans = append(jail.Bans, e)
	}
	return jail
}

func TestProject_FilteringProperty(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	queries := []string{"", "10.", "1.", ".5", "10.2", "X", "0.1"}

	for round := 0; round < 50; round++ {
		jail := randomJail(r, r.Intn(40))
		for _, q := range queries {
			for _, mode := range []SortMode{SortByIP, SortByTimeLeft} {
				rows := Project(jail, q, mode)

				seen := map[*fail2ban.BanEntry]int{}
				for _, e := range rows {
					assert.True(t, strings.Contains(strings.ToLower(e.IP), strings.ToLower(q)))
					seen[e]++
				}
				for i := range jail.Bans {
					e := &jail.Bans[i]
					if strings.Contains(strings.ToLower(e.IP), strings.ToLower(q)) {
						assert.Equal(t, 1, seen[e], "entry %s must appear exactly once", e.IP)
					} else {
						assert.Zero(t, seen[e])
					}
				}
			}
		}
	}
}

func TestProject_TimeLeftOrderingProperty(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for round := 0; round < 50; round++ {
		rows := Project(randomJail(r, r.Intn(40)), "", SortByTimeLeft)

		unknownSeen := false
		var last uint64
		for _, e := range rows {
			left, ok := e.Remaining()
			if !ok {
				unknownSeen = true
				continue
			}
			require.False(t, unknownSeen, "known entry %s after an unknown one", e.IP)
			assert.GreaterOrEqual(t, left, last)
			last = left
		}
	}
}

func TestProject_IPOrderingIsLexicographic(t *testing.T) {
	jail := &fail2ban.JailState{Bans: []fail2ban.BanEntry{{IP: "9.9.9.9"}, {IP: "10.0.0.1"}, {IP: "1.2.3.4"}}}
	assert.Equal(t, []string{"1.2.3.4", "10.0.0.1", "9.9.9.9"}, ips(Project(jail, "", SortByIP)))
}
