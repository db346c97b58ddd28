package fail2ban

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"f2bsentinel/internal/bantime"
)

// NotAvailable is the raw text used for settings that could not be read.
const NotAvailable = "n/a"

// TimeValue is a jail setting as printed by fail2ban-client together with its
// value in seconds when the text is a plain non-negative integer.
type TimeValue struct {
	Raw     string  `json:"raw" yaml:"raw"`
	Seconds *uint64 `json:"seconds,omitempty" yaml:"seconds,omitempty"`
}

// Unavailable returns the placeholder TimeValue for a failed query.
func Unavailable() TimeValue {
	return TimeValue{Raw: NotAvailable}
}

// Display renders the value for humans: "10m", "permanent" or the raw text.
func (t TimeValue) Display() string {
	if t.Seconds != nil {
		return bantime.FormatDuration(*t.Seconds)
	}
	raw := strings.TrimSpace(t.Raw)
	if raw == "-1" {
		return "permanent"
	}
	if secs, ok := bantime.ParseDurationString(raw); ok {
		return bantime.FormatDuration(secs)
	}
	if raw == "" {
		return NotAvailable
	}
	return raw
}

// BanEntry is one banned address within a jail.
type BanEntry struct {
	IP          string `json:"ip" yaml:"ip"`
	ExpiryEpoch *int64 `json:"expiryEpoch,omitempty" yaml:"expiryEpoch,omitempty"`
	// RawTime is the time text fail2ban printed after the address, if any.
	RawTime string `json:"rawTime,omitempty" yaml:"rawTime,omitempty"`
}

// Remaining returns the seconds left on the ban, or false when unknown.
func (b *BanEntry) Remaining() (uint64, bool) {
	return bantime.Remaining(b.ExpiryEpoch)
}

// TimeLeftLabel is the compact annotation shown next to an address.
func (b *BanEntry) TimeLeftLabel() string {
	if left, ok := b.Remaining(); ok {
		return bantime.FormatDurationCompact(left)
	}
	raw := strings.TrimSpace(b.RawTime)
	if raw == "" {
		return "unknown"
	}
	if secs, ok := bantime.ParseDurationString(raw); ok {
		return bantime.FormatDurationCompact(secs)
	}
	return raw
}

// JailState is the state of one jail at refresh time.
type JailState struct {
	Name            string     `json:"name" yaml:"name"`
	Bans            []BanEntry `json:"bans" yaml:"bans"`
	Bantime         TimeValue  `json:"bantime" yaml:"bantime"`
	Findtime        TimeValue  `json:"findtime" yaml:"findtime"`
	MaxRetry        *uint32    `json:"maxRetry,omitempty" yaml:"maxRetry,omitempty"`
	CurrentlyBanned *uint32    `json:"currentlyBanned,omitempty" yaml:"currentlyBanned,omitempty"`
	TotalBanned     *uint32    `json:"totalBanned,omitempty" yaml:"totalBanned,omitempty"`
}

// Addresses returns the jail's banned addresses in stored order.
func (j *JailState) Addresses() []string {
	out := make([]string, 0, len(j.Bans))
	for _, b := range j.Bans {
		out = append(out, b.IP)
	}
	return out
}

// Snapshot is one complete read of every jail.
type Snapshot struct {
	Jails     []JailState `json:"jails" yaml:"jails"`
	FetchedAt time.Time   `json:"fetchedAt" yaml:"fetchedAt"`
}

// TotalBanned sums the ban list lengths over all jails.
func (s *Snapshot) TotalBanned() int {
	total := 0
	for _, j := range s.Jails {
		total += len(j.Bans)
	}
	return total
}

// Jail returns the jail with the given name, or nil.
func (s *Snapshot) Jail(name string) *JailState {
	for i := range s.Jails {
		if s.Jails[i].Name == name {
			return &s.Jails[i]
		}
	}
	return nil
}

// SortJails orders jails busiest first, then by name.
func SortJails(jails []JailState) {
	sort.SliceStable(jails, func(i, k int) bool {
		if len(jails[i].Bans) != len(jails[k].Bans) {
			return len(jails[i].Bans) > len(jails[k].Bans)
		}
		return jails[i].Name < jails[k].Name
	})
}

// FormatCount renders an optional counter.
func FormatCount(v *uint32) string {
	if v == nil {
		return NotAvailable
	}
	return strconv.FormatUint(uint64(*v), 10)
}
