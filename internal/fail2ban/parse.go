package fail2ban

import (
	"net"
	"strconv"
	"strings"

	"f2bsentinel/internal/bantime"
)

const (
	markerJailList        = "jail list:"
	markerCurrentlyBanned = "currently banned:"
	markerTotalBanned     = "total banned:"
	markerBannedList      = "banned ip list:"
)

// afterMarker returns the text following marker on the first line that
// contains it, matching case-insensitively.
func afterMarker(text, marker string) (string, bool) {
	for _, line := range strings.Split(text, "\n") {
		idx := strings.Index(strings.ToLower(line), marker)
		if idx < 0 {
			continue
		}
		return line[idx+len(marker):], true
	}
	return "", false
}

// ParseJailNames extracts the jail names from "fail2ban-client status".
//
//	Status
//	|- Number of jail:	2
//	`- Jail list:	sshd, nginx-http-auth
func ParseJailNames(status string) []string {
	rest, ok := afterMarker(status, markerJailList)
	if !ok {
		return nil
	}
	var names []string
	for _, part := range strings.Split(rest, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// ParseBanCounts reads the "Currently banned" and "Total banned" counters
// from "fail2ban-client status <jail>". Missing or malformed counters are nil.
func ParseBanCounts(jailStatus string) (current, total *uint32) {
	if rest, ok := afterMarker(jailStatus, markerCurrentlyBanned); ok {
		current = trailingCount(rest)
	}
	if rest, ok := afterMarker(jailStatus, markerTotalBanned); ok {
		total = trailingCount(rest)
	}
	return current, total
}

func trailingCount(s string) *uint32 {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil
	}
	return ParseCount(fields[len(fields)-1])
}

// ParseCount parses a non-negative integer reply such as "get <jail> maxretry".
func ParseCount(out string) *uint32 {
	v, err := strconv.ParseUint(strings.TrimSpace(out), 10, 32)
	if err != nil {
		return nil
	}
	n := uint32(v)
	return &n
}

// ParseTimeValue wraps a "get <jail> bantime|findtime" reply.
func ParseTimeValue(out string) TimeValue {
	raw := strings.TrimSpace(out)
	tv := TimeValue{Raw: raw}
	if v, err := strconv.ParseUint(raw, 10, 64); err == nil {
		tv.Seconds = &v
	}
	return tv
}

func isAddress(token string) bool {
	return net.ParseIP(token) != nil
}

func tokenize(text string) []string {
	return strings.Fields(strings.ReplaceAll(text, ",", " "))
}

// ExtractAddresses returns every distinct IP literal in text, in first-seen
// order. Commas are treated as whitespace.
func ExtractAddresses(text string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, tok := range tokenize(text) {
		if !isAddress(tok) {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out
}

// ParseBannedList returns the addresses after the "Banned IP list:" marker
// of "fail2ban-client status <jail>".
func ParseBannedList(jailStatus string) []string {
	rest, ok := afterMarker(jailStatus, markerBannedList)
	if !ok {
		return nil
	}
	return ExtractAddresses(rest)
}

// ParseBannedAddressesWithTimes parses "get <jail> banip --with-time". Each
// address token starts an entry; the non-address tokens up to the next
// address are its time text, resolved against bantimeSecs. A repeated
// address keeps its first entry and the tokens after the repeat are dropped.
func ParseBannedAddressesWithTimes(text string, bantimeSecs *uint64) []BanEntry {
	var (
		entries []BanEntry
		seen    = make(map[string]struct{})
		current = -1
		pending []string
	)

	flush := func() {
		if current < 0 {
			return
		}
		raw := strings.Join(pending, " ")
		entries[current].RawTime = raw
		if raw != "" {
			entries[current].ExpiryEpoch = bantime.ResolveExpiry(raw, bantimeSecs)
		}
	}

	for _, tok := range tokenize(text) {
		if isAddress(tok) {
			flush()
			pending = pending[:0]
			if _, dup := seen[tok]; dup {
				current = -1
				continue
			}
			seen[tok] = struct{}{}
			entries = append(entries, BanEntry{IP: tok})
			current = len(entries) - 1
			continue
		}
		if current >= 0 {
			pending = append(pending, tok)
		}
	}
	flush()
	return entries
}
