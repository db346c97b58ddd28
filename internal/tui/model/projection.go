package model

import (
	"sort"
	"strings"

	"f2bsentinel/internal/fail2ban"
)

// Project returns the bans of jail whose address contains query
// (case-insensitive), ordered by mode. The result points into jail.Bans and
// must be recomputed whenever the jail, query or mode changes.
func Project(jail *fail2ban.JailState, query string, mode SortMode) []*fail2ban.BanEntry {
	if jail == nil {
		return nil
	}
	needle := strings.ToLower(query)

	type row struct {
		entry *fail2ban.BanEntry
		left  uint64
		known bool
	}
	rows := make([]row, 0, len(jail.Bans))
	for i := range jail.Bans {
		e := &jail.Bans[i]
		if needle != "" && !strings.Contains(strings.ToLower(e.IP), needle) {
			continue
		}
		r := row{entry: e}
		if mode == SortByTimeLeft {
			r.left, r.known = e.Remaining()
		}
		rows = append(rows, r)
	}

	switch mode {
	case SortByTimeLeft:
		sort.SliceStable(rows, func(i, k int) bool {
			if rows[i].known != rows[k].known {
				return rows[i].known
			}
			return rows[i].left < rows[k].left
		})
	default:
		sort.SliceStable(rows, func(i, k int) bool {
			return rows[i].entry.IP < rows[k].entry.IP
		})
	}

	out := make([]*fail2ban.BanEntry, len(rows))
	for i, r := range rows {
		out[i] = r.entry
	}
	return out
}
