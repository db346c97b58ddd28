package fail2ban

import (
	"context"
	"time"

	"f2bsentinel/pkg/logging"
)

const fetchSubsystem = "SnapshotFetcher"

// Fetcher builds snapshots from a sequence of fail2ban-client queries.
type Fetcher struct {
	runner Runner
	now    func() time.Time
}

// NewFetcher returns a Fetcher using runner.
func NewFetcher(runner Runner) *Fetcher {
	return &Fetcher{runner: runner, now: time.Now}
}

// Fetch reads the jail list and then every jail's counters, settings and
// bans. Only a failing "status" call fails the fetch; per-jail query
// failures degrade to unavailable values.
func (f *Fetcher) Fetch(ctx context.Context) (Snapshot, error) {
	status, err := f.runner.Run(ctx, "status")
	if err != nil {
		logging.Error(fetchSubsystem, err, "Listing jails failed")
		return Snapshot{}, err
	}

	names := ParseJailNames(status)
	jails := make([]JailState, 0, len(names))
	for _, name := range names {
		jails = append(jails, f.fetchJail(ctx, name))
	}
	SortJails(jails)

	logging.Debug(fetchSubsystem, "Fetched %d jail(s)", len(jails))
	return Snapshot{Jails: jails, FetchedAt: f.now()}, nil
}

func (f *Fetcher) fetchJail(ctx context.Context, name string) JailState {
	jail := JailState{
		Name:     name,
		Bantime:  Unavailable(),
		Findtime: Unavailable(),
	}

	jailStatus, statusErr := f.runner.Run(ctx, "status", name)
	if statusErr != nil {
		f.warn(name, "status", statusErr)
		jailStatus = ""
	} else {
		jail.CurrentlyBanned, jail.TotalBanned = ParseBanCounts(jailStatus)
	}

	if out, err := f.runner.Run(ctx, "get", name, "bantime"); err != nil {
		f.warn(name, "bantime", err)
	} else {
		jail.Bantime = ParseTimeValue(out)
	}
	if out, err := f.runner.Run(ctx, "get", name, "findtime"); err != nil {
		f.warn(name, "findtime", err)
	} else {
		jail.Findtime = ParseTimeValue(out)
	}
	if out, err := f.runner.Run(ctx, "get", name, "maxretry"); err != nil {
		f.warn(name, "maxretry", err)
	} else {
		jail.MaxRetry = ParseCount(out)
	}

	out, err := f.runner.Run(ctx, "get", name, "banip", "--with-time")
	if err != nil {
		f.warn(name, "banip --with-time", err)
		for _, ip := range ParseBannedList(jailStatus) {
			jail.Bans = append(jail.Bans, BanEntry{IP: ip})
		}
		return jail
	}
	jail.Bans = ParseBannedAddressesWithTimes(out, jail.Bantime.Seconds)
	return jail
}

func (f *Fetcher) warn(jail, query string, err error) {
	logging.Warn(fetchSubsystem, "Query %q for jail %s failed: %s", query, jail, ErrorMessage(err))
}
