// Package fail2bantest provides an in-memory fail2ban-client for tests.
package fail2bantest

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"f2bsentinel/internal/fail2ban"
)

// Jail is the fake state of one jail.
type Jail struct {
	Bantime  string
	Findtime string
	MaxRetry string
	// Bans maps an address to the time text printed by "banip --with-time".
	Bans map[string]string
	// Order is the print order of Bans; addresses missing from it are
	// printed sorted after it.
	Order       []string
	TotalBanned int
}

// Daemon answers the fail2ban-client command vocabulary from memory and
// records every invocation.
type Daemon struct {
	mu    sync.Mutex
	Jails map[string]*Jail
	// Fail maps a space-joined command line to the stderr text it fails with.
	Fail  map[string]string
	Calls [][]string
}

// NewDaemon returns an empty daemon.
func NewDaemon() *Daemon {
	return &Daemon{Jails: map[string]*Jail{}, Fail: map[string]string{}}
}

// AddJail registers a jail with default settings and the given bans.
func (d *Daemon) AddJail(name string, bans map[string]string, order ...string) *Jail {
	d.mu.Lock()
	defer d.mu.Unlock()
	if bans == nil {
		bans = map[string]string{}
	}
	j := &Jail{Bantime: "600", Findtime: "600", MaxRetry: "5", Bans: bans, Order: order, TotalBanned: len(bans)}
	d.Jails[name] = j
	return j
}

// FailOn makes the given command line fail with msg on stderr.
func (d *Daemon) FailOn(cmdline, msg string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Fail[cmdline] = msg
}

// Reset forgets the recorded calls.
func (d *Daemon) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Calls = nil
}

// CallLines returns the recorded calls as space-joined command lines.
func (d *Daemon) CallLines() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, 0, len(d.Calls))
	for _, c := range d.Calls {
		out = append(out, strings.Join(c, " "))
	}
	return out
}

// Mutations returns the recorded "set ..." command lines.
func (d *Daemon) Mutations() []string {
	var out []string
	for _, line := range d.CallLines() {
		if strings.HasPrefix(line, "set ") {
			out = append(out, line)
		}
	}
	return out
}

// Run implements fail2ban.Runner.
func (d *Daemon) Run(_ context.Context, args ...string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.Calls = append(d.Calls, append([]string(nil), args...))
	line := strings.Join(args, " ")
	if msg, ok := d.Fail[line]; ok {
		return "", toolError(args, msg)
	}

	switch {
	case len(args) == 1 && args[0] == "status":
		return d.status(), nil
	case len(args) == 2 && args[0] == "status":
		j, err := d.jail(args, args[1])
		if err != nil {
			return "", err
		}
		return jailStatus(args[1], j), nil
	case len(args) >= 3 && args[0] == "get":
		j, err := d.jail(args, args[1])
		if err != nil {
			return "", err
		}
		return d.get(args, j)
	case len(args) >= 4 && args[0] == "set":
		j, err := d.jail(args, args[1])
		if err != nil {
			return "", err
		}
		return d.set(args, j)
	}
	return "", toolError(args, "Invalid command")
}

func (d *Daemon) status() string {
	names := make([]string, 0, len(d.Jails))
	for name := range d.Jails {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("Status\n|- Number of jail:\t%d\n`- Jail list:\t%s\n", len(names), strings.Join(names, ", "))
}

func (d *Daemon) jail(args []string, name string) (*Jail, error) {
	j, ok := d.Jails[name]
	if !ok {
		return nil, toolError(args, fmt.Sprintf("Sorry but the jail '%s' does not exist", name))
	}
	return j, nil
}

func (d *Daemon) get(args []string, j *Jail) (string, error) {
	switch args[2] {
	case "bantime":
		return j.Bantime + "\n", nil
	case "findtime":
		return j.Findtime + "\n", nil
	case "maxretry":
		return j.MaxRetry + "\n", nil
	case "banip":
		var b strings.Builder
		for _, ip := range orderedBans(j) {
			b.WriteString(ip)
			if t := j.Bans[ip]; t != "" {
				b.WriteString(" \t")
				b.WriteString(t)
			}
			b.WriteString("\n")
		}
		return b.String(), nil
	}
	return "", toolError(args, "Invalid command")
}

func (d *Daemon) set(args []string, j *Jail) (string, error) {
	switch args[2] {
	case "banip":
		for _, ip := range args[3:] {
			if _, ok := j.Bans[ip]; !ok {
				j.Bans[ip] = ""
				j.Order = append(j.Order, ip)
				j.TotalBanned++
			}
		}
		return fmt.Sprintf("%d\n", len(args)-3), nil
	case "unbanip":
		removed := 0
		for _, ip := range args[3:] {
			if _, ok := j.Bans[ip]; ok {
				delete(j.Bans, ip)
				removed++
			}
		}
		return fmt.Sprintf("%d\n", removed), nil
	}
	return "", toolError(args, "Invalid command")
}

func jailStatus(name string, j *Jail) string {
	ips := orderedBans(j)
	return fmt.Sprintf("Status for the jail: %s\n|- Filter\n|  |- Currently failed:\t0\n|  |- Total failed:\t0\n"+
		"`- Actions\n   |- Currently banned:\t%d\n   |- Total banned:\t%d\n   `- Banned IP list:\t%s\n",
		name, len(ips), j.TotalBanned, strings.Join(ips, " "))
}

func orderedBans(j *Jail) []string {
	seen := make(map[string]bool, len(j.Bans))
	var out []string
	for _, ip := range j.Order {
		if _, ok := j.Bans[ip]; ok && !seen[ip] {
			seen[ip] = true
			out = append(out, ip)
		}
	}
	var rest []string
	for ip := range j.Bans {
		if !seen[ip] {
			rest = append(rest, ip)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

func toolError(args []string, msg string) error {
	return &fail2ban.ToolError{Args: append([]string(nil), args...), Message: msg, Err: errors.New("exit status 255")}
}
