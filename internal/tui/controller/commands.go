package controller

import (
	"context"
	"errors"
	"fmt"

	"f2bsentinel/internal/fail2ban"
	"f2bsentinel/internal/tui/model"

	"github.com/atotto/clipboard"
)

type refreshMode int

const (
	// refreshReset selects the first jail and row and reports the outcome.
	refreshReset refreshMode = iota
	// refreshKeep follows the selection by name and address and only
	// reports failures, leaving the status of a preceding action visible.
	refreshKeep
)

var errNoClient = errors.New("no fail2ban client configured")

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

// refresh fetches a new snapshot synchronously. On failure the previous
// snapshot stays in place. The refresh time is recorded either way so a
// failing daemon is retried once per interval.
func refresh(m *model.Model, mode refreshMode) {
	m.LastRefresh = m.Now()
	if m.Client == nil {
		m.SetStatusMessage("Refresh failed: "+errNoClient.Error(), model.StatusBarError)
		return
	}

	snap, err := m.Client.Fetch(context.Background())
	if err != nil {
		LogError(controllerSubsystem, err, "Refresh failed")
		m.SetStatusMessage("Refresh failed: "+fail2ban.ErrorMessage(err), model.StatusBarError)
		return
	}

	m.ReplaceSnapshot(snap, mode == refreshKeep)
	LogDebug(m, controllerSubsystem, "Snapshot with %d jails, %d bans", len(snap.Jails), snap.TotalBanned())
	if mode != refreshReset {
		return
	}
	if len(snap.Jails) == 0 {
		m.SetStatusMessage("No jails reported by fail2ban-client", model.StatusBarWarning)
		return
	}
	m.SetStatusMessage("Refreshed", model.StatusBarInfo)
}

// performUnban removes one address. The modal closes whatever the outcome.
func performUnban(m *model.Model, c model.ConfirmUnban) {
	m.Modal = nil
	if m.Client == nil {
		m.SetStatusMessage(fmt.Sprintf("Unban failed for %s: %v", c.IP, errNoClient), model.StatusBarError)
		return
	}
	if err := m.Client.Unban(context.Background(), c.Jail, c.IP); err != nil {
		LogError(actionSubsystem, err, "Unban of %s in %s failed", c.IP, c.Jail)
		m.SetStatusMessage(fmt.Sprintf("Unban failed for %s: %s", c.IP, fail2ban.ErrorMessage(err)), model.StatusBarError)
		return
	}
	LogInfo(actionSubsystem, "Unbanned %s from %s", c.IP, c.Jail)
	m.SetStatusMessage(fmt.Sprintf("Unbanned %s", c.IP), model.StatusBarSuccess)
	refresh(m, refreshKeep)
}

// performUnbanAll removes every address of the jail, including those hidden
// by the filter, in batches. Batches that completed before a failure stay
// applied.
func performUnbanAll(m *model.Model, c model.ConfirmUnbanAll) {
	m.Modal = nil
	jail := m.Snapshot.Jail(c.Jail)
	if jail == nil || len(jail.Bans) == 0 {
		m.SetStatusMessage(fmt.Sprintf("No addresses to unban in %s", c.Jail), model.StatusBarWarning)
		return
	}
	if m.Client == nil {
		m.SetStatusMessage(fmt.Sprintf("Unban all failed after 0 removed: %v", errNoClient), model.StatusBarError)
		return
	}

	removed, err := m.Client.UnbanBatches(context.Background(), c.Jail, jail.Addresses())
	if err != nil {
		m.SetStatusMessage(fmt.Sprintf("Unban all failed after %d removed: %s", removed, fail2ban.ErrorMessage(err)), model.StatusBarError)
		if removed > 0 {
			refresh(m, refreshKeep)
		}
		return
	}
	LogInfo(actionSubsystem, "Unbanned %d addresses from %s", removed, c.Jail)
	m.SetStatusMessage(fmt.Sprintf("Unbanned %d addresses from %s", removed, c.Jail), model.StatusBarSuccess)
	refresh(m, refreshKeep)
}

// submitBan validates the typed address and bans it. Validation and command
// failures keep the modal open with the error inline and the input intact.
func submitBan(m *model.Model, in model.NewBanInput) {
	ip, err := fail2ban.ValidateAddress(in.Input)
	if err != nil {
		in.Err = err.Error()
		m.Modal = in
		return
	}
	if m.Client == nil {
		in.Err = errNoClient.Error()
		m.Modal = in
		return
	}
	if err := m.Client.Ban(context.Background(), in.Jail, ip); err != nil {
		LogError(actionSubsystem, err, "Ban of %s in %s failed", ip, in.Jail)
		in.Err = fail2ban.ErrorMessage(err)
		m.Modal = in
		return
	}

	m.Modal = nil
	LogInfo(actionSubsystem, "Banned %s in %s", ip, in.Jail)
	m.SetStatusMessage(fmt.Sprintf("Banned %s in %s", ip, in.Jail), model.StatusBarSuccess)
	refresh(m, refreshKeep)
}

// copySelected puts the selected address on the system clipboard.
func copySelected(m *model.Model) {
	e := m.SelectedEntry()
	if e == nil {
		m.SetStatusMessage("No address selected", model.StatusBarWarning)
		return
	}
	if err := writeClipboard(e.IP); err != nil {
		LogError(actionSubsystem, err, "Copy to clipboard failed")
		m.SetStatusMessage(fmt.Sprintf("Copy failed: %v", err), model.StatusBarError)
		return
	}
	m.SetStatusMessage(fmt.Sprintf("Copied %s to clipboard", e.IP), model.StatusBarSuccess)
}
