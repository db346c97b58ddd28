package model

import "f2bsentinel/internal/fail2ban"

// CurrentJail returns the selected jail, or nil.
func (m *Model) CurrentJail() *fail2ban.JailState {
	if m.SelectedJail < 0 || m.SelectedJail >= len(m.Snapshot.Jails) {
		return nil
	}
	return &m.Snapshot.Jails[m.SelectedJail]
}

// Projection is the filtered, sorted view of the selected jail's bans.
func (m *Model) Projection() []*fail2ban.BanEntry {
	return Project(m.CurrentJail(), m.SearchQuery, m.SortMode)
}

// SelectedEntry returns the ban under the row cursor, or nil.
func (m *Model) SelectedEntry() *fail2ban.BanEntry {
	rows := m.Projection()
	if m.SelectedRow < 0 || m.SelectedRow >= len(rows) {
		return nil
	}
	return rows[m.SelectedRow]
}

// ResetRow puts the row cursor on the first projected ban, if any.
func (m *Model) ResetRow() {
	if len(m.Projection()) == 0 {
		m.SelectedRow = NoSelection
		return
	}
	m.SelectedRow = 0
}

// ClampSelection restores the selection invariants after any change to the
// snapshot, filter or sort.
func (m *Model) ClampSelection() {
	m.SelectedJail = clampIndex(m.SelectedJail, len(m.Snapshot.Jails))
	m.SelectedRow = clampIndex(m.SelectedRow, len(m.Projection()))
}

func clampIndex(i, n int) int {
	switch {
	case n == 0:
		return NoSelection
	case i < 0:
		return 0
	case i >= n:
		return n - 1
	}
	return i
}

// MoveJail moves the jail cursor by delta, clamped, and resets the row.
func (m *Model) MoveJail(delta int) {
	if len(m.Snapshot.Jails) == 0 {
		m.SelectedJail = NoSelection
		m.SelectedRow = NoSelection
		return
	}
	m.SelectedJail = clampIndex(m.SelectedJail+delta, len(m.Snapshot.Jails))
	m.ResetRow()
}

// MoveRow moves the row cursor by delta within the projection, clamped.
func (m *Model) MoveRow(delta int) {
	n := len(m.Projection())
	if n == 0 {
		m.SelectedRow = NoSelection
		return
	}
	if m.SelectedRow < 0 {
		m.SelectedRow = 0
		return
	}
	m.SelectedRow = clampIndex(m.SelectedRow+delta, n)
}

// SelectJail selects jail i if it exists, focusing the jails panel and
// resetting the row. It reports whether i was in range.
func (m *Model) SelectJail(i int) bool {
	if i < 0 || i >= len(m.Snapshot.Jails) {
		return false
	}
	m.SelectedJail = i
	m.Focus = FocusJails
	m.ResetRow()
	return true
}

// ReplaceSnapshot installs snap. With keepSelection the jail is re-found by
// name and the row by address, falling back to the old indices clamped;
// otherwise the first jail and first row are selected.
func (m *Model) ReplaceSnapshot(snap fail2ban.Snapshot, keepSelection bool) {
	var jailName, ip string
	if keepSelection {
		if j := m.CurrentJail(); j != nil {
			jailName = j.Name
		}
		if e := m.SelectedEntry(); e != nil {
			ip = e.IP
		}
	}
	oldJail, oldRow := m.SelectedJail, m.SelectedRow

	m.Snapshot = snap
	if !keepSelection {
		m.SelectedJail = clampIndex(0, len(snap.Jails))
		m.ResetRow()
		return
	}

	m.SelectedJail = clampIndex(oldJail, len(snap.Jails))
	for i := range snap.Jails {
		if snap.Jails[i].Name == jailName {
			m.SelectedJail = i
			break
		}
	}
	m.SelectedRow = oldRow
	if ip != "" {
		for i, e := range m.Projection() {
			if e.IP == ip {
				m.SelectedRow = i
				break
			}
		}
	}
	m.ClampSelection()
}
