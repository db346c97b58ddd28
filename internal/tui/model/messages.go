package model

import (
	"time"

	"f2bsentinel/pkg/logging"

	tea "github.com/charmbracelet/bubbletea"
)

// StartupMsg triggers the initial refresh.
type StartupMsg struct{}

// TickMsg drives the auto-refresh timer.
type TickMsg time.Time

// NewLogEntryMsg carries one entry from the logging channel.
type NewLogEntryMsg struct {
	Entry logging.LogEntry
}

// TickCmd schedules the next TickMsg.
func TickCmd() tea.Cmd {
	return tea.Tick(TickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// ListenForLogEntriesCmd waits for the next log entry. It yields nil once
// the channel is closed, which ends the listening loop.
func ListenForLogEntriesCmd(logChan <-chan logging.LogEntry) tea.Cmd {
	if logChan == nil {
		return nil
	}
	return func() tea.Msg {
		entry, ok := <-logChan
		if !ok {
			return nil
		}
		return NewLogEntryMsg{Entry: entry}
	}
}
