package controller

import (
	"f2bsentinel/internal/tui/model"
	"f2bsentinel/pkg/logging"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	controllerSubsystem = "Controller"
	actionSubsystem     = "Action"
)

// LogDebug logs only when the dashboard runs with --debug.
func LogDebug(m *model.Model, subsystem string, format string, a ...interface{}) {
	if m != nil && m.DebugMode {
		logging.Debug(subsystem, format, a...)
	}
}

// LogInfo logs an informational message.
func LogInfo(subsystem string, format string, a ...interface{}) {
	logging.Info(subsystem, format, a...)
}

// LogError logs a failed action with its cause.
func LogError(subsystem string, err error, format string, a ...interface{}) {
	logging.Error(subsystem, err, format, a...)
}

// handleNewLogEntryMsg appends an entry to the activity log and waits for
// the next one.
func handleNewLogEntryMsg(m *model.Model, msg model.NewLogEntryMsg) (*model.Model, tea.Cmd) {
	if msg.Entry.Level >= logging.LevelInfo || m.DebugMode {
		model.AddRawLineToActivityLog(m, model.FormatLogEntry(msg.Entry))
		if m.Overlay == model.OverlayLog {
			syncLogViewport(m)
		}
	}
	return m, model.ListenForLogEntriesCmd(m.LogChannel)
}
