package model

import (
	"fmt"

	"f2bsentinel/pkg/logging"
)

// MaxActivityLogLines caps the in-memory activity log.
const MaxActivityLogLines = 1000

// AddRawLineToActivityLog adds a pre-formatted log entry to the model's activity log,
// ensuring it doesn't exceed MaxActivityLogLines and sets the dirty flag.
func AddRawLineToActivityLog(m *Model, entry string) {
	m.ActivityLog = append(m.ActivityLog, entry)
	if len(m.ActivityLog) > MaxActivityLogLines {
		m.ActivityLog = m.ActivityLog[len(m.ActivityLog)-MaxActivityLogLines:]
	}
	m.ActivityLogDirty = true
}

// FormatLogEntry renders an entry as one activity log line.
func FormatLogEntry(entry logging.LogEntry) string {
	line := fmt.Sprintf("%s [%s] [%s] %s",
		entry.Timestamp.Format("15:04:05.000"),
		entry.Level.String(),
		entry.Subsystem,
		entry.Message)
	if entry.Err != nil {
		line = fmt.Sprintf("%s -- Error: %v", line, entry.Err)
	}
	return line
}
