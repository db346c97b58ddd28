package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"
)

// LogLevel defines the severity of the log entry.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String makes LogLevel satisfy the fmt.Stringer interface.
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l LogLevel) SlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseLevel maps a config string ("debug", "info", ...) to a LogLevel.
// Unknown values yield LevelInfo.
func ParseLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// LogEntry is the structured log entry passed to the TUI.
type LogEntry struct {
	Timestamp time.Time
	Level     LogLevel
	Subsystem string
	Message   string
	Err       error
}

var (
	mu            sync.Mutex
	defaultLogger *slog.Logger
	fileLogger    *slog.Logger
	tuiLogChannel chan LogEntry
	isTuiMode     bool
	minLevel      = LevelInfo
)

const tuiChannelBufferSize = 2048

// Initcommon initializes the logger for either TUI or CLI mode.
// This should be called once at application startup.
func Initcommon(mode string, level LogLevel, output io.Writer, channelBufferSize int) <-chan LogEntry {
	mu.Lock()
	defer mu.Unlock()

	opts := &slog.HandlerOptions{
		Level: level.SlogLevel(),
	}
	minLevel = level

	var handler slog.Handler
	if mode == "tui" {
		isTuiMode = true
		if channelBufferSize <= 0 {
			channelBufferSize = tuiChannelBufferSize
		}
		tuiLogChannel = make(chan LogEntry, channelBufferSize)
		// Stderr is hidden behind the alt screen; it only matters before the
		// program starts and after it exits.
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		isTuiMode = false
		handler = slog.NewTextHandler(output, opts)
	}
	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)

	if isTuiMode {
		return tuiLogChannel
	}
	return nil
}

// InitForTUI initializes the logging system for TUI mode.
// It sets up a channel that the TUI will listen to for log entries.
func InitForTUI(filterLevel LogLevel) <-chan LogEntry {
	return Initcommon("tui", filterLevel, os.Stderr, tuiChannelBufferSize)
}

// InitForCLI initializes the logging system for CLI mode.
func InitForCLI(filterLevel LogLevel, output io.Writer) {
	Initcommon("cli", filterLevel, output, 0)
}

// MirrorToFile additionally writes every entry to w as slog text, regardless
// of mode. Passing nil disables mirroring.
func MirrorToFile(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		fileLogger = nil
		return
	}
	fileLogger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: minLevel.SlogLevel()}))
}

func logInternal(level LogLevel, subsystem string, err error, messageFmt string, args ...interface{}) {
	msg := messageFmt
	if len(args) > 0 {
		msg = fmt.Sprintf(messageFmt, args...)
	}

	mu.Lock()
	tui, logger, mirror, threshold := isTuiMode, defaultLogger, fileLogger, minLevel
	if tui && level >= threshold && tuiLogChannel != nil {
		entry := LogEntry{
			Timestamp: time.Now(),
			Level:     level,
			Subsystem: subsystem,
			Message:   msg,
			Err:       err,
		}
		// Never block the UI goroutine on a full buffer.
		select {
		case tuiLogChannel <- entry:
		default:
		}
	}
	mu.Unlock()

	attrs := []slog.Attr{slog.String("subsystem", subsystem)}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	if mirror != nil {
		mirror.LogAttrs(context.Background(), level.SlogLevel(), msg, attrs...)
	}
	if tui {
		return
	}

	if logger == nil {
		logger = slog.Default()
	}
	logger.LogAttrs(context.Background(), level.SlogLevel(), msg, attrs...)
}

// Debug logs a debug message.
func Debug(subsystem string, messageFmt string, args ...interface{}) {
	logInternal(LevelDebug, subsystem, nil, messageFmt, args...)
}

// Info logs an informational message.
func Info(subsystem string, messageFmt string, args ...interface{}) {
	logInternal(LevelInfo, subsystem, nil, messageFmt, args...)
}

// Warn logs a warning message.
func Warn(subsystem string, messageFmt string, args ...interface{}) {
	logInternal(LevelWarn, subsystem, nil, messageFmt, args...)
}

// Error logs an error message.
func Error(subsystem string, err error, messageFmt string, args ...interface{}) {
	logInternal(LevelError, subsystem, err, messageFmt, args...)
}

// CloseTUIChannel closes the TUI log channel. Should be called on application shutdown.
func CloseTUIChannel() {
	mu.Lock()
	defer mu.Unlock()
	if tuiLogChannel != nil {
		close(tuiLogChannel)
		tuiLogChannel = nil
	}
	isTuiMode = false
}
