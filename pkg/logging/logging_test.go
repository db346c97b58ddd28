package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LevelDebug},
		{" DEBUG ", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"", LevelInfo},
		{"verbose", LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
	assert.Equal(t, "WARN", LevelWarn.String())
	assert.Equal(t, "UNKNOWN", LogLevel(42).String())
}

func TestCLIMode(t *testing.T) {
	var buf bytes.Buffer
	InitForCLI(LevelInfo, &buf)

	Debug("Test", "hidden %d", 1)
	Info("Test", "shown %d", 2)
	Error("Test", errors.New("boom"), "failed")

	out := buf.String()
	assert.NotContains(t, out, "hidden 1")
	assert.Contains(t, out, "shown 2")
	assert.Contains(t, out, "subsystem=Test")
	assert.Contains(t, out, "error=boom")
}

func TestTUIMode(t *testing.T) {
	ch := Initcommon("tui", LevelInfo, nil, 2)
	defer CloseTUIChannel()
	require.NotNil(t, ch)

	Debug("Test", "below threshold")
	Warn("Test", "first")
	Info("Test", "second")
	Info("Test", "dropped, buffer full")

	first := <-ch
	assert.Equal(t, LevelWarn, first.Level)
	assert.Equal(t, "first", first.Message)
	assert.Equal(t, "Test", first.Subsystem)
	second := <-ch
	assert.Equal(t, "second", second.Message)

	select {
	case e := <-ch:
		t.Fatalf("unexpected entry %q", e.Message)
	default:
	}
}

func TestMirrorToFile(t *testing.T) {
	var cli, mirror bytes.Buffer
	InitForCLI(LevelInfo, &cli)
	MirrorToFile(&mirror)

	Info("Test", "to both")
	MirrorToFile(nil)
	Info("Test", "cli only")

	assert.Contains(t, cli.String(), "to both")
	assert.Contains(t, cli.String(), "cli only")
	assert.Contains(t, mirror.String(), "to both")
	assert.NotContains(t, mirror.String(), "cli only")
}

func TestCloseTUIChannelTwice(t *testing.T) {
	InitForTUI(LevelInfo)
	CloseTUIChannel()
	assert.NotPanics(t, CloseTUIChannel)
	// Logging after close must not panic.
	assert.NotPanics(t, func() { Info("Test", "after close") })
	InitForCLI(LevelInfo, &bytes.Buffer{})
}
