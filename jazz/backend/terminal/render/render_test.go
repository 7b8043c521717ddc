package render

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLogBufferRing(t *testing.T) {
	lb := NewLogBuffer(3)
	for i, level := range []slog.Level{slog.LevelInfo, slog.LevelDebug, slog.LevelWarn, slog.LevelInfo} {
		lb.Add(LogEntry{Level: level, Message: string(rune('a' + i))})
	}

	assert.Equal(t, 3, lb.Len())

	var messages []string
	for _, e := range lb.Recent(0, slog.LevelDebug) {
		messages = append(messages, e.Message)
	}
	assert.Equal(t, []string{"d", "c", "b"}, messages, "newest first, oldest dropped")

	recent := lb.Recent(1, slog.LevelWarn)
	assert.Len(t, recent, 1)
	assert.Equal(t, "c", recent[0].Message)
}

func TestLogBufferHandler(t *testing.T) {
	lb := NewLogBuffer(10)
	logger := slog.New(NewLogBufferHandler(lb, slog.LevelInfo))

	logger.Debug("Hidden")
	logger.With("name", "menu.000").WithGroup("palette").Info("Loaded", "entries", 256)

	entries := lb.Recent(0, slog.LevelDebug)
	assert.Len(t, entries, 1)
	assert.Equal(t, "Loaded name=menu.000 palette.entries=256", entries[0].Message)
}

func TestFormatLogEntry(t *testing.T) {
	at := time.Date(2024, 1, 2, 13, 4, 5, 0, time.UTC)
	assert.Equal(t, "13:04:05 [WRN] careful", FormatLogEntry(LogEntry{Time: at, Level: slog.LevelWarn, Message: "careful"}))
	assert.Equal(t, "13:04:05 [ERR] broken", FormatLogEntry(LogEntry{Time: at, Level: slog.LevelError + 2, Message: "broken"}))
}

func TestFitStep(t *testing.T) {
	tests := []struct {
		w, h, cols, rows int
		want             int
	}{
		{320, 200, 320, 100, 1},
		{320, 200, 80, 24, 5},
		{320, 200, 160, 100, 2},
		{4, 4, 0, 10, 0},
		{3, 3, 3, 2, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FitStep(tt.w, tt.h, tt.cols, tt.rows), "%dx%d in %dx%d", tt.w, tt.h, tt.cols, tt.rows)
	}
}

func TestChannels(t *testing.T) {
	r, g, b := Channels(0x1020F0FF)
	assert.Equal(t, []int32{0x10, 0x20, 0xF0}, []int32{r, g, b})
}
