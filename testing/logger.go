package testing

import (
	"fmt"
	"slices"
	"sync"
	"testing"

	"github.com/woodtho/charge/types"
)

// Level is the severity of a recorded log entry.
type Level string

// Levels recorded by TestLogger.
const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// Entry is one recorded log call.
type Entry struct {
	Level         Level
	Msg           string
	KeysAndValues []any
}

// TestLogger forwards every entry to t.Logf and keeps a copy for assertions.
// Safe for use from background goroutines while the test is running.
type TestLogger struct {
	tb testing.TB

	mu      sync.Mutex
	entries []Entry
}

var _ types.Logger = (*TestLogger)(nil)

// NewTestLogger creates a logger bound to tb.
//
// Example:
//
//	logger := chargetest.NewTestLogger(t)
//	alloc, _ := charge.NewAllocator(&cfg, charge.WithLogger(logger))
//	...
//	require.Empty(t, logger.EntriesAt(chargetest.LevelWarn))
func NewTestLogger(tb testing.TB) *TestLogger {
	return &TestLogger{tb: tb}
}

func (l *TestLogger) record(level Level, msg string, keysAndValues []any) {
	l.mu.Lock()
	l.entries = append(l.entries, Entry{Level: level, Msg: msg, KeysAndValues: slices.Clone(keysAndValues)})
	l.mu.Unlock()

	l.tb.Logf("%s: %s %v", level, msg, keysAndValues)
}

func (l *TestLogger) Debug(msg string, keysAndValues ...any) {
	l.record(LevelDebug, msg, keysAndValues)
}

func (l *TestLogger) Info(msg string, keysAndValues ...any) {
	l.record(LevelInfo, msg, keysAndValues)
}

func (l *TestLogger) Warn(msg string, keysAndValues ...any) {
	l.record(LevelWarn, msg, keysAndValues)
}

func (l *TestLogger) Error(msg string, keysAndValues ...any) {
	l.record(LevelError, msg, keysAndValues)
}

// Fatal fails the test immediately instead of exiting the process.
func (l *TestLogger) Fatal(msg string, keysAndValues ...any) {
	l.tb.Helper()
	l.tb.Fatal(fmt.Sprintf("FATAL: %s %v", msg, keysAndValues))
}

// Entries returns a copy of everything logged so far.
func (l *TestLogger) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	return slices.Clone(l.entries)
}

// EntriesAt returns the entries logged at level.
func (l *TestLogger) EntriesAt(level Level) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []Entry
	for _, e := range l.entries {
		if e.Level == level {
			out = append(out, e)
		}
	}

	return out
}

// Messages returns the messages logged at level, in order.
func (l *TestLogger) Messages(level Level) []string {
	entries := l.EntriesAt(level)
	msgs := make([]string, len(entries))
	for i, e := range entries {
		msgs[i] = e.Msg
	}

	return msgs
}
