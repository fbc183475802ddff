// Test capture for structured logging.
//
// TestLogger records every entry as a JSON line in memory so tests of the
// estimator and the command line front end can assert on emitted fields.

package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

// sink is shared by a TestLogger and every logger derived from it via With.
type sink struct {
	mu  sync.Mutex
	buf *bytes.Buffer
}

// TestLogger captures log records as JSON lines for inspection in tests.
type TestLogger struct {
	out    *sink
	level  Level
	fields []any
}

// NewTestLogger returns a TestLogger that keeps records at or above level,
// together with the buffer the JSON lines are written to.
//
//	logger, buf := log.NewTestLogger(log.LevelDebug)
//	model := linear.NewLeastSquares(linear.WithLogger(logger))
//	_ = model.Fit(x, y)
//	fmt.Print(buf.String())
func NewTestLogger(level Level) (*TestLogger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return &TestLogger{out: &sink{buf: buf}, level: level}, buf
}

func (t *TestLogger) Debug(msg string, fields ...any) { t.record(LevelDebug, msg, fields) }
func (t *TestLogger) Info(msg string, fields ...any)  { t.record(LevelInfo, msg, fields) }
func (t *TestLogger) Warn(msg string, fields ...any)  { t.record(LevelWarn, msg, fields) }

// Error stores a leading error value under ErrAttrKey.
func (t *TestLogger) Error(msg string, fields ...any) {
	if len(fields) > 0 {
		if err, ok := fields[0].(error); ok {
			fields = append([]any{ErrAttrKey, err}, fields[1:]...)
		}
	}
	t.record(LevelError, msg, fields)
}

// With returns a logger writing to the same buffer with fields attached to
// every record.
func (t *TestLogger) With(fields ...any) Logger {
	merged := make([]any, 0, len(t.fields)+len(fields))
	merged = append(merged, t.fields...)
	merged = append(merged, fields...)
	return &TestLogger{out: t.out, level: t.level, fields: merged}
}

func (t *TestLogger) Enabled(_ context.Context, level Level) bool {
	return level >= t.level
}

func (t *TestLogger) record(level Level, msg string, fields []any) {
	if level < t.level {
		return
	}

	entry := map[string]any{
		"level":   level.String(),
		"message": msg,
	}
	addPairs(entry, t.fields)
	addPairs(entry, fields)

	line, err := json.Marshal(entry)
	if err != nil {
		line = []byte(fmt.Sprintf(`{"level":%q,"message":%q,"marshal_error":%q}`, level.String(), msg, err.Error()))
	}

	t.out.mu.Lock()
	defer t.out.mu.Unlock()
	t.out.buf.Write(line)
	t.out.buf.WriteByte('\n')
}

// addPairs copies key/value pairs into entry. Errors are stored by message
// and a trailing key without a value is dropped.
func addPairs(entry map[string]any, kv []any) {
	for i := 0; i+1 < len(kv); i += 2 {
		key := fmt.Sprint(kv[i])
		if err, ok := kv[i+1].(error); ok {
			entry[key] = err.Error()
			continue
		}
		entry[key] = kv[i+1]
	}
}

// Entries decodes the captured JSON lines.
func (t *TestLogger) Entries() ([]map[string]any, error) {
	t.out.mu.Lock()
	raw := t.out.buf.String()
	t.out.mu.Unlock()

	var entries []map[string]any
	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// ContainsMessage reports whether any record's message contains substr.
func (t *TestLogger) ContainsMessage(substr string) bool {
	return t.CountMessage(substr) > 0
}

// CountMessage returns the number of records whose message contains substr.
func (t *TestLogger) CountMessage(substr string) int {
	entries, err := t.Entries()
	if err != nil {
		return 0
	}
	n := 0
	for _, e := range entries {
		if msg, _ := e["message"].(string); strings.Contains(msg, substr) {
			n++
		}
	}
	return n
}

// ContainsField reports whether some record has key set to value. Numbers
// compare as float64 after the JSON round trip.
func (t *TestLogger) ContainsField(key string, value any) bool {
	entries, err := t.Entries()
	if err != nil {
		return false
	}
	for _, e := range entries {
		if v, ok := e[key]; ok && v == value {
			return true
		}
	}
	return false
}

// Clear drops everything captured so far.
func (t *TestLogger) Clear() {
	t.out.mu.Lock()
	defer t.out.mu.Unlock()
	t.out.buf.Reset()
}
