package logging

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"
)

// sink is the shared destination of a logger and its WithFields children
type sink struct {
	mu      sync.Mutex
	w       io.Writer
	written int64
	// beforeWrite runs under mu ahead of every entry; used for rotation
	beforeWrite func(s *sink)
}

// StreamLogger writes entries to an io.Writer
type StreamLogger struct {
	sink   *sink
	format Format
	level  Level
	fields Fields
	now    func() time.Time
}

// NewStreamLogger creates a logger writing to w
func NewStreamLogger(w io.Writer, format Format, level Level) *StreamLogger {
	return &StreamLogger{
		sink:   &sink{w: w},
		format: format,
		level:  level,
		now:    time.Now,
	}
}

// Debug logs a debug message
func (l *StreamLogger) Debug(ctx context.Context, msg string, fields Fields) {
	l.log(DebugLevel, msg, nil, fields)
}

// Info logs an info message
func (l *StreamLogger) Info(ctx context.Context, msg string, fields Fields) {
	l.log(InfoLevel, msg, nil, fields)
}

// Warn logs a warning message
func (l *StreamLogger) Warn(ctx context.Context, msg string, fields Fields) {
	l.log(WarnLevel, msg, nil, fields)
}

// Error logs an error message
func (l *StreamLogger) Error(ctx context.Context, msg string, err error, fields Fields) {
	l.log(ErrorLevel, msg, err, fields)
}

// WithFields returns a logger sharing the same output with additional fields
func (l *StreamLogger) WithFields(fields Fields) Logger {
	child := *l
	child.fields = mergeFields(l.fields, fields)
	return &child
}

// Close does nothing; the writer is owned by the caller
func (l *StreamLogger) Close() error {
	return nil
}

func (l *StreamLogger) log(level Level, msg string, err error, fields Fields) {
	if level < l.level {
		return
	}

	all := mergeFields(l.fields, fields)

	var line []byte
	if l.format == FormatJSON {
		var jsonErr error
		line, jsonErr = l.formatJSON(level, msg, err, all)
		if jsonErr != nil {
			return
		}
	} else {
		line = l.formatText(level, msg, err, all)
	}

	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	if l.sink.beforeWrite != nil {
		l.sink.beforeWrite(l.sink)
	}
	n, _ := l.sink.w.Write(line)
	l.sink.written += int64(n)
}

func (l *StreamLogger) formatJSON(level Level, msg string, err error, fields Fields) ([]byte, error) {
	entry := make(map[string]interface{}, len(fields)+4)
	for k, v := range fields {
		entry[k] = v
	}
	entry["timestamp"] = l.now().UTC().Format(time.RFC3339)
	entry["level"] = LevelString(level)
	entry["message"] = msg
	if err != nil {
		entry["error"] = err.Error()
	}

	data, jsonErr := json.Marshal(entry)
	if jsonErr != nil {
		return nil, jsonErr
	}
	return append(data, '\n'), nil
}

// formatText renders "timestamp [LEVEL] message error=... key=value" with
// keys in sorted order so lines are stable
func (l *StreamLogger) formatText(level Level, msg string, err error, fields Fields) []byte {
	var b strings.Builder
	b.WriteString(l.now().UTC().Format("2006-01-02T15:04:05.000Z"))
	fmt.Fprintf(&b, " [%s] %s", LevelString(level), msg)

	if err != nil {
		fmt.Fprintf(&b, " error=%q", err.Error())
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, fields[k])
	}

	b.WriteByte('\n')
	return []byte(b.String())
}
