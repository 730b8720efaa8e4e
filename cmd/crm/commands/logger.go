package commands

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"sync"
)

// StderrLogger is the crm.Logger behind --verbose. Fields are printed as
// sorted key=value pairs after the message.
type StderrLogger struct {
	mu  sync.Mutex
	out io.Writer
}

// NewStderrLogger creates a logger writing to out.
func NewStderrLogger(out io.Writer) *StderrLogger {
	return &StderrLogger{out: out}
}

func (l *StderrLogger) log(level, msg string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, _ = fmt.Fprintf(l.out, "[%s] %s", level, msg)

	for _, key := range slices.Sorted(maps.Keys(fields)) {
		_, _ = fmt.Fprintf(l.out, " %s=%v", key, fields[key])
	}

	_, _ = fmt.Fprintln(l.out)
}

// Debug implements crm.Logger.
func (l *StderrLogger) Debug(msg string, fields map[string]interface{}) { l.log("DEBUG", msg, fields) }

// Info implements crm.Logger.
func (l *StderrLogger) Info(msg string, fields map[string]interface{}) { l.log("INFO", msg, fields) }

// Warn implements crm.Logger.
func (l *StderrLogger) Warn(msg string, fields map[string]interface{}) { l.log("WARN", msg, fields) }

// Error implements crm.Logger.
func (l *StderrLogger) Error(msg string, fields map[string]interface{}) { l.log("ERROR", msg, fields) }
