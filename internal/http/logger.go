package http

import (
	"fmt"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/fivetwenty-io/crm-client/pkg/crm"
)

var _ retryablehttp.LeveledLogger = (*leveledLogger)(nil)

// leveledLogger forwards go-retryablehttp's key/value logging to a crm.Logger.
type leveledLogger struct {
	logger crm.Logger
}

func (l *leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	if l.logger != nil {
		l.logger.Error(msg, toFields(keysAndValues))
	}
}

func (l *leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	if l.logger != nil {
		l.logger.Info(msg, toFields(keysAndValues))
	}
}

func (l *leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	if l.logger != nil {
		l.logger.Debug(msg, toFields(keysAndValues))
	}
}

func (l *leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	if l.logger != nil {
		l.logger.Warn(msg, toFields(keysAndValues))
	}
}

func toFields(keysAndValues []interface{}) map[string]interface{} {
	fields := make(map[string]interface{}, len(keysAndValues)/2)

	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}

	if len(keysAndValues)%2 == 1 {
		fields["extra"] = keysAndValues[len(keysAndValues)-1]
	}

	return fields
}
