package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// RedactedValue replaces sensitive field values in log output.
const RedactedValue = "REDACTED"

// sensitiveFieldKeys are matched case-insensitively against zap field keys.
var sensitiveFieldKeys = map[string]bool{
	"access_token":  true,
	"refresh_token": true,
	"authorization": true,
	"password":      true,
}

// redactingCore wraps a zapcore.Core and masks credential-bearing fields before they are written.
type redactingCore struct {
	zapcore.Core
}

// With adds structured context to the Core, redacting it first.
func (c *redactingCore) With(fields []zapcore.Field) zapcore.Core {
	return &redactingCore{c.Core.With(redactFields(fields))}
}

// Write redacts sensitive fields and writes the entry to the wrapped core.
func (c *redactingCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	return c.Core.Write(entry, redactFields(fields))
}

// Check determines whether the supplied Entry should be logged.
func (c *redactingCore) Check(entry zapcore.Entry, checkedEntry *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return checkedEntry.AddCore(entry, c)
	}
	return checkedEntry
}

// Sync flushes buffered logs (if any).
func (c *redactingCore) Sync() error {
	return c.Core.Sync()
}

func redactFields(fields []zapcore.Field) []zapcore.Field {
	var out []zapcore.Field
	for i, field := range fields {
		if !sensitiveFieldKeys[strings.ToLower(field.Key)] {
			continue
		}
		if out == nil {
			out = make([]zapcore.Field, len(fields))
			copy(out, fields)
		}
		out[i] = zap.String(field.Key, RedactedValue)
	}
	if out == nil {
		return fields
	}
	return out
}
