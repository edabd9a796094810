// mocklogger/mocklogger.go
package mocklogger

import (
	"errors"
	"sync"

	"github.com/simbuah/go-api-http-client/logger"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// MockLogger is a mock type for the Logger interface. Expectations are registered with On;
// calls without a matching expectation are recorded but otherwise ignored when Permissive is set.
type MockLogger struct {
	mock.Mock
	logLevel logger.LogLevel
	mu       sync.Mutex

	// Permissive makes the mock accept calls for which no expectation was registered.
	Permissive bool
}

// NewMockLogger creates a MockLogger that fails on unexpected calls.
func NewMockLogger() *MockLogger {
	return &MockLogger{}
}

// NewPermissiveMockLogger creates a MockLogger that tolerates any call, for tests that only
// assert on a subset of log output.
func NewPermissiveMockLogger() *MockLogger {
	return &MockLogger{Permissive: true}
}

// Ensure MockLogger implements the logger.Logger interface from the logger package
var _ logger.Logger = (*MockLogger)(nil)

func (m *MockLogger) record(method string, args ...interface{}) mock.Arguments {
	if m.Permissive && !m.hasExpectation(method) {
		m.mu.Lock()
		m.Mock.Calls = append(m.Mock.Calls, mock.Call{Method: method, Arguments: args})
		m.mu.Unlock()
		return nil
	}
	return m.MethodCalled(method, args...)
}

func (m *MockLogger) hasExpectation(method string) bool {
	for _, call := range m.ExpectedCalls {
		if call.Method == method {
			return true
		}
	}
	return false
}

// GetLogLevel returns the level last passed to SetLevel.
func (m *MockLogger) GetLogLevel() logger.LogLevel {
	return m.logLevel
}

// SetLevel sets the logging level of the MockLogger.
func (m *MockLogger) SetLevel(level logger.LogLevel) {
	m.logLevel = level
}

// With records the call and returns the same mock, so expectations keep applying to child loggers.
func (m *MockLogger) With(fields ...zap.Field) logger.Logger {
	m.record("With", fields)
	return m
}

// Debug logs a message at the Debug level.
func (m *MockLogger) Debug(msg string, fields ...zap.Field) {
	m.record("Debug", msg, fields)
}

// Info logs a message at the Info level.
func (m *MockLogger) Info(msg string, fields ...zap.Field) {
	m.record("Info", msg, fields)
}

// Warn logs a message at the Warn level.
func (m *MockLogger) Warn(msg string, fields ...zap.Field) {
	m.record("Warn", msg, fields)
}

// Error logs a message at the Error level and returns it as an error.
func (m *MockLogger) Error(msg string, fields ...zap.Field) error {
	m.record("Error", msg, fields)
	return errors.New(msg)
}

// Panic records the call and then panics.
func (m *MockLogger) Panic(msg string, fields ...zap.Field) {
	m.record("Panic", msg, fields)
	panic(msg)
}

// Fatal records the call. Unlike the real logger it does not exit.
func (m *MockLogger) Fatal(msg string, fields ...zap.Field) {
	m.record("Fatal", msg, fields)
}

// Sync flushes nothing.
func (m *MockLogger) Sync() error {
	return nil
}

// Messages returns the messages recorded for the given method, in call order.
func (m *MockLogger) Messages(method string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, call := range m.Calls {
		if call.Method != method || len(call.Arguments) == 0 {
			continue
		}
		if msg, ok := call.Arguments[0].(string); ok {
			out = append(out, msg)
		}
	}
	return out
}
