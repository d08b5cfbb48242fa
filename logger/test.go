package logger

import (
	"os"
	"sync"
)

type TestLogEntry struct {
	Severity  string
	Message   string
	Arguments []interface{}
}

// TestLogger records every entry. Loggers derived with With or WithPrefix share the record.
type TestLogger struct {
	metadata map[string]interface{}
	mutex    *sync.Mutex
	logs     *[]TestLogEntry
}

var _ Logger = (*TestLogger)(nil)

// WithPrefix will return a new logger with a prefix prepended to the message
func (c *TestLogger) WithPrefix(prefix string) Logger {
	return c
}

func (c *TestLogger) With(metadata map[string]interface{}) Logger {
	kv := make(map[string]interface{}, len(c.metadata)+len(metadata))
	for k, v := range c.metadata {
		kv[k] = v
	}
	for k, v := range metadata {
		kv[k] = v
	}
	return &TestLogger{metadata: kv, mutex: c.mutex, logs: c.logs}
}

// Metadata returns the metadata attached with With.
func (c *TestLogger) Metadata() map[string]interface{} {
	return c.metadata
}

func (c *TestLogger) IsLevelEnabled(level LogLevel) bool {
	return true
}

func (c *TestLogger) Log(level string, msg string, args ...interface{}) {
	c.mutex.Lock()
	*c.logs = append(*c.logs, TestLogEntry{level, msg, args})
	c.mutex.Unlock()
}

// Logs returns a copy of the recorded entries.
func (c *TestLogger) Logs() []TestLogEntry {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return append([]TestLogEntry(nil), *c.logs...)
}

// Count returns the number of entries recorded with severity.
func (c *TestLogger) Count(severity string) int {
	var n int
	for _, entry := range c.Logs() {
		if entry.Severity == severity {
			n++
		}
	}
	return n
}

func (c *TestLogger) Trace(msg string, args ...interface{}) { c.Log("TRACE", msg, args...) }
func (c *TestLogger) Debug(msg string, args ...interface{}) { c.Log("DEBUG", msg, args...) }
func (c *TestLogger) Info(msg string, args ...interface{})  { c.Log("INFO", msg, args...) }
func (c *TestLogger) Warn(msg string, args ...interface{})  { c.Log("WARNING", msg, args...) }
func (c *TestLogger) Error(msg string, args ...interface{}) { c.Log("ERROR", msg, args...) }

func (c *TestLogger) Fatal(msg string, args ...interface{}) {
	c.Log("FATAL", msg, args...)
	os.Exit(1)
}

// NewTestLogger returns a new Logger instance useful for testing
func NewTestLogger() *TestLogger {
	logs := make([]TestLogEntry, 0)
	return &TestLogger{
		mutex: &sync.Mutex{},
		logs:  &logs,
	}
}
