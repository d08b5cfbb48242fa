package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsoleLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriterLogger(&buf, LevelInfo, false)
	log.Trace("trace %d", 1)
	log.Debug("debug %d", 2)
	log.Info("info %d", 3)
	log.Warn("warn %d", 4)
	log.Error("error %d", 5)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 3)
	assert.Contains(t, lines[0], "[INFO ] info 3")
	assert.Contains(t, lines[1], "[WARN ] warn 4")
	assert.Contains(t, lines[2], "[ERROR] error 5")
	assert.False(t, log.IsLevelEnabled(LevelDebug))
	assert.True(t, log.IsLevelEnabled(LevelError))
}

func TestConsoleLoggerPrefixAndMetadata(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriterLogger(&buf, LevelTrace, false)
	child := log.WithPrefix("[cache]").WithPrefix("[cache]").With(map[string]interface{}{"owner": "unbound"})
	child.Debug("hit")
	assert.Contains(t, buf.String(), "[cache] hit {\"owner\":\"unbound\"}")

	buf.Reset()
	log.Debug("plain")
	assert.NotContains(t, buf.String(), "[cache]")
	assert.NotContains(t, buf.String(), "owner")
}

func TestConsoleLoggerColors(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriterLogger(&buf, LevelTrace, true)
	log.Error("boom")
	assert.Contains(t, buf.String(), RedBold)

	buf.Reset()
	NewWriterLogger(&buf, LevelTrace, false).Error("boom")
	assert.NotContains(t, buf.String(), "\033[")
}

func TestTestLogger(t *testing.T) {
	log := NewTestLogger()
	log.Trace("Trace message", 1)
	log.Info("Info message", 3)
	log.Warn("Warn message", 4)

	child := WithKV(log, "key", 42).(*TestLogger)
	child.Error("Error message", 5)

	logs := log.Logs()
	assert.Len(t, logs, 4)
	assert.Equal(t, "TRACE", logs[0].Severity)
	assert.Equal(t, []interface{}{1}, logs[0].Arguments)
	assert.Equal(t, "WARNING", logs[2].Severity)
	assert.Equal(t, "ERROR", logs[3].Severity)
	assert.Equal(t, 1, log.Count("INFO"))
	assert.Equal(t, 42, child.Metadata()["key"])
	assert.Nil(t, log.Metadata())
}
