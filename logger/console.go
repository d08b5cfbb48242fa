package logger

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

const isWindows = runtime.GOOS == "windows"

var noColor = os.Getenv("TERM") == "dumb" || os.Getenv("NO_COLOR") != "" ||
	(!isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()))

const (
	Reset      = "\033[0m"
	Red        = "\033[31m"
	Green      = "\033[32m"
	Magenta    = "\033[35m"
	BlueBold   = "\033[34;1m"
	RedBold    = "\033[31;1m"
	YellowBold = "\033[33;1m"
	WhiteBold  = "\033[37;1m"
	CyanBold   = "\033[36;1m"
	Gray       = "\033[1;90m"
	Purple     = "\u001b[38;5;200m"
)

type levelStyle struct {
	level   string
	message string
}

var styles = map[LogLevel]levelStyle{
	LevelTrace: {CyanBold, Gray},
	LevelDebug: {BlueBold, Green},
	LevelInfo:  {YellowBold, WhiteBold},
	LevelWarn:  {Magenta, Magenta},
	LevelError: {RedBold, Red},
}

type consoleLogger struct {
	prefixes []string
	metadata map[string]interface{}
	out      Sink
	mutex    *sync.Mutex
	colors   bool
	logLevel LogLevel
}

var _ Logger = (*consoleLogger)(nil)

func (c *consoleLogger) color(val string) string {
	if !c.colors {
		return ""
	}
	return val
}

func (c *consoleLogger) clone() *consoleLogger {
	metadata := make(map[string]interface{}, len(c.metadata))
	for k, v := range c.metadata {
		metadata[k] = v
	}
	return &consoleLogger{
		prefixes: slices.Clone(c.prefixes),
		metadata: metadata,
		out:      c.out,
		mutex:    c.mutex,
		colors:   c.colors,
		logLevel: c.logLevel,
	}
}

// WithPrefix will return a new logger with a prefix prepended to the message
func (c *consoleLogger) WithPrefix(prefix string) Logger {
	l := c.clone()
	if !slices.Contains(l.prefixes, prefix) {
		l.prefixes = append(l.prefixes, prefix)
	}
	return l
}

func (c *consoleLogger) With(metadata map[string]interface{}) Logger {
	l := c.clone()
	for k, v := range metadata {
		l.metadata[k] = v
	}
	return l
}

func (c *consoleLogger) IsLevelEnabled(level LogLevel) bool {
	return level >= c.logLevel
}

func (c *consoleLogger) log(level LogLevel, msg string, args ...interface{}) {
	if level < c.logLevel {
		return
	}
	style := styles[level]
	var prefix, suffix string
	if len(c.prefixes) > 0 {
		prefix = c.color(Purple) + strings.Join(c.prefixes, " ") + c.color(Reset) + " "
	}
	if len(c.metadata) > 0 {
		buf, _ := json.Marshal(c.metadata)
		suffix = " " + c.color(Gray) + string(buf) + c.color(Reset)
	}
	levelText := c.color(style.level) + fmt.Sprintf("[%-5s]", level.String()) + c.color(Reset)
	message := c.color(style.message) + fmt.Sprintf(msg, args...) + c.color(Reset)
	line := fmt.Sprintf("%s %s %s%s%s\n", time.Now().Format(time.RFC3339), levelText, prefix, message, suffix)
	if !c.colors {
		line = ansiColorStripper.ReplaceAllString(line, "")
	}
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.out.Write([]byte(line))
}

func (c *consoleLogger) Trace(msg string, args ...interface{}) { c.log(LevelTrace, msg, args...) }
func (c *consoleLogger) Debug(msg string, args ...interface{}) { c.log(LevelDebug, msg, args...) }
func (c *consoleLogger) Info(msg string, args ...interface{})  { c.log(LevelInfo, msg, args...) }
func (c *consoleLogger) Warn(msg string, args ...interface{})  { c.log(LevelWarn, msg, args...) }
func (c *consoleLogger) Error(msg string, args ...interface{}) { c.log(LevelError, msg, args...) }

func (c *consoleLogger) Fatal(msg string, args ...interface{}) {
	c.log(LevelError, msg, args...)
	os.Exit(1)
}

// NewConsoleLogger returns a new Logger instance which will log to stderr. Without an explicit
// level the level comes from the environment.
func NewConsoleLogger(levels ...LogLevel) Logger {
	level := GetLevelFromEnv()
	if len(levels) > 0 {
		level = levels[0]
	}
	return NewWriterLogger(os.Stderr, level, !isWindows && !noColor)
}

// NewWriterLogger returns a console style Logger writing to sink.
func NewWriterLogger(sink Sink, level LogLevel, colors bool) Logger {
	return &consoleLogger{
		metadata: make(map[string]interface{}),
		out:      sink,
		mutex:    &sync.Mutex{},
		colors:   colors,
		logLevel: level,
	}
}
