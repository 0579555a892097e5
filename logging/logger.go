// Package logging provides the JSON structured logger shared by the page
// server and its HTTP middleware.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level represents the severity of a log entry.
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
	FATAL
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR", "FATAL"}

func (l Level) String() string {
	if l < DEBUG || l > FATAL {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ParseLevel maps a level name to a Level, defaulting to INFO.
func ParseLevel(name string) Level {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for i, n := range levelNames {
		if n == upper {
			return Level(i)
		}
	}
	if upper == "WARNING" {
		return WARN
	}
	return INFO
}

// Entry is one structured log line.
type Entry struct {
	Timestamp time.Time      `json:"timestamp"`
	Level     string         `json:"level"`
	Service   string         `json:"service,omitempty"`
	Category  string         `json:"category"`
	Message   string         `json:"message"`
	Fields    map[string]any `json:"fields,omitempty"`
	RequestID string         `json:"request_id,omitempty"`
	Duration  *int64         `json:"duration_ms,omitempty"`
	Error     string         `json:"error,omitempty"`
}

// Logger writes JSON entries to every configured writer.
type Logger struct {
	mu       sync.Mutex
	minLevel Level
	service  string
	writers  []io.Writer
	now      func() time.Time
}

// New creates a Logger for service. With no writers it logs to stdout.
func New(service string, minLevel Level, writers ...io.Writer) *Logger {
	if len(writers) == 0 {
		writers = []io.Writer{os.Stdout}
	}
	return &Logger{
		minLevel: minLevel,
		service:  service,
		writers:  writers,
		now:      time.Now,
	}
}

// Log writes an entry at level.
func (l *Logger) Log(level Level, category, message string, fields map[string]any) {
	if l == nil || level < l.minLevel {
		return
	}
	l.write(Entry{Level: level.String(), Category: category, Message: message, Fields: fields})
}

// Debug logs a debug message.
func (l *Logger) Debug(category, message string, fields map[string]any) {
	l.Log(DEBUG, category, message, fields)
}

// Info logs an info message.
func (l *Logger) Info(category, message string, fields map[string]any) {
	l.Log(INFO, category, message, fields)
}

// Warn logs a warning message.
func (l *Logger) Warn(category, message string, fields map[string]any) {
	l.Log(WARN, category, message, fields)
}

// Error logs an error message with err attached.
func (l *Logger) Error(category, message string, err error, fields map[string]any) {
	if l == nil || ERROR < l.minLevel {
		return
	}
	entry := Entry{Level: ERROR.String(), Category: category, Message: message, Fields: fields}
	if err != nil {
		entry.Error = err.Error()
	}
	l.write(entry)
}

// Printf adapts the logger to printf-style callers such as http.Server.ErrorLog.
func (l *Logger) Printf(format string, args ...any) {
	l.Log(INFO, "general", fmt.Sprintf(format, args...), nil)
}

func (l *Logger) write(entry Entry) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = l.now().UTC()
	}
	if entry.Service == "" {
		entry.Service = l.service
	}
	data, err := json.Marshal(entry)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to marshal log entry: %v\n", err)
		return
	}
	data = append(data, '\n')

	l.mu.Lock()
	defer l.mu.Unlock()
	for _, w := range l.writers {
		_, _ = w.Write(data)
	}
}

// LogContext carries a request ID and fields into successive log calls.
type LogContext struct {
	logger    *Logger
	requestID string
	category  string
	fields    map[string]any
}

// WithRequestID creates a logging context bound to requestID.
func (l *Logger) WithRequestID(requestID string) *LogContext {
	return &LogContext{logger: l, requestID: requestID, fields: make(map[string]any)}
}

// WithCategory sets the category for this context.
func (c *LogContext) WithCategory(category string) *LogContext {
	c.category = category
	return c
}

// WithField adds a field to this context.
func (c *LogContext) WithField(key string, value any) *LogContext {
	c.fields[key] = value
	return c
}

func (c *LogContext) log(level Level, message string, err error) {
	if c.logger == nil || level < c.logger.minLevel {
		return
	}
	entry := Entry{
		Level:     level.String(),
		Category:  c.category,
		Message:   message,
		Fields:    c.fields,
		RequestID: c.requestID,
	}
	if err != nil {
		entry.Error = err.Error()
	}
	c.logger.write(entry)
}

// Info logs an info message with the context's request ID and fields.
func (c *LogContext) Info(message string) { c.log(INFO, message, nil) }

// Warn logs a warning with the context's request ID and fields.
func (c *LogContext) Warn(message string) { c.log(WARN, message, nil) }

// Error logs an error with the context's request ID and fields.
func (c *LogContext) Error(message string, err error) { c.log(ERROR, message, err) }
