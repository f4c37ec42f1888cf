package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// VerboseChecker interface for checking verbose state
type VerboseChecker interface {
	IsVerbose() bool
}

// Logger provides structured logging with verbose support
type Logger struct {
	component      string
	verboseChecker VerboseChecker
	out            *output
}

// output is shared between a logger and the component loggers derived from it
type output struct {
	mu     sync.Mutex
	writer io.Writer
}

// Field represents a key-value pair for structured logging
type Field struct {
	Key   string
	Value interface{}
}

// New creates a new logger instance writing to stderr
func New(component string, verboseChecker VerboseChecker) *Logger {
	return NewWithWriter(component, verboseChecker, os.Stderr)
}

// NewWithCallback creates a new logger instance with a callback function
func NewWithCallback(component string, verboseCheck func() bool) *Logger {
	return New(component, &callbackChecker{callback: verboseCheck})
}

// NewWithWriter creates a logger writing to w
func NewWithWriter(component string, verboseChecker VerboseChecker, w io.Writer) *Logger {
	if w == nil {
		w = io.Discard
	}
	return &Logger{
		component:      component,
		verboseChecker: verboseChecker,
		out:            &output{writer: w},
	}
}

// Nop returns a logger that discards everything
func Nop() *Logger {
	return NewWithWriter("", nil, io.Discard)
}

// WithComponent creates a logger with a specific component name
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		component:      component,
		verboseChecker: l.verboseChecker,
		out:            l.out,
	}
}

// SetOutput redirects this logger and every logger derived from it
func (l *Logger) SetOutput(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	l.out.mu.Lock()
	defer l.out.mu.Unlock()
	l.out.writer = w
}

// callbackChecker implements VerboseChecker with a callback function
type callbackChecker struct {
	callback func() bool
}

func (c *callbackChecker) IsVerbose() bool {
	if c.callback == nil {
		return false
	}
	return c.callback()
}

// StaticVerbosity is a VerboseChecker with a fixed answer
type StaticVerbosity bool

// IsVerbose implements VerboseChecker
func (s StaticVerbosity) IsVerbose() bool {
	return bool(s)
}

func (l *Logger) verbose() bool {
	return l.verboseChecker != nil && l.verboseChecker.IsVerbose()
}

// Debug logs debug messages (only when verbose=true)
func (l *Logger) Debug(msg string, args ...interface{}) {
	if l.verbose() {
		l.logWithFields("DEBUG", msg, nil, args...)
	}
}

// Info logs informational messages (only when verbose=true)
func (l *Logger) Info(msg string, args ...interface{}) {
	if l.verbose() {
		l.logWithFields("INFO", msg, nil, args...)
	}
}

// Warn logs warning messages (always shown)
func (l *Logger) Warn(msg string, args ...interface{}) {
	l.logWithFields("WARN", msg, nil, args...)
}

// Error logs error messages (always shown)
func (l *Logger) Error(msg string, args ...interface{}) {
	l.logWithFields("ERROR", msg, nil, args...)
}

// DebugWithFields logs debug message with structured fields
func (l *Logger) DebugWithFields(msg string, fields []Field, args ...interface{}) {
	if l.verbose() {
		l.logWithFields("DEBUG", msg, fields, args...)
	}
}

// InfoWithFields logs info message with structured fields
func (l *Logger) InfoWithFields(msg string, fields []Field, args ...interface{}) {
	if l.verbose() {
		l.logWithFields("INFO", msg, fields, args...)
	}
}

// ErrorWithFields logs error message with structured fields
func (l *Logger) ErrorWithFields(msg string, fields []Field, args ...interface{}) {
	l.logWithFields("ERROR", msg, fields, args...)
}

// logWithFields formats and writes log message with structured fields
func (l *Logger) logWithFields(level, msg string, fields []Field, args ...interface{}) {
	timestamp := time.Now().Format("15:04:05.000")
	component := l.component
	if component == "" {
		component = "main"
	}

	formattedMsg := msg
	if len(args) > 0 {
		formattedMsg = fmt.Sprintf(msg, args...)
	}

	fieldStrings := make([]string, 0, len(fields))
	for _, field := range fields {
		fieldStrings = append(fieldStrings, fmt.Sprintf("%s=%v", field.Key, field.Value))
	}

	var fieldsStr string
	if len(fieldStrings) > 0 {
		fieldsStr = fmt.Sprintf(" [%s]", strings.Join(fieldStrings, " "))
	}

	logLine := fmt.Sprintf("[%s] %s [%s] %s%s\n", timestamp, level, component, formattedMsg, fieldsStr)

	l.out.mu.Lock()
	defer l.out.mu.Unlock()
	// a failed log write has nowhere else to go
	_, _ = io.WriteString(l.out.writer, logLine)
}

// Helper functions for common field types
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

func Duration(d time.Duration) Field {
	return Field{Key: "duration", Value: d}
}

func Error(err error) Field {
	return Field{Key: "error", Value: err}
}

func Status(code int) Field {
	return Field{Key: "status", Value: code}
}

func Submission(id string) Field {
	return Field{Key: "submission", Value: id}
}
