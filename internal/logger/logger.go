package logger

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"runtime"
	"strings"
	"time"
)

// LogLevel represents log severity.
type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
	FATAL
)

func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	case FATAL:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// LogEntry is one structured log line.
type LogEntry struct {
	Timestamp string                 `json:"timestamp"`
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Component string                 `json:"component,omitempty"`
	File      string                 `json:"file,omitempty"`
	Line      int                    `json:"line,omitempty"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
	Error     string                 `json:"error,omitempty"`
}

// Logger is a component-scoped structured logger that emits one JSON
// object per line on stdout.
type Logger struct {
	level     LogLevel
	component string
	fields    map[string]interface{}
}

// NewLogger creates a logger for a named component.
func NewLogger(component string) *Logger {
	return &Logger{
		level:     INFO,
		component: component,
		fields:    make(map[string]interface{}),
	}
}

// SetLevel sets the minimum level that will be emitted.
func (l *Logger) SetLevel(level LogLevel) {
	l.level = level
}

// WithField returns a copy of the logger with one extra context field.
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return l.WithFields(map[string]interface{}{key: value})
}

// WithFields returns a copy of the logger with extra context fields.
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	newLogger := &Logger{
		level:     l.level,
		component: l.component,
		fields:    make(map[string]interface{}, len(l.fields)+len(fields)),
	}
	for k, v := range l.fields {
		newLogger.fields[k] = v
	}
	for k, v := range fields {
		newLogger.fields[k] = v
	}
	return newLogger
}

// WithError attaches an error to the logger context.
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l
	}
	return l.WithField("error", err.Error())
}

func (l *Logger) log(level LogLevel, message string) {
	if level < l.level {
		return
	}

	var fileName string
	var line int
	if _, file, ln, ok := runtime.Caller(2); ok {
		parts := strings.Split(file, "/")
		fileName = parts[len(parts)-1]
		line = ln
	}

	entry := LogEntry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     level.String(),
		Message:   message,
		Component: l.component,
		File:      fileName,
		Line:      line,
		Fields:    l.fields,
	}
	if errVal, ok := l.fields["error"]; ok {
		entry.Error = fmt.Sprint(errVal)
	}

	jsonBytes, jsonErr := json.Marshal(entry)
	if jsonErr != nil {
		// Plain fallback if the entry itself cannot be serialized
		log.Printf("[%s] %s: %s (JSON error: %v)", level.String(), l.component, message, jsonErr)
		return
	}
	fmt.Println(string(jsonBytes))

	if level == FATAL {
		os.Exit(1)
	}
}

func (l *Logger) Debug(message string) {
	l.log(DEBUG, message)
}

func (l *Logger) Debugf(format string, args ...interface{}) {
	l.log(DEBUG, fmt.Sprintf(format, args...))
}

func (l *Logger) Info(message string) {
	l.log(INFO, message)
}

func (l *Logger) Infof(format string, args ...interface{}) {
	l.log(INFO, fmt.Sprintf(format, args...))
}

func (l *Logger) Warn(message string) {
	l.log(WARN, message)
}

func (l *Logger) Warnf(format string, args ...interface{}) {
	l.log(WARN, fmt.Sprintf(format, args...))
}

func (l *Logger) Error(message string) {
	l.log(ERROR, message)
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.log(ERROR, fmt.Sprintf(format, args...))
}

func (l *Logger) Fatal(message string) {
	l.log(FATAL, message)
}
