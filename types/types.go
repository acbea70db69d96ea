package types

import (
	"io"
	"log"
)

// Log levels
const (
	LogDebug = "DEBUG"
	LogInfo  = "INFO"
	LogWarn  = "WARN"
	LogError = "ERROR"
)

// Run states reported by the lamp daemon
const (
	StateStarting = "starting"
	StateRunning  = "running"
	StateStopping = "stopping"
)

type Logger struct {
	DebugLog *log.Logger
	InfoLog  *log.Logger
	WarnLog  *log.Logger
	ErrorLog *log.Logger
}

// NewLogger builds a leveled logger writing to out with level prefixes.
func NewLogger(out io.Writer) *Logger {
	return &Logger{
		DebugLog: log.New(out, LogDebug+" ", log.LstdFlags),
		InfoLog:  log.New(out, LogInfo+" ", log.LstdFlags),
		WarnLog:  log.New(out, LogWarn+" ", log.LstdFlags),
		ErrorLog: log.New(out, LogError+" ", log.LstdFlags),
	}
}

// NewDiscardLogger is a logger for tests.
func NewDiscardLogger() *Logger {
	return NewLogger(io.Discard)
}
