// Package obs holds the minimal logging surface the client exposes. The
// codec itself never logs; only transport code reports through here.
package obs

import "log"

// Level is a log severity.
type Level int

const (
	Debug Level = iota
	Info
	Error
)

// String returns the level tag used in log lines.
func (l Level) String() string {
	switch l {
	case Debug:
		return "DEBUG"
	case Info:
		return "INFO"
	case Error:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger receives diagnostic events from the transport layer.
type Logger interface {
	Logf(level Level, format string, args ...interface{})
}

// Nop discards all logs. It is the default when no logger is configured.
type Nop struct{}

func (Nop) Logf(Level, string, ...interface{}) {}

// Std adapts a standard library logger, dropping events below Min.
type Std struct {
	L   *log.Logger
	Min Level
}

func (s Std) Logf(level Level, format string, args ...interface{}) {
	if s.L == nil || level < s.Min {
		return
	}
	s.L.Printf("[%s] "+format, append([]interface{}{level.String()}, args...)...)
}
