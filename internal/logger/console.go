// Package logger provides the leveled console logger injected into finders
// and commands.
//
// There is deliberately no package-level logger: components receive their
// logger through constructors, so library callers stay in control of where
// diagnostics go.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Log level constants for filtering
const (
	levelTrace int = 0
	levelDebug int = 1
	levelInfo  int = 2
	levelWarn  int = 3
	levelError int = 4
)

// ConsoleLogger writes leveled, timestamped messages to a writer with
// thread safety. All output is prefixed with [HH:MM:SS] timestamps. Color
// output is enabled automatically when the writer is a terminal.
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleLogger creates a ConsoleLogger that writes to the provided
// io.Writer. If writer is nil, messages are silently discarded.
// logLevel determines the minimum level for messages to be output; valid
// levels are trace, debug, info, warn, error (case-insensitive). An empty
// or invalid level defaults to "info".
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		logLevel:    normalizeLogLevel(logLevel),
		colorOutput: isTerminal(writer),
	}
}

// isTerminal checks if the writer is a terminal that supports colors.
// Respects NO_COLOR through fatih/color's built-in detection.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if color.NoColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// normalizeLogLevel converts a log level string to lowercase and validates
// it. Returns "info" as default for empty or invalid levels.
func normalizeLogLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))

	switch normalized {
	case "trace", "debug", "info", "warn", "error":
		return normalized
	}
	return "info"
}

// shouldLog checks if a message at the given level should be logged.
func (cl *ConsoleLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(cl.logLevel)
}

// logLevelToInt converts a log level string to its numeric value.
func logLevelToInt(level string) int {
	switch level {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "info":
		return levelInfo
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// levelColor returns the color used for a level's tag.
func levelColor(level string) *color.Color {
	switch level {
	case "trace", "debug":
		return color.New(color.FgHiBlack)
	case "warn":
		return color.New(color.FgYellow)
	case "error":
		return color.New(color.FgRed)
	default:
		return color.New(color.FgCyan)
	}
}

// Tracef logs a formatted message at trace level.
func (cl *ConsoleLogger) Tracef(format string, args ...any) { cl.logf("trace", format, args...) }

// Debugf logs a formatted message at debug level.
func (cl *ConsoleLogger) Debugf(format string, args ...any) { cl.logf("debug", format, args...) }

// Infof logs a formatted message at info level.
func (cl *ConsoleLogger) Infof(format string, args ...any) { cl.logf("info", format, args...) }

// Warnf logs a formatted message at warn level.
func (cl *ConsoleLogger) Warnf(format string, args ...any) { cl.logf("warn", format, args...) }

// Errorf logs a formatted message at error level.
func (cl *ConsoleLogger) Errorf(format string, args ...any) { cl.logf("error", format, args...) }

func (cl *ConsoleLogger) logf(level, format string, args ...any) {
	if cl == nil || cl.writer == nil || !cl.shouldLog(level) {
		return
	}

	timestamp := time.Now().Format("15:04:05")
	tag := strings.ToUpper(level)
	if cl.colorOutput {
		tag = levelColor(level).Sprint(tag)
	}
	message := fmt.Sprintf(format, args...)

	cl.mutex.Lock()
	defer cl.mutex.Unlock()
	fmt.Fprintf(cl.writer, "[%s] %s %s\n", timestamp, tag, message)
}
