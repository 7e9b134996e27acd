package xmlscene

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

// Logger receives import progress. Warnings are non-fatal scene oddities
// (skipped tags, unmapped bsdf types, extra cameras).
type Logger interface {
	DebugEnabled() bool
	SetDebug(enabled bool)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// DefaultLogger writes "[prefix] LEVEL: message" lines. Debug and info go to
// the progress stream, warnings and errors to the problem stream.
type DefaultLogger struct {
	mu       sync.Mutex
	debug    bool
	prefix   string
	progress *log.Logger
	problems *log.Logger
}

func NewDefaultLogger(prefix string, debug bool) *DefaultLogger {
	return NewWriterLogger(os.Stdout, os.Stderr, prefix, debug)
}

// NewWriterLogger logs info and debug lines to out, warnings and errors to errOut.
func NewWriterLogger(out, errOut io.Writer, prefix string, debug bool) *DefaultLogger {
	flags := log.LstdFlags | log.Lmicroseconds
	return &DefaultLogger{
		debug:    debug,
		prefix:   prefix,
		progress: log.New(out, "", flags),
		problems: log.New(errOut, "", flags),
	}
}

func (l *DefaultLogger) DebugEnabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.debug
}

func (l *DefaultLogger) SetDebug(enabled bool) {
	l.mu.Lock()
	l.debug = enabled
	l.mu.Unlock()
}

func (l *DefaultLogger) logf(level Level, format string, args ...any) {
	if level == LevelDebug && !l.DebugEnabled() {
		return
	}
	line := level.String() + ": " + fmt.Sprintf(format, args...)
	if l.prefix != "" {
		line = "[" + l.prefix + "] " + line
	}
	if level >= LevelWarn {
		l.problems.Print(line)
		return
	}
	l.progress.Print(line)
}

func (l *DefaultLogger) Debugf(format string, args ...any) { l.logf(LevelDebug, format, args...) }
func (l *DefaultLogger) Infof(format string, args ...any)  { l.logf(LevelInfo, format, args...) }
func (l *DefaultLogger) Warnf(format string, args ...any)  { l.logf(LevelWarn, format, args...) }
func (l *DefaultLogger) Errorf(format string, args ...any) { l.logf(LevelError, format, args...) }

// warningLog forwards to a Logger and keeps every warning so an import can
// hand them back in its Report.
type warningLog struct {
	Logger
	warnings []string
}

func (w *warningLog) Warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	w.warnings = append(w.warnings, msg)
	w.Logger.Warnf("%s", msg)
}

// Warnings returns the warnings seen so far.
func (w *warningLog) Warnings() []string {
	return w.warnings
}

type nopLogger struct{}

func NewNopLogger() Logger { return &nopLogger{} }
func (n *nopLogger) DebugEnabled() bool                { return false }
func (n *nopLogger) SetDebug(enabled bool)             {}
func (n *nopLogger) Debugf(format string, args ...any) {}
func (n *nopLogger) Infof(format string, args ...any)  {}
func (n *nopLogger) Warnf(format string, args ...any)  {}
func (n *nopLogger) Errorf(format string, args ...any) {}
