// Package logger provides named component loggers that print `[NAME] [LEVEL] message` lines,
// with the component name in its own color.
package logger

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

const colorReset = "\033[0m"

var ErrEmptyName = errors.New("logger name is empty")

// Logger writes leveled messages for one component.
type Logger struct {
	entry *logrus.Entry
}

// New creates a logger for the named component writing to out.
// color is an ANSI escape sequence; an empty color disables coloring.
func New(name string, color string, out io.Writer) (*Logger, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}

	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(logrus.DebugLevel)
	l.SetFormatter(&formatter{name: name, color: color})
	return &Logger{entry: logrus.NewEntry(l)}, nil
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string) { l.entry.Debug(msg) }

// Info logs an informational message.
func (l *Logger) Info(msg string) { l.entry.Info(msg) }

// Warning logs a warning message.
func (l *Logger) Warning(msg string) { l.entry.Warning(msg) }

// Error logs an error message.
func (l *Logger) Error(msg string) { l.entry.Error(msg) }

// formatter renders entries as `[NAME] [LEVEL] message`.
type formatter struct {
	name  string
	color string
}

// Format implements logrus.Formatter.
func (f *formatter) Format(e *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer
	if f.color != "" {
		fmt.Fprintf(&b, "%s[%s]%s", f.color, f.name, colorReset)
	} else {
		fmt.Fprintf(&b, "[%s]", f.name)
	}
	fmt.Fprintf(&b, " [%s] %s", strings.ToUpper(e.Level.String()), e.Message)

	b.WriteByte('\n')
	return b.Bytes(), nil
}
