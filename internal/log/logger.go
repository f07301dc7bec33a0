// Package log provides the application-wide logger. It wraps logrus behind a
// small package-level API so callers never hold a logger instance, and it can
// mirror output to a timestamped run log file next to the archive.
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

var std = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return l
}

// SetDebug toggles debug-level output.
func SetDebug(debug bool) {
	if debug {
		std.SetLevel(logrus.DebugLevel)
	} else {
		std.SetLevel(logrus.InfoLevel)
	}
}

// SetOutput redirects all log output. Used by tests to capture output.
func SetOutput(w io.Writer) {
	std.SetOutput(w)
}

// AddFileOutput mirrors all log output to <dir>/<prefix>_<timestamp>.log and
// returns the file path. The directory is created if absent.
func AddFileOutput(dir, prefix string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating log directory: %w", err)
	}
	name := fmt.Sprintf("%s_%s.log", prefix, time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return "", fmt.Errorf("opening log file: %w", err)
	}
	std.SetOutput(io.MultiWriter(os.Stdout, f))
	return path, nil
}

// Field is a single structured logging key/value pair.
type Field struct {
	Key   string
	Value interface{}
}

// F builds a Field for use with WithFields.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// WithFields returns an entry carrying the given structured fields.
func WithFields(fields ...Field) *logrus.Entry {
	lf := make(logrus.Fields, len(fields))
	for _, f := range fields {
		lf[f.Key] = f.Value
	}
	return std.WithFields(lf)
}

func Debug(format string, args ...interface{}) {
	std.Debugf(format, args...)
}

func Info(format string, args ...interface{}) {
	std.Infof(format, args...)
}

func Warn(format string, args ...interface{}) {
	std.Warnf(format, args...)
}

func Error(format string, args ...interface{}) {
	std.Errorf(format, args...)
}
