// Package logger builds the logrus logger shared by the CLI and the
// storage backend.
package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// DefaultLevel is used when no level is configured.
const DefaultLevel = "warn"

// New creates a logger writing text to stderr at the given level. An
// unknown level falls back to DefaultLevel.
func New(level string) *logrus.Logger {
	return NewWithOutput(level, os.Stderr)
}

// NewWithOutput is New with an explicit destination.
func NewWithOutput(level string, out io.Writer) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logLevel, _ = logrus.ParseLevel(DefaultLevel)
	}
	logger.SetLevel(logLevel)

	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:    true,
		DisableColors:    true,
		QuoteEmptyFields: true,
	})
	logger.SetOutput(out)

	return logger
}
