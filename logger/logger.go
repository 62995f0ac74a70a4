package logger

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

const (
	// EnvLogLevel overrides the default log level, e.g. LIFTOFF_LOG_LEVEL=debug
	EnvLogLevel = "LIFTOFF_LOG_LEVEL"

	defaultLevel = logrus.InfoLevel
)

var (
	projectLogger *logrus.Logger
	once          sync.Once
)

// GetProjectLogger returns the shared project logger, creating it on first use.
func GetProjectLogger() *logrus.Logger {
	once.Do(func() {
		projectLogger = New(os.Getenv(EnvLogLevel))
	})
	return projectLogger
}

// New creates a logger at the named level. An empty or unknown level falls back to info.
func New(level string) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000",
	})

	lvl, err := logrus.ParseLevel(level)
	if err != nil || level == "" {
		lvl = defaultLevel
	}
	l.SetLevel(lvl)

	return l
}

// Warner adapts a logrus entry to the single-method warning sink the sequencer reports
// contained track failures to.
type Warner struct {
	entry *logrus.Entry
}

// NewWarner wraps l. A nil logger uses the project logger.
func NewWarner(l logrus.FieldLogger) *Warner {
	if l == nil {
		l = GetProjectLogger()
	}
	return &Warner{entry: l.WithField("component", "sequencer")}
}

// Warn logs message with err attached.
func (w *Warner) Warn(message string, err error) {
	w.entry.WithError(err).Warn(message)
}
