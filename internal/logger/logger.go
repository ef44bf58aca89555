package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New creates a logger writing text lines with full timestamps. Unknown
// levels fall back to info.
func New(level string) *logrus.Logger {
	log := logrus.New()
	configure(log, level, os.Stdout)
	return log
}

// Init applies the same settings to the standard logger, which gin handlers
// use through the package-level logrus functions.
func Init(level string) *logrus.Logger {
	log := logrus.StandardLogger()
	configure(log, level, os.Stdout)
	return log
}

func configure(log *logrus.Logger, level string, out io.Writer) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	log.SetOutput(out)
}

// WithFields creates a logger entry with the specified fields
func WithFields(log *logrus.Logger, fields logrus.Fields) *logrus.Entry {
	return log.WithFields(fields)
}
