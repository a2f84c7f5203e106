// internal/logger/logger.go
package logger

import (
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	base     *logrus.Logger
	initOnce sync.Once
)

// NewLogger returns the process-wide logrus logger.
// Level and format are read from LOG_LEVEL and LOG_FORMAT the first time it is called,
// since the config package itself logs while loading.
func NewLogger() *logrus.Logger {
	initOnce.Do(func() {
		base = logrus.New()
		base.SetOutput(os.Stdout)
		Configure(base, os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
	})
	return base
}

// Configure applies a level ("debug", "info", "warn", ...) and a format ("json" or "text")
// to l. Unknown levels fall back to info.
func Configure(l *logrus.Logger, level, format string) {
	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	if strings.EqualFold(format, "json") {
		l.SetFormatter(&logrus.JSONFormatter{})
		return
	}
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
}
