package logger

import (
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	// stdLogger is the global logger
	stdLogger *logrus.Logger
	once      sync.Once
)

// StdLogger returns the process-wide logger, JSON formatted until Init is called
func StdLogger() *logrus.Logger {
	once.Do(func() {
		stdLogger = logrus.New()
		stdLogger.SetOutput(os.Stdout)
		stdLogger.SetFormatter(&logrus.JSONFormatter{})
	})
	return stdLogger
}

// Init applies level ("debug", "info", ...) and format ("json" or "text") to the global logger
func Init(level, format string) *logrus.Logger {
	l := StdLogger()
	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	switch format {
	case "text":
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		l.SetFormatter(&logrus.JSONFormatter{})
	}
	return l
}
