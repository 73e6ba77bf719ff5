//go:build !tinygo

package nrf24l01

import (
	"github.com/sirupsen/logrus"
)

func init() {
	l := logrus.New()
	l.Formatter = new(logrus.TextFormatter)
	l.Level = logrus.InfoLevel
	globalLogger = &logrusLogger{log: l}
}

// logrusLogger is the default logger on hosted targets.
type logrusLogger struct {
	log *logrus.Logger
}

func (l *logrusLogger) Debug(msg string) { l.log.Debug(msg) }
func (l *logrusLogger) Info(msg string) { l.log.Info(msg) }
func (l *logrusLogger) Warn(msg string) { l.log.Warn(msg) }
func (l *logrusLogger) Error(msg string) { l.log.Error(msg) }
