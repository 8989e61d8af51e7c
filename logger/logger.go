// Package logger configures logrus for the whole process and provides the gin logging middleware
package logger

import (
	"github.com/FlorianRuen/langs-badge/config"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Setup configures the standard logrus logger from the LOGS section
// gin debug and error output is redirected to logrus so every line shares the same format
func Setup(cfg config.LogsConfig) {
	if cfg.OutputLogsAsJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	logrus.SetLevel(ParseLevel(cfg.Level))

	gin.DefaultWriter = logrus.StandardLogger().WriterLevel(logrus.DebugLevel)
	gin.DefaultErrorWriter = logrus.StandardLogger().WriterLevel(logrus.ErrorLevel)
}

// ParseLevel converts error | warn | info | debug (case insensitive) to a logrus level
// anything else, including trace and fatal, gives the error level
func ParseLevel(logLevel string) logrus.Level {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return logrus.ErrorLevel
	}

	switch level {
	case logrus.ErrorLevel, logrus.WarnLevel, logrus.InfoLevel, logrus.DebugLevel:
		return level
	default:
		return logrus.ErrorLevel
	}
}
