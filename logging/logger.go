package logging

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the global logrus instance for the service.
var Logger = logrus.New()
var once sync.Once

// CustomFormatter renders log entries in the shared event format.
type CustomFormatter struct {
	SystemName string
}

func (f *CustomFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b *bytes.Buffer
	if entry.Buffer != nil {
		b = entry.Buffer
	} else {
		b = &bytes.Buffer{}
	}

	b.WriteString(fmt.Sprintf("Date: %s, Time: %s, ", entry.Time.Format("2006-01-02"), entry.Time.Format("15:04:05")))
	b.WriteString(fmt.Sprintf("Event Source: %s, ", f.SystemName))
	b.WriteString(fmt.Sprintf("Event Type: %s, ", strings.ToUpper(entry.Level.String())))
	b.WriteString(fmt.Sprintf("Event ID: %s, ", uuid.New().String()))
	b.WriteString(fmt.Sprintf("Message: %s", entry.Message))

	if entry.HasCaller() {
		b.WriteString(fmt.Sprintf(", Location: %s:%d in %s", entry.Caller.File, entry.Caller.Line, entry.Caller.Function))
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}

// InitLogger initializes the global logger with file rotation. Falls back to
// stderr when the log directory cannot be created.
func InitLogger() {
	once.Do(func() {
		logDir := os.Getenv("LOG_DIR")
		if logDir == "" {
			logDir = "logs"
		}

		Logger.SetFormatter(&CustomFormatter{SystemName: "task-manager"})
		Logger.SetLevel(logrus.InfoLevel)
		Logger.SetReportCaller(true)

		if err := os.MkdirAll(logDir, 0700); err != nil {
			Logger.SetOutput(os.Stderr)
			Logger.Warnf("Event ID: LOG_DIR_CREATE_FAILED, Description: Failed to create log directory, logging to stderr: %v", err)
			return
		}

		Logger.SetOutput(&lumberjack.Logger{
			Filename:   logDir + "/task-manager.log",
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		})

		Logger.Infof("Event ID: LOGGER_INITIALIZED, Description: Logger initialized, output to: %s/task-manager.log", logDir)
	})
}
