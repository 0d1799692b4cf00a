package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger обертка над logrus с printf-style API
// Пишет одновременно в stdout и в файл с ротацией
type Logger struct {
	log      *logrus.Logger
	rotating *lumberjack.Logger
}

// New создает логгер, пишущий в указанный файл с уровнем level
// Допустимые уровни: debug, info, warn, error
func New(file string, level string) (*Logger, error) {
	parsedLevel, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("logger: invalid level %q: %w", level, err)
	}

	log := logrus.New()
	log.SetLevel(parsedLevel)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	l := &Logger{log: log}

	if file != "" {
		l.rotating = &lumberjack.Logger{
			Filename:   file,
			MaxSize:    100, // мегабайт
			MaxBackups: 5,
			MaxAge:     30, // дней
			Compress:   true,
		}
		log.SetOutput(io.MultiWriter(os.Stdout, l.rotating))
	} else {
		log.SetOutput(os.Stdout)
	}

	return l, nil
}

// Debug логирует сообщение с уровнем DEBUG
func (l *Logger) Debug(format string, v ...interface{}) {
	l.log.Debugf(format, v...)
}

// Info логирует сообщение с уровнем INFO
func (l *Logger) Info(format string, v ...interface{}) {
	l.log.Infof(format, v...)
}

// Warn логирует сообщение с уровнем WARN
func (l *Logger) Warn(format string, v ...interface{}) {
	l.log.Warnf(format, v...)
}

// Error логирует сообщение с уровнем ERROR
func (l *Logger) Error(format string, v ...interface{}) {
	l.log.Errorf(format, v...)
}

// Fatal логирует сообщение и завершает процесс с кодом 1
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.log.Fatalf(format, v...)
}

// Close закрывает файл логов
func (l *Logger) Close() error {
	if l.rotating != nil {
		return l.rotating.Close()
	}
	return nil
}
