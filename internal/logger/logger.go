package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// Levels are a verbosity threshold: a message is printed when its level is
// not above the logger's level.
const (
	LogLevelError = 0
	LogLevelWarn  = 1
	LogLevelInfo  = 2
	LogLevelDebug = 3
)

var levelNames = map[string]int{
	"error": LogLevelError,
	"warn":  LogLevelWarn,
	"info":  LogLevelInfo,
	"debug": LogLevelDebug,
}

type logger struct {
	prefix      string
	innerLogger *log.Logger
	level       int
}

func GetLogger(prefix string, level int) Logger {
	return New(os.Stdout, prefix, level)
}

func New(w io.Writer, prefix string, level int) Logger {
	return &logger{
		prefix:      prefix,
		innerLogger: log.New(w, "", log.Ldate|log.Ltime|log.Lmicroseconds),
		level:       level,
	}
}

// ParseLevel maps a level name to its constant. Unknown names fall back to info.
func ParseLevel(name string) int {
	if level, ok := levelNames[strings.ToLower(strings.TrimSpace(name))]; ok {
		return level
	}

	return LogLevelInfo
}

func (l *logger) Error(message string, v ...interface{}) {
	l.log(LogLevelError, "ERROR", message, v...)
}

func (l *logger) Warn(message string, v ...interface{}) {
	l.log(LogLevelWarn, "WARN", message, v...)
}

func (l *logger) Info(message string, v ...interface{}) {
	l.log(LogLevelInfo, "INFO", message, v...)
}

func (l *logger) Debug(message string, v ...interface{}) {
	l.log(LogLevelDebug, "DEBUG", message, v...)
}

func (l *logger) log(level int, tag string, message string, v ...interface{}) {
	if level > l.level {
		return
	}

	l.innerLogger.Printf("%v [%v] %v\n", l.prefix, tag, fmt.Sprintf(message, v...))
}

func (l *logger) GetWriter() io.Writer {
	return l.innerLogger.Writer()
}
