// Package logger prints leveled messages tagged with the object that emitted
// them, on top of logrus.
package logger

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/sirupsen/logrus"
)

type stringer interface {
	String() string
}

const objWidth = 20

func objToString(obj any) (objStr string) {
	if obj == nil {
		objStr = "NIL"
	} else if stringerObj, ok := obj.(stringer); ok {
		objStr = stringerObj.String()
	} else if objStr, ok = obj.(string); ok {
	} else {
		t := reflect.TypeOf(obj)
		for t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		objStr = t.Name()
	}
	if len(objStr) > objWidth {
		objStr = objStr[:objWidth]
	}
	return
}

func line(obj any, msg string) string {
	return fmt.Sprintf("|%20s|%-100s", objToString(obj), msg)
}

// Init sets the global level and the text formatter.
func Init(lvl logrus.Level) {
	logrus.SetLevel(lvl)
	logrus.SetFormatter(&logrus.TextFormatter{
		ForceColors:     true,
		FullTimestamp:   true,
		PadLevelText:    true,
		TimestampFormat: "2006/02/01 15:04:05",
	})
}

// InitFromEnv calls Init with the level named by the environment variable key,
// falling back to def when it is unset or not a logrus level name.
func InitFromEnv(key string, def logrus.Level) logrus.Level {
	lvl := def
	if v, ok := os.LookupEnv(key); ok {
		if parsed, err := logrus.ParseLevel(strings.TrimSpace(v)); err == nil {
			lvl = parsed
		}
	}
	Init(lvl)
	return lvl
}

func logAt(lvl logrus.Level, obj any, msg string) {
	if !logrus.IsLevelEnabled(lvl) {
		return
	}
	logrus.StandardLogger().Log(lvl, line(obj, msg))
}

func Trace(object any, message string) {
	logAt(logrus.TraceLevel, object, message)
}

func Tracef(object any, message string, args ...any) {
	if !logrus.IsLevelEnabled(logrus.TraceLevel) {
		return
	}
	logAt(logrus.TraceLevel, object, fmt.Sprintf(message, args...))
}

func Debug(object any, message string) {
	logAt(logrus.DebugLevel, object, message)
}

func Debugf(object any, message string, args ...any) {
	if !logrus.IsLevelEnabled(logrus.DebugLevel) {
		return
	}
	logAt(logrus.DebugLevel, object, fmt.Sprintf(message, args...))
}

func Info(object any, message string) {
	logAt(logrus.InfoLevel, object, message)
}

func Infof(object any, message string, args ...any) {
	logAt(logrus.InfoLevel, object, fmt.Sprintf(message, args...))
}

func Warning(object any, message string) {
	logAt(logrus.WarnLevel, object, message)
}

func Warningf(object any, message string, args ...any) {
	logAt(logrus.WarnLevel, object, fmt.Sprintf(message, args...))
}

func Error(object any, message string) {
	logAt(logrus.ErrorLevel, object, message)
}

func Errorf(object any, message string, args ...any) {
	logAt(logrus.ErrorLevel, object, fmt.Sprintf(message, args...))
}

func Fatal(object any, message string) {
	logrus.Fatal(line(object, message))
}

func Fatalf(object any, message string, args ...any) {
	logrus.Fatal(line(object, fmt.Sprintf(message, args...)))
}
