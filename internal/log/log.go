package log

import (
	"fmt"
	"io"
	"os"
	"path"
	"runtime"
	"strings"
	"sync"

	formatter "github.com/antonfisher/nested-logrus-formatter"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	logger *logrus.Logger
	once   sync.Once
)

type Fields = logrus.Fields

// Options configures the logger. Level is a logrus level name and defaults to
// warning; Verbose forces debug. File, when set, receives a rotated copy of
// every entry.
type Options struct {
	Level   string
	File    string
	Verbose bool
}

// NewLogger configures the process logger on first call. Later calls return
// the same logger and ignore opts.
func NewLogger(opts Options) *logrus.Logger {
	once.Do(func() {
		logger = build(opts, os.Stderr)
	})
	return logger
}

// Logger returns the process logger, creating a default one if NewLogger was
// never called.
func Logger() *logrus.Logger {
	return NewLogger(Options{})
}

func build(opts Options, stderr io.Writer) *logrus.Logger {
	l := logrus.New()

	level := logrus.WarnLevel
	if opts.Level != "" {
		if parsed, err := logrus.ParseLevel(opts.Level); err == nil {
			level = parsed
		}
	}
	if opts.Verbose {
		level = logrus.DebugLevel
	}
	l.SetLevel(level)

	l.SetFormatter(&formatter.Formatter{
		NoColors:        false,
		TimestampFormat: "02 Jan 06 - 15:04",
		HideKeys:        false,
		CallerFirst:     true,
		CustomCallerFormatter: func(f *runtime.Frame) string {
			s := strings.Split(f.Function, ".")
			funcName := s[len(s)-1]
			return fmt.Sprintf(" \x1b[%dm[%s:%d][%s()]", 34, path.Base(f.File), f.Line, funcName)
		},
	})

	writers := []io.Writer{stderr}
	if opts.File != "" && os.Getenv("APP_ENV") != "test" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   opts.File,
			LocalTime:  true,
			Compress:   true,
			MaxSize:    10,
			MaxAge:     7,
			MaxBackups: 3,
		})
	}

	l.SetOutput(io.MultiWriter(writers...))
	l.SetReportCaller(level >= logrus.DebugLevel)
	return l
}

func Debug(fields Fields, msg string) {
	Logger().WithFields(orEmpty(fields)).Debug(msg)
}

func Info(fields Fields, msg string) {
	Logger().WithFields(orEmpty(fields)).Info(msg)
}

func Warn(fields Fields, msg string) {
	Logger().WithFields(orEmpty(fields)).Warn(msg)
}

func Error(fields Fields, msg string) {
	Logger().WithFields(orEmpty(fields)).Error(msg)
}

func orEmpty(fields Fields) Fields {
	if fields == nil {
		return Fields{}
	}
	return fields
}
