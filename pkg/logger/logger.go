package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the printf-style logger shared by every service.
type Logger struct {
	info  *zerolog.Logger
	error *zerolog.Logger
	warn  *zerolog.Logger
}

func New() *Logger {
	return NewWithWriter(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
}

// NewWithWriter builds a Logger that writes every level to w.
func NewWithWriter(w io.Writer) *Logger {
	base := zerolog.New(w).With().Timestamp().Logger()
	info := base.Level(zerolog.InfoLevel)
	errLog := base.Level(zerolog.ErrorLevel)
	warn := base.Level(zerolog.WarnLevel)
	return &Logger{
		info:  &info,
		error: &errLog,
		warn:  &warn,
	}
}

func (l *Logger) Info(format string, v ...interface{}) {
	l.info.Info().Msg(fmt.Sprintf(format, v...))
}

func (l *Logger) Error(format string, v ...interface{}) {
	l.error.Error().Msg(fmt.Sprintf(format, v...))
}

func (l *Logger) Warn(format string, v ...interface{}) {
	l.warn.Warn().Msg(fmt.Sprintf(format, v...))
}

// With returns a Logger that stamps every entry with the given field.
func (l *Logger) With(key, value string) *Logger {
	info := l.info.With().Str(key, value).Logger()
	errLog := l.error.With().Str(key, value).Logger()
	warn := l.warn.With().Str(key, value).Logger()
	return &Logger{info: &info, error: &errLog, warn: &warn}
}
