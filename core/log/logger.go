package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

var (
	logWriter io.Writer  = os.Stdout
	logLevel  slog.Level = slog.Level(1000) // Very high level to disable all logging by default
	logger    *slog.Logger
)

func init() {
	rebuildLogger()
}

func rebuildLogger() {
	logger = slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: logLevel,
	}))
}

func Info(msg string, args ...any) {
	logger.Info(format(msg, args...))
}

func Debug(msg string, args ...any) {
	logger.Debug(format(msg, args...))
}

func Warn(msg string, args ...any) {
	logger.Warn(format(msg, args...))
}

func Error(msg string, args ...any) {
	logger.Error(format(msg, args...))
}

func SetLevel(level slog.Level) {
	logLevel = level
	rebuildLogger()
}

// SetWriter redirects log output, e.g. to a MultiWriter that mirrors to a file.
func SetWriter(w io.Writer) {
	logWriter = w
	rebuildLogger()
}

func format(msg string, args ...any) string {
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}
