// Package logger exposes the application-wide structured logger. It
// writes to stdout and to service.log so deployments without log
// shipping still keep a local trail.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// Log is the global logger shared by every package.
var Log *slog.Logger

func init() {
	file, err := os.OpenFile("service.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o666)
	if err != nil {
		// No logger exists yet to report this with.
		panic("failed to open log file: " + err.Error())
	}
	writer := io.MultiWriter(os.Stdout, file)
	handler := slog.NewTextHandler(writer, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	Log = slog.New(handler)
}
