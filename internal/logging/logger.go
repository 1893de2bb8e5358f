package logging

import (
	"io"
	"log/slog"
	"os"
)

// Setup installs a JSON slog logger on stdout. Development builds log at DEBUG.
func Setup(appEnv string) {
	slog.SetDefault(slog.New(NewJSONHandler(os.Stdout, appEnv)))
}

// NewJSONHandler returns the stdout handler used on its own at boot and as the
// first leg of the MultiHandler once the database sink is available.
func NewJSONHandler(w io.Writer, appEnv string) slog.Handler {
	level := slog.LevelInfo
	if appEnv == "development" {
		level = slog.LevelDebug
	}
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
}
