package logging

import (
	"log/slog"
	"os"
)

// Setup installs a JSON slog logger on stdout as the process default. It
// runs before the database is up; once connected, main swaps in the fan-out
// handler so errors also land in system_logs.
func Setup() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}
