package logging

import (
	"log/slog"
	"os"
)

// Setup installs the default JSON logger. The database sink is layered on
// later in main, once the connection exists.
func Setup() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))
}
