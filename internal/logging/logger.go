package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/oklog/ulid/v2"
)

// LoggerConfig holds configuration for the operational logger
type LoggerConfig struct {
	Level  slog.Level
	Writer io.Writer // defaults to os.Stderr
	RunID  string    // generated when empty
}

// GenerateRunID returns a new ULID identifying one invocation.
func GenerateRunID() string {
	return ulid.Make().String()
}

// NewLogger creates a text logger enriched with the run ID and process ID.
func NewLogger(config LoggerConfig) *slog.Logger {
	w := config.Writer
	if w == nil {
		w = os.Stderr
	}
	runID := config.RunID
	if runID == "" {
		runID = GenerateRunID()
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: config.Level,
	})

	return slog.New(handler.WithAttrs([]slog.Attr{
		slog.String("run_id", runID),
		slog.Int("pid", os.Getpid()),
	}))
}
