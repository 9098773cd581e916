package logging

import (
	"io"
	"log/slog"
	"strings"
)

// SetupLogger installs the default slog logger: text output in development and JSON in production.
func SetupLogger(appEnv, logLevel string, out io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     ParseLevel(logLevel),
		AddSource: appEnv != "production",
	}

	var handler slog.Handler = slog.NewTextHandler(out, opts)

	if appEnv == "production" {
		handler = slog.NewJSONHandler(out, opts)
	}

	logger := slog.New(handler).With("app", "hireloop")
	slog.SetDefault(logger)
	return logger
}

func ParseLevel(levelStr string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(levelStr)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARNING", "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
