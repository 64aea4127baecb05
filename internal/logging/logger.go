package logging

import (
	"log/slog"
	"os"
)

// InitLogger configures the process-wide default logger.
// level: "debug", "info", "warn", "error" (defaults to "info")
// format: "json" or "text" (defaults to "text")
func InitLogger(level, format string) {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	// Create handler based on format
	var handler slog.Handler
	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	if format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}

// WithGuild returns a logger with guild_id field.
func WithGuild(guildID string) *slog.Logger {
	return slog.Default().With("guild_id", guildID)
}

// WithUser returns a logger with user_id field.
func WithUser(userID string) *slog.Logger {
	return slog.Default().With("user_id", userID)
}

// WithStreamer returns a logger with streamer field.
func WithStreamer(login string) *slog.Logger {
	return slog.Default().With("streamer", login)
}

// WithError returns a logger with error field.
func WithError(err error) *slog.Logger {
	return slog.Default().With("error", err)
}
