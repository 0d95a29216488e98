package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/censuskit/censuskit/constants"
)

func Initialize(appName string) {
	slog.SetDefault(censuskitLogger(appName))
}

// censuskitLogger returns a logger that writes JSON log lines to stderr
func censuskitLogger(appName string) *slog.Logger {
	level := getLogLevel()
	if level == constants.LogLevelOff {
		return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	}

	handlerOptions := &slog.HandlerOptions{
		Level: level,
	}
	// add app name as source
	source := fmt.Sprintf("censuskit-%s", appName)
	return slog.New(slog.NewJSONHandler(os.Stderr, handlerOptions)).With("source", source)
}

func getLogLevel() slog.Leveler {
	levelEnv := os.Getenv(constants.EnvLogLevel)

	switch strings.ToLower(levelEnv) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return constants.LogLevelOff
	}
}
