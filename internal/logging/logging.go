// Package logging provides a configured slog logger with:
// - TTY detection for human-readable vs JSON output
// - LOG_FORMAT env var override (text/json)
// - LOG_LEVEL env var (debug/info/warn/error)
// - LOG_FILE env var for an additional rotating JSON log file
// - Source file:line info with shortened relative paths
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls logger construction. Zero values fall back to the env-driven defaults.
type Options struct {
	Format string // "text" or "json"; empty means TTY detection
	Level  string
	File   string // optional path of a rotating JSON log file

	// Out is the console writer, os.Stdout when nil.
	Out io.Writer
}

// OptionsFromEnv reads LOG_FORMAT, LOG_LEVEL and LOG_FILE.
func OptionsFromEnv() Options {
	return Options{
		Format: os.Getenv("LOG_FORMAT"),
		Level:  os.Getenv("LOG_LEVEL"),
		File:   os.Getenv("LOG_FILE"),
	}
}

// New creates a logger configured from the environment.
func New() *slog.Logger {
	return NewWithOptions(OptionsFromEnv())
}

// NewWithOptions creates a logger from explicit options.
func NewWithOptions(o Options) *slog.Logger {
	out := o.Out
	if out == nil {
		out = os.Stdout
	}

	useText := o.Format == "text"
	if o.Format == "" {
		if f, ok := out.(*os.File); ok {
			useText = isatty(f)
		}
	}

	opts := &slog.HandlerOptions{
		Level:       parseLogLevel(o.Level),
		AddSource:   true,
		ReplaceAttr: relativeSource(),
	}

	var console slog.Handler
	if useText {
		console = slog.NewTextHandler(out, opts)
	} else {
		console = slog.NewJSONHandler(out, opts)
	}

	if o.File == "" {
		return slog.New(console)
	}

	rotator := &lumberjack.Logger{
		Filename:   o.File,
		MaxSize:    10, // megabytes
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	}
	return slog.New(fanout{console, slog.NewJSONHandler(rotator, opts)})
}

// relativeSource shortens source paths to be relative to the working directory.
func relativeSource() func(groups []string, a slog.Attr) slog.Attr {
	wd, _ := os.Getwd()
	return func(groups []string, a slog.Attr) slog.Attr {
		if a.Key != slog.SourceKey {
			return a
		}
		if src, ok := a.Value.Any().(*slog.Source); ok {
			if rel, err := filepath.Rel(wd, src.File); err == nil {
				src.File = rel
			} else {
				src.File = filepath.Base(src.File)
			}
		}
		return a
	}
}

// parseLogLevel converts a string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SetDefault creates a new logger and sets it as the default slog logger.
// Returns the created logger for additional use.
func SetDefault() *slog.Logger {
	logger := New()
	slog.SetDefault(logger)
	return logger
}

// isatty returns true if the file is a terminal.
func isatty(f *os.File) bool {
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}
