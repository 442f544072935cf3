// Package logging builds the structured logger shared by the simulator,
// the HTTP surface and the command line.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Config represents logging configuration
type Config struct {
	// Level is one of debug, info, warn, error
	Level string `json:"level" yaml:"level"`
	// Format is text or json
	Format string `json:"format" yaml:"format"`
}

// DefaultConfig returns the default logging configuration
func DefaultConfig() Config {
	return Config{Level: "info", Format: "text"}
}

// Validate checks level and format names
func (c Config) Validate() error {
	if _, err := parseLevel(c.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Format) {
	case "", "text", "json":
		return nil
	}
	return fmt.Errorf("log.format: unsupported %q", c.Format)
}

// New builds a logger writing to w
func New(w io.Writer, config Config) (*slog.Logger, error) {
	level, err := parseLevel(config.Level)
	if err != nil {
		return nil, err
	}
	options := &slog.HandlerOptions{Level: level}
	if strings.ToLower(config.Format) == "json" {
		options.AddSource = true
		return slog.New(slog.NewJSONHandler(w, options)), nil
	}
	return slog.New(slog.NewTextHandler(w, options)), nil
}

// Discard returns a logger dropping every record
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// ErrAttr returns an error attribute
func ErrAttr(err error) slog.Attr {
	return slog.Any("error", err)
}

func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("log.level: unsupported %q", level)
}
