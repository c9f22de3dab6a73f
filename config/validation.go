package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/mordilloSan/go-logcore/logger"
	"github.com/mordilloSan/go-logcore/sink"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid logger config")

var validSinks = []string{SinkConsole, SinkFile, SinkBoth, SinkZerolog}

// Validate checks cfg and normalises its enumerations to lower case.
func Validate(cfg *Config) error {
	if _, err := logger.ParseSeverity(cfg.MinSeverity); err != nil {
		return fmt.Errorf("%w: min_severity: %w", ErrInvalidConfig, err)
	}

	cfg.Sink = strings.ToLower(strings.TrimSpace(cfg.Sink))
	if !slices.Contains(validSinks, cfg.Sink) {
		return fmt.Errorf("%w: sink %q (must be one of: %s)",
			ErrInvalidConfig, cfg.Sink, strings.Join(validSinks, ", "))
	}

	if _, err := sink.ParseColorMode(cfg.Console.Color); err != nil {
		return fmt.Errorf("%w: console.color: %w", ErrInvalidConfig, err)
	}

	if err := validateFile(cfg); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func validateFile(cfg *Config) error {
	needsFile := cfg.Sink == SinkFile || cfg.Sink == SinkBoth
	if needsFile && cfg.File.Path == "" {
		return fmt.Errorf("file.path is required for sink %q", cfg.Sink)
	}
	if cfg.File.MaxSizeMB < 0 {
		return fmt.Errorf("file.max_size_mb must not be negative")
	}
	if cfg.File.MaxBackups < 0 {
		return fmt.Errorf("file.max_backups must not be negative")
	}
	if cfg.File.MaxAgeDays < 0 {
		return fmt.Errorf("file.max_age_days must not be negative")
	}
	return nil
}
