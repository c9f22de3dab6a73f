package config

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/mordilloSan/go-logcore/logger"
	"github.com/mordilloSan/go-logcore/metrics"
	"github.com/mordilloSan/go-logcore/sink"
)

// Build constructs the sink chain and Logger described by cfg. The returned
// Observer is nil unless metrics are enabled. Close the Logger on shutdown
// to flush it and release the file.
func Build(cfg *Config, opts ...logger.Option) (*logger.Logger, *metrics.Observer, error) {
	if err := Validate(cfg); err != nil {
		return nil, nil, err
	}

	out, err := buildSink(cfg)
	if err != nil {
		return nil, nil, err
	}

	var observer *metrics.Observer
	if cfg.Metrics.Enabled {
		observer, err = metrics.NewObserver(cfg.Metrics.Namespace)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, logger.WithObserver(observer))
	}

	l, err := logger.NewFromConfig(out, logger.Config{
		MinSeverity:          cfg.MinSeverity,
		DisableDeduplication: !cfg.Deduplication,
	}, opts...)
	if err != nil {
		return nil, nil, err
	}
	return l, observer, nil
}

func buildSink(cfg *Config) (logger.Sink, error) {
	if cfg.Sink == SinkZerolog {
		zl := zerolog.New(nil).With().Timestamp().Logger()
		return sink.NewZerolog(zl, os.Stdout), nil
	}

	color, err := sink.ParseColorMode(cfg.Console.Color)
	if err != nil {
		return nil, err
	}
	console := sink.NewConsole(sink.ConsoleConfig{
		Color:                color,
		DisableJournalPrefix: !cfg.Console.JournalPrefix,
	})
	if cfg.Sink == SinkConsole {
		return console, nil
	}

	f, err := sink.NewFile(sink.FileConfig{
		Path:       cfg.File.Path,
		MaxSizeMB:  cfg.File.MaxSizeMB,
		MaxBackups: cfg.File.MaxBackups,
		MaxAgeDays: cfg.File.MaxAgeDays,
		Compress:   cfg.File.Compress,
	})
	if err != nil {
		return nil, fmt.Errorf("file sink: %w", err)
	}
	if cfg.Sink == SinkBoth {
		return sink.Multi{console, f}, nil
	}
	return sink.Fallback{Primary: f, Secondary: console}, nil
}
