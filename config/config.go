// Package config loads logger settings from defaults, an optional YAML file
// and LOGGER_* environment variables, and builds a Logger from them.
package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	env "github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marks the environment variables read by Load. Nested keys use a
// double underscore: LOGGER_FILE__MAX_SIZE_MB sets file.max_size_mb.
const EnvPrefix = "LOGGER_"

// Sink names accepted in Config.Sink.
const (
	SinkConsole = "console"
	SinkFile    = "file"
	SinkBoth    = "both"
	SinkZerolog = "zerolog"
)

// Config is the complete logger configuration.
type Config struct {
	// MinSeverity is the inclusive severity floor.
	// Default: "debug"
	MinSeverity string `koanf:"min_severity"`
	// Deduplication collapses consecutive identical entries.
	// Default: true
	Deduplication bool `koanf:"deduplication"`
	// Sink selects the output: console, file, both or zerolog.
	// Default: "console"
	Sink    string        `koanf:"sink"`
	Console ConsoleConfig `koanf:"console"`
	File    FileConfig    `koanf:"file"`
	Metrics MetricsConfig `koanf:"metrics"`
}

// ConsoleConfig configures the console sink.
type ConsoleConfig struct {
	// Color is auto, always or never.
	// Default: "auto"
	Color string `koanf:"color"`
	// JournalPrefix adds "<N>" priorities under systemd-journald.
	// Default: true
	JournalPrefix bool `koanf:"journal_prefix"`
}

// FileConfig configures the rotating file sink.
type FileConfig struct {
	// Path is required when Sink is file or both.
	// Default: ""
	Path string `koanf:"path"`
	// Default: 100
	MaxSizeMB int `koanf:"max_size_mb"`
	// Default: 3
	MaxBackups int `koanf:"max_backups"`
	// Default: 7
	MaxAgeDays int `koanf:"max_age_days"`
	// Default: false
	Compress bool `koanf:"compress"`
}

// MetricsConfig configures the Prometheus observer.
type MetricsConfig struct {
	// Default: false
	Enabled bool `koanf:"enabled"`
	// Default: "logcore"
	Namespace string `koanf:"namespace"`
	// PushURL is a Pushgateway base URL; counters are pushed on shutdown
	// when it is set.
	// Default: ""
	PushURL string `koanf:"push_url"`
	// Default: "logcore"
	PushJob string `koanf:"push_job"`
}

func defaults() map[string]any {
	return map[string]any{
		"min_severity":           "debug",
		"deduplication":          true,
		"sink":                   SinkConsole,
		"console.color":          "auto",
		"console.journal_prefix": true,
		"file.path":              "",
		"file.max_size_mb":       100,
		"file.max_backups":       3,
		"file.max_age_days":      7,
		"file.compress":          false,
		"metrics.enabled":        false,
		"metrics.namespace":      "logcore",
		"metrics.push_url":       "",
		"metrics.push_job":       "logcore",
	}
}

// Load reads configuration with priority:
// 1. Environment variables (highest priority)
// 2. The YAML file at path, when path is not empty
// 3. Default values (lowest priority)
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return finish(k)
}

// LoadYAML is Load with the YAML document given in memory.
func LoadYAML(data []byte) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}
	if err := k.Load(rawbytes.Provider(data), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}
	return finish(k)
}

func finish(k *koanf.Koanf) (*Config, error) {
	if err := k.Load(env.Provider(".", env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: envKey,
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// envKey converts LOGGER_FILE__MAX_SIZE_MB to file.max_size_mb.
func envKey(k, v string) (string, any) {
	k = strings.ToLower(strings.TrimPrefix(k, EnvPrefix))
	return strings.ReplaceAll(k, "__", "."), v
}
