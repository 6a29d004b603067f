package runtimeconfig

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	ErrCommandsFeatureRequired   = errors.New("addressformat config: command dispatch requires the commands feature")
	ErrSourceProviderUnknown     = errors.New("addressformat config: source provider is invalid")
	ErrSourcePathRequired        = errors.New("addressformat config: source path is required for the directory provider")
	ErrSourceDriverUnknown       = errors.New("addressformat config: source driver is invalid")
	ErrSourceDSNRequired         = errors.New("addressformat config: source dsn is required for the bun provider")
	ErrCacheRequiresBunSource    = errors.New("addressformat config: repository cache requires the bun source provider")
	ErrCacheTTLInvalid           = errors.New("addressformat config: cache ttl must be zero or positive")
	ErrDefaultCountryCodeMissing = errors.New("addressformat config: default country code is required")
	ErrLoggingProviderRequired   = errors.New("addressformat config: logging provider is required when logging feature is enabled")
	ErrLoggingProviderUnknown    = errors.New("addressformat config: logging provider is invalid")
	ErrLoggingLevelInvalid       = errors.New("addressformat config: logging level is invalid")
	ErrLoggingFormatInvalid      = errors.New("addressformat config: logging format is invalid")
)

const (
	SourceEmbedded  = "embedded"
	SourceDirectory = "directory"
	SourceBun       = "bun"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config aggregates source bindings and feature flags for the address format
// module. Fields use simple types so it can be decoded from YAML.
type Config struct {
	DefaultCountryCode string         `yaml:"default_country_code"`
	Source             SourceConfig   `yaml:"source"`
	Cache              CacheConfig    `yaml:"cache"`
	Features           Features       `yaml:"features"`
	Commands           CommandsConfig `yaml:"commands"`
	Logging            LoggingConfig  `yaml:"logging"`
}

// SourceConfig selects where definitions are read from.
type SourceConfig struct {
	// Provider is one of embedded, directory or bun.
	Provider string `yaml:"provider"`
	// Path is the definitions directory for the directory provider.
	Path string `yaml:"path"`
	// Driver selects the SQL dialect for the bun provider: sqlite or postgres.
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
	// AutoMigrate creates the definitions table on startup.
	AutoMigrate bool `yaml:"auto_migrate"`
}

// CacheConfig controls the repository read cache in front of the bun source.
type CacheConfig struct {
	Enabled    bool          `yaml:"enabled"`
	DefaultTTL time.Duration `yaml:"default_ttl"`
}

// Features toggles optional behaviour.
type Features struct {
	Logger           bool `yaml:"logger"`
	SchemaValidation bool `yaml:"schema_validation"`
	Commands         bool `yaml:"commands"`
	Preload          bool `yaml:"preload"`
}

// CommandsConfig tunes the command handlers.
type CommandsConfig struct {
	Timeout time.Duration `yaml:"timeout"`
	// Dispatch subscribes the handlers to the go-command dispatcher.
	Dispatch bool `yaml:"dispatch"`
}

// LoggingConfig selects and tunes the logger provider.
type LoggingConfig struct {
	Provider  string   `yaml:"provider"`
	Level     string   `yaml:"level"`
	Format    string   `yaml:"format"`
	AddSource bool     `yaml:"add_source"`
	Focus     []string `yaml:"focus"`
}

// DefaultConfig returns defaults that read the bundled definitions.
func DefaultConfig() Config {
	return Config{
		DefaultCountryCode: "ZZ",
		Source: SourceConfig{
			Provider: SourceEmbedded,
			Driver:   DriverSQLite,
		},
		Cache: CacheConfig{
			DefaultTTL: time.Minute,
		},
		Features: Features{
			SchemaValidation: true,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// LoadFile decodes a YAML config file on top of DefaultConfig and validates it.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("addressformat config: read %q: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML config data on top of DefaultConfig and validates it.
func Parse(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("addressformat config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.DefaultCountryCode) == "" {
		return ErrDefaultCountryCodeMissing
	}

	provider := normalize(cfg.Source.Provider)
	switch provider {
	case "", SourceEmbedded:
	case SourceDirectory:
		if strings.TrimSpace(cfg.Source.Path) == "" {
			return ErrSourcePathRequired
		}
	case SourceBun:
		if !isSupportedDriver(normalize(cfg.Source.Driver)) {
			return fmt.Errorf("%w: %s", ErrSourceDriverUnknown, cfg.Source.Driver)
		}
		if strings.TrimSpace(cfg.Source.DSN) == "" {
			return ErrSourceDSNRequired
		}
	default:
		return fmt.Errorf("%w: %s", ErrSourceProviderUnknown, provider)
	}

	if cfg.Cache.DefaultTTL < 0 {
		return ErrCacheTTLInvalid
	}
	if cfg.Cache.Enabled && provider != SourceBun {
		return ErrCacheRequiresBunSource
	}

	if cfg.Commands.Dispatch && !cfg.Features.Commands {
		return ErrCommandsFeatureRequired
	}

	if cfg.Features.Logger {
		logProvider := normalize(cfg.Logging.Provider)
		if logProvider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedLogProvider(logProvider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, logProvider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if logProvider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

// SourceProvider returns the normalized source provider, defaulting to embedded.
func (cfg Config) SourceProvider() string {
	if provider := normalize(cfg.Source.Provider); provider != "" {
		return provider
	}
	return SourceEmbedded
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedDriver(driver string) bool {
	switch driver {
	case DriverSQLite, DriverPostgres:
		return true
	default:
		return false
	}
}

func isSupportedLogProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
