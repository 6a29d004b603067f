package addressformat

import "github.com/goliatone/go-addressformat/internal/runtimeconfig"

var (
	ErrSourceProviderUnknown     = runtimeconfig.ErrSourceProviderUnknown
	ErrSourcePathRequired        = runtimeconfig.ErrSourcePathRequired
	ErrSourceDriverUnknown       = runtimeconfig.ErrSourceDriverUnknown
	ErrSourceDSNRequired         = runtimeconfig.ErrSourceDSNRequired
	ErrCacheRequiresBunSource    = runtimeconfig.ErrCacheRequiresBunSource
	ErrCacheTTLInvalid           = runtimeconfig.ErrCacheTTLInvalid
	ErrCommandsFeatureRequired   = runtimeconfig.ErrCommandsFeatureRequired
	ErrDefaultCountryCodeMissing = runtimeconfig.ErrDefaultCountryCodeMissing
	ErrLoggingProviderRequired   = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown    = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid       = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid      = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config         = runtimeconfig.Config
	SourceConfig   = runtimeconfig.SourceConfig
	CacheConfig    = runtimeconfig.CacheConfig
	Features       = runtimeconfig.Features
	CommandsConfig = runtimeconfig.CommandsConfig
	LoggingConfig  = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads a YAML config file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	return runtimeconfig.LoadFile(path)
}
