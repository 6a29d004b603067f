package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-addressformat/pkg/interfaces"
)

const (
	rootModule        = "addressformat"
	formatsModule     = "addressformat.formats"
	definitionsModule = "addressformat.definitions"
	commandsModule    = "addressformat.commands"
)

const (
	fieldCountryCode = "country_code"
	fieldLocale      = "locale"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The module identifier is
// attached as a structured field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// FormatsLogger returns the logger namespace reserved for the lookup service.
func FormatsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, formatsModule)
}

// DefinitionsLogger returns the logger namespace reserved for definition sources.
func DefinitionsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, definitionsModule)
}

// CommandsLogger returns the root logger namespace for command handlers.
func CommandsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, commandsModule)
}

// WithLookupContext enriches the logger with the country code and locale of a
// lookup. Empty values are ignored.
func WithLookupContext(logger interfaces.Logger, countryCode, locale string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(countryCode); trimmed != "" {
		fields[fieldCountryCode] = trimmed
	}
	if trimmed := strings.TrimSpace(locale); trimmed != "" {
		fields[fieldLocale] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
