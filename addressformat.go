// Package addressformat resolves per-country address format metadata (field
// layout, required and uppercase fields, postal code rules) with optional
// locale specific overrides.
package addressformat

import (
	"context"

	definitionscmd "github.com/goliatone/go-addressformat/internal/commands/definitions"
	formatscmd "github.com/goliatone/go-addressformat/internal/commands/formats"
	"github.com/goliatone/go-addressformat/internal/definitions"
	"github.com/goliatone/go-addressformat/internal/di"
	"github.com/goliatone/go-addressformat/internal/formats"
	"github.com/goliatone/go-addressformat/pkg/interfaces"
)

// AddressFormat exports the resolved address format value.
type AddressFormat = formats.AddressFormat

// FormatsService exports the lookup service contract.
type FormatsService = formats.Service

// DataIntegrityError exports the error raised for corrupt or incomplete definitions.
type DataIntegrityError = formats.DataIntegrityError

// RawDefinition exports the persisted definition record.
type RawDefinition = definitions.RawDefinition

// Translation exports a locale override of a definition.
type Translation = definitions.Translation

// DefinitionSource exports the definition source contract.
type DefinitionSource = definitions.Source

// DefinitionWriter exports the writable definition store contract.
type DefinitionWriter = definitions.Writer

// AdministrativeAreaType exports the administrative area enum.
type AdministrativeAreaType = definitions.AdministrativeAreaType

// PostalCodeType exports the postal code enum.
type PostalCodeType = definitions.PostalCodeType

// Option exports DI overrides accepted by New.
type Option = di.Option

// DefaultCountryCode is the definition used for unknown country codes.
const DefaultCountryCode = definitions.DefaultCountryCode

var (
	ErrDataIntegrity            = formats.ErrDataIntegrity
	ErrDefaultDefinitionMissing = formats.ErrDefaultDefinitionMissing
	ErrSourceUnavailable        = formats.ErrSourceUnavailable
	ErrDefinitionNotFound       = definitions.ErrNotFound
	ErrMalformedDefinition      = definitions.ErrMalformedDefinition
)

// Module is the top level address format runtime.
type Module struct {
	container *di.Container
}

// New constructs a module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// WithLoggerProvider overrides the configured logger provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return di.WithLoggerProvider(provider)
}

// WithSource replaces the configured definition source.
func WithSource(source DefinitionSource) Option {
	return di.WithSource(source)
}

// WithCommandRegistry registers command handlers with reg when commands are enabled.
func WithCommandRegistry(reg di.CommandRegistry) Option {
	return di.WithCommandRegistry(reg)
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Formats returns the lookup service.
func (m *Module) Formats() FormatsService {
	return m.container.FormatsService()
}

// Get returns the address format for countryCode, translated to locale when
// a translation exists. Unknown codes resolve to the default definition.
func (m *Module) Get(ctx context.Context, countryCode, locale string) (AddressFormat, error) {
	return m.Formats().Get(ctx, countryCode, locale)
}

// MustGet is Get for callers that treat a corrupt definition set as fatal.
func (m *Module) MustGet(ctx context.Context, countryCode, locale string) AddressFormat {
	format, err := m.Get(ctx, countryCode, locale)
	if err != nil {
		panic(err)
	}
	return format
}

// GetAll resolves every known country. Intended for bulk export.
func (m *Module) GetAll(ctx context.Context, locale string) (map[string]AddressFormat, error) {
	return m.Formats().GetAll(ctx, locale)
}

// Preload warms the lookup cache with every known definition.
func (m *Module) Preload(ctx context.Context) (int, error) {
	return m.Formats().Preload(ctx)
}

// Commands groups the command handlers built when the commands feature is on.
type Commands struct {
	Export *formatscmd.ExportFormatsHandler
	Warm   *formatscmd.WarmFormatsHandler
	Sync   *definitionscmd.SyncDefinitionsHandler
}

// Commands returns the module command handlers, or nil when commands are disabled.
func (m *Module) Commands() *Commands {
	formatSet := m.container.FormatCommands()
	definitionSet := m.container.DefinitionCommands()
	if formatSet == nil || definitionSet == nil {
		return nil
	}
	return &Commands{
		Export: formatSet.Export,
		Warm:   formatSet.Warm,
		Sync:   definitionSet.Sync,
	}
}

// Close releases resources owned by the module.
func (m *Module) Close() error {
	return m.container.Close()
}

// IsDataIntegrity reports whether err stems from a corrupt or incomplete definition.
func IsDataIntegrity(err error) bool {
	return formats.IsDataIntegrity(err)
}

// NormalizeLocale rewrites underscore separated locales (en_US) to the
// hyphenated form used as translation keys (en-US).
func NormalizeLocale(locale string) string {
	return formats.NormalizeLocale(locale)
}
