package formatscmd

import (
	"errors"

	"github.com/goliatone/go-addressformat/internal/commands"
	"github.com/goliatone/go-addressformat/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// Service is the lookup surface the format commands need.
type Service interface {
	Exporter
	Preloader
}

// HandlerSet groups the handlers produced by RegisterFormatsCommands.
type HandlerSet struct {
	Export *ExportFormatsHandler
	Warm   *WarmFormatsHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	exportHandlerOpts []commands.HandlerOption[ExportFormatsCommand]
	warmHandlerOpts   []commands.HandlerOption[WarmFormatsCommand]
}

// WithExportHandlerOptions forwards options to the ExportFormatsHandler constructor.
func WithExportHandlerOptions(opts ...commands.HandlerOption[ExportFormatsCommand]) Option {
	return func(cfg *options) {
		cfg.exportHandlerOpts = append(cfg.exportHandlerOpts, opts...)
	}
}

// WithWarmHandlerOptions forwards options to the WarmFormatsHandler constructor.
func WithWarmHandlerOptions(opts ...commands.HandlerOption[WarmFormatsCommand]) Option {
	return func(cfg *options) {
		cfg.warmHandlerOpts = append(cfg.warmHandlerOpts, opts...)
	}
}

// RegisterFormatsCommands builds the format command handlers and registers
// them with reg when one is provided.
func RegisterFormatsCommands(reg CommandRegistry, service Service, provider interfaces.LoggerProvider, opts ...Option) (*HandlerSet, error) {
	if service == nil {
		return nil, errors.New("formats command registration: service is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "formats")
	set := &HandlerSet{
		Export: NewExportFormatsHandler(service, logger, cfg.exportHandlerOpts...),
		Warm:   NewWarmFormatsHandler(service, logger, cfg.warmHandlerOpts...),
	}

	if reg != nil {
		if err := reg.RegisterCommand(set.Export); err != nil {
			return nil, err
		}
		if err := reg.RegisterCommand(set.Warm); err != nil {
			return nil, err
		}
	}
	return set, nil
}
