package formatscmd

import (
	"context"
	"encoding/json"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-addressformat/internal/commands"
	"github.com/goliatone/go-addressformat/internal/formats"
	"github.com/goliatone/go-addressformat/internal/logging"
	"github.com/goliatone/go-addressformat/pkg/interfaces"
)

const (
	exportOperation = "formats.export"
	warmOperation   = "formats.warm"
)

// Exporter resolves formats for every known country.
type Exporter interface {
	GetAll(ctx context.Context, locale string) (map[string]formats.AddressFormat, error)
}

// Preloader warms the lookup cache.
type Preloader interface {
	Preload(ctx context.Context) (int, error)
}

var (
	_ command.Commander[ExportFormatsCommand] = (*ExportFormatsHandler)(nil)
	_ command.Commander[WarmFormatsCommand]   = (*WarmFormatsHandler)(nil)
)

// ExportFormatsHandler writes every resolved address format to the message output.
type ExportFormatsHandler struct {
	inner *commands.Handler[ExportFormatsCommand]
}

// NewExportFormatsHandler constructs a handler bound to the supplied service.
func NewExportFormatsHandler(service Exporter, logger interfaces.Logger, opts ...commands.HandlerOption[ExportFormatsCommand]) *ExportFormatsHandler {
	baseLogger := logging.Ensure(logger)

	exec := func(ctx context.Context, msg ExportFormatsCommand) error {
		all, err := service.GetAll(ctx, msg.Locale)
		if err != nil {
			return err
		}

		encoder := json.NewEncoder(msg.Output)
		if msg.Indent {
			encoder.SetIndent("", "  ")
		}
		if err := encoder.Encode(all); err != nil {
			return err
		}

		logging.WithFields(baseLogger, map[string]any{
			"exported": len(all),
		}).Info("formats.command.export.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[ExportFormatsCommand]{
		commands.WithLogger[ExportFormatsCommand](baseLogger),
		commands.WithOperation[ExportFormatsCommand](exportOperation),
		commands.WithMessageFields(func(msg ExportFormatsCommand) map[string]any {
			if msg.Locale == "" {
				return nil
			}
			return map[string]any{"locale": msg.Locale}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ExportFormatsCommand]()),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ExportFormatsHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[ExportFormatsCommand].
func (h *ExportFormatsHandler) Execute(ctx context.Context, msg ExportFormatsCommand) error {
	return h.inner.Execute(ctx, msg)
}

// CLIHandler satisfies command.CLICommand by returning the handler.
func (h *ExportFormatsHandler) CLIHandler() any {
	return h
}

// CLIOptions describes the CLI metadata for format export.
func (h *ExportFormatsHandler) CLIOptions() command.CLIConfig {
	return command.CLIConfig{
		Path:        []string{"formats", "export"},
		Group:       "formats",
		Description: "Export the address format of every known country as JSON",
	}
}

// WarmFormatsHandler preloads every definition into the lookup cache.
type WarmFormatsHandler struct {
	inner *commands.Handler[WarmFormatsCommand]
}

// NewWarmFormatsHandler constructs a handler bound to the supplied service.
func NewWarmFormatsHandler(service Preloader, logger interfaces.Logger, opts ...commands.HandlerOption[WarmFormatsCommand]) *WarmFormatsHandler {
	baseLogger := logging.Ensure(logger)

	exec := func(ctx context.Context, _ WarmFormatsCommand) error {
		count, err := service.Preload(ctx)
		if err != nil {
			return err
		}
		logging.WithFields(baseLogger, map[string]any{
			"countries": count,
		}).Info("formats.command.warm.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[WarmFormatsCommand]{
		commands.WithLogger[WarmFormatsCommand](baseLogger),
		commands.WithOperation[WarmFormatsCommand](warmOperation),
		commands.WithTelemetry(commands.DefaultTelemetry[WarmFormatsCommand]()),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &WarmFormatsHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[WarmFormatsCommand].
func (h *WarmFormatsHandler) Execute(ctx context.Context, msg WarmFormatsCommand) error {
	return h.inner.Execute(ctx, msg)
}

// CLIHandler satisfies command.CLICommand by returning the handler.
func (h *WarmFormatsHandler) CLIHandler() any {
	return h
}

// CLIOptions describes the CLI metadata for cache warming.
func (h *WarmFormatsHandler) CLIOptions() command.CLIConfig {
	return command.CLIConfig{
		Path:        []string{"formats", "warm"},
		Group:       "formats",
		Description: "Load every address format definition into the lookup cache",
	}
}
