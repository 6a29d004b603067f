package definitionscmd

import (
	"context"
	"errors"
	"maps"
	"slices"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-addressformat/internal/commands"
	"github.com/goliatone/go-addressformat/internal/definitions"
	"github.com/goliatone/go-addressformat/internal/logging"
	"github.com/goliatone/go-addressformat/pkg/interfaces"
)

const syncOperation = "definitions.sync"

var (
	// ErrSyncTargetRequired is returned when no writable definition store is configured.
	ErrSyncTargetRequired = errors.New("definitions command: writable definition store required")
	// ErrSyncSourceRequired is returned when neither a default source nor a directory is available.
	ErrSyncSourceRequired = errors.New("definitions command: definition source required")
)

var _ command.Commander[SyncDefinitionsCommand] = (*SyncDefinitionsHandler)(nil)

// SyncDefinitionsHandler copies definitions from a source into a writer.
type SyncDefinitionsHandler struct {
	inner *commands.Handler[SyncDefinitionsCommand]
}

// NewSyncDefinitionsHandler constructs a handler copying from source into target.
// A message Directory overrides source for that run.
func NewSyncDefinitionsHandler(source definitions.Source, target definitions.Writer, logger interfaces.Logger, opts ...commands.HandlerOption[SyncDefinitionsCommand]) *SyncDefinitionsHandler {
	baseLogger := logging.Ensure(logger)

	exec := func(ctx context.Context, msg SyncDefinitionsCommand) error {
		if target == nil {
			return ErrSyncTargetRequired
		}
		from := source
		if msg.Directory != "" {
			from = definitions.NewDirectorySource(msg.Directory, definitions.WithSchemaValidation(!msg.SkipSchemaValidation))
		}
		if from == nil {
			return ErrSyncSourceRequired
		}

		report, err := definitions.Sync(ctx, from, target)
		result := SyncResult{
			Copied:  report.Copied,
			Missing: report.Missing,
			Failed:  slices.Sorted(maps.Keys(report.Failed)),
		}
		if msg.ResultCallback != nil {
			msg.ResultCallback(result)
		}

		logging.WithFields(baseLogger, map[string]any{
			"copied":  len(result.Copied),
			"missing": len(result.Missing),
			"failed":  len(result.Failed),
		}).Info("definitions.command.sync.completed")
		return err
	}

	handlerOpts := []commands.HandlerOption[SyncDefinitionsCommand]{
		commands.WithLogger[SyncDefinitionsCommand](baseLogger),
		commands.WithOperation[SyncDefinitionsCommand](syncOperation),
		commands.WithMessageFields(func(msg SyncDefinitionsCommand) map[string]any {
			if msg.Directory == "" {
				return nil
			}
			return map[string]any{"directory": msg.Directory}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[SyncDefinitionsCommand]()),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &SyncDefinitionsHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[SyncDefinitionsCommand].
func (h *SyncDefinitionsHandler) Execute(ctx context.Context, msg SyncDefinitionsCommand) error {
	return h.inner.Execute(ctx, msg)
}

// CLIHandler satisfies command.CLICommand by returning the handler.
func (h *SyncDefinitionsHandler) CLIHandler() any {
	return h
}

// CLIOptions describes the CLI metadata for definition sync.
func (h *SyncDefinitionsHandler) CLIOptions() command.CLIConfig {
	return command.CLIConfig{
		Path:        []string{"definitions", "sync"},
		Group:       "definitions",
		Description: "Copy address format definitions into the configured store",
	}
}
