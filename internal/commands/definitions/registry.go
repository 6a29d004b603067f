package definitionscmd

import (
	"github.com/goliatone/go-addressformat/internal/commands"
	"github.com/goliatone/go-addressformat/internal/definitions"
	"github.com/goliatone/go-addressformat/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// HandlerSet groups the handlers produced by RegisterDefinitionsCommands.
type HandlerSet struct {
	Sync *SyncDefinitionsHandler
}

// RegisterDefinitionsCommands builds the definition command handlers and
// registers them with reg when one is provided. A nil target still yields a
// handler; executing it reports ErrSyncTargetRequired.
func RegisterDefinitionsCommands(reg CommandRegistry, source definitions.Source, target definitions.Writer, provider interfaces.LoggerProvider, opts ...commands.HandlerOption[SyncDefinitionsCommand]) (*HandlerSet, error) {
	logger := commands.CommandLogger(provider, "definitions")
	set := &HandlerSet{
		Sync: NewSyncDefinitionsHandler(source, target, logger, opts...),
	}
	if reg != nil {
		if err := reg.RegisterCommand(set.Sync); err != nil {
			return nil, err
		}
	}
	return set, nil
}
