package commands

import (
	"context"
	"time"

	"github.com/goliatone/go-addressformat/internal/logging"
	"github.com/goliatone/go-addressformat/pkg/interfaces"
)

// DefaultCommandTimeout bounds a command when the runtime config sets none.
// Exports walk every definition, so it is generous.
const DefaultCommandTimeout = 30 * time.Second

// boundContext returns ctx limited to timeout. A nil ctx becomes Background;
// a non-positive timeout leaves the deadline untouched.
func boundContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

// CommandLogger returns the logger for one command group ("formats",
// "definitions") under the addressformat.commands namespace.
func CommandLogger(provider interfaces.LoggerProvider, group string) interfaces.Logger {
	return logging.WithFields(logging.CommandsLogger(provider), map[string]any{
		"command_group": group,
	})
}
