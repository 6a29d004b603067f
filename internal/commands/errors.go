package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

type failureStage int

const (
	stageValidate failureStage = iota
	stageContext
	stageExecute
)

const (
	codeMessageInvalid   = "ADDRESS_FORMAT_COMMAND_INVALID"
	codeCommandCancelled = "ADDRESS_FORMAT_COMMAND_CANCELLED"
	codeCommandTimeout   = "ADDRESS_FORMAT_COMMAND_TIMEOUT"
	codeCommandFailed    = "ADDRESS_FORMAT_COMMAND_FAILED"
)

// classifyFailure tags err with a go-errors category and text code for the
// stage it came from. Errors already categorised upstream (for example a
// definition integrity failure raised by the lookup service) pass through.
func classifyFailure(stage failureStage, err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}

	if stage == stageValidate {
		// Field level issues from ozzo are kept on the error for callers that
		// render them.
		wrapped := goerrors.FromOzzoValidation(err, "command message is invalid")
		if wrapped.Source == nil {
			wrapped.Source = err
		}
		return wrapped.WithTextCode(codeMessageInvalid)
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command timed out").
			WithTextCode(codeCommandTimeout)
	case errors.Is(err, context.Canceled):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command cancelled").
			WithTextCode(codeCommandCancelled)
	case stage == stageContext:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command context unusable").
			WithTextCode(codeCommandCancelled)
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command failed").
			WithTextCode(codeCommandFailed)
	}
}
