package commands

import (
	"context"
	"errors"
	"fmt"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
)

func TestClassifyFailure(t *testing.T) {
	cases := []struct {
		name     string
		stage    failureStage
		err      error
		category goerrors.Category
		code     string
	}{
		{"validation", stageValidate, errors.New("locale invalid"), goerrors.CategoryValidation, codeMessageInvalid},
		{"cancelled", stageContext, context.Canceled, goerrors.CategoryCommand, codeCommandCancelled},
		{"timeout", stageExecute, fmt.Errorf("export: %w", context.DeadlineExceeded), goerrors.CategoryCommand, codeCommandTimeout},
		{"failure", stageExecute, errors.New("disk full"), goerrors.CategoryCommand, codeCommandFailed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := classifyFailure(tc.stage, tc.err)
			var wrapped *goerrors.Error
			if !errors.As(err, &wrapped) {
				t.Fatalf("expected go-errors error, got %T", err)
			}
			if wrapped.Category != tc.category || wrapped.TextCode != tc.code {
				t.Fatalf("expected %s/%s, got %s/%s", tc.category, tc.code, wrapped.Category, wrapped.TextCode)
			}
			if !errors.Is(err, tc.err) {
				t.Fatalf("expected cause to be preserved, got %v", err)
			}
		})
	}
}

func TestClassifyFailureKeepsFieldIssues(t *testing.T) {
	cause := validation.Errors{"locale": errors.New("must be a language tag")}

	err := classifyFailure(stageValidate, cause)
	var wrapped *goerrors.Error
	if !errors.As(err, &wrapped) {
		t.Fatalf("expected go-errors error, got %T", err)
	}
	if got := wrapped.ValidationMap()["locale"]; got != "must be a language tag" {
		t.Fatalf("expected locale issue, got %v", wrapped.ValidationMap())
	}
}

func TestClassifyFailurePassesCategorisedErrors(t *testing.T) {
	upstream := goerrors.Wrap(errors.New("bad data"), goerrors.CategoryValidation, "definition invalid")
	if err := classifyFailure(stageExecute, upstream); err != upstream {
		t.Fatalf("expected upstream error untouched, got %v", err)
	}
}
