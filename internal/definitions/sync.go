package definitions

import (
	"context"
	"errors"
	"fmt"
)

// SyncReport summarises a Sync run.
type SyncReport struct {
	Copied  []string
	Missing []string
	Failed  map[string]error
}

// Sync copies every definition listed by from into to. Codes that disappear
// between listing and fetching are reported as missing; fetch failures are
// collected and returned joined once the run completes. A write failure stops
// the run immediately.
func Sync(ctx context.Context, from Source, to Writer) (SyncReport, error) {
	report := SyncReport{Failed: map[string]error{}}
	if from == nil || to == nil {
		return report, errors.New("definitions: sync requires a source and a writer")
	}

	codes, err := from.ListCountryCodes(ctx)
	if err != nil {
		return report, err
	}

	var failures []error
	for _, code := range codes {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		definition, err := from.Fetch(ctx, code)
		if err != nil {
			if IsNotFound(err) {
				report.Missing = append(report.Missing, code)
				continue
			}
			report.Failed[code] = err
			failures = append(failures, err)
			continue
		}
		if err := to.Store(ctx, definition); err != nil {
			return report, fmt.Errorf("definitions: store %q: %w", code, err)
		}
		report.Copied = append(report.Copied, code)
	}
	return report, errors.Join(failures...)
}
