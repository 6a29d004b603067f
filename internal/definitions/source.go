package definitions

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNotFound reports that a source holds no definition for a country code.
	ErrNotFound = errors.New("definitions: definition not found")
	// ErrMalformedDefinition reports a stored definition that cannot be decoded
	// or does not match the definition schema.
	ErrMalformedDefinition = errors.New("definitions: malformed definition")
	// ErrInvalidCountryCode reports a country code that cannot be stored.
	ErrInvalidCountryCode = errors.New("definitions: country code is invalid")
)

// Source resolves raw definitions by country code.
type Source interface {
	// ListCountryCodes enumerates every country code with a definition. Order
	// is not significant.
	ListCountryCodes(ctx context.Context) ([]string, error)
	// Fetch returns the definition for countryCode, or an error matching
	// ErrNotFound when the source has none.
	Fetch(ctx context.Context, countryCode string) (*RawDefinition, error)
}

// Writer persists raw definitions. Store replaces any existing definition for
// the same country code.
type Writer interface {
	Store(ctx context.Context, definition *RawDefinition) error
}

// NotFoundError is returned when a definition cannot be located.
type NotFoundError struct {
	CountryCode string
}

func (e *NotFoundError) Error() string {
	if e.CountryCode == "" {
		return "definition not found"
	}
	return fmt.Sprintf("definition %q not found", e.CountryCode)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// IsNotFound reports whether err signals a missing definition.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsMalformed reports whether err signals a corrupt stored definition.
func IsMalformed(err error) bool {
	return errors.Is(err, ErrMalformedDefinition)
}
