package formats

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const dataIntegrityCode = "ADDRESS_FORMAT_DATA_INTEGRITY"

var (
	// ErrDataIntegrity reports a definition that cannot produce a complete
	// address format.
	ErrDataIntegrity = errors.New("formats: address format data integrity violation")
	// ErrDefaultDefinitionMissing reports that the fallback definition is absent.
	ErrDefaultDefinitionMissing = errors.New("formats: default definition missing")
	// ErrSourceUnavailable reports that the definition source cannot be enumerated.
	ErrSourceUnavailable = errors.New("formats: definition source unavailable")
	// ErrSourceRequired is raised when constructing a service without a source.
	ErrSourceRequired = errors.New("formats: definition source required")
)

// DataIntegrityError describes why a resolved definition could not be turned
// into an AddressFormat.
type DataIntegrityError struct {
	CountryCode string
	Locale      string
	// Fields maps offending definition keys to their issue.
	Fields map[string]string
	Cause  error
}

func (e *DataIntegrityError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "formats: definition %q is not usable", e.CountryCode)
	if e.Locale != "" {
		fmt.Fprintf(&b, " (locale %q)", e.Locale)
	}
	if len(e.Fields) > 0 {
		b.WriteString(":")
		for _, key := range slices.Sorted(maps.Keys(e.Fields)) {
			fmt.Fprintf(&b, " %s: %s;", key, e.Fields[key])
		}
		return strings.TrimSuffix(b.String(), ";")
	}
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	return b.String()
}

func (e *DataIntegrityError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrDataIntegrity}
	}
	return []error{ErrDataIntegrity, e.Cause}
}

// IsDataIntegrity reports whether err stems from a corrupt or incomplete
// definition.
func IsDataIntegrity(err error) bool {
	return errors.Is(err, ErrDataIntegrity)
}

func wrapDataIntegrity(err *DataIntegrityError) error {
	return goerrors.Wrap(err, goerrors.CategoryValidation, "address format definition is invalid").
		WithTextCode(dataIntegrityCode)
}
