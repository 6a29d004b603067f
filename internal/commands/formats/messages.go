package formatscmd

import (
	"io"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	exportFormatsMessageType = "addressformat.formats.export"
	warmFormatsMessageType   = "addressformat.formats.warm"
)

var localePattern = regexp.MustCompile(`^[A-Za-z0-9]+([_-][A-Za-z0-9]+)*$`)

// ExportFormatsCommand resolves every known country and writes the result as
// a JSON object keyed by country code.
type ExportFormatsCommand struct {
	// Locale selects the translation applied to every format. Empty exports
	// untranslated formats.
	Locale string `json:"locale,omitempty"`
	// Indent pretty-prints the output.
	Indent bool `json:"indent,omitempty"`
	// Output receives the encoded formats.
	Output io.Writer `json:"-"`
}

// Type implements command.Message.
func (ExportFormatsCommand) Type() string { return exportFormatsMessageType }

// Validate ensures an output is present and the locale is a plausible tag.
func (m ExportFormatsCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Locale, validation.Match(localePattern).
			ErrorObject(validation.NewError("addressformat.formats.export.locale_invalid", "locale must be a language tag such as en or en_US"))),
		validation.Field(&m.Output, validation.NotNil.
			ErrorObject(validation.NewError("addressformat.formats.export.output_required", "output is required"))),
	)
}

// WarmFormatsCommand loads every definition into the lookup cache.
type WarmFormatsCommand struct{}

// Type implements command.Message.
func (WarmFormatsCommand) Type() string { return warmFormatsMessageType }

// Validate satisfies command.Message; there are no payload constraints.
func (WarmFormatsCommand) Validate() error { return nil }
