package formats

import (
	"slices"

	"github.com/goliatone/go-addressformat/internal/definitions"
)

// AddressFormat describes how addresses of one country are laid out and
// validated. Values are built fresh for every lookup; mutating one never
// affects later lookups.
type AddressFormat struct {
	CountryCode            string                             `json:"country_code"`
	Format                 string                             `json:"format"`
	RequiredFields         []string                           `json:"required_fields"`
	UppercaseFields        []string                           `json:"uppercase_fields"`
	AdministrativeAreaType definitions.AdministrativeAreaType `json:"administrative_area_type"`
	PostalCodeType         definitions.PostalCodeType         `json:"postal_code_type"`
	PostalCodePattern      *string                            `json:"postal_code_pattern,omitempty"`
	PostalCodePrefix       *string                            `json:"postal_code_prefix,omitempty"`
	Locale                 *string                            `json:"locale,omitempty"`
}

// IsRequired reports whether field must be filled in.
func (f AddressFormat) IsRequired(field string) bool {
	return slices.Contains(f.RequiredFields, field)
}

// IsUppercase reports whether field is rendered in upper case.
func (f AddressFormat) IsUppercase(field string) bool {
	return slices.Contains(f.UppercaseFields, field)
}

// Pattern returns the postal code pattern, or "" when the country has none.
func (f AddressFormat) Pattern() string {
	if f.PostalCodePattern == nil {
		return ""
	}
	return *f.PostalCodePattern
}

// Prefix returns the postal code prefix, or "" when the country has none.
func (f AddressFormat) Prefix() string {
	if f.PostalCodePrefix == nil {
		return ""
	}
	return *f.PostalCodePrefix
}

// LocaleTag returns the locale the format was translated to, or "".
func (f AddressFormat) LocaleTag() string {
	if f.Locale == nil {
		return ""
	}
	return *f.Locale
}
