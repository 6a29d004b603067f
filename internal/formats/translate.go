package formats

import (
	"strings"

	"github.com/goliatone/go-addressformat/internal/definitions"
)

// NormalizeLocale maps a locale to the key used for translations. Only
// underscores are rewritten, so "en_US" and "en-US" select the same entry
// while case and variants are kept as given.
func NormalizeLocale(locale string) string {
	return strings.ReplaceAll(locale, "_", "-")
}

// translate overlays the translation for locale onto definition. The input is
// never modified; when no translation applies it is returned as is.
func translate(definition *definitions.RawDefinition, locale string) *definitions.RawDefinition {
	if definition == nil || locale == "" {
		return definition
	}
	normalized := NormalizeLocale(locale)
	translation, ok := definition.Translations[normalized]
	if !ok {
		return definition
	}

	merged := definition.Clone()
	if translation.Format != nil {
		merged.Format = translation.Format
	}
	if translation.RequiredFields != nil {
		merged.RequiredFields = translation.RequiredFields
	}
	if translation.UppercaseFields != nil {
		merged.UppercaseFields = translation.UppercaseFields
	}
	if !translation.AdministrativeAreaType.IsZero() {
		merged.AdministrativeAreaType = translation.AdministrativeAreaType
	}
	if !translation.PostalCodeType.IsZero() {
		merged.PostalCodeType = translation.PostalCodeType
	}
	merged.PostalCodePattern = overlayString(merged.PostalCodePattern, translation.PostalCodePattern)
	merged.PostalCodePrefix = overlayString(merged.PostalCodePrefix, translation.PostalCodePrefix)
	merged.Locale = &normalized
	return merged
}

// overlayString applies an optional override: absent keeps base, null clears it.
func overlayString(base *string, override definitions.Nullable[string]) *string {
	if override.IsZero() {
		return base
	}
	if value, ok := override.Get(); ok {
		return &value
	}
	return nil
}
