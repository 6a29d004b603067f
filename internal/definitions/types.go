package definitions

import (
	"maps"
	"slices"
)

// DefaultCountryCode is the sentinel definition used when a country has no
// definition of its own.
const DefaultCountryCode = "ZZ"

// AdministrativeAreaType classifies how the administrative area of an
// address is labelled (state, province, prefecture, ...).
type AdministrativeAreaType string

const (
	AdministrativeAreaArea       AdministrativeAreaType = "area"
	AdministrativeAreaCounty     AdministrativeAreaType = "county"
	AdministrativeAreaDepartment AdministrativeAreaType = "department"
	AdministrativeAreaDistrict   AdministrativeAreaType = "district"
	AdministrativeAreaDoSi       AdministrativeAreaType = "do_si"
	AdministrativeAreaEmirate    AdministrativeAreaType = "emirate"
	AdministrativeAreaIsland     AdministrativeAreaType = "island"
	AdministrativeAreaOblast     AdministrativeAreaType = "oblast"
	AdministrativeAreaParish     AdministrativeAreaType = "parish"
	AdministrativeAreaPrefecture AdministrativeAreaType = "prefecture"
	AdministrativeAreaProvince   AdministrativeAreaType = "province"
	AdministrativeAreaState      AdministrativeAreaType = "state"
)

// AdministrativeAreaTypes lists every supported administrative area type.
func AdministrativeAreaTypes() []AdministrativeAreaType {
	return []AdministrativeAreaType{
		AdministrativeAreaArea,
		AdministrativeAreaCounty,
		AdministrativeAreaDepartment,
		AdministrativeAreaDistrict,
		AdministrativeAreaDoSi,
		AdministrativeAreaEmirate,
		AdministrativeAreaIsland,
		AdministrativeAreaOblast,
		AdministrativeAreaParish,
		AdministrativeAreaPrefecture,
		AdministrativeAreaProvince,
		AdministrativeAreaState,
	}
}

// Valid reports whether t is a known administrative area type.
func (t AdministrativeAreaType) Valid() bool {
	return slices.Contains(AdministrativeAreaTypes(), t)
}

// PostalCodeType classifies how the postal code of an address is labelled.
type PostalCodeType string

const (
	PostalCodePostal PostalCodeType = "postal"
	PostalCodeZip    PostalCodeType = "zip"
	PostalCodePin    PostalCodeType = "pin"
)

// PostalCodeTypes lists every supported postal code type.
func PostalCodeTypes() []PostalCodeType {
	return []PostalCodeType{PostalCodePostal, PostalCodeZip, PostalCodePin}
}

// Valid reports whether t is a known postal code type.
func (t PostalCodeType) Valid() bool {
	return slices.Contains(PostalCodeTypes(), t)
}

// RawDefinition is a persisted per-country address format definition.
//
// Optional members are pointer or Nullable typed so that an absent key, an
// explicit null and a set value stay distinguishable and a decoded document
// encodes back to the same keys.
type RawDefinition struct {
	CountryCode            string                           `json:"country_code,omitempty"`
	Format                 *string                          `json:"format,omitempty"`
	RequiredFields         []string                         `json:"required_fields,omitzero"`
	UppercaseFields        []string                         `json:"uppercase_fields,omitzero"`
	AdministrativeAreaType Nullable[AdministrativeAreaType] `json:"administrative_area_type,omitzero"`
	PostalCodeType         Nullable[PostalCodeType]         `json:"postal_code_type,omitzero"`
	PostalCodePattern      *string                          `json:"postal_code_pattern,omitempty"`
	PostalCodePrefix       *string                          `json:"postal_code_prefix,omitempty"`
	Locale                 *string                          `json:"locale,omitempty"`
	Translations           map[string]Translation           `json:"translations,omitzero"`
}

// Translation overrides a subset of a definition for one locale. Nil or
// absent members are not overridden; an explicit null pattern or prefix
// clears the base value.
type Translation struct {
	Format                 *string                          `json:"format,omitempty"`
	RequiredFields         []string                         `json:"required_fields,omitzero"`
	UppercaseFields        []string                         `json:"uppercase_fields,omitzero"`
	AdministrativeAreaType Nullable[AdministrativeAreaType] `json:"administrative_area_type,omitzero"`
	PostalCodeType         Nullable[PostalCodeType]         `json:"postal_code_type,omitzero"`
	PostalCodePattern      Nullable[string]                 `json:"postal_code_pattern,omitzero"`
	PostalCodePrefix       Nullable[string]                 `json:"postal_code_prefix,omitzero"`
}

// IsEmpty reports whether the definition carries no data besides its
// country code. Empty definitions are treated like missing ones.
func (d *RawDefinition) IsEmpty() bool {
	if d == nil {
		return true
	}
	return d.Format == nil &&
		d.RequiredFields == nil &&
		d.UppercaseFields == nil &&
		d.AdministrativeAreaType.IsZero() &&
		d.PostalCodeType.IsZero() &&
		d.PostalCodePattern == nil &&
		d.PostalCodePrefix == nil &&
		d.Locale == nil &&
		d.Translations == nil
}

// Clone returns a deep copy of the definition.
func (d *RawDefinition) Clone() *RawDefinition {
	if d == nil {
		return nil
	}
	cloned := *d
	cloned.Format = cloneString(d.Format)
	cloned.RequiredFields = slices.Clone(d.RequiredFields)
	cloned.UppercaseFields = slices.Clone(d.UppercaseFields)
	cloned.PostalCodePattern = cloneString(d.PostalCodePattern)
	cloned.PostalCodePrefix = cloneString(d.PostalCodePrefix)
	cloned.Locale = cloneString(d.Locale)
	if d.Translations != nil {
		cloned.Translations = make(map[string]Translation, len(d.Translations))
		for locale, translation := range d.Translations {
			cloned.Translations[locale] = translation.Clone()
		}
	}
	return &cloned
}

// Locales returns the sorted locale tags the definition has translations for.
func (d *RawDefinition) Locales() []string {
	if d == nil || len(d.Translations) == 0 {
		return nil
	}
	return slices.Sorted(maps.Keys(d.Translations))
}

// Clone returns a deep copy of the translation.
func (t Translation) Clone() Translation {
	cloned := t
	cloned.Format = cloneString(t.Format)
	cloned.RequiredFields = slices.Clone(t.RequiredFields)
	cloned.UppercaseFields = slices.Clone(t.UppercaseFields)
	return cloned
}

// String returns a pointer to value, for building definitions in code.
func String(value string) *string {
	return &value
}

func cloneString(value *string) *string {
	if value == nil {
		return nil
	}
	v := *value
	return &v
}
