package formats

import (
	"errors"
	"slices"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-addressformat/internal/definitions"
)

var errMissing = validation.NewError("validation_missing", "is missing")

// construct turns a resolved definition into an AddressFormat, validating the
// mandatory members on the way.
func construct(definition *definitions.RawDefinition) (AddressFormat, error) {
	if definition == nil {
		return AddressFormat{}, &DataIntegrityError{Cause: errors.New("no definition")}
	}

	err := validation.ValidateStruct(definition,
		validation.Field(&definition.CountryCode, validation.Required),
		validation.Field(&definition.Format, validation.NotNil, validation.Required),
		validation.Field(&definition.RequiredFields, validation.NotNil, validation.Each(validation.Required)),
		validation.Field(&definition.UppercaseFields, validation.NotNil, validation.Each(validation.Required)),
		validation.Field(&definition.AdministrativeAreaType, validation.By(enumRule(definitions.AdministrativeAreaTypes()))),
		validation.Field(&definition.PostalCodeType, validation.By(enumRule(definitions.PostalCodeTypes()))),
	)
	if err != nil {
		return AddressFormat{}, integrityFromValidation(definition, err)
	}

	areaType, _ := definition.AdministrativeAreaType.Get()
	postalType, _ := definition.PostalCodeType.Get()

	return AddressFormat{
		CountryCode:            definition.CountryCode,
		Format:                 *definition.Format,
		RequiredFields:         slices.Clone(definition.RequiredFields),
		UppercaseFields:        slices.Clone(definition.UppercaseFields),
		AdministrativeAreaType: areaType,
		PostalCodeType:         postalType,
		PostalCodePattern:      cloneString(definition.PostalCodePattern),
		PostalCodePrefix:       cloneString(definition.PostalCodePrefix),
		Locale:                 cloneString(definition.Locale),
	}, nil
}

// enumRule accepts a Nullable holding one of allowed.
func enumRule[T ~string](allowed []T) validation.RuleFunc {
	elements := make([]any, len(allowed))
	for i, value := range allowed {
		elements[i] = value
	}
	return func(value any) error {
		nullable, ok := value.(definitions.Nullable[T])
		if !ok {
			return errMissing
		}
		current, present := nullable.Get()
		if !present {
			return errMissing
		}
		return validation.Validate(current, validation.Required, validation.In(elements...))
	}
}

func integrityFromValidation(definition *definitions.RawDefinition, err error) *DataIntegrityError {
	integrity := &DataIntegrityError{CountryCode: definition.CountryCode, Cause: err}
	if definition.Locale != nil {
		integrity.Locale = *definition.Locale
	}
	var fieldErrors validation.Errors
	if errors.As(err, &fieldErrors) {
		integrity.Fields = make(map[string]string, len(fieldErrors))
		for key, fieldErr := range fieldErrors {
			integrity.Fields[key] = fieldErr.Error()
		}
	}
	return integrity
}

func cloneString(value *string) *string {
	if value == nil {
		return nil
	}
	v := *value
	return &v
}
