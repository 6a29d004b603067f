package definitions

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/goliatone/go-addressformat/internal/validation"
)

type codecOptions struct {
	schema bool
}

// CodecOption tweaks definition decoding.
type CodecOption func(*codecOptions)

// WithSchemaValidation toggles JSON schema validation of decoded documents.
// Validation is on by default.
func WithSchemaValidation(enabled bool) CodecOption {
	return func(o *codecOptions) {
		o.schema = enabled
	}
}

func resolveCodecOptions(opts []CodecOption) codecOptions {
	cfg := codecOptions{schema: true}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Decode parses a persisted JSON definition document. Failures wrap
// ErrMalformedDefinition.
func Decode(data []byte, opts ...CodecOption) (*RawDefinition, error) {
	cfg := resolveCodecOptions(opts)

	if cfg.schema {
		if err := validation.ValidateDefinitionDocument(data); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedDefinition, err)
		}
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()

	var definition RawDefinition
	if err := decoder.Decode(&definition); err != nil {
		if errors.Is(err, io.EOF) {
			return &definition, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrMalformedDefinition, err)
	}
	if decoder.More() {
		return nil, fmt.Errorf("%w: trailing data after definition", ErrMalformedDefinition)
	}
	return &definition, nil
}

// Encode renders a definition into its persisted JSON form. Absent members
// are omitted and explicit nulls are kept, so Decode(Encode(d)) equals d.
func Encode(definition *RawDefinition) ([]byte, error) {
	if definition == nil {
		return nil, errors.New("definitions: cannot encode nil definition")
	}
	return json.MarshalIndent(definition, "", "  ")
}
