package definitions

import (
	"bytes"
	"encoding/json"
)

// Nullable is a JSON member that can be absent, explicitly null, or set.
type Nullable[T any] struct {
	value T
	set   bool
	null  bool
}

// Some returns a Nullable holding value.
func Some[T any](value T) Nullable[T] {
	return Nullable[T]{value: value, set: true}
}

// Null returns an explicit JSON null.
func Null[T any]() Nullable[T] {
	return Nullable[T]{set: true, null: true}
}

// Get returns the value and whether one is present (set and not null).
func (n Nullable[T]) Get() (T, bool) {
	return n.value, n.set && !n.null
}

// IsNull reports an explicit null.
func (n Nullable[T]) IsNull() bool {
	return n.set && n.null
}

// IsZero reports an absent member; encoding/json uses it for omitzero.
func (n Nullable[T]) IsZero() bool {
	return !n.set
}

func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if !n.set || n.null {
		return []byte("null"), nil
	}
	return json.Marshal(n.value)
}

func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*n = Null[T]()
		return nil
	}
	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	*n = Some(value)
	return nil
}
