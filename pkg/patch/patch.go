// Package patch provides presence-tagged fields for partial updates, so an
// explicit zero value can be told apart from a field that was not supplied.
package patch

import (
	"bytes"
	"encoding/json"
)

// Field holds an optional update value.
type Field[T any] struct {
	value T
	set   bool
}

// Set returns a supplied field holding v, even when v is the zero value.
func Set[T any](v T) Field[T] {
	return Field[T]{value: v, set: true}
}

// Get returns the value and whether it was supplied.
func (f Field[T]) Get() (T, bool) {
	return f.value, f.set
}

// IsSet reports whether the field was supplied.
func (f Field[T]) IsSet() bool {
	return f.set
}

// UnmarshalJSON marks the field as supplied when its key is present in the
// payload. A JSON null leaves it unset.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*f = Field[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = Set(v)
	return nil
}

// MarshalJSON renders the value, or null when unset.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.set {
		return []byte("null"), nil
	}
	return json.Marshal(f.value)
}
