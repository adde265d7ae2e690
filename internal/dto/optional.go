package dto

import (
	"bytes"
	"encoding/json"
)

// Optional records whether a JSON field was present and whether it was an
// explicit null. The zero value means the field was absent.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// UnmarshalJSON is only invoked for keys present in the document.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// Ptr returns the value when it was supplied and non-null.
func (o Optional[T]) Ptr() *T {
	if !o.Set || o.Null {
		return nil
	}
	v := o.Value
	return &v
}

// Cleared reports an explicit null.
func (o Optional[T]) Cleared() bool {
	return o.Set && o.Null
}
