package types

import (
	"encoding/json"
)

type Optional[T any] struct {
	Value   *T
	Defined bool
}

// UnmarshalJSON is implemented by deferring to the wrapped type (T).
// It will be called only if the value is defined in the JSON payload.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Defined = true
	return json.Unmarshal(data, &o.Value)
}

func (o *Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Defined {
		return []byte("null"), nil
	}

	return json.Marshal(o.Value)
}

// Returns the value when it was present and non null in the payload
func (o Optional[T]) Get() (T, bool) {
	var zero T
	if !o.Defined || o.Value == nil {
		return zero, false
	}

	return *o.Value, true
}

// Pointer to the value for validation, nil when absent or null. Tags on an
// Optional field apply to the value only when it is present.
func (o Optional[T]) ValidationValue() any {
	return o.Value
}

func NewFromVal[T any](v T) Optional[T] {
	return Optional[T]{Defined: true, Value: &v}
}

func NewFromPtr[T any](v *T) Optional[T] {
	return Optional[T]{Defined: true, Value: v}
}
