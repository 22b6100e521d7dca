package event

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Raw holds a JSON payload without decoding it. The type parameter records
// what the payload is expected to decode into; Deserialize performs the
// decode on demand.
//
// Raw round-trips its bytes unchanged through encoding/json, which is what
// lets the store persist protocol events it does not understand.
type Raw[T any] struct {
	data json.RawMessage
}

// NewRaw wraps already-encoded JSON. The bytes are copied.
func NewRaw[T any](data []byte) Raw[T] {
	return Raw[T]{data: bytes.Clone(data)}
}

// RawFrom encodes v and wraps the result.
func RawFrom[T any](v T) (Raw[T], error) {
	data, err := json.Marshal(v)
	if err != nil {
		return Raw[T]{}, fmt.Errorf("encode raw payload: %w", err)
	}
	return Raw[T]{data: data}, nil
}

// JSON returns the wrapped bytes.
func (r Raw[T]) JSON() json.RawMessage {
	return r.data
}

// IsZero reports whether r holds no payload.
func (r Raw[T]) IsZero() bool {
	return len(r.data) == 0
}

// Deserialize decodes the payload into T.
func (r Raw[T]) Deserialize() (T, error) {
	var v T
	if err := json.Unmarshal(r.data, &v); err != nil {
		return v, fmt.Errorf("deserialize raw payload: %w", err)
	}
	return v, nil
}

// MarshalJSON implements json.Marshaler.
func (r Raw[T]) MarshalJSON() ([]byte, error) {
	if len(r.data) == 0 {
		return []byte("null"), nil
	}
	return r.data, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Raw[T]) UnmarshalJSON(data []byte) error {
	r.data = bytes.Clone(data)
	return nil
}
