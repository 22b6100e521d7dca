// Package codec converts payloads to and from their stored representation.
//
// The store never looks inside a payload beyond the few projected columns it
// indexes; a Codec is the whole contract between the two. Decoding failures
// are reported as *DecodeError so callers can tell a corrupt row apart from
// a missing one.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// Codec serializes payloads for storage.
type Codec interface {
	// Name identifies the codec in configuration.
	Name() string

	// Marshal encodes v for storage.
	Marshal(v any) ([]byte, error)

	// Unmarshal decodes stored data into v, which must be a pointer.
	Unmarshal(data []byte, v any) error
}

// Codecs known by name.
var (
	JSON      Codec = jsonCodec{}
	Canonical Codec = canonicalCodec{}
)

// ErrUnknownCodec is returned by ByName for an unregistered name.
var ErrUnknownCodec = errors.New("unknown codec")

// ByName returns the codec registered under name. The empty name selects JSON.
func ByName(name string) (Codec, error) {
	switch name {
	case "", JSON.Name():
		return JSON, nil
	case Canonical.Name():
		return Canonical, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}
}

// DecodeError reports a stored payload that could not be decoded into the
// requested type. It signals corruption or a schema mismatch and must never
// be treated as absence.
type DecodeError struct {
	Column string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Column, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsDecodeError reports whether err wraps a *DecodeError.
func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}

type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

// Marshal encodes with HTML escaping disabled and without the trailing
// newline json.Encoder appends.
func (jsonCodec) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// NormalizeDisplayname returns the NFC form of a displayname so that the
// indexed column compares equal for visually identical names. Nil stays nil.
func NormalizeDisplayname(name *string) *string {
	if name == nil {
		return nil
	}
	n := norm.NFC.String(*name)
	return &n
}
