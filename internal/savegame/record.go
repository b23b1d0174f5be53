// Package savegame handles the persisted form of a game: the flat
// key/value record, the ordered migrations that bring older layouts up to
// date, structural validation, digests and compressed snapshot files.
package savegame

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformed is returned for save data that cannot be parsed or that
// fails structural validation.
var ErrMalformed = errors.New("savegame: malformed save data")

// Record is a flat persisted document as produced by JSON decoding.
type Record map[string]any

// Parse accepts a Record, a decoded JSON object, or its serialized text
// and returns a private copy that migrations may mutate freely.
func Parse(src any) (Record, error) {
	var raw []byte
	switch v := src.(type) {
	case nil:
		return nil, fmt.Errorf("%w: empty input", ErrMalformed)
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	case json.RawMessage:
		raw = v
	case Record, map[string]any:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		raw = b
	default:
		return nil, fmt.Errorf("%w: unsupported input %T", ErrMalformed, src)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	var r Record
	if err := dec.Decode(&r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if r == nil {
		return nil, fmt.Errorf("%w: not an object", ErrMalformed)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data", ErrMalformed)
	}
	return r, nil
}

// Has reports whether key is present with a non-null value.
func (r Record) Has(key string) bool {
	v, ok := r[key]
	return ok && v != nil
}

// Object returns the nested object stored at key.
func (r Record) Object(key string) (map[string]any, bool) {
	m, ok := r[key].(map[string]any)
	return m, ok
}

// Number returns the numeric value stored at key.
func (r Record) Number(key string) (float64, bool) {
	f, ok := r[key].(float64)
	return f, ok
}

// Marshal serializes the record as JSON with sorted keys.
func (r Record) Marshal() ([]byte, error) {
	return json.Marshal(map[string]any(r))
}
