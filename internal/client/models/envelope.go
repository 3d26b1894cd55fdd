package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformedEnvelope is returned when a response body is JSON but does not
// have the {success, data, count?, message} shape.
var ErrMalformedEnvelope = errors.New("malformed response envelope")

// Envelope is the wrapper the backend puts around every resource payload.
// Count is optional and may disagree with the length of Data; both are kept.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Count   *int   `json:"count,omitempty"`
	Message string `json:"message,omitempty"`
}

// SearchResult is the envelope returned by species listing and search.
type SearchResult = Envelope[[]Species]

type rawEnvelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Count   *int            `json:"count"`
	Message string          `json:"message"`
}

// DecodeEnvelope parses b into an Envelope[T]. A missing "success" field is
// reported as ErrMalformedEnvelope; an absent or null "data" leaves Data at
// its zero value.
func DecodeEnvelope[T any](b []byte) (*Envelope[T], error) {
	var raw rawEnvelope
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, err
	}
	if raw.Success == nil {
		return nil, fmt.Errorf("%w: missing success field", ErrMalformedEnvelope)
	}

	env := &Envelope[T]{Success: *raw.Success, Count: raw.Count, Message: raw.Message}
	if len(raw.Data) > 0 && string(raw.Data) != "null" {
		if err := json.Unmarshal(raw.Data, &env.Data); err != nil {
			return nil, fmt.Errorf("%w: data: %w", ErrMalformedEnvelope, err)
		}
	}
	return env, nil
}

// CountMismatch reports whether env carries a count that differs from the
// number of items actually returned.
func CountMismatch[E any](env *Envelope[[]E]) bool {
	return env != nil && env.Count != nil && *env.Count != len(env.Data)
}
