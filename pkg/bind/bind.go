// Package bind decodes an HTTP request body into a typed input struct.
package bind

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/shashiranjanraj/backoffice/config"
)

// ErrEmptyBody is returned when the request carries no JSON document.
var ErrEmptyBody = errors.New("request body is empty")

// JSON decodes r.Body into dest. The body is capped at MAX_BODY_BYTES and
// unknown fields are rejected so that misspelled keys never pass silently.
// Validation is left to the caller.
func JSON(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	body, err := read(w, r)
	if err != nil {
		return err
	}
	return Strict(body, dest)
}

// Envelope is JSON for bodies that may arrive wrapped in a single key, as
// in {"productData": {...}}. A body whose only member is key is unwrapped
// before decoding; any other body is decoded as is.
func Envelope(w http.ResponseWriter, r *http.Request, key string, dest interface{}) error {
	body, err := read(w, r)
	if err != nil {
		return err
	}

	var probe map[string]json.RawMessage
	if json.Unmarshal(body, &probe) == nil && len(probe) == 1 {
		if inner, ok := probe[key]; ok {
			body = inner
		}
	}
	return Strict(body, dest)
}

// Strict decodes one JSON document from data, rejecting unknown fields and
// trailing content.
func Strict(data []byte, dest interface{}) error {
	if len(bytes.TrimSpace(data)) == 0 || bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return ErrEmptyBody
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dest); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if dec.More() {
		return errors.New("invalid JSON: unexpected data after the top-level object")
	}
	return nil
}

func read(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, ErrEmptyBody
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, config.MaxBodyBytes()))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, fmt.Errorf("request body too large (max %d bytes)", maxErr.Limit)
		}
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}
