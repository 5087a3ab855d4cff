package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// envelope is one element of a write acknowledgement:
// either {"success": T} or {"error": APIError}
type envelope[T any] struct {
	Success *T        `json:"success,omitempty"`
	Error   *APIError `json:"error,omitempty"`
}

// result converts the envelope into a value or an error
func (e envelope[T]) result() (T, error) {
	var zero T
	switch {
	case e.Error != nil:
		return zero, e.Error
	case e.Success != nil:
		return *e.Success, nil
	default:
		return zero, ErrNoData
	}
}

// decodeEnvelope parses a single-element envelope array and returns its
// success payload or the API error it carries
func decodeEnvelope[T any](r io.Reader) (T, error) {
	var zero T

	var responses []envelope[T]
	if err := json.NewDecoder(r).Decode(&responses); err != nil {
		return zero, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(responses) == 0 {
		return zero, ErrNoData
	}

	return responses[0].result()
}

// sendEnvelope performs a write-style request and decodes its envelope.
// Malformed bodies are reported as *RequestError; bridge-reported failures
// keep their *APIError or ErrNoData identity.
func sendEnvelope[T any](ctx context.Context, client *http.Client, method, url string, body any) (result T, err error) {
	rc, err := doRequest(ctx, client, method, url, body)
	if err != nil {
		return result, err
	}
	defer func() {
		if cerr := rc.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close response body: %w", cerr)
		}
	}()

	result, err = decodeEnvelope[T](rc)
	var apiErr *APIError
	if err != nil && !errors.As(err, &apiErr) && !errors.Is(err, ErrNoData) {
		return result, &RequestError{Method: method, URL: url, Err: err}
	}
	return result, err
}
