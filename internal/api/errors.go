package api

import (
	"errors"
	"fmt"
)

// ErrorTypeLinkButtonNotPressed is returned by the bridge when pairing is
// attempted before the physical link button was pressed
const ErrorTypeLinkButtonNotPressed = 101

var (
	// ErrNoBridgeFound is returned when discovery succeeded but found nothing
	ErrNoBridgeFound = errors.New("no bridge found")
	// ErrNoData is returned when a response envelope holds neither a success
	// nor an error object
	ErrNoData = errors.New("response contained no data")
)

// APIError is an error reported by the bridge inside an HTTP 200 response
type APIError struct {
	Type int `json:"type"`
	// Address is bridge-internal and undocumented; treat it as opaque text
	Address     string `json:"address"`
	Description string `json:"description"`
}

func (e *APIError) Error() string {
	if e.Address != "" {
		return fmt.Sprintf("hue api error %d (%s): %s", e.Type, e.Address, e.Description)
	}
	return fmt.Sprintf("hue api error %d: %s", e.Type, e.Description)
}

// RequestError is a transport-level failure: the request could not be
// completed, the body could not be decoded, or the status was not 2xx
type RequestError struct {
	Method string
	URL    string
	// StatusCode is zero when no response was received
	StatusCode int
	Err        error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// IsLinkButtonNotPressed reports whether err is the bridge asking for the
// link button to be pressed before pairing can succeed
func IsLinkButtonNotPressed(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Type == ErrorTypeLinkButtonNotPressed
}
