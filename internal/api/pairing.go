package api

import (
	"context"
	"net/http"
)

// DeviceType is the label a client presents when pairing. Keep it stable
// per installation: a new label creates a new pairing on the bridge.
type DeviceType struct {
	DeviceType string `json:"devicetype"`
}

// NewDeviceType creates a DeviceType from any label, e.g. "my_app#laptop"
func NewDeviceType(label string) DeviceType {
	return DeviceType{DeviceType: label}
}

// LoginResponse is the success payload of the pairing endpoint
type LoginResponse struct {
	// Username is the access token for all authenticated requests
	Username string `json:"username"`
}

// LoginWithResponse asks the bridge for a new username.
//
// Until the link button on the bridge has been pressed, the bridge answers
// with an *APIError of type ErrorTypeLinkButtonNotPressed; prompt the user
// and call again. The request is never retried here.
func (b *Bridge) LoginWithResponse(ctx context.Context, device DeviceType) (*LoginResponse, error) {
	resp, err := sendEnvelope[LoginResponse](ctx, b.client, http.MethodPost, b.url+"/api", device)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login pairs with the bridge and returns an authenticated session.
// Persist Hue.Username() and reuse it with New instead of pairing on every run.
func (b *Bridge) Login(ctx context.Context, device DeviceType) (*Hue, error) {
	resp, err := b.LoginWithResponse(ctx, device)
	if err != nil {
		return nil, err
	}
	return New(b, resp.Username), nil
}
