package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/angristan/philipshue/internal/models"
)

// Hue is an authenticated session with a bridge. It is immutable and may be
// shared between goroutines.
type Hue struct {
	bridge   *Bridge
	username string
}

// New creates a session from a bridge and a username obtained by Login
func New(bridge *Bridge, username string) *Hue {
	return &Hue{bridge: bridge, username: username}
}

// Bridge returns the bridge this session talks to
func (h *Hue) Bridge() *Bridge {
	return h.bridge
}

// Username returns the access token of this session
func (h *Hue) Username() string {
	return h.username
}

// usernameURL returns {bridge}/api/{username}/{path}
func (h *Hue) usernameURL(path string) string {
	return h.bridge.url + "/api/" + url.PathEscape(h.username) + "/" + path
}

// Lights returns every light the bridge knows, keyed by light id
func (h *Hue) Lights(ctx context.Context) (map[string]models.Light, error) {
	lights := make(map[string]models.Light)
	if err := getJSON(ctx, h.bridge.client, h.usernameURL("lights"), &lights); err != nil {
		return nil, err
	}
	return lights, nil
}

// Light returns a single light. An unknown id surfaces as a *RequestError.
func (h *Hue) Light(ctx context.Context, id string) (*models.Light, error) {
	var light models.Light
	if err := getJSON(ctx, h.bridge.client, h.usernameURL("lights/"+url.PathEscape(id)), &light); err != nil {
		return nil, err
	}
	return &light, nil
}

// SetLightState sends only the fields set on change. An empty change is sent
// as {}; check change.IsEmpty() first to skip the request.
func (h *Hue) SetLightState(ctx context.Context, id string, change models.StateChange) error {
	path := "lights/" + url.PathEscape(id) + "/state"
	_, err := sendEnvelope[json.RawMessage](ctx, h.bridge.client, http.MethodPut, h.usernameURL(path), change)
	return err
}
