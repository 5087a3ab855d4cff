package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/angristan/philipshue/internal/models"
)

// LightClient defines the light operations available on a paired bridge.
// This abstraction allows for both real bridge connections and demo mode.
type LightClient interface {
	// Lights returns every light the bridge knows, keyed by light id
	Lights(ctx context.Context) (map[string]models.Light, error)
	// Light returns a single light by id
	Light(ctx context.Context, id string) (*models.Light, error)
	// SetLightState applies a partial state change to a light
	SetLightState(ctx context.Context, id string, change models.StateChange) error
}

// Compile-time check that Hue implements LightClient
var _ LightClient = (*Hue)(nil)

// Bridge identifies a Hue bridge by its base URL, without credentials.
// A Bridge is immutable and safe for concurrent use.
type Bridge struct {
	url    string
	client *http.Client
}

// NewBridge creates a bridge for a known base URL such as
// "https://192.168.1.20"
func NewBridge(url string) *Bridge {
	return NewBridgeWithClient(url, NewHTTPClient())
}

// NewBridgeWithClient creates a bridge that sends requests through client.
// The client should be built from NewHTTPClient so the bridge certificate
// and User-Agent are handled.
func NewBridgeWithClient(url string, client *http.Client) *Bridge {
	return &Bridge{
		url:    strings.TrimSuffix(url, "/"),
		client: client,
	}
}

// URL returns the bridge base URL
func (b *Bridge) URL() string {
	return b.url
}

// BridgeConfig is the public part of the bridge configuration, readable
// without pairing
type BridgeConfig struct {
	Name             string `json:"name"`
	BridgeID         string `json:"bridgeid"`
	ModelID          string `json:"modelid"`
	APIVersion       string `json:"apiversion"`
	SoftwareVersion  string `json:"swversion"`
	DataStoreVersion string `json:"datastoreversion"`
	MAC              string `json:"mac"`
}

// Config retrieves the unauthenticated bridge configuration
func (b *Bridge) Config(ctx context.Context) (*BridgeConfig, error) {
	var cfg BridgeConfig
	if err := getJSON(ctx, b.client, b.url+"/api/config", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
