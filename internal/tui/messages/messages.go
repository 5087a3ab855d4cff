package messages

import (
	"github.com/angristan/philipshue/internal/api"
	"github.com/angristan/philipshue/internal/models"
)

// BridgeConnectedMsg indicates successful pairing with a bridge
type BridgeConnectedMsg struct {
	Hue      *api.Hue
	BridgeID string
}

// LightsFetchedMsg contains all lights reported by the bridge
type LightsFetchedMsg struct {
	Lights map[string]models.Light
}

// LightUpdatedMsg carries the state of one light after a change
type LightUpdatedMsg struct {
	ID    string
	Light *models.Light
}

// ErrorMsg indicates an error occurred
type ErrorMsg struct {
	Err error
}

// RefreshMsg requests a data refresh
type RefreshMsg struct{}
