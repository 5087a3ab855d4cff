package api

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/angristan/philipshue/internal/models"
)

// Compile-time check that DemoHue implements LightClient
var _ LightClient = (*DemoHue)(nil)

// DemoHue implements LightClient for demo mode without a real Hue bridge.
// All state changes are maintained in memory.
type DemoHue struct {
	// Latency simulates the network round trip on every call
	Latency time.Duration

	lights map[string]*models.Light
	mu     sync.RWMutex
}

// NewDemoHue creates a demo bridge with sample lights
func NewDemoHue() *DemoHue {
	return &DemoHue{
		Latency: 300 * time.Millisecond,
		lights:  demoLights(),
	}
}

func (d *DemoHue) wait(ctx context.Context) error {
	if d.Latency <= 0 {
		return ctx.Err()
	}
	select {
	case <-time.After(d.Latency):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Lights returns copies of all demo lights
func (d *DemoHue) Lights(ctx context.Context) (map[string]models.Light, error) {
	if err := d.wait(ctx); err != nil {
		return nil, err
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	lights := make(map[string]models.Light, len(d.lights))
	for id, light := range d.lights {
		lights[id] = *light
	}
	return lights, nil
}

// Light returns a copy of one demo light
func (d *DemoHue) Light(ctx context.Context, id string) (*models.Light, error) {
	if err := d.wait(ctx); err != nil {
		return nil, err
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	light, ok := d.lights[id]
	if !ok {
		return nil, &RequestError{
			Method:     http.MethodGet,
			URL:        "demo:/lights/" + id,
			StatusCode: http.StatusNotFound,
			Err:        fmt.Errorf("unexpected status %d", http.StatusNotFound),
		}
	}
	clone := *light
	return &clone, nil
}

// SetLightState applies a change to a demo light the way the bridge would
func (d *DemoHue) SetLightState(ctx context.Context, id string, change models.StateChange) error {
	if err := d.wait(ctx); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	light, ok := d.lights[id]
	if !ok {
		return &APIError{
			Type:        3,
			Address:     "/lights/" + id,
			Description: fmt.Sprintf("resource, /lights/%s, not available", id),
		}
	}

	state := &light.State
	if change.ValueOn != nil {
		state.On = *change.ValueOn
	}
	// Pointers are replaced, never written through, so earlier copies stay intact
	if change.ValueBri != nil {
		v := *change.ValueBri
		state.Bri = &v
	}
	if change.ValueHue != nil {
		v := *change.ValueHue
		state.Hue = &v
		state.ColorMode = "hs"
	}
	if change.ValueSat != nil {
		v := *change.ValueSat
		state.Sat = &v
		state.ColorMode = "hs"
	}
	if change.ValueCT != nil {
		v := *change.ValueCT
		state.CT = &v
		state.ColorMode = "ct"
	}

	return nil
}

func ptr[T any](v T) *T {
	return &v
}

// demoLights creates the sample lights
func demoLights() map[string]*models.Light {
	colorCaps := models.Capabilities{
		Certified: true,
		Control: models.CapabilitiesControl{
			MinDimLevel:    ptr(1000),
			MaxLumen:       ptr(806),
			ColorGamutType: "C",
			CT:             &models.CTRange{Min: 153, Max: 500},
		},
		Streaming: models.CapabilitiesStreaming{Renderer: true, Proxy: true},
	}
	ambianceCaps := models.Capabilities{
		Certified: true,
		Control: models.CapabilitiesControl{
			MinDimLevel: ptr(200),
			MaxLumen:    ptr(800),
			CT:          &models.CTRange{Min: 153, Max: 454},
		},
	}
	plugCaps := models.Capabilities{Certified: true}

	update := models.SoftwareUpdate{State: "noupdates", LastInstall: "2024-11-02T09:12:44"}
	plugUpdate := models.SoftwareUpdate{State: "notupdatable", LastInstall: "2024-06-18T07:01:02"}

	return map[string]*models.Light{
		"1": {
			Name: "Ceiling Light", Type: "Extended color light",
			ModelID: "LCA001", ManufacturerName: "Signify Netherlands B.V.", ProductName: "Hue color lamp",
			UniqueID: "00:17:88:01:0a:00:00:01-0b", SoftwareVersion: "1.104.2",
			SoftwareUpdate: update, Capabilities: colorCaps,
			Config: models.LightConfig{Archetype: "sultanbulb", Function: "mixed", Direction: "omnidirectional"},
			State: models.LightState{
				On: true, Bri: ptr(uint8(203)), Hue: ptr(uint16(8418)), Sat: ptr(uint8(140)),
				CT: ptr(uint16(326)), XY: []float64{0.4452, 0.4068},
				Alert: "none", ColorMode: "ct", Mode: "homeautomation", Reachable: true,
			},
		},
		"2": {
			Name: "Floor Lamp", Type: "Extended color light",
			ModelID: "LCA001", ManufacturerName: "Signify Netherlands B.V.", ProductName: "Hue color lamp",
			UniqueID: "00:17:88:01:0a:00:00:02-0b", SoftwareVersion: "1.104.2",
			SoftwareUpdate: update, Capabilities: colorCaps,
			Config: models.LightConfig{Archetype: "floorshade", Function: "decorative", Direction: "omnidirectional"},
			State: models.LightState{
				On: true, Bri: ptr(uint8(152)), Hue: ptr(uint16(46920)), Sat: ptr(uint8(254)),
				CT: ptr(uint16(153)), XY: []float64{0.1532, 0.0475},
				Alert: "none", ColorMode: "hs", Mode: "homeautomation", Reachable: true,
			},
		},
		"3": {
			Name: "Bedside", Type: "Color temperature light",
			ModelID: "LTA001", ManufacturerName: "Signify Netherlands B.V.", ProductName: "Hue ambiance lamp",
			UniqueID: "00:17:88:01:0a:00:00:03-0b", SoftwareVersion: "1.93.11",
			SoftwareUpdate: update, Capabilities: ambianceCaps,
			Config: models.LightConfig{Archetype: "tableshade", Function: "functional", Direction: "downwards"},
			State: models.LightState{
				On: false, Bri: ptr(uint8(76)), CT: ptr(uint16(454)),
				Alert: "none", ColorMode: "ct", Mode: "homeautomation", Reachable: true,
			},
		},
		"4": {
			Name: "Hallway", Type: "Dimmable light",
			ModelID: "LWA001", ManufacturerName: "Signify Netherlands B.V.", ProductName: "Hue white lamp",
			UniqueID: "00:17:88:01:0a:00:00:04-0b", SoftwareVersion: "1.93.11",
			SoftwareUpdate: update, Capabilities: models.Capabilities{Certified: true},
			Config: models.LightConfig{Archetype: "classicbulb", Function: "functional", Direction: "omnidirectional"},
			State: models.LightState{
				On: true, Bri: ptr(uint8(254)),
				Alert: "none", Mode: "homeautomation", Reachable: true,
			},
		},
		"5": {
			Name: "Coffee Machine", Type: "On/Off plug-in unit",
			ModelID: "LOM001", ManufacturerName: "Signify Netherlands B.V.", ProductName: "Hue Smart plug",
			UniqueID: "00:17:88:01:0a:00:00:05-0b", SoftwareVersion: "1.93.6",
			SoftwareUpdate: plugUpdate, Capabilities: plugCaps,
			Config: models.LightConfig{Archetype: "plug", Function: "functional", Direction: "omnidirectional"},
			State: models.LightState{
				On: false, Alert: "none", Mode: "homeautomation", Reachable: false,
			},
		},
	}
}
