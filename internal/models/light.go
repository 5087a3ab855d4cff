package models

// Light is a light as reported by the bridge. It is a snapshot: the bridge
// does not notify about later changes.
type Light struct {
	State            LightState     `json:"state"`
	Type             string         `json:"type"`
	Name             string         `json:"name"`
	ModelID          string         `json:"modelid"`
	ManufacturerName string         `json:"manufacturername"`
	ProductName      string         `json:"productname"`
	SoftwareUpdate   SoftwareUpdate `json:"swupdate"`
	UniqueID         string         `json:"uniqueid"`
	SoftwareVersion  string         `json:"swversion"`
	Capabilities     Capabilities   `json:"capabilities"`
	Config           LightConfig    `json:"config"`
}

// LightState is the current state of a light.
//
// The color fields are independently optional: which of them are present
// depends on the light, and the bridge does not guarantee they match the
// declared capabilities.
type LightState struct {
	On bool `json:"on"`
	// Brightness level (1-254)
	Bri *uint8 `json:"bri,omitempty"`
	// Hue (0-65535)
	Hue *uint16 `json:"hue,omitempty"`
	// Saturation (0-254)
	Sat *uint8 `json:"sat,omitempty"`
	// Color temperature in mirek
	CT *uint16 `json:"ct,omitempty"`
	// CIE 1931 chromaticity as [x, y]
	XY        []float64 `json:"xy,omitempty"`
	Alert     string    `json:"alert"`
	ColorMode string    `json:"colormode,omitempty"`
	Mode      string    `json:"mode"`
	Reachable bool      `json:"reachable"`
}

// BrightnessPct returns the brightness as a percentage (0-100), or 0 when
// the light reports no brightness
func (s LightState) BrightnessPct() int {
	if s.Bri == nil {
		return 0
	}
	return int(float64(*s.Bri) / 254.0 * 100)
}

// Color returns the color the light is showing according to its active
// color mode, or nil if the light reports none
func (s LightState) Color() *Color {
	brightness := uint8(254)
	if s.Bri != nil {
		brightness = *s.Bri
	}

	switch s.ColorMode {
	case "hs":
		if s.Hue != nil && s.Sat != nil {
			return NewColorFromHS(*s.Hue, *s.Sat, brightness)
		}
	case "xy":
		if len(s.XY) == 2 {
			return NewColorFromXY(s.XY[0], s.XY[1], brightness)
		}
	case "ct":
		if s.CT != nil && *s.CT > 0 {
			return NewColorFromMirek(*s.CT, brightness)
		}
	}
	return nil
}

// SoftwareUpdate describes the firmware update status of a light
type SoftwareUpdate struct {
	State       string `json:"state"`
	LastInstall string `json:"lastinstall"`
}

// Capabilities describes what a light supports
type Capabilities struct {
	Certified bool                  `json:"certified"`
	Control   CapabilitiesControl   `json:"control"`
	Streaming CapabilitiesStreaming `json:"streaming"`
}

// CapabilitiesControl describes the controllable range of a light
type CapabilitiesControl struct {
	MinDimLevel    *int     `json:"mindimlevel,omitempty"`
	MaxLumen       *int     `json:"maxlumen,omitempty"`
	ColorGamutType string   `json:"colorgamuttype,omitempty"`
	CT             *CTRange `json:"ct,omitempty"`
}

// CTRange is the supported color temperature range in mirek
type CTRange struct {
	Min uint16 `json:"min"`
	Max uint16 `json:"max"`
}

// CapabilitiesStreaming describes entertainment streaming support
type CapabilitiesStreaming struct {
	Renderer bool `json:"renderer"`
	Proxy    bool `json:"proxy"`
}

// LightConfig is the user-facing configuration of a light
type LightConfig struct {
	Archetype string `json:"archetype"`
	Function  string `json:"function"`
	Direction string `json:"direction"`
}
