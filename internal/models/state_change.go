package models

// StateChange builds a partial light state update. Only the fields that were
// set are sent to the bridge; ranges are enforced by the bridge, not here.
//
//	change := models.NewStateChange().On(true).Bri(254).TransitionTime(30)
//
// The zero value is an empty change.
type StateChange struct {
	ValueOn             *bool   `json:"on,omitempty"`
	ValueBri            *uint8  `json:"bri,omitempty"`
	ValueHue            *uint16 `json:"hue,omitempty"`
	ValueSat            *uint8  `json:"sat,omitempty"`
	ValueCT             *uint16 `json:"ct,omitempty"`
	ValueTransitionTime *uint16 `json:"transitiontime,omitempty"`
}

// NewStateChange returns an empty change
func NewStateChange() StateChange {
	return StateChange{}
}

// IsEmpty returns true if no field was set. Sending an empty change is
// allowed and produces {}.
func (c StateChange) IsEmpty() bool {
	return c.ValueOn == nil &&
		c.ValueBri == nil &&
		c.ValueHue == nil &&
		c.ValueSat == nil &&
		c.ValueCT == nil &&
		c.ValueTransitionTime == nil
}

// On turns the light on or off
func (c StateChange) On(on bool) StateChange {
	c.ValueOn = &on
	return c
}

// Bri sets the brightness (1-254)
func (c StateChange) Bri(bri uint8) StateChange {
	c.ValueBri = &bri
	return c
}

// Hue sets the hue (0-65535)
func (c StateChange) Hue(hue uint16) StateChange {
	c.ValueHue = &hue
	return c
}

// Sat sets the saturation (0-254)
func (c StateChange) Sat(sat uint8) StateChange {
	c.ValueSat = &sat
	return c
}

// CT sets the color temperature in mirek
func (c StateChange) CT(mirek uint16) StateChange {
	c.ValueCT = &mirek
	return c
}

// TransitionTime sets the transition duration in multiples of 100ms
func (c StateChange) TransitionTime(t uint16) StateChange {
	c.ValueTransitionTime = &t
	return c
}
