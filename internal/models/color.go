package models

import (
	"fmt"
	"math"
)

// ColorMode represents how the color is being controlled
type ColorMode int

const (
	ColorModeNone ColorMode = iota
	ColorModeColorTemp
	ColorModeHS
	ColorModeXY
)

// Color is a displayable approximation of what a light is showing
type Color struct {
	// Hue: 0-65535 (maps to 0-360 degrees)
	Hue uint16
	// Saturation: 0-254
	Saturation uint8
	// Brightness: 0-254
	Brightness uint8
	// ColorTemp in Mirek (153 = cool/blue, 500 = warm/orange)
	Mirek uint16
	// XY color coordinates (CIE 1931 color space)
	X, Y float64
	Mode ColorMode
}

// NewColorFromHS creates a Color from Hue and Saturation values
func NewColorFromHS(hue uint16, saturation, brightness uint8) *Color {
	return &Color{Hue: hue, Saturation: saturation, Brightness: brightness, Mode: ColorModeHS}
}

// NewColorFromXY creates a Color from XY coordinates
func NewColorFromXY(x, y float64, brightness uint8) *Color {
	return &Color{X: x, Y: y, Brightness: brightness, Mode: ColorModeXY}
}

// NewColorFromMirek creates a Color from color temperature
func NewColorFromMirek(mirek uint16, brightness uint8) *Color {
	return &Color{Mirek: mirek, Brightness: brightness, Mode: ColorModeColorTemp}
}

// RGB returns the color as RGB values (0-255 each)
func (c *Color) RGB() (r, g, b uint8) {
	switch c.Mode {
	case ColorModeHS:
		return c.hsvToRGB()
	case ColorModeXY:
		return c.xyToRGB()
	case ColorModeColorTemp:
		return c.mirekToRGB()
	default:
		return 255, 255, 255
	}
}

// HexString returns the color as a hex string (e.g., "#FF0000")
func (c *Color) HexString() string {
	r, g, b := c.RGB()
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

// Kelvin returns the color temperature in Kelvin, or 0 outside ct mode
func (c *Color) Kelvin() int {
	if c.Mode != ColorModeColorTemp || c.Mirek == 0 {
		return 0
	}
	return int(1000000 / int(c.Mirek))
}

// hsvToRGB converts HSV to RGB
// Hue: 0-65535 -> 0-360, Saturation: 0-254 -> 0-1, Brightness: 0-254 -> 0-1
func (c *Color) hsvToRGB() (r, g, b uint8) {
	h := float64(c.Hue) / 65535.0 * 360.0
	s := float64(c.Saturation) / 254.0
	v := float64(c.Brightness) / 254.0

	if s == 0 {
		val := uint8(v * 255)
		return val, val, val
	}

	h = math.Mod(h, 360) / 60
	i := math.Floor(h)
	f := h - i
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))

	var rf, gf, bf float64
	switch int(i) {
	case 0:
		rf, gf, bf = v, t, p
	case 1:
		rf, gf, bf = q, v, p
	case 2:
		rf, gf, bf = p, v, t
	case 3:
		rf, gf, bf = p, q, v
	case 4:
		rf, gf, bf = t, p, v
	default:
		rf, gf, bf = v, p, q
	}

	return uint8(rf * 255), uint8(gf * 255), uint8(bf * 255)
}

// xyToRGB converts CIE 1931 XY to RGB using the Wide RGB D65 matrix
func (c *Color) xyToRGB() (r, g, b uint8) {
	if c.Y == 0 {
		return 255, 255, 255
	}

	Y := float64(c.Brightness) / 254.0
	X := (Y / c.Y) * c.X
	Z := (Y / c.Y) * (1 - c.X - c.Y)

	rf := X*1.656492 - Y*0.354851 - Z*0.255038
	gf := -X*0.707196 + Y*1.655397 + Z*0.036152
	bf := X*0.051713 - Y*0.121364 + Z*1.011530

	return clampTo255(reverseGamma(rf)), clampTo255(reverseGamma(gf)), clampTo255(reverseGamma(bf))
}

// reverseGamma applies reverse gamma correction for sRGB
func reverseGamma(value float64) float64 {
	if value <= 0.0031308 {
		return 12.92 * value
	}
	return 1.055*math.Pow(value, 1.0/2.4) - 0.055
}

func clampTo255(value float64) uint8 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 255
	}
	return uint8(value * 255)
}

// mirekToRGB approximates a black-body color (Tanner Helland's fit)
func (c *Color) mirekToRGB() (r, g, b uint8) {
	if c.Mirek == 0 {
		return 255, 255, 255
	}
	temp := 1000000.0 / float64(c.Mirek) / 100.0

	var rf, gf, bf float64

	if temp <= 66 {
		rf = 255
		gf = clampFloat(99.4708025861*math.Log(temp)-161.1195681661, 0, 255)
	} else {
		rf = clampFloat(329.698727446*math.Pow(temp-60, -0.1332047592), 0, 255)
		gf = clampFloat(288.1221695283*math.Pow(temp-60, -0.0755148492), 0, 255)
	}

	switch {
	case temp >= 66:
		bf = 255
	case temp <= 19:
		bf = 0
	default:
		bf = clampFloat(138.5177312231*math.Log(temp-10)-305.0447927307, 0, 255)
	}

	brightness := float64(c.Brightness) / 254.0
	return uint8(rf * brightness), uint8(gf * brightness), uint8(bf * brightness)
}

func clampFloat(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
