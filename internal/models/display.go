package models

import (
	"fmt"
	"strings"
)

func (l Light) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Name: %s\n", l.Name)
	fmt.Fprintf(&b, "Type: %s\n", l.Type)
	fmt.Fprintf(&b, "Model id: %s\n", l.ModelID)
	fmt.Fprintf(&b, "Manufacturer: %s\n", l.ManufacturerName)
	fmt.Fprintf(&b, "Product: %s\n", l.ProductName)
	fmt.Fprintf(&b, "Unique id: %s\n", l.UniqueID)
	fmt.Fprintf(&b, "Software version: %s\n", l.SoftwareVersion)

	b.WriteString("Software update:\n")
	b.WriteString(l.SoftwareUpdate.String())
	b.WriteString("\n")

	b.WriteString("Config:\n")
	b.WriteString(l.Config.String())
	b.WriteString("\n")

	b.WriteString("Capabilities:\n")
	b.WriteString(l.Capabilities.String())
	b.WriteString("\n")

	b.WriteString("--- Light state: ---\n")
	b.WriteString(l.State.String())

	return b.String()
}

func (u SoftwareUpdate) String() string {
	return fmt.Sprintf("State: %s\nLast install: %s\n", u.State, u.LastInstall)
}

func (c LightConfig) String() string {
	return fmt.Sprintf("Archetype: %s\nFunction: %s\nDirection: %s\n", c.Archetype, c.Function, c.Direction)
}

func (s LightState) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "On: %t\n", s.On)
	if s.Bri != nil {
		fmt.Fprintf(&b, "Brightness: %d\n", *s.Bri)
	}
	if s.Hue != nil {
		fmt.Fprintf(&b, "Hue: %d\n", *s.Hue)
	}
	if s.Sat != nil {
		fmt.Fprintf(&b, "Saturation: %d\n", *s.Sat)
	}
	if s.CT != nil {
		fmt.Fprintf(&b, "Color temperature: %d\n", *s.CT)
	}
	if len(s.XY) == 2 {
		fmt.Fprintf(&b, "XY: %.4f, %.4f\n", s.XY[0], s.XY[1])
	}
	fmt.Fprintf(&b, "Alert: %s\n", s.Alert)
	if s.ColorMode != "" {
		fmt.Fprintf(&b, "Colormode: %s\n", s.ColorMode)
	}
	fmt.Fprintf(&b, "Mode: %s\n", s.Mode)
	fmt.Fprintf(&b, "Reachable: %t\n", s.Reachable)

	return b.String()
}

func (c Capabilities) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Certified: %t\n", c.Certified)
	if control := c.Control.String(); control != "" {
		b.WriteString("Control capabilities:\n")
		b.WriteString(control)
		b.WriteString("\n")
	}
	b.WriteString("Streaming capabilities:\n")
	b.WriteString(c.Streaming.String())

	return b.String()
}

func (c CapabilitiesControl) String() string {
	var b strings.Builder

	if c.MinDimLevel != nil {
		fmt.Fprintf(&b, "Min dim level: %d\n", *c.MinDimLevel)
	}
	if c.MaxLumen != nil {
		fmt.Fprintf(&b, "Max lumen: %d\n", *c.MaxLumen)
	}
	if c.ColorGamutType != "" {
		fmt.Fprintf(&b, "Color gamut: %s\n", c.ColorGamutType)
	}
	if c.CT != nil {
		fmt.Fprintf(&b, "Color temperature min: %d, max: %d\n", c.CT.Min, c.CT.Max)
	}

	return b.String()
}

func (s CapabilitiesStreaming) String() string {
	return fmt.Sprintf("Renderer: %t\nProxy: %t\n", s.Renderer, s.Proxy)
}
