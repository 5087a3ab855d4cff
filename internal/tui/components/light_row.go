package components

import (
	"fmt"

	"github.com/angristan/philipshue/internal/models"
	"github.com/angristan/philipshue/internal/tui/styles"
	"github.com/charmbracelet/lipgloss"
)

// RenderLightRow renders a single light as one line of the lights list
func RenderLightRow(id string, light models.Light, selected bool) string {
	on := light.State.On

	// Status indicator
	statusIcon := "○"
	statusStyle := styles.StyleStatusOff
	if on {
		statusIcon = "●"
		statusStyle = styles.StyleStatusOn
	}

	// Color swatch for lights reporting a color mode
	swatch := "  "
	if color := light.State.Color(); color != nil && on {
		swatch = lipgloss.NewStyle().
			Foreground(lipgloss.Color(color.HexString())).
			Render(" ◆")
	}

	nameStyle := styles.StyleLightName
	if !on {
		nameStyle = styles.StyleLightNameDim
	}
	name := nameStyle.Render(fmt.Sprintf("%-24s", truncate(light.Name, 24)))

	// Plugs have no brightness
	level := ""
	if light.State.Bri != nil {
		pct := light.State.BrightnessPct()
		level = fmt.Sprintf("%s %3d%%", RenderBrightnessBar(pct, on), pct)
	}

	row := fmt.Sprintf("%s %3s %s%s  %s",
		statusStyle.Render(statusIcon), id, name, swatch, level)

	if !light.State.Reachable {
		row += styles.StyleUnreachable.Render("  unreachable")
	}

	if selected {
		return styles.StyleLightRowSelected.Render(row)
	}
	return styles.StyleLightRow.Render(row)
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 1 {
		return string(runes[:n])
	}
	return string(runes[:n-1]) + "…"
}
