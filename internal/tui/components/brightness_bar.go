package components

import (
	"strings"

	"github.com/angristan/philipshue/internal/tui/styles"
	"github.com/charmbracelet/lipgloss"
)

// BrightnessBarWidth is the number of segments in a brightness bar
const BrightnessBarWidth = 10

// RenderBrightnessBar renders a brightness indicator bar
func RenderBrightnessBar(brightness int, on bool) string {
	return RenderBrightnessBarWidth(brightness, on, BrightnessBarWidth)
}

// RenderBrightnessBarWidth renders a brightness bar with the given number of segments
func RenderBrightnessBarWidth(brightness int, on bool, width int) string {
	if width <= 0 {
		return ""
	}
	if !on {
		// All empty when off
		return styles.StyleBrightnessBarEmpty.Render(strings.Repeat("─", width))
	}

	segments := (brightness * width) / 100
	if brightness > 0 && segments == 0 {
		segments = 1
	}

	var b strings.Builder
	for i := 1; i <= width; i++ {
		if i <= segments {
			color := getBrightnessColorForSegment(i, width, brightness)
			b.WriteString(lipgloss.NewStyle().Foreground(color).Render("█"))
		} else {
			b.WriteString(styles.StyleBrightnessBarEmpty.Render("─"))
		}
	}

	return b.String()
}

// getBrightnessColorForSegment returns the color for a specific segment
func getBrightnessColorForSegment(segment, total, brightness int) lipgloss.Color {
	// Map segment to 1-10 scale
	mappedSegment := (segment * 10) / total
	if mappedSegment < 1 {
		mappedSegment = 1
	}
	if mappedSegment > 10 {
		mappedSegment = 10
	}

	return styles.GetBrightnessColor(mappedSegment, brightness)
}
