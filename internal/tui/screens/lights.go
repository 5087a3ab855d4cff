package screens

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/angristan/philipshue/internal/api"
	"github.com/angristan/philipshue/internal/models"
	"github.com/angristan/philipshue/internal/tui/components"
	"github.com/angristan/philipshue/internal/tui/messages"
	"github.com/angristan/philipshue/internal/tui/styles"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	// BrightnessStep is the percentage applied per +/- key press
	BrightnessStep = 10

	// brightnessInterval throttles key repeat into state changes
	brightnessInterval = 150 * time.Millisecond
)

// LightsModel is the lights screen model
type LightsModel struct {
	lights   map[string]models.Light
	ids      []string
	selected int
	loading  bool
	status   string
	err      error

	spinner     spinner.Model
	details     viewport.Model
	showDetails bool
	limiter     *rate.Limiter

	// Window size
	width  int
	height int
}

// NewLightsModel creates a new lights screen model
func NewLightsModel() LightsModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.StyleSpinner

	return LightsModel{
		lights:  make(map[string]models.Light),
		loading: true,
		spinner: sp,
		details: viewport.New(0, 0),
		limiter: rate.NewLimiter(rate.Every(brightnessInterval), 1),
	}
}

// Init initializes the lights screen
func (m LightsModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// SetSize sets the terminal size
func (m *LightsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.details.Width = max(width-4, 0)
	m.details.Height = max(height-6, 0)
}

// SetLoading marks the screen as waiting for data
func (m *LightsModel) SetLoading(loading bool) {
	m.loading = loading
}

// SetStatus sets the connection status shown in the header
func (m *LightsModel) SetStatus(status string) {
	m.status = status
}

// SetLights replaces the displayed lights
func (m *LightsModel) SetLights(lights map[string]models.Light) {
	m.lights = lights
	m.ids = SortedLightIDs(lights)
	m.loading = false
	m.err = nil
	if m.selected >= len(m.ids) {
		m.selected = max(len(m.ids)-1, 0)
	}
}

// SelectedID returns the id of the highlighted light, or "" if there are none
func (m LightsModel) SelectedID() string {
	if m.selected < 0 || m.selected >= len(m.ids) {
		return ""
	}
	return m.ids[m.selected]
}

// SortedLightIDs orders light ids numerically, falling back to string order
// for ids that are not numbers
func SortedLightIDs(lights map[string]models.Light) []string {
	ids := make([]string, 0, len(lights))
	for id := range lights {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b string) int {
		na, errA := strconv.Atoi(a)
		nb, errB := strconv.Atoi(b)
		switch {
		case errA == nil && errB == nil:
			return cmp.Compare(na, nb)
		case errA == nil:
			return -1
		case errB == nil:
			return 1
		}
		return strings.Compare(a, b)
	})
	return ids
}

// Update handles messages
func (m LightsModel) Update(msg tea.Msg, client api.LightClient) (LightsModel, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.showDetails {
			switch msg.String() {
			case "esc", "enter", "q":
				m.showDetails = false
				return m, nil
			}
			var cmd tea.Cmd
			m.details, cmd = m.details.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
		case "down", "j":
			if m.selected < len(m.ids)-1 {
				m.selected++
			}
		case " ":
			if cmd := m.toggle(client); cmd != nil {
				cmds = append(cmds, cmd)
			}
		case "+", "=", "right", "l":
			if cmd := m.adjustBrightness(client, BrightnessStep); cmd != nil {
				cmds = append(cmds, cmd)
			}
		case "-", "left", "h":
			if cmd := m.adjustBrightness(client, -BrightnessStep); cmd != nil {
				cmds = append(cmds, cmd)
			}
		case "enter":
			if id := m.SelectedID(); id != "" {
				m.details.SetContent(m.lights[id].String())
				m.details.GotoTop()
				m.showDetails = true
			}
		case "r":
			m.loading = true
			cmds = append(cmds, m.spinner.Tick, func() tea.Msg { return messages.RefreshMsg{} })
		}

	case messages.LightsFetchedMsg:
		m.SetLights(msg.Lights)

	case messages.LightUpdatedMsg:
		if msg.Light != nil {
			m.lights[msg.ID] = *msg.Light
		}

	case messages.ErrorMsg:
		m.loading = false
		m.err = msg.Err

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

// toggle switches the selected light on or off, updating the local copy
// before the bridge confirms
func (m *LightsModel) toggle(client api.LightClient) tea.Cmd {
	id := m.SelectedID()
	if id == "" || client == nil {
		return nil
	}

	light := m.lights[id]
	on := !light.State.On
	light.State.On = on
	m.lights[id] = light

	return setStateCmd(client, id, models.NewStateChange().On(on))
}

// adjustBrightness moves the selected light's brightness by delta percent.
// Key presses beyond the limiter's rate are dropped.
func (m *LightsModel) adjustBrightness(client api.LightClient, delta int) tea.Cmd {
	id := m.SelectedID()
	if id == "" || client == nil {
		return nil
	}

	light := m.lights[id]
	if light.State.Bri == nil {
		return nil
	}
	if !m.limiter.Allow() {
		log.Debug().Str("light", id).Msg("Brightness change throttled")
		return nil
	}

	pct := light.State.BrightnessPct()
	if !light.State.On {
		pct = 0
	}
	bri := BrightnessFromPct(pct + delta)

	light.State.On = true
	light.State.Bri = &bri
	m.lights[id] = light

	return setStateCmd(client, id, models.NewStateChange().On(true).Bri(bri))
}

// BrightnessFromPct converts a percentage to the bridge's 1-254 scale
func BrightnessFromPct(pct int) uint8 {
	pct = min(max(pct, 1), 100)
	return uint8(max(pct*254/100, 1))
}

func setStateCmd(client api.LightClient, id string, change models.StateChange) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := client.SetLightState(ctx, id, change); err != nil {
			log.Error().Err(err).Str("light", id).Msg("Failed to set light state")
			return messages.ErrorMsg{Err: fmt.Errorf("failed to update light %s: %w", id, err)}
		}

		light, err := client.Light(ctx, id)
		if err != nil {
			log.Warn().Err(err).Str("light", id).Msg("Failed to re-read light")
			return messages.ErrorMsg{Err: err}
		}
		log.Debug().Str("light", id).Bool("on", light.State.On).Msg("Light updated")
		return messages.LightUpdatedMsg{ID: id, Light: light}
	}
}

// View renders the lights screen
func (m LightsModel) View() string {
	var b strings.Builder

	b.WriteString(components.RenderHeader(m.width, m.status))
	b.WriteString("\n\n")

	switch {
	case m.loading && len(m.ids) == 0:
		b.WriteString(fmt.Sprintf("  %s Loading lights...\n", m.spinner.View()))
	case m.showDetails:
		b.WriteString(m.renderDetails())
	case len(m.ids) == 0:
		b.WriteString(styles.StyleTextMuted.Render("  No lights found.") + "\n")
	default:
		for i, id := range m.ids {
			b.WriteString(components.RenderLightRow(id, m.lights[id], i == m.selected))
			b.WriteString("\n")
		}
	}

	if m.err != nil {
		b.WriteString("\n" + styles.StyleError.Render("  "+m.err.Error()) + "\n")
	}

	help := "↑/↓ select • space toggle • +/- brightness • enter details • r refresh • q quit"
	if m.showDetails {
		help = "↑/↓ scroll • esc back"
	}
	b.WriteString(styles.StyleHelp.Render("  " + help))

	return b.String()
}

func (m LightsModel) renderDetails() string {
	id := m.SelectedID()
	title := styles.StyleDetailsTitle.Render(fmt.Sprintf("Light %s", id))
	return styles.StyleDetails.Render(title+"\n"+m.details.View()) + "\n"
}
