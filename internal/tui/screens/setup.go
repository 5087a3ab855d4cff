package screens

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/angristan/philipshue/internal/api"
	"github.com/angristan/philipshue/internal/tui/messages"
	"github.com/angristan/philipshue/internal/tui/styles"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"
)

const (
	// PairingTimeout bounds how long the user has to press the link button
	PairingTimeout = 30 * time.Second
	// PairingInterval is the delay between login attempts
	PairingInterval = 2 * time.Second

	discoveryTimeout = 5 * time.Second
	requestTimeout   = 5 * time.Second
)

// ErrPairingTimeout is returned when the link button was not pressed in time
var ErrPairingTimeout = errors.New("link button was not pressed in time")

// SetupState represents the current setup state
type SetupState int

const (
	StateDiscovering SetupState = iota
	StateBridgeList
	StateManualEntry
	StatePairing
	StateSuccess
	StateError
)

// SetupModel is the setup screen model
type SetupModel struct {
	state      SetupState
	bridges    []api.DiscoveredBridge
	selected   int
	input      textinput.Model
	spinner    spinner.Model
	err        error
	message    string
	deviceType string

	// Discoverers queried on refresh
	discoverers []api.Discoverer

	// Pairing state
	pairing         api.DiscoveredBridge
	pairingDeadline time.Time
	attempts        int

	// Window size
	width  int
	height int
}

// NewSetupModel creates a new setup screen model. deviceType is the label
// the bridge records for the issued username.
func NewSetupModel(deviceType string) SetupModel {
	ti := textinput.New()
	ti.Placeholder = "192.168.1.x or https://host"
	ti.CharLimit = 64

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.StyleSpinner

	return SetupModel{
		state:      StateDiscovering,
		input:      ti,
		spinner:    sp,
		deviceType: deviceType,
		discoverers: []api.Discoverer{
			api.CloudDiscovery{},
			api.MDNSDiscovery{Timeout: 3 * time.Second},
		},
	}
}

// Init initializes the setup screen
func (m SetupModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.discoverCmd(),
	)
}

// SetSize sets the terminal size
func (m *SetupModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// State returns the current setup state
func (m SetupModel) State() SetupState {
	return m.state
}

// Update handles messages
func (m SetupModel) Update(msg tea.Msg) (SetupModel, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.state {
		case StateBridgeList:
			switch msg.String() {
			case "up", "k":
				if m.selected > 0 {
					m.selected--
				}
			case "down", "j":
				if m.selected < len(m.bridges) {
					m.selected++
				}
			case "enter":
				if m.selected < len(m.bridges) {
					cmds = append(cmds, m.startPairing(m.bridges[m.selected]))
				} else {
					// Manual entry selected
					cmds = append(cmds, m.startManualEntry())
				}
			case "m":
				cmds = append(cmds, m.startManualEntry())
			case "r":
				m.state = StateDiscovering
				m.err = nil
				cmds = append(cmds, m.spinner.Tick, m.discoverCmd())
			case "q":
				return m, tea.Quit
			}

		case StateManualEntry:
			switch msg.String() {
			case "enter":
				url := NormalizeBridgeURL(m.input.Value())
				if url != "" {
					m.input.Blur()
					cmds = append(cmds, m.startPairing(api.DiscoveredBridge{URL: url}))
				}
			case "esc":
				m.state = StateBridgeList
				m.input.Blur()
			}

		case StateError:
			switch msg.String() {
			case "enter", "esc":
				m.state = StateBridgeList
				m.err = nil
			case "q":
				return m, tea.Quit
			}
		}

	case BridgesDiscoveredMsg:
		m.bridges = msg.Bridges
		m.selected = 0
		m.state = StateBridgeList
		log.Info().Int("count", len(msg.Bridges)).Msg("Bridge discovery finished")

	case DiscoveryErrorMsg:
		m.bridges = nil
		m.state = StateBridgeList
		m.err = msg.Err
		log.Warn().Err(msg.Err).Msg("Bridge discovery failed")

	case PairingRetryMsg:
		if m.state == StatePairing {
			cmds = append(cmds, m.pairCmd())
		}

	case PairingResultMsg:
		if m.state != StatePairing {
			break
		}
		m.attempts++
		switch {
		case msg.Err == nil:
			m.state = StateSuccess
			m.message = "Successfully paired with bridge!"
			log.Info().Str("bridge", m.pairing.URL).Str("bridge_id", msg.BridgeID).Msg("Paired with bridge")
			connected := messages.BridgeConnectedMsg{Hue: msg.Hue, BridgeID: msg.BridgeID}
			cmds = append(cmds, func() tea.Msg { return connected })
		case api.IsLinkButtonNotPressed(msg.Err) && time.Now().Before(m.pairingDeadline):
			log.Debug().Int("attempt", m.attempts).Msg("Waiting for link button")
			cmds = append(cmds, tea.Tick(PairingInterval, func(time.Time) tea.Msg {
				return PairingRetryMsg{}
			}))
		case api.IsLinkButtonNotPressed(msg.Err):
			m.state = StateError
			m.err = ErrPairingTimeout
			log.Warn().Str("bridge", m.pairing.URL).Msg("Pairing timed out")
		default:
			m.state = StateError
			m.err = msg.Err
			log.Error().Err(msg.Err).Str("bridge", m.pairing.URL).Msg("Pairing failed")
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	// Update text input
	if m.state == StateManualEntry {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *SetupModel) startManualEntry() tea.Cmd {
	m.state = StateManualEntry
	m.input.Focus()
	return textinput.Blink
}

func (m *SetupModel) startPairing(bridge api.DiscoveredBridge) tea.Cmd {
	m.state = StatePairing
	m.pairing = bridge
	m.pairingDeadline = time.Now().Add(PairingTimeout)
	m.attempts = 0
	m.err = nil
	log.Info().Str("bridge", bridge.URL).Msg("Starting pairing")
	return tea.Batch(m.spinner.Tick, m.pairCmd())
}

// View renders the setup screen
func (m SetupModel) View() string {
	var b strings.Builder

	// Header
	header := styles.StyleHeaderGradient.Render("  Hue Setup  ")
	b.WriteString(lipgloss.Place(m.width, 3, lipgloss.Center, lipgloss.Top, header))
	b.WriteString("\n\n")

	// Content based on state
	var content string
	switch m.state {
	case StateDiscovering:
		content = m.renderDiscovering()
	case StateBridgeList:
		content = m.renderBridgeList()
	case StateManualEntry:
		content = m.renderManualEntry()
	case StatePairing:
		content = m.renderPairing()
	case StateSuccess:
		content = m.renderSuccess()
	case StateError:
		content = m.renderError()
	}

	b.WriteString(lipgloss.Place(m.width, max(m.height-6, 0), lipgloss.Center, lipgloss.Center, content))

	return b.String()
}

func (m SetupModel) renderDiscovering() string {
	return fmt.Sprintf("%s Searching for Hue bridges...", m.spinner.View())
}

func (m SetupModel) renderBridgeList() string {
	var b strings.Builder

	if m.err != nil {
		b.WriteString(styles.StyleError.Render("Discovery failed: "+m.err.Error()) + "\n\n")
	}

	if len(m.bridges) == 0 {
		b.WriteString(styles.StyleTextMuted.Render("No bridges found.") + "\n\n")
	} else {
		b.WriteString("Found bridges:\n\n")
		for i, bridge := range m.bridges {
			cursor := "  "
			style := styles.StyleLightName
			if i == m.selected {
				cursor = "> "
				style = styles.StyleListItemSelected
			}
			name := bridge.URL
			if len(bridge.ID) >= 8 {
				name = fmt.Sprintf("%s (%s)", bridge.URL, bridge.ID[:8])
			}
			b.WriteString(cursor + style.Render(name) + "\n")
		}
	}

	// Manual entry option
	cursor := "  "
	style := styles.StyleLightName
	if m.selected >= len(m.bridges) {
		cursor = "> "
		style = styles.StyleListItemSelected
	}
	b.WriteString("\n" + cursor + style.Render("Enter address manually...") + "\n")

	b.WriteString("\n" + styles.StyleHelp.Render("↑/↓ navigate • enter select • r refresh • m manual • q quit"))

	return b.String()
}

func (m SetupModel) renderManualEntry() string {
	var b strings.Builder

	b.WriteString("Enter bridge address:\n\n")
	b.WriteString(styles.StyleInputFocused.Render(m.input.View()))
	b.WriteString("\n\n" + styles.StyleHelp.Render("enter confirm • esc back"))

	return b.String()
}

func (m SetupModel) renderPairing() string {
	var b strings.Builder

	remaining := time.Until(m.pairingDeadline).Round(time.Second)
	if remaining < 0 {
		remaining = 0
	}

	b.WriteString(fmt.Sprintf("%s Pairing with %s...\n\n", m.spinner.View(), m.pairing.URL))
	b.WriteString(styles.StylePrimary.Render("Press the link button on your Hue bridge"))
	b.WriteString("\n\n" + styles.StyleTextMuted.Render(fmt.Sprintf("%s remaining", remaining)))

	return b.String()
}

func (m SetupModel) renderSuccess() string {
	return styles.StyleSuccess.Render("✓ " + m.message)
}

func (m SetupModel) renderError() string {
	return styles.StyleError.Render("✗ Error: "+m.err.Error()) +
		"\n\n" + styles.StyleHelp.Render("enter back • q quit")
}

// NormalizeBridgeURL turns user input into a bridge base URL. A bare host
// is assumed to speak HTTPS.
func NormalizeBridgeURL(input string) string {
	input = strings.TrimRight(strings.TrimSpace(input), "/")
	if input == "" {
		return ""
	}
	if strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") {
		return input
	}
	return "https://" + input
}

// Commands

func (m SetupModel) discoverCmd() tea.Cmd {
	discoverers := m.discoverers
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), discoveryTimeout)
		defer cancel()

		bridges, err := api.DiscoverAll(ctx, discoverers...)
		if err != nil && !errors.Is(err, api.ErrNoBridgeFound) {
			return DiscoveryErrorMsg{Err: err}
		}
		return BridgesDiscoveredMsg{Bridges: bridges}
	}
}

func (m SetupModel) pairCmd() tea.Cmd {
	target := m.pairing
	device := api.NewDeviceType(m.deviceType)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		bridge := target.Bridge()
		hue, err := bridge.Login(ctx, device)
		if err != nil {
			return PairingResultMsg{Err: err}
		}

		// Manually entered bridges have no id yet
		bridgeID := target.ID
		if cfg, err := bridge.Config(ctx); err == nil && cfg.BridgeID != "" {
			bridgeID = cfg.BridgeID
		} else if err != nil {
			log.Warn().Err(err).Msg("Failed to read bridge config")
		}

		return PairingResultMsg{Hue: hue, BridgeID: bridgeID}
	}
}

// Messages

type BridgesDiscoveredMsg struct {
	Bridges []api.DiscoveredBridge
}

type DiscoveryErrorMsg struct {
	Err error
}

// PairingResultMsg is the outcome of one login attempt
type PairingResultMsg struct {
	Hue      *api.Hue
	BridgeID string
	Err      error
}

// PairingRetryMsg triggers the next login attempt
type PairingRetryMsg struct{}
