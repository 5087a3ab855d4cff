package tui

import (
	"context"
	"time"

	"github.com/angristan/philipshue/internal/api"
	"github.com/angristan/philipshue/internal/config"
	"github.com/angristan/philipshue/internal/tui/messages"
	"github.com/angristan/philipshue/internal/tui/screens"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
)

// fetchTimeout bounds a full lights fetch
const fetchTimeout = 10 * time.Second

// Screen represents the current screen state
type Screen int

const (
	ScreenSetup Screen = iota
	ScreenLights
)

// Model is the main application model
type Model struct {
	// Configuration
	config *config.Config

	// Bridge session; a DemoHue in demo mode
	client   api.LightClient
	demoMode bool

	// Current screen
	screen Screen

	// Screen models
	setupScreen  screens.SetupModel
	lightsScreen screens.LightsModel

	// Window size
	width  int
	height int

	// Error state
	err error

	// Context for cancellation
	ctx    context.Context
	cancel context.CancelFunc
}

// NewModel creates a new application model
func NewModel(cfg *config.Config, demoMode bool) Model {
	ctx, cancel := context.WithCancel(context.Background())

	m := Model{
		config:   cfg,
		demoMode: demoMode,
		ctx:      ctx,
		cancel:   cancel,
	}

	// Initialize screen models
	m.setupScreen = screens.NewSetupModel(cfg.EnsureDeviceType())
	m.lightsScreen = screens.NewLightsModel()

	// Determine initial screen
	switch {
	case demoMode:
		m.client = api.NewDemoHue()
		m.screen = ScreenLights
		m.lightsScreen.SetStatus("Demo")
	case cfg.HasBridges():
		bridgeCfg, err := cfg.GetLastBridge()
		if err == nil {
			m.client = api.New(api.NewBridge(bridgeCfg.URL), bridgeCfg.Username)
			m.screen = ScreenLights
			m.lightsScreen.SetStatus(bridgeCfg.URL)
		}
	default:
		m.screen = ScreenSetup
	}

	return m
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.SetWindowTitle("Hue"),
	}

	// Start with appropriate screen initialization
	switch m.screen {
	case ScreenSetup:
		cmds = append(cmds, m.setupScreen.Init())
	case ScreenLights:
		cmds = append(cmds, m.lightsScreen.Init(), m.fetchLightsCmd())
	}

	return tea.Batch(cmds...)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.lightsScreen.SetSize(msg.Width, msg.Height)
		m.setupScreen.SetSize(msg.Width, msg.Height)

	case tea.KeyMsg:
		// Global key handlers
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit
		}

	case messages.BridgeConnectedMsg:
		// Bridge pairing successful
		m.client = msg.Hue
		bridgeCfg := config.BridgeConfig{
			URL:      msg.Hue.Bridge().URL(),
			Username: msg.Hue.Username(),
			BridgeID: msg.BridgeID,
		}
		m.config.AddBridge(bridgeCfg)
		m.config.LastBridgeID = bridgeCfg.Key()
		if err := m.config.Save(); err != nil {
			log.Error().Err(err).Msg("Failed to save config")
			m.err = err
		}

		m.screen = ScreenLights
		m.lightsScreen.SetStatus(bridgeCfg.URL)
		m.lightsScreen.SetLoading(true)
		cmds = append(cmds, m.lightsScreen.Init(), m.fetchLightsCmd())

	case messages.ErrorMsg:
		m.err = msg.Err

	case messages.RefreshMsg:
		cmds = append(cmds, m.fetchLightsCmd())
	}

	// Route to current screen
	switch m.screen {
	case ScreenSetup:
		var cmd tea.Cmd
		m.setupScreen, cmd = m.setupScreen.Update(msg)
		cmds = append(cmds, cmd)

	case ScreenLights:
		var cmd tea.Cmd
		m.lightsScreen, cmd = m.lightsScreen.Update(msg, m.client)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View renders the current screen
func (m Model) View() string {
	switch m.screen {
	case ScreenSetup:
		return m.setupScreen.View()
	case ScreenLights:
		return m.lightsScreen.View()
	default:
		return "Unknown screen"
	}
}

// fetchLightsCmd creates a command to fetch all lights from the bridge
func (m Model) fetchLightsCmd() tea.Cmd {
	client := m.client
	parent := m.ctx
	return func() tea.Msg {
		if client == nil {
			return messages.ErrorMsg{Err: config.ErrNoBridges}
		}

		ctx, cancel := context.WithTimeout(parent, fetchTimeout)
		defer cancel()

		lights, err := client.Lights(ctx)
		if err != nil {
			log.Error().Err(err).Msg("Failed to fetch lights")
			return messages.ErrorMsg{Err: err}
		}

		log.Debug().Int("count", len(lights)).Msg("Fetched lights")
		return messages.LightsFetchedMsg{Lights: lights}
	}
}
