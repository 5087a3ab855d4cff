package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/angristan/philipshue/internal/api"
	"github.com/angristan/philipshue/internal/config"
	"github.com/angristan/philipshue/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	demoFlag := flag.Bool("demo", false, "Run against simulated lights instead of a bridge")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	logFile := flag.String("log-file", "", "Log file path (defaults to hue.log next to the config file)")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("hue", api.Version)
		return
	}

	// Check for demo mode
	demoMode := *demoFlag || os.Getenv("HUE_DEMO") != ""

	// The terminal belongs to the UI, so logs go to a file
	closeLog, err := setupLogging(*logLevel, *logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	log.Info().Str("version", api.Version).Bool("demo", demoMode).Msg("Starting")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load config")
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Create and run the application
	model := tui.NewModel(cfg, demoMode)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		log.Error().Err(err).Msg("Application error")
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}
}

func setupLogging(level, path string) (func(), error) {
	if path == "" {
		configPath, err := config.Path()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(filepath.Dir(configPath), "hue.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, err
	}

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        f,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
		NoColor:    true,
	})

	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	return func() { _ = f.Close() }, nil
}
