package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// appName names the config directory and prefixes the device type
const appName = "philipshue"

// BridgeConfig stores connection details for a Hue bridge
type BridgeConfig struct {
	// Base URL of the bridge, e.g. https://192.168.1.20
	URL string `json:"url"`
	// Username issued by the bridge at pairing
	Username string `json:"username"`
	// Unique bridge identifier; may be empty for manually entered bridges
	BridgeID string `json:"bridge_id,omitempty"`
}

// Key identifies the bridge: its id when known, otherwise its URL
func (b BridgeConfig) Key() string {
	if b.BridgeID != "" {
		return strings.ToLower(b.BridgeID)
	}
	return b.URL
}

// Config stores all application configuration
type Config struct {
	// List of configured bridges
	Bridges []BridgeConfig `json:"bridges"`
	// Key of the last used bridge
	LastBridgeID string `json:"last_bridge_id,omitempty"`
	// Label presented when pairing; stable for this installation
	DeviceType string `json:"device_type,omitempty"`
}

var (
	ErrBridgeNotFound = errors.New("bridge not found")
	ErrNoBridges      = errors.New("no bridges configured")
)

// configDir returns the configuration directory path
func configDir() (string, error) {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, appName), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// Path returns the full path to the config file
func Path() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the configuration from disk
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to disk. The file holds access tokens and
// is created readable by the owner only.
func (c *Config) Save() error {
	dir, err := configDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := Path()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

// EnsureDeviceType returns the stored device type, generating one on first
// use. Changing it would create a new pairing on every bridge, so it is only
// ever generated once.
func (c *Config) EnsureDeviceType() string {
	if c.DeviceType == "" {
		suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
		c.DeviceType = appName + "#" + suffix
	}
	return c.DeviceType
}

// AddBridge adds or updates a bridge configuration
func (c *Config) AddBridge(bridge BridgeConfig) {
	for i, b := range c.Bridges {
		if b.Key() == bridge.Key() {
			c.Bridges[i] = bridge
			return
		}
	}

	c.Bridges = append(c.Bridges, bridge)
}

// GetBridge returns the bridge configuration by key
func (c *Config) GetBridge(key string) (*BridgeConfig, error) {
	for i := range c.Bridges {
		if c.Bridges[i].Key() == strings.ToLower(key) || c.Bridges[i].URL == key {
			return &c.Bridges[i], nil
		}
	}
	return nil, ErrBridgeNotFound
}

// GetLastBridge returns the last used bridge or the first available
func (c *Config) GetLastBridge() (*BridgeConfig, error) {
	if len(c.Bridges) == 0 {
		return nil, ErrNoBridges
	}

	if c.LastBridgeID != "" {
		bridge, err := c.GetBridge(c.LastBridgeID)
		if err == nil {
			return bridge, nil
		}
	}

	return &c.Bridges[0], nil
}

// RemoveBridge removes a bridge by key
func (c *Config) RemoveBridge(key string) {
	for i, b := range c.Bridges {
		if b.Key() == strings.ToLower(key) || b.URL == key {
			c.Bridges = append(c.Bridges[:i], c.Bridges[i+1:]...)
			return
		}
	}
}

// HasBridges returns true if at least one bridge is configured
func (c *Config) HasBridges() bool {
	return len(c.Bridges) > 0
}
