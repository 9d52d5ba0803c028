package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"headlesselect/internal/eventbus"
)

// DefaultFileName is the config file looked up in the working directory
const DefaultFileName = ".headlesselect.toml"

// Config represents the application configuration
type Config struct {
	Version      int        `toml:"version"`
	Title        string     `toml:"title"`
	Placeholder  string     `toml:"placeholder"`
	StartOpen    bool       `toml:"start_open"`
	ExitOnSelect bool       `toml:"exit_on_select"`
	Keys         KeyConfig  `toml:"keys"`
	UISettings   UISettings `toml:"ui"`
}

// KeyConfig maps actions to key names as reported by bubbletea
// (for example "down", "ctrl+n", "enter", " ").
type KeyConfig struct {
	Down   []string `toml:"down"`
	Up     []string `toml:"up"`
	Select []string `toml:"select"`
	Close  []string `toml:"close"`
	Toggle []string `toml:"toggle"`
	Quit   []string `toml:"quit"`
	Help   []string `toml:"help"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	Width    int  `toml:"width"`
	ShowHelp bool `toml:"show_help"`
}

// ConfigService handles configuration management
type ConfigService interface {
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// configService is the concrete implementation
type configService struct {
	bus eventbus.EventBus
}

// NewConfigService creates a new config service
func NewConfigService() ConfigService {
	return &configService{}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(bus eventbus.EventBus) ConfigService {
	return &configService{bus: bus}
}

// LoadFromPath loads configuration from a specific path. Values missing
// from the file keep their defaults.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: path})
	}

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := config.TOML()
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: path})
	}

	return nil
}

// TOML encodes the config as a TOML document
func (c *Config) TOML() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// Parse decodes TOML config data on top of the defaults
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	cfg.Keys = KeyConfig{}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.fillKeys()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the UI cannot work with
func (c *Config) Validate() error {
	if c.UISettings.Width < 0 {
		return fmt.Errorf("invalid ui.width %d: must not be negative", c.UISettings.Width)
	}
	return nil
}

// fillKeys restores default bindings for actions the file left empty, so
// a partial [keys] table cannot unbind navigation.
func (c *Config) fillKeys() {
	d := DefaultKeys()
	fill := func(dst *[]string, def []string) {
		if len(*dst) == 0 {
			*dst = def
		}
	}
	fill(&c.Keys.Down, d.Down)
	fill(&c.Keys.Up, d.Up)
	fill(&c.Keys.Select, d.Select)
	fill(&c.Keys.Close, d.Close)
	fill(&c.Keys.Toggle, d.Toggle)
	fill(&c.Keys.Quit, d.Quit)
	fill(&c.Keys.Help, d.Help)
}

// DefaultKeys returns the default key bindings
func DefaultKeys() KeyConfig {
	return KeyConfig{
		Down:   []string{"down", "ctrl+n"},
		Up:     []string{"up", "ctrl+p"},
		Select: []string{"enter"},
		Close:  []string{"esc"},
		Toggle: []string{"enter", " "},
		Quit:   []string{"ctrl+c", "q"},
		Help:   []string{"?"},
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:      1,
		Title:        "Select an item",
		Placeholder:  "Search...",
		StartOpen:    false,
		ExitOnSelect: true,
		Keys:         DefaultKeys(),
		UISettings: UISettings{
			Width:    40,
			ShowHelp: true,
		},
	}
}
