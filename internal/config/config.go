package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"invoicesearch/internal/eventbus"
	"invoicesearch/internal/searchclient"
)

// Config represents the application configuration
type Config struct {
	Version       int            `toml:"version"`
	Endpoint      string         `toml:"endpoint"`
	Timeout       Duration       `toml:"timeout"`        // 0 disables the request timeout
	InvoiceStatus string         `toml:"invoice_status"` // initial status of the invoice being edited
	UISettings    UISettings     `toml:"ui"`
	Dialogs       []DialogConfig `toml:"dialogs"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ImageProtocol string `toml:"image_protocol"` // halfblocks, kitty, iterm2, sixel or none
	ToastSeconds  int    `toml:"toast_seconds"`
	Mouse         bool   `toml:"mouse"`
}

// DialogConfig describes one search dialog reachable from the form
type DialogConfig struct {
	Key     string   `toml:"key"` // key binding that opens the dialog
	Title   string   `toml:"title"`
	Table   string   `toml:"table"`
	Field   string   `toml:"field"`
	Fields  []string `toml:"fields"`
	Message string   `toml:"message"`
	// FocusOnClose names the form field that takes focus when the dialog closes
	FocusOnClose string            `toml:"focus_on_close"`
	Mapping      map[string]string `toml:"mapping"` // result field -> form field
}

// Duration is a time.Duration that reads and writes as "10s" in TOML
type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = 0
		return nil
	}
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(b), err)
	}
	*d = Duration(v)
	return nil
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	LoadWith(apply func(*Config)) (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a config service rooted in the user config dir
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	return &configService{
		filePath: filepath.Join(configDir, "invoicesearch", "config.toml"),
	}
}

// NewConfigServiceWithBus creates a config service with event bus support.
// An empty path keeps the default location.
func NewConfigServiceWithBus(bus eventbus.EventBus, path string) ConfigService {
	cs := NewConfigService().(*configService)
	cs.bus = bus
	if path != "" {
		cs.filePath = path
	}
	return cs
}

// Path returns the file Load and Save operate on
func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file, falling back to defaults when missing
func (cs *configService) Load() (*Config, error) {
	return cs.LoadWith(nil)
}

// LoadWith loads like Load and lets apply adjust the result, e.g. with
// command line overrides, before ConfigLoaded is announced
func (cs *configService) LoadWith(apply func(*Config)) (*Config, error) {
	var cfg *Config
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		cfg = DefaultConfig()
	} else {
		cfg, err = cs.LoadFromPath(cs.filePath)
		if err != nil {
			return nil, err
		}
	}
	if apply != nil {
		apply(cfg)
	}

	if cs.bus != nil {
		keys := make([]string, 0, len(cfg.Dialogs))
		for _, d := range cfg.Dialogs {
			keys = append(keys, d.Key)
		}
		cs.bus.Publish(eventbus.ConfigLoadedEvent{
			Endpoint: cfg.Endpoint,
			Dialogs:  keys,
		})
	}

	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	cfg.Dialogs = nil
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if len(cfg.Dialogs) == 0 {
		cfg.Dialogs = DefaultConfig().Dialogs
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks that every dialog can issue a request
func (c *Config) Validate() error {
	seen := make(map[string]bool, len(c.Dialogs))
	for i, d := range c.Dialogs {
		if d.Table == "" || d.Field == "" {
			return fmt.Errorf("dialog %d: table and field are required", i)
		}
		if d.Key == "" {
			return fmt.Errorf("dialog %s: key is required", d.Table)
		}
		if seen[d.Key] {
			return fmt.Errorf("dialog %s: key %q already bound", d.Table, d.Key)
		}
		seen[d.Key] = true
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:       1,
		Endpoint:      searchclient.DefaultEndpoint,
		InvoiceStatus: "draft",
		UISettings: UISettings{
			ImageProtocol: "halfblocks",
			ToastSeconds:  3,
			Mouse:         true,
		},
		Dialogs: []DialogConfig{
			{
				Key:          "ctrl+p",
				Title:        "Producto",
				Table:        "products",
				Field:        "name",
				Fields:       []string{"photourl", "pid_prefix", "pid", "name", "price"},
				FocusOnClose: "code",
				Mapping: map[string]string{
					"pid":   "code",
					"name":  "description",
					"price": "price",
				},
			},
			{
				Key:          "ctrl+k",
				Title:        "Cliente",
				Table:        "customers",
				Field:        "name",
				Fields:       []string{"id", "name", "taxid"},
				FocusOnClose: "customer",
				Mapping: map[string]string{
					"name":  "customer",
					"taxid": "taxid",
				},
			},
		},
	}
}
