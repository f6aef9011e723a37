package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"godotmcp/internal/logging"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const APP_NAME = "godotmcp" // application name used for config directory

// Defaults mirror what the Godot plugin side expects out of the box.
const (
	DefaultHTTPListen     = "localhost:8081"
	DefaultCommandTimeout = 30 * time.Second
	DefaultRelayHost      = "localhost"
	DefaultRelayPort      = 8080
	DefaultRelayEndpoint  = "/mcp-data"
	DefaultRelayTimeout   = 10 * time.Second
	DefaultLogLevel       = "warn"
)

// DefaultExecutables is the ordered list of Godot binary names searched on PATH.
var DefaultExecutables = []string{"godot", "godot4", "Godot", "Godot_v4.0-stable_linux.x86_64"}

// Config holds user configuration for godotmcp.
type Config struct {
	// HTTPListen is the address the REST transport binds to.
	HTTPListen string `yaml:"http_listen"`
	// ProjectPath, when set, is bound at startup exactly as set_project would.
	ProjectPath    string        `yaml:"project_path,omitempty"`
	CommandTimeout time.Duration `yaml:"command_timeout"`
	Executables    []string      `yaml:"executables"`
	RelayHost      string        `yaml:"relay_host"`
	RelayPort      int           `yaml:"relay_port"`
	RelayEndpoint  string        `yaml:"relay_endpoint"`
	RelayTimeout   time.Duration `yaml:"relay_timeout"`
	LogLevel       string        `yaml:"log_level"`
}

// ConfigPath returns the standard config file path for the current platform.
// It does not log, so it is safe to call before logging is configured.
func ConfigPath() string {
	return filepath.Join(xdg.ConfigHome, APP_NAME, "config.yaml")
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	executables := make([]string, len(DefaultExecutables))
	copy(executables, DefaultExecutables)

	return Config{
		HTTPListen:     DefaultHTTPListen,
		CommandTimeout: DefaultCommandTimeout,
		Executables:    executables,
		RelayHost:      DefaultRelayHost,
		RelayPort:      DefaultRelayPort,
		RelayEndpoint:  DefaultRelayEndpoint,
		RelayTimeout:   DefaultRelayTimeout,
		LogLevel:       DefaultLogLevel,
	}
}

// Load reads the config at path. An empty path means the standard location.
// A missing file is not an error: defaults are returned.
func Load(path string) (*Config, error) {
	if strings.TrimSpace(path) == "" {
		path = ConfigPath()
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		logging.Debug("No config file, using defaults", "path", path)
		cfg := DefaultConfig()
		return &cfg, nil
	}

	return LoadFrom(path)
}

// LoadFrom loads config from a specific path. Fields absent from the file keep
// their default values.
func LoadFrom(path string) (*Config, error) {
	logging.Info("Reading config file", "path", path)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	cfg := DefaultConfig()
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return &cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.HTTPListen) == "" {
		return fmt.Errorf("http_listen cannot be empty")
	}
	if c.CommandTimeout <= 0 {
		return fmt.Errorf("command_timeout must be positive, got %s", c.CommandTimeout)
	}
	if len(c.Executables) == 0 {
		return fmt.Errorf("executables must list at least one binary name")
	}
	if c.RelayPort <= 0 || c.RelayPort > 65535 {
		return fmt.Errorf("relay_port out of range: %d", c.RelayPort)
	}
	if !strings.HasPrefix(c.RelayEndpoint, "/") {
		return fmt.Errorf("relay_endpoint must start with '/': %q", c.RelayEndpoint)
	}
	if c.RelayTimeout <= 0 {
		return fmt.Errorf("relay_timeout must be positive, got %s", c.RelayTimeout)
	}
	return nil
}

// SaveTo writes the config to a specific path
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	defer enc.Close()

	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Marshal renders the config as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
