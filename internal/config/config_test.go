package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigPath(t *testing.T) {
	path := ConfigPath()

	assert.Equal(t, "config.yaml", filepath.Base(path))
	assert.Equal(t, APP_NAME, filepath.Base(filepath.Dir(path)))
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, DefaultHTTPListen, cfg.HTTPListen)
	assert.Equal(t, 30*time.Second, cfg.CommandTimeout)
	assert.Equal(t, []string{"godot", "godot4", "Godot", "Godot_v4.0-stable_linux.x86_64"}, cfg.Executables)
	assert.Equal(t, "localhost", cfg.RelayHost)
	assert.Equal(t, 8080, cfg.RelayPort)
	assert.Equal(t, "/mcp-data", cfg.RelayEndpoint)
	assert.Empty(t, cfg.ProjectPath)
	require.NoError(t, cfg.Validate())

	// Mutating a default must not leak into the package-level list.
	cfg.Executables[0] = "changed"
	assert.Equal(t, "godot", DefaultExecutables[0])
}

func TestConfigSaveLoad(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.yaml")

	original := DefaultConfig()
	original.HTTPListen = "127.0.0.1:9090"
	original.ProjectPath = "/games/platformer"
	original.CommandTimeout = 45 * time.Second
	original.Executables = []string{"godot4"}

	require.NoError(t, original.SaveTo(configPath))

	loaded, err := LoadFrom(configPath)
	require.NoError(t, err)
	assert.Equal(t, original, *loaded)
}

func TestLoadFrom_PartialFileKeepsDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("relay_port: 9000\ncommand_timeout: 5s\n"), 0600))

	cfg, err := LoadFrom(configPath)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.RelayPort)
	assert.Equal(t, 5*time.Second, cfg.CommandTimeout)
	assert.Equal(t, DefaultHTTPListen, cfg.HTTPListen)
	assert.Equal(t, DefaultExecutables, cfg.Executables)
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), *cfg)
}

func TestConfigFilePermissions(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	require.NoError(t, cfg.SaveTo(configPath))

	info, err := os.Stat(configPath)
	require.NoError(t, err)
	if info.Mode()&0077 != 0 {
		t.Errorf("Config file should not be readable by group/others, got mode %o", info.Mode())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"empty listen", func(c *Config) { c.HTTPListen = " " }, "http_listen"},
		{"zero timeout", func(c *Config) { c.CommandTimeout = 0 }, "command_timeout"},
		{"no executables", func(c *Config) { c.Executables = nil }, "executables"},
		{"port too large", func(c *Config) { c.RelayPort = 70000 }, "relay_port"},
		{"relative endpoint", func(c *Config) { c.RelayEndpoint = "mcp-data" }, "relay_endpoint"},
		{"zero relay timeout", func(c *Config) { c.RelayTimeout = 0 }, "relay_timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfigErrorHandling(t *testing.T) {
	t.Run("load non-existent file", func(t *testing.T) {
		_, err := LoadFrom("/non/existent/file.yaml")
		assert.Error(t, err)
	})

	t.Run("load invalid YAML", func(t *testing.T) {
		invalidFile := filepath.Join(t.TempDir(), "invalid.yaml")
		require.NoError(t, os.WriteFile(invalidFile, []byte("relay_port: [unclosed"), 0600))

		_, err := LoadFrom(invalidFile)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config file")
	})

	t.Run("load invalid values", func(t *testing.T) {
		badFile := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(badFile, []byte("relay_port: -1\n"), 0600))

		_, err := LoadFrom(badFile)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "relay_port")
	})
}
