// Package config handles global Talon configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Env variable names recognized as overrides. They sit between config file
// values and command-line flags in precedence.
const (
	EnvServerURL    = "TRILIUM_SERVER"
	EnvToken        = "TRILIUM_TOKEN"
	EnvParentNoteID = "TRILIUM_PARENT_NOTE"
)

// DefaultParentNoteID is the Trilium root note.
const DefaultParentNoteID = "root"

// Server describes one Trilium server entry.
type Server struct {
	// URL is the server base URL (e.g. http://localhost:8080).
	URL string `toml:"url"`

	// Token is the ETAPI authentication token.
	Token string `toml:"token"`

	// ParentNoteID is the default note migrations are created under.
	ParentNoteID string `toml:"parent_note_id"`
}

// Config represents the global Talon configuration.
type Config struct {
	// DefaultServer is the name of the default server (from Servers).
	DefaultServer string `toml:"default_server"`

	// Servers is a map of server names to connection settings.
	Servers map[string]Server `toml:"servers"`
}

// DefaultConfigPath returns the standard config file location.
func DefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config directory: %w", err)
	}
	return filepath.Join(configDir, "talon", "config.toml"), nil
}

// Load reads the config file at path. A missing file yields an empty
// config, not an error; servers can come entirely from flags and env.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// GetServer returns the named server entry.
func (c *Config) GetServer(name string) (Server, error) {
	s, ok := c.Servers[name]
	if !ok {
		return Server{}, fmt.Errorf("server '%s' not found in config", name)
	}
	return s, nil
}

// GetDefaultServer returns the default server entry, if configured.
func (c *Config) GetDefaultServer() (Server, error) {
	if c.DefaultServer == "" {
		return Server{}, fmt.Errorf("no default_server configured")
	}
	return c.GetServer(c.DefaultServer)
}

// Resolve produces the effective server settings: the named (or default)
// config entry, overridden by environment variables, overridden by the
// explicit flag values. Missing pieces stay empty for the caller to
// validate.
func (c *Config) Resolve(serverName, flagURL, flagToken, flagParent string) (Server, error) {
	var s Server
	var err error
	switch {
	case serverName != "":
		s, err = c.GetServer(serverName)
		if err != nil {
			return Server{}, err
		}
	case c.DefaultServer != "":
		s, err = c.GetDefaultServer()
		if err != nil {
			return Server{}, err
		}
	}

	if v := os.Getenv(EnvServerURL); v != "" {
		s.URL = v
	}
	if v := os.Getenv(EnvToken); v != "" {
		s.Token = v
	}
	if v := os.Getenv(EnvParentNoteID); v != "" {
		s.ParentNoteID = v
	}

	if flagURL != "" {
		s.URL = flagURL
	}
	if flagToken != "" {
		s.Token = flagToken
	}
	if flagParent != "" {
		s.ParentNoteID = flagParent
	}

	if s.ParentNoteID == "" {
		s.ParentNoteID = DefaultParentNoteID
	}
	return s, nil
}
