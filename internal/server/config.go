package server

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config represents the complete server configuration.
type Config struct {
	Server  *ServerSettings  `hcl:"server,block"`
	Session *SessionSettings `hcl:"session,block"`
}

// ServerSettings contains server-level configuration.
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// SessionSettings configures the hands played between a pair of bots.
type SessionSettings struct {
	Hands                int   `hcl:"hands,optional"`
	Seed                 int64 `hcl:"seed,optional"`
	ActionTimeoutSeconds int   `hcl:"action_timeout_seconds,optional"`
}

// DefaultConfig returns the default server configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: &ServerSettings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "info",
		},
		Session: &SessionSettings{
			Hands:                1000,
			Seed:                 1,
			ActionTimeoutSeconds: 5,
		},
	}
}

// LoadConfig loads server configuration from an HCL file, falling back
// to defaults when the file does not exist.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	defaults := DefaultConfig()
	if config.Server == nil {
		config.Server = defaults.Server
	}
	if config.Session == nil {
		config.Session = defaults.Session
	}
	if config.Server.Address == "" {
		config.Server.Address = defaults.Server.Address
	}
	if config.Server.Port == 0 {
		config.Server.Port = defaults.Server.Port
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = defaults.Server.LogLevel
	}
	if config.Session.Hands == 0 {
		config.Session.Hands = defaults.Session.Hands
	}
	if config.Session.Seed == 0 {
		config.Session.Seed = defaults.Session.Seed
	}
	if config.Session.ActionTimeoutSeconds == 0 {
		config.Session.ActionTimeoutSeconds = defaults.Session.ActionTimeoutSeconds
	}

	return &config, nil
}

// Validate validates the server configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if c.Session.Hands < 1 {
		return fmt.Errorf("hands must be positive, got %d", c.Session.Hands)
	}
	if c.Session.ActionTimeoutSeconds < 1 {
		return fmt.Errorf("action timeout must be positive, got %d", c.Session.ActionTimeoutSeconds)
	}
	return nil
}

// Addr returns the full listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}
