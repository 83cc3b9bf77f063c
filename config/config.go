// Package config holds the cart.yaml configuration types and loader.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level cart.yaml configuration.
type Config struct {
	Agent     AgentRef `yaml:"agent"`
	Warehouse string   `yaml:"warehouse,omitempty"`
	Role      string   `yaml:"role,omitempty"`
	DSN       string   `yaml:"dsn,omitempty"`
	Output    string   `yaml:"output,omitempty"`
}

// AgentRef identifies the agent whose grants are derived.
type AgentRef struct {
	Database string `yaml:"database"`
	Schema   string `yaml:"schema"`
	Name     string `yaml:"name"`
}

// ParseConfig parses raw YAML bytes into a Config.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing cart config: %w", err)
	}
	return &cfg, nil
}

// LoadConfig reads and parses a cart.yaml file from the given path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading cart config %s: %w", path, err)
	}
	return ParseConfig(data)
}
