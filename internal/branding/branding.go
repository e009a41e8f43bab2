// Package branding provides compile-time identity values for the CLI.
//
// The values live in branding.yaml next to this file and are baked into the
// binary with //go:embed, so a fork only has to edit one file.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName       string `yaml:"cli_name"`
	DisplayName   string `yaml:"display_name"`
	Description   string `yaml:"description"`
	EnvPrefix     string `yaml:"env_prefix"`
	DefaultConfig string `yaml:"default_config"`
	MasterAgent   string `yaml:"master_agent"`
}

func load() {
	once.Do(func() {
		// Set hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:       "n8n-bmad",
			DisplayName:   "n8n-BMAD",
			Description:   "AI-powered methodology framework for n8n workflow automation teams",
			EnvPrefix:     "N8N_BMAD",
			DefaultConfig: "./src/core/module.yaml",
			MasterAgent:   "n8n-master",
		}
		// Overlay with embedded YAML values.
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "n8n-bmad").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name (e.g., "n8n-BMAD").
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// EnvPrefix returns the environment variable prefix (e.g., "N8N_BMAD").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// DefaultConfig returns the module config path used when --config is not given.
func DefaultConfig() string { load(); return defaults.DefaultConfig }

// MasterAgent returns the id of the agent that owns the routing table.
func MasterAgent() string { load(); return defaults.MasterAgent }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("config") → "N8N_BMAD_CONFIG".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
