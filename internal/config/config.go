// Package config provides configuration loading and management for consilium.
package config

import "fmt"

// Role names recognized in the roles map.
const (
	RoleProposer = "proposer"
	RoleAuditor  = "auditor"
)

// Config is the root configuration.
type Config struct {
	Roles          map[string]RoleConfig `json:"roles"                     mapstructure:"roles"`
	FallbackModels map[string]string     `json:"fallback_models,omitempty" mapstructure:"fallback_models"`
	APITimeout     int                   `json:"api_timeout"               mapstructure:"api_timeout"`
	RetryAttempts  int                   `json:"retry_attempts"            mapstructure:"retry_attempts"`
	RepairAttempts int                   `json:"repair_attempts"           mapstructure:"repair_attempts"`
	OutputDir      string                `json:"output_dir,omitempty"      mapstructure:"output_dir"`
}

// RoleConfig binds a debate role to a provider and model.
type RoleConfig struct {
	Provider string `json:"provider" mapstructure:"provider"`
	Model    string `json:"model"    mapstructure:"model"`
}

// Default returns the built-in configuration used when no config file exists.
// The values mirror the documented defaults: Gemini flash drives the proposer,
// GLM flash drives the auditor, 120s per call, 3 attempts each way.
func Default() Config {
	return Config{
		Roles: map[string]RoleConfig{
			RoleProposer: {Provider: "gemini", Model: "gemini-latest-flash"},
			RoleAuditor:  {Provider: "zhipu", Model: "glm-4-flash"},
		},
		FallbackModels: map[string]string{
			"gemini": "gemini-pro",
			"zhipu":  "glm-4",
		},
		APITimeout:     120,
		RetryAttempts:  3,
		RepairAttempts: 2,
		OutputDir:      "output",
	}
}

// Normalize fills unset numeric fields from defaults and checks role coverage.
func (c *Config) Normalize() error {
	def := Default()
	if c.APITimeout <= 0 {
		c.APITimeout = def.APITimeout
	}
	if c.RetryAttempts <= 0 {
		c.RetryAttempts = def.RetryAttempts
	}
	if c.RepairAttempts <= 0 {
		c.RepairAttempts = def.RepairAttempts
	}
	if c.OutputDir == "" {
		c.OutputDir = def.OutputDir
	}
	for _, role := range []string{RoleProposer, RoleAuditor} {
		rc, ok := c.Roles[role]
		if !ok {
			return fmt.Errorf("roles.%s is required", role)
		}
		if rc.Provider == "" {
			return fmt.Errorf("roles.%s.provider is required", role)
		}
		if rc.Model == "" {
			return fmt.Errorf("roles.%s.model is required", role)
		}
	}
	return nil
}

// FallbackModel returns the fallback model configured for a provider id, if any.
func (c Config) FallbackModel(providerID string) (string, bool) {
	m, ok := c.FallbackModels[providerID]
	if !ok || m == "" {
		return "", false
	}
	return m, true
}
