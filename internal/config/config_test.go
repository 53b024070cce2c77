package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultNormalizes(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NoError(t, cfg.Normalize())
	assert.Equal(t, 120, cfg.APITimeout)
	assert.Equal(t, 3, cfg.RetryAttempts)
	assert.Equal(t, 2, cfg.RepairAttempts)
	assert.Equal(t, "gemini", cfg.Roles[RoleProposer].Provider)
	assert.Equal(t, "zhipu", cfg.Roles[RoleAuditor].Provider)
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	roles := func() map[string]RoleConfig {
		return map[string]RoleConfig{
			RoleProposer: {Provider: "gemini", Model: "m1"},
			RoleAuditor:  {Provider: "zhipu", Model: "m2"},
		}
	}

	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "zero numerics get defaults",
			cfg:  Config{Roles: roles()},
		},
		{
			name: "negative timeout gets default",
			cfg:  Config{Roles: roles(), APITimeout: -5},
		},
		{
			name:    "missing proposer role",
			cfg:     Config{Roles: map[string]RoleConfig{RoleAuditor: {Provider: "zhipu", Model: "m"}}},
			wantErr: "roles.proposer is required",
		},
		{
			name: "role without provider",
			cfg: Config{Roles: map[string]RoleConfig{
				RoleProposer: {Model: "m"},
				RoleAuditor:  {Provider: "zhipu", Model: "m"},
			}},
			wantErr: "roles.proposer.provider is required",
		},
		{
			name: "role without model",
			cfg: Config{Roles: map[string]RoleConfig{
				RoleProposer: {Provider: "gemini", Model: "m"},
				RoleAuditor:  {Provider: "zhipu"},
			}},
			wantErr: "roles.auditor.model is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.cfg.Normalize()
			if tt.wantErr != "" {
				require.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 120, tt.cfg.APITimeout)
			assert.Equal(t, 3, tt.cfg.RetryAttempts)
			assert.Equal(t, 2, tt.cfg.RepairAttempts)
			assert.Equal(t, "output", tt.cfg.OutputDir)
		})
	}
}

func TestFallbackModel(t *testing.T) {
	t.Parallel()

	cfg := Config{FallbackModels: map[string]string{"gemini": "gemini-pro", "empty": ""}}

	m, ok := cfg.FallbackModel("gemini")
	assert.True(t, ok)
	assert.Equal(t, "gemini-pro", m)

	_, ok = cfg.FallbackModel("empty")
	assert.False(t, ok)

	_, ok = cfg.FallbackModel("unknown")
	assert.False(t, ok)
}

func TestValidateSettings(t *testing.T) {
	t.Parallel()

	valid := map[string]any{
		"roles": map[string]any{
			"proposer": map[string]any{"provider": "gemini", "model": "gemini-latest-flash"},
			"auditor":  map[string]any{"provider": "zhipu", "model": "glm-4-flash"},
		},
		"fallback_models": map[string]any{"gemini": "gemini-pro"},
		"api_timeout":     120,
		"retry_attempts":  3,
		"repair_attempts": 2,
		"output_dir":      "output",
	}
	require.NoError(t, ValidateSettings(valid))

	tests := []struct {
		name   string
		mutate func(map[string]any)
	}{
		{
			name:   "roles missing",
			mutate: func(m map[string]any) { delete(m, "roles") },
		},
		{
			name: "role provider wrong type",
			mutate: func(m map[string]any) {
				m["roles"].(map[string]any)["proposer"].(map[string]any)["provider"] = 42
			},
		},
		{
			name:   "api_timeout wrong type",
			mutate: func(m map[string]any) { m["api_timeout"] = "soon" },
		},
		{
			name:   "negative retry_attempts",
			mutate: func(m map[string]any) { m["retry_attempts"] = -1 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			settings := map[string]any{
				"roles": map[string]any{
					"proposer": map[string]any{"provider": "gemini", "model": "gemini-latest-flash"},
					"auditor":  map[string]any{"provider": "zhipu", "model": "glm-4-flash"},
				},
				"api_timeout":     120,
				"retry_attempts":  3,
				"repair_attempts": 2,
			}
			tt.mutate(settings)
			assert.Error(t, ValidateSettings(settings))
		})
	}
}
