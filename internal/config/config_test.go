// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSaveRoundtrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "oasgen.yaml")

	cfg := &Config{
		Version:                    CurrentConfigVersion,
		EnumCollision:              EnumCollisionPreserve,
		EnumDeserializeCase:        EnumCaseInsensitive,
		IncludeUnreferencedSchemas: true,
		Operations: Operations{
			Allow: []string{"listPets"},
			Deny:  []string{"deletePet"},
		},
	}
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoad_FillsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "oasgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: 1\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, EnumCollisionMerge, cfg.EnumCollision)
	assert.Equal(t, EnumCaseSensitive, cfg.EnumDeserializeCase)
	assert.False(t, cfg.IncludeUnreferencedSchemas)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid default", func(c *Config) {}, ""},
		{"bad version", func(c *Config) { c.Version = 99 }, "unsupported config version"},
		{"bad collision", func(c *Config) { c.EnumCollision = "panic" }, "enum_collision"},
		{"bad case", func(c *Config) { c.EnumDeserializeCase = "maybe" }, "enum_deserialize_case"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestOperationAllowed(t *testing.T) {
	cfg := Default()
	assert.True(t, cfg.OperationAllowed("anything"))

	cfg.Operations.Deny = []string{"deletePet"}
	assert.False(t, cfg.OperationAllowed("deletePet"))
	assert.True(t, cfg.OperationAllowed("listPets"))

	cfg.Operations.Allow = []string{"listPets"}
	assert.True(t, cfg.OperationAllowed("listPets"))
	assert.False(t, cfg.OperationAllowed("createPet"), "allow list restricts when set")

	cfg.Operations.Deny = append(cfg.Operations.Deny, "listPets")
	assert.False(t, cfg.OperationAllowed("listPets"), "deny wins over allow")
}
