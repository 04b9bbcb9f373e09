// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package config handles oasgen generation configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// CurrentConfigVersion is the current version of the config file format.
const CurrentConfigVersion = 1

// Enum collision policies: merge collapses duplicate normalized variant
// names into aliases of the first occurrence; preserve keeps each literal as
// its own variant with a numeric suffix.
const (
	EnumCollisionMerge    = "merge"
	EnumCollisionPreserve = "preserve"
)

// Enum deserialization case policies.
const (
	EnumCaseSensitive   = "sensitive"
	EnumCaseInsensitive = "insensitive"
)

// Operations filters generation by operationId.
type Operations struct {
	Allow []string `yaml:"allow,omitempty"`
	Deny  []string `yaml:"deny,omitempty"`
}

// Config represents the oasgen.yaml generation configuration file.
type Config struct {
	Version                    int        `yaml:"version"`
	EnumCollision              string     `yaml:"enum_collision,omitempty"`
	EnumDeserializeCase        string     `yaml:"enum_deserialize_case,omitempty"`
	IncludeUnreferencedSchemas bool       `yaml:"include_unreferenced_schemas,omitempty"`
	Operations                 Operations `yaml:"operations,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Version:             CurrentConfigVersion,
		EnumCollision:       EnumCollisionMerge,
		EnumDeserializeCase: EnumCaseSensitive,
	}
}

// Load reads a Config from a file path and fills unset policies with their
// defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	cfg := Default()
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return nil, err
	}
	if cfg.EnumCollision == "" {
		cfg.EnumCollision = EnumCollisionMerge
	}
	if cfg.EnumDeserializeCase == "" {
		cfg.EnumDeserializeCase = EnumCaseSensitive
	}
	return cfg, nil
}

// Save writes the Config to a file path.
func (c *Config) Save(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	return enc.Encode(c)
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	if c.Version != CurrentConfigVersion {
		return errors.New("unsupported config version")
	}
	if c.EnumCollision != EnumCollisionMerge && c.EnumCollision != EnumCollisionPreserve {
		return fmt.Errorf("enum_collision must be %q or %q", EnumCollisionMerge, EnumCollisionPreserve)
	}
	if c.EnumDeserializeCase != EnumCaseSensitive && c.EnumDeserializeCase != EnumCaseInsensitive {
		return fmt.Errorf("enum_deserialize_case must be %q or %q", EnumCaseSensitive, EnumCaseInsensitive)
	}
	return nil
}

// OperationAllowed reports whether an operation passes the allow/deny
// filters. The deny list wins over the allow list.
func (c *Config) OperationAllowed(operationID string) bool {
	if slices.Contains(c.Operations.Deny, operationID) {
		return false
	}
	if len(c.Operations.Allow) > 0 {
		return slices.Contains(c.Operations.Allow, operationID)
	}
	return true
}
