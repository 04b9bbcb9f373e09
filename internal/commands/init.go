// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dacolabs/oasgen/internal/config"
	"github.com/dacolabs/oasgen/internal/prompts"
)

type initOptions struct {
	enumCollision       string
	enumCase            string
	includeUnreferenced bool
	nonInteractive      bool
}

func newInitCmd() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a generation config file",
		Long:  `Write an oasgen.yaml config file with the chosen generation policies.`,
		Example: `  # Interactive mode
  oasgen init

  # Non-interactive
  oasgen init --enum-collision preserve --non-interactive`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(opts)
		},
	}

	cmd.Flags().StringVar(&opts.enumCollision, "enum-collision", config.EnumCollisionMerge, "Enum name collision policy (merge or preserve)")
	cmd.Flags().StringVar(&opts.enumCase, "enum-case", config.EnumCaseSensitive, "Enum deserialization case (sensitive or insensitive)")
	cmd.Flags().BoolVar(&opts.includeUnreferenced, "include-unreferenced", false, "Generate types no operation references")
	cmd.Flags().BoolVar(&opts.nonInteractive, "non-interactive", false, "Run without prompts")

	return cmd
}

func runInit(opts *initOptions) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	cfgPath := filepath.Join(cwd, defaultConfigFile)
	if _, err := os.Stat(cfgPath); err == nil {
		return errors.New("oasgen.yaml already exists")
	}

	if !opts.nonInteractive {
		if err := prompts.RunInitForm(&opts.enumCollision, &opts.enumCase, &opts.includeUnreferenced); err != nil {
			return err
		}
	}

	cfg := config.Config{
		Version:                    config.CurrentConfigVersion,
		EnumCollision:              opts.enumCollision,
		EnumDeserializeCase:        opts.enumCase,
		IncludeUnreferencedSchemas: opts.includeUnreferenced,
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := cfg.Save(cfgPath); err != nil {
		return fmt.Errorf("failed to write oasgen.yaml: %w", err)
	}

	prompts.PrintResult([]prompts.ResultField{
		{Label: "Config", Value: cfgPath},
	}, "Initialization completed")

	return nil
}
