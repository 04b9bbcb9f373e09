// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package commands contains all CLI command definitions.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/dacolabs/oasgen/internal/emit"
)

// NewRootCmd creates and returns the root command for the CLI.
func NewRootCmd(emitters emit.Register) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "oasgen",
		Short:        "Generate typed models from OpenAPI documents",
		SilenceUsage: true,
	}

	registerInitCmd(rootCmd)
	registerGenerateCmd(rootCmd, emitters)
	registerInspectCmd(rootCmd)
	registerVersionCmd(rootCmd)

	return rootCmd
}

func registerGenerateCmd(parent *cobra.Command, emitters emit.Register) {
	parent.AddCommand(newGenerateCmd(emitters))
}

func registerInspectCmd(parent *cobra.Command) {
	parent.AddCommand(newInspectCmd())
}

func registerInitCmd(parent *cobra.Command) {
	parent.AddCommand(newInitCmd())
}

func registerVersionCmd(parent *cobra.Command) {
	parent.AddCommand(newVersionCmd())
}
