// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package internal contains the main application logic for the CLI.
package internal

import (
	"context"

	"github.com/dacolabs/oasgen/internal/commands"
	"github.com/dacolabs/oasgen/internal/emit"
	"github.com/dacolabs/oasgen/internal/emit/gotypes"
	"github.com/dacolabs/oasgen/internal/emit/markdown"
)

func registerEmitters() emit.Register {
	emitters := make(emit.Register)
	emitters["gotypes"] = &gotypes.Emitter{}
	emitters["markdown"] = &markdown.Emitter{}
	return emitters
}

// Run is the main application logic, extracted for testability.
// It accepts OS dependencies as parameters (context, env lookup).
func Run(ctx context.Context, getenv func(string) string) error {
	emitters := registerEmitters()
	rootCmd := commands.NewRootCmd(emitters)
	return rootCmd.ExecuteContext(ctx)
}
