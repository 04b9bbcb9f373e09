// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dacolabs/oasgen/internal/generate"
	"github.com/dacolabs/oasgen/internal/oasload"
	"github.com/dacolabs/oasgen/internal/prompts"
)

type inspectOptions struct {
	spec       string
	configPath string
	usage      bool
}

func newInspectCmd() *cobra.Command {
	opts := &inspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show the types a document would generate",
		Long: `Show the types a document would generate, without writing any output.
Useful for checking names, union shapes, and unreferenced schemas before
committing to generated code.`,
		Example: `  # List generated types
  oasgen inspect --spec api.yaml

  # Include serialization directions
  oasgen inspect --spec api.yaml --usage`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.spec, "spec", "s", "", "Path to the OpenAPI document (JSON or YAML)")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to the generation config file")
	cmd.Flags().BoolVar(&opts.usage, "usage", false, "Show request/response usage per type")

	return cmd
}

func runInspect(cmd *cobra.Command, opts *inspectOptions) error {
	format := "" // no emitter involved; inspect only runs the pipeline
	if err := prompts.RunGenerateForm(&opts.spec, &format, nil); err != nil {
		return err
	}

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}

	doc, err := oasload.New().LoadFile(cmd.Context(), opts.spec)
	if err != nil {
		return err
	}

	res, err := generate.Run(doc, cfg)
	if err != nil {
		return err
	}

	for _, w := range res.Warnings {
		prompts.PrintWarning(w.String())
	}

	fmt.Println()
	for i := range res.Types {
		t := &res.Types[i]
		line := fmt.Sprintf("%-40s %s", t.Name, t.Kind)
		if opts.usage {
			if u := res.Usage[t.Name]; u != nil {
				switch {
				case u.Request && u.Response:
					line += "  request+response"
				case u.Request:
					line += "  request"
				case u.Response:
					line += "  response"
				}
			}
		}
		fmt.Println(line)
	}

	prompts.PrintResult([]prompts.ResultField{
		{Label: "Document", Value: opts.spec},
		{Label: "Operations", Value: fmt.Sprintf("%d", len(res.Operations))},
		{Label: "Types", Value: summaryLine(res)},
	}, "")

	return nil
}
