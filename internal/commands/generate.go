// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dacolabs/oasgen/internal/config"
	"github.com/dacolabs/oasgen/internal/emit"
	"github.com/dacolabs/oasgen/internal/generate"
	"github.com/dacolabs/oasgen/internal/oasload"
	"github.com/dacolabs/oasgen/internal/prompts"
)

// defaultConfigFile is picked up from the working directory when --config is
// not given.
const defaultConfigFile = "oasgen.yaml"

type generateOptions struct {
	spec       string
	format     string
	output     string
	pkg        string
	configPath string
	validate   bool
}

func newGenerateCmd(emitters emit.Register) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate typed models from an OpenAPI document",
		Long: fmt.Sprintf(`Generate typed models from an OpenAPI document.

Available formats: %s`, strings.Join(emitters.Available(), ", ")),
		Example: `  # Interactive mode
  oasgen generate

  # Generate Go types
  oasgen generate --spec api.yaml --format gotypes

  # Generate into a custom output directory (also sets the package name)
  oasgen generate --spec api.yaml --format gotypes --output models

  # Use an explicit config file
  oasgen generate --spec api.yaml --format gotypes --config oasgen.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, emitters, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.spec, "spec", "s", "", "Path to the OpenAPI document (JSON or YAML)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", fmt.Sprintf("Output format (%s)", strings.Join(emitters.Available(), ", ")))
	cmd.Flags().StringVarP(&opts.output, "output", "o", "models", "Output directory (also used as the Go package name)")
	cmd.Flags().StringVar(&opts.pkg, "package", "", "Output package name (defaults to the output directory's base name)")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to the generation config file")
	cmd.Flags().BoolVar(&opts.validate, "validate", false, "Run full document validation before generating")

	return cmd
}

func runGenerate(cmd *cobra.Command, emitters emit.Register, opts *generateOptions) error {
	if err := prompts.RunGenerateForm(&opts.spec, &opts.format, emitters.Available()); err != nil {
		return err
	}

	emitter, err := emitters.Get(opts.format)
	if err != nil {
		return fmt.Errorf("unsupported format %q. Available formats: %s",
			opts.format, strings.Join(emitters.Available(), ", "))
	}

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}

	loader := oasload.New()
	loader.Validate = opts.validate
	doc, err := loader.LoadFile(cmd.Context(), opts.spec)
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

	pkg := opts.pkg
	if pkg == "" {
		pkg = filepath.Base(opts.output)
	}

	data, err := emitter.Emit(pkg, res)
	if err != nil {
		return fmt.Errorf("failed to emit %s: %w", opts.format, err)
	}

	if err := os.MkdirAll(opts.output, 0o750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(opts.spec), filepath.Ext(opts.spec))
	outFile := filepath.Join(opts.output, base+emitter.FileExtension())
	if err := os.WriteFile(outFile, data, 0o600); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	prompts.PrintResult([]prompts.ResultField{
		{Label: "Document", Value: opts.spec},
		{Label: "Format", Value: opts.format},
		{Label: "Output", Value: outFile},
		{Label: "Types", Value: summaryLine(res)},
	}, "Generation completed")

	return nil
}

// loadConfig resolves the generation config: an explicit path must exist, the
// default file is picked up when present, and built-in defaults apply
// otherwise.
func loadConfig(path string) (*config.Config, error) {
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}

	cfg, err := config.Load(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return config.Default(), nil
		}
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func summaryLine(res *generate.Result) string {
	s := res.Summary
	line := fmt.Sprintf("%d records, %d unions, %d aliases", s.Records, s.Unions, s.Aliases)
	if s.Cycles > 0 {
		line += fmt.Sprintf(", %d cyclic", s.Cycles)
	}
	if s.Orphans > 0 {
		line += fmt.Sprintf(", %d unreferenced", s.Orphans)
	}
	return line
}
