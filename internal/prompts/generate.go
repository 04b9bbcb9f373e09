// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package prompts

import "github.com/charmbracelet/huh"

// RunGenerateForm prompts for any generate inputs missing from the flags.
// Already-set values are left untouched; when nothing is missing the form is
// skipped entirely.
func RunGenerateForm(specPath, format *string, formats []string) error {
	var fields []huh.Field

	if *specPath == "" {
		fields = append(fields, huh.NewInput().
			Title("OpenAPI document").
			Description("Path to the document to generate from (JSON or YAML)").
			Validate(fileExistsValidator("document path")).
			Value(specPath))
	}

	if *format == "" && len(formats) > 0 {
		options := make([]huh.Option[string], len(formats))
		for i, f := range formats {
			options[i] = huh.NewOption(f, f)
		}
		fields = append(fields, huh.NewSelect[string]().
			Title("Output format").
			Options(options...).
			Value(format))
	}

	if len(fields) == 0 {
		return nil
	}

	return huh.NewForm(huh.NewGroup(fields...)).WithTheme(Theme()).Run()
}
