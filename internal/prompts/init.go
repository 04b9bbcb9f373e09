// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package prompts

import "github.com/charmbracelet/huh"

// RunInitForm prompts for the generation policies written to a new config
// file.
func RunInitForm(enumCollision, enumCase *string, includeUnreferenced *bool) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Enum collision policy").
				Description("How enum values that normalize to the same name are handled").
				Options(
					huh.NewOption("merge into one variant", "merge"),
					huh.NewOption("preserve as numbered variants", "preserve"),
				).
				Value(enumCollision),
			huh.NewSelect[string]().
				Title("Enum deserialization case").
				Options(
					huh.NewOption("case-sensitive", "sensitive"),
					huh.NewOption("case-insensitive", "insensitive"),
				).
				Value(enumCase),
			huh.NewConfirm().
				Title("Include unreferenced schemas?").
				Description("Generate types no operation reaches").
				Value(includeUnreferenced),
		),
	).WithTheme(Theme())

	return form.Run()
}
