// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package markdown emits human-readable documentation for a generation result.
package markdown

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/dacolabs/oasgen/internal/emit"
	"github.com/dacolabs/oasgen/internal/generate"
	"github.com/dacolabs/oasgen/internal/ir"
)

//go:embed markdown.go.tmpl
var tmplFS embed.FS

var funcMap = template.FuncMap{
	"formatConstraints": formatConstraints,
	"kindLabel":         kindLabel,
	"anchor":            anchor,
}

var tmpl = template.Must(template.New("markdown.go.tmpl").Funcs(funcMap).ParseFS(tmplFS, "markdown.go.tmpl"))

// Emitter emits markdown documentation.
type Emitter struct{}

// FileExtension returns the file extension for markdown files.
func (e *Emitter) FileExtension() string {
	return ".md"
}

// Emit renders the generation result as a markdown document. pkg becomes the
// document title.
func (e *Emitter) Emit(pkg string, res *generate.Result) ([]byte, error) {
	data := emit.Prepare(res, &resolver{})

	if pkg == "" {
		pkg = "Types"
	}
	data.Extra["Title"] = pkg

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "markdown.go.tmpl", data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.Bytes(), nil
}

func kindLabel(k ir.Kind) string {
	switch k {
	case ir.KindRecord:
		return "object"
	case ir.KindTaggedUnion:
		return "union"
	case ir.KindDiscriminatedUnion:
		return "discriminated union"
	case ir.KindAlias:
		return "alias"
	default:
		return string(k)
	}
}

// formatConstraints formats a field's constraints as a human-readable string.
func formatConstraints(c ir.Constraints) string {
	var parts []string

	if c.Pattern != "" {
		parts = append(parts, fmt.Sprintf("pattern: `%s`", c.Pattern))
	}

	if c.Format != "" {
		parts = append(parts, fmt.Sprintf("format: %s", c.Format))
	}

	if c.MinLength != nil {
		parts = append(parts, fmt.Sprintf("minLength: %d", *c.MinLength))
	}

	if c.MaxLength != nil {
		parts = append(parts, fmt.Sprintf("maxLength: %d", *c.MaxLength))
	}

	if c.Minimum != nil {
		if c.ExclusiveMinimum {
			parts = append(parts, fmt.Sprintf("exclusiveMinimum: %v", *c.Minimum))
		} else {
			parts = append(parts, fmt.Sprintf("minimum: %v", *c.Minimum))
		}
	}

	if c.Maximum != nil {
		if c.ExclusiveMaximum {
			parts = append(parts, fmt.Sprintf("exclusiveMaximum: %v", *c.Maximum))
		} else {
			parts = append(parts, fmt.Sprintf("maximum: %v", *c.Maximum))
		}
	}

	if c.MultipleOf != nil {
		parts = append(parts, fmt.Sprintf("multipleOf: %v", *c.MultipleOf))
	}

	if c.MinItems != nil {
		parts = append(parts, fmt.Sprintf("minItems: %d", *c.MinItems))
	}

	if c.MaxItems != nil {
		parts = append(parts, fmt.Sprintf("maxItems: %d", *c.MaxItems))
	}

	return strings.Join(parts, ", ")
}
