// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package gotypes emits Go type definitions from a generation result.
package gotypes

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/dacolabs/oasgen/internal/emit"
	"github.com/dacolabs/oasgen/internal/generate"
)

//go:embed gotypes.go.tmpl
var tmplFS embed.FS

var funcMap = template.FuncMap{
	"comment": comment,
	"ptr":     ptr,
}

var tmpl = template.Must(template.New("gotypes.go.tmpl").Funcs(funcMap).ParseFS(tmplFS, "gotypes.go.tmpl"))

// Emitter emits Go struct, enum, and union definitions.
type Emitter struct{}

// FileExtension returns the file extension for Go source files.
func (e *Emitter) FileExtension() string {
	return ".go"
}

// Emit renders the generation result as a single Go source file.
func (e *Emitter) Emit(pkg string, res *generate.Result) ([]byte, error) {
	data := emit.Prepare(res, &resolver{})

	if pkg == "" {
		pkg = "types"
	}
	data.Extra["Package"] = pkg
	data.Extra["NeedsTimeImport"] = needsTimeImport(data)

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "gotypes.go.tmpl", data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.Bytes(), nil
}

func needsTimeImport(data *emit.Data) bool {
	for _, def := range data.Types {
		if strings.Contains(def.Alias, "time.Time") {
			return true
		}
		for i := range def.Fields {
			if strings.Contains(def.Fields[i].Type, "time.Time") {
				return true
			}
		}
		for i := range def.Variants {
			if strings.Contains(def.Variants[i].Type, "time.Time") {
				return true
			}
		}
	}
	return false
}

// comment renders a doc string as a Go doc comment led by the type name.
func comment(name, doc string) string {
	lines := strings.Split(strings.TrimSpace(doc), "\n")
	var sb strings.Builder
	for i, line := range lines {
		if i == 0 {
			sb.WriteString("// " + name + " " + line)
			continue
		}
		sb.WriteString("\n// " + strings.TrimRight(line, " "))
	}
	return sb.String()
}

// ptr makes a union payload type nilable so exactly one variant field is
// set at a time. Slices and any are already nilable.
func ptr(typ string) string {
	if typ == "" || typ == "any" || strings.HasPrefix(typ, "[]") || strings.HasPrefix(typ, "map[") {
		return typ
	}
	return "*" + typ
}
