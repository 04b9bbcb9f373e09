// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package gotypes

import (
	"strings"

	"github.com/dacolabs/oasgen/internal/emit"
	"github.com/dacolabs/oasgen/internal/ir"
)

type resolver struct{}

func (r *resolver) PrimitiveType(base, format string) string {
	switch base {
	case ir.BaseString:
		switch format {
		case "date", "date-time":
			return "time.Time"
		}
		return "string"
	case ir.BaseInteger:
		if format == "int32" {
			return "int32"
		}
		return "int64"
	case ir.BaseNumber:
		if format == "float" {
			return "float32"
		}
		return "float64"
	case ir.BaseBoolean:
		return "bool"
	default:
		return "any"
	}
}

func (r *resolver) ArrayType(elemType string) string {
	return "[]" + elemType
}

func (r *resolver) RefType(name string) string {
	return name
}

// EnrichField turns optionality into a pointer and derives the json tag.
// Slices and maps are already nilable, so they never get a pointer; cyclic
// references always do.
func (r *resolver) EnrichField(f *emit.Field) {
	tag := f.WireName
	if !f.Required {
		tag += ",omitempty"
	}
	nilable := strings.HasPrefix(f.Type, "[]") || strings.HasPrefix(f.Type, "map[") || f.Type == "any"
	if (f.Nullable || f.Boxed) && !nilable {
		f.Type = "*" + f.Type
	}
	f.Tag = "`json:\"" + tag + "\"`"
}
