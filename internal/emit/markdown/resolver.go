// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package markdown

import (
	"github.com/dacolabs/oasgen/internal/emit"
)

type resolver struct{}

func (r *resolver) PrimitiveType(base, format string) string {
	if format != "" {
		return base + " (" + format + ")"
	}
	return base
}

func (r *resolver) ArrayType(elemType string) string {
	return "array of " + elemType
}

func (r *resolver) RefType(name string) string {
	return "[" + name + "](#" + anchor(name) + ")"
}

func (r *resolver) EnrichField(f *emit.Field) {}

// anchor lowercases a type name the way markdown heading anchors do.
func anchor(name string) string {
	out := make([]rune, 0, len(name))
	for _, c := range name {
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		out = append(out, c)
	}
	return string(out)
}
