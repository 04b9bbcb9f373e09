// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package resolve

import (
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/dacolabs/oasgen/internal/config"
	"github.com/dacolabs/oasgen/internal/ir"
	"github.com/dacolabs/oasgen/internal/naming"
	"github.com/dacolabs/oasgen/internal/registry"
)

// enumType converts a plain value enumeration into a TaggedUnion of unit
// variants tagged with their original literal values. Duplicate literals are
// dropped; duplicate normalized names follow the configured collision
// policy: merge into aliases of the first occurrence, or preserve with a
// numeric suffix.
func (r *Resolver) enumType(name string, values []any, doc string) ir.Type {
	t := ir.Type{
		Name:            name,
		Kind:            ir.KindTaggedUnion,
		Doc:             doc,
		CaseInsensitive: r.cfg.EnumDeserializeCase == config.EnumCaseInsensitive,
	}

	lits := make(map[string]struct{})
	first := make(map[string]string) // normalized name -> first variant name
	used := make(map[string]struct{})

	for _, v := range values {
		lit := naming.Literal(v)
		if _, dup := lits[lit]; dup {
			continue
		}
		lits[lit] = struct{}{}

		vname := naming.Pascal(lit)
		if vname == "" {
			vname = "Empty"
		}
		if firstName, dup := first[vname]; dup {
			variant := ir.Variant{Name: uniqueName(used, vname), Tag: lit}
			if r.cfg.EnumCollision == config.EnumCollisionMerge {
				variant.AliasOf = firstName
			}
			t.Variants = append(t.Variants, variant)
			continue
		}
		first[vname] = vname
		used[vname] = struct{}{}
		t.Variants = append(t.Variants, ir.Variant{Name: vname, Tag: lit})
	}

	return t
}

// relaxedEnum special-cases a forward-compatible string union: an anyOf
// mixing constrained string branches (enum values) with at least one
// unconstrained free-form string branch. It produces an inner TaggedUnion
// over only the constrained values and an outer two-variant union that
// accepts any string while preserving typed access to recognized values.
func (r *Resolver) relaxedEnum(name string, s *openapi3.Schema, branches openapi3.SchemaRefs) bool {
	var values []any
	freeform := false

	for _, b := range branches {
		if b == nil || b.Ref != "" || b.Value == nil {
			return false
		}
		typ, _ := registry.PrimaryType(b.Value)
		if typ != "string" {
			return false
		}
		if len(b.Value.Enum) > 0 {
			values = append(values, b.Value.Enum...)
		} else {
			freeform = true
		}
	}
	if len(values) == 0 || !freeform {
		return false
	}

	knownName := r.ix.Reserve(name + "Known")
	r.emit(r.enumType(knownName, values, ""))

	known := ir.Ref(knownName)
	other := ir.Prim(ir.BaseString)
	r.emit(ir.Type{
		Name: name,
		Kind: ir.KindTaggedUnion,
		Doc:  s.Description,
		Variants: []ir.Variant{
			{Name: "Known", Payload: &known},
			{Name: "Other", Payload: &other},
		},
	})
	return true
}
