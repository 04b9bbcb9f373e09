// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package resolve

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/dacolabs/oasgen/internal/ir"
	"github.com/dacolabs/oasgen/internal/naming"
	"github.com/dacolabs/oasgen/internal/registry"
)

// convertUnion converts a named oneOf/anyOf schema. Relaxed forward-
// compatible enums and discriminated unions are special-cased; a union whose
// member set already produced a union type becomes an alias of it instead of
// a duplicate.
func (r *Resolver) convertUnion(name string, s *openapi3.Schema, branches openapi3.SchemaRefs, anyOf bool) error {
	if anyOf && r.relaxedEnum(name, s, branches) {
		return nil
	}
	if s.Discriminator != nil && len(s.Discriminator.Mapping) > 0 {
		t, err := r.discriminatedUnion(name, s, branches)
		if err != nil {
			return err
		}
		r.emit(t)
		return nil
	}

	key := memberKey(branches)
	if key != "" {
		if existing, ok := r.unions[key]; ok && existing != name {
			alias := ir.Ref(existing)
			alias.Boxed = r.reg.IsCyclic(existing)
			r.emit(ir.Type{Name: name, Kind: ir.KindAlias, Doc: s.Description, Alias: &alias})
			return nil
		}
	}

	t, err := r.taggedUnion(name, s, branches)
	if err != nil {
		return err
	}
	r.emit(t)
	if key != "" {
		r.unions[key] = name
	}
	return nil
}

// inlineUnion mints (or reuses) the union type for an anonymous inline
// oneOf/anyOf and returns its name.
func (r *Resolver) inlineUnion(path string, s *openapi3.Schema, branches openapi3.SchemaRefs, anyOf bool) (string, error) {
	key := memberKey(branches)
	if key != "" {
		if existing, ok := r.unions[key]; ok {
			return existing, nil
		}
	}

	name := r.ix.Reserve(path)
	if anyOf && r.relaxedEnum(name, s, branches) {
		if key != "" {
			r.unions[key] = name
		}
		return name, nil
	}

	var t ir.Type
	var err error
	if s.Discriminator != nil && len(s.Discriminator.Mapping) > 0 {
		t, err = r.discriminatedUnion(name, s, branches)
	} else {
		t, err = r.taggedUnion(name, s, branches)
	}
	if err != nil {
		return "", err
	}
	r.emit(t)
	if key != "" {
		r.unions[key] = name
	}
	return name, nil
}

func (r *Resolver) taggedUnion(name string, s *openapi3.Schema, branches openapi3.SchemaRefs) (ir.Type, error) {
	t := ir.Type{Name: name, Kind: ir.KindTaggedUnion, Doc: s.Description}
	used := make(map[string]struct{})

	for i, b := range branches {
		v, err := r.unionVariant(name, i, b, false)
		if err != nil {
			return ir.Type{}, fmt.Errorf("branch %d: %w", i, err)
		}
		v.Name = uniqueName(used, v.Name)
		t.Variants = append(t.Variants, v)
	}

	r.inferCtors(&t)
	return t, nil
}

// unionVariant converts one union branch, in priority order: a reference to
// a named schema is reused verbatim (boxed if cyclic); an inline object
// becomes a new Record; an inline primitive becomes a single-field wrapper
// variant when the union's wire encoding requires struct shapes, a bare
// payload otherwise.
func (r *Resolver) unionVariant(unionName string, i int, b *openapi3.SchemaRef, structRequired bool) (ir.Variant, error) {
	if b == nil {
		return ir.Variant{}, fmt.Errorf("empty branch")
	}

	if b.Ref != "" {
		refName, ok := registry.RefName(b.Ref)
		if !ok {
			return ir.Variant{}, fmt.Errorf("unsupported reference %q", b.Ref)
		}
		if !r.reg.Has(refName) {
			return ir.Variant{}, fmt.Errorf("reference to unresolvable schema %q", refName)
		}
		payload := ir.Ref(refName)
		payload.Boxed = r.reg.IsCyclic(refName)
		return ir.Variant{Name: naming.Pascal(refName), Payload: &payload}, nil
	}

	path := naming.BranchPath(unionName, i, b)
	payload, err := r.typeRefFor(b, path)
	if err != nil {
		return ir.Variant{}, err
	}

	if payload.Custom {
		// A variant's own inline struct field referencing the union's
		// just-resolved name needs indirection even before the cycle pass
		// can see it.
		r.boxSelfRefs(payload.Base, unionName)
		return ir.Variant{Name: naming.Pascal(payload.Base), Payload: &payload}, nil
	}

	vname := naming.Pascal(payload.Base)
	if payload.Repeated {
		vname += "List"
	}
	if structRequired && !payload.Repeated {
		payload = r.wrapPrimitive(unionName, payload)
	}
	return ir.Variant{Name: vname, Payload: &payload}, nil
}

// wrapPrimitive mints a single-field Record around a primitive payload so a
// discriminator tag and the payload can live at the same wire level.
func (r *Resolver) wrapPrimitive(unionName string, payload ir.TypeRef) ir.TypeRef {
	name := r.ix.Reserve(unionName + naming.Pascal(payload.Base))
	r.emit(ir.Type{
		Name: name,
		Kind: ir.KindRecord,
		Fields: []ir.Field{
			{Name: "Value", WireName: "value", Type: payload, Required: true},
		},
	})
	return ir.Ref(name)
}

// boxSelfRefs marks every field of record that references owner as boxed.
func (r *Resolver) boxSelfRefs(record, owner string) {
	t := r.Type(record)
	if t == nil || t.Kind != ir.KindRecord {
		return
	}
	for i := range t.Fields {
		if t.Fields[i].Type.Custom && t.Fields[i].Type.Base == owner {
			t.Fields[i].Type.Boxed = true
		}
	}
	if t.AdditionalProps != nil && t.AdditionalProps.Custom && t.AdditionalProps.Base == owner {
		t.AdditionalProps.Boxed = true
	}
}

// inferCtors fills Variant.CtorField for variants wrapping a record whose
// fields are all defaultable except exactly one. Inconclusive shapes are
// skipped silently.
func (r *Resolver) inferCtors(t *ir.Type) {
	for i := range t.Variants {
		v := &t.Variants[i]
		if v.Payload == nil || !v.Payload.Custom {
			continue
		}
		pt := r.Type(v.Payload.Base)
		if pt == nil || pt.Kind != ir.KindRecord {
			continue
		}
		var nonDefaulted []string
		for _, f := range pt.Fields {
			if f.Required && !f.HasDefault {
				nonDefaulted = append(nonDefaulted, f.Name)
			}
		}
		if len(nonDefaulted) == 1 {
			v.CtorField = nonDefaulted[0]
		}
	}
}

// memberKey canonicalizes a union's member set. Only unions whose branches
// are all named references are eligible for set-based reuse; inline members
// return an empty key.
func memberKey(branches openapi3.SchemaRefs) string {
	names := make([]string, 0, len(branches))
	for _, b := range branches {
		if b == nil || b.Ref == "" {
			return ""
		}
		name, ok := registry.RefName(b.Ref)
		if !ok {
			return ""
		}
		names = append(names, name)
	}
	sort.Strings(names)
	names = slices.Compact(names)
	return "set|" + strings.Join(names, "\x1f")
}
