// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package resolve

import (
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/dacolabs/oasgen/internal/ir"
	"github.com/dacolabs/oasgen/internal/naming"
	"github.com/dacolabs/oasgen/internal/registry"
)

// discriminatedUnion converts a oneOf/anyOf carrying an explicit
// discriminator mapping. Variants enumerate the mapping entries ordered by
// descending inheritance depth (most specific first). When the mapping does
// not cover every branch, one fallback variant closes the union; a total
// mapping needs none.
func (r *Resolver) discriminatedUnion(name string, s *openapi3.Schema, branches openapi3.SchemaRefs) (ir.Type, error) {
	disc := s.Discriminator
	t := ir.Type{Name: name, Kind: ir.KindDiscriminatedUnion, Doc: s.Description}
	used := make(map[string]struct{})
	mapped := make(map[string]struct{})

	for _, e := range r.discEntries(disc.Mapping) {
		if !r.reg.Has(e.target) {
			return ir.Type{}, fmt.Errorf("discriminator value %q: unknown schema %q", e.tag, e.target)
		}
		payload, err := r.structShaped(name, e.target)
		if err != nil {
			return ir.Type{}, fmt.Errorf("discriminator value %q: %w", e.tag, err)
		}
		t.Variants = append(t.Variants, ir.Variant{
			Name:    uniqueName(used, naming.Pascal(e.target)),
			Tag:     e.tag,
			Payload: &payload,
		})
		mapped[e.target] = struct{}{}
	}

	fallback := ""
	if !mappingCovers(mapped, branches) {
		// Unmatched tags still decode alongside the discriminator property,
		// so the fallback payload needs a struct shape like every mapped
		// variant.
		payload := r.wrapPrimitive(name, ir.Prim(ir.BaseAny))
		fallback = uniqueName(used, "Other")
		t.Variants = append(t.Variants, ir.Variant{Name: fallback, Payload: &payload})
	}
	t.Discriminator = &ir.Discriminator{Property: disc.PropertyName, Fallback: fallback}

	r.inferCtors(&t)
	return t, nil
}

// convertDiscriminatedRoot handles an object schema that declares a
// discriminator mapping and roots an inheritance chain. It produces both the
// DiscriminatedUnion and a plain Record holding the flattened base fields,
// referenced by the union's fallback variant.
func (r *Resolver) convertDiscriminatedRoot(name string, s *openapi3.Schema, m *registry.MergedSchema) error {
	baseName := r.ix.Reserve(name + "Base")
	base, err := r.recordType(baseName, m, s.Description)
	if err != nil {
		return err
	}
	r.emit(base)

	t := ir.Type{Name: name, Kind: ir.KindDiscriminatedUnion, Doc: s.Description}
	used := make(map[string]struct{})

	for _, e := range r.discEntries(s.Discriminator.Mapping) {
		if !r.reg.Has(e.target) {
			return fmt.Errorf("discriminator value %q: unknown schema %q", e.tag, e.target)
		}
		payload := ir.Ref(e.target)
		payload.Boxed = r.reg.IsCyclic(e.target)
		t.Variants = append(t.Variants, ir.Variant{
			Name:    uniqueName(used, naming.Pascal(e.target)),
			Tag:     e.tag,
			Payload: &payload,
		})
	}

	// Open polymorphism: unknown tag values decode into the flattened base.
	fb := ir.Ref(baseName)
	fallback := uniqueName(used, "Other")
	t.Variants = append(t.Variants, ir.Variant{Name: fallback, Payload: &fb})
	t.Discriminator = &ir.Discriminator{Property: s.Discriminator.PropertyName, Fallback: fallback}

	r.emit(t)
	return nil
}

// structShaped returns a reference to target, substituting a single-field
// wrapper Record when target is not struct-shaped: a discriminator-tagged
// wire encoding requires the tag and payload fields at the same level.
func (r *Resolver) structShaped(unionName, target string) (ir.TypeRef, error) {
	m := r.reg.Merged(target)
	if m == nil {
		return ir.TypeRef{}, fmt.Errorf("schema %q not registered", target)
	}
	if m.Type == "object" || len(m.Properties) > 0 {
		payload := ir.Ref(target)
		payload.Boxed = r.reg.IsCyclic(target)
		return payload, nil
	}
	inner := ir.Ref(target)
	inner.Boxed = r.reg.IsCyclic(target)
	return r.wrapPrimitive(unionName, inner), nil
}

type discEntry struct {
	tag    string
	target string
}

// discEntries normalizes a discriminator mapping into entries ordered by
// descending inheritance depth, ties broken by tag value.
func (r *Resolver) discEntries(mapping map[string]string) []discEntry {
	entries := make([]discEntry, 0, len(mapping))
	for _, tag := range sortedKeys(mapping) {
		target := mapping[tag]
		if name, ok := registry.RefName(target); ok {
			target = name
		}
		entries = append(entries, discEntry{tag: tag, target: target})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		di, dj := r.reg.Depth(entries[i].target), r.reg.Depth(entries[j].target)
		if di != dj {
			return di > dj
		}
		return entries[i].tag < entries[j].tag
	})
	return entries
}

func mappingCovers(mapped map[string]struct{}, branches openapi3.SchemaRefs) bool {
	for _, b := range branches {
		if b == nil {
			continue
		}
		if b.Ref != "" {
			if name, ok := registry.RefName(b.Ref); ok {
				if _, hit := mapped[name]; hit {
					continue
				}
			}
		}
		return false
	}
	return true
}
