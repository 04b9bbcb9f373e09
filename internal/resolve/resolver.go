// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package resolve converts every schema of a document into one IR type,
// consulting the registry for merged shapes and cycles and the name index
// for deterministic names. Per-schema failures downgrade to warnings; a
// failed schema yields no IR type but never blocks its siblings.
package resolve

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/dacolabs/oasgen/internal/config"
	"github.com/dacolabs/oasgen/internal/ir"
	"github.com/dacolabs/oasgen/internal/naming"
	"github.com/dacolabs/oasgen/internal/registry"
)

// Resolver drives schema-to-IR conversion for one generation run.
type Resolver struct {
	reg *registry.Registry
	ix  *naming.Index
	cfg *config.Config

	types    []ir.Type
	byName   map[string]int
	unions   map[string]string // canonical member-set key -> union type name
	warnings []ir.Warning
}

// New returns a resolver over a built registry and name index.
func New(reg *registry.Registry, ix *naming.Index, cfg *config.Config) *Resolver {
	return &Resolver{
		reg:    reg,
		ix:     ix,
		cfg:    cfg,
		byName: make(map[string]int),
		unions: make(map[string]string),
	}
}

// ConvertAll converts every registered schema in sorted name order.
func (r *Resolver) ConvertAll() {
	for _, name := range r.reg.Names() {
		if err := r.convert(name); err != nil {
			r.warnings = append(r.warnings, ir.Warning{Scope: "schema", Name: name, Err: err})
		}
	}
}

// Types returns the IR types in conversion order.
func (r *Resolver) Types() []ir.Type {
	return r.types
}

// Type returns the IR type with the given name, nil if absent.
func (r *Resolver) Type(name string) *ir.Type {
	i, ok := r.byName[name]
	if !ok {
		return nil
	}
	return &r.types[i]
}

// Warnings returns the per-schema failures recovered during conversion.
func (r *Resolver) Warnings() []ir.Warning {
	return r.warnings
}

// ResolveOperand converts an operation payload schema into a TypeRef,
// minting IR types for inline shapes. path names any companion type the
// payload needs.
func (r *Resolver) ResolveOperand(sr *openapi3.SchemaRef, path string) (ir.TypeRef, error) {
	return r.typeRefFor(sr, path)
}

func (r *Resolver) convert(name string) error {
	if _, done := r.byName[name]; done {
		return nil
	}
	s := r.reg.Schema(name)
	m := r.reg.Merged(name)
	if s == nil || m == nil {
		return fmt.Errorf("schema not registered")
	}

	switch {
	case len(s.OneOf) > 0:
		return r.convertUnion(name, s, s.OneOf, false)
	case len(s.AnyOf) > 0:
		return r.convertUnion(name, s, s.AnyOf, true)
	case len(s.Enum) > 0:
		r.emit(r.enumType(name, s.Enum, s.Description))
		return nil
	case s.Discriminator != nil && len(s.Discriminator.Mapping) > 0:
		// An object schema declaring a discriminator mapping roots an
		// inheritance-based discriminated union.
		return r.convertDiscriminatedRoot(name, s, m)
	}

	switch m.Type {
	case "object":
		return r.convertRecord(name, m, s.Description)
	case "array":
		tr, err := r.typeRefFor(s.Items, name+"Item")
		if err != nil {
			return err
		}
		alias := r.liftElem(tr, name+"Item")
		alias.Repeated = true
		alias.UniqueItems = s.UniqueItems
		r.emit(ir.Type{Name: name, Kind: ir.KindAlias, Doc: s.Description, Alias: &alias})
		return nil
	case "":
		if len(m.Properties) > 0 || m.AdditionalSchema != nil || m.AdditionalAllowed != nil {
			return r.convertRecord(name, m, s.Description)
		}
		alias := ir.Prim(ir.BaseAny)
		r.emit(ir.Type{Name: name, Kind: ir.KindAlias, Doc: s.Description, Alias: &alias})
		return nil
	default:
		alias := ir.Prim(primBase(m.Type))
		alias.Nullable = m.Nullable
		r.emit(ir.Type{Name: name, Kind: ir.KindAlias, Doc: s.Description, Alias: &alias})
		return nil
	}
}

func (r *Resolver) convertRecord(name string, m *registry.MergedSchema, doc string) error {
	t, err := r.recordType(name, m, doc)
	if err != nil {
		return err
	}
	r.emit(t)
	return nil
}

// recordType flattens a merged schema into a Record. Field names are
// normalized to identifiers; colliding normalizations receive numeric
// suffixes in sorted property order.
func (r *Resolver) recordType(name string, m *registry.MergedSchema, doc string) (ir.Type, error) {
	t := ir.Type{Name: name, Kind: ir.KindRecord, Doc: doc}
	used := make(map[string]struct{})

	for _, prop := range m.PropertyNames() {
		sr := m.Properties[prop]
		tr, err := r.typeRefFor(sr, name+naming.Pascal(prop))
		if err != nil {
			return ir.Type{}, fmt.Errorf("property %q: %w", prop, err)
		}
		if !m.IsRequired(prop) && !tr.Repeated {
			tr.Nullable = true
		}
		f := ir.Field{
			Name:     uniqueName(used, naming.Pascal(prop)),
			WireName: prop,
			Type:     tr,
			Required: m.IsRequired(prop),
		}
		if sr != nil && sr.Value != nil {
			f.Doc = sr.Value.Description
			f.HasDefault = sr.Value.Default != nil
			f.Constraints = constraintsOf(sr.Value)
		}
		t.Fields = append(t.Fields, f)
	}

	switch {
	case m.AdditionalSchema != nil:
		tr, err := r.typeRefFor(m.AdditionalSchema, name+"Value")
		if err != nil {
			return ir.Type{}, fmt.Errorf("additionalProperties: %w", err)
		}
		t.AdditionalProps = &tr
	case m.AdditionalAllowed != nil && *m.AdditionalAllowed:
		anyRef := ir.Prim(ir.BaseAny)
		t.AdditionalProps = &anyRef
	}

	return t, nil
}

// typeRefFor maps a schema reference to a TypeRef, minting companion IR
// types for inline enums, objects, unions, and nested arrays. path is the
// name the companion type takes when the name index has no candidate for it.
func (r *Resolver) typeRefFor(sr *openapi3.SchemaRef, path string) (ir.TypeRef, error) {
	if sr == nil {
		return ir.Prim(ir.BaseAny), nil
	}
	if sr.Ref != "" {
		refName, ok := registry.RefName(sr.Ref)
		if !ok {
			return ir.TypeRef{}, fmt.Errorf("unsupported reference %q", sr.Ref)
		}
		if !r.reg.Has(refName) {
			return ir.TypeRef{}, fmt.Errorf("reference to unresolvable schema %q", refName)
		}
		out := ir.Ref(refName)
		out.Boxed = r.reg.IsCyclic(refName)
		return out, nil
	}

	s := sr.Value
	if s == nil {
		return ir.Prim(ir.BaseAny), nil
	}
	typ, nullable := registry.PrimaryType(s)
	nullable = nullable || s.Nullable

	switch {
	case len(s.Enum) > 0:
		name, ok := r.ix.Enum(s.Enum)
		if !ok {
			name = r.ix.Reserve(path)
		}
		if r.Type(name) == nil {
			r.emit(r.enumType(name, s.Enum, s.Description))
		}
		out := ir.Ref(name)
		out.Nullable = nullable
		return out, nil

	case len(s.OneOf) > 0:
		name, err := r.inlineUnion(path, s, s.OneOf, false)
		if err != nil {
			return ir.TypeRef{}, err
		}
		out := ir.Ref(name)
		out.Nullable = nullable
		return out, nil

	case len(s.AnyOf) > 0:
		name, err := r.inlineUnion(path, s, s.AnyOf, true)
		if err != nil {
			return ir.TypeRef{}, err
		}
		out := ir.Ref(name)
		out.Nullable = nullable
		return out, nil

	case typ == "array":
		elem, err := r.typeRefFor(s.Items, path+"Item")
		if err != nil {
			return ir.TypeRef{}, err
		}
		out := r.liftElem(elem, path+"Item")
		out.Repeated = true
		out.UniqueItems = s.UniqueItems
		out.Nullable = nullable
		return out, nil

	case typ == "object" || (typ == "" && (len(s.Properties) > 0 || len(s.AllOf) > 0)):
		name, err := r.inlineRecord(path, s)
		if err != nil {
			return ir.TypeRef{}, err
		}
		out := ir.Ref(name)
		out.Boxed = r.reg.IsCyclic(name)
		out.Nullable = nullable
		return out, nil

	case typ == "":
		out := ir.Prim(ir.BaseAny)
		out.Nullable = nullable
		return out, nil

	default:
		out := ir.Prim(primBase(typ))
		out.Nullable = nullable
		return out, nil
	}
}

// inlineRecord mints (or reuses) the Record for an anonymous inline object.
// Inline allOf branches are flattened the same way the registry flattens
// named chains, reusing finalized ancestor merges for reference branches.
func (r *Resolver) inlineRecord(path string, s *openapi3.Schema) (string, error) {
	name, ok := r.ix.Object(s)
	if !ok {
		name = r.ix.Reserve(path)
	}
	if r.Type(name) != nil {
		return name, nil
	}

	m := registry.NewMergedSchema(name)
	for _, sub := range s.AllOf {
		if sub == nil {
			continue
		}
		if sub.Ref != "" {
			refName, ok := registry.RefName(sub.Ref)
			if !ok {
				return "", fmt.Errorf("unsupported reference %q", sub.Ref)
			}
			pm := r.reg.Merged(refName)
			if pm == nil {
				return "", fmt.Errorf("reference to unresolvable schema %q", refName)
			}
			m.FoldMerged(pm)
			continue
		}
		m.FoldSchema(sub.Value)
	}
	m.FoldSchema(s)

	t, err := r.recordType(name, m, s.Description)
	if err != nil {
		return "", err
	}
	r.emit(t)
	return name, nil
}

// liftElem returns elem unchanged unless it is itself repeated, in which
// case the inner array is lifted into a named alias so the flat TypeRef
// shape stays sound for nested arrays.
func (r *Resolver) liftElem(elem ir.TypeRef, path string) ir.TypeRef {
	if !elem.Repeated {
		return elem
	}
	name := r.ix.Reserve(path + "List")
	inner := elem
	r.emit(ir.Type{Name: name, Kind: ir.KindAlias, Alias: &inner})
	return ir.Ref(name)
}

// emit appends a type unless its name is already taken.
func (r *Resolver) emit(t ir.Type) {
	if _, exists := r.byName[t.Name]; exists {
		return
	}
	r.byName[t.Name] = len(r.types)
	r.types = append(r.types, t)
}

func constraintsOf(s *openapi3.Schema) ir.Constraints {
	c := ir.Constraints{
		Pattern:          s.Pattern,
		Format:           s.Format,
		Minimum:          s.Min,
		Maximum:          s.Max,
		ExclusiveMinimum: s.ExclusiveMin,
		ExclusiveMaximum: s.ExclusiveMax,
		MultipleOf:       s.MultipleOf,
		MaxLength:        s.MaxLength,
		MaxItems:         s.MaxItems,
	}
	if s.MinLength > 0 {
		v := s.MinLength
		c.MinLength = &v
	}
	if s.MinItems > 0 {
		v := s.MinItems
		c.MinItems = &v
	}
	return c
}

func primBase(typ string) string {
	switch typ {
	case "string":
		return ir.BaseString
	case "integer":
		return ir.BaseInteger
	case "number":
		return ir.BaseNumber
	case "boolean":
		return ir.BaseBoolean
	default:
		return ir.BaseAny
	}
}

func uniqueName(used map[string]struct{}, base string) string {
	if base == "" {
		base = "Field"
	}
	name := base
	for i := 2; ; i++ {
		if _, taken := used[name]; !taken {
			used[name] = struct{}{}
			return name
		}
		name = base + strconv.Itoa(i)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
