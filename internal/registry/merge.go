// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package registry

import (
	"sort"

	"github.com/getkin/kin-openapi/openapi3"
)

// MergedSchema is the flattened result of resolving an allOf inheritance
// chain. Properties and required names are the union over the whole chain;
// scalar fields follow last-write-wins per ancestor visited, with the
// schema's own declarations applied last.
type MergedSchema struct {
	Name       string
	Type       string // effective primary type, "" when undeclared
	Nullable   bool
	Properties map[string]*openapi3.SchemaRef
	Required   map[string]struct{}

	Discriminator *openapi3.Discriminator

	// Additional-properties policy, inherited when not locally set.
	AdditionalSchema  *openapi3.SchemaRef
	AdditionalAllowed *bool

	// DiscriminatorParent names the single allOf ancestor whose
	// discriminator mapping is non-empty, "" when there is none.
	DiscriminatorParent string
}

// PropertyNames returns the merged property names in sorted order.
func (m *MergedSchema) PropertyNames() []string {
	names := make([]string, 0, len(m.Properties))
	for name := range m.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRequired reports whether name is in the merged required set.
func (m *MergedSchema) IsRequired(name string) bool {
	_, ok := m.Required[name]
	return ok
}

// mergeAll flattens every schema's inheritance chain. Schemas are processed
// in ascending inheritance depth so each merge reuses already-finalized
// ancestor merges instead of re-resolving them.
func (r *Registry) mergeAll() {
	order := make([]string, len(r.names))
	copy(order, r.names)
	sort.SliceStable(order, func(i, j int) bool {
		di, dj := r.nodes[order[i]].depth, r.nodes[order[j]].depth
		if di != dj {
			return di < dj
		}
		return order[i] < order[j]
	})

	for _, name := range order {
		r.merged[name] = r.mergeOne(r.nodes[name])
	}

	// Discriminator parentage needs every ancestor merge finalized first.
	for _, name := range order {
		n := r.nodes[name]
		if len(n.parents) != 1 {
			continue
		}
		pm := r.merged[n.parents[0]]
		if pm != nil && pm.Discriminator != nil && len(pm.Discriminator.Mapping) > 0 {
			r.merged[name].DiscriminatorParent = n.parents[0]
		}
	}
}

// NewMergedSchema returns an empty merge accumulator. The resolver uses it
// to flatten anonymous inline schemas that never enter the registry.
func NewMergedSchema(name string) *MergedSchema {
	return &MergedSchema{
		Name:       name,
		Properties: make(map[string]*openapi3.SchemaRef),
		Required:   make(map[string]struct{}),
	}
}

func (r *Registry) mergeOne(n *node) *MergedSchema {
	m := NewMergedSchema(n.name)

	for _, sub := range n.schema.AllOf {
		if sub == nil {
			continue
		}
		if sub.Ref != "" {
			name, ok := RefName(sub.Ref)
			if !ok {
				continue
			}
			if pm := r.merged[name]; pm != nil {
				m.FoldMerged(pm)
			}
			continue
		}
		m.FoldSchema(sub.Value)
	}

	// The schema's own declarations override everything inherited.
	m.FoldSchema(n.schema)

	return m
}

// FoldMerged applies an already-flattened ancestor onto m.
func (m *MergedSchema) FoldMerged(pm *MergedSchema) {
	for name, prop := range pm.Properties {
		m.Properties[name] = prop
	}
	for name := range pm.Required {
		m.Required[name] = struct{}{}
	}
	if pm.Type != "" {
		m.Type = pm.Type
	}
	if pm.Nullable {
		m.Nullable = true
	}
	if pm.Discriminator != nil {
		m.Discriminator = pm.Discriminator
	}
	if pm.AdditionalSchema != nil {
		m.AdditionalSchema = pm.AdditionalSchema
	}
	if pm.AdditionalAllowed != nil {
		m.AdditionalAllowed = pm.AdditionalAllowed
	}
}

// FoldSchema applies one inline schema's declarations onto m. allOf entries
// of s are not folded here; the caller drives the chain itself.
func (m *MergedSchema) FoldSchema(s *openapi3.Schema) {
	if s == nil {
		return
	}
	for _, name := range sortedKeys(s.Properties) {
		m.Properties[name] = s.Properties[name]
	}
	for _, name := range s.Required {
		m.Required[name] = struct{}{}
	}
	if typ, nullable := PrimaryType(s); typ != "" {
		m.Type = typ
		if nullable {
			m.Nullable = true
		}
	} else if nullable {
		m.Nullable = true
	}
	if s.Nullable {
		m.Nullable = true
	}
	if s.Discriminator != nil {
		m.Discriminator = s.Discriminator
	}
	if s.AdditionalProperties.Schema != nil {
		m.AdditionalSchema = s.AdditionalProperties.Schema
	}
	if s.AdditionalProperties.Has != nil {
		m.AdditionalAllowed = s.AdditionalProperties.Has
	}
}

// PrimaryType returns the effective non-null type of s and whether the type
// list also admits null (the OpenAPI 3.1 nullable form).
func PrimaryType(s *openapi3.Schema) (typ string, nullable bool) {
	if s == nil || s.Type == nil {
		return "", false
	}
	for _, t := range *s.Type {
		if t == "null" {
			nullable = true
			continue
		}
		if typ == "" {
			typ = t
		}
	}
	return typ, nullable
}
