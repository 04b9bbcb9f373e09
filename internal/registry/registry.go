// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package registry builds the schema dependency graph for one OpenAPI
// document: per-schema dependency edges, flattened inheritance (allOf)
// chains, reference cycles, and discriminator parentage.
//
// A Registry is built once per generation run and is immutable afterwards.
package registry

import (
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/dacolabs/oasgen/internal/ir"
)

// Registry is the schema graph of one document.
type Registry struct {
	nodes    map[string]*node
	names    []string // sorted surviving schema names
	merged   map[string]*MergedSchema
	cyclic   map[string]struct{}
	warnings []ir.Warning
}

type node struct {
	name    string
	schema  *openapi3.Schema
	deps    []string // named schemas reachable without crossing another named schema
	parents []string // allOf $ref ancestors, in declaration order
	depth   int      // inheritance depth: 1 + max(depth(parent)), 0 without parents
}

// Build constructs the registry from a parsed document. Schemas with
// dangling or unresolvable references are dropped with a warning; the rest
// of the document is processed normally.
func Build(doc *openapi3.T) *Registry {
	r := &Registry{
		nodes:  make(map[string]*node),
		merged: make(map[string]*MergedSchema),
		cyclic: make(map[string]struct{}),
	}

	schemas := componentSchemas(doc)
	names := sortedKeys(schemas)

	for _, name := range names {
		sr := schemas[name]
		if sr == nil || sr.Value == nil {
			r.warn(name, fmt.Errorf("schema has no value"))
			continue
		}
		deps, parents, err := collectEdges(sr.Value, schemas)
		if err != nil {
			r.warn(name, err)
			continue
		}
		r.nodes[name] = &node{
			name:    name,
			schema:  sr.Value,
			deps:    deps,
			parents: parents,
		}
	}

	for name := range r.nodes {
		r.names = append(r.names, name)
	}
	sort.Strings(r.names)

	r.computeDepths()
	r.mergeAll()
	r.detectCycles()

	return r
}

// Names returns the sorted names of all schemas that survived graph
// construction.
func (r *Registry) Names() []string {
	return r.names
}

// Has reports whether name is a registered schema.
func (r *Registry) Has(name string) bool {
	_, ok := r.nodes[name]
	return ok
}

// Schema returns the raw schema for name, nil if unknown.
func (r *Registry) Schema(name string) *openapi3.Schema {
	n, ok := r.nodes[name]
	if !ok {
		return nil
	}
	return n.schema
}

// Deps returns the sorted dependency edge targets of name.
func (r *Registry) Deps(name string) []string {
	n, ok := r.nodes[name]
	if !ok {
		return nil
	}
	return n.deps
}

// Depth returns the inheritance depth of name (0 for schemas without
// allOf reference ancestors).
func (r *Registry) Depth(name string) int {
	n, ok := r.nodes[name]
	if !ok {
		return 0
	}
	return n.depth
}

// Merged returns the flattened inheritance-merge result for name,
// nil if the schema is unknown.
func (r *Registry) Merged(name string) *MergedSchema {
	return r.merged[name]
}

// IsCyclic reports whether name participates in a reference cycle.
// Every TypeRef to a cyclic name must carry the indirection flag.
func (r *Registry) IsCyclic(name string) bool {
	_, ok := r.cyclic[name]
	return ok
}

// CycleNames returns the sorted names of all cyclic schemas.
func (r *Registry) CycleNames() []string {
	out := make([]string, 0, len(r.cyclic))
	for name := range r.cyclic {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// DiscriminatorParent returns the name of the discriminated ancestor of
// name, or "" when it has none.
func (r *Registry) DiscriminatorParent(name string) string {
	m := r.merged[name]
	if m == nil {
		return ""
	}
	return m.DiscriminatorParent
}

// Children returns the schemas whose discriminator parent is name, ordered
// by descending inheritance depth (most specific first), ties broken by
// name.
func (r *Registry) Children(name string) []string {
	var out []string
	for _, c := range r.names {
		if r.DiscriminatorParent(c) == name {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		di, dj := r.Depth(out[i]), r.Depth(out[j])
		if di != dj {
			return di > dj
		}
		return out[i] < out[j]
	})
	return out
}

// Warnings returns the per-schema failures recovered during construction.
func (r *Registry) Warnings() []ir.Warning {
	return r.warnings
}

func (r *Registry) warn(name string, err error) {
	r.warnings = append(r.warnings, ir.Warning{Scope: "registry", Name: name, Err: err})
}

// computeDepths assigns inheritance depths via memoized traversal of the
// allOf ref-parent edges. A cycle in the parent chain leaves the members at
// their partial depth and records a warning; cycle handling proper happens
// in detectCycles.
func (r *Registry) computeDepths() {
	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	state := make(map[string]int, len(r.nodes))

	var visit func(name string) int
	visit = func(name string) int {
		n, ok := r.nodes[name]
		if !ok {
			return -1
		}
		switch state[name] {
		case done:
			return n.depth
		case visiting:
			r.warn(name, fmt.Errorf("inheritance chain is cyclic"))
			return n.depth
		}
		state[name] = visiting
		depth := 0
		for _, p := range n.parents {
			if pd := visit(p); pd+1 > depth {
				depth = pd + 1
			}
		}
		n.depth = depth
		state[name] = done
		return depth
	}

	for _, name := range r.names {
		visit(name)
	}
}

// collectEdges walks one schema and gathers its dependency edge targets and
// allOf reference parents. The walk recurses into inline sub-schemas but
// stops at any reference to a named schema, keeping the graph's node count
// bounded by the document's named schemas. A reference that resolves to no
// named schema fails the whole schema.
func collectEdges(s *openapi3.Schema, schemas openapi3.Schemas) (deps, parents []string, err error) {
	seen := make(map[string]struct{})

	var walkRef func(sr *openapi3.SchemaRef) error
	var walkSchema func(s *openapi3.Schema) error

	walkRef = func(sr *openapi3.SchemaRef) error {
		if sr == nil {
			return nil
		}
		if sr.Ref != "" {
			name, ok := RefName(sr.Ref)
			if !ok {
				return fmt.Errorf("unsupported reference %q", sr.Ref)
			}
			if _, ok := schemas[name]; !ok {
				return fmt.Errorf("dangling reference %q", sr.Ref)
			}
			seen[name] = struct{}{}
			return nil
		}
		return walkSchema(sr.Value)
	}

	walkSchema = func(s *openapi3.Schema) error {
		if s == nil {
			return nil
		}
		for _, prop := range sortedKeys(s.Properties) {
			if err := walkRef(s.Properties[prop]); err != nil {
				return fmt.Errorf("property %q: %w", prop, err)
			}
		}
		if err := walkRef(s.Items); err != nil {
			return fmt.Errorf("items: %w", err)
		}
		if err := walkRef(s.AdditionalProperties.Schema); err != nil {
			return fmt.Errorf("additionalProperties: %w", err)
		}
		for _, sub := range s.AllOf {
			if err := walkRef(sub); err != nil {
				return fmt.Errorf("allOf: %w", err)
			}
		}
		for _, sub := range s.AnyOf {
			if err := walkRef(sub); err != nil {
				return fmt.Errorf("anyOf: %w", err)
			}
		}
		for _, sub := range s.OneOf {
			if err := walkRef(sub); err != nil {
				return fmt.Errorf("oneOf: %w", err)
			}
		}
		return walkRef(s.Not)
	}

	if err := walkSchema(s); err != nil {
		return nil, nil, err
	}

	for _, sub := range s.AllOf {
		if sub != nil && sub.Ref != "" {
			if name, ok := RefName(sub.Ref); ok {
				parents = append(parents, name)
			}
		}
	}

	deps = make([]string, 0, len(seen))
	for name := range seen {
		deps = append(deps, name)
	}
	sort.Strings(deps)
	return deps, parents, nil
}

// RefName extracts the schema name from a reference string. It recognizes
// the component, $defs, and definitions forms.
func RefName(ref string) (string, bool) {
	for _, prefix := range []string{"#/components/schemas/", "#/$defs/", "#/definitions/"} {
		if name, ok := strings.CutPrefix(ref, prefix); ok && name != "" {
			return name, true
		}
	}
	return "", false
}

func componentSchemas(doc *openapi3.T) openapi3.Schemas {
	if doc == nil || doc.Components == nil {
		return nil
	}
	return doc.Components.Schemas
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
