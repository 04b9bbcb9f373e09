// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package naming assigns a unique, deterministic name to every schema that
// needs one, including anonymous inline schemas. Naming runs in two phases
// over the whole document before any schema is converted: first candidates
// are collected keyed by semantic identity, then proposals are resolved and
// de-duplicated in a fixed order.
package naming

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/dacolabs/oasgen/internal/ir"
	"github.com/dacolabs/oasgen/internal/registry"
)

// suffixLimit bounds the numeric-suffix search during de-duplication.
// Hitting it means the used-name set is corrupt, an upstream defect.
const suffixLimit = 10000

// Index maps semantic identity keys to resolved type names.
type Index struct {
	byKey    map[string]string
	used     map[string]struct{}
	warnings []ir.Warning
}

type proposal struct {
	name          string
	authoritative bool
}

type candidate struct {
	key       string
	enum      bool
	proposals []proposal
}

type scanner struct {
	schemas openapi3.Schemas
	cands   map[string]*candidate
}

// Scan walks the document and resolves a name for every distinct structural
// identity that may need one. The only error is suffix exhaustion during
// de-duplication, a logic error rather than input noise.
func Scan(doc *openapi3.T) (*Index, error) {
	sc := &scanner{
		schemas: componentSchemas(doc),
		cands:   make(map[string]*candidate),
	}

	for _, name := range sortedKeys(sc.schemas) {
		sr := sc.schemas[name]
		if sr == nil || sr.Value == nil {
			continue
		}
		s := sr.Value
		switch {
		case enumShaped(s):
			sc.propose(EnumKey(s.Enum), true, name, true)
		case objectShaped(s):
			sc.propose(ObjectKey(s), false, name, true)
		}
		sc.walkInline(name, s)
	}

	sc.scanOperations(doc)

	return sc.resolve()
}

// Enum returns the resolved name for an enum value set.
func (ix *Index) Enum(values []any) (string, bool) {
	name, ok := ix.byKey[EnumKey(values)]
	return name, ok
}

// Object returns the resolved name for an inline object schema's structural
// identity.
func (ix *Index) Object(s *openapi3.Schema) (string, bool) {
	name, ok := ix.byKey[ObjectKey(s)]
	return name, ok
}

// Reserve claims a fresh name derived from base, appending the smallest
// unused numeric suffix on collision. Used by the resolver for companion
// types it mints during conversion; single-threaded by design.
func (ix *Index) Reserve(base string) string {
	name, err := dedupe(ix.used, base)
	if err != nil {
		// Exhaustion here has the same cause as in resolve; surface the
		// base name so the defect is traceable.
		ix.warnings = append(ix.warnings, ir.Warning{Scope: "naming", Name: base, Err: err})
		return base
	}
	ix.used[name] = struct{}{}
	return name
}

// Warnings returns naming warnings accumulated during scan and reserve.
func (ix *Index) Warnings() []ir.Warning {
	return ix.warnings
}

func (sc *scanner) propose(key string, enum bool, name string, authoritative bool) {
	c, ok := sc.cands[key]
	if !ok {
		c = &candidate{key: key, enum: enum}
		sc.cands[key] = c
	}
	for _, p := range c.proposals {
		if p.name == name {
			return
		}
	}
	c.proposals = append(c.proposals, proposal{name: name, authoritative: authoritative})
}

// walkInline recurses into the anonymous sub-schemas of s, proposing a
// path-derived name (enclosing names concatenated with the property name)
// for every inline enum or object found. It never crosses into a named
// schema's own internals.
func (sc *scanner) walkInline(path string, s *openapi3.Schema) {
	if s == nil {
		return
	}

	visit := func(childPath string, sr *openapi3.SchemaRef) {
		if sr == nil || sr.Ref != "" || sr.Value == nil {
			return
		}
		child := sr.Value
		switch {
		case enumShaped(child):
			sc.propose(EnumKey(child.Enum), true, childPath, false)
		case objectShaped(child):
			sc.propose(ObjectKey(child), false, childPath, false)
		}
		sc.walkInline(childPath, child)
	}

	for _, prop := range sortedKeys(s.Properties) {
		visit(path+Pascal(prop), s.Properties[prop])
	}
	if s.Items != nil {
		visit(path+"Item", s.Items)
	}
	if s.AdditionalProperties.Schema != nil {
		visit(path+"Value", s.AdditionalProperties.Schema)
	}
	for _, sub := range s.AllOf {
		// Inline allOf branches contribute fields to the enclosing schema
		// rather than forming a type of their own.
		if sub != nil && sub.Ref == "" && sub.Value != nil {
			sc.walkInline(path, sub.Value)
		}
	}
	for i, sub := range s.OneOf {
		visit(BranchPath(path, i, sub), sub)
	}
	for i, sub := range s.AnyOf {
		visit(BranchPath(path, i, sub), sub)
	}
}

// BranchPath derives a proposal name for a union branch: the branch title
// when present, otherwise an ordinal variant name under the union's path.
func BranchPath(path string, i int, sr *openapi3.SchemaRef) string {
	if sr != nil && sr.Value != nil && sr.Value.Title != "" {
		return Pascal(sr.Value.Title)
	}
	return path + "Variant" + strconv.Itoa(i)
}

func (sc *scanner) scanOperations(doc *openapi3.T) {
	if doc == nil || doc.Paths == nil {
		return
	}
	paths := doc.Paths.Map()
	for _, path := range sortedKeys(paths) {
		item := paths[path]
		if item == nil {
			continue
		}
		ops := item.Operations()
		for _, method := range sortedKeys(ops) {
			op := ops[method]
			if op == nil {
				continue
			}
			base := OperationName(method, path, op.OperationID)
			if body := RequestSchema(op); body != nil && body.Ref == "" && body.Value != nil {
				name := base + "Request"
				if objectShaped(body.Value) {
					sc.propose(ObjectKey(body.Value), false, name, false)
				} else if enumShaped(body.Value) {
					sc.propose(EnumKey(body.Value.Enum), true, name, false)
				}
				sc.walkInline(name, body.Value)
			}
			if resp := ResponseSchema(op); resp != nil && resp.Ref == "" && resp.Value != nil {
				name := base + "Response"
				if objectShaped(resp.Value) {
					sc.propose(ObjectKey(resp.Value), false, name, false)
				} else if enumShaped(resp.Value) {
					sc.propose(EnumKey(resp.Value.Enum), true, name, false)
				}
				sc.walkInline(name, resp.Value)
			}
		}
	}
}

// resolve fixes the final name of every candidate: enum candidates first,
// then object candidates, each in lexical key order, de-duplicated against a
// used-name set seeded with every top-level schema name.
func (sc *scanner) resolve() (*Index, error) {
	ix := &Index{
		byKey: make(map[string]string, len(sc.cands)),
		used:  make(map[string]struct{}),
	}
	for name := range sc.schemas {
		ix.used[name] = struct{}{}
	}

	keys := make([]string, 0, len(sc.cands))
	for key := range sc.cands {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		ci, cj := sc.cands[keys[i]], sc.cands[keys[j]]
		if ci.enum != cj.enum {
			return ci.enum
		}
		return keys[i] < keys[j]
	})

	for _, key := range keys {
		c := sc.cands[key]
		name, authoritative := pick(c)
		if authoritative {
			// The name denotes the top-level schema itself; it is already
			// in the used set and needs no de-duplication.
			ix.byKey[key] = name
			continue
		}
		unique, err := dedupe(ix.used, name)
		if err != nil {
			return nil, fmt.Errorf("naming collision exhaustion for %q: %w", name, err)
		}
		ix.used[unique] = struct{}{}
		ix.byKey[key] = unique
	}

	return ix, nil
}

// pick selects the winning proposal for a candidate: an authoritative
// proposal outright; a single proposal as-is; otherwise the longest common
// word-boundary suffix of all proposals when it makes a valid name, falling
// back to the first proposal in scan order.
func pick(c *candidate) (name string, authoritative bool) {
	for _, p := range c.proposals {
		if p.authoritative {
			return p.name, true
		}
	}
	if len(c.proposals) == 1 {
		return c.proposals[0].name, false
	}
	names := make([]string, len(c.proposals))
	for i, p := range c.proposals {
		names[i] = p.name
	}
	if suffix := commonSuffix(names); validSharedName(suffix) {
		return suffix, false
	}
	return c.proposals[0].name, false
}

func dedupe(used map[string]struct{}, base string) (string, error) {
	if _, taken := used[base]; !taken {
		return base, nil
	}
	for i := 2; i < suffixLimit; i++ {
		name := base + strconv.Itoa(i)
		if _, taken := used[name]; !taken {
			return name, nil
		}
	}
	return "", fmt.Errorf("no unused suffix below %d", suffixLimit)
}

// EnumKey canonicalizes an enum value set into an identity key: two inline
// enums with the same values share one key regardless of where they appear.
func EnumKey(values []any) string {
	lits := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		l := Literal(v)
		if _, dup := seen[l]; dup {
			continue
		}
		seen[l] = struct{}{}
		lits = append(lits, l)
	}
	sort.Strings(lits)
	return "enum|" + strings.Join(lits, "\x1f")
}

// ObjectKey computes a canonical structural fingerprint for an object
// schema: its sorted field names with required markers and recursive type
// signatures. Two inline objects share a key only when they are structurally
// identical all the way down.
func ObjectKey(s *openapi3.Schema) string {
	required := make(map[string]struct{}, len(s.Required))
	for _, name := range s.Required {
		required[name] = struct{}{}
	}

	var sb strings.Builder
	sb.WriteString("obj|")
	for _, name := range sortedKeys(s.Properties) {
		sb.WriteString(name)
		if _, req := required[name]; req {
			sb.WriteByte('!')
		}
		sb.WriteByte(':')
		sb.WriteString(deepSig(s.Properties[name]))
		sb.WriteByte('\x1f')
	}
	if s.AdditionalProperties.Schema != nil {
		sb.WriteString("*:")
		sb.WriteString(deepSig(s.AdditionalProperties.Schema))
	}
	return sb.String()
}

// deepSig is the canonical type signature of a property: references
// contribute their name, inline sub-objects and sub-unions contribute their
// full structure. Inline schemas cannot form reference cycles, so the
// recursion terminates.
func deepSig(sr *openapi3.SchemaRef) string {
	if sr == nil {
		return "?"
	}
	if sr.Ref != "" {
		if name, ok := registry.RefName(sr.Ref); ok {
			return "$" + name
		}
		return "$" + sr.Ref
	}
	s := sr.Value
	if s == nil {
		return "?"
	}
	if enumShaped(s) {
		return EnumKey(s.Enum)
	}
	if len(s.OneOf) > 0 || len(s.AnyOf) > 0 {
		return unionSig(s)
	}
	typ, _ := registry.PrimaryType(s)
	switch typ {
	case "array":
		return "[]" + deepSig(s.Items)
	case "object":
		return ObjectKey(s)
	case "":
		if len(s.Properties) > 0 || s.AdditionalProperties.Schema != nil {
			return ObjectKey(s)
		}
		return "any"
	default:
		return typ
	}
}

// unionSig canonicalizes a oneOf/anyOf into an order-independent branch-set
// signature.
func unionSig(s *openapi3.Schema) string {
	sigs := make([]string, 0, len(s.OneOf)+len(s.AnyOf))
	for _, b := range s.OneOf {
		sigs = append(sigs, deepSig(b))
	}
	for _, b := range s.AnyOf {
		sigs = append(sigs, deepSig(b))
	}
	sort.Strings(sigs)
	return "union(" + strings.Join(sigs, "\x1f") + ")"
}

// Literal renders an enum value as its canonical literal text.
func Literal(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// OperationName derives a stable PascalCase base name for an operation,
// preferring its operationId.
func OperationName(method, path, operationID string) string {
	if operationID != "" {
		return Pascal(operationID)
	}
	return Pascal(strings.ToLower(method)) + Pascal(path)
}

func enumShaped(s *openapi3.Schema) bool {
	return s != nil && len(s.Enum) > 0
}

func objectShaped(s *openapi3.Schema) bool {
	if s == nil || len(s.OneOf) > 0 || len(s.AnyOf) > 0 {
		return false
	}
	typ, _ := registry.PrimaryType(s)
	return typ == "object" || (typ == "" && len(s.Properties) > 0)
}

// RequestSchema returns the JSON request body schema of an operation, nil
// when it has none.
func RequestSchema(op *openapi3.Operation) *openapi3.SchemaRef {
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil
	}
	return jsonContentSchema(op.RequestBody.Value.Content)
}

// ResponseSchema returns the JSON schema of the lowest 2xx response, nil
// when there is none.
func ResponseSchema(op *openapi3.Operation) *openapi3.SchemaRef {
	if op.Responses == nil {
		return nil
	}
	statuses := sortedKeys(op.Responses.Map())
	for _, status := range statuses {
		if !strings.HasPrefix(status, "2") {
			continue
		}
		resp := op.Responses.Map()[status]
		if resp == nil || resp.Value == nil {
			continue
		}
		if sr := jsonContentSchema(resp.Value.Content); sr != nil {
			return sr
		}
	}
	return nil
}

func jsonContentSchema(content openapi3.Content) *openapi3.SchemaRef {
	for _, ct := range []string{"application/json", "application/json; charset=utf-8"} {
		if mt, ok := content[ct]; ok && mt != nil {
			return mt.Schema
		}
	}
	// Any JSON-ish content type, in sorted order for determinism.
	for _, ct := range sortedKeys(content) {
		if strings.Contains(ct, "json") && content[ct] != nil {
			return content[ct].Schema
		}
	}
	return nil
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
