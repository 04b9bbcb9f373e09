// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package generate orchestrates the generation pipeline: registry build,
// name index scan, type resolution, operation conversion, and usage
// propagation. The whole pipeline is a pure transform over an immutable
// document; all ordering derives from sorted keys, so repeated runs on the
// same input produce identical results.
package generate

import (
	"errors"
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/dacolabs/oasgen/internal/config"
	"github.com/dacolabs/oasgen/internal/ir"
	"github.com/dacolabs/oasgen/internal/naming"
	"github.com/dacolabs/oasgen/internal/registry"
	"github.com/dacolabs/oasgen/internal/resolve"
	"github.com/dacolabs/oasgen/internal/usage"
)

// Operation is the converted view of one document operation, kept for the
// emitters and for usage seeding.
type Operation struct {
	ID       string
	Method   string
	Path     string
	Request  string // IR type name of the request payload, "" when none
	Response string // IR type name of the response payload, "" when none
}

// Result is everything the pipeline hands to the external emitter.
type Result struct {
	Types      []ir.Type
	Usage      map[string]*ir.Usage
	Operations []Operation
	Warnings   []ir.Warning
	Summary    ir.Summary
}

// Run executes the full pipeline over a parsed document. Per-schema and
// per-operation failures downgrade to warnings; Run fails only when zero
// usable IR types result, or on a naming invariant violation.
func Run(doc *openapi3.T, cfg *config.Config) (*Result, error) {
	if doc == nil {
		return nil, errors.New("nil document")
	}
	if cfg == nil {
		cfg = config.Default()
	}

	reg := registry.Build(doc)

	ix, err := naming.Scan(doc)
	if err != nil {
		return nil, fmt.Errorf("naming: %w", err)
	}

	res := resolve.New(reg, ix, cfg)
	res.ConvertAll()

	ops, seeds, opWarnings := convertOperations(doc, cfg, res)

	types := res.Types()
	usageMap, orphans := usage.Propagate(types, seeds)

	if !cfg.IncludeUnreferencedSchemas && len(orphans) > 0 {
		types = dropOrphans(types, usageMap, orphans)
	}

	deriveCaps(types, usageMap)

	result := &Result{
		Types:      types,
		Usage:      usageMap,
		Operations: ops,
		Summary:    summarize(types, reg, orphans),
	}
	result.Warnings = append(result.Warnings, reg.Warnings()...)
	result.Warnings = append(result.Warnings, ix.Warnings()...)
	result.Warnings = append(result.Warnings, res.Warnings()...)
	result.Warnings = append(result.Warnings, opWarnings...)

	if len(result.Types) == 0 {
		return nil, errors.New("no usable IR types were generated")
	}
	return result, nil
}

// convertOperations walks the document's operations in sorted path/method
// order, resolves their payload types, and derives the usage seeds. Each
// operation recovers its own failures; siblings are unaffected.
func convertOperations(doc *openapi3.T, cfg *config.Config, res *resolve.Resolver) ([]Operation, []usage.Seed, []ir.Warning) {
	var (
		ops      []Operation
		seeds    []usage.Seed
		warnings []ir.Warning
	)
	if doc.Paths == nil {
		return nil, nil, nil
	}

	paths := doc.Paths.Map()
	for _, path := range sortedKeys(paths) {
		item := paths[path]
		if item == nil {
			continue
		}
		methods := item.Operations()
		for _, method := range sortedKeys(methods) {
			op := methods[method]
			if op == nil {
				continue
			}
			if op.OperationID != "" && !cfg.OperationAllowed(op.OperationID) {
				continue
			}

			converted, opSeeds, err := convertOperation(method, path, op, res)
			if err != nil {
				warnings = append(warnings, ir.Warning{
					Scope: "operation",
					Name:  naming.OperationName(method, path, op.OperationID),
					Err:   err,
				})
				continue
			}
			ops = append(ops, converted)
			seeds = append(seeds, opSeeds...)
		}
	}
	return ops, seeds, warnings
}

func convertOperation(method, path string, op *openapi3.Operation, res *resolve.Resolver) (Operation, []usage.Seed, error) {
	base := naming.OperationName(method, path, op.OperationID)
	out := Operation{ID: op.OperationID, Method: method, Path: path}
	var seeds []usage.Seed

	if sr := naming.RequestSchema(op); sr != nil {
		tr, err := res.ResolveOperand(sr, base+"Request")
		if err != nil {
			return Operation{}, nil, fmt.Errorf("request body: %w", err)
		}
		if tr.Custom {
			out.Request = tr.Base
			seeds = append(seeds, usage.Seed{Type: tr.Base, Request: true})
		}
	}

	// Parameter payloads count as request usage too.
	for _, pr := range op.Parameters {
		if pr == nil || pr.Value == nil || pr.Value.Schema == nil {
			continue
		}
		tr, err := res.ResolveOperand(pr.Value.Schema, base+naming.Pascal(pr.Value.Name))
		if err != nil {
			return Operation{}, nil, fmt.Errorf("parameter %q: %w", pr.Value.Name, err)
		}
		if tr.Custom {
			seeds = append(seeds, usage.Seed{Type: tr.Base, Request: true})
		}
	}

	if sr := naming.ResponseSchema(op); sr != nil {
		tr, err := res.ResolveOperand(sr, base+"Response")
		if err != nil {
			return Operation{}, nil, fmt.Errorf("response: %w", err)
		}
		if tr.Custom {
			out.Response = tr.Base
			seeds = append(seeds, usage.Seed{Type: tr.Base, Response: true})
		}
	}

	return out, seeds, nil
}

func dropOrphans(types []ir.Type, usageMap map[string]*ir.Usage, orphans []string) []ir.Type {
	orphaned := make(map[string]struct{}, len(orphans))
	for _, name := range orphans {
		orphaned[name] = struct{}{}
		delete(usageMap, name)
	}
	kept := types[:0]
	for _, t := range types {
		if _, gone := orphaned[t.Name]; !gone {
			kept = append(kept, t)
		}
	}
	return kept
}

// deriveCaps fills each type's capability set from its saturated usage:
// request-used types serialize out, response-used types serialize in, and
// any type carrying validation constraints is validatable.
func deriveCaps(types []ir.Type, usageMap map[string]*ir.Usage) {
	for i := range types {
		t := &types[i]
		if u := usageMap[t.Name]; u != nil {
			t.Caps.SerializeOut = u.Request
			t.Caps.SerializeIn = u.Response
		}
		for _, f := range t.Fields {
			if !f.Constraints.Empty() {
				t.Caps.Validatable = true
				break
			}
		}
	}
}

func summarize(types []ir.Type, reg *registry.Registry, orphans []string) ir.Summary {
	s := ir.Summary{
		Cycles:  len(reg.CycleNames()),
		Orphans: len(orphans),
	}
	for _, t := range types {
		switch t.Kind {
		case ir.KindRecord:
			s.Records++
		case ir.KindTaggedUnion, ir.KindDiscriminatedUnion:
			s.Unions++
		case ir.KindAlias:
			s.Aliases++
		}
	}
	return s
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
