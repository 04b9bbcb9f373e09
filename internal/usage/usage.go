// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package usage classifies every IR type by serialization direction. Seeds
// come from the request/response roles types play in operations; a worklist
// pass then saturates the flags across the IR dependency graph.
package usage

import (
	"sort"

	"github.com/dacolabs/oasgen/internal/ir"
)

// Seed is the initial classification of a type taken directly from its role
// in an operation, before propagation.
type Seed struct {
	Type     string
	Request  bool
	Response bool
}

// Propagate computes the usage map over the given IR types. It returns the
// saturated per-type flags and the sorted names of orphans: types no seed
// reached at all. Orphans default to bidirectional — the conservative,
// always-safe outcome — and are propagated too, so they still generate fully
// usable code when the emit-unreferenced policy keeps them.
//
// The pass is a breadth-first worklist over monotone boolean flags: each
// node flips at most twice, so it terminates in O(V+E).
func Propagate(types []ir.Type, seeds []Seed) (map[string]*ir.Usage, []string) {
	edges := make(map[string][]string, len(types))
	flags := make(map[string]*ir.Usage, len(types))
	for i := range types {
		edges[types[i].Name] = types[i].Refs()
		flags[types[i].Name] = &ir.Usage{}
	}

	var queue []string
	mark := func(name string, req, resp bool) {
		u, ok := flags[name]
		if !ok {
			return
		}
		changed := false
		if req && !u.Request {
			u.Request = true
			changed = true
		}
		if resp && !u.Response {
			u.Response = true
			changed = true
		}
		if changed {
			queue = append(queue, name)
		}
	}

	drain := func() {
		for len(queue) > 0 {
			name := queue[0]
			queue = queue[1:]
			u := flags[name]
			for _, dep := range edges[name] {
				mark(dep, u.Request, u.Response)
			}
		}
	}

	for _, s := range seeds {
		mark(s.Type, s.Request, s.Response)
	}
	drain()

	var orphans []string
	for name, u := range flags {
		if !u.Request && !u.Response {
			orphans = append(orphans, name)
		}
	}
	sort.Strings(orphans)

	for _, name := range orphans {
		mark(name, true, true)
	}
	drain()

	return flags, orphans
}
