// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package registry

// detectCycles marks every schema participating in a reference cycle:
// members of any strongly-connected component of size > 1, plus self-loops.
// Tarjan's algorithm over the dependency graph, visiting nodes and edges in
// sorted order for deterministic results.
func (r *Registry) detectCycles() {
	index := 0
	indices := make(map[string]int, len(r.nodes))
	lowlink := make(map[string]int, len(r.nodes))
	onStack := make(map[string]bool, len(r.nodes))
	var stack []string

	var connect func(v string)
	connect = func(v string) {
		indices[v] = index
		lowlink[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range r.nodes[v].deps {
			if _, ok := r.nodes[w]; !ok {
				continue
			}
			if _, visited := indices[w]; !visited {
				connect(w)
				if lowlink[w] < lowlink[v] {
					lowlink[v] = lowlink[w]
				}
			} else if onStack[w] && indices[w] < lowlink[v] {
				lowlink[v] = indices[w]
			}
		}

		if lowlink[v] == indices[v] {
			var component []string
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				component = append(component, w)
				if w == v {
					break
				}
			}
			if len(component) > 1 {
				for _, name := range component {
					r.cyclic[name] = struct{}{}
				}
			} else if r.hasSelfLoop(component[0]) {
				r.cyclic[component[0]] = struct{}{}
			}
		}
	}

	for _, name := range r.names {
		if _, visited := indices[name]; !visited {
			connect(name)
		}
	}
}

func (r *Registry) hasSelfLoop(name string) bool {
	for _, dep := range r.nodes[name].deps {
		if dep == name {
			return true
		}
	}
	return false
}
