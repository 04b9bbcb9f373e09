// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package emit renders generation results into target-format output.
package emit

import (
	"fmt"
	"sort"

	"github.com/dacolabs/oasgen/internal/generate"
)

// Emitter defines the interface all output-format emitters must implement.
type Emitter interface {
	// Emit renders a generation result. pkg names the output package (or
	// document title, depending on the target).
	Emit(pkg string, res *generate.Result) ([]byte, error)

	// FileExtension returns the appropriate file extension (e.g., ".go", ".md")
	FileExtension() string
}

// Register maps format names to their emitters.
type Register map[string]Emitter

// Get retrieves an emitter by format name.
func (r Register) Get(name string) (Emitter, error) {
	e, ok := r[name]
	if !ok {
		return nil, fmt.Errorf("unknown format: %s", name)
	}
	return e, nil
}

// Available returns all registered format names, sorted.
func (r Register) Available() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
