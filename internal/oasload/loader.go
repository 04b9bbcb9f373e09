// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package oasload loads OpenAPI documents into the parsed object model the
// generation pipeline consumes. Parsing and reference resolution belong to
// the underlying library; this package only owns loading policy.
package oasload

import (
	"context"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

// Loader loads OpenAPI documents from files or raw bytes.
type Loader struct {
	// AllowExternalRefs permits references into other files.
	AllowExternalRefs bool
	// Validate runs the library's structural validation after loading.
	// Generation itself tolerates broken schemas, so this is opt-in.
	Validate bool
}

// New creates a Loader with external references enabled.
func New() *Loader {
	return &Loader{AllowExternalRefs: true}
}

// LoadFile loads and parses an OpenAPI document. JSON and YAML are both
// accepted; the format is detected by the underlying loader.
func (l *Loader) LoadFile(ctx context.Context, path string) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx
	loader.IsExternalRefsAllowed = l.AllowExternalRefs

	doc, err := loader.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}
	if l.Validate {
		if err := doc.Validate(ctx); err != nil {
			return nil, fmt.Errorf("document validation failed: %w", err)
		}
	}
	return doc, nil
}

// LoadData parses an OpenAPI document from raw bytes.
func (l *Loader) LoadData(ctx context.Context, data []byte) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx
	loader.IsExternalRefsAllowed = l.AllowExternalRefs

	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	if l.Validate {
		if err := doc.Validate(ctx); err != nil {
			return nil, fmt.Errorf("document validation failed: %w", err)
		}
	}
	return doc, nil
}
