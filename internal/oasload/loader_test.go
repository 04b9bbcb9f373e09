// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package oasload

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const specYAML = `openapi: 3.0.3
info:
  title: petstore
  version: "1.0"
paths: {}
components:
  schemas:
    Pet:
      type: object
      properties:
        name:
          type: string
`

func TestLoadFile_YAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "api.yaml")
	require.NoError(t, os.WriteFile(path, []byte(specYAML), 0o600))

	doc, err := New().LoadFile(context.Background(), path)
	require.NoError(t, err)
	require.NotNil(t, doc.Components)
	assert.Contains(t, doc.Components.Schemas, "Pet")
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := New().LoadFile(context.Background(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load document")
}

func TestLoadData_JSON(t *testing.T) {
	data := []byte(`{"openapi":"3.0.3","info":{"title":"t","version":"1"},"paths":{}}`)

	doc, err := New().LoadData(context.Background(), data)
	require.NoError(t, err)
	assert.Equal(t, "t", doc.Info.Title)
}

func TestLoadData_ValidationIsOptIn(t *testing.T) {
	// Structurally loadable but invalid: info is required by validation.
	data := []byte(`{"openapi":"3.0.3","paths":{}}`)

	l := New()
	_, err := l.LoadData(context.Background(), data)
	require.NoError(t, err, "broken documents still load when validation is off")

	l.Validate = true
	_, err = l.LoadData(context.Background(), data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}
