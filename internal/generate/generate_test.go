// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package generate

import (
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dacolabs/oasgen/internal/config"
	"github.com/dacolabs/oasgen/internal/ir"
)

func ref(name string) *openapi3.SchemaRef {
	return &openapi3.SchemaRef{Ref: "#/components/schemas/" + name}
}

func obj(props openapi3.Schemas, required ...string) *openapi3.SchemaRef {
	return &openapi3.SchemaRef{Value: &openapi3.Schema{
		Type:       &openapi3.Types{"object"},
		Properties: props,
		Required:   required,
	}}
}

func str() *openapi3.SchemaRef {
	return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"string"}}}
}

func jsonResponse(sr *openapi3.SchemaRef) *openapi3.Responses {
	desc := "ok"
	responses := openapi3.NewResponses()
	responses.Delete("default")
	responses.Set("200", &openapi3.ResponseRef{
		Value: &openapi3.Response{
			Description: &desc,
			Content: openapi3.Content{
				"application/json": &openapi3.MediaType{Schema: sr},
			},
		},
	})
	return responses
}

func jsonRequest(sr *openapi3.SchemaRef) *openapi3.RequestBodyRef {
	return &openapi3.RequestBodyRef{
		Value: &openapi3.RequestBody{
			Content: openapi3.Content{
				"application/json": &openapi3.MediaType{Schema: sr},
			},
		},
	}
}

// petstoreDoc builds a small document exercising operations, references, and
// an unreferenced schema.
func petstoreDoc() *openapi3.T {
	paths := openapi3.NewPaths()
	paths.Set("/pets", &openapi3.PathItem{
		Get: &openapi3.Operation{
			OperationID: "listPets",
			Responses: jsonResponse(&openapi3.SchemaRef{Value: &openapi3.Schema{
				Type:  &openapi3.Types{"array"},
				Items: ref("Pet"),
			}}),
		},
		Post: &openapi3.Operation{
			OperationID: "createPet",
			RequestBody: jsonRequest(ref("NewPet")),
			Responses:   jsonResponse(ref("Pet")),
		},
	})

	return &openapi3.T{
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{
				"Pet":    obj(openapi3.Schemas{"id": str(), "name": str()}, "id", "name"),
				"NewPet": obj(openapi3.Schemas{"name": str()}, "name"),
				"Unused": obj(openapi3.Schemas{"x": str()}),
			},
		},
		Paths: paths,
	}
}

func TestRun_EndToEnd(t *testing.T) {
	res, err := Run(petstoreDoc(), nil)
	require.NoError(t, err)

	byName := map[string]*ir.Type{}
	for i := range res.Types {
		byName[res.Types[i].Name] = &res.Types[i]
	}

	require.Contains(t, byName, "Pet")
	require.Contains(t, byName, "NewPet")
	assert.NotContains(t, byName, "Unused", "orphans are dropped by default")

	require.Len(t, res.Operations, 2)
	assert.Equal(t, "listPets", res.Operations[0].ID)
	assert.Equal(t, "Pet", res.Operations[1].Response)
	assert.Equal(t, "NewPet", res.Operations[1].Request)

	// Pet only ever appears in responses; NewPet only in requests.
	pet := res.Usage["Pet"]
	require.NotNil(t, pet)
	assert.True(t, pet.Response)
	assert.False(t, pet.Request)

	newPet := res.Usage["NewPet"]
	require.NotNil(t, newPet)
	assert.True(t, newPet.Request)
	assert.False(t, newPet.Response)
}

func TestRun_CapsFollowUsage(t *testing.T) {
	res, err := Run(petstoreDoc(), nil)
	require.NoError(t, err)

	for i := range res.Types {
		tp := &res.Types[i]
		switch tp.Name {
		case "Pet":
			assert.True(t, tp.Caps.SerializeIn)
			assert.False(t, tp.Caps.SerializeOut)
		case "NewPet":
			assert.True(t, tp.Caps.SerializeOut)
			assert.False(t, tp.Caps.SerializeIn)
		}
	}
}

func TestRun_IncludeUnreferencedKeepsOrphans(t *testing.T) {
	cfg := config.Default()
	cfg.IncludeUnreferencedSchemas = true

	res, err := Run(petstoreDoc(), cfg)
	require.NoError(t, err)

	var unused *ir.Type
	for i := range res.Types {
		if res.Types[i].Name == "Unused" {
			unused = &res.Types[i]
		}
	}
	require.NotNil(t, unused)
	assert.True(t, unused.Caps.SerializeIn, "orphans default to bidirectional")
	assert.True(t, unused.Caps.SerializeOut)
	assert.Equal(t, 1, res.Summary.Orphans)
}

func TestRun_OperationDenyFilter(t *testing.T) {
	cfg := config.Default()
	cfg.Operations.Deny = []string{"createPet"}

	res, err := Run(petstoreDoc(), cfg)
	require.NoError(t, err)

	require.Len(t, res.Operations, 1)
	assert.Equal(t, "listPets", res.Operations[0].ID)
}

func TestRun_ValidatableCapFromConstraints(t *testing.T) {
	min := uint64(1)
	doc := petstoreDoc()
	doc.Components.Schemas["Pet"].Value.Properties["name"].Value.MinLength = min

	res, err := Run(doc, nil)
	require.NoError(t, err)

	for i := range res.Types {
		if res.Types[i].Name == "Pet" {
			assert.True(t, res.Types[i].Caps.Validatable)
			return
		}
	}
	t.Fatal("Pet not generated")
}

func TestRun_NilDocumentFails(t *testing.T) {
	_, err := Run(nil, nil)
	require.Error(t, err)
}

func TestRun_EmptyDocumentFails(t *testing.T) {
	doc := &openapi3.T{Components: &openapi3.Components{Schemas: openapi3.Schemas{}}}
	_, err := Run(doc, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no usable IR types")
}

func TestRun_IsIdempotent(t *testing.T) {
	first, err := Run(petstoreDoc(), nil)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := Run(petstoreDoc(), nil)
		require.NoError(t, err)
		if diff := cmp.Diff(first.Types, again.Types); diff != "" {
			t.Fatalf("types differ between runs (-first +again):\n%s", diff)
		}
		if diff := cmp.Diff(first.Operations, again.Operations); diff != "" {
			t.Fatalf("operations differ between runs (-first +again):\n%s", diff)
		}
	}
}
