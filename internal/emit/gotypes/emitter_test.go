// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package gotypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dacolabs/oasgen/internal/generate"
	"github.com/dacolabs/oasgen/internal/ir"
)

func result(types ...ir.Type) *generate.Result {
	return &generate.Result{Types: types}
}

func optional(tr ir.TypeRef) ir.TypeRef {
	tr.Nullable = true
	return tr
}

func TestEmit_Record(t *testing.T) {
	res := result(ir.Type{
		Name: "Pet",
		Kind: ir.KindRecord,
		Doc:  "A pet in the store.",
		Fields: []ir.Field{
			{Name: "Id", WireName: "id", Type: ir.Prim(ir.BaseInteger), Required: true},
			{Name: "Name", WireName: "name", Type: optional(ir.Prim(ir.BaseString))},
			{Name: "Tags", WireName: "tags", Type: ir.TypeRef{Base: ir.BaseString, Repeated: true}},
		},
	})

	out, err := (&Emitter{}).Emit("models", res)
	require.NoError(t, err)
	got := string(out)

	assert.Contains(t, got, "package models")
	assert.Contains(t, got, "// Pet A pet in the store.")
	assert.Contains(t, got, "type Pet struct {")
	assert.Contains(t, got, "Id int64 `json:\"id\"`")
	assert.Contains(t, got, "Name *string `json:\"name,omitempty\"`")
	assert.Contains(t, got, "Tags []string `json:\"tags,omitempty\"`")
	assert.NotContains(t, got, "import \"time\"")
}

func TestEmit_EnumConstants(t *testing.T) {
	res := result(ir.Type{
		Name: "Status",
		Kind: ir.KindTaggedUnion,
		Variants: []ir.Variant{
			{Name: "Active", Tag: "active"},
			{Name: "Active2", Tag: "Active", AliasOf: "Active"},
			{Name: "Closed", Tag: "closed"},
		},
	})

	out, err := (&Emitter{}).Emit("models", res)
	require.NoError(t, err)
	got := string(out)

	assert.Contains(t, got, "type Status string")
	assert.Contains(t, got, `StatusActive Status = "active"`)
	assert.Contains(t, got, "StatusActive2 = StatusActive")
	assert.Contains(t, got, `StatusClosed Status = "closed"`)
}

func TestEmit_UnionStruct(t *testing.T) {
	known := ir.Ref("ColorKnown")
	other := ir.Prim(ir.BaseString)
	res := result(ir.Type{
		Name: "Color",
		Kind: ir.KindTaggedUnion,
		Variants: []ir.Variant{
			{Name: "Known", Payload: &known},
			{Name: "Other", Payload: &other},
		},
	})

	out, err := (&Emitter{}).Emit("models", res)
	require.NoError(t, err)
	got := string(out)

	assert.Contains(t, got, "type Color struct {")
	assert.Contains(t, got, "Known *ColorKnown `json:\"-\"`")
	assert.Contains(t, got, "Other *string `json:\"-\"`")
}

func TestEmit_DiscriminatedUnionComment(t *testing.T) {
	cat := ir.Ref("Cat")
	res := result(ir.Type{
		Name: "Pet",
		Kind: ir.KindDiscriminatedUnion,
		Variants: []ir.Variant{
			{Name: "Cat", Tag: "cat", Payload: &cat},
		},
		Discriminator: &ir.Discriminator{Property: "petType"},
	})

	out, err := (&Emitter{}).Emit("models", res)
	require.NoError(t, err)
	got := string(out)

	assert.Contains(t, got, `carries the variant tag in its "petType" property`)
	assert.Contains(t, got, "Cat *Cat `json:\"-\"`")
}

func TestEmit_AliasAndTimeImport(t *testing.T) {
	res := result(
		ir.Type{
			Name:  "Timestamps",
			Kind:  ir.KindAlias,
			Alias: &ir.TypeRef{Base: ir.BaseString, Repeated: true},
		},
		ir.Type{
			Name: "Event",
			Kind: ir.KindRecord,
			Fields: []ir.Field{
				{Name: "At", WireName: "at", Type: ir.Prim(ir.BaseString), Required: true,
					Constraints: ir.Constraints{Format: "date-time"}},
			},
		},
	)

	out, err := (&Emitter{}).Emit("models", res)
	require.NoError(t, err)
	got := string(out)

	assert.Contains(t, got, "import \"time\"")
	assert.Contains(t, got, "type Timestamps []string")
	assert.Contains(t, got, "At time.Time `json:\"at\"`")
}

func TestEmit_AdditionalProperties(t *testing.T) {
	extra := ir.Prim(ir.BaseAny)
	res := result(ir.Type{
		Name:            "Bag",
		Kind:            ir.KindRecord,
		AdditionalProps: &extra,
	})

	out, err := (&Emitter{}).Emit("", res)
	require.NoError(t, err)
	got := string(out)

	assert.Contains(t, got, "package types", "empty package falls back")
	assert.Contains(t, got, "AdditionalProperties map[string]any `json:\"-\"`")
}

func TestEmit_BoxedFieldGetsPointer(t *testing.T) {
	next := ir.Ref("Node")
	next.Boxed = true
	res := result(ir.Type{
		Name: "Node",
		Kind: ir.KindRecord,
		Fields: []ir.Field{
			{Name: "Next", WireName: "next", Type: next},
		},
	})

	out, err := (&Emitter{}).Emit("models", res)
	require.NoError(t, err)
	assert.Contains(t, string(out), "Next *Node `json:\"next,omitempty\"`")
}
