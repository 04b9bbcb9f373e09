// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dacolabs/oasgen/internal/generate"
	"github.com/dacolabs/oasgen/internal/ir"
)

func TestEmit_RecordTable(t *testing.T) {
	min := uint64(1)
	res := &generate.Result{
		Types: []ir.Type{{
			Name: "Pet",
			Kind: ir.KindRecord,
			Doc:  "A pet in the store.",
			Fields: []ir.Field{
				{Name: "Name", WireName: "name", Type: ir.Prim(ir.BaseString), Required: true,
					Constraints: ir.Constraints{MinLength: &min}},
				{Name: "Friend", WireName: "friend", Type: ir.Ref("Pet")},
			},
		}},
		Summary: ir.Summary{Records: 1},
	}

	out, err := (&Emitter{}).Emit("Petstore", res)
	require.NoError(t, err)
	got := string(out)

	assert.Contains(t, got, "# Petstore")
	assert.Contains(t, got, "### Pet")
	assert.Contains(t, got, "*object*")
	assert.Contains(t, got, "A pet in the store.")
	assert.Contains(t, got, "| `name` | string | yes | minLength: 1 |")
	assert.Contains(t, got, "[Pet](#pet)")
}

func TestEmit_OperationsTable(t *testing.T) {
	res := &generate.Result{
		Types: []ir.Type{{Name: "Pet", Kind: ir.KindRecord}},
		Operations: []generate.Operation{
			{ID: "listPets", Method: "GET", Path: "/pets", Response: "Pet"},
		},
	}

	out, err := (&Emitter{}).Emit("Petstore", res)
	require.NoError(t, err)
	got := string(out)

	assert.Contains(t, got, "## Operations")
	assert.Contains(t, got, "| listPets | GET | `/pets` | none | [Pet](#pet) |")
}

func TestEmit_UnionAndEnumSections(t *testing.T) {
	cat := ir.Ref("Cat")
	res := &generate.Result{
		Types: []ir.Type{
			{
				Name: "Status",
				Kind: ir.KindTaggedUnion,
				Variants: []ir.Variant{
					{Name: "Active", Tag: "active"},
				},
			},
			{
				Name: "Pet",
				Kind: ir.KindDiscriminatedUnion,
				Variants: []ir.Variant{
					{Name: "Cat", Tag: "cat", Payload: &cat},
				},
				Discriminator: &ir.Discriminator{Property: "petType", Fallback: "Other"},
			},
		},
	}

	out, err := (&Emitter{}).Emit("Petstore", res)
	require.NoError(t, err)
	got := string(out)

	assert.Contains(t, got, "| `active` | Active |")
	assert.Contains(t, got, "Discriminated by the `petType` property; unrecognized values fall back to Other.")
	assert.Contains(t, got, "| Cat | `cat` | [Cat](#cat) |")
}

func TestFormatConstraints(t *testing.T) {
	max := float64(10)
	minItems := uint64(2)
	c := ir.Constraints{
		Pattern:          "^a+$",
		Maximum:          &max,
		ExclusiveMaximum: true,
		MinItems:         &minItems,
	}
	assert.Equal(t, "pattern: `^a+$`, exclusiveMaximum: 10, minItems: 2", formatConstraints(c))
}
