// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package usage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dacolabs/oasgen/internal/ir"
)

func record(name string, deps ...string) ir.Type {
	t := ir.Type{Name: name, Kind: ir.KindRecord}
	for _, d := range deps {
		t.Fields = append(t.Fields, ir.Field{Name: d, Type: ir.Ref(d)})
	}
	return t
}

func TestPropagate_FlagsFlowToDependencies(t *testing.T) {
	types := []ir.Type{
		record("Order", "Customer", "Line"),
		record("Customer", "Address"),
		record("Address"),
		record("Line"),
		record("Receipt", "Address"),
	}
	seeds := []Seed{
		{Type: "Order", Request: true},
		{Type: "Receipt", Response: true},
	}

	flags, orphans := Propagate(types, seeds)

	assert.Empty(t, orphans)
	assert.True(t, flags["Order"].Request)
	assert.False(t, flags["Order"].Response)
	assert.True(t, flags["Customer"].Request)
	assert.True(t, flags["Line"].Request)
	assert.True(t, flags["Receipt"].Response)

	// Address is reachable from both directions.
	assert.True(t, flags["Address"].Request)
	assert.True(t, flags["Address"].Response)
}

func TestPropagate_OrphansDefaultBidirectional(t *testing.T) {
	types := []ir.Type{
		record("Used"),
		record("Lonely", "Helper"),
		record("Helper"),
	}
	seeds := []Seed{{Type: "Used", Request: true, Response: true}}

	flags, orphans := Propagate(types, seeds)

	require.Equal(t, []string{"Helper", "Lonely"}, orphans)
	assert.True(t, flags["Lonely"].Request)
	assert.True(t, flags["Lonely"].Response)
	assert.True(t, flags["Helper"].Request, "orphan defaults propagate onward too")
	assert.True(t, flags["Helper"].Response)
}

func TestPropagate_CyclesTerminate(t *testing.T) {
	types := []ir.Type{
		record("A", "B"),
		record("B", "A"),
	}
	seeds := []Seed{{Type: "A", Request: true}}

	flags, orphans := Propagate(types, seeds)

	assert.Empty(t, orphans)
	assert.True(t, flags["A"].Request)
	assert.True(t, flags["B"].Request)
	assert.False(t, flags["B"].Response)
}

func TestPropagate_SeedForUnknownTypeIsIgnored(t *testing.T) {
	types := []ir.Type{record("Known")}
	seeds := []Seed{
		{Type: "Gone", Request: true},
		{Type: "Known", Response: true},
	}

	flags, orphans := Propagate(types, seeds)

	assert.Empty(t, orphans)
	assert.True(t, flags["Known"].Response)
	assert.NotContains(t, flags, "Gone")
}
