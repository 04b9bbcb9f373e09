// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRefs_SortedUniqueCustomOnly(t *testing.T) {
	extra := Ref("Extra")
	payload := Ref("Alpha")
	alias := Ref("Zulu")

	typ := Type{
		Name: "Mixed",
		Kind: KindRecord,
		Fields: []Field{
			{Name: "A", Type: Ref("Zulu")},
			{Name: "B", Type: Ref("Alpha")},
			{Name: "C", Type: Prim(BaseString)},
			{Name: "D", Type: Ref("Alpha")},
		},
		AdditionalProps: &extra,
		Variants:        []Variant{{Name: "V", Payload: &payload}},
		Alias:           &alias,
	}

	assert.Equal(t, []string{"Alpha", "Extra", "Zulu"}, typ.Refs())
}

func TestRefs_EmptyForPrimitives(t *testing.T) {
	alias := Prim(BaseNumber)
	typ := Type{Name: "Score", Kind: KindAlias, Alias: &alias}
	assert.Empty(t, typ.Refs())
}

func TestConstraintsEmpty(t *testing.T) {
	assert.True(t, Constraints{}.Empty())

	min := uint64(1)
	assert.False(t, Constraints{MinLength: &min}.Empty())
	assert.False(t, Constraints{Format: "uuid"}.Empty())
}

func TestWarningString(t *testing.T) {
	w := Warning{Scope: "schema", Name: "Pet", Err: assert.AnError}
	assert.Contains(t, w.String(), `schema "Pet"`)
}
