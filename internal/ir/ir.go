// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package ir defines the intermediate representation produced by the
// generation pipeline and consumed by the emitters.
package ir

import (
	"fmt"
	"sort"
)

// Kind identifies the shape of an IR type.
type Kind string

const (
	KindRecord             Kind = "record"
	KindTaggedUnion        Kind = "tagged-union"
	KindDiscriminatedUnion Kind = "discriminated-union"
	KindAlias              Kind = "alias"
)

// Primitive base names used in TypeRef when Custom is false.
const (
	BaseString  = "string"
	BaseInteger = "integer"
	BaseNumber  = "number"
	BaseBoolean = "boolean"
	BaseAny     = "any"
)

// TypeRef is a reference to a base type plus independent modifier flags.
// Base is either a primitive name or the name of another IR type (Custom).
// Boxed is set whenever Base participates in a reference cycle, so emitters
// can bound the size of self-referential values.
type TypeRef struct {
	Base        string
	Custom      bool
	Nullable    bool
	Repeated    bool
	Boxed       bool
	UniqueItems bool
}

// Prim returns a TypeRef to a primitive base type.
func Prim(base string) TypeRef {
	return TypeRef{Base: base}
}

// Ref returns a TypeRef to a named IR type.
func Ref(name string) TypeRef {
	return TypeRef{Base: name, Custom: true}
}

// Constraints holds the validation rules carried by a field.
type Constraints struct {
	Pattern          string
	Format           string
	MinLength        *uint64
	MaxLength        *uint64
	Minimum          *float64
	Maximum          *float64
	ExclusiveMinimum bool
	ExclusiveMaximum bool
	MultipleOf       *float64
	MinItems         *uint64
	MaxItems         *uint64
}

// Empty reports whether no constraint is set.
func (c Constraints) Empty() bool {
	return c == Constraints{}
}

// Field is a single property of a Record.
// Name is the generated identifier; WireName is the document property name
// the serializer must use when they differ.
type Field struct {
	Name        string
	WireName    string
	Type        TypeRef
	Required    bool
	HasDefault  bool
	Doc         string
	Constraints Constraints
}

// Variant is one alternative of a union type.
// Tag carries the original literal (enum value or discriminator value).
// Payload is nil for unit variants. AliasOf names an earlier variant this one
// collapsed into under the merge collision policy. CtorField names the single
// non-defaulted field of a record payload, when a convenience constructor can
// be inferred.
type Variant struct {
	Name      string
	Tag       string
	Payload   *TypeRef
	AliasOf   string
	CtorField string
}

// Discriminator describes the wire encoding of a discriminated union.
// Fallback names the catch-all variant, empty when the mapping is total.
type Discriminator struct {
	Property string
	Fallback string
}

// Caps is the derived capability set of a type.
type Caps struct {
	SerializeOut bool
	SerializeIn  bool
	Validatable  bool
}

// Type is one IR type definition. Exactly one of the kind-specific field
// groups is populated, per Kind.
type Type struct {
	Name string
	Kind Kind
	Doc  string

	// Record
	Fields          []Field
	AdditionalProps *TypeRef

	// TaggedUnion / DiscriminatedUnion
	Variants        []Variant
	Discriminator   *Discriminator
	CaseInsensitive bool

	// Alias
	Alias *TypeRef

	Caps Caps
}

// Refs returns the sorted, de-duplicated names of all IR types this type's
// definition references. Used to build the usage propagation graph.
func (t *Type) Refs() []string {
	seen := make(map[string]struct{})
	add := func(r *TypeRef) {
		if r != nil && r.Custom {
			seen[r.Base] = struct{}{}
		}
	}
	for i := range t.Fields {
		add(&t.Fields[i].Type)
	}
	add(t.AdditionalProps)
	for i := range t.Variants {
		add(t.Variants[i].Payload)
	}
	add(t.Alias)

	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Usage records the serialization directions a type is used in.
// Mutated only by the propagation pass, read-only afterwards.
type Usage struct {
	Request  bool
	Response bool
}

// Warning is a recovered per-entity error. Generation continues past it.
type Warning struct {
	Scope string // "schema", "operation", "naming", "registry"
	Name  string
	Err   error
}

func (w Warning) String() string {
	return fmt.Sprintf("%s %q: %v", w.Scope, w.Name, w.Err)
}

// Summary holds the counts reported alongside a generation result.
type Summary struct {
	Records int
	Unions  int
	Aliases int
	Cycles  int
	Orphans int
}
