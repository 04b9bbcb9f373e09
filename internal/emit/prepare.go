// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package emit

import (
	"github.com/dacolabs/oasgen/internal/generate"
	"github.com/dacolabs/oasgen/internal/ir"
)

// TypeResolver maps IR type references onto target-language type strings.
// Each emitter supplies its own implementation.
type TypeResolver interface {
	// PrimitiveType maps a primitive base and optional format to a type string.
	PrimitiveType(base, format string) string

	// ArrayType wraps an element type into the target's list type.
	ArrayType(elemType string) string

	// RefType maps a named IR type to the target's reference spelling.
	RefType(name string) string

	// EnrichField applies target-specific field adjustments (tags,
	// optionality wrappers, identifier casing).
	EnrichField(f *Field)
}

// Data is the complete input passed to an emitter template.
type Data struct {
	Types      []TypeDef            // IR types in pipeline order
	Operations []generate.Operation // converted operations in document order
	Summary    ir.Summary
	Extra      map[string]any // emitter-specific template data
}

// TypeDef is the prepared view of one IR type.
type TypeDef struct {
	Name string
	Kind ir.Kind
	Doc  string

	Fields          []Field // record fields
	AdditionalProps string  // map value type, "" when closed

	Variants        []Variant // union variants
	Enum            bool      // all variants are unit variants
	Discriminator   *ir.Discriminator
	CaseInsensitive bool

	Alias string // aliased type string

	Caps ir.Caps
}

// Field is the prepared view of one record field.
type Field struct {
	Name        string // generated identifier (may be mutated by EnrichField)
	WireName    string // document property name
	Type        string // fully resolved target type string
	Nullable    bool
	Boxed       bool
	Required    bool
	Tag         string // language-specific annotation, e.g. `json:"name,omitempty"`
	Doc         string
	Constraints ir.Constraints
}

// Variant is the prepared view of one union variant.
type Variant struct {
	Name      string
	Tag       string // original literal or discriminator value
	Type      string // payload type string, "" for unit variants
	Boxed     bool
	AliasOf   string
	CtorField string
}

// Prepare converts a generation result into a Data ready for template
// execution, resolving every type reference through the given resolver.
// Ordering follows the result exactly; Prepare adds no ordering of its own.
func Prepare(res *generate.Result, resolver TypeResolver) *Data {
	data := &Data{
		Operations: res.Operations,
		Summary:    res.Summary,
		Extra:      make(map[string]any),
	}

	for i := range res.Types {
		data.Types = append(data.Types, prepareType(&res.Types[i], resolver))
	}
	return data
}

func prepareType(t *ir.Type, resolver TypeResolver) TypeDef {
	def := TypeDef{
		Name:            t.Name,
		Kind:            t.Kind,
		Doc:             t.Doc,
		Discriminator:   t.Discriminator,
		CaseInsensitive: t.CaseInsensitive,
		Caps:            t.Caps,
	}

	for i := range t.Fields {
		f := &t.Fields[i]
		field := Field{
			Name:        f.Name,
			WireName:    f.WireName,
			Type:        typeString(f.Type, f.Constraints.Format, resolver),
			Nullable:    f.Type.Nullable,
			Boxed:       f.Type.Boxed,
			Required:    f.Required,
			Doc:         f.Doc,
			Constraints: f.Constraints,
		}
		resolver.EnrichField(&field)
		def.Fields = append(def.Fields, field)
	}
	if t.AdditionalProps != nil {
		def.AdditionalProps = typeString(*t.AdditionalProps, "", resolver)
	}

	def.Enum = len(t.Variants) > 0
	for i := range t.Variants {
		v := &t.Variants[i]
		variant := Variant{
			Name:      v.Name,
			Tag:       v.Tag,
			AliasOf:   v.AliasOf,
			CtorField: v.CtorField,
		}
		if v.Payload != nil {
			variant.Type = typeString(*v.Payload, "", resolver)
			variant.Boxed = v.Payload.Boxed
			def.Enum = false
		}
		def.Variants = append(def.Variants, variant)
	}

	if t.Alias != nil {
		def.Alias = typeString(*t.Alias, "", resolver)
	}

	return def
}

func typeString(tr ir.TypeRef, format string, resolver TypeResolver) string {
	var s string
	if tr.Custom {
		s = resolver.RefType(tr.Base)
	} else {
		s = resolver.PrimitiveType(tr.Base, format)
	}
	if tr.Repeated {
		s = resolver.ArrayType(s)
	}
	return s
}
