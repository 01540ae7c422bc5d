// Package dtype describes the structural shape of data — primitive, list,
// record (product), sum (choice), optional and recursive — independently of
// any particular carrier. The package is named dtype, not type, because
// type is a Go keyword.
package dtype

import "fmt"

// Kind is the structural tag of a Type.
type Kind int

const (
	KindPrimitive Kind = iota
	KindList
	KindRecord
	KindSum
	KindOptional
	KindRef // a recursive self-reference into a TypeFamily, resolved lazily.
)

// Field is one named member of a record Type.
type Field struct {
	Name string
	Type *Type
}

// Case is one named alternative of a sum Type.
type Case struct {
	Name string
	Type *Type
}

// Type is a structural shape description. It is deliberately not generic
// over a value type — structural composition (a record's fields have
// different element types) needs existential typing Go generics don't
// offer, so Type stays type-erased and Typed[A] carries the static type
// parameter at the one place it is actually known: the root value.
type Type struct {
	Kind Kind
	Name string

	elem *Type // KindList, KindOptional

	fields []Field // KindRecord
	cases  []Case  // KindSum

	family   *TypeFamily // KindRef
	refIndex int         // KindRef
}

// Primitive builds a named leaf shape (string, int, bool, ...).
func Primitive(name string) *Type { return &Type{Kind: KindPrimitive, Name: name} }

// List builds a homogeneous list shape.
func List(elem *Type) *Type { return &Type{Kind: KindList, Name: "list", elem: elem} }

// Optional builds a shape that may or may not be present.
func Optional(inner *Type) *Type { return &Type{Kind: KindOptional, Name: "optional", elem: inner} }

// Record builds a product shape out of named fields.
func Record(name string, fields ...Field) *Type {
	return &Type{Kind: KindRecord, Name: name, fields: fields}
}

// Sum builds a choice shape out of named cases.
func Sum(name string, cases ...Case) *Type {
	return &Type{Kind: KindSum, Name: name, cases: cases}
}

// Elem returns the element/inner type of a List or Optional, resolving
// through a Ref if needed.
func (t *Type) Elem() *Type {
	if t.Kind == KindRef {
		return t.family.mustResolve(t.refIndex).Elem()
	}
	return t.elem
}

// Fields returns a record's fields, resolving through a Ref if needed.
func (t *Type) Fields() []Field {
	if t.Kind == KindRef {
		return t.family.mustResolve(t.refIndex).Fields()
	}
	return t.fields
}

// Cases returns a sum's cases, resolving through a Ref if needed.
func (t *Type) Cases() []Case {
	if t.Kind == KindRef {
		return t.family.mustResolve(t.refIndex).Cases()
	}
	return t.cases
}

// Resolve dereferences a Ref, returning the type itself otherwise.
func (t *Type) Resolve() *Type {
	if t.Kind == KindRef {
		return t.family.mustResolve(t.refIndex)
	}
	return t
}

// Typed pairs a runtime value with the Type describing its shape.
type Typed[A any] struct {
	Type  *Type
	Value A
}

// NewTyped wraps a value with its structural type.
func NewTyped[A any](t *Type, v A) Typed[A] { return Typed[A]{Type: t, Value: v} }

// TypeTemplate instantiates a shape against a TypeFamily, so templates that
// need to refer to "the type at index i in this family" — including
// themselves, for recursive shapes — can do so without the shape existing
// yet.
type TypeTemplate func(family *TypeFamily) *Type

// TypeFamily resolves a small set of mutually-possibly-recursive templates.
// Index 0 conventionally refers to "the type currently being defined"; a
// template that captures family.Ref(i) and reads it back via Fields/Elem/
// Cases before construction finishes will get a "not yet resolved" panic —
// by the time TypeFamily construction returns, every slot is filled, so
// normal (post-construction) use is always safe.
type TypeFamily struct {
	slots []*Type
}

// NewTypeFamily instantiates each template in order. Templates may call
// family.Ref(i) for any i, including their own index, to build
// self-referential shapes; the reference resolves once every template in
// the family has finished running.
func NewTypeFamily(templates ...TypeTemplate) *TypeFamily {
	f := &TypeFamily{slots: make([]*Type, len(templates))}
	for i, tmpl := range templates {
		f.slots[i] = tmpl(f)
	}
	return f
}

// Ref returns a lazy self-reference to the type at index i in this family.
func (f *TypeFamily) Ref(i int) *Type {
	return &Type{Kind: KindRef, Name: fmt.Sprintf("ref(%d)", i), family: f, refIndex: i}
}

// Type returns the fully-resolved type at index i, the family's public,
// post-construction accessor.
func (f *TypeFamily) Type(i int) *Type { return f.mustResolve(i) }

func (f *TypeFamily) mustResolve(i int) *Type {
	if i < 0 || i >= len(f.slots) || f.slots[i] == nil {
		panic(fmt.Sprintf("dtype: type at family index %d accessed before it was resolved", i))
	}
	return f.slots[i]
}
