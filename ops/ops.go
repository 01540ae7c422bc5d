// Package ops defines the capability interface ("Ops") that lets the rest of
// the engine work with any tree-shaped carrier type — a JSON value, a YAML
// node, a TOML table — without knowing which one it is. See backend/jsonops,
// backend/yamlops and backend/tomlops for concrete implementations.
package ops

import "github.com/basinfx/datafixer/result"

// MapEntry is one key/value pair of a map-shaped carrier value. Both the key
// and the value are carrier values, matching spec.md's "createMap(stream of
// (T,T))" — backends that only support string keys still represent the key
// as a carrier string.
type MapEntry[T any] struct {
	Key   T
	Value T
}

// Ops is the capability record a backend must implement to plug a carrier
// type T into the fixer. Every mutating method (Set, Remove, MergeToList,
// MergeToMap, CreateList, CreateMap, ...) must return a new T and must never
// observably mutate an argument — see the package doc on each backend for
// how it achieves copy-on-write over its particular carrier representation.
type Ops[T any] interface {
	// Type predicates.
	IsMap(v T) bool
	IsList(v T) bool
	IsString(v T) bool
	IsNumber(v T) bool
	IsBool(v T) bool
	IsNull(v T) bool

	// Empty constructors. Empty must not be a Go nil interface value for
	// backends without a native null — it must be a sentinel value IsNull
	// recognizes, so callers never have to special-case "empty" and "null"
	// differently across backends.
	Empty() T
	EmptyMap() T
	EmptyList() T

	// Primitive constructors.
	CreateBool(b bool) T
	CreateString(s string) T
	CreateByte(v int8) T
	CreateShort(v int16) T
	CreateInt(v int32) T
	CreateLong(v int64) T
	CreateFloat(v float32) T
	CreateDouble(v float64) T
	CreateNumber(v float64) T

	// Primitive readers.
	AsString(v T) result.Result[string]
	AsByte(v T) result.Result[int8]
	AsShort(v T) result.Result[int16]
	AsInt(v T) result.Result[int32]
	AsLong(v T) result.Result[int64]
	AsFloat(v T) result.Result[float32]
	AsDouble(v T) result.Result[float64]
	AsBool(v T) result.Result[bool]
	AsNumber(v T) result.Result[float64]

	// List build/destructure.
	CreateList(items []T) T
	GetList(v T) result.Result[[]T]
	MergeToList(list T, elem T) result.Result[T]

	// Map build/destructure. CreateMap drops entries whose key IsNull, and
	// preserves input order on backends where Ordered() is true.
	CreateMap(entries []MapEntry[T]) T
	GetMapEntries(v T) result.Result[[]MapEntry[T]]
	MergeToMap(mapVal T, key T, value T) result.Result[T]
	MergeMaps(a, b T) result.Result[T]

	// Field ops over map-shaped values, keyed by field name.
	Get(v T, key string) (T, bool)
	Set(v T, key string, value T) T
	Remove(v T, key string) T
	Has(v T, key string) bool

	// Ordered reports whether GetMapEntries/field iteration preserves
	// insertion order. Backends that cannot (e.g. plain Go maps) must sort
	// keys lexicographically and report false here so combinators that rely
	// on order never silently depend on it.
	Ordered() bool
}

// Convert recursively re-encodes a value produced by src into dst's carrier
// type. Primitives are probed boolean -> number -> string -> list -> map ->
// empty, because most backends' boolean and numeric predicates overlap and
// boolean must win (spec.md §4.2).
//
// Numeric-width conversion keeps the narrowest lossless Go type reachable:
// if the source value round-trips through AsLong with no fractional part it
// is re-created with CreateLong, otherwise CreateDouble (Open Question #2 in
// SPEC_FULL.md).
func Convert[S, D any](src Ops[S], dst Ops[D], v S) D {
	switch {
	case src.IsBool(v):
		b := src.AsBool(v)
		return dst.CreateBool(b.OrElse(false))

	case src.IsNumber(v):
		if l := src.AsLong(v); l.IsSuccess() {
			if d := src.AsDouble(v); d.IsSuccess() && float64(l.Value()) == d.Value() {
				return dst.CreateLong(l.Value())
			}
		}
		n := src.AsDouble(v)
		return dst.CreateDouble(n.OrElse(0))

	case src.IsString(v):
		s := src.AsString(v)
		return dst.CreateString(s.OrElse(""))

	case src.IsList(v):
		items := src.GetList(v).OrElse(nil)
		converted := make([]D, 0, len(items))
		for _, item := range items {
			converted = append(converted, Convert(src, dst, item))
		}
		return dst.CreateList(converted)

	case src.IsMap(v):
		entries := src.GetMapEntries(v).OrElse(nil)
		converted := make([]MapEntry[D], 0, len(entries))
		for _, e := range entries {
			converted = append(converted, MapEntry[D]{
				Key:   Convert(src, dst, e.Key),
				Value: Convert(src, dst, e.Value),
			})
		}
		return dst.CreateMap(converted)

	default:
		return dst.Empty()
	}
}
