package ops

import "github.com/basinfx/datafixer/result"

// Dynamic pairs a carrier value with the Ops that knows how to read and
// write it, offering one carrier-agnostic API regardless of backend. Every
// reader returns a Result; every writer returns a fresh Dynamic — the
// wrapped value is never mutated in place.
type Dynamic[T any] struct {
	Ops   Ops[T]
	Value T
}

// NewDynamic wraps a carrier value with the Ops that understands it.
func NewDynamic[T any](o Ops[T], v T) Dynamic[T] {
	return Dynamic[T]{Ops: o, Value: v}
}

// EmptyOf builds an empty Dynamic for the given Ops.
func EmptyOf[T any](o Ops[T]) Dynamic[T] { return Dynamic[T]{Ops: o, Value: o.Empty()} }

// sameOps reports whether two Dynamics share the same Ops instance. Backends
// are comparable stateless values (empty structs such as tomlOps{}), so this
// is a plain interface equality check, not a structural one.
func sameOps[T any](a, b Ops[T]) bool { return a == b }

func (d Dynamic[T]) IsMap() bool    { return d.Ops.IsMap(d.Value) }
func (d Dynamic[T]) IsList() bool   { return d.Ops.IsList(d.Value) }
func (d Dynamic[T]) IsString() bool { return d.Ops.IsString(d.Value) }
func (d Dynamic[T]) IsNumber() bool { return d.Ops.IsNumber(d.Value) }
func (d Dynamic[T]) IsBool() bool   { return d.Ops.IsBool(d.Value) }
func (d Dynamic[T]) IsNull() bool   { return d.Ops.IsNull(d.Value) }

func (d Dynamic[T]) AsString() result.Result[string]        { return d.Ops.AsString(d.Value) }
func (d Dynamic[T]) AsInt() result.Result[int32]            { return d.Ops.AsInt(d.Value) }
func (d Dynamic[T]) AsLong() result.Result[int64]           { return d.Ops.AsLong(d.Value) }
func (d Dynamic[T]) AsFloat() result.Result[float32]        { return d.Ops.AsFloat(d.Value) }
func (d Dynamic[T]) AsDouble() result.Result[float64]       { return d.Ops.AsDouble(d.Value) }
func (d Dynamic[T]) AsByte() result.Result[int8]            { return d.Ops.AsByte(d.Value) }
func (d Dynamic[T]) AsShort() result.Result[int16]          { return d.Ops.AsShort(d.Value) }
func (d Dynamic[T]) AsBoolean() result.Result[bool]         { return d.Ops.AsBool(d.Value) }
func (d Dynamic[T]) AsNumber() result.Result[float64]       { return d.Ops.AsNumber(d.Value) }

// AsListStream returns the list elements as Dynamics, in backend order.
func (d Dynamic[T]) AsListStream() result.Result[[]Dynamic[T]] {
	return result.Map(d.Ops.GetList(d.Value), func(items []T) []Dynamic[T] {
		out := make([]Dynamic[T], len(items))
		for i, it := range items {
			out[i] = NewDynamic(d.Ops, it)
		}
		return out
	})
}

// DynamicEntry is one key/value pair of a map-shaped Dynamic.
type DynamicEntry[T any] struct {
	Key   Dynamic[T]
	Value Dynamic[T]
}

// AsMapStream returns the map entries as Dynamics, in backend order.
func (d Dynamic[T]) AsMapStream() result.Result[[]DynamicEntry[T]] {
	return result.Map(d.Ops.GetMapEntries(d.Value), func(entries []MapEntry[T]) []DynamicEntry[T] {
		out := make([]DynamicEntry[T], len(entries))
		for i, e := range entries {
			out[i] = DynamicEntry[T]{Key: NewDynamic(d.Ops, e.Key), Value: NewDynamic(d.Ops, e.Value)}
		}
		return out
	})
}

func (d Dynamic[T]) CreateString(s string) Dynamic[T] { return NewDynamic(d.Ops, d.Ops.CreateString(s)) }
func (d Dynamic[T]) CreateInt(v int32) Dynamic[T]      { return NewDynamic(d.Ops, d.Ops.CreateInt(v)) }
func (d Dynamic[T]) CreateLong(v int64) Dynamic[T]     { return NewDynamic(d.Ops, d.Ops.CreateLong(v)) }
func (d Dynamic[T]) CreateDouble(v float64) Dynamic[T] { return NewDynamic(d.Ops, d.Ops.CreateDouble(v)) }
func (d Dynamic[T]) CreateFloat(v float32) Dynamic[T]  { return NewDynamic(d.Ops, d.Ops.CreateFloat(v)) }
func (d Dynamic[T]) CreateBool(v bool) Dynamic[T]      { return NewDynamic(d.Ops, d.Ops.CreateBool(v)) }
func (d Dynamic[T]) EmptyMap() Dynamic[T]              { return NewDynamic(d.Ops, d.Ops.EmptyMap()) }
func (d Dynamic[T]) EmptyList() Dynamic[T]             { return NewDynamic(d.Ops, d.Ops.EmptyList()) }
func (d Dynamic[T]) Empty() Dynamic[T]                 { return NewDynamic(d.Ops, d.Ops.Empty()) }

// Has reports whether the map-shaped value carries key.
func (d Dynamic[T]) Has(key string) bool { return d.Ops.Has(d.Value, key) }

// Get looks up key, succeeding with the child Dynamic or failing with
// "Missing field '<name>'" when absent.
func (d Dynamic[T]) Get(key string) result.Result[Dynamic[T]] {
	if v, ok := d.Ops.Get(d.Value, key); ok {
		return result.Success(NewDynamic(d.Ops, v))
	}
	return result.Error[Dynamic[T]]("Missing field '" + key + "'")
}

// GetOrEmpty is Get with a fallback to an empty Dynamic instead of an error.
func (d Dynamic[T]) GetOrEmpty(key string) Dynamic[T] {
	if v, ok := d.Ops.Get(d.Value, key); ok {
		return NewDynamic(d.Ops, v)
	}
	return d.Empty()
}

// Set writes other under key, returning a new Dynamic. It panics if other
// was built from a different Ops instance — mismatched Ops across a write is
// a programmer error (spec.md §7 kind 3), not a recoverable Result.
func (d Dynamic[T]) Set(key string, other Dynamic[T]) Dynamic[T] {
	if !sameOps(d.Ops, other.Ops) {
		panic("ops: DynamicOps mismatch in Dynamic.Set for key '" + key + "'")
	}
	return NewDynamic(d.Ops, d.Ops.Set(d.Value, key, other.Value))
}

// Remove deletes key, a no-op if it is already absent.
func (d Dynamic[T]) Remove(key string) Dynamic[T] {
	return NewDynamic(d.Ops, d.Ops.Remove(d.Value, key))
}

// Update is get-then-transform-then-set, a no-op if key is missing.
func (d Dynamic[T]) Update(key string, f func(Dynamic[T]) Dynamic[T]) Dynamic[T] {
	v, ok := d.Ops.Get(d.Value, key)
	if !ok {
		return d
	}
	return d.Set(key, f(NewDynamic(d.Ops, v)))
}

// CreateList builds a list-shaped Dynamic from the given elements, which
// must share this Dynamic's Ops.
func (d Dynamic[T]) CreateList(items []Dynamic[T]) Dynamic[T] {
	raw := make([]T, len(items))
	for i, it := range items {
		if !sameOps(d.Ops, it.Ops) {
			panic("ops: DynamicOps mismatch in Dynamic.CreateList")
		}
		raw[i] = it.Value
	}
	return NewDynamic(d.Ops, d.Ops.CreateList(raw))
}

// Convert2 deep re-encodes d's value into dst's carrier type, using Convert.
func Convert2[S, D any](d Dynamic[S], dst Ops[D]) Dynamic[D] {
	return NewDynamic(dst, Convert(d.Ops, dst, d.Value))
}

// MapValue is an escape hatch for transformations that only need the raw
// carrier, preserving Ops.
func (d Dynamic[T]) MapValue(f func(T) T) Dynamic[T] {
	return NewDynamic(d.Ops, f(d.Value))
}

// Equal reports structural equality: same Ops instance and a carrier-level
// equality determined by cmp, since carrier types are not generally
// comparable with ==.
func Equal[T any](a, b Dynamic[T], cmp func(x, y T) bool) bool {
	return sameOps(a.Ops, b.Ops) && cmp(a.Value, b.Value)
}
