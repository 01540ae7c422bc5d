package rewrite

import (
	"sort"

	"github.com/basinfx/datafixer/ops"
	"github.com/basinfx/datafixer/result"
)

// nativeOps is the same reference Ops[any] test double used across the
// ops/codec/fixer packages, duplicated here since it is unexported in its
// home package.
type nativeOps struct{}

type nullType struct{}

var nativeNull = nullType{}

func (nativeOps) IsMap(v any) bool    { _, ok := v.(map[string]any); return ok }
func (nativeOps) IsList(v any) bool   { _, ok := v.([]any); return ok }
func (nativeOps) IsString(v any) bool { _, ok := v.(string); return ok }
func (nativeOps) IsNumber(v any) bool { _, ok := v.(float64); return ok }
func (nativeOps) IsBool(v any) bool   { _, ok := v.(bool); return ok }
func (nativeOps) IsNull(v any) bool   { _, ok := v.(nullType); return ok }

func (nativeOps) Empty() any     { return nativeNull }
func (nativeOps) EmptyMap() any  { return map[string]any{} }
func (nativeOps) EmptyList() any { return []any{} }

func (nativeOps) CreateBool(b bool) any      { return b }
func (nativeOps) CreateString(s string) any  { return s }
func (nativeOps) CreateByte(v int8) any      { return float64(v) }
func (nativeOps) CreateShort(v int16) any    { return float64(v) }
func (nativeOps) CreateInt(v int32) any      { return float64(v) }
func (nativeOps) CreateLong(v int64) any     { return float64(v) }
func (nativeOps) CreateFloat(v float32) any  { return float64(v) }
func (nativeOps) CreateDouble(v float64) any { return v }
func (nativeOps) CreateNumber(v float64) any { return v }

func (o nativeOps) AsString(v any) result.Result[string] {
	if s, ok := v.(string); ok {
		return result.Success(s)
	}
	return result.Error[string]("Not a string")
}
func (o nativeOps) AsByte(v any) result.Result[int8]      { return asNum[int8](v) }
func (o nativeOps) AsShort(v any) result.Result[int16]    { return asNum[int16](v) }
func (o nativeOps) AsInt(v any) result.Result[int32]      { return asNum[int32](v) }
func (o nativeOps) AsLong(v any) result.Result[int64]     { return asNum[int64](v) }
func (o nativeOps) AsFloat(v any) result.Result[float32]  { return asNum[float32](v) }
func (o nativeOps) AsDouble(v any) result.Result[float64] { return asNum[float64](v) }
func (o nativeOps) AsBool(v any) result.Result[bool] {
	if b, ok := v.(bool); ok {
		return result.Success(b)
	}
	return result.Error[bool]("Not a bool")
}
func (o nativeOps) AsNumber(v any) result.Result[float64] { return asNum[float64](v) }

func asNum[N int8 | int16 | int32 | int64 | float32 | float64](v any) result.Result[N] {
	f, ok := v.(float64)
	if !ok {
		return result.Error[N]("Not a number")
	}
	return result.Success(N(f))
}

func (nativeOps) CreateList(items []any) any { return append([]any{}, items...) }
func (o nativeOps) GetList(v any) result.Result[[]any] {
	l, ok := v.([]any)
	if !ok {
		return result.Error[[]any]("Not a list")
	}
	return result.Success(append([]any{}, l...))
}
func (o nativeOps) MergeToList(list any, elem any) result.Result[any] {
	l, ok := list.([]any)
	if !ok {
		return result.Error[any]("Not a list")
	}
	return result.Success[any](append(append([]any{}, l...), elem))
}

func (nativeOps) CreateMap(entries []ops.MapEntry[any]) any {
	m := map[string]any{}
	for _, e := range entries {
		k, ok := e.Key.(string)
		if !ok {
			continue
		}
		m[k] = e.Value
	}
	return m
}
func (o nativeOps) GetMapEntries(v any) result.Result[[]ops.MapEntry[any]] {
	m, ok := v.(map[string]any)
	if !ok {
		return result.Error[[]ops.MapEntry[any]]("Not a map")
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]ops.MapEntry[any], 0, len(keys))
	for _, k := range keys {
		out = append(out, ops.MapEntry[any]{Key: k, Value: m[k]})
	}
	return result.Success(out)
}
func (o nativeOps) MergeToMap(mapVal any, key any, value any) result.Result[any] {
	m, ok := mapVal.(map[string]any)
	if !ok {
		return result.Error[any]("Not a map")
	}
	k, ok := key.(string)
	if !ok {
		return result.Error[any]("Not a string key")
	}
	out := map[string]any{}
	for kk, vv := range m {
		out[kk] = vv
	}
	out[k] = value
	return result.Success[any](out)
}
func (o nativeOps) MergeMaps(a, b any) result.Result[any] {
	am, ok := a.(map[string]any)
	if !ok {
		return result.Error[any]("Not a map")
	}
	bm, ok := b.(map[string]any)
	if !ok {
		return result.Error[any]("Not a map")
	}
	out := map[string]any{}
	for k, v := range am {
		out[k] = v
	}
	for k, v := range bm {
		out[k] = v
	}
	return result.Success[any](out)
}

func (nativeOps) Get(v any, key string) (any, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	child, ok := m[key]
	return child, ok
}
func (nativeOps) Set(v any, key string, value any) any {
	m, _ := v.(map[string]any)
	out := map[string]any{}
	for k, vv := range m {
		out[k] = vv
	}
	out[key] = value
	return out
}
func (nativeOps) Remove(v any, key string) any {
	m, ok := v.(map[string]any)
	if !ok {
		return v
	}
	out := map[string]any{}
	for k, vv := range m {
		if k != key {
			out[k] = vv
		}
	}
	return out
}
func (nativeOps) Has(v any, key string) bool {
	m, ok := v.(map[string]any)
	if !ok {
		return false
	}
	_, ok = m[key]
	return ok
}
func (nativeOps) Ordered() bool { return false }

var theOps ops.Ops[any] = nativeOps{}

func dyn(v any) ops.Dynamic[any] { return ops.NewDynamic(theOps, v) }

func mapOf(pairs ...any) ops.Dynamic[any] {
	d := dyn(theOps.EmptyMap())
	for i := 0; i+1 < len(pairs); i += 2 {
		d = d.Set(pairs[i].(string), dyn(pairs[i+1]))
	}
	return d
}
