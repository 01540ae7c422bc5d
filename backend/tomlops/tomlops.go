// Package tomlops is the TOML Ops[any] backend, built on
// github.com/pelletier/go-toml/v2. TOML decodes into plain
// map[string]interface{}, a Go map with no defined iteration order, so
// this is the deliberately *unordered* backend: GetMapEntries sorts keys
// lexicographically and Ordered reports false, so any combinator relying
// on iteration order knows not to trust it here.
package tomlops

import (
	"sort"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/basinfx/datafixer/ops"
	"github.com/basinfx/datafixer/result"
)

// Ops is the singleton ops.Ops[any] implementation for this backend. The
// carrier is the same untyped tree go-toml decodes into: string, int64,
// float64, bool, []any, map[string]any, or nil for an absent/empty value.
var Ops ops.Ops[any] = tomlOps{}

type tomlOps struct{}

func (tomlOps) IsMap(v any) bool {
	_, ok := v.(map[string]any)
	return ok
}
func (tomlOps) IsList(v any) bool {
	_, ok := v.([]any)
	return ok
}
func (tomlOps) IsString(v any) bool {
	_, ok := v.(string)
	return ok
}
func (tomlOps) IsNumber(v any) bool {
	switch v.(type) {
	case int64, float64:
		return true
	default:
		return false
	}
}
func (tomlOps) IsBool(v any) bool {
	_, ok := v.(bool)
	return ok
}
func (tomlOps) IsNull(v any) bool { return v == nil }

func (tomlOps) Empty() any     { return nil }
func (tomlOps) EmptyMap() any  { return map[string]any{} }
func (tomlOps) EmptyList() any { return []any{} }

func (tomlOps) CreateBool(b bool) any      { return b }
func (tomlOps) CreateString(s string) any  { return s }
func (tomlOps) CreateByte(v int8) any      { return int64(v) }
func (tomlOps) CreateShort(v int16) any    { return int64(v) }
func (tomlOps) CreateInt(v int32) any      { return int64(v) }
func (tomlOps) CreateLong(v int64) any     { return v }
func (tomlOps) CreateFloat(v float32) any  { return float64(v) }
func (tomlOps) CreateDouble(v float64) any { return v }
func (tomlOps) CreateNumber(v float64) any { return v }

func notAKind(kind string, v any) string {
	return "Not a " + kind + ": " + describe(v)
}

func describe(v any) string {
	b, err := toml.Marshal(map[string]any{"value": v})
	if err != nil {
		return "<unencodable>"
	}
	return string(b)
}

func (tomlOps) AsString(v any) result.Result[string] {
	s, ok := v.(string)
	if !ok {
		return result.Error[string](notAKind("string", v))
	}
	return result.Success(s)
}

func (tomlOps) AsBool(v any) result.Result[bool] {
	b, ok := v.(bool)
	if !ok {
		return result.Error[bool](notAKind("bool", v))
	}
	return result.Success(b)
}

func (tomlOps) AsByte(v any) result.Result[int8]      { return asNum[int8](v) }
func (tomlOps) AsShort(v any) result.Result[int16]    { return asNum[int16](v) }
func (tomlOps) AsInt(v any) result.Result[int32]      { return asNum[int32](v) }
func (tomlOps) AsLong(v any) result.Result[int64]     { return asNum[int64](v) }
func (tomlOps) AsFloat(v any) result.Result[float32]  { return asNum[float32](v) }
func (tomlOps) AsDouble(v any) result.Result[float64] { return asNum[float64](v) }
func (tomlOps) AsNumber(v any) result.Result[float64] { return asNum[float64](v) }

func asNum[N int8 | int16 | int32 | int64 | float32 | float64](v any) result.Result[N] {
	switch n := v.(type) {
	case int64:
		return result.Success(N(n))
	case float64:
		return result.Success(N(n))
	default:
		return result.Error[N](notAKind("number", v))
	}
}

func (tomlOps) CreateList(items []any) any { return append([]any(nil), items...) }

func (o tomlOps) GetList(v any) result.Result[[]any] {
	l, ok := v.([]any)
	if !ok {
		return result.Error[[]any](notAKind("list", v))
	}
	return result.Success(append([]any(nil), l...))
}

func (o tomlOps) MergeToList(list any, elem any) result.Result[any] {
	l, ok := list.([]any)
	if !ok {
		return result.Error[any](notAKind("list", list))
	}
	return result.Success[any](append(append([]any(nil), l...), elem))
}

// CreateMap drops entries whose key is not a string, matching the pack's
// usual "unrepresentable keys are silently skipped" convention.
func (tomlOps) CreateMap(entries []ops.MapEntry[any]) any {
	m := make(map[string]any, len(entries))
	for _, e := range entries {
		k, ok := e.Key.(string)
		if !ok {
			continue
		}
		m[k] = e.Value
	}
	return m
}

// GetMapEntries sorts keys lexicographically since Go's map iteration order
// is explicitly undefined — this is the behavior Ordered()==false promises.
func (o tomlOps) GetMapEntries(v any) result.Result[[]ops.MapEntry[any]] {
	m, ok := v.(map[string]any)
	if !ok {
		return result.Error[[]ops.MapEntry[any]](notAKind("map", v))
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

func (o tomlOps) MergeToMap(mapVal any, key any, value any) result.Result[any] {
	m, ok := mapVal.(map[string]any)
	if !ok {
		return result.Error[any](notAKind("map", mapVal))
	}
	k, ok := key.(string)
	if !ok {
		return result.Error[any](notAKind("string", key))
	}
	out := make(map[string]any, len(m)+1)
	for kk, vv := range m {
		out[kk] = vv
	}
	out[k] = value
	return result.Success[any](out)
}

func (o tomlOps) MergeMaps(a, b any) result.Result[any] {
	am, ok := a.(map[string]any)
	if !ok {
		return result.Error[any](notAKind("map", a))
	}
	bm, ok := b.(map[string]any)
	if !ok {
		return result.Error[any](notAKind("map", b))
	}
	out := make(map[string]any, len(am)+len(bm))
	for k, v := range am {
		out[k] = v
	}
	for k, v := range bm {
		out[k] = v
	}
	return result.Success[any](out)
}

func (tomlOps) Get(v any, key string) (any, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	child, ok := m[key]
	return child, ok
}

func (tomlOps) Set(v any, key string, value any) any {
	m, _ := v.(map[string]any)
	out := make(map[string]any, len(m)+1)
	for k, vv := range m {
		out[k] = vv
	}
	out[key] = value
	return out
}

func (tomlOps) Remove(v any, key string) any {
	m, ok := v.(map[string]any)
	if !ok {
		return v
	}
	out := make(map[string]any, len(m))
	for k, vv := range m {
		if k != key {
			out[k] = vv
		}
	}
	return out
}

func (tomlOps) Has(v any, key string) bool {
	m, ok := v.(map[string]any)
	if !ok {
		return false
	}
	_, ok = m[key]
	return ok
}

// Ordered reports false: go-toml decodes tables into plain Go maps, whose
// iteration order carries no information from the source file.
func (tomlOps) Ordered() bool { return false }

// Parse decodes TOML bytes into a Dynamic[any].
func Parse(data []byte) (ops.Dynamic[any], error) {
	var v map[string]any
	if err := toml.Unmarshal(data, &v); err != nil {
		return ops.Dynamic[any]{}, err
	}
	return ops.NewDynamic[any](Ops, v), nil
}

// Encode renders a Dynamic[any] back to TOML bytes. The carrier must be a
// map-shaped value — TOML has no concept of a top-level scalar or array
// document.
func Encode(d ops.Dynamic[any]) ([]byte, error) {
	return toml.Marshal(d.Value)
}
