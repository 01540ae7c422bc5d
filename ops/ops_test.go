package ops

import (
	"sort"
	"testing"

	"github.com/basinfx/datafixer/result"
)

// nativeOps is a minimal reference Ops[any] backed by plain Go values
// (map[string]any, []any, string, float64, bool) used only to exercise the
// generic ops/Dynamic machinery in isolation from any real backend.
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
	return result.Error[string]("Not a string: " + "value")
}
func (o nativeOps) AsByte(v any) result.Result[int8]   { return asNum[int8](v) }
func (o nativeOps) AsShort(v any) result.Result[int16] { return asNum[int16](v) }
func (o nativeOps) AsInt(v any) result.Result[int32]   { return asNum[int32](v) }
func (o nativeOps) AsLong(v any) result.Result[int64]  { return asNum[int64](v) }
func (o nativeOps) AsFloat(v any) result.Result[float32] {
	return asNum[float32](v)
}
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

func (nativeOps) CreateMap(entries []MapEntry[any]) any {
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
func (o nativeOps) GetMapEntries(v any) result.Result[[]MapEntry[any]] {
	m, ok := v.(map[string]any)
	if !ok {
		return result.Error[[]MapEntry[any]]("Not a map")
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys) // nativeOps is an unordered backend, like backend/tomlops.
	out := make([]MapEntry[any], 0, len(keys))
	for _, k := range keys {
		out = append(out, MapEntry[any]{Key: k, Value: m[k]})
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

var theNativeOps Ops[any] = nativeOps{}

func TestDynamicSetGetRoundtrip(t *testing.T) {
	d := EmptyOf[any](theNativeOps).EmptyMap()
	d = d.Set("name", d.CreateString("Alice"))

	got := d.Get("name")
	if !got.IsSuccess() {
		t.Fatalf("expected success, got error %q", got.ErrorMessage())
	}
	s := got.Value().AsString()
	if !s.IsSuccess() || s.Value() != "Alice" {
		t.Errorf("expected Alice, got %+v", s)
	}
}

func TestDynamicGetMissingField(t *testing.T) {
	d := EmptyOf[any](theNativeOps).EmptyMap()
	got := d.Get("missing")
	if !got.IsError() || got.ErrorMessage() != "Missing field 'missing'" {
		t.Errorf("expected missing field error, got %+v", got)
	}
}

func TestDynamicSetMismatchedOpsPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic on Ops mismatch")
		}
	}()

	var otherOps Ops[any] = struct{ nativeOps }{}
	d := EmptyOf[any](theNativeOps).EmptyMap()
	other := NewDynamic(otherOps, "x")
	d.Set("k", other)
}

func TestDynamicImmutability(t *testing.T) {
	base := EmptyOf[any](theNativeOps).EmptyMap()
	base = base.Set("a", base.CreateInt(1))

	mutated := base.Set("a", base.CreateInt(2))

	got := base.Get("a").Value().AsInt()
	if got.Value() != 1 {
		t.Errorf("expected original Dynamic to stay at 1, got %v", got.Value())
	}
	gotMutated := mutated.Get("a").Value().AsInt()
	if gotMutated.Value() != 2 {
		t.Errorf("expected mutated copy to be 2, got %v", gotMutated.Value())
	}
}

func TestConvertBooleanWinsOverNumber(t *testing.T) {
	// A backend whose boolean predicate also matches what the other
	// backend considers "truthy" must still probe boolean first.
	got := Convert[any, any](theNativeOps, theNativeOps, true)
	if b, ok := got.(bool); !ok || !b {
		t.Errorf("expected bool true to round-trip as bool, got %#v", got)
	}
}

func TestConvertMapAndListRecursively(t *testing.T) {
	src := map[string]any{
		"name": "Steve",
		"tags": []any{"a", "b"},
	}
	got := Convert[any, any](theNativeOps, theNativeOps, src)

	m, ok := got.(map[string]any)
	if !ok {
		t.Fatalf("expected map, got %#v", got)
	}
	if m["name"] != "Steve" {
		t.Errorf("expected name preserved, got %#v", m["name"])
	}
	tags, ok := m["tags"].([]any)
	if !ok || len(tags) != 2 || tags[0] != "a" {
		t.Errorf("expected tags preserved, got %#v", m["tags"])
	}
}

func TestAsMapStreamOrdering(t *testing.T) {
	d := EmptyOf[any](theNativeOps).EmptyMap()
	d = d.Set("b", d.CreateInt(2)).Set("a", d.CreateInt(1))

	entries, err := d.AsMapStream().Value(), d.AsMapStream().IsError()
	if err {
		t.Fatalf("unexpected error")
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	// nativeOps is unordered and sorts lexicographically.
	if k, _ := entries[0].Key.AsString().Value(), 0; k != "a" {
		t.Errorf("expected sorted order starting with 'a', got %q", k)
	}
}
