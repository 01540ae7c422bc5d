package jsonops

import (
	"github.com/bytedance/sonic"

	"github.com/basinfx/datafixer/ops"
	"github.com/basinfx/datafixer/result"
)

// Ops is the singleton ops.Ops[Value] implementation for this backend.
// Stateless and therefore trivially thread-safe, satisfying §5's
// requirement that Ops implementations be safe to share across concurrent
// migrations.
var Ops ops.Ops[Value] = jsonOps{}

type jsonOps struct{}

func (jsonOps) IsMap(v Value) bool    { return v.kind == KindMap }
func (jsonOps) IsList(v Value) bool   { return v.kind == KindList }
func (jsonOps) IsString(v Value) bool { return v.kind == KindString }
func (jsonOps) IsNumber(v Value) bool { return v.kind == KindNumber }
func (jsonOps) IsBool(v Value) bool   { return v.kind == KindBool }
func (jsonOps) IsNull(v Value) bool   { return v.kind == KindNull }

func (jsonOps) Empty() Value     { return Null() }
func (jsonOps) EmptyMap() Value  { return Map(nil) }
func (jsonOps) EmptyList() Value { return List(nil) }

func (jsonOps) CreateBool(b bool) Value      { return Bool(b) }
func (jsonOps) CreateString(s string) Value  { return String(s) }
func (jsonOps) CreateByte(v int8) Value      { return Number(float64(v)) }
func (jsonOps) CreateShort(v int16) Value    { return Number(float64(v)) }
func (jsonOps) CreateInt(v int32) Value      { return Number(float64(v)) }
func (jsonOps) CreateLong(v int64) Value     { return Number(float64(v)) }
func (jsonOps) CreateFloat(v float32) Value  { return Number(float64(v)) }
func (jsonOps) CreateDouble(v float64) Value { return Number(v) }
func (jsonOps) CreateNumber(v float64) Value { return Number(v) }

func (jsonOps) AsString(v Value) result.Result[string] {
	if v.kind != KindString {
		return result.Error[string](notAKind("string", v))
	}
	return result.Success(v.strVal)
}

func (jsonOps) AsBool(v Value) result.Result[bool] {
	if v.kind != KindBool {
		return result.Error[bool](notAKind("bool", v))
	}
	return result.Success(v.boolVal)
}

func (jsonOps) AsByte(v Value) result.Result[int8]      { return asNumber[int8](v) }
func (jsonOps) AsShort(v Value) result.Result[int16]    { return asNumber[int16](v) }
func (jsonOps) AsInt(v Value) result.Result[int32]      { return asNumber[int32](v) }
func (jsonOps) AsLong(v Value) result.Result[int64]     { return asNumber[int64](v) }
func (jsonOps) AsFloat(v Value) result.Result[float32]  { return asNumber[float32](v) }
func (jsonOps) AsDouble(v Value) result.Result[float64] { return asNumber[float64](v) }
func (jsonOps) AsNumber(v Value) result.Result[float64] { return asNumber[float64](v) }

func asNumber[N int8 | int16 | int32 | int64 | float32 | float64](v Value) result.Result[N] {
	if v.kind != KindNumber {
		return result.Error[N](notAKind("number", v))
	}
	return result.Success(N(v.numVal))
}

func notAKind(kind string, v Value) string {
	return "Not a " + kind + ": " + describe(v)
}

func describe(v Value) string {
	b, err := v.MarshalJSON()
	if err != nil {
		return "<unencodable>"
	}
	return string(b)
}

func (jsonOps) CreateList(items []Value) Value { return List(items) }

func (jsonOps) GetList(v Value) result.Result[[]Value] {
	if v.kind != KindList {
		return result.Error[[]Value](notAKind("list", v))
	}
	return result.Success(append([]Value(nil), v.list...))
}

func (jsonOps) MergeToList(list Value, elem Value) result.Result[Value] {
	if list.kind != KindList {
		return result.Error[Value](notAKind("list", list))
	}
	return result.Success(List(append(append([]Value(nil), list.list...), elem)))
}

// CreateMap drops entries whose key is not a string-kinded Value, matching
// the rest of the pack's convention of silently skipping unrepresentable
// keys instead of erroring inside a non-Result constructor.
func (jsonOps) CreateMap(entries []ops.MapEntry[Value]) Value {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Key.kind != KindString {
			continue
		}
		out = append(out, Entry{Key: e.Key.strVal, Value: e.Value})
	}
	return Map(out)
}

func (jsonOps) GetMapEntries(v Value) result.Result[[]ops.MapEntry[Value]] {
	if v.kind != KindMap {
		return result.Error[[]ops.MapEntry[Value]](notAKind("map", v))
	}
	out := make([]ops.MapEntry[Value], 0, len(v.entries))
	for _, e := range v.entries {
		out = append(out, ops.MapEntry[Value]{Key: String(e.Key), Value: e.Value})
	}
	return result.Success(out)
}

func (jsonOps) MergeToMap(mapVal Value, key Value, value Value) result.Result[Value] {
	if mapVal.kind != KindMap {
		return result.Error[Value](notAKind("map", mapVal))
	}
	if key.kind != KindString {
		return result.Error[Value](notAKind("string", key))
	}
	return result.Success(setEntry(mapVal, key.strVal, value))
}

func (jsonOps) MergeMaps(a, b Value) result.Result[Value] {
	if a.kind != KindMap {
		return result.Error[Value](notAKind("map", a))
	}
	if b.kind != KindMap {
		return result.Error[Value](notAKind("map", b))
	}
	out := a
	for _, e := range b.entries {
		out = setEntry(out, e.Key, e.Value)
	}
	return result.Success(out)
}

func setEntry(v Value, key string, value Value) Value {
	entries := make([]Entry, 0, len(v.entries)+1)
	replaced := false
	for _, e := range v.entries {
		if e.Key == key {
			entries = append(entries, Entry{Key: key, Value: value})
			replaced = true
			continue
		}
		entries = append(entries, e)
	}
	if !replaced {
		entries = append(entries, Entry{Key: key, Value: value})
	}
	return Map(entries)
}

func (jsonOps) Get(v Value, key string) (Value, bool) {
	if v.kind != KindMap {
		return Value{}, false
	}
	for _, e := range v.entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return Value{}, false
}

func (o jsonOps) Set(v Value, key string, value Value) Value {
	if v.kind != KindMap {
		return setEntry(Map(nil), key, value)
	}
	return setEntry(v, key, value)
}

func (jsonOps) Remove(v Value, key string) Value {
	if v.kind != KindMap {
		return v
	}
	entries := make([]Entry, 0, len(v.entries))
	for _, e := range v.entries {
		if e.Key != key {
			entries = append(entries, e)
		}
	}
	return Map(entries)
}

func (jsonOps) Has(v Value, key string) bool {
	_, ok := jsonOps{}.Get(v, key)
	return ok
}

func (jsonOps) Ordered() bool { return true }

// Parse decodes JSON bytes into a Dynamic[Value], preserving object key
// order, via sonic's standard Unmarshal entry point.
func Parse(data []byte) (ops.Dynamic[Value], error) {
	var v Value
	if err := sonic.Unmarshal(data, &v); err != nil {
		return ops.Dynamic[Value]{}, err
	}
	return ops.NewDynamic(Ops, v), nil
}

// Encode renders a Dynamic[Value] back to JSON bytes via sonic's standard
// Marshal entry point, preserving map key order through Value.MarshalJSON.
func Encode(d ops.Dynamic[Value]) ([]byte, error) {
	return sonic.Marshal(d.Value)
}
