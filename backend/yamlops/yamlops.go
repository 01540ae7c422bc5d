// Package yamlops is the YAML Ops[*yaml.Node] backend, built on
// gopkg.in/yaml.v3. yaml.Node is naturally the ordered backend: its
// Content slice preserves source order, satisfying the entry-order
// requirement every Ops implementation must honor when it can.
//
// Every mutating method returns a freshly allocated *yaml.Node wrapping a
// freshly allocated Content slice rather than mutating an existing node in
// place, which is what makes copy-on-write hold without having to
// deep-clone a whole subtree on every edit. The one place a full deep copy
// is worth paying for is at the boundary: Parse hands callers a tree
// produced by yaml.Unmarshal, which this package does not own, so it is
// defensively cloned with mohae/deepcopy before being wrapped in a Dynamic
// — otherwise a caller mutating their own reference to the decoded tree
// could silently corrupt a value this package has already promised is
// immutable.
package yamlops

import (
	"strconv"

	"github.com/mohae/deepcopy"
	"gopkg.in/yaml.v3"

	"github.com/basinfx/datafixer/ops"
	"github.com/basinfx/datafixer/result"
)

// Ops is the singleton ops.Ops[*yaml.Node] implementation for this backend.
var Ops ops.Ops[*yaml.Node] = yamlOps{}

type yamlOps struct{}

const (
	tagStr   = "!!str"
	tagInt   = "!!int"
	tagFloat = "!!float"
	tagBool  = "!!bool"
	tagNull  = "!!null"
)

func scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func (yamlOps) IsMap(v *yaml.Node) bool  { return v != nil && v.Kind == yaml.MappingNode }
func (yamlOps) IsList(v *yaml.Node) bool { return v != nil && v.Kind == yaml.SequenceNode }
func (yamlOps) IsString(v *yaml.Node) bool {
	return v != nil && v.Kind == yaml.ScalarNode && v.Tag == tagStr
}
func (yamlOps) IsNumber(v *yaml.Node) bool {
	return v != nil && v.Kind == yaml.ScalarNode && (v.Tag == tagInt || v.Tag == tagFloat)
}
func (yamlOps) IsBool(v *yaml.Node) bool {
	return v != nil && v.Kind == yaml.ScalarNode && v.Tag == tagBool
}
func (yamlOps) IsNull(v *yaml.Node) bool {
	return v == nil || (v.Kind == yaml.ScalarNode && v.Tag == tagNull)
}

func (yamlOps) Empty() *yaml.Node     { return scalar(tagNull, "null") }
func (yamlOps) EmptyMap() *yaml.Node  { return &yaml.Node{Kind: yaml.MappingNode} }
func (yamlOps) EmptyList() *yaml.Node { return &yaml.Node{Kind: yaml.SequenceNode} }

func (yamlOps) CreateBool(b bool) *yaml.Node      { return scalar(tagBool, strconv.FormatBool(b)) }
func (yamlOps) CreateString(s string) *yaml.Node  { return scalar(tagStr, s) }
func (yamlOps) CreateByte(v int8) *yaml.Node      { return scalar(tagInt, strconv.FormatInt(int64(v), 10)) }
func (yamlOps) CreateShort(v int16) *yaml.Node    { return scalar(tagInt, strconv.FormatInt(int64(v), 10)) }
func (yamlOps) CreateInt(v int32) *yaml.Node      { return scalar(tagInt, strconv.FormatInt(int64(v), 10)) }
func (yamlOps) CreateLong(v int64) *yaml.Node     { return scalar(tagInt, strconv.FormatInt(v, 10)) }
func (yamlOps) CreateFloat(v float32) *yaml.Node {
	return scalar(tagFloat, strconv.FormatFloat(float64(v), 'g', -1, 32))
}
func (yamlOps) CreateDouble(v float64) *yaml.Node {
	return scalar(tagFloat, strconv.FormatFloat(v, 'g', -1, 64))
}
func (yamlOps) CreateNumber(v float64) *yaml.Node { return scalar(tagFloat, strconv.FormatFloat(v, 'g', -1, 64)) }

func notAKind(kind string, v *yaml.Node) string {
	if v == nil {
		return "Not a " + kind + ": <nil>"
	}
	return "Not a " + kind + ": " + v.Value
}

func (o yamlOps) AsString(v *yaml.Node) result.Result[string] {
	if !o.IsString(v) {
		return result.Error[string](notAKind("string", v))
	}
	return result.Success(v.Value)
}

func (o yamlOps) AsBool(v *yaml.Node) result.Result[bool] {
	if !o.IsBool(v) {
		return result.Error[bool](notAKind("bool", v))
	}
	b, err := strconv.ParseBool(v.Value)
	if err != nil {
		return result.Error[bool](notAKind("bool", v))
	}
	return result.Success(b)
}

func (o yamlOps) AsByte(v *yaml.Node) result.Result[int8]   { return asInt[int8](o, v) }
func (o yamlOps) AsShort(v *yaml.Node) result.Result[int16] { return asInt[int16](o, v) }
func (o yamlOps) AsInt(v *yaml.Node) result.Result[int32]   { return asInt[int32](o, v) }
func (o yamlOps) AsLong(v *yaml.Node) result.Result[int64]  { return asInt[int64](o, v) }

func asInt[N int8 | int16 | int32 | int64](o yamlOps, v *yaml.Node) result.Result[N] {
	if !o.IsNumber(v) {
		return result.Error[N](notAKind("number", v))
	}
	n, err := strconv.ParseInt(v.Value, 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(v.Value, 64)
		if ferr != nil {
			return result.Error[N](notAKind("number", v))
		}
		return result.Success(N(f))
	}
	return result.Success(N(n))
}

func (o yamlOps) AsFloat(v *yaml.Node) result.Result[float32] {
	return result.Map(o.AsDouble(v), func(f float64) float32 { return float32(f) })
}

func (o yamlOps) AsDouble(v *yaml.Node) result.Result[float64] {
	if !o.IsNumber(v) {
		return result.Error[float64](notAKind("number", v))
	}
	f, err := strconv.ParseFloat(v.Value, 64)
	if err != nil {
		return result.Error[float64](notAKind("number", v))
	}
	return result.Success(f)
}

func (o yamlOps) AsNumber(v *yaml.Node) result.Result[float64] { return o.AsDouble(v) }

func (yamlOps) CreateList(items []*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Content: append([]*yaml.Node(nil), items...)}
}

func (o yamlOps) GetList(v *yaml.Node) result.Result[[]*yaml.Node] {
	if !o.IsList(v) {
		return result.Error[[]*yaml.Node](notAKind("list", v))
	}
	return result.Success(append([]*yaml.Node(nil), v.Content...))
}

func (o yamlOps) MergeToList(list *yaml.Node, elem *yaml.Node) result.Result[*yaml.Node] {
	if !o.IsList(list) {
		return result.Error[*yaml.Node](notAKind("list", list))
	}
	return result.Success(o.CreateList(append(append([]*yaml.Node(nil), list.Content...), elem)))
}

// CreateMap drops entries whose key is not a string scalar, matching the
// rest of the pack's "unrepresentable keys are silently skipped" convention
// for non-Result constructors.
func (o yamlOps) CreateMap(entries []ops.MapEntry[*yaml.Node]) *yaml.Node {
	content := make([]*yaml.Node, 0, len(entries)*2)
	for _, e := range entries {
		if !o.IsString(e.Key) {
			continue
		}
		content = append(content, e.Key, e.Value)
	}
	return &yaml.Node{Kind: yaml.MappingNode, Content: content}
}

func (o yamlOps) GetMapEntries(v *yaml.Node) result.Result[[]ops.MapEntry[*yaml.Node]] {
	if !o.IsMap(v) {
		return result.Error[[]ops.MapEntry[*yaml.Node]](notAKind("map", v))
	}
	out := make([]ops.MapEntry[*yaml.Node], 0, len(v.Content)/2)
	for i := 0; i+1 < len(v.Content); i += 2 {
		out = append(out, ops.MapEntry[*yaml.Node]{Key: v.Content[i], Value: v.Content[i+1]})
	}
	return result.Success(out)
}

func (o yamlOps) MergeToMap(mapVal *yaml.Node, key *yaml.Node, value *yaml.Node) result.Result[*yaml.Node] {
	if !o.IsMap(mapVal) {
		return result.Error[*yaml.Node](notAKind("map", mapVal))
	}
	if !o.IsString(key) {
		return result.Error[*yaml.Node](notAKind("string", key))
	}
	return result.Success(setByKeyNode(mapVal, key, value))
}

func (o yamlOps) MergeMaps(a, b *yaml.Node) result.Result[*yaml.Node] {
	if !o.IsMap(a) {
		return result.Error[*yaml.Node](notAKind("map", a))
	}
	if !o.IsMap(b) {
		return result.Error[*yaml.Node](notAKind("map", b))
	}
	out := a
	for i := 0; i+1 < len(b.Content); i += 2 {
		out = setByKeyNode(out, b.Content[i], b.Content[i+1])
	}
	return result.Success(out)
}

func setByKeyNode(v *yaml.Node, key *yaml.Node, value *yaml.Node) *yaml.Node {
	return setByKey(v, key.Value, key, value)
}

func setByKey(v *yaml.Node, keyName string, keyNode *yaml.Node, value *yaml.Node) *yaml.Node {
	content := make([]*yaml.Node, 0, len(v.Content)+2)
	replaced := false
	for i := 0; i+1 < len(v.Content); i += 2 {
		k, val := v.Content[i], v.Content[i+1]
		if k.Value == keyName {
			content = append(content, k, value)
			replaced = true
			continue
		}
		content = append(content, k, val)
	}
	if !replaced {
		content = append(content, keyNode, value)
	}
	return &yaml.Node{Kind: yaml.MappingNode, Content: content, Tag: v.Tag, Style: v.Style}
}

func (o yamlOps) Get(v *yaml.Node, key string) (*yaml.Node, bool) {
	if !o.IsMap(v) {
		return nil, false
	}
	for i := 0; i+1 < len(v.Content); i += 2 {
		if v.Content[i].Value == key {
			return v.Content[i+1], true
		}
	}
	return nil, false
}

func (o yamlOps) Set(v *yaml.Node, key string, value *yaml.Node) *yaml.Node {
	if !o.IsMap(v) {
		v = &yaml.Node{Kind: yaml.MappingNode}
	}
	return setByKey(v, key, scalar(tagStr, key), value)
}

func (o yamlOps) Remove(v *yaml.Node, key string) *yaml.Node {
	if !o.IsMap(v) {
		return v
	}
	content := make([]*yaml.Node, 0, len(v.Content))
	for i := 0; i+1 < len(v.Content); i += 2 {
		if v.Content[i].Value != key {
			content = append(content, v.Content[i], v.Content[i+1])
		}
	}
	return &yaml.Node{Kind: yaml.MappingNode, Content: content, Tag: v.Tag, Style: v.Style}
}

func (o yamlOps) Has(v *yaml.Node, key string) bool {
	_, ok := o.Get(v, key)
	return ok
}

func (yamlOps) Ordered() bool { return true }

// Parse decodes YAML bytes into a Dynamic[*yaml.Node], defensively deep
// cloning the node tree yaml.Unmarshal hands back so a caller's own
// reference to it can't later corrupt a value this package has already
// promised is immutable.
func Parse(data []byte) (ops.Dynamic[*yaml.Node], error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return ops.Dynamic[*yaml.Node]{}, err
	}
	node := &root
	if root.Kind == yaml.DocumentNode && len(root.Content) == 1 {
		node = root.Content[0]
	}
	cloned := deepcopy.Copy(node).(*yaml.Node)
	return ops.NewDynamic(Ops, cloned), nil
}

// Encode renders a Dynamic[*yaml.Node] back to YAML bytes.
func Encode(d ops.Dynamic[*yaml.Node]) ([]byte, error) {
	return yaml.Marshal(d.Value)
}
