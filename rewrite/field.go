package rewrite

import (
	"github.com/basinfx/datafixer/dtype"
	"github.com/basinfx/datafixer/ops"
)

// RenameField renames oldName to newName if present; a no-op (still a
// match) when oldName is absent. The returned rule's Inverse() swaps the
// names back — generalised from the teacher's VersionChange.Inverse()
// (epoch/flow_operations.go), which a schema-diff preview needs to render
// "what does the next version look like" without a second fix author
// hand-writing it.
func RenameField[T any](o ops.Ops[T], oldName, newName string) Rule[T] {
	return Rule[T]{
		ID: "renameField(" + oldName + "->" + newName + ")",
		Apply: func(_ *dtype.Type, d ops.Dynamic[T]) (ops.Dynamic[T], bool) {
			child := d.Get(oldName)
			if !child.IsSuccess() {
				return d, true
			}
			return d.Remove(oldName).Set(newName, child.Value()), true
		},
		inverse: func() Rule[T] { return RenameField[T](o, newName, oldName) },
	}
}

// RemoveField removes name if present. Its inverse re-adds name holding an
// empty value — the original value isn't recoverable from the rule alone.
func RemoveField[T any](name string) Rule[T] {
	return Rule[T]{
		ID: "removeField(" + name + ")",
		Apply: func(_ *dtype.Type, d ops.Dynamic[T]) (ops.Dynamic[T], bool) {
			return d.Remove(name), true
		},
		inverse: func() Rule[T] {
			return AddFieldValue[T](name, func(d ops.Dynamic[T]) ops.Dynamic[T] { return d.Empty() })
		},
	}
}

// AddField adds name with a default value only if it is missing. Its
// inverse removes name.
func AddField[T any](name string, defaultValue func(o ops.Ops[T]) ops.Dynamic[T]) Rule[T] {
	return Rule[T]{
		ID: "addField(" + name + ")",
		Apply: func(_ *dtype.Type, d ops.Dynamic[T]) (ops.Dynamic[T], bool) {
			if d.Has(name) {
				return d, true
			}
			return d.Set(name, defaultValue(d.Ops)), true
		},
		inverse: func() Rule[T] { return RemoveField[T](name) },
	}
}

// AddFieldValue is AddField with the default value already materialised.
func AddFieldValue[T any](name string, build func(d ops.Dynamic[T]) ops.Dynamic[T]) Rule[T] {
	return Rule[T]{
		ID: "addField(" + name + ")",
		Apply: func(_ *dtype.Type, d ops.Dynamic[T]) (ops.Dynamic[T], bool) {
			if d.Has(name) {
				return d, true
			}
			return d.Set(name, build(d)), true
		},
	}
}

// SetField always overwrites name.
func SetField[T any](name string, value func(o ops.Ops[T]) ops.Dynamic[T]) Rule[T] {
	return Rule[T]{
		ID: "setField(" + name + ")",
		Apply: func(_ *dtype.Type, d ops.Dynamic[T]) (ops.Dynamic[T], bool) {
			return d.Set(name, value(d.Ops)), true
		},
	}
}

// TransformField applies f to the located child; a no-op if missing.
func TransformField[T any](name string, f func(ops.Dynamic[T]) ops.Dynamic[T]) Rule[T] {
	return Rule[T]{
		ID: "transformField(" + name + ")",
		Apply: func(_ *dtype.Type, d ops.Dynamic[T]) (ops.Dynamic[T], bool) {
			child := d.Get(name)
			if !child.IsSuccess() {
				return d, true
			}
			return d.Set(name, f(child.Value())), true
		},
	}
}

// RemoveFieldIfEquals removes name only when its current value equals
// value under cmp — generalised from the teacher's
// ResponseRemoveFieldIfDefault (epoch/flow_operations.go).
func RemoveFieldIfEquals[T any](name string, value ops.Dynamic[T], cmp func(a, b T) bool) Rule[T] {
	return Rule[T]{
		ID: "removeFieldIfEquals(" + name + ")",
		Apply: func(_ *dtype.Type, d ops.Dynamic[T]) (ops.Dynamic[T], bool) {
			child := d.Get(name)
			if !child.IsSuccess() {
				return d, true
			}
			if cmp(child.Value().Value, value.Value) {
				return d.Remove(name), true
			}
			return d, true
		},
	}
}

// RenameFields applies RenameField for every old->new pair, in map
// iteration order.
func RenameFields[T any](o ops.Ops[T], renames map[string]string) Rule[T] {
	rules := make([]Rule[T], 0, len(renames))
	for oldName, newName := range renames {
		rules = append(rules, RenameField[T](o, oldName, newName))
	}
	return SeqAll(rules...)
}

// RemoveFields removes every named field, no-op for any that are absent.
func RemoveFields[T any](names ...string) Rule[T] {
	rules := make([]Rule[T], len(names))
	for i, n := range names {
		rules[i] = RemoveField[T](n)
	}
	return SeqAll(rules...)
}
