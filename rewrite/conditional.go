package rewrite

import (
	"github.com/basinfx/datafixer/dtype"
	"github.com/basinfx/datafixer/ops"
)

// IfFieldExists is the two-cycle form: it delegates to rule only if name is
// present, otherwise declines to match.
func IfFieldExists[T any](name string, rule Rule[T]) Rule[T] {
	return Rule[T]{
		ID: "ifFieldExists(" + name + "," + rule.ID + ")",
		Apply: func(typ *dtype.Type, d ops.Dynamic[T]) (ops.Dynamic[T], bool) {
			if !d.Has(name) {
				return d, false
			}
			return rule.Apply(typ, d)
		},
	}
}

// IfFieldMissing is the two-cycle form of the inverse check.
func IfFieldMissing[T any](name string, rule Rule[T]) Rule[T] {
	return Rule[T]{
		ID: "ifFieldMissing(" + name + "," + rule.ID + ")",
		Apply: func(typ *dtype.Type, d ops.Dynamic[T]) (ops.Dynamic[T], bool) {
			if d.Has(name) {
				return d, false
			}
			return rule.Apply(typ, d)
		},
	}
}

// IfFieldEquals is the two-cycle form: rule only runs if the current field
// value equals want under cmp. A type mismatch reading the field is
// reported as "doesn't equal", never an error.
func IfFieldEquals[T any](name string, want ops.Dynamic[T], cmp func(a, b T) bool, rule Rule[T]) Rule[T] {
	return Rule[T]{
		ID: "ifFieldEquals(" + name + "," + rule.ID + ")",
		Apply: func(typ *dtype.Type, d ops.Dynamic[T]) (ops.Dynamic[T], bool) {
			child := d.Get(name)
			if !child.IsSuccess() || !cmp(child.Value().Value, want.Value) {
				return d, false
			}
			return rule.Apply(typ, d)
		},
	}
}

// TransformIfFieldExists is the single-cycle form: check and transform run
// in one encode/decode cycle instead of two.
func TransformIfFieldExists[T any](name string, transform func(ops.Dynamic[T]) ops.Dynamic[T]) Rule[T] {
	return Rule[T]{
		ID: "ifFieldExists(" + name + ")",
		Apply: func(_ *dtype.Type, d ops.Dynamic[T]) (ops.Dynamic[T], bool) {
			if !d.Has(name) {
				return d, false
			}
			return transform(d), true
		},
	}
}

// TransformIfFieldMissing is the single-cycle form of the inverse check.
func TransformIfFieldMissing[T any](name string, transform func(ops.Dynamic[T]) ops.Dynamic[T]) Rule[T] {
	return Rule[T]{
		ID: "ifFieldMissing(" + name + ")",
		Apply: func(_ *dtype.Type, d ops.Dynamic[T]) (ops.Dynamic[T], bool) {
			if d.Has(name) {
				return d, false
			}
			return transform(d), true
		},
	}
}

// TransformIfFieldEquals is the single-cycle form of IfFieldEquals.
func TransformIfFieldEquals[T any](name string, want ops.Dynamic[T], cmp func(a, b T) bool, transform func(ops.Dynamic[T]) ops.Dynamic[T]) Rule[T] {
	return Rule[T]{
		ID: "ifFieldEquals(" + name + ")",
		Apply: func(_ *dtype.Type, d ops.Dynamic[T]) (ops.Dynamic[T], bool) {
			child := d.Get(name)
			if !child.IsSuccess() || !cmp(child.Value().Value, want.Value) {
				return d, false
			}
			return transform(d), true
		},
	}
}

// ConditionalTransform is the general single-cycle form: an arbitrary
// predicate gates an arbitrary transform.
func ConditionalTransform[T any](predicate func(ops.Dynamic[T]) bool, transform func(ops.Dynamic[T]) ops.Dynamic[T]) Rule[T] {
	return Rule[T]{
		ID: "conditionalTransform",
		Apply: func(_ *dtype.Type, d ops.Dynamic[T]) (ops.Dynamic[T], bool) {
			if !predicate(d) {
				return d, false
			}
			return transform(d), true
		},
	}
}
