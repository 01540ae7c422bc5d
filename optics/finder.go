package optics

import (
	"strconv"

	"github.com/basinfx/datafixer/ops"
)

// Finder is a lazy, composable dotted-path locator over a Dynamic, built by
// chaining atomic field/index steps. It carries a readable id ("a.b.2") for
// diagnostics and error messages.
type Finder[T any] struct {
	ID  string
	get func(ops.Dynamic[T]) (ops.Dynamic[T], bool)
	set func(root, newChild ops.Dynamic[T]) ops.Dynamic[T]
}

// Identity is the empty finder: Get returns its argument, Set replaces it
// wholesale.
func Identity[T any]() Finder[T] {
	return Finder[T]{
		ID:  "identity",
		get: func(d ops.Dynamic[T]) (ops.Dynamic[T], bool) { return d, true },
		set: func(_ ops.Dynamic[T], newChild ops.Dynamic[T]) ops.Dynamic[T] { return newChild },
	}
}

// Field finds a named child of a map-shaped Dynamic.
func Field[T any](name string) Finder[T] {
	return Finder[T]{
		ID: name,
		get: func(d ops.Dynamic[T]) (ops.Dynamic[T], bool) {
			r := d.Get(name)
			if !r.IsSuccess() {
				var zero ops.Dynamic[T]
				return zero, false
			}
			return r.Value(), true
		},
		set: func(root, newChild ops.Dynamic[T]) ops.Dynamic[T] {
			base := root
			if !base.IsMap() {
				base = base.EmptyMap()
			}
			return base.Set(name, newChild)
		},
	}
}

// Index finds the i-th element of a list-shaped Dynamic. Writing through an
// Index at a missing or out-of-range position is a no-op, matching the
// Affine law that set on a missing location never changes the root.
func Index[T any](i int) Finder[T] {
	id := strconv.Itoa(i)
	return Finder[T]{
		ID: id,
		get: func(d ops.Dynamic[T]) (ops.Dynamic[T], bool) {
			items, err := d.AsListStream().Value(), d.AsListStream().IsError()
			if err || i < 0 || i >= len(items) {
				var zero ops.Dynamic[T]
				return zero, false
			}
			return items[i], true
		},
		set: func(root, newChild ops.Dynamic[T]) ops.Dynamic[T] {
			r := root.AsListStream()
			if !r.IsSuccess() {
				return root
			}
			items := r.Value()
			if i < 0 || i >= len(items) {
				return root
			}
			out := make([]ops.Dynamic[T], len(items))
			copy(out, items)
			out[i] = newChild
			return root.CreateList(out)
		},
	}
}

// Then chains this finder with other, producing a path whose id is
// "thisID.otherID".
func (f Finder[T]) Then(other Finder[T]) Finder[T] {
	return Finder[T]{
		ID: chainID(f.ID, other.ID),
		get: func(d ops.Dynamic[T]) (ops.Dynamic[T], bool) {
			child, ok := f.get(d)
			if !ok {
				return child, false
			}
			return other.get(child)
		},
		set: func(root, newChild ops.Dynamic[T]) ops.Dynamic[T] {
			child, ok := f.get(root)
			if !ok {
				child = ops.EmptyOf(root.Ops)
			}
			return f.set(root, other.set(child, newChild))
		},
	}
}

// Get locates the child this finder points to within root, or reports
// failure if any step along the chain does not resolve.
func (f Finder[T]) Get(root ops.Dynamic[T]) (ops.Dynamic[T], bool) {
	return f.get(root)
}

// Set performs copy-on-write through the chain, creating missing
// intermediate maps as needed.
func (f Finder[T]) Set(root, newChild ops.Dynamic[T]) ops.Dynamic[T] {
	return f.set(root, newChild)
}
