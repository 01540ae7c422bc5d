package rewrite

import (
	"github.com/basinfx/datafixer/dtype"
	"github.com/basinfx/datafixer/ops"
)

// mapEntries reads a map-shaped Dynamic's entries in the Ops's natural
// order (insertion order when Ordered() is true, backend-defined otherwise
// — lexicographic by convention for unordered backends).
func mapEntries[T any](d ops.Dynamic[T]) ([]ops.DynamicEntry[T], bool) {
	r := d.AsMapStream()
	if !r.IsSuccess() {
		return nil, false
	}
	return r.Value(), true
}

func rebuildMap[T any](o ops.Ops[T], keys []string, values []ops.Dynamic[T]) ops.Dynamic[T] {
	out := ops.EmptyOf(o).EmptyMap()
	for i, k := range keys {
		out = out.Set(k, values[i])
	}
	return out
}

func keysOf[T any](entries []ops.DynamicEntry[T], o ops.Ops[T]) []string {
	keys := make([]string, len(entries))
	for i, e := range entries {
		s := e.Key.AsString()
		if s.IsSuccess() {
			keys[i] = s.Value()
		}
	}
	return keys
}

// All applies r to every immediate child of a map or list; every child must
// match or the whole traversal fails. Non-container values never match.
func All[T any](o ops.Ops[T], r Rule[T]) Rule[T] {
	return Rule[T]{
		ID: "all(" + r.ID + ")",
		Apply: func(typ *dtype.Type, d ops.Dynamic[T]) (ops.Dynamic[T], bool) {
			if d.IsList() {
				items := mustList(d)
				out := make([]ops.Dynamic[T], len(items))
				for i, it := range items {
					next, ok := r.Apply(typ, it)
					if !ok {
						return d, false
					}
					out[i] = next
				}
				return d.CreateList(out), true
			}
			if d.IsMap() {
				entries, ok := mapEntries(d)
				if !ok {
					return d, false
				}
				keys := keysOf(entries, o)
				values := make([]ops.Dynamic[T], len(entries))
				for i, e := range entries {
					next, matched := r.Apply(typ, e.Value)
					if !matched {
						return d, false
					}
					values[i] = next
				}
				return rebuildMap(o, keys, values), true
			}
			return d, false
		},
	}
}

// One applies r to the first matching child only, leaving the rest
// untouched; it fails if no child matches.
func One[T any](o ops.Ops[T], r Rule[T]) Rule[T] {
	return Rule[T]{
		ID: "one(" + r.ID + ")",
		Apply: func(typ *dtype.Type, d ops.Dynamic[T]) (ops.Dynamic[T], bool) {
			if d.IsList() {
				items := mustList(d)
				for i, it := range items {
					if next, ok := r.Apply(typ, it); ok {
						out := make([]ops.Dynamic[T], len(items))
						copy(out, items)
						out[i] = next
						return d.CreateList(out), true
					}
				}
				return d, false
			}
			if d.IsMap() {
				entries, ok := mapEntries(d)
				if !ok {
					return d, false
				}
				keys := keysOf(entries, o)
				for i, e := range entries {
					if next, matched := r.Apply(typ, e.Value); matched {
						values := make([]ops.Dynamic[T], len(entries))
						for j, ee := range entries {
							values[j] = ee.Value
						}
						values[i] = next
						return rebuildMap(o, keys, values), true
					}
				}
				return d, false
			}
			return d, false
		},
	}
}

// Everywhere applies r to self first (a miss is a no-op, not a failure),
// then recurses unconditionally into every child.
func Everywhere[T any](o ops.Ops[T], r Rule[T]) Rule[T] {
	var self Rule[T]
	self = Rule[T]{
		ID: "everywhere(" + r.ID + ")",
		Apply: func(typ *dtype.Type, d ops.Dynamic[T]) (ops.Dynamic[T], bool) {
			cur := d
			if next, ok := r.Apply(typ, cur); ok {
				cur = next
			}
			return recurseChildren(o, cur, typ, self.Apply), true
		},
	}
	return self
}

// BottomUp recurses into children first, then applies r to self.
func BottomUp[T any](o ops.Ops[T], r Rule[T]) Rule[T] {
	var self Rule[T]
	self = Rule[T]{
		ID: "bottomUp(" + r.ID + ")",
		Apply: func(typ *dtype.Type, d ops.Dynamic[T]) (ops.Dynamic[T], bool) {
			recursed := recurseChildren(o, d, typ, self.Apply)
			if next, ok := r.Apply(typ, recursed); ok {
				return next, true
			}
			return recursed, true
		},
	}
	return self
}

// TopDown applies r to self first, then recurses.
func TopDown[T any](o ops.Ops[T], r Rule[T]) Rule[T] {
	var self Rule[T]
	self = Rule[T]{
		ID: "topDown(" + r.ID + ")",
		Apply: func(typ *dtype.Type, d ops.Dynamic[T]) (ops.Dynamic[T], bool) {
			cur := d
			if next, ok := r.Apply(typ, cur); ok {
				cur = next
			}
			return recurseChildren(o, cur, typ, self.Apply), true
		},
	}
	return self
}

func recurseChildren[T any](o ops.Ops[T], d ops.Dynamic[T], typ *dtype.Type, apply func(*dtype.Type, ops.Dynamic[T]) (ops.Dynamic[T], bool)) ops.Dynamic[T] {
	if d.IsList() {
		items := mustList(d)
		out := make([]ops.Dynamic[T], len(items))
		for i, it := range items {
			next, _ := apply(typ, it)
			out[i] = next
		}
		return d.CreateList(out)
	}
	if d.IsMap() {
		entries, ok := mapEntries(d)
		if !ok {
			return d
		}
		keys := keysOf(entries, o)
		values := make([]ops.Dynamic[T], len(entries))
		for i, e := range entries {
			next, _ := apply(typ, e.Value)
			values[i] = next
		}
		return rebuildMap(o, keys, values)
	}
	return d
}

func mustList[T any](d ops.Dynamic[T]) []ops.Dynamic[T] {
	r := d.AsListStream()
	return r.OrElse(nil)
}
