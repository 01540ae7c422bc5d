package rewrite

import (
	"github.com/basinfx/datafixer/dtype"
	"github.com/basinfx/datafixer/ops"
)

// Batch accumulates a strictly ordered sequence of field operations into
// one Rule, so a migration with k field edits applies them back-to-back in
// one traversal instead of composing k separately-dispatched Rule values —
// the hot path for a "fuse many small edits" fix body. Later operations see
// the result of earlier ones.
type Batch[T any] struct {
	ops []Rule[T]
}

// NewBatch starts an empty batch bound to o (kept for symmetry with the
// rest of the combinator surface, which always takes an Ops explicitly,
// even though Batch's own steps close over Dynamic rather than Ops
// directly).
func NewBatch[T any](o ops.Ops[T]) *Batch[T] {
	return &Batch[T]{}
}

func (b *Batch[T]) Rename(oldName, newName string) *Batch[T] {
	b.ops = append(b.ops, RenameField[T](nil, oldName, newName))
	return b
}

func (b *Batch[T]) Remove(name string) *Batch[T] {
	b.ops = append(b.ops, RemoveField[T](name))
	return b
}

func (b *Batch[T]) Add(name string, defaultValue func(ops.Ops[T]) ops.Dynamic[T]) *Batch[T] {
	b.ops = append(b.ops, AddField[T](name, defaultValue))
	return b
}

func (b *Batch[T]) Set(name string, value func(ops.Ops[T]) ops.Dynamic[T]) *Batch[T] {
	b.ops = append(b.ops, SetField[T](name, value))
	return b
}

func (b *Batch[T]) Transform(name string, f func(ops.Dynamic[T]) ops.Dynamic[T]) *Batch[T] {
	b.ops = append(b.ops, TransformField[T](name, f))
	return b
}

func (b *Batch[T]) TransformAt(path string, f func(ops.Dynamic[T]) ops.Dynamic[T]) *Batch[T] {
	b.ops = append(b.ops, TransformFieldAt[T](path, f))
	return b
}

func (b *Batch[T]) RenameAt(oldPath, newPath string) *Batch[T] {
	b.ops = append(b.ops, RenameFieldAt[T](oldPath, newPath))
	return b
}

func (b *Batch[T]) RemoveAt(path string) *Batch[T] {
	b.ops = append(b.ops, RemoveFieldAt[T](path))
	return b
}

func (b *Batch[T]) Group(target string, srcs ...string) *Batch[T] {
	b.ops = append(b.ops, GroupFields[T](target, srcs...))
	return b
}

func (b *Batch[T]) Flatten(name string) *Batch[T] {
	b.ops = append(b.ops, FlattenField[T](name))
	return b
}

func (b *Batch[T]) Move(src, dst string) *Batch[T] {
	b.ops = append(b.ops, MoveField[T](src, dst))
	return b
}

func (b *Batch[T]) Copy(src, dst string) *Batch[T] {
	b.ops = append(b.ops, CopyField[T](src, dst))
	return b
}

func (b *Batch[T]) If(predicate func(ops.Dynamic[T]) bool, transform func(ops.Dynamic[T]) ops.Dynamic[T]) *Batch[T] {
	b.ops = append(b.ops, TryOnce(ConditionalTransform(predicate, transform)))
	return b
}

// Build fuses every accumulated step into one rule, applied with SeqAll
// semantics (each step is forgiving of its own no-match so one optional
// edit never aborts the rest of the batch). The fused steps are then
// canonicalized through exactly one decode/encode pass over the root map —
// one cycle no matter how many steps are fused in.
func (b *Batch[T]) Build() Rule[T] {
	fused := SeqAll(b.ops...)
	return Rule[T]{
		ID: "batch",
		Apply: func(typ *dtype.Type, d ops.Dynamic[T]) (ops.Dynamic[T], bool) {
			out, matched := fused.Apply(typ, d)
			if !matched {
				return d, false
			}
			decoded := out.Ops.GetMapEntries(out.Value)
			if !decoded.IsSuccess() {
				return out, true
			}
			return ops.NewDynamic(out.Ops, out.Ops.CreateMap(decoded.Value())), true
		},
	}
}
