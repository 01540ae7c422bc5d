// Package rewrite implements the combinator algebra used to write fix
// bodies: sequencing, choice, type gating, traversal, field edits and the
// batched multi-field transformer that is the hottest path in a migration.
package rewrite

import (
	"github.com/basinfx/datafixer/dtype"
	"github.com/basinfx/datafixer/ops"
)

// Rule is a TypeRewriteRule: a transform over a Dynamic, gated by the
// structural Type it is being applied to, that can decline to match. A
// declined match ("did not apply") is reported via the bool return, not an
// error — rules are expected to fail to match routinely (e.g. ifType
// skipping every rule that targets a different shape), so using Result's
// error channel for it would make every combinator pay for diagnostics it
// doesn't need.
type Rule[T any] struct {
	ID    string
	Apply func(typ *dtype.Type, d ops.Dynamic[T]) (ops.Dynamic[T], bool)

	// inverse is set only by combinators that know how to build the rule
	// that undoes them (RenameField, RemoveField, AddField, ...). Most
	// rules leave it nil; call Invertible() to check before Inverse().
	inverse func() Rule[T]
}

// Invertible reports whether this rule was built with a known inverse.
func (r Rule[T]) Invertible() bool { return r.inverse != nil }

// Inverse returns the rule that undoes r. It panics if r was not built by a
// combinator that records an inverse — check Invertible first.
func (r Rule[T]) Inverse() Rule[T] {
	if r.inverse == nil {
		panic("rewrite: rule " + r.ID + " has no inverse")
	}
	return r.inverse()
}

// Seq is the strict AND: the whole chain fails at the first rule that
// fails to match.
func Seq[T any](rules ...Rule[T]) Rule[T] {
	return Rule[T]{
		ID: "seq",
		Apply: func(typ *dtype.Type, d ops.Dynamic[T]) (ops.Dynamic[T], bool) {
			cur := d
			for _, r := range rules {
				next, ok := r.Apply(typ, cur)
				if !ok {
					return d, false
				}
				cur = next
			}
			return cur, true
		},
	}
}

// SeqAll is the forgiving AND: a rule that fails to match is treated as a
// no-op rather than aborting the chain, so the result is always a match.
func SeqAll[T any](rules ...Rule[T]) Rule[T] {
	return Rule[T]{
		ID: "seqAll",
		Apply: func(typ *dtype.Type, d ops.Dynamic[T]) (ops.Dynamic[T], bool) {
			cur := d
			for _, r := range rules {
				if next, ok := r.Apply(typ, cur); ok {
					cur = next
				}
			}
			return cur, true
		},
	}
}

// Choice tries each rule in order and keeps the first that matches.
func Choice[T any](rules ...Rule[T]) Rule[T] {
	return Rule[T]{
		ID: "choice",
		Apply: func(typ *dtype.Type, d ops.Dynamic[T]) (ops.Dynamic[T], bool) {
			for _, r := range rules {
				if next, ok := r.Apply(typ, d); ok {
					return next, true
				}
			}
			return d, false
		},
	}
}

// CheckOnce is a transparent wrapper reserved for future validation hooks —
// today it simply delegates.
func CheckOnce[T any](r Rule[T]) Rule[T] {
	return Rule[T]{ID: "checkOnce(" + r.ID + ")", Apply: r.Apply}
}

// TryOnce is r.orKeep(): a failed match becomes Some(input) instead of
// propagating failure.
func TryOnce[T any](r Rule[T]) Rule[T] {
	return Rule[T]{
		ID: "tryOnce(" + r.ID + ")",
		Apply: func(typ *dtype.Type, d ops.Dynamic[T]) (ops.Dynamic[T], bool) {
			if next, ok := r.Apply(typ, d); ok {
				return next, true
			}
			return d, true
		},
	}
}

// IfType delegates to r only when typ.Name equals target, otherwise
// declines to match.
func IfType[T any](target string, r Rule[T]) Rule[T] {
	return Rule[T]{
		ID: "ifType(" + target + "," + r.ID + ")",
		Apply: func(typ *dtype.Type, d ops.Dynamic[T]) (ops.Dynamic[T], bool) {
			if typ == nil || typ.Name != target {
				return d, false
			}
			return r.Apply(typ, d)
		},
	}
}

// Noop is the identity rule: always matches, never changes its input.
func Noop[T any]() Rule[T] {
	return Rule[T]{
		ID:    "noop",
		Apply: func(_ *dtype.Type, d ops.Dynamic[T]) (ops.Dynamic[T], bool) { return d, true },
	}
}

// Logger receives one line per rule application, mirroring the debug-log
// toggle the teacher's Config.EnableDebugLogging exposes.
type Logger func(format string, args ...any)

// Log wraps r, invoking logger once per application with whether the rule
// matched.
func Log[T any](msg string, r Rule[T], logger Logger) Rule[T] {
	return Rule[T]{
		ID: "log(" + r.ID + ")",
		Apply: func(typ *dtype.Type, d ops.Dynamic[T]) (ops.Dynamic[T], bool) {
			next, ok := r.Apply(typ, d)
			logger("%s: rule %q matched=%v", msg, r.ID, ok)
			return next, ok
		},
	}
}
