// Package optics implements the composable read/write paths — Getter, Lens,
// Prism, Affine, Iso and Traversal — used to reach into a Dynamic without
// hand-rolling get/set pairs at every call site. Each optic is a small value
// carrying an id string so a composed chain can be printed for debugging.
//
// Go has no sum-type "Option"; the getOption-style accessors here return
// (A, bool) instead, which is the idiomatic equivalent and composes the same
// way under zero-value handling.
package optics

// Getter is a pure, always-succeeding read path S -> A.
type Getter[S, A any] struct {
	ID  string
	Get func(S) A
}

// Lens is a total, bidirectional path: every S has exactly one A.
type Lens[S, A any] struct {
	ID  string
	Get func(S) A
	Set func(S, A) S
}

// Prism views S as one case of a sum, identified by A.
type Prism[S, A any] struct {
	ID         string
	GetOption  func(S) (A, bool)
	ReverseGet func(A) S
}

// Affine is a partial lens: the location may or may not exist in S, and
// writing through a missing location is a no-op.
type Affine[S, A any] struct {
	ID        string
	GetOption func(S) (A, bool)
	Set       func(S, A) S
}

// Iso is a total, information-preserving round trip between S and A.
type Iso[S, A any] struct {
	ID   string
	To   func(S) A
	From func(A) S
}

// Reverse swaps the direction of an Iso.
func (i Iso[S, A]) Reverse() Iso[A, S] {
	return Iso[A, S]{ID: i.ID + ".reverse", To: i.From, From: i.To}
}

// Traversal visits zero or more A's inside an S and can rewrite all of them
// at once.
type Traversal[S, A any] struct {
	ID     string
	Modify func(s S, f func(A) A) S
}

func chainID(a, b string) string {
	if a == "" || a == "identity" {
		return b
	}
	if b == "" || b == "identity" {
		return a
	}
	return a + "." + b
}

// GetterID, LensID, etc. are not needed — callers read the ID field
// directly; the helpers below only build composites.

// ComposeGetter chains two getters: S -> A -> B.
func ComposeGetter[S, A, B any](g1 Getter[S, A], g2 Getter[A, B]) Getter[S, B] {
	return Getter[S, B]{
		ID:  chainID(g1.ID, g2.ID),
		Get: func(s S) B { return g2.Get(g1.Get(s)) },
	}
}

// ComposeLens chains two lenses, satisfying the lens laws as long as each
// input does.
func ComposeLens[S, A, B any](l1 Lens[S, A], l2 Lens[A, B]) Lens[S, B] {
	return Lens[S, B]{
		ID:  chainID(l1.ID, l2.ID),
		Get: func(s S) B { return l2.Get(l1.Get(s)) },
		Set: func(s S, b B) S {
			a := l1.Get(s)
			return l1.Set(s, l2.Set(a, b))
		},
	}
}

// LensToAffine widens a total Lens to an Affine — the location always
// exists, so GetOption always succeeds.
func LensToAffine[S, A any](l Lens[S, A]) Affine[S, A] {
	return Affine[S, A]{
		ID:        l.ID,
		GetOption: func(s S) (A, bool) { return l.Get(s), true },
		Set:       l.Set,
	}
}

// PrismToAffine widens a Prism to an Affine. Set returns s unchanged when
// the prism does not match it (the location is missing); on a match it
// replaces s wholesale via ReverseGet — a Prism has no notion of "the other
// branches of s", so there is nothing else to preserve.
func PrismToAffine[S, A any](p Prism[S, A]) Affine[S, A] {
	return Affine[S, A]{
		ID:        p.ID,
		GetOption: p.GetOption,
		Set: func(s S, a A) S {
			if _, ok := p.GetOption(s); !ok {
				return s
			}
			return p.ReverseGet(a)
		},
	}
}

// IsoToLens widens a total Iso to a Lens.
func IsoToLens[S, A any](i Iso[S, A]) Lens[S, A] {
	return Lens[S, A]{
		ID:  i.ID,
		Get: i.To,
		Set: func(_ S, a A) S { return i.From(a) },
	}
}

// ComposeAffine chains two affines: the second only applies if the first
// location exists.
func ComposeAffine[S, A, B any](a1 Affine[S, A], a2 Affine[A, B]) Affine[S, B] {
	return Affine[S, B]{
		ID: chainID(a1.ID, a2.ID),
		GetOption: func(s S) (B, bool) {
			a, ok := a1.GetOption(s)
			if !ok {
				var zero B
				return zero, false
			}
			return a2.GetOption(a)
		},
		Set: func(s S, b B) S {
			a, ok := a1.GetOption(s)
			if !ok {
				return s
			}
			return a1.Set(s, a2.Set(a, b))
		},
	}
}

// ComposeLensThenAffine composes a total Lens with a partial Affine; the
// result is an Affine since the second stage may still miss.
func ComposeLensThenAffine[S, A, B any](l Lens[S, A], a Affine[A, B]) Affine[S, B] {
	return ComposeAffine(LensToAffine(l), a)
}

// ComposeAffineThenLens composes a partial Affine with a total Lens.
func ComposeAffineThenLens[S, A, B any](a Affine[S, A], l Lens[A, B]) Affine[S, B] {
	return ComposeAffine(a, LensToAffine(l))
}

// ComposeTraversal chains two traversals.
func ComposeTraversal[S, A, B any](t1 Traversal[S, A], t2 Traversal[A, B]) Traversal[S, B] {
	return Traversal[S, B]{
		ID: chainID(t1.ID, t2.ID),
		Modify: func(s S, f func(B) B) S {
			return t1.Modify(s, func(a A) A { return t2.Modify(a, f) })
		},
	}
}

// TraversalOfAffine views an Affine as a Traversal over zero-or-one
// elements.
func TraversalOfAffine[S, A any](a Affine[S, A]) Traversal[S, A] {
	return Traversal[S, A]{
		ID: a.ID,
		Modify: func(s S, f func(A) A) S {
			v, ok := a.GetOption(s)
			if !ok {
				return s
			}
			return a.Set(s, f(v))
		},
	}
}

// IdentityLens is the neutral element of Lens composition.
func IdentityLens[S any]() Lens[S, S] {
	return Lens[S, S]{
		ID:  "identity",
		Get: func(s S) S { return s },
		Set: func(_ S, s S) S { return s },
	}
}
