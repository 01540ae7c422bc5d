package optics

import "testing"

type point struct {
	X, Y int
}

func xLens() Lens[point, int] {
	return Lens[point, int]{
		ID:  "x",
		Get: func(p point) int { return p.X },
		Set: func(p point, x int) point { p.X = x; return p },
	}
}

func yLens() Lens[point, int] {
	return Lens[point, int]{
		ID:  "y",
		Get: func(p point) int { return p.Y },
		Set: func(p point, y int) point { p.Y = y; return p },
	}
}

func TestLensLaws(t *testing.T) {
	l := xLens()
	p := point{X: 1, Y: 2}

	if got := l.Get(l.Set(p, 9)); got != 9 {
		t.Errorf("get(set(s,a)) = a violated: got %d", got)
	}
	if got := l.Set(p, l.Get(p)); got != p {
		t.Errorf("set(s, get(s)) = s violated: got %+v", got)
	}
	if got, want := l.Set(l.Set(p, 9), 5), l.Set(p, 5); got != want {
		t.Errorf("set(set(s,a),b) = set(s,b) violated: got %+v want %+v", got, want)
	}
}

func TestComposeLens(t *testing.T) {
	type wrapper struct{ P point }
	pLens := Lens[wrapper, point]{
		ID:  "p",
		Get: func(w wrapper) point { return w.P },
		Set: func(w wrapper, p point) wrapper { w.P = p; return w },
	}
	composed := ComposeLens(pLens, xLens())

	w := wrapper{P: point{X: 1, Y: 2}}
	if composed.Get(w) != 1 {
		t.Errorf("expected composed get to reach nested X")
	}
	updated := composed.Set(w, 42)
	if updated.P.X != 42 || updated.P.Y != 2 {
		t.Errorf("expected only X updated, got %+v", updated)
	}
	if composed.ID != "p.x" {
		t.Errorf("expected chained id 'p.x', got %q", composed.ID)
	}
}

func evenPrism() Prism[int, int] {
	return Prism[int, int]{
		ID: "even",
		GetOption: func(s int) (int, bool) {
			if s%2 == 0 {
				return s, true
			}
			return 0, false
		},
		ReverseGet: func(a int) int { return a },
	}
}

func TestPrismLaws(t *testing.T) {
	p := evenPrism()

	a := 4
	s := p.ReverseGet(a)
	got, ok := p.GetOption(s)
	if !ok || got != a {
		t.Errorf("getOption(reverseGet(a)) = Some(a) violated: got %v ok=%v", got, ok)
	}

	if _, ok := p.GetOption(3); ok {
		t.Errorf("expected odd input to miss")
	}
}

func TestIsoRoundTrip(t *testing.T) {
	i := Iso[int, string]{
		ID:   "itoa",
		To:   func(n int) string { return itoa(n) },
		From: func(s string) int { return atoi(s) },
	}

	n := 42
	if got := i.From(i.To(n)); got != n {
		t.Errorf("round trip to->from violated: got %d", got)
	}
	s := "7"
	if got := i.To(i.From(s)); got != s {
		t.Errorf("round trip from->to violated: got %q", got)
	}

	rev := i.Reverse()
	if rev.From(n) != i.To(n) {
		t.Errorf("reverse should swap to/from")
	}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf []byte
	for n > 0 {
		buf = append([]byte{byte('0' + n%10)}, buf...)
		n /= 10
	}
	if neg {
		buf = append([]byte{'-'}, buf...)
	}
	return string(buf)
}

func atoi(s string) int {
	neg := false
	i := 0
	if len(s) > 0 && s[0] == '-' {
		neg = true
		i = 1
	}
	n := 0
	for ; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
	}
	if neg {
		return -n
	}
	return n
}

func TestAffineSetOnMissingIsNoop(t *testing.T) {
	type box struct {
		Val   int
		Valid bool
	}
	aff := Affine[box, int]{
		ID: "val",
		GetOption: func(b box) (int, bool) {
			if b.Valid {
				return b.Val, true
			}
			return 0, false
		},
		Set: func(b box, v int) box {
			if !b.Valid {
				return b
			}
			b.Val = v
			return b
		},
	}

	missing := box{Valid: false}
	if got := aff.Set(missing, 99); got != missing {
		t.Errorf("set on missing location should be a no-op, got %+v", got)
	}

	present := box{Valid: true, Val: 1}
	updated := aff.Set(present, 99)
	got, ok := aff.GetOption(updated)
	if !ok || got != 99 {
		t.Errorf("getOption(set(s,a)) = Some(a) violated: got %v ok=%v", got, ok)
	}
}

func TestTraversalIdentityIsNoop(t *testing.T) {
	trav := TraversalOfAffine(LensToAffine(xLens()))
	p := point{X: 3, Y: 4}
	if got := trav.Modify(p, func(x int) int { return x }); got != p {
		t.Errorf("modify(s, identity) = s violated: got %+v", got)
	}
}
