package rewrite

import (
	"testing"

	"github.com/basinfx/datafixer/dtype"
	"github.com/basinfx/datafixer/ops"
)

func setAge(v int32) Rule[any] {
	return Rule[any]{
		ID: "setAge",
		Apply: func(_ *dtype.Type, d ops.Dynamic[any]) (ops.Dynamic[any], bool) {
			return d.Set("age", d.CreateInt(v)), true
		},
	}
}

func declineRule() Rule[any] {
	return Rule[any]{
		ID: "decline",
		Apply: func(_ *dtype.Type, d ops.Dynamic[any]) (ops.Dynamic[any], bool) {
			return d, false
		},
	}
}

func TestSeqAbortsOnFirstNonMatch(t *testing.T) {
	d := mapOf("name", "Alice")
	_, ok := Seq[any](setAge(1), declineRule(), setAge(2)).Apply(nil, d)
	if ok {
		t.Fatalf("expected Seq to abort on a non-matching rule")
	}
}

func TestSeqAllTreatsNonMatchAsNoop(t *testing.T) {
	d := mapOf("name", "Alice")
	out, ok := SeqAll[any](setAge(1), declineRule(), setAge(2)).Apply(nil, d)
	if !ok {
		t.Fatalf("expected SeqAll to always match")
	}
	got := out.Get("age").Value().AsInt()
	if got.Value() != 2 {
		t.Errorf("expected age 2 (last write wins), got %v", got.Value())
	}
}

func TestChoiceFirstMatchWins(t *testing.T) {
	d := mapOf("name", "Alice")
	out, ok := Choice[any](declineRule(), setAge(1), setAge(2)).Apply(nil, d)
	if !ok {
		t.Fatalf("expected Choice to match")
	}
	if out.Get("age").Value().AsInt().Value() != 1 {
		t.Errorf("expected first matching rule's result")
	}
}

func TestTryOnceKeepsInputOnNonMatch(t *testing.T) {
	d := mapOf("name", "Alice")
	out, ok := TryOnce(declineRule()).Apply(nil, d)
	if !ok {
		t.Fatalf("expected TryOnce to always match")
	}
	if out.Has("age") {
		t.Errorf("expected input kept unchanged")
	}
}

func TestIfTypeDelegatesOnlyOnNameMatch(t *testing.T) {
	d := mapOf("name", "Alice")
	personType := dtype.Record("person")
	otherType := dtype.Record("other")

	_, ok := IfType[any]("person", setAge(9)).Apply(otherType, d)
	if ok {
		t.Fatalf("expected no match for the wrong type")
	}
	out, ok := IfType[any]("person", setAge(9)).Apply(personType, d)
	if !ok || out.Get("age").Value().AsInt().Value() != 9 {
		t.Errorf("expected delegate to run for matching type")
	}
}

func TestNoopAlwaysMatchesUnchanged(t *testing.T) {
	d := mapOf("name", "Alice")
	out, ok := Noop[any]().Apply(nil, d)
	if !ok {
		t.Fatalf("expected Noop to match")
	}
	if out.Get("name").Value().AsString().Value() != "Alice" {
		t.Errorf("expected unchanged value")
	}
}

func TestNonInvertibleRulePanicsOnInverse(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic calling Inverse on a rule with no inverse")
		}
	}()
	Noop[any]().Inverse()
}

func TestInvertibleReportsWhetherInverseIsSet(t *testing.T) {
	if Noop[any]().Invertible() {
		t.Errorf("expected Noop to report no inverse")
	}
	if !RenameField[any](theOps, "a", "b").Invertible() {
		t.Errorf("expected RenameField to report an inverse")
	}
}

func TestLogDoesNotChangeMatchResult(t *testing.T) {
	var lines []string
	logger := func(format string, args ...any) {
		lines = append(lines, format)
	}
	d := mapOf("name", "Alice")
	out, ok := Log[any]("setting age", setAge(3), logger).Apply(nil, d)
	if !ok || out.Get("age").Value().AsInt().Value() != 3 {
		t.Fatalf("expected Log to pass through the wrapped rule's result")
	}
	if len(lines) != 1 {
		t.Errorf("expected exactly one log line, got %d", len(lines))
	}
}
