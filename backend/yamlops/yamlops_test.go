package yamlops

import (
	"strings"
	"testing"
)

func TestParseRoundTripsScalarsListsAndMaps(t *testing.T) {
	input := "name: Ada\nage: 36\nactive: true\ntags:\n  - x\n  - y\nmeta: null\n"
	d, err := Parse([]byte(input))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if d.Get("name").Value().AsString().Value() != "Ada" {
		t.Errorf("expected name preserved")
	}
	if d.Get("age").Value().AsInt().Value() != 36 {
		t.Errorf("expected age preserved")
	}
	if !d.Get("active").Value().AsBoolean().Value() {
		t.Errorf("expected active preserved")
	}
	tags := d.Get("tags").Value().AsListStream().Value()
	if len(tags) != 2 || tags[0].AsString().Value() != "x" || tags[1].AsString().Value() != "y" {
		t.Errorf("expected tags list preserved, got %+v", tags)
	}
	if !d.Get("meta").Value().IsNull() {
		t.Errorf("expected meta to decode as null")
	}
}

func TestParsePreservesMappingOrder(t *testing.T) {
	d, err := Parse([]byte("z: 1\na: 2\nm: 3\n"))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	entries := d.AsMapStream().Value()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	want := []string{"z", "a", "m"}
	for i, w := range want {
		if got := entries[i].Key.AsString().Value(); got != w {
			t.Errorf("expected entry %d key %q, got %q", i, w, got)
		}
	}
}

func TestEncodeRendersValidYAML(t *testing.T) {
	d, _ := Parse([]byte("a: 1\nb: two\n"))
	out, err := Encode(d)
	if err != nil {
		t.Fatalf("unexpected encode error: %v", err)
	}
	if !strings.Contains(string(out), "a: 1") || !strings.Contains(string(out), "b: two") {
		t.Errorf("expected encoded output to contain both fields, got %s", out)
	}
}

func TestSetIsCopyOnWrite(t *testing.T) {
	before, _ := Parse([]byte("a: 1\n"))
	after := before.Set("b", before.CreateInt(2))

	if before.Has("b") {
		t.Errorf("expected Set to not mutate the original Dynamic")
	}
	if !after.Has("a") || !after.Has("b") {
		t.Errorf("expected the new Dynamic to carry both fields")
	}
}

func TestRemoveLeavesOriginalUntouched(t *testing.T) {
	before, _ := Parse([]byte("a: 1\nb: 2\n"))
	after := before.Remove("a")

	if !before.Has("a") {
		t.Errorf("expected original to retain 'a'")
	}
	if after.Has("a") {
		t.Errorf("expected 'a' removed from the new value")
	}
}

func TestMergeMapsOverwritesLeftWithRightByKey(t *testing.T) {
	left, _ := Parse([]byte("a: 1\nb: 2\n"))
	right, _ := Parse([]byte("b: 20\nc: 3\n"))

	r := Ops.MergeMaps(left.Value, right.Value)
	if r.IsError() {
		t.Fatalf("unexpected merge error: %s", r.ErrorMessage())
	}
	merged := r.Value()
	b, ok := Ops.Get(merged, "b")
	if !ok || Ops.AsDouble(b).Value() != 20 {
		t.Errorf("expected right's 'b' to win")
	}
	c, ok := Ops.Get(merged, "c")
	if !ok || Ops.AsDouble(c).Value() != 3 {
		t.Errorf("expected right's new key added")
	}
}

func TestAsStringOnNonStringReturnsError(t *testing.T) {
	d, _ := Parse([]byte("42\n"))
	r := d.AsString()
	if r.IsSuccess() {
		t.Fatalf("expected an error for AsString on a number")
	}
	if !strings.HasPrefix(r.ErrorMessage(), "Not a string") {
		t.Errorf("expected a 'Not a string' prefixed error, got %q", r.ErrorMessage())
	}
}

func TestParseDoesNotAliasCallerAccessibleState(t *testing.T) {
	d1, _ := Parse([]byte("a: 1\n"))
	d2, _ := Parse([]byte("a: 1\n"))
	if d1.Value == d2.Value {
		t.Errorf("expected two independent parses to produce distinct node trees")
	}
}
