package schemadiff

import (
	"sort"

	"github.com/basinfx/datafixer/dtype"
	"github.com/basinfx/datafixer/schema"
)

// FieldChangeKind classifies one field-level difference between two
// record renderings, the same four-way split the teacher's
// pkg/schema.FieldDiffType uses (added/removed/modified/renamed), minus
// rename detection: dtype carries no field identity across a rename, so a
// renamed field surfaces here as one Added and one Removed change.
type FieldChangeKind int

const (
	FieldAdded FieldChangeKind = iota
	FieldRemoved
	FieldModified
)

func (k FieldChangeKind) String() string {
	switch k {
	case FieldAdded:
		return "added"
	case FieldRemoved:
		return "removed"
	case FieldModified:
		return "modified"
	default:
		return "unknown"
	}
}

// FieldChange is one difference between the old and new rendering of a
// record field.
type FieldChange struct {
	Kind     FieldChangeKind
	Name     string
	OldField *dtype.Field
	NewField *dtype.Field
}

// TypeDiff holds every field-level change between two versions of one
// TypeReference's structural type. A non-record Type (list, sum,
// primitive) that changed produces a single FieldModified entry keyed by
// an empty field name, since there is no field list to diff.
type TypeDiff struct {
	Ref     schema.TypeReference
	Old     schema.DataVersion
	New     schema.DataVersion
	Changes []FieldChange
}

// CompareTypes diffs one TypeReference's structural type as it was bound
// in two schemas. It reports ok=false if either schema has no binding for
// ref.
func CompareTypes(ref schema.TypeReference, oldSchema, newSchema *schema.Schema) (TypeDiff, bool) {
	oldType, ok := oldSchema.Resolve(ref)
	if !ok {
		return TypeDiff{}, false
	}
	newType, ok := newSchema.Resolve(ref)
	if !ok {
		return TypeDiff{}, false
	}

	diff := TypeDiff{Ref: ref, Old: oldSchema.Version, New: newSchema.Version}

	oldResolved, newResolved := oldType.Resolve(), newType.Resolve()
	if oldResolved.Kind != dtype.KindRecord || newResolved.Kind != dtype.KindRecord {
		if !sameShape(oldResolved, newResolved) {
			diff.Changes = append(diff.Changes, FieldChange{Kind: FieldModified})
		}
		return diff, true
	}

	oldFields := fieldsByName(oldResolved)
	newFields := fieldsByName(newResolved)

	for _, name := range sortedKeys(newFields) {
		newField := newFields[name]
		if oldField, exists := oldFields[name]; exists {
			if !sameShape(oldField.Type.Resolve(), newField.Type.Resolve()) {
				diff.Changes = append(diff.Changes, FieldChange{
					Kind: FieldModified, Name: name,
					OldField: fieldCopy(oldField), NewField: fieldCopy(newField),
				})
			}
		} else {
			diff.Changes = append(diff.Changes, FieldChange{
				Kind: FieldAdded, Name: name, NewField: fieldCopy(newField),
			})
		}
	}
	for _, name := range sortedKeys(oldFields) {
		if _, exists := newFields[name]; !exists {
			oldField := oldFields[name]
			diff.Changes = append(diff.Changes, FieldChange{
				Kind: FieldRemoved, Name: name, OldField: fieldCopy(oldField),
			})
		}
	}

	return diff, true
}

// CompareSchemas diffs every TypeReference the two schemas have in
// common, plus reports references bound in only one of them as a
// whole-type FieldAdded/FieldRemoved change.
func CompareSchemas(oldSchema, newSchema *schema.Schema) []TypeDiff {
	oldRefs := toSet(oldSchema.TypeReferences())
	newRefs := toSet(newSchema.TypeReferences())

	var diffs []TypeDiff
	for _, ref := range newSchema.TypeReferences() {
		if _, existed := oldRefs[ref]; !existed {
			diffs = append(diffs, TypeDiff{
				Ref: ref, Old: oldSchema.Version, New: newSchema.Version,
				Changes: []FieldChange{{Kind: FieldAdded}},
			})
			continue
		}
		if d, ok := CompareTypes(ref, oldSchema, newSchema); ok && len(d.Changes) > 0 {
			diffs = append(diffs, d)
		}
	}
	for _, ref := range oldSchema.TypeReferences() {
		if _, exists := newRefs[ref]; !exists {
			diffs = append(diffs, TypeDiff{
				Ref: ref, Old: oldSchema.Version, New: newSchema.Version,
				Changes: []FieldChange{{Kind: FieldRemoved}},
			})
		}
	}
	return diffs
}

func toSet(refs []schema.TypeReference) map[schema.TypeReference]struct{} {
	out := make(map[schema.TypeReference]struct{}, len(refs))
	for _, r := range refs {
		out[r] = struct{}{}
	}
	return out
}

func fieldsByName(t *dtype.Type) map[string]dtype.Field {
	out := make(map[string]dtype.Field, len(t.Fields()))
	for _, f := range t.Fields() {
		out[f.Name] = f
	}
	return out
}

func fieldCopy(f dtype.Field) *dtype.Field { return &f }

func sortedKeys(m map[string]dtype.Field) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// sameShape reports whether two resolved types are structurally
// equivalent for diffing purposes: same kind, same name, and recursively
// equivalent element/field/case shapes.
func sameShape(a, b *dtype.Type) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case dtype.KindPrimitive:
		return a.Name == b.Name
	case dtype.KindOptional, dtype.KindList:
		return sameShape(a.Elem().Resolve(), b.Elem().Resolve())
	case dtype.KindRecord:
		af, bf := a.Fields(), b.Fields()
		if len(af) != len(bf) {
			return false
		}
		bm := fieldsByName(b)
		for _, f := range af {
			other, ok := bm[f.Name]
			if !ok || !sameShape(f.Type.Resolve(), other.Type.Resolve()) {
				return false
			}
		}
		return true
	case dtype.KindSum:
		ac, bc := a.Cases(), b.Cases()
		if len(ac) != len(bc) {
			return false
		}
		bm := make(map[string]dtype.Case, len(bc))
		for _, c := range bc {
			bm[c.Name] = c
		}
		for _, c := range ac {
			other, ok := bm[c.Name]
			if !ok || !sameShape(c.Type.Resolve(), other.Type.Resolve()) {
				return false
			}
		}
		return true
	default:
		return true
	}
}
