package dtype

import "testing"

func TestRecordAndListShapes(t *testing.T) {
	stringT := Primitive("string")
	userT := Record("user",
		Field{Name: "name", Type: stringT},
		Field{Name: "tags", Type: List(stringT)},
	)

	if userT.Kind != KindRecord || len(userT.Fields()) != 2 {
		t.Fatalf("expected a 2-field record, got %+v", userT)
	}
	if userT.Fields()[1].Type.Kind != KindList {
		t.Errorf("expected second field to be a list")
	}
}

func TestRecursiveTypeFamily(t *testing.T) {
	// A recursive sum type: value = primitive | list(value).
	family := NewTypeFamily(func(f *TypeFamily) *Type {
		return Sum("value",
			Case{Name: "primitive", Type: Primitive("string")},
			Case{Name: "list", Type: List(f.Ref(0))},
		)
	})

	value := family.Type(0)
	listCase := value.Cases()[1]
	if listCase.Type.Kind != KindList {
		t.Fatalf("expected list case")
	}
	elem := listCase.Type.Elem()
	if elem.Resolve().Kind != KindSum {
		t.Errorf("expected recursive ref to resolve back to the sum itself, got %+v", elem.Resolve())
	}
}

func TestRefAccessedDuringConstructionPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic when a Ref is dereferenced before its family finishes building")
		}
	}()

	NewTypeFamily(func(f *TypeFamily) *Type {
		// Dereferencing immediately, before any slot is filled in, must fail.
		f.Ref(0).Resolve()
		return Primitive("unreachable")
	})
}

func TestOptionalType(t *testing.T) {
	opt := Optional(Primitive("int"))
	if opt.Kind != KindOptional || opt.Elem().Kind != KindPrimitive {
		t.Errorf("expected optional wrapping a primitive, got %+v", opt)
	}
}
