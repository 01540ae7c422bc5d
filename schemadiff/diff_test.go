package schemadiff_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/basinfx/datafixer/dtype"
	"github.com/basinfx/datafixer/schema"
	"github.com/basinfx/datafixer/schemadiff"
)

var _ = Describe("CompareTypes", func() {
	template := func(fields ...dtype.Field) dtype.TypeTemplate {
		return func(*dtype.TypeFamily) *dtype.Type { return dtype.Record("player", fields...) }
	}

	It("reports an added field when the new schema binds one the old schema lacks", func() {
		oldSchema := schema.NewSchema(1, map[schema.TypeReference]dtype.TypeTemplate{
			"player": template(dtype.Field{Name: "name", Type: dtype.Primitive("string")}),
		})
		newSchema := schema.NewSchema(2, map[schema.TypeReference]dtype.TypeTemplate{
			"player": template(
				dtype.Field{Name: "name", Type: dtype.Primitive("string")},
				dtype.Field{Name: "level", Type: dtype.Primitive("int")},
			),
		})

		diff, ok := schemadiff.CompareTypes("player", oldSchema, newSchema)
		Expect(ok).To(BeTrue())
		Expect(diff.Changes).To(ContainElement(schemadiff.FieldChange{
			Kind: schemadiff.FieldAdded, Name: "level",
			NewField: &dtype.Field{Name: "level", Type: dtype.Primitive("int")},
		}))
	})

	It("reports a removed field when the new schema drops one the old schema had", func() {
		oldSchema := schema.NewSchema(1, map[schema.TypeReference]dtype.TypeTemplate{
			"player": template(
				dtype.Field{Name: "name", Type: dtype.Primitive("string")},
				dtype.Field{Name: "legacy_id", Type: dtype.Primitive("string")},
			),
		})
		newSchema := schema.NewSchema(2, map[schema.TypeReference]dtype.TypeTemplate{
			"player": template(dtype.Field{Name: "name", Type: dtype.Primitive("string")}),
		})

		diff, ok := schemadiff.CompareTypes("player", oldSchema, newSchema)
		Expect(ok).To(BeTrue())
		Expect(diff.Changes).To(ContainElement(schemadiff.FieldChange{
			Kind: schemadiff.FieldRemoved, Name: "legacy_id",
			OldField: &dtype.Field{Name: "legacy_id", Type: dtype.Primitive("string")},
		}))
	})

	It("reports a modified field when a shared field's shape changes", func() {
		oldSchema := schema.NewSchema(1, map[schema.TypeReference]dtype.TypeTemplate{
			"player": template(dtype.Field{Name: "score", Type: dtype.Primitive("int")}),
		})
		newSchema := schema.NewSchema(2, map[schema.TypeReference]dtype.TypeTemplate{
			"player": template(dtype.Field{Name: "score", Type: dtype.Primitive("string")}),
		})

		diff, ok := schemadiff.CompareTypes("player", oldSchema, newSchema)
		Expect(ok).To(BeTrue())
		Expect(diff.Changes).To(HaveLen(1))
		Expect(diff.Changes[0].Kind).To(Equal(schemadiff.FieldModified))
		Expect(diff.Changes[0].Name).To(Equal("score"))
	})

	It("reports no changes for two identical schemas", func() {
		mk := func() *schema.Schema {
			return schema.NewSchema(1, map[schema.TypeReference]dtype.TypeTemplate{
				"player": template(dtype.Field{Name: "name", Type: dtype.Primitive("string")}),
			})
		}

		diff, ok := schemadiff.CompareTypes("player", mk(), mk())
		Expect(ok).To(BeTrue())
		Expect(diff.Changes).To(BeEmpty())
	})

	It("reports ok=false when a TypeReference is unbound in either schema", func() {
		empty := schema.NewSchema(1, map[schema.TypeReference]dtype.TypeTemplate{})
		_, ok := schemadiff.CompareTypes("player", empty, empty)
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("CompareSchemas", func() {
	It("flags a TypeReference bound only in the newer schema as a whole-type addition", func() {
		oldSchema := schema.NewSchema(1, map[schema.TypeReference]dtype.TypeTemplate{})
		newSchema := schema.NewSchema(2, map[schema.TypeReference]dtype.TypeTemplate{
			"player": func(*dtype.TypeFamily) *dtype.Type {
				return dtype.Record("player", dtype.Field{Name: "name", Type: dtype.Primitive("string")})
			},
		})

		diffs := schemadiff.CompareSchemas(oldSchema, newSchema)
		Expect(diffs).To(HaveLen(1))
		Expect(diffs[0].Ref).To(Equal(schema.TypeReference("player")))
		Expect(diffs[0].Changes).To(ConsistOf(schemadiff.FieldChange{Kind: schemadiff.FieldAdded}))
	})

	It("flags a TypeReference bound only in the older schema as a whole-type removal", func() {
		oldSchema := schema.NewSchema(1, map[schema.TypeReference]dtype.TypeTemplate{
			"player": func(*dtype.TypeFamily) *dtype.Type {
				return dtype.Record("player", dtype.Field{Name: "name", Type: dtype.Primitive("string")})
			},
		})
		newSchema := schema.NewSchema(2, map[schema.TypeReference]dtype.TypeTemplate{})

		diffs := schemadiff.CompareSchemas(oldSchema, newSchema)
		Expect(diffs).To(HaveLen(1))
		Expect(diffs[0].Changes).To(ConsistOf(schemadiff.FieldChange{Kind: schemadiff.FieldRemoved}))
	})
})
