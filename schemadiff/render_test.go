package schemadiff_test

import (
	"github.com/getkin/kin-openapi/openapi3"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/basinfx/datafixer/dtype"
	"github.com/basinfx/datafixer/schemadiff"
)

var _ = Describe("RenderOpenAPI", func() {
	It("renders a primitive as its matching OpenAPI scalar type", func() {
		s := schemadiff.RenderOpenAPI(dtype.Primitive("string"))
		Expect(s.Type).To(Equal(&openapi3.Types{"string"}))
	})

	It("renders a record as an object with properties and required fields", func() {
		rec := dtype.Record("player",
			dtype.Field{Name: "name", Type: dtype.Primitive("string")},
			dtype.Field{Name: "nickname", Type: dtype.Optional(dtype.Primitive("string"))},
		)
		s := schemadiff.RenderOpenAPI(rec)

		Expect(s.Type).To(Equal(&openapi3.Types{"object"}))
		Expect(s.Properties).To(HaveKey("name"))
		Expect(s.Properties).To(HaveKey("nickname"))
		Expect(s.Required).To(ConsistOf("name"))
	})

	It("renders a list as an array with an Items schema", func() {
		s := schemadiff.RenderOpenAPI(dtype.List(dtype.Primitive("int")))
		Expect(s.Type).To(Equal(&openapi3.Types{"array"}))
		Expect(s.Items).NotTo(BeNil())
		Expect(s.Items.Value.Type).To(Equal(&openapi3.Types{"integer"}))
	})

	It("renders an optional by unwrapping to its inner type", func() {
		s := schemadiff.RenderOpenAPI(dtype.Optional(dtype.Primitive("bool")))
		Expect(s.Type).To(Equal(&openapi3.Types{"boolean"}))
	})

	It("renders a sum as oneOf over its cases", func() {
		sum := dtype.Sum("shape",
			dtype.Case{Name: "circle", Type: dtype.Primitive("string")},
			dtype.Case{Name: "square", Type: dtype.Primitive("int")},
		)
		s := schemadiff.RenderOpenAPI(sum)
		Expect(s.OneOf).To(HaveLen(2))
	})

	It("resolves a self-referential Ref through a TypeFamily without recursing forever", func() {
		family := dtype.NewTypeFamily(func(f *dtype.TypeFamily) *dtype.Type {
			return dtype.Record("node",
				dtype.Field{Name: "value", Type: dtype.Primitive("int")},
				dtype.Field{Name: "next", Type: dtype.Optional(f.Ref(0))},
			)
		})
		s := schemadiff.RenderOpenAPI(family.Type(0))
		Expect(s.Properties).To(HaveKey("next"))
	})
})
