// Package schemadiff renders a dtype.Type as an OpenAPI 3 Schema and diffs
// two renderings field by field, so a schema.SchemaRegistry's published
// versions can be inspected and compared without running any migration.
package schemadiff

import (
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/basinfx/datafixer/dtype"
)

// RenderOpenAPI walks a structural Type and produces the equivalent
// openapi3.Schema. Records become "object" schemas with Properties, sums
// become oneOf, lists become "array" with Items, optionals drop the
// required marker on whichever field holds them and otherwise render as
// their inner type, and primitives map onto the usual OpenAPI scalar
// types by name.
func RenderOpenAPI(t *dtype.Type) *openapi3.Schema {
	return renderType(t, map[*dtype.Type]*openapi3.Schema{})
}

func renderType(t *dtype.Type, seen map[*dtype.Type]*openapi3.Schema) *openapi3.Schema {
	t = t.Resolve()
	if s, ok := seen[t]; ok {
		return s
	}

	switch t.Kind {
	case dtype.KindPrimitive:
		return renderPrimitive(t.Name)

	case dtype.KindOptional:
		return renderType(t.Elem(), seen)

	case dtype.KindList:
		schema := &openapi3.Schema{Type: &openapi3.Types{"array"}}
		seen[t] = schema
		schema.Items = openapi3.NewSchemaRef("", renderType(t.Elem(), seen))
		return schema

	case dtype.KindRecord:
		schema := &openapi3.Schema{
			Type:       &openapi3.Types{"object"},
			Properties: make(openapi3.Schemas),
		}
		seen[t] = schema
		required := make([]string, 0, len(t.Fields()))
		for _, f := range t.Fields() {
			schema.Properties[f.Name] = openapi3.NewSchemaRef("", renderType(f.Type, seen))
			if f.Type.Resolve().Kind != dtype.KindOptional {
				required = append(required, f.Name)
			}
		}
		if len(required) > 0 {
			schema.Required = required
		}
		return schema

	case dtype.KindSum:
		schema := &openapi3.Schema{}
		seen[t] = schema
		refs := make([]*openapi3.SchemaRef, 0, len(t.Cases()))
		for _, c := range t.Cases() {
			refs = append(refs, openapi3.NewSchemaRef("", renderType(c.Type, seen)))
		}
		schema.OneOf = refs
		return schema

	default:
		panic(fmt.Sprintf("schemadiff: cannot render type of kind %v", t.Kind))
	}
}

func renderPrimitive(name string) *openapi3.Schema {
	switch name {
	case "string":
		return &openapi3.Schema{Type: &openapi3.Types{"string"}}
	case "bool", "boolean":
		return &openapi3.Schema{Type: &openapi3.Types{"boolean"}}
	case "int", "int8", "int16", "int32", "int64", "byte", "short", "long":
		return &openapi3.Schema{Type: &openapi3.Types{"integer"}}
	case "float", "float32", "float64", "double", "number":
		return &openapi3.Schema{Type: &openapi3.Types{"number"}}
	default:
		return &openapi3.Schema{Type: &openapi3.Types{"string"}, Format: name}
	}
}
