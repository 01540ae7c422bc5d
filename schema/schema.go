// Package schema holds the versioned type bindings a DataFixer migrates
// between: a TypeReference names a shape, a DataVersion orders schema
// revisions, and a SchemaRegistry resolves any version to the schema that
// was current at that point.
package schema

import (
	"fmt"
	"sort"

	"github.com/basinfx/datafixer/dtype"
)

// TypeReference is an interned, case-sensitive identifier for a structural
// shape ("user", "order.line_item", ...). Unlike the source language this
// targets no particular runtime class — a TypeReference is just a name a
// Schema's bindings map is keyed by.
type TypeReference string

// DataVersion is a plain non-negative integer with the natural order. This
// is a deliberate departure from the teacher's multi-format Version
// (date/semver/head strings): the data being migrated here carries no
// release calendar of its own, only a monotonically increasing revision
// number assigned by whoever registers schemas.
type DataVersion int

// Before reports whether v is strictly less than other.
func (v DataVersion) Before(other DataVersion) bool { return v < other }

// Schema is the set of type bindings in effect as of one DataVersion.
type Schema struct {
	Version  DataVersion
	bindings map[TypeReference]dtype.TypeTemplate
}

// NewSchema builds a Schema from its version and bindings.
func NewSchema(version DataVersion, bindings map[TypeReference]dtype.TypeTemplate) *Schema {
	copied := make(map[TypeReference]dtype.TypeTemplate, len(bindings))
	for k, v := range bindings {
		copied[k] = v
	}
	return &Schema{Version: version, bindings: copied}
}

// Resolve instantiates the Type bound to ref in this schema, or reports
// false if ref has no binding here.
func (s *Schema) Resolve(ref TypeReference) (*dtype.Type, bool) {
	tmpl, ok := s.bindings[ref]
	if !ok {
		return nil, false
	}
	return dtype.NewTypeFamily(tmpl).Type(0), true
}

// TypeReferences lists every type this schema binds, in stable sorted
// order.
func (s *Schema) TypeReferences() []TypeReference {
	out := make([]TypeReference, 0, len(s.bindings))
	for k := range s.bindings {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// SchemaRegistry holds schemas ordered by version and resolves any
// requested version to the schema that was current at that point — the
// latest published schema whose Version is <= the request. The first
// Lookup seals the registry; Publish calls after that point are a
// programmer error and panic.
type SchemaRegistry struct {
	schemas []*Schema // kept sorted ascending by Version
	sealed  bool
}

// NewSchemaRegistry builds an empty, unsealed registry.
func NewSchemaRegistry() *SchemaRegistry {
	return &SchemaRegistry{}
}

// Publish registers a schema. Publishing the same version twice, or
// publishing after the registry has been sealed by a Lookup, panics.
func (r *SchemaRegistry) Publish(s *Schema) {
	if r.sealed {
		panic(fmt.Sprintf("schema: cannot publish version %d after the registry has been looked up", s.Version))
	}
	for _, existing := range r.schemas {
		if existing.Version == s.Version {
			panic(fmt.Sprintf("schema: version %d already published", s.Version))
		}
	}
	r.schemas = append(r.schemas, s)
	sort.Slice(r.schemas, func(i, j int) bool { return r.schemas[i].Version < r.schemas[j].Version })
}

// Lookup returns the latest schema whose Version is <= v, sealing the
// registry against further Publish calls. It panics if no schema has been
// published at or before v.
func (r *SchemaRegistry) Lookup(v DataVersion) *Schema {
	r.sealed = true
	var found *Schema
	for _, s := range r.schemas {
		if s.Version > v {
			break
		}
		found = s
	}
	if found == nil {
		panic(fmt.Sprintf("schema: no schema published at or before version %d", v))
	}
	return found
}

// Versions lists every published version in ascending order.
func (r *SchemaRegistry) Versions() []DataVersion {
	out := make([]DataVersion, len(r.schemas))
	for i, s := range r.schemas {
		out[i] = s.Version
	}
	return out
}

// LatestVersion is the highest published version.
func (r *SchemaRegistry) LatestVersion() DataVersion {
	if len(r.schemas) == 0 {
		panic("schema: registry has no published schemas")
	}
	return r.schemas[len(r.schemas)-1].Version
}
