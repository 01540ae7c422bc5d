package fixer

import (
	"fmt"

	"github.com/Masterminds/semver/v3"

	"github.com/basinfx/datafixer/schema"
)

// Config holds the options a Builder assembles before Build applies
// defaults and freezes them into a DataFixer. Its fields are unexported and
// are set only through the Builder's With* methods — mirrors the teacher's
// split between its builder and the VersionConfig it accumulates into.
type Config struct {
	currentVersion schema.DataVersion
	defaultContext Context
	hasDefaultCtx  bool
	releaseTag     *semver.Version
}

// Builder assembles a DataFixer. Construct one with NewBuilder, chain
// With*/Add* calls, and finish with Build (or MustBuild).
type Builder[T any] struct {
	config Config
	fixes  map[schema.TypeReference][]registeredFix[T]
	registry *schema.SchemaRegistry
	nextIndex int
}

// NewBuilder starts a Builder for a fixer whose "current" (head) version is
// currentVersion. Fixes registered against this builder migrate data up to
// that version.
func NewBuilder[T any](currentVersion schema.DataVersion) *Builder[T] {
	return &Builder[T]{
		config:   Config{currentVersion: currentVersion},
		fixes:    make(map[schema.TypeReference][]registeredFix[T]),
		registry: schema.NewSchemaRegistry(),
	}
}

// WithDefaultContext installs a Context used by Update calls that omit
// one.
func (b *Builder[T]) WithDefaultContext(ctx Context) *Builder[T] {
	b.config.defaultContext = ctx
	b.config.hasDefaultCtx = true
	return b
}

// WithReleaseTag stamps every MigrationReport produced through
// DataFixer.Report with a release identifier, parsed and validated as a
// semantic version so a malformed tag is caught at startup rather than
// surfacing as an opaque string deep in a report. It does not replace
// schema.DataVersion, which stays the plain integer the data itself is
// versioned by.
func (b *Builder[T]) WithReleaseTag(tag string) *Builder[T] {
	v, err := semver.NewVersion(tag)
	if err != nil {
		panic(fmt.Sprintf("fixer: invalid release tag %q: %v", tag, err))
	}
	b.config.releaseTag = v
	return b
}

// AddFix registers one DataFix against typeRef. Fixes may be added in any
// order; the driver sorts by (From, registration index) at Update time.
// Panics if fix.From is not strictly less than fix.To.
func (b *Builder[T]) AddFix(typeRef schema.TypeReference, fix DataFix[T]) *Builder[T] {
	if !(fix.From < fix.To) {
		panic(fmt.Sprintf("fixer: fix %q has from=%d, to=%d; from must be strictly less than to", fix.Name, fix.From, fix.To))
	}
	fix.Type = typeRef
	b.fixes[typeRef] = append(b.fixes[typeRef], registeredFix[T]{fix: fix, index: b.nextIndex})
	b.nextIndex++
	return b
}

// AddSchema publishes a schema to the fixer's registry.
func (b *Builder[T]) AddSchema(s *schema.Schema) *Builder[T] {
	b.registry.Publish(s)
	return b
}

// GetSchema looks up a previously published schema by version, for fix
// authors that need to reference one while constructing a fix body. It has
// the same "seals the registry" side effect as schema.SchemaRegistry.Lookup.
func (b *Builder[T]) GetSchema(v schema.DataVersion) *schema.Schema {
	return b.registry.Lookup(v)
}

// Bootstrap is the side-effect-free contract for a startup-time
// registration object: it declares which schemas and fixes exist without
// touching anything outside the Registrar it is handed.
type Bootstrap[T any] interface {
	RegisterSchemas(registry *schema.SchemaRegistry)
	RegisterFixes(registrar *Builder[T])
}

// Install runs a Bootstrap's two registration methods against this
// builder's registry and fix table.
func (b *Builder[T]) Install(bs Bootstrap[T]) *Builder[T] {
	bs.RegisterSchemas(b.registry)
	bs.RegisterFixes(b)
	return b
}

func (b *Builder[T]) applyDefaults() {
	if !b.config.hasDefaultCtx {
		b.config.defaultContext = Context{}
	}
}

// Build validates and freezes the accumulated fixes and schemas into a
// DataFixer. Build never mutates the builder's exported behaviour — callers
// may keep chaining and calling Build again for another independent
// DataFixer, though in practice a builder is used once.
func (b *Builder[T]) Build() (*DataFixer[T], error) {
	b.applyDefaults()
	fixesCopy := make(map[schema.TypeReference][]registeredFix[T], len(b.fixes))
	for k, v := range b.fixes {
		cp := make([]registeredFix[T], len(v))
		copy(cp, v)
		fixesCopy[k] = cp
	}
	return &DataFixer[T]{
		current:    b.config.currentVersion,
		fixes:      fixesCopy,
		registry:   b.registry,
		defaultCtx: b.config.defaultContext,
		releaseTag: b.config.releaseTag,
	}, nil
}

// MustBuild is Build, panicking instead of returning an error. Build
// currently never fails, but MustBuild exists for symmetry with the
// teacher's panic-wrapping convenience family and to absorb a future
// validation rule without a call-site change.
func (b *Builder[T]) MustBuild() *DataFixer[T] {
	f, err := b.Build()
	if err != nil {
		panic(err)
	}
	return f
}
