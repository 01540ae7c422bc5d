// Package fixer drives the migration of one Dynamic tree across schema
// versions: it collects the fixes registered for a TypeReference whose span
// falls inside the requested interval, orders them deterministically, and
// folds them over the carrier one at a time.
package fixer

import (
	"fmt"
	"sort"

	"github.com/Masterminds/semver/v3"

	"github.com/basinfx/datafixer/diagnostics"
	"github.com/basinfx/datafixer/ops"
	"github.com/basinfx/datafixer/schema"
)

// Context is threaded through every DataFix.Apply call. It carries logging
// sinks and an optional diagnostic recorder; both fields are safe to leave
// zero.
type Context struct {
	Info func(format string, args ...any)
	Warn func(format string, args ...any)

	Recorder *diagnostics.Recorder
}

func (c Context) infof(format string, args ...any) {
	if c.Info != nil {
		c.Info(format, args...)
	}
}

func (c Context) warnf(format string, args ...any) {
	if c.Warn != nil {
		c.Warn(format, args...)
	}
}

// DataFix is a named transformation declaring the version span it covers
// and producing a transformed Dynamic for one TypeReference. A fix is
// identified only by its (Name, From, To) triple for reporting purposes;
// its semantics come entirely from Apply. From must be strictly less than
// To — Builder.AddFix panics otherwise.
type DataFix[T any] struct {
	Name string
	From schema.DataVersion
	To   schema.DataVersion
	Type schema.TypeReference

	Apply func(typeRef schema.TypeReference, d ops.Dynamic[T], ctx Context) ops.Dynamic[T]
}

type registeredFix[T any] struct {
	fix   DataFix[T]
	index int
}

// DataFixer holds an immutable table of fixes and schemas, keyed by the
// current version of whoever built it. Construct one with NewBuilder.
type DataFixer[T any] struct {
	current    schema.DataVersion
	fixes      map[schema.TypeReference][]registeredFix[T]
	registry   *schema.SchemaRegistry
	defaultCtx Context
	releaseTag *semver.Version
}

// CurrentVersion is the version this fixer was built against.
func (f *DataFixer[T]) CurrentVersion() schema.DataVersion { return f.current }

// Schemas returns the read-only schema registry published with this fixer.
func (f *DataFixer[T]) Schemas() *schema.SchemaRegistry { return f.registry }

// Report renders rec's accumulated report, stamping it with this fixer's
// release tag when Builder.WithReleaseTag was used. Calling it with a nil
// rec returns the zero report, same as diagnostics.Recorder.Report itself.
func (f *DataFixer[T]) Report(rec *diagnostics.Recorder) diagnostics.MigrationReport {
	report := rec.Report()
	if f.releaseTag != nil {
		report = diagnostics.WithReleaseTag(report, f.releaseTag.String())
	}
	return report
}

// Update migrates d from vFrom to vTo for the given type reference, folding
// every applicable fix in order. It panics if vFrom > vTo — downgrades are
// not supported. When no Context is supplied, the builder's default
// context (the zero Context if none was configured) is used.
func (f *DataFixer[T]) Update(typeRef schema.TypeReference, d ops.Dynamic[T], vFrom, vTo schema.DataVersion, ctx ...Context) ops.Dynamic[T] {
	c := f.defaultCtx
	if len(ctx) > 0 {
		c = ctx[0]
	}
	return f.updateWithContext(typeRef, d, vFrom, vTo, c)
}

func (f *DataFixer[T]) updateWithContext(typeRef schema.TypeReference, d ops.Dynamic[T], vFrom, vTo schema.DataVersion, ctx Context) ops.Dynamic[T] {
	if vFrom > vTo {
		panic(fmt.Sprintf("fixer: cannot migrate %q from version %d down to version %d: downgrade is not supported", typeRef, vFrom, vTo))
	}
	if vFrom == vTo {
		return d
	}

	applicable := f.applicableFixes(typeRef, vFrom, vTo)
	current := d
	for _, rf := range applicable {
		fix := rf.fix
		ctx.infof("applying fix %q (%d -> %d) to %q", fix.Name, fix.From, fix.To, typeRef)
		ctx.Recorder.StartFix(fix.Name, fix.From, fix.To)
		current = fix.Apply(typeRef, current, ctx)
		ctx.Recorder.FinishFix()
	}
	return current
}

// applicableFixes collects and orders the fixes whose span lies inside
// [vFrom, vTo], per spec: ascending From, ties broken by registration
// index.
func (f *DataFixer[T]) applicableFixes(typeRef schema.TypeReference, vFrom, vTo schema.DataVersion) []registeredFix[T] {
	all := f.fixes[typeRef]
	out := make([]registeredFix[T], 0, len(all))
	for _, rf := range all {
		if vFrom <= rf.fix.From && rf.fix.To <= vTo {
			out = append(out, rf)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].fix.From != out[j].fix.From {
			return out[i].fix.From < out[j].fix.From
		}
		return out[i].index < out[j].index
	})
	return out
}
