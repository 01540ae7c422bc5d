// Package diagnostics records what a migration did — which rules fired,
// how long each fix took, and (optionally) what the data looked like before
// and after — without the recording path costing anything when nobody asked
// for it. A nil *Recorder is a valid, fully functional no-op: every method
// on it is a single nil check away from doing nothing.
package diagnostics

import (
	"strings"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/basinfx/datafixer/codec"
	"github.com/basinfx/datafixer/dtype"
	"github.com/basinfx/datafixer/ops"
	"github.com/basinfx/datafixer/rewrite"
	"github.com/basinfx/datafixer/schema"
)

// RuleApplication records one rule invocation: whether it matched, how long
// it took, and — for rename-shaped rules — the old/new field name, so a
// validation error against the current shape can be translated back to the
// field name an older client used (the teacher's
// epoch/flow_operations.go GetFieldMapping, generalized).
type RuleApplication struct {
	RuleName     string
	TypeName     string
	Timestamp    time.Time
	Duration     time.Duration
	Matched      bool
	Description  codec.Option[string]
	FieldMapping codec.Option[[2]string]
}

// FixExecution records one fix's run: its declared version span, every rule
// it applied, and optional before/after snapshots (serialised strings
// supplied by the caller — never the raw carrier).
type FixExecution struct {
	FixName           string
	FromVersion       schema.DataVersion
	ToVersion         schema.DataVersion
	StartTime         time.Time
	Duration          time.Duration
	RuleApplications  []RuleApplication
	BeforeSnapshot    codec.Option[string]
	AfterSnapshot     codec.Option[string]
}

// MigrationReport is the full record of one Update call.
type MigrationReport struct {
	FixExecutions []FixExecution
	TotalDuration time.Duration
	ReleaseTag    codec.Option[string]
}

type fixState struct {
	name          string
	from, to      schema.DataVersion
	start         time.Time
	rules         []RuleApplication
	before, after codec.Option[string]
}

// Recorder accumulates diagnostics for a single migration invocation. It is
// not safe for concurrent use and must not be shared across calls to
// DataFixer.Update — spec.md is explicit that the accumulator is scoped to
// one call.
type Recorder struct {
	start   time.Time
	fixes   []FixExecution
	current *fixState
}

// NewRecorder starts a fresh accumulator. Pass a nil *Recorder anywhere a
// Recorder is accepted to disable recording entirely.
func NewRecorder() *Recorder {
	return &Recorder{start: time.Now()}
}

// StartFix opens a new FixExecution. Any fix already open is discarded
// un-finished — callers are expected to pair every StartFix with a
// FinishFix.
func (r *Recorder) StartFix(name string, from, to schema.DataVersion) {
	if r == nil {
		return
	}
	r.current = &fixState{name: name, from: from, to: to, start: time.Now()}
}

// RecordRuleApplication appends app to the currently open fix. It is a
// no-op if no fix is open or the recorder is nil.
func (r *Recorder) RecordRuleApplication(app RuleApplication) {
	if r == nil || r.current == nil {
		return
	}
	r.current.rules = append(r.current.rules, app)
}

// SetBeforeSnapshot/SetAfterSnapshot attach optional serialized snapshots to
// the currently open fix.
func (r *Recorder) SetBeforeSnapshot(s string) {
	if r == nil || r.current == nil {
		return
	}
	r.current.before = codec.Some(s)
}

func (r *Recorder) SetAfterSnapshot(s string) {
	if r == nil || r.current == nil {
		return
	}
	r.current.after = codec.Some(s)
}

// FinishFix closes the currently open fix, appending it to the report.
func (r *Recorder) FinishFix() {
	if r == nil || r.current == nil {
		return
	}
	c := r.current
	r.fixes = append(r.fixes, FixExecution{
		FixName:          c.name,
		FromVersion:      c.from,
		ToVersion:        c.to,
		StartTime:        c.start,
		Duration:         time.Since(c.start),
		RuleApplications: c.rules,
		BeforeSnapshot:   c.before,
		AfterSnapshot:    c.after,
	})
	r.current = nil
}

// Report renders the accumulated fix executions into a MigrationReport.
// Calling it on a nil Recorder returns the zero report.
func (r *Recorder) Report() MigrationReport {
	if r == nil {
		return MigrationReport{}
	}
	return MigrationReport{
		FixExecutions: r.fixes,
		TotalDuration: time.Since(r.start),
	}
}

// WithReleaseTag stamps a release tag onto an already-built report — kept
// separate from Report() because the tag lives on fixer.Builder, one layer
// above the recorder.
func WithReleaseTag(report MigrationReport, tag string) MigrationReport {
	report.ReleaseTag = codec.Some(tag)
	return report
}

// Track wraps r so every application is recorded against rec under
// typeName, timing the call and capturing whether it matched. A nil rec
// makes Track's wrapper a thin pass-through with negligible overhead.
func Track[T any](r rewrite.Rule[T], typeName string, rec *Recorder) rewrite.Rule[T] {
	return rewrite.Rule[T]{
		ID: r.ID,
		Apply: func(typ *dtype.Type, d ops.Dynamic[T]) (ops.Dynamic[T], bool) {
			start := time.Now()
			next, matched := r.Apply(typ, d)
			rec.RecordRuleApplication(RuleApplication{
				RuleName:  r.ID,
				TypeName:  typeName,
				Timestamp: start,
				Duration:  time.Since(start),
				Matched:   matched,
			})
			return next, matched
		},
	}
}

// TrackRename is Track specialised for a rename-shaped rule, additionally
// recording the old/new field name pair as FieldMapping.
func TrackRename[T any](r rewrite.Rule[T], typeName, oldName, newName string, rec *Recorder) rewrite.Rule[T] {
	return rewrite.Rule[T]{
		ID: r.ID,
		Apply: func(typ *dtype.Type, d ops.Dynamic[T]) (ops.Dynamic[T], bool) {
			start := time.Now()
			next, matched := r.Apply(typ, d)
			rec.RecordRuleApplication(RuleApplication{
				RuleName:     r.ID,
				TypeName:     typeName,
				Timestamp:    start,
				Duration:     time.Since(start),
				Matched:      matched,
				FieldMapping: codec.Some([2]string{oldName, newName}),
			})
			return next, matched
		},
	}
}

// Diff renders a human-readable line diff between two serialized snapshots.
func Diff(before, after string) string {
	return cmp.Diff(strings.Split(before, "\n"), strings.Split(after, "\n"))
}
