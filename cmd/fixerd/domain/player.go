// Package domain is the demo bootstrap fixerd serves out of the box: a
// small "player" record that grew a nickname field and dropped a legacy
// identifier across three schema revisions. It exists to give the daemon
// something real to migrate and introspect; a deployment wires its own
// Bootstrap in place of this one.
package domain

import (
	"strings"

	"github.com/basinfx/datafixer/backend/jsonops"
	"github.com/basinfx/datafixer/dtype"
	"github.com/basinfx/datafixer/fixer"
	"github.com/basinfx/datafixer/ops"
	"github.com/basinfx/datafixer/schema"
)

// Player is the TypeReference this bootstrap publishes fixes and schemas
// under.
const Player schema.TypeReference = "player"

func playerV1() dtype.TypeTemplate {
	return func(*dtype.TypeFamily) *dtype.Type {
		return dtype.Record("player",
			dtype.Field{Name: "id", Type: dtype.Primitive("string")},
			dtype.Field{Name: "full_name", Type: dtype.Primitive("string")},
		)
	}
}

func playerV2() dtype.TypeTemplate {
	return func(*dtype.TypeFamily) *dtype.Type {
		return dtype.Record("player",
			dtype.Field{Name: "id", Type: dtype.Primitive("string")},
			dtype.Field{Name: "full_name", Type: dtype.Primitive("string")},
			dtype.Field{Name: "nickname", Type: dtype.Optional(dtype.Primitive("string"))},
		)
	}
}

func playerV3() dtype.TypeTemplate {
	return func(*dtype.TypeFamily) *dtype.Type {
		return dtype.Record("player",
			dtype.Field{Name: "full_name", Type: dtype.Primitive("string")},
			dtype.Field{Name: "nickname", Type: dtype.Optional(dtype.Primitive("string"))},
		)
	}
}

// Bootstrap registers the three player schema revisions and the two fixes
// that carry data between them, against the jsonops.Value carrier fixerd
// serves over HTTP.
type Bootstrap struct{}

func (Bootstrap) RegisterSchemas(registry *schema.SchemaRegistry) {
	registry.Publish(schema.NewSchema(1, map[schema.TypeReference]dtype.TypeTemplate{Player: playerV1()}))
	registry.Publish(schema.NewSchema(2, map[schema.TypeReference]dtype.TypeTemplate{Player: playerV2()}))
	registry.Publish(schema.NewSchema(3, map[schema.TypeReference]dtype.TypeTemplate{Player: playerV3()}))
}

func (Bootstrap) RegisterFixes(b *fixer.Builder[jsonops.Value]) {
	b.AddFix(Player, fixer.DataFix[jsonops.Value]{
		Name: "derive nickname from full name",
		From: 1, To: 2,
		Apply: func(_ schema.TypeReference, d ops.Dynamic[jsonops.Value], ctx fixer.Context) ops.Dynamic[jsonops.Value] {
			if d.Has("nickname") {
				return d
			}
			full := d.Get("full_name").Value().AsString().Value()
			nickname := strings.Fields(full)
			if len(nickname) == 0 {
				return d
			}
			if ctx.Info != nil {
				ctx.Info("derived nickname %q for player %q", nickname[0], d.Get("id").Value().AsString().Value())
			}
			return ops.NewDynamic(d.Ops, d.Ops.Set(d.Value, "nickname", d.Ops.CreateString(nickname[0])))
		},
	})

	b.AddFix(Player, fixer.DataFix[jsonops.Value]{
		Name: "drop legacy id field",
		From: 2, To: 3,
		Apply: func(_ schema.TypeReference, d ops.Dynamic[jsonops.Value], ctx fixer.Context) ops.Dynamic[jsonops.Value] {
			if !d.Has("id") {
				return d
			}
			if ctx.Warn != nil {
				ctx.Warn("dropping legacy id field from player payload")
			}
			return ops.NewDynamic(d.Ops, d.Ops.Remove(d.Value, "id"))
		},
	})
}
