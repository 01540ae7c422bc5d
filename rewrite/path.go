package rewrite

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/basinfx/datafixer/dtype"
	"github.com/basinfx/datafixer/ops"
	"github.com/basinfx/datafixer/optics"
)

// The path cache (cacheFor below) memoises parsed dot-paths keyed by their
// raw string. Per spec.md §5, the cache is strictly monotone: entries are
// only ever inserted, never evicted, so "parsing the same path twice yields
// reference-equal finders" holds for the process lifetime. parseGroup
// collapses concurrent first-parses of a brand-new path into one parse.
var parseGroup singleflight.Group

// cacheFor returns the process-wide cache for carrier type T, creating
// it on first use. Finder[T] isn't comparable across T, so each carrier
// type gets its own sync.Map, looked up by a type-erased key.
type cacheKey struct{ t any }

var typedCaches sync.Map // cacheKey -> *sync.Map

func cacheFor[T any]() *sync.Map {
	var zero T
	key := cacheKey{t: zero}
	if c, ok := typedCaches.Load(key); ok {
		return c.(*sync.Map)
	}
	c, _ := typedCaches.LoadOrStore(key, &sync.Map{})
	return c.(*sync.Map)
}

// ParsePath splits a dot-notation path ("a.b.3.c") into a Finder, memoising
// the result so repeated parses of the same string return the identical
// Finder value (by way of a pointer-stable cache entry).
func ParsePath[T any](path string) optics.Finder[T] {
	cache := cacheFor[T]()
	if v, ok := cache.Load(path); ok {
		return v.(optics.Finder[T])
	}
	v, _, _ := parseGroup.Do("T:"+path, func() (any, error) {
		if cached, ok := cache.Load(path); ok {
			return cached, nil
		}
		f := parsePathUncached[T](path)
		cache.Store(path, f)
		return f, nil
	})
	return v.(optics.Finder[T])
}

func parsePathUncached[T any](path string) optics.Finder[T] {
	if path == "" {
		return optics.Identity[T]()
	}
	parts := strings.Split(path, ".")
	for _, p := range parts {
		if p == "" {
			panic(fmt.Sprintf("rewrite: path %q has an empty segment: leading, trailing, and doubled dots are not allowed", path))
		}
	}
	f := segmentFinder[T](parts[0])
	for _, p := range parts[1:] {
		f = f.Then(segmentFinder[T](p))
	}
	return f
}

func segmentFinder[T any](segment string) optics.Finder[T] {
	if isIndexSegment(segment) {
		i, _ := strconv.Atoi(segment)
		return optics.Index[T](i)
	}
	return optics.Field[T](segment)
}

// isIndexSegment reports whether segment is an index per spec: entirely
// ASCII digits, base 10, non-negative. strconv.Atoi alone would also accept
// a leading sign ("-5", "+5"), which must instead parse as a field name.
func isIndexSegment(segment string) bool {
	if segment == "" {
		return false
	}
	for _, r := range segment {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// GetAtPath locates the value addressed by a dotted path.
func GetAtPath[T any](root ops.Dynamic[T], path string) (ops.Dynamic[T], bool) {
	return ParsePath[T](path).Get(root)
}

// SetAtPath performs copy-on-write through the path, auto-creating missing
// intermediate maps.
func SetAtPath[T any](root ops.Dynamic[T], path string, newChild ops.Dynamic[T]) ops.Dynamic[T] {
	return ParsePath[T](path).Set(root, newChild)
}

// RemoveAtPath removes the value addressed by path, a no-op if any segment
// is absent.
func RemoveAtPath[T any](root ops.Dynamic[T], path string) ops.Dynamic[T] {
	idx := strings.LastIndex(path, ".")
	if idx < 0 {
		return root.Remove(path)
	}
	parent, field := path[:idx], path[idx+1:]
	parentFinder := ParsePath[T](parent)
	parentVal, ok := parentFinder.Get(root)
	if !ok {
		return root
	}
	return parentFinder.Set(root, parentVal.Remove(field))
}

// TransformFieldAt applies f to the value at path; a no-op if absent.
func TransformFieldAt[T any](path string, f func(ops.Dynamic[T]) ops.Dynamic[T]) Rule[T] {
	return Rule[T]{
		ID: "transformFieldAt(" + path + ")",
		Apply: func(_ *dtype.Type, d ops.Dynamic[T]) (ops.Dynamic[T], bool) {
			v, ok := GetAtPath(d, path)
			if !ok {
				return d, true
			}
			return SetAtPath(d, path, f(v)), true
		},
	}
}

// RenameFieldAt moves the value at oldPath to newPath.
func RenameFieldAt[T any](oldPath, newPath string) Rule[T] {
	return Rule[T]{
		ID: "renameFieldAt(" + oldPath + "->" + newPath + ")",
		Apply: func(_ *dtype.Type, d ops.Dynamic[T]) (ops.Dynamic[T], bool) {
			v, ok := GetAtPath(d, oldPath)
			if !ok {
				return d, true
			}
			return SetAtPath(RemoveAtPath(d, oldPath), newPath, v), true
		},
	}
}

// RemoveFieldAt removes the value at path.
func RemoveFieldAt[T any](path string) Rule[T] {
	return Rule[T]{
		ID: "removeFieldAt(" + path + ")",
		Apply: func(_ *dtype.Type, d ops.Dynamic[T]) (ops.Dynamic[T], bool) {
			return RemoveAtPath(d, path), true
		},
	}
}

// AddFieldAt adds a default value at path only if absent.
func AddFieldAt[T any](path string, defaultValue func(ops.Dynamic[T]) ops.Dynamic[T]) Rule[T] {
	return Rule[T]{
		ID: "addFieldAt(" + path + ")",
		Apply: func(_ *dtype.Type, d ops.Dynamic[T]) (ops.Dynamic[T], bool) {
			if _, ok := GetAtPath(d, path); ok {
				return d, true
			}
			return SetAtPath(d, path, defaultValue(d)), true
		},
	}
}

// MoveField is remove-then-set; a no-op if src is absent.
func MoveField[T any](src, dst string) Rule[T] {
	return RenameFieldAt[T](src, dst)
}

// CopyField is set-without-remove; a no-op if src is absent.
func CopyField[T any](src, dst string) Rule[T] {
	return Rule[T]{
		ID: "copyField(" + src + "->" + dst + ")",
		Apply: func(_ *dtype.Type, d ops.Dynamic[T]) (ops.Dynamic[T], bool) {
			v, ok := GetAtPath(d, src)
			if !ok {
				return d, true
			}
			return SetAtPath(d, dst, v), true
		},
	}
}

// GroupFields removes each of srcs from root and places them as a new map
// under target.
func GroupFields[T any](target string, srcs ...string) Rule[T] {
	return Rule[T]{
		ID: "groupFields(" + target + ")",
		Apply: func(_ *dtype.Type, d ops.Dynamic[T]) (ops.Dynamic[T], bool) {
			group := d.EmptyMap()
			out := d
			for _, src := range srcs {
				v := out.Get(src)
				if !v.IsSuccess() {
					continue
				}
				group = group.Set(src, v.Value())
				out = out.Remove(src)
			}
			return out.Set(target, group), true
		},
	}
}

// FlattenField is the inverse of GroupFields: every entry of root[name] is
// moved back to root and root[name] is removed.
func FlattenField[T any](name string) Rule[T] {
	return Rule[T]{
		ID: "flattenField(" + name + ")",
		Apply: func(_ *dtype.Type, d ops.Dynamic[T]) (ops.Dynamic[T], bool) {
			group := d.Get(name)
			if !group.IsSuccess() {
				return d, true
			}
			entries := group.Value().AsMapStream()
			if !entries.IsSuccess() {
				return d, true
			}
			out := d.Remove(name)
			for _, e := range entries.Value() {
				key := e.Key.AsString()
				if !key.IsSuccess() {
					continue
				}
				out = out.Set(key.Value(), e.Value)
			}
			return out, true
		},
	}
}

// UpdateAt is a generic update at a Finder-addressed location: f is applied
// to the located child and written back, a no-op if the location is
// missing.
func UpdateAt[T any](finder optics.Finder[T], f func(ops.Dynamic[T]) ops.Dynamic[T]) Rule[T] {
	return Rule[T]{
		ID: "updateAt(" + finder.ID + ")",
		Apply: func(_ *dtype.Type, d ops.Dynamic[T]) (ops.Dynamic[T], bool) {
			v, ok := finder.Get(d)
			if !ok {
				return d, true
			}
			return finder.Set(d, f(v)), true
		},
	}
}
