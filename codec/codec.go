// Package codec implements bidirectional carrier<->value mappings: Encoder,
// Decoder, Codec, the map-restricted MapCodec, and the RecordCodecBuilder
// family that assembles a Codec for a Go struct out of named MapCodec
// fields. Every operation threads result.Result instead of a bare error, so
// partial decodes compose the same way Dynamic field access does.
package codec

import (
	"fmt"

	"github.com/basinfx/datafixer/ops"
	"github.com/basinfx/datafixer/result"
)

// Option is the explicit Some/None wrapper optionalFieldOf(name) produces,
// kept distinct from Go's zero value so "field present but empty" and
// "field absent" never collapse into each other.
type Option[A any] struct {
	value   A
	present bool
}

func Some[A any](a A) Option[A] { return Option[A]{value: a, present: true} }
func None[A any]() Option[A]    { var zero Option[A]; return zero }

func (o Option[A]) IsPresent() bool { return o.present }
func (o Option[A]) Get() (A, bool) { return o.value, o.present }
func (o Option[A]) OrElse(def A) A {
	if o.present {
		return o.value
	}
	return def
}

// DecodeResult pairs a decoded value with whatever of the input carrier was
// not consumed, so pair codecs can chain decode calls.
type DecodeResult[T, A any] struct {
	Value     A
	Remainder T
}

// Encoder turns an A into a T, merging the result into prefix so that
// sequential encoders (as used inside Pair and record codecs) accumulate
// into one carrier value instead of overwriting each other.
type Encoder[T, A any] struct {
	ID     string
	Encode func(a A, o ops.Ops[T], prefix T) result.Result[T]
}

// Decoder reads an A out of input, returning whatever part of input it did
// not need as Remainder.
type Decoder[T, A any] struct {
	ID     string
	Decode func(o ops.Ops[T], input T) result.Result[DecodeResult[T, A]]
}

// Codec is an Encoder/Decoder pair for the same type.
type Codec[T, A any] struct {
	Encoder[T, A]
	Decoder[T, A]
}

// EncodeStart encodes a against an empty prefix.
func (c Codec[T, A]) EncodeStart(o ops.Ops[T], a A) result.Result[T] {
	return c.Encode(a, o, o.Empty())
}

// Parse decodes input and discards the remainder.
func (c Codec[T, A]) Parse(o ops.Ops[T], input T) result.Result[A] {
	return result.Map(c.Decode(o, input), func(r DecodeResult[T, A]) A { return r.Value })
}

// MapCodec is the map-restricted form of Codec: it reads/writes named
// entries of a map-shaped carrier rather than arbitrary values.
type MapCodec[T, A any] struct {
	ID string
	// Encode merges a's fields into mapValue (which must already be
	// map-shaped) and returns the updated map.
	Encode func(a A, o ops.Ops[T], mapValue T) result.Result[T]
	Decode func(o ops.Ops[T], mapValue T) result.Result[A]
}

// ToCodec widens a MapCodec to a full Codec operating on map-shaped
// carriers. The remainder is always the same map — MapCodec reads by name,
// it never consumes.
func (mc MapCodec[T, A]) ToCodec() Codec[T, A] {
	return Codec[T, A]{
		Encoder: Encoder[T, A]{ID: mc.ID, Encode: mc.Encode},
		Decoder: Decoder[T, A]{ID: mc.ID, Decode: func(o ops.Ops[T], input T) result.Result[DecodeResult[T, A]] {
			return result.Map(mc.Decode(o, input), func(a A) DecodeResult[T, A] {
				return DecodeResult[T, A]{Value: a, Remainder: input}
			})
		}},
	}
}

// FieldOf promotes inner to a MapCodec that reads/writes a single required
// named field.
func FieldOf[T, A any](name string, inner Codec[T, A]) MapCodec[T, A] {
	return MapCodec[T, A]{
		ID: name,
		Encode: func(a A, o ops.Ops[T], mapValue T) result.Result[T] {
			return result.Map(inner.EncodeStart(o, a), func(fv T) T {
				return o.Set(mapValue, name, fv)
			})
		},
		Decode: func(o ops.Ops[T], mapValue T) result.Result[A] {
			child, ok := o.Get(mapValue, name)
			if !ok {
				return result.Error[A]("Missing field '" + name + "'")
			}
			return inner.Parse(o, child)
		},
	}
}

// OptionalFieldOf reads name if present, wrapping the result in Option so
// "absent" and "present with zero value" stay distinguishable.
func OptionalFieldOf[T, A any](name string, inner Codec[T, A]) MapCodec[T, Option[A]] {
	return MapCodec[T, Option[A]]{
		ID: name,
		Encode: func(opt Option[A], o ops.Ops[T], mapValue T) result.Result[T] {
			a, present := opt.Get()
			if !present {
				return result.Success(mapValue)
			}
			return result.Map(inner.EncodeStart(o, a), func(fv T) T {
				return o.Set(mapValue, name, fv)
			})
		},
		Decode: func(o ops.Ops[T], mapValue T) result.Result[Option[A]] {
			if !o.Has(mapValue, name) {
				return result.Success(None[A]())
			}
			child, _ := o.Get(mapValue, name)
			return result.Map(inner.Parse(o, child), Some[A])
		},
	}
}

// OptionalFieldOfDefault reads name if present, materialising def when
// absent instead of wrapping in Option.
func OptionalFieldOfDefault[T, A any](name string, inner Codec[T, A], def A) MapCodec[T, A] {
	return MapCodec[T, A]{
		ID: name,
		Encode: func(a A, o ops.Ops[T], mapValue T) result.Result[T] {
			return result.Map(inner.EncodeStart(o, a), func(fv T) T {
				return o.Set(mapValue, name, fv)
			})
		},
		Decode: func(o ops.Ops[T], mapValue T) result.Result[A] {
			child, ok := o.Get(mapValue, name)
			if !ok {
				return result.Success(def)
			}
			return inner.Parse(o, child)
		},
	}
}

// Xmap builds a Codec[T,B] from a Codec[T,A] via a total bijection.
func Xmap[T, A, B any](c Codec[T, A], decode func(A) B, encode func(B) A) Codec[T, B] {
	return Codec[T, B]{
		Encoder: Encoder[T, B]{ID: c.Encoder.ID, Encode: func(b B, o ops.Ops[T], prefix T) result.Result[T] {
			return c.Encoder.Encode(encode(b), o, prefix)
		}},
		Decoder: Decoder[T, B]{ID: c.Decoder.ID, Decode: func(o ops.Ops[T], input T) result.Result[DecodeResult[T, B]] {
			return result.Map(c.Decoder.Decode(o, input), func(r DecodeResult[T, A]) DecodeResult[T, B] {
				return DecodeResult[T, B]{Value: decode(r.Value), Remainder: r.Remainder}
			})
		}},
	}
}

// FlatXmap is Xmap where both directions may fail.
func FlatXmap[T, A, B any](c Codec[T, A], decode func(A) result.Result[B], encode func(B) result.Result[A]) Codec[T, B] {
	return Codec[T, B]{
		Encoder: Encoder[T, B]{ID: c.Encoder.ID, Encode: func(b B, o ops.Ops[T], prefix T) result.Result[T] {
			return result.FlatMap(encode(b), func(a A) result.Result[T] { return c.Encoder.Encode(a, o, prefix) })
		}},
		Decoder: Decoder[T, B]{ID: c.Decoder.ID, Decode: func(o ops.Ops[T], input T) result.Result[DecodeResult[T, B]] {
			return result.FlatMap(c.Decoder.Decode(o, input), func(r DecodeResult[T, A]) result.Result[DecodeResult[T, B]] {
				return result.Map(decode(r.Value), func(b B) DecodeResult[T, B] {
					return DecodeResult[T, B]{Value: b, Remainder: r.Remainder}
				})
			})
		}},
	}
}

// ComapFlatMap is failable only going forward (decode side).
func ComapFlatMap[T, A, B any](c Codec[T, A], decode func(A) result.Result[B], encode func(B) A) Codec[T, B] {
	return FlatXmap(c, decode, func(b B) result.Result[A] { return result.Success(encode(b)) })
}

// FlatComapMap is failable only going backward (encode side).
func FlatComapMap[T, A, B any](c Codec[T, A], decode func(A) B, encode func(B) result.Result[A]) Codec[T, B] {
	return FlatXmap(c, func(a A) result.Result[B] { return result.Success(decode(a)) }, encode)
}

// OrElse tries c first, falling back to other on both encode and decode
// failure.
func OrElse[T, A any](c, other Codec[T, A]) Codec[T, A] {
	return Codec[T, A]{
		Encoder: Encoder[T, A]{ID: c.Encoder.ID, Encode: func(a A, o ops.Ops[T], prefix T) result.Result[T] {
			r := c.Encoder.Encode(a, o, prefix)
			if r.IsSuccess() {
				return r
			}
			return other.Encoder.Encode(a, o, prefix)
		}},
		Decoder: Decoder[T, A]{ID: c.Decoder.ID, Decode: func(o ops.Ops[T], input T) result.Result[DecodeResult[T, A]] {
			r := c.Decoder.Decode(o, input)
			if r.IsSuccess() {
				return r
			}
			return other.Decoder.Decode(o, input)
		}},
	}
}

// ListOf lifts a Codec[T,A] into a Codec[T,[]A] over list-shaped carriers.
func ListOf[T, A any](c Codec[T, A]) Codec[T, []A] {
	return Codec[T, []A]{
		Encoder: Encoder[T, []A]{ID: c.Encoder.ID + "[]", Encode: func(as []A, o ops.Ops[T], prefix T) result.Result[T] {
			items := make([]T, 0, len(as))
			for _, a := range as {
				r := c.EncodeStart(o, a)
				if !r.IsSuccess() {
					return result.Error[T](r.ErrorMessage())
				}
				items = append(items, r.Value())
			}
			return result.Success(o.CreateList(items))
		}},
		Decoder: Decoder[T, []A]{ID: c.Decoder.ID + "[]", Decode: func(o ops.Ops[T], input T) result.Result[DecodeResult[T, []A]] {
			listR := o.GetList(input)
			if !listR.IsSuccess() {
				return result.Error[DecodeResult[T, []A]](listR.ErrorMessage())
			}
			out := make([]A, 0, len(listR.Value()))
			for i, item := range listR.Value() {
				r := c.Parse(o, item)
				if !r.IsSuccess() {
					return result.Error[DecodeResult[T, []A]](fmt.Sprintf("index %d: %s", i, r.ErrorMessage()))
				}
				out = append(out, r.Value())
			}
			return result.Success(DecodeResult[T, []A]{Value: out, Remainder: o.Empty()})
		}},
	}
}

// OptionalOf treats decode failure as None rather than propagating the
// error.
func OptionalOf[T, A any](c Codec[T, A]) Codec[T, Option[A]] {
	return Codec[T, Option[A]]{
		Encoder: Encoder[T, Option[A]]{ID: c.Encoder.ID + "?", Encode: func(opt Option[A], o ops.Ops[T], prefix T) result.Result[T] {
			a, present := opt.Get()
			if !present {
				return result.Success(prefix)
			}
			return c.Encoder.Encode(a, o, prefix)
		}},
		Decoder: Decoder[T, Option[A]]{ID: c.Decoder.ID + "?", Decode: func(o ops.Ops[T], input T) result.Result[DecodeResult[T, Option[A]]] {
			r := c.Decoder.Decode(o, input)
			if !r.IsSuccess() {
				return result.Success(DecodeResult[T, Option[A]]{Value: None[A](), Remainder: input})
			}
			return result.Success(DecodeResult[T, Option[A]]{Value: Some(r.Value().Value), Remainder: r.Value().Remainder})
		}},
	}
}

// EitherValue is a tagged union of two alternative decodings.
type EitherValue[A, B any] struct {
	left    A
	right   B
	isRight bool
}

func Left[A, B any](a A) EitherValue[A, B]  { return EitherValue[A, B]{left: a} }
func Right[A, B any](b B) EitherValue[A, B] { return EitherValue[A, B]{right: b, isRight: true} }
func (e EitherValue[A, B]) IsRight() bool   { return e.isRight }
func (e EitherValue[A, B]) LeftValue() A    { return e.left }
func (e EitherValue[A, B]) RightValue() B   { return e.right }

// Either tries left first, then right, on decode; encodes whichever branch
// is populated.
func Either[T, A, B any](left Codec[T, A], right Codec[T, B]) Codec[T, EitherValue[A, B]] {
	return Codec[T, EitherValue[A, B]]{
		Encoder: Encoder[T, EitherValue[A, B]]{ID: "either", Encode: func(e EitherValue[A, B], o ops.Ops[T], prefix T) result.Result[T] {
			if e.IsRight() {
				return right.Encoder.Encode(e.RightValue(), o, prefix)
			}
			return left.Encoder.Encode(e.LeftValue(), o, prefix)
		}},
		Decoder: Decoder[T, EitherValue[A, B]]{ID: "either", Decode: func(o ops.Ops[T], input T) result.Result[DecodeResult[T, EitherValue[A, B]]] {
			if lr := left.Decoder.Decode(o, input); lr.IsSuccess() {
				return result.Success(DecodeResult[T, EitherValue[A, B]]{
					Value:     Left[A, B](lr.Value().Value),
					Remainder: lr.Value().Remainder,
				})
			}
			return result.Map(right.Decoder.Decode(o, input), func(r DecodeResult[T, B]) DecodeResult[T, EitherValue[A, B]] {
				return DecodeResult[T, EitherValue[A, B]]{Value: Right[A, B](r.Value), Remainder: r.Remainder}
			})
		}},
	}
}

// Pair chains two codecs: first's remainder feeds second's input, and
// encoding accumulates into one prefix.
type PairValue[A, B any] struct {
	First  A
	Second B
}

func Pair[T, A, B any](first Codec[T, A], second Codec[T, B]) Codec[T, PairValue[A, B]] {
	return Codec[T, PairValue[A, B]]{
		Encoder: Encoder[T, PairValue[A, B]]{ID: "pair", Encode: func(p PairValue[A, B], o ops.Ops[T], prefix T) result.Result[T] {
			return result.FlatMap(first.Encoder.Encode(p.First, o, prefix), func(mid T) result.Result[T] {
				return second.Encoder.Encode(p.Second, o, mid)
			})
		}},
		Decoder: Decoder[T, PairValue[A, B]]{ID: "pair", Decode: func(o ops.Ops[T], input T) result.Result[DecodeResult[T, PairValue[A, B]]] {
			return result.FlatMap(first.Decoder.Decode(o, input), func(r1 DecodeResult[T, A]) result.Result[DecodeResult[T, PairValue[A, B]]] {
				return result.Map(second.Decoder.Decode(o, r1.Remainder), func(r2 DecodeResult[T, B]) DecodeResult[T, PairValue[A, B]] {
					return DecodeResult[T, PairValue[A, B]]{Value: PairValue[A, B]{First: r1.Value, Second: r2.Value}, Remainder: r2.Remainder}
				})
			})
		}},
	}
}

// WithErrorContext prepends "prefix: " to every error message c produces.
func WithErrorContext[T, A any](c Codec[T, A], prefix string) Codec[T, A] {
	wrap := func(msg string) string { return prefix + ": " + msg }
	return Codec[T, A]{
		Encoder: Encoder[T, A]{ID: c.Encoder.ID, Encode: func(a A, o ops.Ops[T], p T) result.Result[T] {
			return c.Encoder.Encode(a, o, p).MapError(wrap)
		}},
		Decoder: Decoder[T, A]{ID: c.Decoder.ID, Decode: func(o ops.Ops[T], input T) result.Result[DecodeResult[T, A]] {
			return c.Decoder.Decode(o, input).MapError(wrap)
		}},
	}
}

// IntRange validates an int32 is within [min, max] on both directions.
func IntRange[T any](min, max int32) Codec[T, int32] {
	check := func(v int32) result.Result[int32] {
		if v < min || v > max {
			return result.Error[int32](fmt.Sprintf("Value %d outside of range [%d,%d]", v, min, max))
		}
		return result.Success(v)
	}
	return Codec[T, int32]{
		Encoder: Encoder[T, int32]{ID: "int", Encode: func(a int32, o ops.Ops[T], prefix T) result.Result[T] {
			return result.FlatMap(check(a), func(v int32) result.Result[T] { return result.Success(o.CreateInt(v)) })
		}},
		Decoder: Decoder[T, int32]{ID: "int", Decode: func(o ops.Ops[T], input T) result.Result[DecodeResult[T, int32]] {
			return result.FlatMap(o.AsInt(input), func(v int32) result.Result[DecodeResult[T, int32]] {
				return result.Map(check(v), func(vv int32) DecodeResult[T, int32] {
					return DecodeResult[T, int32]{Value: vv, Remainder: o.Empty()}
				})
			})
		}},
	}
}

// FloatRange validates a float32 is within [min, max] on both directions.
func FloatRange[T any](min, max float32) Codec[T, float32] {
	check := func(v float32) result.Result[float32] {
		if v < min || v > max {
			return result.Error[float32](fmt.Sprintf("Value %f outside of range [%f,%f]", v, min, max))
		}
		return result.Success(v)
	}
	return Codec[T, float32]{
		Encoder: Encoder[T, float32]{ID: "float", Encode: func(a float32, o ops.Ops[T], prefix T) result.Result[T] {
			return result.FlatMap(check(a), func(v float32) result.Result[T] { return result.Success(o.CreateFloat(v)) })
		}},
		Decoder: Decoder[T, float32]{ID: "float", Decode: func(o ops.Ops[T], input T) result.Result[DecodeResult[T, float32]] {
			return result.FlatMap(o.AsFloat(input), func(v float32) result.Result[DecodeResult[T, float32]] {
				return result.Map(check(v), func(vv float32) DecodeResult[T, float32] {
					return DecodeResult[T, float32]{Value: vv, Remainder: o.Empty()}
				})
			})
		}},
	}
}

// DoubleRange validates a float64 is within [min, max] on both directions.
func DoubleRange[T any](min, max float64) Codec[T, float64] {
	check := func(v float64) result.Result[float64] {
		if v < min || v > max {
			return result.Error[float64](fmt.Sprintf("Value %f outside of range [%f,%f]", v, min, max))
		}
		return result.Success(v)
	}
	return Codec[T, float64]{
		Encoder: Encoder[T, float64]{ID: "double", Encode: func(a float64, o ops.Ops[T], prefix T) result.Result[T] {
			return result.FlatMap(check(a), func(v float64) result.Result[T] { return result.Success(o.CreateDouble(v)) })
		}},
		Decoder: Decoder[T, float64]{ID: "double", Decode: func(o ops.Ops[T], input T) result.Result[DecodeResult[T, float64]] {
			return result.FlatMap(o.AsDouble(input), func(v float64) result.Result[DecodeResult[T, float64]] {
				return result.Map(check(v), func(vv float64) DecodeResult[T, float64] {
					return DecodeResult[T, float64]{Value: vv, Remainder: o.Empty()}
				})
			})
		}},
	}
}

// StringCodec is the primitive leaf codec for strings, used as the `inner`
// argument to FieldOf/OptionalFieldOf.
func StringCodec[T any]() Codec[T, string] {
	return Codec[T, string]{
		Encoder: Encoder[T, string]{ID: "string", Encode: func(a string, o ops.Ops[T], prefix T) result.Result[T] {
			return result.Success(o.CreateString(a))
		}},
		Decoder: Decoder[T, string]{ID: "string", Decode: func(o ops.Ops[T], input T) result.Result[DecodeResult[T, string]] {
			return result.Map(o.AsString(input), func(s string) DecodeResult[T, string] {
				return DecodeResult[T, string]{Value: s, Remainder: o.Empty()}
			})
		}},
	}
}

// BoolCodec is the primitive leaf codec for bools.
func BoolCodec[T any]() Codec[T, bool] {
	return Codec[T, bool]{
		Encoder: Encoder[T, bool]{ID: "bool", Encode: func(a bool, o ops.Ops[T], prefix T) result.Result[T] {
			return result.Success(o.CreateBool(a))
		}},
		Decoder: Decoder[T, bool]{ID: "bool", Decode: func(o ops.Ops[T], input T) result.Result[DecodeResult[T, bool]] {
			return result.Map(o.AsBool(input), func(b bool) DecodeResult[T, bool] {
				return DecodeResult[T, bool]{Value: b, Remainder: o.Empty()}
			})
		}},
	}
}
