package codec

import (
	"github.com/basinfx/datafixer/ops"
	"github.com/basinfx/datafixer/result"
)

// RecordCodecBuilder assembles a Codec[Record] out of named MapCodec
// fields. Go has no variadic generics, so arities are hand-written
// monomorphised functions rather than one macro — the same approach the
// source takes for its arity-1..N builder classes.

func mapCodecOf[T, Record any](
	encode func(Record, ops.Ops[T], T) result.Result[T],
	decode func(ops.Ops[T], T) result.Result[Record],
) Codec[T, Record] {
	mc := MapCodec[T, Record]{ID: "record", Encode: encode, Decode: decode}
	return mc.ToCodec()
}

func Record1[T, Record, F1 any](
	f1 MapCodec[T, F1], get1 func(Record) F1,
	construct func(F1) Record,
) Codec[T, Record] {
	return mapCodecOf[T, Record](
		func(r Record, o ops.Ops[T], m T) result.Result[T] {
			return f1.Encode(get1(r), o, m)
		},
		func(o ops.Ops[T], m T) result.Result[Record] {
			return result.Map(f1.Decode(o, m), construct)
		},
	)
}

func Record2[T, Record, F1, F2 any](
	f1 MapCodec[T, F1], get1 func(Record) F1,
	f2 MapCodec[T, F2], get2 func(Record) F2,
	construct func(F1, F2) Record,
) Codec[T, Record] {
	return mapCodecOf[T, Record](
		func(r Record, o ops.Ops[T], m T) result.Result[T] {
			return result.FlatMap(f1.Encode(get1(r), o, m), func(m1 T) result.Result[T] {
				return f2.Encode(get2(r), o, m1)
			})
		},
		func(o ops.Ops[T], m T) result.Result[Record] {
			return result.FlatMap(f1.Decode(o, m), func(v1 F1) result.Result[Record] {
				return result.Map(f2.Decode(o, m), func(v2 F2) Record { return construct(v1, v2) })
			})
		},
	)
}

func Record3[T, Record, F1, F2, F3 any](
	f1 MapCodec[T, F1], get1 func(Record) F1,
	f2 MapCodec[T, F2], get2 func(Record) F2,
	f3 MapCodec[T, F3], get3 func(Record) F3,
	construct func(F1, F2, F3) Record,
) Codec[T, Record] {
	return mapCodecOf[T, Record](
		func(r Record, o ops.Ops[T], m T) result.Result[T] {
			return result.FlatMap(f1.Encode(get1(r), o, m), func(m1 T) result.Result[T] {
				return result.FlatMap(f2.Encode(get2(r), o, m1), func(m2 T) result.Result[T] {
					return f3.Encode(get3(r), o, m2)
				})
			})
		},
		func(o ops.Ops[T], m T) result.Result[Record] {
			return result.FlatMap(f1.Decode(o, m), func(v1 F1) result.Result[Record] {
				return result.FlatMap(f2.Decode(o, m), func(v2 F2) result.Result[Record] {
					return result.Map(f3.Decode(o, m), func(v3 F3) Record { return construct(v1, v2, v3) })
				})
			})
		},
	)
}

func Record4[T, Record, F1, F2, F3, F4 any](
	f1 MapCodec[T, F1], get1 func(Record) F1,
	f2 MapCodec[T, F2], get2 func(Record) F2,
	f3 MapCodec[T, F3], get3 func(Record) F3,
	f4 MapCodec[T, F4], get4 func(Record) F4,
	construct func(F1, F2, F3, F4) Record,
) Codec[T, Record] {
	return mapCodecOf[T, Record](
		func(r Record, o ops.Ops[T], m T) result.Result[T] {
			return result.FlatMap(f1.Encode(get1(r), o, m), func(m1 T) result.Result[T] {
				return result.FlatMap(f2.Encode(get2(r), o, m1), func(m2 T) result.Result[T] {
					return result.FlatMap(f3.Encode(get3(r), o, m2), func(m3 T) result.Result[T] {
						return f4.Encode(get4(r), o, m3)
					})
				})
			})
		},
		func(o ops.Ops[T], m T) result.Result[Record] {
			return result.FlatMap(f1.Decode(o, m), func(v1 F1) result.Result[Record] {
				return result.FlatMap(f2.Decode(o, m), func(v2 F2) result.Result[Record] {
					return result.FlatMap(f3.Decode(o, m), func(v3 F3) result.Result[Record] {
						return result.Map(f4.Decode(o, m), func(v4 F4) Record { return construct(v1, v2, v3, v4) })
					})
				})
			})
		},
	)
}

func Record5[T, Record, F1, F2, F3, F4, F5 any](
	f1 MapCodec[T, F1], get1 func(Record) F1,
	f2 MapCodec[T, F2], get2 func(Record) F2,
	f3 MapCodec[T, F3], get3 func(Record) F3,
	f4 MapCodec[T, F4], get4 func(Record) F4,
	f5 MapCodec[T, F5], get5 func(Record) F5,
	construct func(F1, F2, F3, F4, F5) Record,
) Codec[T, Record] {
	return mapCodecOf[T, Record](
		func(r Record, o ops.Ops[T], m T) result.Result[T] {
			return result.FlatMap(f1.Encode(get1(r), o, m), func(m1 T) result.Result[T] {
				return result.FlatMap(f2.Encode(get2(r), o, m1), func(m2 T) result.Result[T] {
					return result.FlatMap(f3.Encode(get3(r), o, m2), func(m3 T) result.Result[T] {
						return result.FlatMap(f4.Encode(get4(r), o, m3), func(m4 T) result.Result[T] {
							return f5.Encode(get5(r), o, m4)
						})
					})
				})
			})
		},
		func(o ops.Ops[T], m T) result.Result[Record] {
			return result.FlatMap(f1.Decode(o, m), func(v1 F1) result.Result[Record] {
				return result.FlatMap(f2.Decode(o, m), func(v2 F2) result.Result[Record] {
					return result.FlatMap(f3.Decode(o, m), func(v3 F3) result.Result[Record] {
						return result.FlatMap(f4.Decode(o, m), func(v4 F4) result.Result[Record] {
							return result.Map(f5.Decode(o, m), func(v5 F5) Record { return construct(v1, v2, v3, v4, v5) })
						})
					})
				})
			})
		},
	)
}

func Record6[T, Record, F1, F2, F3, F4, F5, F6 any](
	f1 MapCodec[T, F1], get1 func(Record) F1,
	f2 MapCodec[T, F2], get2 func(Record) F2,
	f3 MapCodec[T, F3], get3 func(Record) F3,
	f4 MapCodec[T, F4], get4 func(Record) F4,
	f5 MapCodec[T, F5], get5 func(Record) F5,
	f6 MapCodec[T, F6], get6 func(Record) F6,
	construct func(F1, F2, F3, F4, F5, F6) Record,
) Codec[T, Record] {
	return mapCodecOf[T, Record](
		func(r Record, o ops.Ops[T], m T) result.Result[T] {
			return result.FlatMap(f1.Encode(get1(r), o, m), func(m1 T) result.Result[T] {
				return result.FlatMap(f2.Encode(get2(r), o, m1), func(m2 T) result.Result[T] {
					return result.FlatMap(f3.Encode(get3(r), o, m2), func(m3 T) result.Result[T] {
						return result.FlatMap(f4.Encode(get4(r), o, m3), func(m4 T) result.Result[T] {
							return result.FlatMap(f5.Encode(get5(r), o, m4), func(m5 T) result.Result[T] {
								return f6.Encode(get6(r), o, m5)
							})
						})
					})
				})
			})
		},
		func(o ops.Ops[T], m T) result.Result[Record] {
			return result.FlatMap(f1.Decode(o, m), func(v1 F1) result.Result[Record] {
				return result.FlatMap(f2.Decode(o, m), func(v2 F2) result.Result[Record] {
					return result.FlatMap(f3.Decode(o, m), func(v3 F3) result.Result[Record] {
						return result.FlatMap(f4.Decode(o, m), func(v4 F4) result.Result[Record] {
							return result.FlatMap(f5.Decode(o, m), func(v5 F5) result.Result[Record] {
								return result.Map(f6.Decode(o, m), func(v6 F6) Record { return construct(v1, v2, v3, v4, v5, v6) })
							})
						})
					})
				})
			})
		},
	)
}

func Record7[T, Record, F1, F2, F3, F4, F5, F6, F7 any](
	f1 MapCodec[T, F1], get1 func(Record) F1,
	f2 MapCodec[T, F2], get2 func(Record) F2,
	f3 MapCodec[T, F3], get3 func(Record) F3,
	f4 MapCodec[T, F4], get4 func(Record) F4,
	f5 MapCodec[T, F5], get5 func(Record) F5,
	f6 MapCodec[T, F6], get6 func(Record) F6,
	f7 MapCodec[T, F7], get7 func(Record) F7,
	construct func(F1, F2, F3, F4, F5, F6, F7) Record,
) Codec[T, Record] {
	return mapCodecOf[T, Record](
		func(r Record, o ops.Ops[T], m T) result.Result[T] {
			return result.FlatMap(f1.Encode(get1(r), o, m), func(m1 T) result.Result[T] {
				return result.FlatMap(f2.Encode(get2(r), o, m1), func(m2 T) result.Result[T] {
					return result.FlatMap(f3.Encode(get3(r), o, m2), func(m3 T) result.Result[T] {
						return result.FlatMap(f4.Encode(get4(r), o, m3), func(m4 T) result.Result[T] {
							return result.FlatMap(f5.Encode(get5(r), o, m4), func(m5 T) result.Result[T] {
								return result.FlatMap(f6.Encode(get6(r), o, m5), func(m6 T) result.Result[T] {
									return f7.Encode(get7(r), o, m6)
								})
							})
						})
					})
				})
			})
		},
		func(o ops.Ops[T], m T) result.Result[Record] {
			return result.FlatMap(f1.Decode(o, m), func(v1 F1) result.Result[Record] {
				return result.FlatMap(f2.Decode(o, m), func(v2 F2) result.Result[Record] {
					return result.FlatMap(f3.Decode(o, m), func(v3 F3) result.Result[Record] {
						return result.FlatMap(f4.Decode(o, m), func(v4 F4) result.Result[Record] {
							return result.FlatMap(f5.Decode(o, m), func(v5 F5) result.Result[Record] {
								return result.FlatMap(f6.Decode(o, m), func(v6 F6) result.Result[Record] {
									return result.Map(f7.Decode(o, m), func(v7 F7) Record {
										return construct(v1, v2, v3, v4, v5, v6, v7)
									})
								})
							})
						})
					})
				})
			})
		},
	)
}

func Record8[T, Record, F1, F2, F3, F4, F5, F6, F7, F8 any](
	f1 MapCodec[T, F1], get1 func(Record) F1,
	f2 MapCodec[T, F2], get2 func(Record) F2,
	f3 MapCodec[T, F3], get3 func(Record) F3,
	f4 MapCodec[T, F4], get4 func(Record) F4,
	f5 MapCodec[T, F5], get5 func(Record) F5,
	f6 MapCodec[T, F6], get6 func(Record) F6,
	f7 MapCodec[T, F7], get7 func(Record) F7,
	f8 MapCodec[T, F8], get8 func(Record) F8,
	construct func(F1, F2, F3, F4, F5, F6, F7, F8) Record,
) Codec[T, Record] {
	return mapCodecOf[T, Record](
		func(r Record, o ops.Ops[T], m T) result.Result[T] {
			return result.FlatMap(f1.Encode(get1(r), o, m), func(m1 T) result.Result[T] {
				return result.FlatMap(f2.Encode(get2(r), o, m1), func(m2 T) result.Result[T] {
					return result.FlatMap(f3.Encode(get3(r), o, m2), func(m3 T) result.Result[T] {
						return result.FlatMap(f4.Encode(get4(r), o, m3), func(m4 T) result.Result[T] {
							return result.FlatMap(f5.Encode(get5(r), o, m4), func(m5 T) result.Result[T] {
								return result.FlatMap(f6.Encode(get6(r), o, m5), func(m6 T) result.Result[T] {
									return result.FlatMap(f7.Encode(get7(r), o, m6), func(m7 T) result.Result[T] {
										return f8.Encode(get8(r), o, m7)
									})
								})
							})
						})
					})
				})
			})
		},
		func(o ops.Ops[T], m T) result.Result[Record] {
			return result.FlatMap(f1.Decode(o, m), func(v1 F1) result.Result[Record] {
				return result.FlatMap(f2.Decode(o, m), func(v2 F2) result.Result[Record] {
					return result.FlatMap(f3.Decode(o, m), func(v3 F3) result.Result[Record] {
						return result.FlatMap(f4.Decode(o, m), func(v4 F4) result.Result[Record] {
							return result.FlatMap(f5.Decode(o, m), func(v5 F5) result.Result[Record] {
								return result.FlatMap(f6.Decode(o, m), func(v6 F6) result.Result[Record] {
									return result.FlatMap(f7.Decode(o, m), func(v7 F7) result.Result[Record] {
										return result.Map(f8.Decode(o, m), func(v8 F8) Record {
											return construct(v1, v2, v3, v4, v5, v6, v7, v8)
										})
									})
								})
							})
						})
					})
				})
			})
		},
	)
}

// Point yields a constant MapCodec that ignores the input entirely — the
// arity-0 base case record builders close over.
func Point[T, A any](value A) MapCodec[T, A] {
	return MapCodec[T, A]{
		ID:     "point",
		Encode: func(_ A, _ ops.Ops[T], m T) result.Result[T] { return result.Success(m) },
		Decode: func(_ ops.Ops[T], _ T) result.Result[A] { return result.Success(value) },
	}
}
