// Package result implements the success/error sum type threaded through the
// codec and Dynamic layers so that recoverable data errors never need a panic
// or a sentinel error value to carry a partially-decoded payload.
package result

import "fmt"

// Result is either a Success holding a value, or an Error holding a message
// and an optional partial value recovered up to the point of failure.
type Result[A any] struct {
	value   A
	err     string
	partial *A
	ok      bool
}

// Success builds a successful Result.
func Success[A any](a A) Result[A] {
	return Result[A]{value: a, ok: true}
}

// Error builds a failed Result with no partial value.
func Error[A any](msg string) Result[A] {
	return Result[A]{err: msg}
}

// ErrorPartial builds a failed Result carrying a partial value.
func ErrorPartial[A any](msg string, partial A) Result[A] {
	return Result[A]{err: msg, partial: &partial}
}

// IsSuccess reports whether r holds a value.
func (r Result[A]) IsSuccess() bool { return r.ok }

// IsError reports whether r holds an error.
func (r Result[A]) IsError() bool { return !r.ok }

// ErrorMessage returns the error message, or "" on success.
func (r Result[A]) ErrorMessage() string { return r.err }

// Partial returns the partial value and whether one is present. Only
// meaningful when IsError is true.
func (r Result[A]) Partial() (A, bool) {
	if r.partial == nil {
		var zero A
		return zero, false
	}
	return *r.partial, true
}

// Value returns the success value, the zero value otherwise. Callers that
// need to distinguish should check IsSuccess first.
func (r Result[A]) Value() A { return r.value }

// Map transforms a success value. On Error with a partial, it maps the
// partial and keeps the Result an Error. On Error without a partial, Map is
// a no-op.
func Map[A, B any](r Result[A], f func(A) B) Result[B] {
	if r.ok {
		return Success(f(r.value))
	}
	if r.partial != nil {
		mapped := f(*r.partial)
		return ErrorPartial[B](r.err, mapped)
	}
	return Error[B](r.err)
}

// FlatMap chains a Result-producing continuation. On Error with a partial,
// the continuation runs on the partial; if it also errors, the messages are
// concatenated ("a; b") and the deeper partial (the continuation's) wins
// when present.
func FlatMap[A, B any](r Result[A], f func(A) Result[B]) Result[B] {
	if r.ok {
		return f(r.value)
	}
	if r.partial == nil {
		return Error[B](r.err)
	}
	next := f(*r.partial)
	if next.ok {
		return next
	}
	combined := r.err
	if next.err != "" {
		combined = combined + "; " + next.err
	}
	if next.partial != nil {
		return ErrorPartial[B](combined, *next.partial)
	}
	return Error[B](combined)
}

// MapError transforms the error message of an Error result; a no-op on
// Success.
func (r Result[A]) MapError(f func(string) string) Result[A] {
	if r.ok {
		return r
	}
	out := r
	out.err = f(r.err)
	return out
}

// GetOrThrow returns the success value, or panics with an exception built by
// exceptionFactory from the error message. Reserved for programmer-error
// call sites; recoverable paths should prefer ResultOrPartial.
func (r Result[A]) GetOrThrow(exceptionFactory func(msg string) error) A {
	if r.ok {
		return r.value
	}
	panic(exceptionFactory(r.err))
}

// ResultOrPartial returns the success value on Success. On Error with a
// partial, it reports the error through onError and returns the partial. On
// Error without a partial, there is nothing sensible to return, so it panics
// — callers that might hit this path should construct their Results with a
// partial, or check IsError first.
func (r Result[A]) ResultOrPartial(onError func(msg string)) A {
	if r.ok {
		return r.value
	}
	if r.partial != nil {
		onError(r.err)
		return *r.partial
	}
	panic(fmt.Sprintf("result: ResultOrPartial called on an Error with no partial: %s", r.err))
}

// OrElse returns the success value, or def on Error.
func (r Result[A]) OrElse(def A) A {
	if r.ok {
		return r.value
	}
	return def
}

// OrElseGet returns the success value, or the result of supplier on Error.
func (r Result[A]) OrElseGet(supplier func() A) A {
	if r.ok {
		return r.value
	}
	return supplier()
}

// PromotePartial reports the error through onError and turns an
// Error-with-partial into a Success of that partial. An Error without a
// partial, or a Success, passes through unchanged (Success trivially,
// Error-without-partial because there is nothing to promote).
func (r Result[A]) PromotePartial(onError func(msg string)) Result[A] {
	if r.ok || r.partial == nil {
		return r
	}
	onError(r.err)
	return Success(*r.partial)
}

// Either is the two-armed sum Result collapses to when partials are dropped.
type Either[A any] struct {
	left    string
	right   A
	isRight bool
}

// Left builds a left-valued Either (the error arm).
func Left[A any](msg string) Either[A] { return Either[A]{left: msg} }

// Right builds a right-valued Either (the success arm).
func Right[A any](a A) Either[A] { return Either[A]{right: a, isRight: true} }

// IsRight reports whether e holds a value.
func (e Either[A]) IsRight() bool { return e.isRight }

// LeftValue returns the error message (only meaningful when !IsRight).
func (e Either[A]) LeftValue() string { return e.left }

// RightValue returns the value (only meaningful when IsRight).
func (e Either[A]) RightValue() A { return e.right }

// ToEither converts a Result to an Either, dropping any partial.
func ToEither[A any](r Result[A]) Either[A] {
	if r.ok {
		return Right(r.value)
	}
	return Left[A](r.err)
}

// Apply2 combines two Results with f, propagating partials symmetrically: if
// either side is an Error, the combined Result is an Error whose partial (if
// both sides have one) is f applied to both partials, and whose message is
// the concatenation of both error messages when both carry one.
func Apply2[A, B, C any](ra Result[A], rb Result[B], f func(A, B) C) Result[C] {
	if ra.ok && rb.ok {
		return Success(f(ra.value, rb.value))
	}

	var msgs []string
	if ra.err != "" {
		msgs = append(msgs, ra.err)
	}
	if rb.err != "" {
		msgs = append(msgs, rb.err)
	}
	msg := ""
	for i, m := range msgs {
		if i > 0 {
			msg += "; "
		}
		msg += m
	}

	av, aok := ra.partialOrValue()
	bv, bok := rb.partialOrValue()
	if aok && bok {
		return ErrorPartial[C](msg, f(av, bv))
	}
	return Error[C](msg)
}

func (r Result[A]) partialOrValue() (A, bool) {
	if r.ok {
		return r.value, true
	}
	if r.partial != nil {
		return *r.partial, true
	}
	var zero A
	return zero, false
}

// Concat joins two error messages the way FlatMap/Apply2 do ("a; b"),
// skipping empty segments.
func Concat(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + "; " + b
	}
}
