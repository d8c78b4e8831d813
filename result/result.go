/**
 * Copyright (c) 2019, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

// Package result carries user-domain errors inside a Future or Stream's
// output value: combinators are transparent to a Result they don't
// recognize, and only catch_error / replace_error / complete_on_error /
// assert_no_error give it special treatment.
package result

// Result is either a successful T value or an error reason. Unlike Go's
// usual (T, error) pair, Result is a single value so it can flow as the
// Output of a Future[Result[T]] or the element type of a Stream[Result[T]].
type Result[T any] struct {
	value T
	err   error
}

// Ok wraps a successful value.
func Ok[T any](v T) Result[T] { return Result[T]{value: v} }

// Err wraps a failure reason. Panics if err is nil: use Ok for success.
func Err[T any](err error) Result[T] {
	if err == nil {
		panic("result: Err called with a nil error")
	}
	return Result[T]{err: err}
}

// IsErr reports whether this Result carries a failure.
func (r Result[T]) IsErr() bool { return r.err != nil }

// Value returns the success value, or the zero value of T if this Result is
// an error.
func (r Result[T]) Value() T { return r.value }

// Err returns the failure reason, or nil if this Result is a success.
func (r Result[T]) Err() error { return r.err }

// Unwrap returns (value, nil) on success or (zero, err) on failure, for
// callers that prefer Go's native two-value idiom at the boundary.
func (r Result[T]) Unwrap() (T, error) { return r.value, r.err }

// Map transforms the success value, leaving an error Result unchanged.
func Map[T, U any](r Result[T], f func(T) U) Result[U] {
	if r.err != nil {
		return Result[U]{err: r.err}
	}
	return Ok(f(r.value))
}

// MapErr transforms the failure reason, leaving a success Result unchanged.
func MapErr[T any](r Result[T], f func(error) error) Result[T] {
	if r.err == nil {
		return r
	}
	return Err[T](f(r.err))
}
