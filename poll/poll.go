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

// Package poll defines the universal poll ABI shared by futures, streams and
// sinks: the Poll sum type, the per-poll Context and the Waker capability
// that lets a suspended task ask to be re-polled.
//
// The design is borrowed from Rust's core::task module, adapted to Go with
// generics instead of an associated Output type.
package poll

// A Poll is the result of a single poll of a Future, Stream or Sink. It is a
// sum of Ready(value) and Pending; the Ready flag carries the discriminant.
//
// Once a Ready value has been observed for a Future (or the terminal Ready
// for a Stream/Sink), polling the same task again is undefined behavior:
// implementations must detect it and fail loudly rather than silently
// returning a stale or zero value.
type Poll[T any] struct {
	value T
	ready bool
}

// Ready wraps v as a completed poll result.
func Ready[T any](v T) Poll[T] {
	return Poll[T]{value: v, ready: true}
}

// Pending is the poll result indicating the computation has not progressed
// far enough to produce a value yet. Returning Pending without having
// arranged for the current Context's Waker to be signalled eventually is a
// bug: the task may never be polled again.
func Pending[T any]() Poll[T] {
	return Poll[T]{}
}

// IsReady reports whether the poll produced a value.
func (p Poll[T]) IsReady() bool { return p.ready }

// Value returns the carried value. Calling it on a Pending result returns
// the zero value of T; callers should always check IsReady first.
func (p Poll[T]) Value() T { return p.value }

// Map transforms the value of a Ready poll, passing Pending through
// unchanged. It is the building block most stream/future combinators use to
// implement their own Poll method in one line.
func Map[T, U any](p Poll[T], f func(T) U) Poll[U] {
	if !p.ready {
		return Pending[U]()
	}
	return Ready(f(p.value))
}

// A Waker is a capability that reschedules a task for another poll. Signal
// must be safe to call from any goroutine, any number of times, including
// after the task it refers to has already completed; every call must
// eventually cause at least one re-poll of whichever task most recently
// registered this waker.
type Waker interface {
	Signal()
}

// WakerFunc adapts an ordinary function to the Waker interface.
type WakerFunc func()

// Signal implements Waker.
func (f WakerFunc) Signal() { f() }

// nopWaker discards every signal. It is useful as a placeholder value before
// a real waker has been registered.
type nopWaker struct{}

func (nopWaker) Signal() {}

// NopWaker is a Waker whose Signal is a no-op.
var NopWaker Waker = nopWaker{}

// A Context is the per-poll environment threaded through every Poll call. It
// is immutable for the duration of a single poll; combinators derive new
// Contexts by substituting the Waker (e.g. to tag which branch of a merge
// woke up) rather than mutating this one.
type Context struct {
	waker Waker
}

// NewContext builds a Context around the given Waker.
func NewContext(w Waker) Context {
	if w == nil {
		w = NopWaker
	}
	return Context{waker: w}
}

// Waker returns the context's current waker.
func (cx Context) Waker() Waker { return cx.waker }

// WithWaker derives a new Context that substitutes w for the current waker,
// leaving everything else the same. Combinators use this to hand inner
// computations a waker that identifies which branch woke up.
func (cx Context) WithWaker(w Waker) Context {
	return Context{waker: w}
}

// Yield signals the context's waker and returns Pending, cooperatively
// giving up the current poll. Long-running synchronous work should call
// this periodically instead of blocking, so the executor can remain fair
// across other tasks sharing it.
func Yield[T any](cx Context) Poll[T] {
	cx.waker.Signal()
	return Pending[T]()
}
