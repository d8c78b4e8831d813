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

// Package sink defines the third poll shape: an asynchronous consumer of
// items with explicit backpressure, the mirror image of package stream.
package sink

import "github.com/corerun/corerun/poll"

type outcomeKind int

const (
	kindSuccess outcomeKind = iota
	kindClosed
	kindFailure
)

// Outcome is the result of a single PollSend/PollFlush/PollClose: either
// success, or a terminal Completion (closed, or a domain failure carrying
// E). Once a Sink has produced a non-success Outcome, every further
// operation on it must return that same terminal Outcome again.
type Outcome[E any] struct {
	kind outcomeKind
	err  E
}

// Success reports the operation was accepted (or, for PollFlush/PollClose,
// completed) without error.
func Success[E any]() Outcome[E] { return Outcome[E]{kind: kindSuccess} }

// Closed reports the sink's receiving end has gone away; every later
// operation on this Sink must also report Closed.
func Closed[E any]() Outcome[E] { return Outcome[E]{kind: kindClosed} }

// Failure reports a domain-level send/flush/close error.
func Failure[E any](err E) Outcome[E] { return Outcome[E]{kind: kindFailure, err: err} }

// IsSuccess reports whether this Outcome is the success case.
func (o Outcome[E]) IsSuccess() bool { return o.kind == kindSuccess }

// IsClosed reports whether this Outcome is the closed terminal case.
func (o Outcome[E]) IsClosed() bool { return o.kind == kindClosed }

// IsFailure reports whether this Outcome carries a domain failure.
func (o Outcome[E]) IsFailure() bool { return o.kind == kindFailure }

// Err returns the failure reason. Only meaningful when IsFailure is true.
func (o Outcome[E]) Err() E { return o.err }

// Sink is an asynchronous consumer of items of type I that can fail with a
// domain error of type E. poll_send(ready(success)) means the item has been
// accepted, not necessarily observed by the ultimate receiver; poll_flush
// means every previously accepted item has been observed; poll_close means
// flushed and permanently closed. poll_close is idempotent.
type Sink[I, E any] interface {
	PollSend(cx poll.Context, item I) poll.Poll[Outcome[E]]
	PollFlush(cx poll.Context) poll.Poll[Outcome[E]]
	PollClose(cx poll.Context) poll.Poll[Outcome[E]]
}

// Func implements Sink by delegating each operation to an independent
// closure, the same type-erasure shape future.Func and stream.Func use for
// their own poll methods.
type Func[I, E any] struct {
	SendFn  func(cx poll.Context, item I) poll.Poll[Outcome[E]]
	FlushFn func(cx poll.Context) poll.Poll[Outcome[E]]
	CloseFn func(cx poll.Context) poll.Poll[Outcome[E]]
}

// PollSend implements Sink.
func (f Func[I, E]) PollSend(cx poll.Context, item I) poll.Poll[Outcome[E]] {
	return f.SendFn(cx, item)
}

// PollFlush implements Sink.
func (f Func[I, E]) PollFlush(cx poll.Context) poll.Poll[Outcome[E]] { return f.FlushFn(cx) }

// PollClose implements Sink.
func (f Func[I, E]) PollClose(cx poll.Context) poll.Poll[Outcome[E]] { return f.CloseFn(cx) }

// Drain discards every item it is sent, always reporting success until
// explicitly closed. Useful as a test double and as the default backstop
// for fire-and-forget pipelines.
func Drain[I, E any]() Sink[I, E] {
	var closed bool
	return Func[I, E]{
		SendFn: func(poll.Context, I) poll.Poll[Outcome[E]] {
			if closed {
				return poll.Ready(Closed[E]())
			}
			return poll.Ready(Success[E]())
		},
		FlushFn: func(poll.Context) poll.Poll[Outcome[E]] {
			if closed {
				return poll.Ready(Closed[E]())
			}
			return poll.Ready(Success[E]())
		},
		CloseFn: func(poll.Context) poll.Poll[Outcome[E]] {
			closed = true
			return poll.Ready(Success[E]())
		},
	}
}

// MapInput adapts a Sink[U, E] to accept I by transforming every item
// through f before forwarding it. This is the sink-side counterpart of
// stream.Map: contravariant in the item type, so the transform runs on the
// way in rather than the way out.
func MapInput[I, U, E any](inner Sink[U, E], f func(I) U) Sink[I, E] {
	return Func[I, E]{
		SendFn: func(cx poll.Context, item I) poll.Poll[Outcome[E]] {
			return inner.PollSend(cx, f(item))
		},
		FlushFn: inner.PollFlush,
		CloseFn: inner.PollClose,
	}
}

// MapError transforms the failure reason a Sink reports, leaving Success
// and Closed outcomes unchanged.
func MapError[I, E, F any](inner Sink[I, E], f func(E) F) Sink[I, F] {
	adapt := func(o poll.Poll[Outcome[E]]) poll.Poll[Outcome[F]] {
		return poll.Map(o, func(out Outcome[E]) Outcome[F] {
			switch {
			case out.IsFailure():
				return Failure(f(out.Err()))
			case out.IsClosed():
				return Closed[F]()
			default:
				return Success[F]()
			}
		})
	}
	return Func[I, F]{
		SendFn:  func(cx poll.Context, item I) poll.Poll[Outcome[F]] { return adapt(inner.PollSend(cx, item)) },
		FlushFn: func(cx poll.Context) poll.Poll[Outcome[F]] { return adapt(inner.PollFlush(cx)) },
		CloseFn: func(cx poll.Context) poll.Poll[Outcome[F]] { return adapt(inner.PollClose(cx)) },
	}
}
