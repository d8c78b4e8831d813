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

package stream

import (
	"github.com/corerun/corerun/future"
	"github.com/corerun/corerun/poll"
)

// Scan is the streaming counterpart of Reduce: it emits the running
// accumulator after each input element, rather than only the final value.
func Scan[T, A any](inner Stream[T], seed A, f func(A, T) A) Stream[A] {
	acc := seed
	return Wrap(func(cx poll.Context) poll.Poll[Option[A]] {
		p := inner.PollNext(cx)
		if !p.IsReady() {
			return poll.Pending[Option[A]]()
		}
		o := p.Value()
		if !o.IsSome() {
			return poll.Ready(None[A]())
		}
		acc = f(acc, o.Value())
		return poll.Ready(Some(acc))
	})
}

// Reduce folds every element of inner into a single accumulator by move,
// resolving to it as a Future once the stream terminates.
func Reduce[T, A any](inner Stream[T], seed A, f func(A, T) A) future.Future[A] {
	acc := seed
	return future.Wrap(func(cx poll.Context) poll.Poll[A] {
		for {
			p := inner.PollNext(cx)
			if !p.IsReady() {
				return poll.Pending[A]()
			}
			o := p.Value()
			if !o.IsSome() {
				return poll.Ready(acc)
			}
			acc = f(acc, o.Value())
		}
	})
}

// Count resolves to the number of elements the stream produced.
func Count[T any](inner Stream[T]) future.Future[int] {
	return Reduce(inner, 0, func(acc int, _ T) int { return acc + 1 })
}

// Collect resolves to every element of inner, in order, as a slice.
func Collect[T any](inner Stream[T]) future.Future[[]T] {
	return Reduce[T, []T](inner, nil, func(acc []T, v T) []T { return append(acc, v) })
}

// First resolves to the first element satisfying pred. It loops internally
// exactly like Filter, but as a Future rather than a Stream.
func First[T any](inner Stream[T], pred func(T) bool) future.Future[T] {
	return future.Wrap(func(cx poll.Context) poll.Poll[T] {
		for {
			p := inner.PollNext(cx)
			if !p.IsReady() {
				return poll.Pending[T]()
			}
			o := p.Value()
			if !o.IsSome() {
				var zero T
				return poll.Ready(zero)
			}
			if pred(o.Value()) {
				return poll.Ready(o.Value())
			}
		}
	})
}

// ForEach drives inner to completion, invoking f for every element, and
// resolves once the stream terminates. Used to drive a Stream purely for
// its side effects (the stream-to-sink "forward" combinator builds on this
// shape).
func ForEach[T any](inner Stream[T], f func(T)) future.Future[struct{}] {
	return future.Wrap(func(cx poll.Context) poll.Poll[struct{}] {
		for {
			p := inner.PollNext(cx)
			if !p.IsReady() {
				return poll.Pending[struct{}]()
			}
			o := p.Value()
			if !o.IsSome() {
				return poll.Ready(struct{}{})
			}
			f(o.Value())
		}
	})
}
