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
	"github.com/corerun/corerun/poll"
	"github.com/corerun/corerun/result"
)

// AssertNoError unwraps a stream of Result, panicking loudly the first time
// it observes a failure.
func AssertNoError[T any](inner Stream[result.Result[T]]) Stream[T] {
	return Map(inner, func(r result.Result[T]) T {
		if r.IsErr() {
			panic("stream: AssertNoError observed a failure: " + r.Err().Error())
		}
		return r.Value()
	})
}

// CatchError recovers every failure encountered by substituting the value
// produced by recover; the stream itself keeps running afterward (a stream
// carrying Results does not auto-terminate on failure).
func CatchError[T any](inner Stream[result.Result[T]], recover func(error) T) Stream[T] {
	return Map(inner, func(r result.Result[T]) T {
		if r.IsErr() {
			return recover(r.Err())
		}
		return r.Value()
	})
}

// ReplaceError substitutes a fixed fallback value for any failure.
func ReplaceError[T any](inner Stream[result.Result[T]], fallback T) Stream[T] {
	return CatchError(inner, func(error) T { return fallback })
}

// CompleteOnError terminates the stream (without emitting) the first time a
// Result element carries a failure; until then, successes pass through
// unwrapped.
func CompleteOnError[T any](inner Stream[result.Result[T]]) Stream[T] {
	return Wrap(func(cx poll.Context) poll.Poll[Option[T]] {
		p := inner.PollNext(cx)
		if !p.IsReady() {
			return poll.Pending[Option[T]]()
		}
		o := p.Value()
		if !o.IsSome() {
			return poll.Ready(None[T]())
		}
		r := o.Value()
		if r.IsErr() {
			return poll.Ready(None[T]())
		}
		return poll.Ready(Some(r.Value()))
	})
}
