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

package future

import (
	"sync/atomic"

	"github.com/corerun/corerun/poll"
	"github.com/corerun/corerun/result"
)

// TryMap applies f to a successful Result, short-circuiting a failure
// Result through unchanged. f itself may fail, turning a success into a
// failure.
func TryMap[T, U any](inner Future[result.Result[T]], f func(T) (U, error)) Future[result.Result[U]] {
	return Map(inner, func(r result.Result[T]) result.Result[U] {
		if r.IsErr() {
			return result.Err[U](r.Err())
		}
		v, err := f(r.Value())
		if err != nil {
			return result.Err[U](err)
		}
		return result.Ok(v)
	})
}

// MapValue transforms only the success value of a Result-carrying Future.
func MapValue[T, U any](inner Future[result.Result[T]], f func(T) U) Future[result.Result[U]] {
	return Map(inner, func(r result.Result[T]) result.Result[U] { return result.Map(r, f) })
}

// MapError transforms only the failure reason of a Result-carrying Future.
func MapError[T any](inner Future[result.Result[T]], f func(error) error) Future[result.Result[T]] {
	return Map(inner, func(r result.Result[T]) result.Result[T] { return result.MapErr(r, f) })
}

// CatchError recovers from a failure by substituting the value produced by
// recover, turning a failing Future into one that always succeeds.
func CatchError[T any](inner Future[result.Result[T]], recover func(error) T) Future[T] {
	return Map(inner, func(r result.Result[T]) T {
		if r.IsErr() {
			return recover(r.Err())
		}
		return r.Value()
	})
}

// ReplaceError substitutes a fixed value for any failure, preserving a
// success value unchanged.
func ReplaceError[T any](inner Future[result.Result[T]], fallback T) Future[T] {
	return CatchError(inner, func(error) T { return fallback })
}

// AssertNoError unwraps a Result-carrying Future, panicking loudly if it
// ever fails. Used at integration boundaries that are documented as
// "fails loudly on any inner error".
func AssertNoError[T any](inner Future[result.Result[T]]) Future[T] {
	return Map(inner, func(r result.Result[T]) T {
		if r.IsErr() {
			panic("future: AssertNoError observed a failure: " + r.Err().Error())
		}
		return r.Value()
	})
}

// FlattenResult collapses a Future of a nested Result (as produced by, e.g.,
// TryMap over a fallible transform of an already-fallible value) into a
// single Result, propagating whichever layer failed first.
func FlattenResult[T any](inner Future[result.Result[result.Result[T]]]) Future[result.Result[T]] {
	return Map(inner, func(r result.Result[result.Result[T]]) result.Result[T] {
		if r.IsErr() {
			return result.Err[T](r.Err())
		}
		return r.Value()
	})
}

// FromChannel adapts a native channel receive into a Future: the future
// completes with the first value sent (or the zero value, if the channel is
// closed without ever being written to). This takes a raw <-chan T rather
// than this repo's own channel.Receiver[T] because the dependency runs the
// other way: channel builds its Receiver on stream.Option, and stream itself
// depends on future (Forward, ForEach, and friends all return futures), so
// future importing channel would be a cycle. A raw channel is the only
// channel-like input this package can accept without one.
func FromChannel[T any](ch <-chan T) Future[T] {
	var (
		watching bool
		value    T
		done     atomic.Bool
	)
	return Wrap(func(cx poll.Context) poll.Poll[T] {
		if done.Load() {
			return poll.Ready(value)
		}
		select {
		case v, ok := <-ch:
			if ok {
				value = v
			}
			done.Store(true)
			return poll.Ready(value)
		default:
		}
		if !watching {
			watching = true
			w := cx.Waker()
			go func() {
				v, ok := <-ch
				if ok {
					value = v
				}
				done.Store(true)
				w.Signal()
			}()
		}
		return poll.Pending[T]()
	})
}

// ToChannel drives f to completion on its own goroutine and returns a
// channel that receives its single value once ready. The channel has
// capacity 1 and is closed after the send, so the driving goroutine never
// blocks on the send and a single receive is enough to observe completion.
func ToChannel[T any](f Future[T]) <-chan T {
	out := make(chan T, 1)
	go func() {
		out <- Wait(f)
		close(out)
	}()
	return out
}
