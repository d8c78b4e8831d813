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
)

// FlatMap polls outer for each element, maps it to an inner Stream via f,
// and drains that inner stream to exhaustion before resuming outer. Element
// order is fully preserved: this is the "for each outer element, poll inner
// to exhaustion before resuming outer" semantics.
func FlatMap[T, U any](outer Stream[T], f func(T) Stream[U]) Stream[U] {
	var inner Stream[U]
	outerDone := false

	return Wrap(func(cx poll.Context) poll.Poll[Option[U]] {
		for {
			if inner != nil {
				p := inner.PollNext(cx)
				if !p.IsReady() {
					return poll.Pending[Option[U]]()
				}
				if p.Value().IsSome() {
					return p
				}
				inner = nil
				if outerDone {
					return poll.Ready(None[U]())
				}
				continue
			}

			op := outer.PollNext(cx)
			if !op.IsReady() {
				return poll.Pending[Option[U]]()
			}
			oo := op.Value()
			if !oo.IsSome() {
				outerDone = true
				return poll.Ready(None[U]())
			}
			inner = f(oo.Value())
		}
	})
}

// Flatten is FlatMap with the identity substream selector: a stream of
// streams collapsed into one, each inner stream drained to exhaustion
// before the next is polled.
func Flatten[T any](outer Stream[Stream[T]]) Stream[T] {
	return FlatMap(outer, func(s Stream[T]) Stream[T] { return s })
}

// SwitchToLatest behaves like FlatMap, except a still-running inner stream
// is abandoned (never polled again) as soon as outer produces a new one:
// only the most recently produced inner stream is ever observed.
func SwitchToLatest[T, U any](outer Stream[T], f func(T) Stream[U]) Stream[U] {
	var inner Stream[U]
	outerDone := false

	return Wrap(func(cx poll.Context) poll.Poll[Option[U]] {
		for {
			// Prefer to make outer progress first so a fresh inner stream
			// can preempt whatever is currently running.
			if !outerDone {
				op := outer.PollNext(cx)
				if op.IsReady() {
					oo := op.Value()
					if !oo.IsSome() {
						outerDone = true
					} else {
						inner = f(oo.Value())
					}
					continue
				}
			}

			if inner == nil {
				if outerDone {
					return poll.Ready(None[U]())
				}
				return poll.Pending[Option[U]]()
			}

			p := inner.PollNext(cx)
			if !p.IsReady() {
				return poll.Pending[Option[U]]()
			}
			if p.Value().IsSome() {
				return p
			}
			inner = nil
			if outerDone {
				return poll.Ready(None[U]())
			}
			return poll.Pending[Option[U]]()
		}
	})
}
