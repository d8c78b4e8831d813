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

// Buffer accumulates up to n elements into a chunk, emitting it once full
// or -- for the final, possibly short chunk -- once inner completes.
func Buffer[T any](inner Stream[T], n int) Stream[[]T] {
	if n <= 0 {
		panic("stream: Buffer requires n > 0")
	}
	chunk := make([]T, 0, n)
	finished := false

	return Wrap(func(cx poll.Context) poll.Poll[Option[[]T]] {
		if finished {
			return poll.Ready(None[[]T]())
		}
		for {
			p := inner.PollNext(cx)
			if !p.IsReady() {
				return poll.Pending[Option[[]T]]()
			}
			o := p.Value()
			if !o.IsSome() {
				finished = true
				if len(chunk) == 0 {
					return poll.Ready(None[[]T]())
				}
				out := chunk
				chunk = nil
				return poll.Ready(Some(out))
			}
			chunk = append(chunk, o.Value())
			if len(chunk) == n {
				out := chunk
				chunk = make([]T, 0, n)
				return poll.Ready(Some(out))
			}
		}
	})
}

// Prefix passes through at most the first n elements, then terminates
// without polling inner again.
func Prefix[T any](inner Stream[T], n int) Stream[T] {
	remaining := n
	return Wrap(func(cx poll.Context) poll.Poll[Option[T]] {
		if remaining <= 0 {
			return poll.Ready(None[T]())
		}
		p := inner.PollNext(cx)
		if !p.IsReady() {
			return poll.Pending[Option[T]]()
		}
		if p.Value().IsSome() {
			remaining--
		} else {
			remaining = 0
		}
		return p
	})
}

// DropFirst discards the first n elements of inner, then passes the rest
// through unchanged.
func DropFirst[T any](inner Stream[T], n int) Stream[T] {
	remaining := n
	return Wrap(func(cx poll.Context) poll.Poll[Option[T]] {
		for remaining > 0 {
			p := inner.PollNext(cx)
			if !p.IsReady() {
				return poll.Pending[Option[T]]()
			}
			if !p.Value().IsSome() {
				return p
			}
			remaining--
		}
		return inner.PollNext(cx)
	})
}

// PrefixUntilOutput polls signal alongside every element of inner; as soon
// as signal becomes ready, the stream terminates (without emitting the
// element that triggered it).
func PrefixUntilOutput[T, S any](inner Stream[T], signal future.Future[S]) Stream[T] {
	tripped := false
	return Wrap(func(cx poll.Context) poll.Poll[Option[T]] {
		if tripped {
			return poll.Ready(None[T]())
		}
		if p := signal.Poll(cx); p.IsReady() {
			tripped = true
			return poll.Ready(None[T]())
		}
		return inner.PollNext(cx)
	})
}

// DropUntilOutput is the symmetric opposite of PrefixUntilOutput: elements
// of inner are discarded until signal becomes ready, after which the rest
// of inner passes through unchanged.
func DropUntilOutput[T, S any](inner Stream[T], signal future.Future[S]) Stream[T] {
	open := false
	return Wrap(func(cx poll.Context) poll.Poll[Option[T]] {
		for !open {
			if p := signal.Poll(cx); p.IsReady() {
				open = true
				break
			}
			// Still gated: drain (and discard) one element of inner so its
			// own wakeups are not starved while we wait on signal.
			p := inner.PollNext(cx)
			if !p.IsReady() {
				return poll.Pending[Option[T]]()
			}
			if !p.Value().IsSome() {
				return p
			}
		}
		return inner.PollNext(cx)
	})
}

// Abort polls when on every element of inner; as soon as when becomes
// ready, the stream finishes immediately (terminal None), regardless of
// what inner itself would have produced.
func Abort[T, S any](inner Stream[T], when future.Future[S]) Stream[T] {
	aborted := false
	return Wrap(func(cx poll.Context) poll.Poll[Option[T]] {
		if aborted {
			return poll.Ready(None[T]())
		}
		if p := when.Poll(cx); p.IsReady() {
			aborted = true
			return poll.Ready(None[T]())
		}
		return inner.PollNext(cx)
	})
}

// Latest eagerly drains inner while it is immediately ready, keeping only
// the last element seen, then yields that element once and terminates.
// Used to collapse a bursty producer down to its most recent value.
func Latest[T any](inner Stream[T]) Stream[T] {
	const (
		stateDraining = iota
		stateEmit
		stateDone
	)
	state := stateDraining
	var last Option[T]

	return Wrap(func(cx poll.Context) poll.Poll[Option[T]] {
		switch state {
		case stateEmit:
			state = stateDone
			return poll.Ready(None[T]())
		case stateDone:
			return poll.Ready(None[T]())
		}

		for {
			p := inner.PollNext(cx)
			if !p.IsReady() {
				if last.IsSome() {
					state = stateEmit
					return poll.Ready(last)
				}
				return poll.Pending[Option[T]]()
			}
			o := p.Value()
			if !o.IsSome() {
				if last.IsSome() {
					state = stateEmit
					return poll.Ready(last)
				}
				state = stateDone
				return poll.Ready(None[T]())
			}
			last = o
		}
	})
}
