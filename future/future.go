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

// Package future implements the single-value half of the poll protocol: the
// generic Future[T] interface plus the combinators (Map, Then, Join, Select,
// catch_error and friends) that compose futures while preserving the poll
// contract.
//
// The shape of Future itself is a direct generalization of
// concurrent/future.Future from this module's teacher: same "Poll(waker)
// (value, err)" contract, parameterized over the output type instead of
// interface{}, and riding on the shared poll.Context/poll.Waker ABI instead
// of a bespoke Waker interface per package.
package future

import (
	"github.com/corerun/corerun/poll"
)

// A Future represents a single asynchronous value. Poll must never block;
// if the value is not ready it registers cx's waker (directly, or by
// polling an inner Future/Stream/channel that does so on its behalf) and
// returns poll.Pending. Once Poll has returned Ready, polling the same
// Future again is undefined behavior -- implementations built by this
// package panic if it happens.
type Future[T any] interface {
	Poll(cx poll.Context) poll.Poll[T]
}

// Func adapts a plain poll function to the Future interface.
type Func[T any] func(cx poll.Context) poll.Poll[T]

// Poll implements Future.
func (f Func[T]) Poll(cx poll.Context) poll.Poll[T] { return f(cx) }

// Ready returns a Future that is immediately complete with v.
func Ready[T any](v T) Future[T] {
	return Wrap(func(poll.Context) poll.Poll[T] { return poll.Ready(v) })
}

// completedGuard wraps a Future so that polling it again after it has
// returned Ready panics, enforcing the poll-after-complete contract
// uniformly across every combinator built with Wrap.
type completedGuard[T any] struct {
	inner T
	done  bool
}

// Wrap makes any raw poll function defensive against being re-polled after
// completion, which is what every combinator below uses internally so the
// "poll after ready is undefined behavior, and must fail loudly" rule in
// this holds without every combinator re-deriving it.
func Wrap[T any](poller func(cx poll.Context) poll.Poll[T]) Future[T] {
	g := &completedGuard[func(poll.Context) poll.Poll[T]]{inner: poller}
	return Func[T](func(cx poll.Context) poll.Poll[T] {
		if g.done {
			panic("future: Poll called after completion")
		}
		p := g.inner(cx)
		if p.IsReady() {
			g.done = true
		}
		return p
	})
}

// Map returns a Future that applies f to the value produced by inner.
func Map[T, U any](inner Future[T], f func(T) U) Future[U] {
	return Wrap(func(cx poll.Context) poll.Poll[U] {
		return poll.Map(inner.Poll(cx), f)
	})
}

// andThenState is the enum-style state machine backing Then: either still
// driving the first future, or driving the continuation it produced.
type andThenState int

const (
	andThenFirst andThenState = iota
	andThenSecond
)

// Then sequences two futures: once inner completes, f is called with its
// value to produce a second Future, which is then driven to completion.
// This is the future-shaped flat_map, generalized from a single
// element to a value.
func Then[T, U any](inner Future[T], f func(T) Future[U]) Future[U] {
	state := andThenFirst
	var second Future[U]

	return Wrap(func(cx poll.Context) poll.Poll[U] {
		if state == andThenFirst {
			p := inner.Poll(cx)
			if !p.IsReady() {
				return poll.Pending[U]()
			}
			second = f(p.Value())
			state = andThenSecond
		}
		return second.Poll(cx)
	})
}

// Join aggregates values from a collection of futures, polling every
// not-yet-ready input each round in a fixed order and completing once all
// have produced a value. Generalizes concurrent/future.Join from the
// teacher (which only dealt in interface{}) to homogeneous typed futures.
func Join[T any](inputs ...Future[T]) Future[[]T] {
	results := make([]T, len(inputs))
	done := make([]bool, len(inputs))
	remaining := len(inputs)

	return Wrap(func(cx poll.Context) poll.Poll[[]T] {
		for i, in := range inputs {
			if done[i] {
				continue
			}
			p := in.Poll(cx)
			if p.IsReady() {
				results[i] = p.Value()
				done[i] = true
				remaining--
			}
		}
		if remaining == 0 {
			return poll.Ready(results)
		}
		return poll.Pending[[]T]()
	})
}

// Pair is the output of Join2: two heterogeneous futures joined together.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Join2 joins two futures of possibly different output types, polling both
// in a fixed order every poll and completing once both are ready.
func Join2[A, B any](a Future[A], b Future[B]) Future[Pair[A, B]] {
	var (
		va           A
		vb           B
		aDone, bDone bool
	)
	return Wrap(func(cx poll.Context) poll.Poll[Pair[A, B]] {
		if !aDone {
			if p := a.Poll(cx); p.IsReady() {
				va = p.Value()
				aDone = true
			}
		}
		if !bDone {
			if p := b.Poll(cx); p.IsReady() {
				vb = p.Value()
				bDone = true
			}
		}
		if aDone && bDone {
			return poll.Ready(Pair[A, B]{First: va, Second: vb})
		}
		return poll.Pending[Pair[A, B]]()
	})
}

// Select polls every arm in order and completes with the first one that
// becomes ready; the rest are simply dropped (never polled again). If two
// arms are simultaneously ready within the same poll, the first one in
// argument order wins.
func Select[T any](arms ...Future[T]) Future[T] {
	live := make([]bool, len(arms))
	for i := range live {
		live[i] = true
	}

	return Wrap(func(cx poll.Context) poll.Poll[T] {
		for i, arm := range arms {
			if !live[i] {
				continue
			}
			if p := arm.Poll(cx); p.IsReady() {
				return p
			}
		}
		return poll.Pending[T]()
	})
}

// Wait blocks the calling goroutine until f completes, driving it on a
// dedicated local waker backed by a channel. This is the "Completeness
// termination" property: for any Future that completes in
// isolation, Wait returns its value in finite time.
func Wait[T any](f Future[T]) T {
	notify := make(chan struct{}, 1)
	w := poll.WakerFunc(func() {
		select {
		case notify <- struct{}{}:
		default:
		}
	})
	cx := poll.NewContext(w)

	for {
		p := f.Poll(cx)
		if p.IsReady() {
			return p.Value()
		}
		<-notify
	}
}
