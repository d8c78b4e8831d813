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

// Package stream implements the lazy asynchronous sequence half of the poll
// protocol, and the ~90-operator combinator surface built on top of it:
// map/filter/flat_map, the fan-in and fan-out family (merge, zip, join,
// multicast, share), gating operators (buffer, prefix, drop), and the
// terminal consumers (collect, reduce, first) that turn a Stream into a
// future.Future.
package stream

import (
	"github.com/corerun/corerun/poll"
)

// Option is the value wrapped by Stream's Poll: Some(v) for an element,
// None for the permanent terminal signal. It plays the role of Stream's
// Poll<Option<T>> carried type from the specification.
type Option[T any] struct {
	value T
	some  bool
}

// Some wraps a present element.
func Some[T any](v T) Option[T] { return Option[T]{value: v, some: true} }

// None is the terminal "no more elements" marker.
func None[T any]() Option[T] { return Option[T]{} }

// IsSome reports whether this Option carries an element.
func (o Option[T]) IsSome() bool { return o.some }

// Value returns the element, or the zero value of T if this is None.
func (o Option[T]) Value() T { return o.value }

// A Stream is a lazy asynchronous sequence. PollNext must never block;
// returning Pending requires having arranged a wakeup first. Once PollNext
// has returned Ready(None), it is terminal: polling again is undefined
// behavior, detected and rejected by every combinator built with Wrap.
type Stream[T any] interface {
	PollNext(cx poll.Context) poll.Poll[Option[T]]
}

// Func adapts a plain poll function to the Stream interface.
type Func[T any] func(cx poll.Context) poll.Poll[Option[T]]

// PollNext implements Stream.
func (f Func[T]) PollNext(cx poll.Context) poll.Poll[Option[T]] { return f(cx) }

// Wrap guards a raw PollNext function so that calling it again after a
// Ready(None) terminal panics, centralizing the "polling after the stream's
// terminal state is undefined behavior" rule.
func Wrap[T any](poller func(cx poll.Context) poll.Poll[Option[T]]) Stream[T] {
	done := false
	return Func[T](func(cx poll.Context) poll.Poll[Option[T]] {
		if done {
			panic("stream: PollNext called after terminal None")
		}
		p := poller(cx)
		if p.IsReady() && !p.Value().IsSome() {
			done = true
		}
		return p
	})
}

// FromSlice yields every element of items in order, then terminates.
func FromSlice[T any](items []T) Stream[T] {
	i := 0
	return Wrap(func(poll.Context) poll.Poll[Option[T]] {
		if i >= len(items) {
			return poll.Ready(None[T]())
		}
		v := items[i]
		i++
		return poll.Ready(Some(v))
	})
}

// Range yields start, start+1, start+2, ... forever. It is the "sequence(0..)"
// generator used throughout the specification's worked examples.
func Range(start int) Stream[int] {
	n := start
	return Wrap(func(poll.Context) poll.Poll[Option[int]] {
		v := n
		n++
		return poll.Ready(Some(v))
	})
}

// RangeN yields start, start+1, ..., start+count-1, then terminates.
func RangeN(start, count int) Stream[int] {
	n := start
	end := start + count
	return Wrap(func(poll.Context) poll.Poll[Option[int]] {
		if n >= end {
			return poll.Ready(None[int]())
		}
		v := n
		n++
		return poll.Ready(Some(v))
	})
}

// Empty yields no elements and terminates immediately.
func Empty[T any]() Stream[T] {
	return Wrap(func(poll.Context) poll.Poll[Option[T]] {
		return poll.Ready(None[T]())
	})
}

// Map is eager: it calls f only on a Some result, and passes Pending or the
// terminal None straight through.
func Map[T, U any](inner Stream[T], f func(T) U) Stream[U] {
	return Wrap(func(cx poll.Context) poll.Poll[Option[U]] {
		p := inner.PollNext(cx)
		if !p.IsReady() {
			return poll.Pending[Option[U]]()
		}
		o := p.Value()
		if !o.IsSome() {
			return poll.Ready(None[U]())
		}
		return poll.Ready(Some(f(o.Value())))
	})
}

// Filter loops internally, re-polling inner on a predicate miss, until
// either a matching element, Pending, or the terminal None is produced.
func Filter[T any](inner Stream[T], pred func(T) bool) Stream[T] {
	return Wrap(func(cx poll.Context) poll.Poll[Option[T]] {
		for {
			p := inner.PollNext(cx)
			if !p.IsReady() {
				return poll.Pending[Option[T]]()
			}
			o := p.Value()
			if !o.IsSome() {
				return poll.Ready(None[T]())
			}
			if pred(o.Value()) {
				return poll.Ready(o)
			}
		}
	})
}

// CompactMap is Filter and Map fused: f returns (value, true) to keep an
// element (transformed) or (_, false) to skip it, looping until a kept
// element, Pending, or None.
func CompactMap[T, U any](inner Stream[T], f func(T) (U, bool)) Stream[U] {
	return Wrap(func(cx poll.Context) poll.Poll[Option[U]] {
		for {
			p := inner.PollNext(cx)
			if !p.IsReady() {
				return poll.Pending[Option[U]]()
			}
			o := p.Value()
			if !o.IsSome() {
				return poll.Ready(None[U]())
			}
			if v, ok := f(o.Value()); ok {
				return poll.Ready(Some(v))
			}
		}
	})
}

// RemoveDuplicates keeps the last emitted element and loops past any
// subsequent equal element, using eq to compare.
func RemoveDuplicates[T any](inner Stream[T], eq func(a, b T) bool) Stream[T] {
	var (
		have bool
		last T
	)
	return Wrap(func(cx poll.Context) poll.Poll[Option[T]] {
		for {
			p := inner.PollNext(cx)
			if !p.IsReady() {
				return poll.Pending[Option[T]]()
			}
			o := p.Value()
			if !o.IsSome() {
				return poll.Ready(None[T]())
			}
			v := o.Value()
			if have && eq(last, v) {
				continue
			}
			have = true
			last = v
			return poll.Ready(Some(v))
		}
	})
}

// ReplaceEmpty yields v exactly once, then terminates, if and only if inner
// produces Ready(None) on its very first poll. Otherwise inner's own
// sequence passes through untouched.
func ReplaceEmpty[T any](inner Stream[T], v T) Stream[T] {
	const (
		stateStart = iota
		stateReplacedOnce
		statePassthrough
	)
	state := stateStart

	return Wrap(func(cx poll.Context) poll.Poll[Option[T]] {
		switch state {
		case stateReplacedOnce:
			state = statePassthrough
			return poll.Ready(None[T]())
		case statePassthrough:
			return inner.PollNext(cx)
		}

		p := inner.PollNext(cx)
		if !p.IsReady() {
			return poll.Pending[Option[T]]()
		}
		if !p.Value().IsSome() {
			state = stateReplacedOnce
			return poll.Ready(Some(v))
		}
		state = statePassthrough
		return p
	})
}
