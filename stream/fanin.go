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

// Merge interleaves N homogeneous streams in a fixed alternating poll order,
// tracking per-input exhaustion so the merged stream only terminates once
// every input has produced its terminal None. Covers both the "merge
// (2-/3-/4-ary)" and "merge_all (N-ary)" rows of the operator table: the
// specified difference between them is only which internal scheduling
// strategy backs a production system's implementation (round-robin either
// way), not the observable ordering.
func Merge[T any](ins ...Stream[T]) Stream[T] {
	done := make([]bool, len(ins))
	next := 0
	remaining := len(ins)

	return Wrap(func(cx poll.Context) poll.Poll[Option[T]] {
		if remaining == 0 {
			return poll.Ready(None[T]())
		}
		for i := 0; i < len(ins); i++ {
			idx := (next + i) % len(ins)
			if done[idx] {
				continue
			}
			p := ins[idx].PollNext(cx)
			if !p.IsReady() {
				continue
			}
			next = (idx + 1) % len(ins)
			o := p.Value()
			if !o.IsSome() {
				done[idx] = true
				remaining--
				if remaining == 0 {
					return poll.Ready(None[T]())
				}
				// Re-scan from the same rotation point for a live input.
				i = -1
				continue
			}
			return poll.Ready(o)
		}
		return poll.Pending[Option[T]]()
	})
}

// MergeAll is an alias for Merge, named for the N-ary fan-in case described
// separately in the operator table.
func MergeAll[T any](ins ...Stream[T]) Stream[T] { return Merge(ins...) }

// ZipAll pairs aligned elements across N homogeneous streams into a slice
// per round, completing as soon as any one input is exhausted; it never
// buffers past the current round's worth of pairing.
func ZipAll[T any](ins ...Stream[T]) Stream[[]T] {
	return Wrap(func(cx poll.Context) poll.Poll[Option[[]T]] {
		row := make([]T, len(ins))
		for i, in := range ins {
			p := in.PollNext(cx)
			if !p.IsReady() {
				return poll.Pending[Option[[]T]]()
			}
			o := p.Value()
			if !o.IsSome() {
				return poll.Ready(None[[]T]())
			}
			row[i] = o.Value()
		}
		return poll.Ready(Some(row))
	})
}

// Zip2 pairs elements of two (possibly differently typed) streams,
// completing as soon as either drains.
func Zip2[A, B any](a Stream[A], b Stream[B]) Stream[future.Pair[A, B]] {
	return Wrap(func(cx poll.Context) poll.Poll[Option[future.Pair[A, B]]] {
		pa := a.PollNext(cx)
		if !pa.IsReady() {
			return poll.Pending[Option[future.Pair[A, B]]]()
		}
		oa := pa.Value()
		if !oa.IsSome() {
			return poll.Ready(None[future.Pair[A, B]]())
		}

		pb := b.PollNext(cx)
		if !pb.IsReady() {
			return poll.Pending[Option[future.Pair[A, B]]]()
		}
		ob := pb.Value()
		if !ob.IsSome() {
			return poll.Ready(None[future.Pair[A, B]]())
		}

		return poll.Ready(Some(future.Pair[A, B]{First: oa.Value(), Second: ob.Value()}))
	})
}

// JoinAll emits a row holding every input's latest value whenever any one
// input produces, seeding unset slots with T's zero value until that input
// has produced at least once. It completes once every input has drained.
func JoinAll[T any](ins ...Stream[T]) Stream[[]T] {
	last := make([]T, len(ins))
	done := make([]bool, len(ins))
	remaining := len(ins)

	return Wrap(func(cx poll.Context) poll.Poll[Option[[]T]] {
		if remaining == 0 {
			return poll.Ready(None[[]T]())
		}
		for {
			produced := false
			for i, in := range ins {
				if done[i] {
					continue
				}
				p := in.PollNext(cx)
				if !p.IsReady() {
					continue
				}
				o := p.Value()
				if !o.IsSome() {
					done[i] = true
					remaining--
					continue
				}
				last[i] = o.Value()
				produced = true
			}
			if remaining == 0 {
				return poll.Ready(None[[]T]())
			}
			if produced {
				out := make([]T, len(last))
				copy(out, last)
				return poll.Ready(Some(out))
			}
			return poll.Pending[Option[[]T]]()
		}
	})
}

// Join2 is JoinAll's two-differently-typed-stream counterpart: it emits a
// Pair holding each side's latest value whenever either side produces, once
// both sides have produced at least once (no side is seeded with a zero
// value), and completes once both sides have drained.
func Join2[A, B any](a Stream[A], b Stream[B]) Stream[future.Pair[A, B]] {
	var (
		lastA        A
		lastB        B
		haveA, haveB bool
		doneA, doneB bool
	)

	return Wrap(func(cx poll.Context) poll.Poll[Option[future.Pair[A, B]]] {
		if doneA && doneB {
			return poll.Ready(None[future.Pair[A, B]]())
		}

		produced := false
		if !doneA {
			if p := a.PollNext(cx); p.IsReady() {
				o := p.Value()
				if !o.IsSome() {
					doneA = true
				} else {
					lastA = o.Value()
					haveA = true
					produced = true
				}
			}
		}
		if !doneB {
			if p := b.PollNext(cx); p.IsReady() {
				o := p.Value()
				if !o.IsSome() {
					doneB = true
				} else {
					lastB = o.Value()
					haveB = true
					produced = true
				}
			}
		}

		if doneA && doneB {
			return poll.Ready(None[future.Pair[A, B]]())
		}
		if produced && haveA && haveB {
			return poll.Ready(Some(future.Pair[A, B]{First: lastA, Second: lastB}))
		}
		return poll.Pending[Option[future.Pair[A, B]]]()
	})
}
