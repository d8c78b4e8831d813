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

package stream_test

import (
	"github.com/corerun/corerun/poll"
	"github.com/corerun/corerun/stream"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

// scripted replays a fixed sequence of poll results verbatim, one per call,
// bypassing the terminal-guard Wrap normally installs. Used to pin down
// exact interleavings of Pending/Ready that a Stream built from FromSlice
// alone can't express.
func scripted[T any](steps ...poll.Poll[stream.Option[T]]) stream.Stream[T] {
	i := 0
	return stream.Func[T](func(poll.Context) poll.Poll[stream.Option[T]] {
		if i >= len(steps) {
			panic("scripted: ran out of steps")
		}
		s := steps[i]
		i++
		return s
	})
}

func readyStep[T any](v T) poll.Poll[stream.Option[T]] { return poll.Ready(stream.Some(v)) }
func noneStep[T any]() poll.Poll[stream.Option[T]]     { return poll.Ready(stream.None[T]()) }
func pendingStep[T any]() poll.Poll[stream.Option[T]]  { return poll.Pending[stream.Option[T]]() }

var _ = Describe("FlatMap", func() {
	It("drains each inner stream to exhaustion before resuming the outer stream", func() {
		s := stream.FlatMap(stream.FromSlice([]int{1, 2}), func(n int) stream.Stream[int] {
			return stream.RangeN(n*10, 2)
		})
		Expect(drainAll(s)).Should(Equal([]int{10, 11, 20, 21}))
	})
})

var _ = Describe("Flatten", func() {
	It("collapses a stream of streams in order", func() {
		outer := stream.FromSlice([]stream.Stream[int]{
			stream.FromSlice([]int{1, 2}),
			stream.FromSlice([]int{3}),
		})
		Expect(drainAll(stream.Flatten[int](outer))).Should(Equal([]int{1, 2, 3}))
	})
})

var _ = Describe("SwitchToLatest", func() {
	It("abandons a still-running inner stream as soon as outer produces a new one", func() {
		outer := scripted[string](
			readyStep("A"),   // outer call 1: new item -> inner = innerA
			pendingStep[string](), // outer call 2: no new item yet -> poll innerA once
			readyStep("B"),   // outer call 3: new item -> inner = innerB, innerA abandoned
			pendingStep[string](), // outer call 4: poll innerB once
			pendingStep[string](), // outer call 5: poll innerB again
			noneStep[string](),     // outer call 6: outer exhausted
		)

		innerA := scripted[int](readyStep(1), readyStep(2), readyStep(3))
		innerB := scripted[int](readyStep(10), readyStep(11), noneStep[int]())

		assigned := map[string]stream.Stream[int]{"A": innerA, "B": innerB}
		s := stream.SwitchToLatest[string, int](outer, func(tag string) stream.Stream[int] {
			return assigned[tag]
		})

		// innerA would have produced 1, 2, 3, but only its first element (1)
		// is ever observed before B preempts it.
		Expect(drainAll(s)).Should(Equal([]int{1, 10, 11}))
	})
})
