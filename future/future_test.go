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

package future_test

import (
	"github.com/corerun/corerun/future"
	"github.com/corerun/corerun/poll"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

// stepFuture becomes ready with value only after 'after' prior polls have
// returned Pending, letting tests exercise a combinator's Pending path
// without a real goroutine or timer behind it.
type stepFuture[T any] struct {
	after int
	value T
	polls int
}

func (f *stepFuture[T]) Poll(poll.Context) poll.Poll[T] {
	f.polls++
	if f.polls <= f.after {
		return poll.Pending[T]()
	}
	return poll.Ready(f.value)
}

func noWakerContext() poll.Context { return poll.NewContext(nil) }

var _ = Describe("Ready", func() {
	It("is Ready on the very first poll", func() {
		p := future.Ready(7).Poll(noWakerContext())
		Expect(p.IsReady()).Should(BeTrue())
		Expect(p.Value()).Should(Equal(7))
	})
})

var _ = Describe("Wrap", func() {
	It("panics if polled again after completion", func() {
		f := future.Wrap(func(poll.Context) poll.Poll[int] { return poll.Ready(1) })
		cx := noWakerContext()
		Expect(f.Poll(cx).IsReady()).Should(BeTrue())
		Expect(func() { f.Poll(cx) }).Should(Panic())
	})
})

var _ = Describe("Map", func() {
	It("transforms the value once the inner future is ready", func() {
		inner := &stepFuture[int]{after: 1, value: 10}
		mapped := future.Map[int, int](inner, func(n int) int { return n * 3 })
		cx := noWakerContext()

		Expect(mapped.Poll(cx).IsReady()).Should(BeFalse())
		p := mapped.Poll(cx)
		Expect(p.IsReady()).Should(BeTrue())
		Expect(p.Value()).Should(Equal(30))
	})
})

var _ = Describe("Then", func() {
	It("sequences a continuation produced from the first value", func() {
		first := &stepFuture[int]{after: 1, value: 4}
		chained := future.Then(first, func(n int) future.Future[string] {
			return future.Ready("n=" + string(rune('0'+n)))
		})
		cx := noWakerContext()

		Expect(chained.Poll(cx).IsReady()).Should(BeFalse())
		p := chained.Poll(cx)
		Expect(p.IsReady()).Should(BeTrue())
		Expect(p.Value()).Should(Equal("n=4"))
	})
})

var _ = Describe("Join", func() {
	It("completes once every input is ready, preserving argument order", func() {
		a := &stepFuture[int]{after: 0, value: 1}
		b := &stepFuture[int]{after: 2, value: 2}
		c := &stepFuture[int]{after: 1, value: 3}
		joined := future.Join[int](a, b, c)
		cx := noWakerContext()

		Expect(joined.Poll(cx).IsReady()).Should(BeFalse())
		Expect(joined.Poll(cx).IsReady()).Should(BeFalse())
		p := joined.Poll(cx)
		Expect(p.IsReady()).Should(BeTrue())
		Expect(p.Value()).Should(Equal([]int{1, 2, 3}))
	})

	It("is immediately ready with no inputs", func() {
		p := future.Join[int]().Poll(noWakerContext())
		Expect(p.IsReady()).Should(BeTrue())
		Expect(p.Value()).Should(Equal([]int{}))
	})
})

var _ = Describe("Join2", func() {
	It("pairs heterogeneous futures once both are ready", func() {
		a := &stepFuture[int]{after: 1, value: 1}
		b := &stepFuture[string]{after: 0, value: "x"}
		joined := future.Join2[int, string](a, b)
		cx := noWakerContext()

		Expect(joined.Poll(cx).IsReady()).Should(BeFalse())
		p := joined.Poll(cx)
		Expect(p.IsReady()).Should(BeTrue())
		Expect(p.Value()).Should(Equal(future.Pair[int, string]{First: 1, Second: "x"}))
	})
})

var _ = Describe("Select", func() {
	It("resolves with the first arm in order that is ready on a given poll", func() {
		a := &stepFuture[int]{after: 1, value: 1}
		b := &stepFuture[int]{after: 0, value: 2}
		selected := future.Select[int](a, b)
		cx := noWakerContext()

		p := selected.Poll(cx)
		Expect(p.IsReady()).Should(BeTrue())
		Expect(p.Value()).Should(Equal(2))
	})

	It("prefers the earlier argument when two arms are ready on the same poll", func() {
		a := &stepFuture[int]{after: 0, value: 1}
		b := &stepFuture[int]{after: 0, value: 2}
		selected := future.Select[int](a, b)

		p := selected.Poll(noWakerContext())
		Expect(p.Value()).Should(Equal(1))
	})
})

var _ = Describe("Wait", func() {
	It("blocks until a future that completes asynchronously produces its value", func() {
		f := future.FromChannel(delayedChannel(42))
		Expect(future.Wait(f)).Should(Equal(42))
	})
})

func delayedChannel(v int) <-chan int {
	ch := make(chan int, 1)
	go func() { ch <- v }()
	return ch
}
