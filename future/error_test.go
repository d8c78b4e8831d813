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
	"errors"

	"github.com/corerun/corerun/future"
	"github.com/corerun/corerun/result"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var boom = errors.New("boom")

var _ = Describe("TryMap", func() {
	It("applies f to a success and lets it fail the Result", func() {
		inner := future.Ready(result.Ok(2))
		mapped := future.TryMap(inner, func(n int) (int, error) {
			if n == 2 {
				return 0, boom
			}
			return n, nil
		})
		r := future.Wait(mapped)
		Expect(r.IsErr()).Should(BeTrue())
		Expect(r.Err()).Should(MatchError(boom))
	})

	It("short-circuits an already-failing Result", func() {
		inner := future.Ready(result.Err[int](boom))
		mapped := future.TryMap(inner, func(n int) (int, error) { return n * 2, nil })
		r := future.Wait(mapped)
		Expect(r.IsErr()).Should(BeTrue())
	})
})

var _ = Describe("MapValue and MapError", func() {
	It("MapValue only touches a success value", func() {
		mapped := future.MapValue(future.Ready(result.Ok(21)), func(n int) int { return n * 2 })
		Expect(future.Wait(mapped).Value()).Should(Equal(42))
	})

	It("MapError only touches a failure reason", func() {
		mapped := future.MapError(future.Ready(result.Err[int](boom)), func(err error) error {
			return errors.New("wrapped: " + err.Error())
		})
		Expect(future.Wait(mapped).Err()).Should(MatchError("wrapped: boom"))
	})
})

var _ = Describe("CatchError and ReplaceError", func() {
	It("CatchError substitutes the recover callback's value on failure", func() {
		f := future.CatchError(future.Ready(result.Err[int](boom)), func(error) int { return -1 })
		Expect(future.Wait(f)).Should(Equal(-1))
	})

	It("CatchError leaves a success untouched", func() {
		f := future.CatchError(future.Ready(result.Ok(5)), func(error) int { return -1 })
		Expect(future.Wait(f)).Should(Equal(5))
	})

	It("ReplaceError substitutes a fixed fallback", func() {
		f := future.ReplaceError(future.Ready(result.Err[int](boom)), 99)
		Expect(future.Wait(f)).Should(Equal(99))
	})
})

var _ = Describe("AssertNoError", func() {
	It("unwraps a success transparently", func() {
		f := future.AssertNoError(future.Ready(result.Ok("ok")))
		Expect(future.Wait(f)).Should(Equal("ok"))
	})

	It("panics loudly on a failure", func() {
		f := future.AssertNoError(future.Ready(result.Err[string](boom)))
		cx := noWakerContext()
		Expect(func() { f.Poll(cx) }).Should(Panic())
	})
})

var _ = Describe("FlattenResult", func() {
	It("propagates the inner layer's failure", func() {
		nested := future.Ready(result.Ok(result.Err[int](boom)))
		flat := future.FlattenResult(nested)
		r := future.Wait(flat)
		Expect(r.IsErr()).Should(BeTrue())
		Expect(r.Err()).Should(MatchError(boom))
	})

	It("propagates the outer layer's failure first", func() {
		nested := future.Ready(result.Err[result.Result[int]](boom))
		flat := future.FlattenResult(nested)
		Expect(future.Wait(flat).Err()).Should(MatchError(boom))
	})

	It("collapses a doubly-successful Result", func() {
		nested := future.Ready(result.Ok(result.Ok(7)))
		flat := future.FlattenResult(nested)
		Expect(future.Wait(flat).Value()).Should(Equal(7))
	})
})

var _ = Describe("FromChannel and ToChannel", func() {
	It("FromChannel completes with the first value sent", func() {
		ch := make(chan int, 1)
		ch <- 5
		Expect(future.Wait(future.FromChannel(ch))).Should(Equal(5))
	})

	It("FromChannel resolves to the zero value when the channel closes unsent", func() {
		ch := make(chan int)
		close(ch)
		Expect(future.Wait(future.FromChannel(ch))).Should(Equal(0))
	})

	It("ToChannel delivers the future's value on a buffered, then-closed channel", func() {
		out := future.ToChannel(future.Ready(11))
		v, ok := <-out
		Expect(ok).Should(BeTrue())
		Expect(v).Should(Equal(11))
		_, ok = <-out
		Expect(ok).Should(BeFalse())
	})
})
