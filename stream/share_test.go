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
	"github.com/corerun/corerun/stream"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Hub (Multicast/Share)", func() {
	It("delivers every element to every subscriber in the same order, with no replay for a pre-existing subscriber", func() {
		hub := stream.Share[int](stream.FromSlice([]int{1, 2, 3}), stream.ReplayNone, 0)
		subA := hub.Subscribe()
		subB := hub.Subscribe()

		Expect(drainAll[int](subA)).Should(Equal([]int{1, 2, 3}))
		Expect(drainAll[int](subB)).Should(Equal([]int{1, 2, 3}))
	})

	It("gives a late subscriber nothing under ReplayNone once the source has already completed", func() {
		hub := stream.Share[int](stream.FromSlice([]int{1, 2}), stream.ReplayNone, 0)
		first := hub.Subscribe()
		Expect(drainAll[int](first)).Should(Equal([]int{1, 2}))

		late := hub.Subscribe()
		Expect(drainAll[int](late)).Should(BeEmpty())
	})

	It("replays the single latest element to a late subscriber under ReplayLatest", func() {
		hub := stream.Share[int](stream.FromSlice([]int{1, 2, 3}), stream.ReplayLatest, 0)
		first := hub.Subscribe()
		Expect(drainAll[int](first)).Should(Equal([]int{1, 2, 3}))

		late := hub.Subscribe()
		Expect(drainAll[int](late)).Should(Equal([]int{3}))
	})

	It("replays every element under ReplayAll", func() {
		hub := stream.Multicast[int](stream.FromSlice([]int{1, 2, 3}), stream.ReplayAll, 0)
		first := hub.Subscribe()
		Expect(drainAll[int](first)).Should(Equal([]int{1, 2, 3}))

		late := hub.Subscribe()
		Expect(drainAll[int](late)).Should(Equal([]int{1, 2, 3}))
	})

	It("replays only the last N elements under ReplayLastN", func() {
		hub := stream.Multicast[int](stream.FromSlice([]int{1, 2, 3, 4}), stream.ReplayLastN, 2)
		first := hub.Subscribe()
		Expect(drainAll[int](first)).Should(Equal([]int{1, 2, 3, 4}))

		late := hub.Subscribe()
		Expect(drainAll[int](late)).Should(Equal([]int{3, 4}))
	})

	It("Cancel stops a subscriber from observing any further elements", func() {
		hub := stream.Share[int](stream.FromSlice([]int{1, 2, 3}), stream.ReplayNone, 0)
		sub := hub.Subscribe()
		cx := noWakerContext()

		p := sub.PollNext(cx)
		Expect(p.Value().Value()).Should(Equal(1))

		sub.Cancel()
		Expect(sub.PollNext(cx).Value().IsSome()).Should(BeFalse())
	})
})
