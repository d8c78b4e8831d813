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

package ring_test

import (
	"github.com/corerun/corerun/internal/ring"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("CircularBuffer", func() {
	It("starts empty with the requested capacity", func() {
		c := ring.NewCircularBuffer[int](3)
		Expect(c.Cap()).Should(Equal(3))
		Expect(c.Len()).Should(Equal(0))
		Expect(c.Empty()).Should(BeTrue())
		Expect(c.Full()).Should(BeFalse())
	})

	It("wraps around the backing array across PushBack/PopFront cycles", func() {
		c := ring.NewCircularBuffer[int](2)
		c.PushBack(1)
		c.PushBack(2)
		Expect(c.Full()).Should(BeTrue())

		v, ok := c.PopFront()
		Expect(ok).Should(BeTrue())
		Expect(v).Should(Equal(1))

		c.PushBack(3)
		v, ok = c.PopFront()
		Expect(ok).Should(BeTrue())
		Expect(v).Should(Equal(2))

		v, ok = c.PopFront()
		Expect(ok).Should(BeTrue())
		Expect(v).Should(Equal(3))

		_, ok = c.PopFront()
		Expect(ok).Should(BeFalse())
	})

	It("panics on PushBack past capacity", func() {
		c := ring.NewCircularBuffer[int](1)
		c.PushBack(1)
		Expect(func() { c.PushBack(2) }).Should(Panic())
	})

	It("Front peeks without removing", func() {
		c := ring.NewCircularBuffer[int](2)
		c.PushBack(1)
		v, ok := c.Front()
		Expect(ok).Should(BeTrue())
		Expect(v).Should(Equal(1))
		Expect(c.Len()).Should(Equal(1))
	})

	It("Snapshot returns elements oldest-first without draining", func() {
		c := ring.NewCircularBuffer[int](3)
		c.PushBack(1)
		c.PushBack(2)
		Expect(c.Snapshot()).Should(Equal([]int{1, 2}))
		Expect(c.Len()).Should(Equal(2))
	})

	It("PushEvict drops the oldest element once full", func() {
		c := ring.NewCircularBuffer[int](2)
		c.PushBack(1)
		c.PushBack(2)

		evicted, didEvict := c.PushEvict(3)
		Expect(didEvict).Should(BeTrue())
		Expect(evicted).Should(Equal(1))
		Expect(c.Snapshot()).Should(Equal([]int{2, 3}))

		fresh := ring.NewCircularBuffer[int](2)
		_, didEvict = fresh.PushEvict(9)
		Expect(didEvict).Should(BeFalse())
	})
})
