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
	"github.com/corerun/corerun/future"
	"github.com/corerun/corerun/stream"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Scan", func() {
	It("emits the running accumulator after every element", func() {
		s := stream.Scan(stream.FromSlice([]int{1, 2, 3, 4}), 0, func(acc, n int) int { return acc + n })
		Expect(drainAll(s)).Should(Equal([]int{1, 3, 6, 10}))
	})
})

var _ = Describe("Reduce", func() {
	It("folds every element into a single final value", func() {
		f := stream.Reduce(stream.FromSlice([]int{1, 2, 3, 4}), 0, func(acc, n int) int { return acc + n })
		Expect(future.Wait(f)).Should(Equal(10))
	})
})

var _ = Describe("Count", func() {
	It("resolves to the number of elements produced", func() {
		Expect(future.Wait(stream.Count(stream.FromSlice([]int{1, 2, 3})))).Should(Equal(3))
	})
})

var _ = Describe("Collect", func() {
	It("resolves to every element in order", func() {
		Expect(future.Wait(stream.Collect(stream.FromSlice([]int{1, 2, 3})))).Should(Equal([]int{1, 2, 3}))
	})
})

var _ = Describe("First", func() {
	It("resolves to the first element matching the predicate", func() {
		f := stream.First(stream.FromSlice([]int{1, 3, 4, 5}), func(n int) bool { return n%2 == 0 })
		Expect(future.Wait(f)).Should(Equal(4))
	})

	It("resolves to the zero value if the stream drains with no match", func() {
		f := stream.First(stream.FromSlice([]int{1, 3, 5}), func(n int) bool { return n%2 == 0 })
		Expect(future.Wait(f)).Should(Equal(0))
	})
})

var _ = Describe("ForEach", func() {
	It("invokes the callback for every element and resolves on completion", func() {
		var seen []int
		f := stream.ForEach(stream.FromSlice([]int{1, 2, 3}), func(n int) { seen = append(seen, n) })
		future.Wait(f)
		Expect(seen).Should(Equal([]int{1, 2, 3}))
	})
})

var _ = Describe("the prime/pronic worked pipeline", func() {
	It("filters primes, chunks them, multiplies, and finds the first pronic product", func() {
		isPrime := func(n int) bool {
			if n < 2 {
				return false
			}
			for d := 2; d*d <= n; d++ {
				if n%d == 0 {
					return false
				}
			}
			return true
		}
		isPronic := func(n int) bool {
			for k := 0; k*(k+1) <= n; k++ {
				if k*(k+1) == n {
					return true
				}
			}
			return false
		}

		primes := stream.Filter(stream.Range(0), isPrime)
		chunks := stream.Buffer(primes, 4)
		products := stream.Map(chunks, func(chunk []int) int {
			return chunk[0] * chunk[1] * chunk[3]
		})
		result := stream.First(products, isPronic)

		// The first four primes are 2, 3, 5, 7: 2*3*7 = 42 = 6*7, pronic,
		// so the pipeline resolves on the very first chunk.
		Expect(future.Wait(result)).Should(Equal(42))
	})
})
