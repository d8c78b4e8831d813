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

package result_test

import (
	"errors"

	"github.com/corerun/corerun/result"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var boom = errors.New("boom")

var _ = Describe("Result", func() {
	It("Ok carries a value and no error", func() {
		r := result.Ok(42)
		Expect(r.IsErr()).Should(BeFalse())
		Expect(r.Value()).Should(Equal(42))
		Expect(r.Err()).Should(BeNil())
	})

	It("Err carries an error and the type's zero value", func() {
		r := result.Err[int](boom)
		Expect(r.IsErr()).Should(BeTrue())
		Expect(r.Value()).Should(Equal(0))
		Expect(r.Err()).Should(MatchError(boom))
	})

	It("Err panics on a nil error", func() {
		Expect(func() { result.Err[int](nil) }).Should(Panic())
	})

	It("Unwrap mirrors the native two-value idiom", func() {
		v, err := result.Ok("hi").Unwrap()
		Expect(v).Should(Equal("hi"))
		Expect(err).Should(BeNil())

		v, err = result.Err[string](boom).Unwrap()
		Expect(v).Should(Equal(""))
		Expect(err).Should(MatchError(boom))
	})

	It("Map transforms only a success value", func() {
		doubled := result.Map(result.Ok(21), func(n int) int { return n * 2 })
		Expect(doubled.Value()).Should(Equal(42))

		stillErr := result.Map(result.Err[int](boom), func(n int) int { return n * 2 })
		Expect(stillErr.IsErr()).Should(BeTrue())
		Expect(stillErr.Err()).Should(MatchError(boom))
	})

	It("MapErr transforms only a failure reason", func() {
		wrapped := result.MapErr(result.Err[int](boom), func(err error) error {
			return errors.New("wrapped: " + err.Error())
		})
		Expect(wrapped.Err()).Should(MatchError("wrapped: boom"))

		untouched := result.MapErr(result.Ok(7), func(err error) error { return boom })
		Expect(untouched.Value()).Should(Equal(7))
		Expect(untouched.IsErr()).Should(BeFalse())
	})
})
