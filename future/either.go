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

package future

// Either holds exactly one of two alternatives, for callers that need to
// record *which* of two differently-typed values is present. Select, whose
// arms share one output type, returns the winning value itself rather than
// an Either.
type Either[A, B any] struct {
	isA  bool
	a    A
	b    B
}

// Left wraps the first alternative.
func Left[A, B any](a A) Either[A, B] { return Either[A, B]{isA: true, a: a} }

// Right wraps the second alternative.
func Right[A, B any](b B) Either[A, B] { return Either[A, B]{b: b} }

// IsLeft reports whether this Either holds the first alternative.
func (e Either[A, B]) IsLeft() bool { return e.isA }

// LeftValue returns the first alternative and true, or the zero value and false.
func (e Either[A, B]) LeftValue() (A, bool) { return e.a, e.isA }

// RightValue returns the second alternative and true, or the zero value and false.
func (e Either[A, B]) RightValue() (B, bool) { return e.b, !e.isA }
