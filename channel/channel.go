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

// Package channel provides the Sink/Stream boundary between producers and
// consumers: five pipe variants (Unbuffered, Buffered, Shared, Passthrough,
// and their unbounded counterparts) each exposing a Sender (a sink.Sink)
// and one or more Receivers (stream.Stream).
//
// None of these channels carry a domain send error; the only failure mode
// a Sender ever reports is sink.Closed, so every Outcome in this package is
// parameterized over an empty struct rather than a concrete error type.
package channel

import (
	"github.com/corerun/corerun/poll"
	"github.com/corerun/corerun/stream"
)

// Void is the (uninhabited in practice) failure type for channel Senders:
// channels only ever fail with sink.Closed, never a domain error.
type Void = struct{}

// Receiver is the Stream half of every channel variant in this package,
// additionally exposing Cancel: dropping interest in the channel early. On
// an Unbuffered or Buffered pipe this makes the Sender fail poll_send with
// Closed; on a Shared pipe that happens once every Receiver has cancelled;
// a Passthrough Sender keeps accepting sends after a Receiver cancels.
type Receiver[T any] struct {
	pollFn   func(cx poll.Context) poll.Poll[stream.Option[T]]
	cancelFn func()
}

// PollNext implements stream.Stream.
func (r *Receiver[T]) PollNext(cx poll.Context) poll.Poll[stream.Option[T]] { return r.pollFn(cx) }

// Cancel stops this receiver from ever observing another element. Safe to
// call more than once.
func (r *Receiver[T]) Cancel() { r.cancelFn() }
