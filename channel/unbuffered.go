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

package channel

import (
	"sync"

	"github.com/corerun/corerun/poll"
	"github.com/corerun/corerun/sink"
	"github.com/corerun/corerun/stream"
	"github.com/corerun/corerun/waker"
)

// unbufferedCore is the rendezvous point shared by an Unbuffered channel's
// single Sender and single Receiver: capacity exactly one, and that one
// slot must be drained before another send is accepted.
type unbufferedCore[T any] struct {
	mu sync.Mutex

	hasValue   bool
	value      T
	senderDone bool // sender closed/cancelled
	recvDone   bool // receiver cancelled

	senderWaker waker.Atomic
	recvWaker   waker.Atomic
}

// Unbuffered creates a rendezvous pipe with a single hand-off slot: a send
// is accepted only once the previous value has been drained by the
// receiver. PollSend does not wait for the receiver to take the value it
// stores; PollFlush is what waits for that.
func Unbuffered[T any]() (sink.Sink[T, Void], *Receiver[T]) {
	c := &unbufferedCore[T]{}
	return sink.Func[T, Void]{
			SendFn:  c.pollSend,
			FlushFn: c.pollFlush,
			CloseFn: c.pollClose,
		}, &Receiver[T]{pollFn: c.pollRecv, cancelFn: c.cancelRecv}
}

func (c *unbufferedCore[T]) cancelRecv() {
	c.mu.Lock()
	c.recvDone = true
	c.mu.Unlock()
	c.senderWaker.Signal()
}

func (c *unbufferedCore[T]) pollSend(cx poll.Context, item T) poll.Poll[sink.Outcome[Void]] {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.recvDone {
		return poll.Ready(sink.Closed[Void]())
	}
	if c.hasValue {
		c.senderWaker.Register(cx.Waker())
		return poll.Pending[sink.Outcome[Void]]()
	}
	c.value = item
	c.hasValue = true
	c.recvWaker.Signal()
	return poll.Ready(sink.Success[Void]())
}

func (c *unbufferedCore[T]) pollFlush(cx poll.Context) poll.Poll[sink.Outcome[Void]] {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.recvDone {
		return poll.Ready(sink.Closed[Void]())
	}
	if c.hasValue {
		c.senderWaker.Register(cx.Waker())
		return poll.Pending[sink.Outcome[Void]]()
	}
	return poll.Ready(sink.Success[Void]())
}

func (c *unbufferedCore[T]) pollClose(poll.Context) poll.Poll[sink.Outcome[Void]] {
	c.mu.Lock()
	c.senderDone = true
	c.mu.Unlock()
	c.recvWaker.Signal()
	return poll.Ready(sink.Success[Void]())
}

func (c *unbufferedCore[T]) pollRecv(cx poll.Context) poll.Poll[stream.Option[T]] {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.hasValue {
		v := c.value
		var zero T
		c.value = zero
		c.hasValue = false
		c.senderWaker.Signal()
		return poll.Ready(stream.Some(v))
	}
	if c.senderDone {
		return poll.Ready(stream.None[T]())
	}
	c.recvWaker.Register(cx.Waker())
	return poll.Pending[stream.Option[T]]()
}
