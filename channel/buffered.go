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

	"github.com/corerun/corerun/internal/ring"
	"github.com/corerun/corerun/poll"
	"github.com/corerun/corerun/sink"
	"github.com/corerun/corerun/stream"
	"github.com/corerun/corerun/waker"
)

// boundedCore backs both Buffered(n) and, with unbounded==true, the
// Buffered-unbounded variant: a single-producer, single-consumer FIFO.
type boundedCore[T any] struct {
	mu         sync.Mutex
	buf        *ring.CircularBuffer[T]
	unbounded  bool
	senderDone bool
	recvDone   bool

	senderWaker waker.Atomic
	recvWaker   waker.Atomic
}

// Buffered creates a bounded FIFO pipe of capacity n: poll_send blocks
// (returns Pending) once the buffer is full, until the receiver drains at
// least one element.
func Buffered[T any](n int) (sink.Sink[T, Void], *Receiver[T]) {
	c := &boundedCore[T]{buf: ring.NewCircularBuffer[T](n)}
	return c.sender(), c.receiver()
}

// BufferedUnbounded creates an unbounded FIFO pipe: poll_send always
// succeeds immediately; memory grows with the backlog if the receiver
// falls behind.
func BufferedUnbounded[T any]() (sink.Sink[T, Void], *Receiver[T]) {
	c := &boundedCore[T]{buf: ring.NewCircularBuffer[T](0), unbounded: true}
	return c.sender(), c.receiver()
}

func (c *boundedCore[T]) sender() sink.Sink[T, Void] {
	return sink.Func[T, Void]{SendFn: c.pollSend, FlushFn: c.pollFlush, CloseFn: c.pollClose}
}

func (c *boundedCore[T]) receiver() *Receiver[T] {
	return &Receiver[T]{pollFn: c.pollRecv, cancelFn: c.cancelRecv}
}

func (c *boundedCore[T]) growLocked() {
	if c.buf.Cap() == 0 {
		grown := ring.NewCircularBuffer[T](8)
		c.buf = grown
		return
	}
	grown := ring.NewCircularBuffer[T](c.buf.Cap() * 2)
	for {
		v, ok := c.buf.PopFront()
		if !ok {
			break
		}
		grown.PushBack(v)
	}
	c.buf = grown
}

func (c *boundedCore[T]) pollSend(cx poll.Context, item T) poll.Poll[sink.Outcome[Void]] {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.recvDone {
		return poll.Ready(sink.Closed[Void]())
	}
	if c.buf.Full() {
		if c.unbounded {
			c.growLocked()
		} else {
			c.senderWaker.Register(cx.Waker())
			return poll.Pending[sink.Outcome[Void]]()
		}
	}
	c.buf.PushBack(item)
	c.recvWaker.Signal()
	return poll.Ready(sink.Success[Void]())
}

func (c *boundedCore[T]) pollFlush(cx poll.Context) poll.Poll[sink.Outcome[Void]] {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.recvDone {
		return poll.Ready(sink.Closed[Void]())
	}
	if !c.buf.Empty() {
		c.senderWaker.Register(cx.Waker())
		return poll.Pending[sink.Outcome[Void]]()
	}
	return poll.Ready(sink.Success[Void]())
}

func (c *boundedCore[T]) pollClose(poll.Context) poll.Poll[sink.Outcome[Void]] {
	c.mu.Lock()
	c.senderDone = true
	c.mu.Unlock()
	c.recvWaker.Signal()
	return poll.Ready(sink.Success[Void]())
}

func (c *boundedCore[T]) pollRecv(cx poll.Context) poll.Poll[stream.Option[T]] {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.buf.PopFront(); ok {
		c.senderWaker.Signal()
		return poll.Ready(stream.Some(v))
	}
	if c.senderDone {
		return poll.Ready(stream.None[T]())
	}
	c.recvWaker.Register(cx.Waker())
	return poll.Pending[stream.Option[T]]()
}

func (c *boundedCore[T]) cancelRecv() {
	c.mu.Lock()
	c.recvDone = true
	c.mu.Unlock()
	c.senderWaker.Signal()
}
