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

// Shared is a multi-producer, multi-consumer pipe: any number of Senders
// and Receivers obtained from NewSender/NewReceiver may send and receive
// concurrently. Fairness across producers or consumers is not guaranteed,
// but a single producer's own sends are never reordered relative to each
// other.
type Shared[T any] struct {
	mu          sync.Mutex
	buf         *ring.CircularBuffer[T]
	unbounded   bool
	senderRefs  int
	recvRefs    int
	senderDone  bool // every Sender has closed
	recvDone    bool // every Receiver has cancelled

	sendWakers waker.Queue
	recvWakers waker.Queue
}

// NewShared creates a bounded MPMC pipe of capacity n.
func NewShared[T any](n int) *Shared[T] {
	return &Shared[T]{buf: ring.NewCircularBuffer[T](n)}
}

// NewSharedUnbounded creates an unbounded MPMC pipe.
func NewSharedUnbounded[T any]() *Shared[T] {
	return &Shared[T]{buf: ring.NewCircularBuffer[T](0), unbounded: true}
}

// NewSender returns a new Sink handle onto this pipe; the pipe is not
// considered closed to receivers until every Sender obtained this way has
// had PollClose called on it.
func (c *Shared[T]) NewSender() sink.Sink[T, Void] {
	c.mu.Lock()
	c.senderRefs++
	c.mu.Unlock()
	closed := false
	return sink.Func[T, Void]{
		SendFn: c.pollSend,
		FlushFn: c.pollFlush,
		CloseFn: func(cx poll.Context) poll.Poll[sink.Outcome[Void]] {
			if !closed {
				closed = true
				c.senderClosed()
			}
			return poll.Ready(sink.Success[Void]())
		},
	}
}

// NewReceiver returns a new Receiver handle onto this pipe; the pipe stops
// accepting sends once every Receiver obtained this way has cancelled.
func (c *Shared[T]) NewReceiver() *Receiver[T] {
	c.mu.Lock()
	c.recvRefs++
	c.mu.Unlock()
	cancelled := false
	return &Receiver[T]{
		pollFn: c.pollRecv,
		cancelFn: func() {
			if !cancelled {
				cancelled = true
				c.receiverCancelled()
			}
		},
	}
}

func (c *Shared[T]) senderClosed() {
	c.mu.Lock()
	c.senderRefs--
	done := c.senderRefs == 0
	if done {
		c.senderDone = true
	}
	c.mu.Unlock()
	if done {
		c.recvWakers.Broadcast()
	}
}

func (c *Shared[T]) receiverCancelled() {
	c.mu.Lock()
	c.recvRefs--
	done := c.recvRefs == 0
	if done {
		c.recvDone = true
	}
	c.mu.Unlock()
	if done {
		c.sendWakers.Broadcast()
	}
}

func (c *Shared[T]) growLocked() {
	if c.buf.Cap() == 0 {
		c.buf = ring.NewCircularBuffer[T](8)
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

func (c *Shared[T]) pollSend(cx poll.Context, item T) poll.Poll[sink.Outcome[Void]] {
	c.mu.Lock()
	if c.recvDone {
		c.mu.Unlock()
		return poll.Ready(sink.Closed[Void]())
	}
	if c.buf.Full() {
		if c.unbounded {
			c.growLocked()
		} else {
			c.sendWakers.Push(cx.Waker())
			c.mu.Unlock()
			return poll.Pending[sink.Outcome[Void]]()
		}
	}
	c.buf.PushBack(item)
	c.mu.Unlock()
	c.recvWakers.Signal()
	return poll.Ready(sink.Success[Void]())
}

func (c *Shared[T]) pollFlush(cx poll.Context) poll.Poll[sink.Outcome[Void]] {
	c.mu.Lock()
	if c.recvDone {
		c.mu.Unlock()
		return poll.Ready(sink.Closed[Void]())
	}
	if !c.buf.Empty() {
		c.sendWakers.Push(cx.Waker())
		c.mu.Unlock()
		return poll.Pending[sink.Outcome[Void]]()
	}
	c.mu.Unlock()
	return poll.Ready(sink.Success[Void]())
}

func (c *Shared[T]) pollRecv(cx poll.Context) poll.Poll[stream.Option[T]] {
	c.mu.Lock()
	if v, ok := c.buf.PopFront(); ok {
		c.mu.Unlock()
		c.sendWakers.Signal()
		return poll.Ready(stream.Some(v))
	}
	if c.senderDone {
		c.mu.Unlock()
		return poll.Ready(stream.None[T]())
	}
	c.recvWakers.Push(cx.Waker())
	c.mu.Unlock()
	return poll.Pending[stream.Option[T]]()
}
