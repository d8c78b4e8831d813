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

// Passthrough is an unbounded, latest-value-only pipe: poll_send never
// blocks and a value still unread when a new one arrives is silently
// dropped, never queued. Every Receiver obtained from NewReceiver
// independently tracks which version it has last observed, so a slow
// receiver only ever misses intermediate values -- it is not starved, and
// it never reads a value twice. This is the "not-a-queue" drop policy
// documented as a precondition in the design notes.
type Passthrough[T any] struct {
	mu      sync.Mutex
	value   T
	version uint64
	closed  bool

	receivers map[int]*passthroughSub
	nextID    int
}

type passthroughSub struct {
	lastSeen uint64
	waker    waker.Atomic
}

// NewPassthrough creates an empty Passthrough pipe.
func NewPassthrough[T any]() *Passthrough[T] {
	return &Passthrough[T]{receivers: make(map[int]*passthroughSub)}
}

// Sender returns this pipe's single Sink. Passthrough is single-producer;
// callers needing multiple producers should fan their sends through one
// goroutine or compose with a Shared pipe upstream.
func (c *Passthrough[T]) Sender() sink.Sink[T, Void] {
	return sink.Func[T, Void]{SendFn: c.pollSend, FlushFn: c.pollFlush, CloseFn: c.pollClose}
}

// NewReceiver registers and returns a new independent Receiver: it sees
// only values sent after this call, dropping whichever was most recently
// sent before it if it polls too slowly to catch every update.
func (c *Passthrough[T]) NewReceiver() *Receiver[T] {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.receivers[id] = &passthroughSub{lastSeen: c.version}
	c.mu.Unlock()

	return &Receiver[T]{
		pollFn:   func(cx poll.Context) poll.Poll[stream.Option[T]] { return c.pollRecv(cx, id) },
		cancelFn: func() { c.mu.Lock(); delete(c.receivers, id); c.mu.Unlock() },
	}
}

func (c *Passthrough[T]) pollSend(cx poll.Context, item T) poll.Poll[sink.Outcome[Void]] {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return poll.Ready(sink.Closed[Void]())
	}
	c.value = item
	c.version++
	subs := make([]*passthroughSub, 0, len(c.receivers))
	for _, s := range c.receivers {
		subs = append(subs, s)
	}
	c.mu.Unlock()
	for _, s := range subs {
		s.waker.Signal()
	}
	return poll.Ready(sink.Success[Void]())
}

func (c *Passthrough[T]) pollFlush(poll.Context) poll.Poll[sink.Outcome[Void]] {
	return poll.Ready(sink.Success[Void]())
}

func (c *Passthrough[T]) pollClose(poll.Context) poll.Poll[sink.Outcome[Void]] {
	c.mu.Lock()
	c.closed = true
	subs := make([]*passthroughSub, 0, len(c.receivers))
	for _, s := range c.receivers {
		subs = append(subs, s)
	}
	c.mu.Unlock()
	for _, s := range subs {
		s.waker.Signal()
	}
	return poll.Ready(sink.Success[Void]())
}

func (c *Passthrough[T]) pollRecv(cx poll.Context, id int) poll.Poll[stream.Option[T]] {
	c.mu.Lock()
	defer c.mu.Unlock()

	sub, ok := c.receivers[id]
	if !ok {
		return poll.Ready(stream.None[T]())
	}
	if c.version > sub.lastSeen {
		sub.lastSeen = c.version
		return poll.Ready(stream.Some(c.value))
	}
	if c.closed {
		return poll.Ready(stream.None[T]())
	}
	sub.waker.Register(cx.Waker())
	return poll.Pending[stream.Option[T]]()
}
