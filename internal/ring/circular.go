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

// Package ring provides the two supporting data structures the rest of the
// runtime is built from: a fixed-capacity CircularBuffer (bounded channel
// storage, last-N replay buffers) and a List, a lock-free MPSC linked queue
// (the scheduler's ready queue).
package ring

// CircularBuffer is a fixed-capacity FIFO. It is not safe for concurrent
// use; callers (bounded channels, replay buffers) are expected to guard it
// with their own synchronization since they need to coordinate with waker
// state atomically anyway.
type CircularBuffer[T any] struct {
	buf        []T
	head, size int
}

// NewCircularBuffer allocates a buffer that holds up to capacity elements.
func NewCircularBuffer[T any](capacity int) *CircularBuffer[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &CircularBuffer[T]{buf: make([]T, capacity)}
}

// Len returns the number of elements currently stored.
func (c *CircularBuffer[T]) Len() int { return c.size }

// Cap returns the buffer's fixed capacity.
func (c *CircularBuffer[T]) Cap() int { return len(c.buf) }

// Full reports whether the buffer has reached capacity.
func (c *CircularBuffer[T]) Full() bool { return c.size == len(c.buf) }

// Empty reports whether the buffer holds no elements.
func (c *CircularBuffer[T]) Empty() bool { return c.size == 0 }

// PushBack appends v. It panics if the buffer is already full; callers must
// check Full (or Cap) first, which every poll-driven caller in this module
// does before accepting a send.
func (c *CircularBuffer[T]) PushBack(v T) {
	if c.Full() {
		panic("ring: PushBack on a full CircularBuffer")
	}
	idx := (c.head + c.size) % len(c.buf)
	c.buf[idx] = v
	c.size++
}

// PopFront removes and returns the oldest element. ok is false if the
// buffer was empty.
func (c *CircularBuffer[T]) PopFront() (v T, ok bool) {
	if c.Empty() {
		return v, false
	}
	v = c.buf[c.head]
	var zero T
	c.buf[c.head] = zero
	c.head = (c.head + 1) % len(c.buf)
	c.size--
	return v, true
}

// Front returns the oldest element without removing it.
func (c *CircularBuffer[T]) Front() (v T, ok bool) {
	if c.Empty() {
		return v, false
	}
	return c.buf[c.head], true
}

// Snapshot returns the buffered elements oldest-first. Used by last-N replay
// buffers to hand late subscribers the retained suffix.
func (c *CircularBuffer[T]) Snapshot() []T {
	out := make([]T, 0, c.size)
	for i := 0; i < c.size; i++ {
		out = append(out, c.buf[(c.head+i)%len(c.buf)])
	}
	return out
}

// PushEvict appends v, evicting (and returning) the oldest element first if
// the buffer is already full. Used by last-N replay buffers, where arrival
// of a new element should silently drop the oldest rather than block.
func (c *CircularBuffer[T]) PushEvict(v T) (evicted T, didEvict bool) {
	if len(c.buf) == 0 {
		// A zero-capacity buffer retains nothing; v is evicted immediately
		// without ever entering storage.
		return v, true
	}
	if c.Full() {
		evicted, _ = c.PopFront()
		didEvict = true
	}
	c.PushBack(v)
	return
}
