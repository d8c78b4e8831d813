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

package ring

import (
	"sync/atomic"
	"unsafe"
)

// listNode is one link of List's intrusive chain.
type listNode[T any] struct {
	value T
	next  unsafe.Pointer // *listNode[T]
}

// List is a lock-free multi-producer, single-consumer linked queue: any
// number of goroutines may call Push concurrently, but Pop must only be
// called from one goroutine at a time (the scheduler's own driving
// goroutine, typically). This matches the ready-queue shape used by the
// task scheduler: producers are the per-task wakers firing from
// arbitrary goroutines, the consumer is the scheduler's PollNext.
type List[T any] struct {
	head unsafe.Pointer // *listNode[T], consumer-owned
	tail unsafe.Pointer // *listNode[T], producer-contended
}

// NewList returns an empty queue, already primed with its dummy head node.
func NewList[T any]() *List[T] {
	stub := &listNode[T]{}
	p := unsafe.Pointer(stub)
	return &List[T]{head: p, tail: p}
}

// Push appends v. Safe to call from any number of goroutines concurrently.
func (l *List[T]) Push(v T) {
	n := unsafe.Pointer(&listNode[T]{value: v})
	prev := (*listNode[T])(atomic.SwapPointer(&l.tail, n))
	atomic.StorePointer(&prev.next, n)
}

// Pop removes and returns the oldest element. ok is false if the queue
// appeared empty at the time of the call. Must only be invoked by a single
// consumer goroutine at a time.
func (l *List[T]) Pop() (v T, ok bool) {
	head := (*listNode[T])(atomic.LoadPointer(&l.head))
	next := (*listNode[T])(atomic.LoadPointer(&head.next))
	if next == nil {
		return v, false
	}
	atomic.StorePointer(&l.head, unsafe.Pointer(next))
	v = next.value
	var zero T
	next.value = zero
	return v, true
}
