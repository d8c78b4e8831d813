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

package waker

import (
	"sync"
	"sync/atomic"

	"github.com/corerun/corerun/poll"
)

// entry is one node of the queue's intrusive linked list. It is never
// reused: cancellation marks it dead and unlinks it lazily on the next
// Signal/Broadcast/Clear pass.
type entry struct {
	w    poll.Waker
	dead int32 // set via atomic CAS from Handle.Cancel
	next *entry
}

// Handle refers to one registration previously returned by Queue.Push.
// Cancel is idempotent and safe to call concurrently with Signal/Broadcast.
type Handle struct {
	e *entry
}

// Cancel removes the associated waker from future Signal/Broadcast calls.
// Calling it more than once, or concurrently with a dispatch that is about
// to fire the same entry, is safe: whichever side observes the CAS first
// wins and the other is a no-op.
func (h Handle) Cancel() {
	if h.e == nil {
		return
	}
	atomic.CompareAndSwapInt32(&h.e.dead, 0, 1)
}

// Queue is a multi-producer, single-consumer-ish collection of wakers: any
// number of goroutines may Push or Signal/Broadcast/Clear concurrently. It
// backs the Shared channel, where more than one sender or receiver may need
// waking from a single event on the other side.
//
// Unlike Atomic, Queue keeps every live registration rather than just the
// most recent one, trading the wait-free guarantee for the ability to wake
// more than one waiter.
type Queue struct {
	mu   sync.Mutex
	head *entry
	tail *entry
}

// Push registers w and returns a Handle that can later cancel it.
func (q *Queue) Push(w poll.Waker) Handle {
	e := &entry{w: w}

	q.mu.Lock()
	if q.tail == nil {
		q.head = e
		q.tail = e
	} else {
		q.tail.next = e
		q.tail = e
	}
	q.mu.Unlock()

	return Handle{e: e}
}

// Signal wakes exactly one non-cancelled waker, discarding cancelled
// entries encountered along the way. It is a no-op if the queue is empty or
// contains only cancelled entries.
func (q *Queue) Signal() {
	q.mu.Lock()
	for q.head != nil {
		e := q.head
		q.head = e.next
		if q.head == nil {
			q.tail = nil
		}
		if atomic.LoadInt32(&e.dead) == 0 {
			q.mu.Unlock()
			e.w.Signal()
			return
		}
	}
	q.mu.Unlock()
}

// Broadcast wakes every non-cancelled waker currently registered, then
// clears the queue (subscribers are expected to re-register if they remain
// interested, matching how Stream/Sink combinators re-arm per poll).
func (q *Queue) Broadcast() {
	q.mu.Lock()
	head := q.head
	q.head, q.tail = nil, nil
	q.mu.Unlock()

	for e := head; e != nil; e = e.next {
		if atomic.LoadInt32(&e.dead) == 0 {
			e.w.Signal()
		}
	}
}

// Clear cancels every registration without invoking any of them.
func (q *Queue) Clear() {
	q.mu.Lock()
	head := q.head
	q.head, q.tail = nil, nil
	q.mu.Unlock()

	for e := head; e != nil; e = e.next {
		atomic.StoreInt32(&e.dead, 1)
	}
}
