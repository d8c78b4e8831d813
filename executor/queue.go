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

package executor

import (
	"sync"
	"sync/atomic"

	"github.com/corerun/corerun/future"
	"github.com/corerun/corerun/poll"
)

// Dispatcher is the abstract external work queue a QueueExecutor drives
// polls on: a serial queue, a goroutine pool, a platform dispatch queue --
// anything able to run a closure "sometime later, possibly on another
// goroutine, never concurrently with another closure submitted to the same
// Dispatcher if the implementation is a serial queue."
type Dispatcher interface {
	Dispatch(fn func())
}

// DispatcherFunc adapts a plain function to the Dispatcher interface.
type DispatcherFunc func(fn func())

// Dispatch implements Dispatcher.
func (d DispatcherFunc) Dispatch(fn func()) { d(fn) }

// QueueExecutor drives futures by repeatedly dispatching a driver closure
// onto an external Dispatcher: the driver polls its future once and, if
// still pending, re-dispatches itself via a waker that fires on progress.
// Suspend/Resume gate every future dispatch (new and rescheduled alike)
// without losing work: a dispatch requested while suspended is queued and
// released in FIFO order on Resume.
type QueueExecutor struct {
	dispatcher Dispatcher

	mu        sync.Mutex
	suspended bool
	deferred  []func()
}

// NewQueueExecutor wraps d.
func NewQueueExecutor(d Dispatcher) *QueueExecutor {
	return &QueueExecutor{dispatcher: d}
}

func (e *QueueExecutor) dispatch(fn func()) {
	e.mu.Lock()
	if e.suspended {
		e.deferred = append(e.deferred, fn)
		e.mu.Unlock()
		return
	}
	e.mu.Unlock()
	e.dispatcher.Dispatch(fn)
}

// Suspend prevents any further dispatch (new submissions or rescheduled
// drivers) from reaching the underlying Dispatcher until Resume is called.
// Work already in flight on the Dispatcher at the moment of the call is not
// interrupted.
func (e *QueueExecutor) Suspend() {
	e.mu.Lock()
	e.suspended = true
	e.mu.Unlock()
}

// Resume re-enables dispatch and flushes anything queued while suspended.
func (e *QueueExecutor) Resume() {
	e.mu.Lock()
	e.suspended = false
	pending := e.deferred
	e.deferred = nil
	e.mu.Unlock()
	for _, fn := range pending {
		e.dispatcher.Dispatch(fn)
	}
}

// Submit spawns a driver that polls f to completion on e's Dispatcher,
// discarding its output. Use Spawn when the output or cancellation is
// needed.
func Submit[T any](e *QueueExecutor, f future.Future[T]) {
	var driver func()
	driver = func() {
		w := poll.WakerFunc(func() { e.dispatch(driver) })
		if f.Poll(poll.NewContext(w)).IsReady() {
			return
		}
	}
	e.dispatch(driver)
}

// Task is a handle to a future spawned via Spawn: an awaiter for its output
// plus a cancellation token.
type Task[T any] struct {
	done      chan struct{}
	closeOnce sync.Once
	value     T
	cancelled atomic.Bool
	completed atomic.Bool
}

// Cancel requests that the spawned future stop being polled. The future's
// own resources are released the next time its driver runs, on the same
// executor that was polling it; Cancel does not block.
func (t *Task[T]) Cancel() {
	t.cancelled.Store(true)
}

// Cancelled reports whether this task was cancelled before it completed.
func (t *Task[T]) Cancelled() bool {
	return t.cancelled.Load() && !t.completed.Load()
}

// Done returns a channel that is closed once the task has completed or been
// cancelled.
func (t *Task[T]) Done() <-chan struct{} { return t.done }

// Value returns the spawned future's output. Only meaningful after Done is
// closed and Cancelled is false.
func (t *Task[T]) Value() T { return t.value }

func (t *Task[T]) finish() {
	t.closeOnce.Do(func() { close(t.done) })
}

// Spawn submits f for polling on e's Dispatcher and returns a Task handle
// that can await its output or cancel it early.
func Spawn[T any](e *QueueExecutor, f future.Future[T]) *Task[T] {
	t := &Task[T]{done: make(chan struct{})}

	var driver func()
	driver = func() {
		if t.cancelled.Load() {
			t.finish()
			return
		}
		w := poll.WakerFunc(func() { e.dispatch(driver) })
		p := f.Poll(poll.NewContext(w))
		if t.cancelled.Load() {
			t.finish()
			return
		}
		if p.IsReady() {
			t.value = p.Value()
			t.completed.Store(true)
			t.finish()
		}
	}
	e.dispatch(driver)
	return t
}
