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

// Package scheduler multiplexes many in-flight futures of the same output
// type, yielding their outputs in completion order, one level below the
// public executors. The stream package's fan-in operators do not use it:
// they poll their inputs directly.
package scheduler

import (
	"sync"

	"github.com/corerun/corerun/future"
	"github.com/corerun/corerun/internal/ring"
	"github.com/corerun/corerun/poll"
	"github.com/corerun/corerun/waker"
)

// Option is the value PollNext's Poll carries: Some(v) for a completed
// task's output, None once every submitted task has completed. It mirrors
// stream.Option's shape locally rather than importing package stream.
type Option[T any] struct {
	value T
	some  bool
}

// Some wraps a completed task's output.
func Some[T any](v T) Option[T] { return Option[T]{value: v, some: true} }

// None is the terminal "no tasks remain" marker.
func None[T any]() Option[T] { return Option[T]{} }

// IsSome reports whether this Option carries a value.
func (o Option[T]) IsSome() bool { return o.some }

// Value returns the carried value, or the zero value of T if this is None.
func (o Option[T]) Value() T { return o.value }

// Scheduler multiplexes N in-flight future.Future[T] values submitted via
// Submit, polling each only in response to its own dedicated waker firing
// and yielding completions through PollNext in the order they become ready.
// Dropping a Scheduler (letting it become unreachable without ever calling
// PollNext to drain it) cancels every task still pending by never polling
// it again: that is this type's cancellation-by-drop.
type Scheduler[T any] struct {
	mu       sync.Mutex
	tasks    map[uint64]future.Future[T]
	nextID   uint64
	ready    *ring.List[uint64]
	inReady  map[uint64]bool // dedup: a task already queued is not re-pushed
	own      waker.Atomic
}

// New returns an empty Scheduler.
func New[T any]() *Scheduler[T] {
	return &Scheduler[T]{
		tasks:   make(map[uint64]future.Future[T]),
		ready:   ring.NewList[uint64](),
		inReady: make(map[uint64]bool),
	}
}

// Submit enqueues f for polling. Non-blocking, O(1); f is polled no earlier
// than the next PollNext call.
func (s *Scheduler[T]) Submit(f future.Future[T]) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.tasks[id] = f
	s.markReadyLocked(id)
	s.mu.Unlock()
	s.own.Signal()
}

// markReadyLocked pushes id onto the ready queue if it is not already
// queued. Caller holds s.mu.
func (s *Scheduler[T]) markReadyLocked(id uint64) {
	if s.inReady[id] {
		return
	}
	s.inReady[id] = true
	s.ready.Push(id)
}

// Len reports the number of tasks not yet completed.
func (s *Scheduler[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// PollNext scans the ready queue and returns the first task that actually
// produces a value on this call. It returns Ready(Some) with a completed
// task's output (the task is removed first), Ready(None) once no tasks
// remain at all, or Pending if tasks remain but none is currently ready.
func (s *Scheduler[T]) PollNext(cx poll.Context) poll.Poll[Option[T]] {
	s.own.Register(cx.Waker())

	for {
		id, ok := s.ready.Pop()
		if !ok {
			s.mu.Lock()
			empty := len(s.tasks) == 0
			s.mu.Unlock()
			if empty {
				return poll.Ready(None[T]())
			}
			return poll.Pending[Option[T]]()
		}

		s.mu.Lock()
		f, exists := s.tasks[id]
		if exists {
			s.inReady[id] = false
		} else {
			// id's task already completed and was removed; a waker fired
			// after the fact re-added it (markReadyLocked can't tell it's
			// stale). Drop the bookkeeping entry too, or it lingers forever.
			delete(s.inReady, id)
		}
		s.mu.Unlock()
		if !exists {
			continue
		}

		taskWaker := poll.WakerFunc(func() {
			s.mu.Lock()
			s.markReadyLocked(id)
			s.mu.Unlock()
			s.own.Signal()
		})
		p := f.Poll(poll.NewContext(taskWaker))
		if !p.IsReady() {
			continue
		}

		s.mu.Lock()
		delete(s.tasks, id)
		delete(s.inReady, id)
		s.mu.Unlock()
		return poll.Ready(Some(p.Value()))
	}
}
