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

// Package executor provides the three ways a composed Future/Stream graph
// is actually driven to completion: ThreadExecutor (a blocking driver that
// parks the calling OS thread between wakeups), QueueExecutor (a driver
// built on top of an external dispatch queue) and RunLoopExecutor (bound to
// a platform run-loop's source-handler mechanism).
package executor

import (
	"sync"

	"github.com/corerun/corerun/future"
	"github.com/corerun/corerun/poll"
)

// root is the type-erased shape a submitted future takes inside
// ThreadExecutor's queue: a single poll attempt that reports whether it
// completed. Submit's generic Output type is captured in the closure so the
// executor's own fields stay non-generic.
type root func(cx poll.Context) bool

// ThreadExecutor is a blocking driver associated with the calling OS
// thread: Run (or RunUntil) polls every submitted root in a loop, parking
// the thread between rounds whenever nothing advanced, until unparked by a
// waker belonging to one of the roots it is driving.
type ThreadExecutor struct {
	mu     sync.Mutex
	roots  []root
	wakeCh chan struct{}
}

// NewThreadExecutor returns an empty, ready-to-use ThreadExecutor.
func NewThreadExecutor() *ThreadExecutor {
	return &ThreadExecutor{wakeCh: make(chan struct{}, 1)}
}

// Submit enqueues f as one of this executor's roots. f is first polled the
// next time Run or RunUntil is called.
func Submit[T any](e *ThreadExecutor, f future.Future[T]) {
	e.mu.Lock()
	e.roots = append(e.roots, func(cx poll.Context) bool {
		return f.Poll(cx).IsReady()
	})
	e.mu.Unlock()
	e.unpark()
}

func (e *ThreadExecutor) waker() poll.Waker {
	return poll.WakerFunc(e.unpark)
}

func (e *ThreadExecutor) unpark() {
	select {
	case e.wakeCh <- struct{}{}:
	default:
	}
}

func (e *ThreadExecutor) park() {
	<-e.wakeCh
}

// pollRootsOnce polls every current root exactly once, removing any that
// completed, and reports whether at least one of them completed this round
// and whether any roots remain.
func (e *ThreadExecutor) pollRootsOnce(cx poll.Context) (completedAny, remaining bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := 0; i < len(e.roots); {
		if e.roots[i](cx) {
			completedAny = true
			e.roots = append(e.roots[:i], e.roots[i+1:]...)
			continue
		}
		i++
	}
	remaining = len(e.roots) > 0
	return
}

// Run polls every submitted root to completion, parking the thread between
// rounds whenever a round made no progress, and returns true if at least
// one root completed over the call's lifetime.
func (e *ThreadExecutor) Run() bool {
	cx := poll.NewContext(e.waker())
	completedEver := false
	for {
		completed, remaining := e.pollRootsOnce(cx)
		completedEver = completedEver || completed
		if !remaining {
			return completedEver
		}
		if !completed {
			e.park()
		}
	}
}

// RunUntil drives the executor, including every other submitted root,
// until until itself completes, and returns its output.
func RunUntil[T any](e *ThreadExecutor, until future.Future[T]) T {
	cx := poll.NewContext(e.waker())
	for {
		if p := until.Poll(cx); p.IsReady() {
			return p.Value()
		}
		_, _ = e.pollRootsOnce(cx)
		e.park()
	}
}
