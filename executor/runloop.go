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

// RunLoop is the platform binding a RunLoopExecutor drives polls through:
// ScheduleSource arranges for fn to run as a run-loop source handler on
// the run loop's own thread, the way a CFRunLoopSource or a libuv/GLib
// idle/IO watcher would. RunLoopExecutor makes no assumption about which
// thread that ends up being, only that invocations are never concurrent
// with one another.
type RunLoop interface {
	ScheduleSource(fn func())
}

// RunLoopExecutor binds a QueueExecutor's driver mechanics to a platform
// run loop: every poll attempt occurs as one run-loop source handler
// invocation rather than as a generic Dispatcher callback. It reuses
// QueueExecutor verbatim by adapting RunLoop to the Dispatcher interface.
type RunLoopExecutor struct {
	*QueueExecutor
}

type runLoopDispatcher struct{ loop RunLoop }

func (d runLoopDispatcher) Dispatch(fn func()) { d.loop.ScheduleSource(fn) }

// NewRunLoopExecutor binds a new executor to loop.
func NewRunLoopExecutor(loop RunLoop) *RunLoopExecutor {
	return &RunLoopExecutor{QueueExecutor: NewQueueExecutor(runLoopDispatcher{loop: loop})}
}
