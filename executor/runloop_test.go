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

package executor_test

import (
	"github.com/corerun/corerun/executor"
	"github.com/corerun/corerun/future"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

// fakeRunLoop queues scheduled sources instead of running them on some
// platform thread, so a test can pump them deterministically.
type fakeRunLoop struct {
	sources []func()
}

func (l *fakeRunLoop) ScheduleSource(fn func()) { l.sources = append(l.sources, fn) }

func (l *fakeRunLoop) pump() {
	for len(l.sources) > 0 {
		fn := l.sources[0]
		l.sources = l.sources[1:]
		fn()
	}
}

var _ = Describe("RunLoopExecutor", func() {
	It("schedules a driver as a run-loop source and completes once pumped", func() {
		loop := &fakeRunLoop{}
		e := executor.NewRunLoopExecutor(loop)

		task := executor.Spawn[int](e.QueueExecutor, future.Ready(3))
		Expect(loop.sources).Should(HaveLen(1))

		loop.pump()
		Expect(task.Value()).Should(Equal(3))
	})

	It("honors Suspend/Resume through the inherited QueueExecutor", func() {
		loop := &fakeRunLoop{}
		e := executor.NewRunLoopExecutor(loop)

		e.Suspend()
		task := executor.Spawn[int](e.QueueExecutor, future.Ready(11))
		Expect(loop.sources).Should(BeEmpty())

		e.Resume()
		Expect(loop.sources).Should(HaveLen(1))

		loop.pump()
		Expect(task.Value()).Should(Equal(11))
	})
})
