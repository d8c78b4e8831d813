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
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// poolState packs a WorkerPool's run state and live worker count into one
// word so both can be read and transitioned with a single CAS: the run
// state occupies the high 32 bits, the worker count the low 32 bits. A
// running pool's packed value is negative (the running state constant sets
// the sign bit), so IsRunning is a single comparison.
type poolState int64

const (
	poolRunStateMask int64 = -4294967296 // 0xffffffff00000000

	poolRunStateRunning    poolState = poolState(poolRunStateMask)
	poolRunStateShutdown   poolState = 0
	poolRunStateTerminated poolState = 4294967296 // 0x1 << 32
)

func makePoolState(run poolState, workers uint32) poolState {
	return poolState(int64(run) | int64(workers))
}

func (s poolState) runState() poolState   { return poolState(int64(s) & poolRunStateMask) }
func (s poolState) workerCount() uint32   { return uint32(int64(s) & 0xffffffff) }
func (s poolState) isRunning() bool       { return s < 0 }
func (s poolState) isShutdown() bool      { return s >= poolRunStateShutdown }
func (s poolState) isTerminated() bool    { return s >= poolRunStateTerminated }

// WorkerPoolConfig configures a WorkerPool.
type WorkerPoolConfig struct {
	// MaxPoolSize is the maximum number of goroutines the pool will run
	// concurrently. Required, must be > 0.
	MaxPoolSize uint32
	// MinPoolSize is the number of idle goroutines the pool keeps alive even
	// with no queued work.
	MinPoolSize uint32
	// KeepAlive is how long a goroutine above MinPoolSize waits for new work
	// before exiting.
	KeepAlive time.Duration
	// QueueCapacity bounds how many dispatched closures may be buffered
	// waiting for a free worker; Dispatch blocks once it is full.
	QueueCapacity int
}

// WorkerPool is a Dispatcher backed by a bounded pool of goroutines that
// grows on demand up to MaxPoolSize and shrinks back down to MinPoolSize
// after KeepAlive idle time. It can serve as the in-process Dispatcher of a
// QueueExecutor when no platform-specific queue is available.
type WorkerPool struct {
	cfg WorkerPoolConfig
	// shutdownMu separates Dispatch's send on tasks from Shutdown's close of
	// it: Dispatch holds the read side across its send, Shutdown takes the
	// write side before closing, so a send can never race a close.
	shutdownMu sync.RWMutex
	state      int64 // atomically accessed poolState
	tasks      chan func()
}

// NewWorkerPool validates cfg and starts an initially-empty pool; workers
// are spun up lazily as work is dispatched.
func NewWorkerPool(cfg WorkerPoolConfig) (*WorkerPool, error) {
	if cfg.MaxPoolSize == 0 {
		return nil, errors.New("executor: WorkerPoolConfig.MaxPoolSize must be > 0")
	}
	if cfg.MaxPoolSize < cfg.MinPoolSize {
		return nil, errors.New("executor: WorkerPoolConfig.MaxPoolSize must be >= MinPoolSize")
	}
	if cfg.QueueCapacity <= 0 {
		cfg.QueueCapacity = int(cfg.MaxPoolSize) * 4
	}
	p := &WorkerPool{
		cfg:   cfg,
		state: int64(makePoolState(poolRunStateRunning, 0)),
		tasks: make(chan func(), cfg.QueueCapacity),
	}
	for i := uint32(0); i < cfg.MinPoolSize; i++ {
		p.spawnWorker()
	}
	return p, nil
}

func (p *WorkerPool) loadState() poolState { return poolState(atomic.LoadInt64(&p.state)) }

func (p *WorkerPool) spawnWorker() bool {
	for {
		cur := p.loadState()
		if !cur.isRunning() {
			return false
		}
		if cur.workerCount() >= p.cfg.MaxPoolSize {
			return false
		}
		next := makePoolState(cur.runState(), cur.workerCount()+1)
		if atomic.CompareAndSwapInt64(&p.state, int64(cur), int64(next)) {
			go p.runWorker()
			return true
		}
	}
}

func (p *WorkerPool) runWorker() {
	defer func() {
		for {
			cur := p.loadState()
			next := makePoolState(cur.runState(), cur.workerCount()-1)
			if atomic.CompareAndSwapInt64(&p.state, int64(cur), int64(next)) {
				if next.isShutdown() && next.workerCount() == 0 {
					atomic.CompareAndSwapInt64(&p.state, int64(next), int64(poolRunStateTerminated))
				}
				return
			}
		}
	}()

	idleTimer := p.cfg.KeepAlive
	for {
		if idleTimer <= 0 {
			fn, ok := <-p.tasks
			if !ok {
				return
			}
			fn()
			continue
		}
		select {
		case fn, ok := <-p.tasks:
			if !ok {
				return
			}
			fn()
		case <-time.After(idleTimer):
			cur := p.loadState()
			if cur.workerCount() > p.cfg.MinPoolSize {
				return
			}
		}
	}
}

// Dispatch implements Dispatcher: fn is queued for execution on one of the
// pool's goroutines, spinning up a new one first if demand warrants it and
// MaxPoolSize has not been reached.
func (p *WorkerPool) Dispatch(fn func()) {
	p.shutdownMu.RLock()
	defer p.shutdownMu.RUnlock()
	if p.loadState().isShutdown() {
		return
	}
	p.spawnWorker()
	p.tasks <- fn
}

// Shutdown stops the pool from accepting further dispatches; closures
// already queued still run to completion on the existing workers.
func (p *WorkerPool) Shutdown() {
	p.shutdownMu.Lock()
	defer p.shutdownMu.Unlock()
	for {
		cur := p.loadState()
		if cur.runState() >= poolRunStateShutdown {
			return
		}
		next := makePoolState(poolRunStateShutdown, cur.workerCount())
		if atomic.CompareAndSwapInt64(&p.state, int64(cur), int64(next)) {
			if next.workerCount() == 0 {
				atomic.CompareAndSwapInt64(&p.state, int64(next), int64(poolRunStateTerminated))
			}
			close(p.tasks)
			return
		}
	}
}

// Terminated reports whether every worker has exited following Shutdown.
func (p *WorkerPool) Terminated() bool {
	return p.loadState().isTerminated()
}
