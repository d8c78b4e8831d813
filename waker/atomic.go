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

// Package waker implements the waker primitives that the rest of the
// runtime is built on: a single-slot, wait-free Atomic for the common
// one-registrar case, and a mutex-guarded Queue for the multi-waiter case
// (the Shared channel's sender and receiver waiter lists).
package waker

import (
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/corerun/corerun/poll"
)

// Atomic waker state. Two independent bits: one registrar may be storing a
// new waker (registering), and any number of signallers may be notifying
// concurrently (notifying). Both can be set at once.
const (
	stateIdle        uint32 = 0
	stateRegistering uint32 = 1 << 0
	stateNotifying   uint32 = 1 << 1
)

// Atomic is a single-slot, wait-free register-and-signal primitive. At most
// one goroutine may call Register concurrently; Signal and Clear may be
// called from any number of goroutines at any time. The invariant it
// upholds: after any Signal call, the most recently registered waker is
// eventually invoked at least once.
//
// This mirrors futures-rs' AtomicWaker, translated to the three/four-state
// CAS dance described in the poll-protocol specification.
type Atomic struct {
	state uint32
	waker atomic.Value // holds poll.Waker
}

// Register stores w as the waker to be signalled by a future Signal call. If
// a signal arrived while this call was registering, w is invoked
// immediately instead (the notification is not lost).
//
// Calling Register concurrently from two goroutines is a contract
// violation: the registrar side is exclusive by design. The second caller
// panics.
func (a *Atomic) Register(w poll.Waker) {
	for {
		cur := atomic.LoadUint32(&a.state)
		switch cur {
		case stateIdle:
			if atomic.CompareAndSwapUint32(&a.state, stateIdle, stateRegistering) {
				a.waker.Store(w)

				// Publish the new waker, then try to go back to idle. If a
				// signal snuck in while we were registering, we observe
				// REGISTERING|NOTIFYING here and must fire the waker
				// ourselves since the signaller saw no waker to call.
				if !atomic.CompareAndSwapUint32(&a.state, stateRegistering, stateIdle) {
					atomic.StoreUint32(&a.state, stateIdle)
					w.Signal()
				}
				return
			}
		case stateNotifying:
			// A signal is in flight and may already have loaded the
			// stale waker before this Store lands. Store ours so the
			// registration is not lost, and invoke it directly too -- that
			// is the only way to guarantee it fires if the in-flight
			// notify never picks it up.
			a.waker.Store(w)
			w.Signal()
			runtime.Gosched()
		default:
			// stateRegistering or stateRegistering|stateNotifying: another
			// registrar is active concurrently with us, which the contract
			// forbids.
			panic(fmt.Sprintf("waker: concurrent Register call observed state %d", cur))
		}
	}
}

// Signal invokes the most recently registered waker, if any, and clears the
// slot. Calling Signal with nothing registered is a safe no-op. Signal is
// idempotent in the sense that redundant calls cost a CAS but never
// double-fire concurrently.
func (a *Atomic) Signal() {
	a.notify(true)
}

// Clear discards the registered waker without invoking it.
func (a *Atomic) Clear() {
	a.notify(false)
}

func (a *Atomic) notify(fire bool) {
	var prev uint32
	for {
		cur := atomic.LoadUint32(&a.state)
		if cur&stateNotifying != 0 {
			// Someone is already notifying; they (or the registrar
			// observing the bit) will take care of it.
			return
		}
		if atomic.CompareAndSwapUint32(&a.state, cur, cur|stateNotifying) {
			prev = cur
			break
		}
	}

	if prev != stateIdle {
		// A registrar is mid-flight; it will observe NOTIFYING when it
		// tries to CAS itself back to idle and fire the waker itself.
		return
	}

	w, _ := a.waker.Load().(poll.Waker)
	atomic.StoreUint32(&a.state, stateIdle)
	if fire && w != nil {
		w.Signal()
	}
}
