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

package stream

import (
	"sync"

	"github.com/corerun/corerun/internal/ring"
	"github.com/corerun/corerun/poll"
)

// ReplayPolicy selects what a subscriber that joins a Hub after it has
// already started producing elements observes as its starting point.
type ReplayPolicy int

const (
	// ReplayNone gives late subscribers nothing but elements produced from
	// the moment they subscribe onward.
	ReplayNone ReplayPolicy = iota
	// ReplayLatest replays the single most recently produced element, if any.
	ReplayLatest
	// ReplayLastN replays up to N most recently produced elements.
	ReplayLastN
	// ReplayAll replays every element produced so far.
	ReplayAll
)

// Hub is the shared state backing both Multicast and Share: a single
// upstream Stream driven by at most one "driving" subscriber at a time
// (coordinated by a mutex rather than the specification's raw atomic state
// word -- see DESIGN.md for why that substitution preserves the same
// observable contract), fanning out every element to every live subscriber
// so each one observes the same elements in the same order.
type Hub[T any] struct {
	mu       sync.Mutex
	source   Stream[T]
	subs     map[int]*subscription[T]
	nextID   int
	driving  bool
	terminal bool

	replay     ReplayPolicy
	replayAll  []T
	replayLast *ring.CircularBuffer[T]
}

type subscription[T any] struct {
	pending []T
	waker   poll.Waker
	done    bool // this subscriber has already observed the terminal None
}

func newHub[T any](source Stream[T], policy ReplayPolicy, n int) *Hub[T] {
	h := &Hub[T]{
		source: source,
		subs:   make(map[int]*subscription[T]),
		replay: policy,
	}
	if policy == ReplayLastN {
		h.replayLast = ring.NewCircularBuffer[T](n)
	}
	return h
}

// Multicast wraps source so every subscriber observes every element in the
// same order. The specification documents a precondition for this variant:
// source's own PollNext must not call back into the hub re-entrantly from
// the same task (see DESIGN.md Open Question).
func Multicast[T any](source Stream[T], policy ReplayPolicy, lastN int) *Hub[T] {
	return newHub(source, policy, lastN)
}

// Share is Multicast's counterpart that is additionally safe when multiple
// independent goroutines poll their subscriber streams concurrently.
// Mechanically this module realizes both with the same mutex-guarded Hub;
// the distinction that matters to callers is only the documented
// precondition Multicast carries and Share does not.
func Share[T any](source Stream[T], policy ReplayPolicy, lastN int) *Hub[T] {
	return newHub(source, policy, lastN)
}

// Subscriber is a live subscription returned by Hub.Subscribe: a Stream of
// the Hub's elements that can additionally be cancelled early.
type Subscriber[T any] struct {
	hub *Hub[T]
	id  int
}

// PollNext implements Stream[T].
func (s *Subscriber[T]) PollNext(cx poll.Context) poll.Poll[Option[T]] {
	return s.hub.pollSubscriber(cx, s.id)
}

// Cancel removes this subscriber before it has observed the terminal None.
// Safe to call from any goroutine, any number of times.
func (s *Subscriber[T]) Cancel() {
	s.hub.mu.Lock()
	delete(s.hub.subs, s.id)
	s.hub.mu.Unlock()
}

// Subscribe creates a new subscriber Stream observing every future element
// this Hub delivers, preceded by whatever replay suffix the Hub's policy
// dictates.
func (h *Hub[T]) Subscribe() *Subscriber[T] {
	h.mu.Lock()
	id := h.nextID
	h.nextID++

	sub := &subscription[T]{}
	switch h.replay {
	case ReplayLatest:
		if len(h.replayAll) > 0 {
			sub.pending = append(sub.pending, h.replayAll[len(h.replayAll)-1])
		}
	case ReplayLastN:
		sub.pending = append(sub.pending, h.replayLast.Snapshot()...)
	case ReplayAll:
		sub.pending = append(sub.pending, h.replayAll...)
	}
	if h.terminal && len(sub.pending) == 0 {
		sub.done = true
	}
	h.subs[id] = sub
	h.mu.Unlock()

	return &Subscriber[T]{hub: h, id: id}
}

func (h *Hub[T]) pollSubscriber(cx poll.Context, id int) poll.Poll[Option[T]] {
	h.mu.Lock()
	sub, ok := h.subs[id]
	if !ok {
		h.mu.Unlock()
		return poll.Ready(None[T]())
	}

	if len(sub.pending) > 0 {
		v := sub.pending[0]
		sub.pending = sub.pending[1:]
		h.mu.Unlock()
		return poll.Ready(Some(v))
	}
	if sub.done {
		h.mu.Unlock()
		return poll.Ready(None[T]())
	}
	if h.terminal {
		sub.done = true
		h.mu.Unlock()
		return poll.Ready(None[T]())
	}

	sub.waker = cx.Waker()

	if h.driving {
		h.mu.Unlock()
		return poll.Pending[Option[T]]()
	}
	h.driving = true
	h.mu.Unlock()

	return h.drive(cx, id)
}

// drive runs exactly one poll of the shared source on behalf of the
// subscriber identified by id, which currently holds the "driving" right.
func (h *Hub[T]) drive(cx poll.Context, id int) poll.Poll[Option[T]] {
	p := h.source.PollNext(cx)

	h.mu.Lock()
	h.driving = false

	if !p.IsReady() {
		h.mu.Unlock()
		return poll.Pending[Option[T]]()
	}

	o := p.Value()
	if !o.IsSome() {
		h.terminal = true
		self := h.subs[id]
		var selfResult poll.Poll[Option[T]]
		if self != nil && len(self.pending) == 0 {
			self.done = true
			selfResult = poll.Ready(None[T]())
		}
		h.wakeOthersLocked(id)
		h.mu.Unlock()
		if selfResult.IsReady() || (self != nil && self.done) {
			return poll.Ready(None[T]())
		}
		return poll.Pending[Option[T]]()
	}

	v := o.Value()
	h.recordReplayLocked(v)
	for sid, s := range h.subs {
		if sid == id {
			continue
		}
		s.pending = append(s.pending, v)
	}
	h.wakeOthersLocked(id)
	h.mu.Unlock()

	return poll.Ready(Some(v))
}

func (h *Hub[T]) recordReplayLocked(v T) {
	switch h.replay {
	case ReplayLatest:
		h.replayAll = []T{v}
	case ReplayAll:
		h.replayAll = append(h.replayAll, v)
	case ReplayLastN:
		h.replayLast.PushEvict(v)
	}
}

func (h *Hub[T]) wakeOthersLocked(exceptID int) {
	for sid, s := range h.subs {
		if sid == exceptID || s.waker == nil {
			continue
		}
		s.waker.Signal()
	}
}
