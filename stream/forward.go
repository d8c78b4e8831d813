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
	"github.com/corerun/corerun/future"
	"github.com/corerun/corerun/poll"
	"github.com/corerun/corerun/sink"
)

// Forward drains in into out until in completes, then closes out. It
// resolves to the first non-success Outcome observed from either a send or
// the final close, or Success once every item was accepted and the close
// itself succeeded.
func Forward[T, E any](in Stream[T], out sink.Sink[T, E]) future.Future[sink.Outcome[E]] {
	const (
		stateSending = iota
		stateClosing
		stateDone
	)
	state := stateSending
	var pending T
	havePending := false

	return future.Wrap(func(cx poll.Context) poll.Poll[sink.Outcome[E]] {
		for {
			switch state {
			case stateSending:
				if !havePending {
					p := in.PollNext(cx)
					if !p.IsReady() {
						return poll.Pending[sink.Outcome[E]]()
					}
					o := p.Value()
					if !o.IsSome() {
						state = stateClosing
						continue
					}
					pending = o.Value()
					havePending = true
				}
				sp := out.PollSend(cx, pending)
				if !sp.IsReady() {
					return poll.Pending[sink.Outcome[E]]()
				}
				havePending = false
				if !sp.Value().IsSuccess() {
					state = stateDone
					return sp
				}
			case stateClosing:
				cp := out.PollClose(cx)
				if !cp.IsReady() {
					return poll.Pending[sink.Outcome[E]]()
				}
				state = stateDone
				return cp
			case stateDone:
				panic("stream: Forward polled again after completion")
			}
		}
	})
}
