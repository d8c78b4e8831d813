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

// Package ioboundary specifies, without implementing, the poll contracts
// that external I/O collaborators (file descriptors, sockets, platform
// byte streams) must honor to plug into the rest of this runtime. Concrete
// adapters for a given OS/platform are out of scope; only the interfaces
// are defined here.
package ioboundary

import (
	"errors"

	"github.com/corerun/corerun/poll"
)

// ErrNegativePosition is returned by PollSeek when the requested offset
// would move the stream to a negative absolute position.
var ErrNegativePosition = errors.New("ioboundary: seek to a negative position")

// InputStream is a poll-driven byte source. PollRead must never return the
// OS-level WOULDBLOCK/EINTR conditions to the caller: implementations
// translate those into Pending (having armed a wake) or a transparent
// retry. A Ready result of 0 means EOF, not "try again".
type InputStream interface {
	PollRead(cx poll.Context, buf []byte) poll.Poll[ReadResult]
}

// ReadResult is PollRead's Ready payload: either a byte count (0 meaning
// EOF) or an error.
type ReadResult struct {
	N   int
	Err error
}

// OK reports whether this result carries a usable byte count rather than
// an error.
func (r ReadResult) OK() bool { return r.Err == nil }

// OutputStream is a poll-driven byte sink, the write-side mirror of
// InputStream. PollClose is idempotent; after it has succeeded once,
// further PollWrite calls must return an error rather than blocking or
// writing.
type OutputStream interface {
	PollWrite(cx poll.Context, buf []byte) poll.Poll[WriteResult]
	PollFlush(cx poll.Context) poll.Poll[error]
	PollClose(cx poll.Context) poll.Poll[error]
}

// WriteResult is PollWrite's Ready payload.
type WriteResult struct {
	N   int
	Err error
}

// OK reports whether this result carries a usable byte count rather than
// an error.
func (r WriteResult) OK() bool { return r.Err == nil }

// SeekableStream adds random-access positioning to a stream. Offsets are
// relative to the current position; an offset of zero reports the current
// position without moving it. Seeking to a negative absolute position is
// an error; seeking past the end is allowed (and typically extends the
// stream on a subsequent write, as with a regular file).
type SeekableStream interface {
	PollSeek(cx poll.Context, offset int64) poll.Poll[SeekResult]
}

// SeekResult is PollSeek's Ready payload: the resulting absolute position,
// or an error (e.g. ErrNegativePosition).
type SeekResult struct {
	Position int64
	Err      error
}

// OK reports whether this result carries a usable position rather than an
// error.
func (r SeekResult) OK() bool { return r.Err == nil }
