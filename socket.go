// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package memsock

import (
	"io"

	"code.hybscloud.com/iox"
)

// Socket is one end of a connected full-duplex in-memory byte stream.
// It exclusively owns the write end of one conduit and the read end of
// the other; there is no unconnected socket state. Sockets are obtained
// from [NewPair], [Registry.Dial], or [Listener.Accept].
//
// A Socket is single-owner per direction: at most one goroutine may
// read and one may write at a time, matching the SPSC transport
// underneath. Read/Write/Accept block with adaptive backoff; the
// suspending flavor of the same operations lives in op.go.
type Socket struct {
	out *conduit // local → peer
	in  *conduit // peer → local

	// cursor is the partially consumed inbound chunk. Owned by the
	// single reader; drained before the ring is touched again.
	cursor []byte

	// sendSlot avoids a heap escape per enqueue (lfq takes a pointer).
	sendSlot []byte

	shut   bool // Shutdown or Close already performed locally
	serial Serial
}

var _ io.ReadWriteCloser = (*Socket)(nil)

// Serial returns the connection serial shared by both sockets of the pair.
func (s *Socket) Serial() Serial {
	return s.serial
}

// tryRead is the non-blocking read primitive. It consumes the cursor
// chunk first, then the inbound ring. Returns iox.ErrWouldBlock when no
// bytes are available and the direction is open, and io.EOF exactly when
// it is closed and drained. EOF is idempotent.
func (s *Socket) tryRead(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	n := 0
	for {
		if len(s.cursor) > 0 {
			c := copy(p[n:], s.cursor)
			s.cursor = s.cursor[c:]
			n += c
			if n == len(p) {
				return n, nil
			}
		}
		// Cursor exhausted: return what we have rather than wait for
		// more, to keep read latency at one chunk.
		if n > 0 {
			return n, nil
		}
		chunk, err := s.in.ring.Dequeue()
		if err != nil {
			if !s.in.isClosed() {
				return 0, iox.ErrWouldBlock
			}
			// A chunk may have been enqueued between the failed
			// dequeue and the close observation; drain it before
			// reporting end of stream.
			chunk, err = s.in.ring.Dequeue()
			if err != nil {
				return 0, io.EOF
			}
		}
		s.cursor = chunk
	}
}

// tryWrite is the non-blocking write primitive. The whole of p is
// enqueued as one chunk or nothing is: iox.ErrWouldBlock reports a
// momentarily full ring, ErrBrokenPipe a closed outbound direction.
func (s *Socket) tryWrite(p []byte) (int, error) {
	if s.out.isClosed() {
		return 0, ErrBrokenPipe
	}
	if len(p) == 0 {
		return 0, nil
	}
	// Copy: the caller may reuse p before the peer consumes the chunk.
	chunk := make([]byte, len(p))
	copy(chunk, p)
	s.sendSlot = chunk
	if err := s.out.ring.Enqueue(&s.sendSlot); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Read consumes available inbound bytes in FIFO order, up to len(p).
// It blocks (adaptive backoff) while the direction is open and empty,
// and returns io.EOF exactly when the peer's direction is closed and
// fully drained. Reads at end of stream keep returning io.EOF.
func (s *Socket) Read(p []byte) (int, error) {
	var bo iox.Backoff
	for {
		n, err := s.tryRead(p)
		if err != iox.ErrWouldBlock {
			return n, err
		}
		bo.Wait()
	}
}

// Write appends p to the outbound direction. Either all of p is
// accepted or the call fails having accepted none of it: writes on a
// closed direction fail with ErrBrokenPipe, and a momentarily full ring
// is waited out with adaptive backoff (the only backpressure point).
func (s *Socket) Write(p []byte) (int, error) {
	var bo iox.Backoff
	for {
		n, err := s.tryWrite(p)
		if err != iox.ErrWouldBlock {
			return n, err
		}
		bo.Wait()
	}
}

// Shutdown half-closes the outbound direction. Bytes already written
// keep draining at the peer, which then observes io.EOF; further local
// writes fail with ErrBrokenPipe. The inbound direction is unaffected:
// the socket may still read after shutting down its own write side.
// A second Shutdown (or one after Close) fails with ErrAlreadyClosed.
func (s *Socket) Shutdown() error {
	if s.shut {
		return ErrAlreadyClosed
	}
	s.shut = true
	s.out.close()
	return nil
}

// Close drops the socket: a graceful Shutdown of the outbound direction
// plus closure of the inbound one, after which peer writes fail with
// ErrBrokenPipe. Bytes this socket already wrote remain readable by the
// peer. Close is idempotent and always returns nil.
func (s *Socket) Close() error {
	s.shut = true
	s.out.close()
	s.in.close()
	return nil
}
