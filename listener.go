// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package memsock

import (
	"iter"

	"code.hybscloud.com/iox"
)

// Listener owns an address reservation in a Registry and a FIFO backlog
// of connection halves pushed by dials and popped by accepts. Backlog
// mutations share the owning Registry's lock, so a dial that observed
// the listener either completes pairing or sees it already closed,
// never a half-closed state.
type Listener struct {
	reg  *Registry
	addr Addr

	// Guarded by reg.mu.
	backlog []*Socket
	limit   int // 0 = unbounded
	closed  bool
}

// Addr returns the address the listener is bound to. With auto-assigned
// binds this is the address the Registry picked.
func (l *Listener) Addr() Addr {
	return l.addr
}

// tryAccept is the non-blocking accept primitive: it pops the oldest
// pending half, or reports iox.ErrWouldBlock on an open empty backlog
// and ErrListenerClosed once the listener is closed.
func (l *Listener) tryAccept() (*Socket, error) {
	l.reg.mu.Lock()
	defer l.reg.mu.Unlock()
	if l.closed {
		return nil, ErrListenerClosed
	}
	if len(l.backlog) == 0 {
		return nil, iox.ErrWouldBlock
	}
	s := l.backlog[0]
	l.backlog[0] = nil
	l.backlog = l.backlog[1:]
	return s, nil
}

// Accept removes and returns the oldest pending connection half,
// already connected to the socket its dial returned. It blocks
// (adaptive backoff) while the backlog is empty and fails with
// ErrListenerClosed once the listener is closed, including for halves
// discarded by that close.
func (l *Listener) Accept() (*Socket, error) {
	var bo iox.Backoff
	for {
		s, err := l.tryAccept()
		if err != iox.ErrWouldBlock {
			return s, err
		}
		bo.Wait()
	}
}

// Incoming ranges over accepted sockets until the listener is closed.
// Equivalent to calling Accept in a loop and stopping on its first
// error.
func (l *Listener) Incoming() iter.Seq[*Socket] {
	return func(yield func(*Socket) bool) {
		for {
			s, err := l.Accept()
			if err != nil {
				return
			}
			if !yield(s) {
				return
			}
		}
	}
}

// Close releases the listener's address for reuse and refuses every
// still-pending half: their dialers' sockets observe io.EOF on read and
// ErrBrokenPipe on write rather than silent success. Blocked Accept
// calls return ErrListenerClosed. Close is idempotent.
func (l *Listener) Close() error {
	l.reg.mu.Lock()
	defer l.reg.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true
	delete(l.reg.entries, l.addr)
	for _, s := range l.backlog {
		s.Close()
	}
	l.backlog = nil
	return nil
}
