// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package memsock

import (
	"io"

	"code.hybscloud.com/kont"
)

// connDispatcher is the structural interface for socket effect
// operations. DispatchConn is non-blocking and all-or-nothing: it
// returns iox.ErrWouldBlock at the I/O boundary with no state consumed
// (an abandoned suspension is as if the call had not been issued), and
// any other error is terminal for the operation.
type connDispatcher interface {
	DispatchConn() (kont.Resumed, error)
}

var (
	_ connDispatcher = Accept{}
	_ connDispatcher = Dial{}
	_ connDispatcher = Read{}
	_ connDispatcher = Write{}
	_ connDispatcher = Shutdown{}
)

// Accept is the effect operation for accepting a pending connection.
// Perform(Accept{Listener: l}) resumes with the accepted *Socket.
type Accept struct {
	kont.Phantom[*Socket]
	Listener *Listener
}

// DispatchConn pops the oldest pending half. Non-blocking: returns
// iox.ErrWouldBlock on an open empty backlog; ErrListenerClosed is
// terminal.
func (op Accept) DispatchConn() (kont.Resumed, error) {
	s, err := op.Listener.tryAccept()
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Dial is the effect operation for connecting to a bound address.
// Perform(Dial{Registry: r, Addr: a}) resumes with the connected
// *Socket.
type Dial struct {
	kont.Phantom[*Socket]
	Registry *Registry
	Addr     Addr
}

// DispatchConn pairs against the target listener. Never blocks:
// ErrConnectionRefused and ErrBacklogFull are terminal.
func (op Dial) DispatchConn() (kont.Resumed, error) {
	s, err := op.Registry.Dial(op.Addr)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Read is the effect operation for reading up to MaxLen inbound bytes.
// Perform(Read{Socket: s, MaxLen: n}) resumes with the bytes read; a
// zero-length result signals end of stream and is not an error.
type Read struct {
	kont.Phantom[[]byte]
	Socket *Socket
	MaxLen int
}

// DispatchConn consumes available inbound bytes. Non-blocking: returns
// iox.ErrWouldBlock while the direction is open and empty. End of
// stream resumes with an empty slice, idempotently.
func (op Read) DispatchConn() (kont.Resumed, error) {
	buf := make([]byte, op.MaxLen)
	n, err := op.Socket.tryRead(buf)
	if err == io.EOF {
		return []byte(nil), nil
	}
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}

// Write is the effect operation for writing Data to the peer.
// Perform(Write{Socket: s, Data: p}) resumes with len(p) once the whole
// of p is accepted.
type Write struct {
	kont.Phantom[int]
	Socket *Socket
	Data   []byte
}

// DispatchConn enqueues Data whole or not at all. Non-blocking: returns
// iox.ErrWouldBlock on a momentarily full ring; ErrBrokenPipe is
// terminal.
func (op Write) DispatchConn() (kont.Resumed, error) {
	n, err := op.Socket.tryWrite(op.Data)
	if err != nil {
		return nil, err
	}
	return n, nil
}

// Shutdown is the effect operation for half-closing the outbound
// direction. Perform(Shutdown{Socket: s}) resumes with struct{}{}.
type Shutdown struct {
	kont.Phantom[struct{}]
	Socket *Socket
}

// DispatchConn half-closes the outbound direction. Never blocks:
// ErrAlreadyClosed is terminal.
func (op Shutdown) DispatchConn() (kont.Resumed, error) {
	if err := op.Socket.Shutdown(); err != nil {
		return nil, err
	}
	return struct{}{}, nil
}
