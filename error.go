// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package memsock

import (
	"github.com/pkg/errors"
)

// Failure conditions surfaced by the blocking and suspending flavors
// alike. All are terminal for the failing call: nothing is retried or
// swallowed internally. End of stream is io.EOF, not one of these.
// The retryable non-blocking boundary is iox.ErrWouldBlock; it never
// escapes the blocking flavor.
var (
	// ErrAddressInUse reports a bind on an address with a live listener,
	// or an exhausted auto-assignment space.
	ErrAddressInUse = errors.New("memsock: address in use")

	// ErrConnectionRefused reports a dial on an address with no live
	// listener.
	ErrConnectionRefused = errors.New("memsock: connection refused")

	// ErrListenerClosed reports an accept on a closed listener. Pending
	// halves discarded at close time are refused, not delivered.
	ErrListenerClosed = errors.New("memsock: listener closed")

	// ErrBrokenPipe reports a write on a closed outbound direction:
	// after a local Shutdown, or after the peer socket was closed.
	ErrBrokenPipe = errors.New("memsock: broken pipe")

	// ErrAlreadyClosed reports a duplicate Shutdown.
	ErrAlreadyClosed = errors.New("memsock: already shut down")

	// ErrBacklogFull reports a dial against a bounded backlog at
	// capacity. Dial fails fast rather than wait for an accept.
	ErrBacklogFull = errors.New("memsock: listener backlog full")
)
