// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package memsock

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/lfq"
)

// ringCapacity is the bounded capacity, in chunks, of one pipe direction.
// 16 absorbs write bursts without a reader scheduled in between while
// keeping the per-connection footprint small; a writer that outruns the
// reader by more than this hits the iox.ErrWouldBlock boundary.
const ringCapacity = 16

// conduit is one direction of a duplex pipe: an ordered chunk ring with
// exactly one producing socket and one consuming socket, plus a closed
// flag. Once closed it accepts no further writes; the reader drains what
// remains and then observes end of stream.
type conduit struct {
	ring   lfq.SPSC[[]byte]
	closed atomix.Uint32
}

// close marks the direction closed. Never blocks; chunks already
// enqueued stay readable.
func (c *conduit) close() {
	c.closed.Store(1)
}

func (c *conduit) isClosed() bool {
	return c.closed.Load() != 0
}

// socketPair holds both sockets and both conduits in a single
// allocation; only the ring buffers are separate heap objects.
type socketPair struct {
	a  Socket
	b  Socket
	ab conduit
	ba conduit
}

// NewPair constructs both sides of a connected in-memory socket pair
// without involving a Registry or Listener. Each direction is a bounded
// lock-free SPSC chunk ring: socket A writes ring A→B and reads ring
// B→A, socket B the reverse. Both sockets share one Serial.
func NewPair() (*Socket, *Socket) {
	s := nextSerial()

	pair := &socketPair{}
	pair.ab.ring.Init(ringCapacity)
	pair.ba.ring.Init(ringCapacity)

	pair.a = Socket{out: &pair.ab, in: &pair.ba, serial: s}
	pair.b = Socket{out: &pair.ba, in: &pair.ab, serial: s}
	return &pair.a, &pair.b
}
