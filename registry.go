// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package memsock

import (
	"sync"

	"github.com/pkg/errors"
)

// Addr is the process-local logical address a listener binds to and a
// dial targets. It has no external resolvability. Address 0 is reserved
// to request auto-assignment.
type Addr = uint16

// Registry maps addresses to live listeners. It is an explicit, owned
// value: construct one per scope that needs Bind/Dial and share it by
// reference, so isolated registries never interfere.
//
// One mutex serializes every mutation — bind, dial, unbind and backlog
// push/pop — so none of them ever interleaves partially. The registry
// is safe for concurrent use.
type Registry struct {
	mu       sync.Mutex
	entries  map[Addr]*Listener
	nextAddr Addr
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries:  make(map[Addr]*Listener),
		nextAddr: 1,
	}
}

// Bind reserves addr and returns a listener with an unbounded backlog:
// dials accumulate until accepted and never block. Binding addr 0
// auto-assigns a free address, found by a rolling scan that wraps at
// the top of the address space; Listener.Addr reports the pick. Fails
// with ErrAddressInUse when addr has a live listener, or when the
// auto-assignment scan comes up empty.
func (r *Registry) Bind(addr Addr) (*Listener, error) {
	return r.BindBacklog(addr, 0)
}

// BindBacklog is Bind with a bounded backlog of at most limit pending
// halves: dials beyond the limit fail fast with ErrBacklogFull instead
// of queuing indefinitely. limit 0 means unbounded.
func (r *Registry) BindBacklog(addr Addr, limit int) (*Listener, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if addr == 0 {
		start := r.nextAddr
		for {
			if _, ok := r.entries[r.nextAddr]; !ok && r.nextAddr != 0 {
				break
			}
			r.nextAddr++
			if r.nextAddr == start {
				return nil, errors.Wrap(ErrAddressInUse, "bind: no free address")
			}
		}
		addr = r.nextAddr
		r.nextAddr++
	} else if _, ok := r.entries[addr]; ok {
		return nil, errors.Wrapf(ErrAddressInUse, "bind %d", addr)
	}

	l := &Listener{reg: r, addr: addr, limit: limit}
	r.entries[addr] = l
	return l, nil
}

// Dial connects to the listener bound to addr: it builds a fresh socket
// pair, pushes one half onto the listener's backlog for a pending or
// future Accept, and returns the other half already connected. Dial
// never blocks. It fails with ErrConnectionRefused when addr has no
// live listener and with ErrBacklogFull when a bounded backlog is at
// capacity.
func (r *Registry) Dial(addr Addr) (*Socket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.entries[addr]
	if !ok {
		return nil, errors.Wrapf(ErrConnectionRefused, "dial %d", addr)
	}
	if l.limit > 0 && len(l.backlog) >= l.limit {
		return nil, errors.Wrapf(ErrBacklogFull, "dial %d", addr)
	}
	local, remote := NewPair()
	l.backlog = append(l.backlog, remote)
	return local, nil
}
