// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package memsock provides an in-process substitute for a stream-oriented
// socket pair: a [Listener] accepting connections on a logical address and
// a [Socket] carrying a full-duplex byte stream, with no real network
// underneath.
//
// # Architecture
//
//   - Transport: each direction of a connected pair is a bounded lock-free
//     SPSC chunk ring via [code.hybscloud.com/lfq] plus an atomic closed
//     flag via [code.hybscloud.com/atomix]. [NewPair] creates a connected
//     [Socket] pair directly.
//   - Registry: an explicit, owned [Registry] value maps addresses to
//     listeners. [Registry.Bind] reserves an address (0 auto-assigns),
//     [Registry.Dial] pairs a fresh socket with a pending half on the
//     target listener's backlog. Registries are independent; tests run
//     isolated registries in parallel.
//   - Non-blocking core: primitive operations return
//     [code.hybscloud.com/iox.ErrWouldBlock] at the I/O boundary.
//   - Blocking flavor: [Socket.Read], [Socket.Write], [Listener.Accept]
//     wait past the boundary with adaptive backoff (iox.Backoff).
//   - Suspending flavor: the same operations as effect operations on
//     [code.hybscloud.com/kont], evaluated cooperatively with [Step] and
//     [Advance], blockingly with [Exec], or interleaved on one goroutine
//     with [Run]. Both flavors are identical at the byte level.
//
// # API Topologies
//
//   - Blocking: [Registry.Bind], [Registry.Dial], [Listener.Accept],
//     [Socket.Read], [Socket.Write], [Socket.Shutdown], [Socket.Close].
//   - Operations: [Accept], [Dial], [Read], [Write], [Shutdown].
//   - Cont-world: [AcceptBind], [DialBind], [ReadBind], [WriteThen],
//     [ShutdownThen], [ReadAll]. Bridge via [Reify] and [Reflect].
//   - Expr-world: zero-allocation variants [ExprAcceptBind],
//     [ExprDialBind], [ExprReadBind], [ExprWriteThen], [ExprShutdownThen].
//
// # Close semantics
//
// [Socket.Shutdown] half-closes the outbound direction: bytes already
// written keep draining at the peer, which then observes io.EOF; further
// local writes fail with [ErrBrokenPipe]. [Socket.Close] additionally
// closes the inbound direction, so subsequent peer writes fail with
// [ErrBrokenPipe]. EOF is idempotent: reads at end of stream keep
// returning io.EOF without blocking. Closing a [Listener] releases its
// address and refuses every still-pending half.
//
// # Example
//
//	reg := memsock.NewRegistry()
//	ln, _ := reg.Bind(7)
//	go func() {
//		peer, _ := ln.Accept()
//		peer.Write([]byte("hello"))
//		peer.Shutdown()
//	}()
//	conn, _ := reg.Dial(7)
//	buf, _ := io.ReadAll(conn)
package memsock
