// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package memsock

import (
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// connHandler implements kont.Handler for socket effects. Waits past the
// iox.ErrWouldBlock boundary with adaptive backoff, converting the
// non-blocking dispatch into blocking evaluation for Exec/ExecExpr.
// Terminal operation failures short-circuit the protocol to Left.
type connHandler[R any] struct{}

// Dispatch implements kont.Handler via structural interface assertion.
func (h connHandler[R]) Dispatch(op kont.Operation) (kont.Resumed, bool) {
	cop, ok := op.(connDispatcher)
	if !ok {
		panic("memsock: unhandled effect in connHandler")
	}
	var bo iox.Backoff
	for {
		v, err := cop.DispatchConn()
		if err == nil {
			return v, true
		}
		if err != iox.ErrWouldBlock {
			return kont.Left[error, R](err), false
		}
		bo.Wait()
	}
}

// Exec runs a Cont-world socket protocol to completion on the calling
// goroutine, blocking on iox.ErrWouldBlock via adaptive backoff
// (iox.Backoff), without spawning goroutines or creating channels.
// Returns Either[error, R] — Right on completion, Left on the first
// terminal operation failure.
func Exec[R any](protocol kont.Eff[R]) kont.Either[error, R] {
	wrapped := kont.Map[kont.Resumed, R, kont.Either[error, R]](protocol, func(r R) kont.Either[error, R] {
		return kont.Right[error, R](r)
	})
	return kont.Handle(wrapped, connHandler[R]{})
}

// ExecExpr runs an Expr-world socket protocol to completion on the
// calling goroutine, blocking on iox.ErrWouldBlock via adaptive backoff.
// Returns Either[error, R] — Right on completion, Left on the first
// terminal operation failure.
func ExecExpr[R any](protocol kont.Expr[R]) kont.Either[error, R] {
	wrapped := kont.ExprMap(protocol, func(r R) kont.Either[error, R] {
		return kont.Right[error, R](r)
	})
	return kont.HandleExpr(wrapped, connHandler[R]{})
}
