// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package memsock

import (
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// Step evaluates a socket protocol until the first effect suspension.
// Returns (Right(result), nil) on completion, or (zero, suspension) if
// an operation is pending. Drive pending suspensions with Advance.
func Step[R any](protocol kont.Expr[R]) (kont.Either[error, R], *kont.Suspension[kont.Either[error, R]]) {
	wrapped := kont.ExprMap(protocol, func(r R) kont.Either[error, R] {
		return kont.Right[error, R](r)
	})
	return kont.StepExpr(wrapped)
}

// Advance dispatches the suspended socket operation. Dispatch is
// non-blocking and all-or-nothing.
//
// On success (nil error) the suspension is consumed and the protocol
// advances to the next effect or completion. On iox.ErrWouldBlock the
// suspension is unconsumed and may be retried once the peer makes
// progress; abandoning it instead leaves all pipe and backlog state
// exactly as if the operation had never been issued. Any other
// operation failure (ErrBrokenPipe, ErrListenerClosed, ...) is
// terminal: the suspension is discarded and the protocol completes
// with Left(err).
func Advance[R any](susp *kont.Suspension[kont.Either[error, R]]) (kont.Either[error, R], *kont.Suspension[kont.Either[error, R]], error) {
	cop, ok := susp.Op().(connDispatcher)
	if !ok {
		panic("memsock: unhandled effect in Advance")
	}
	v, err := cop.DispatchConn()
	if err == iox.ErrWouldBlock {
		var zero kont.Either[error, R]
		return zero, susp, err
	}
	if err != nil {
		susp.Discard()
		return kont.Left[error, R](err), nil, nil
	}
	result, next := susp.Resume(v)
	return result, next, nil
}
