// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package memsock_test

import (
	"code.hybscloud.com/kont"
	"code.hybscloud.com/memsock"
)

// execExpr drives a protocol to completion via a Step+Advance loop,
// retrying on iox.ErrWouldBlock (peer not ready yet). Used by stepping
// tests to exercise the non-blocking path.
func execExpr[R any](protocol kont.Expr[R]) kont.Either[error, R] {
	result, susp := memsock.Step[R](protocol)
	for susp != nil {
		var err error
		result, susp, err = memsock.Advance(susp)
		if err != nil {
			continue
		}
	}
	return result
}

// mustRight unwraps a Right result, reporting a Left as a test error
// value for the caller to assert on.
func mustRight[R any](e kont.Either[error, R]) (R, error) {
	if left, ok := e.GetLeft(); ok {
		var zero R
		return zero, left
	}
	right, _ := e.GetRight()
	return right, nil
}
