// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package memsock

import (
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// Run drives two Cont-world socket protocols — typically a dialer side
// and an accepter side of the same connection — interleaved on the
// calling goroutine, using adaptive backoff (iox.Backoff) when neither
// side can make progress. Does not spawn goroutines or create channels.
// Each result is Right on completion or Left on that side's first
// terminal operation failure.
func Run[A, B any](a kont.Eff[A], b kont.Eff[B]) (kont.Either[error, A], kont.Either[error, B]) {
	return RunExpr(Reify(a), Reify(b))
}

// RunExpr drives two Expr-world socket protocols interleaved on the
// calling goroutine, using adaptive backoff when neither side can make
// progress. Each result is Right on completion or Left on that side's
// first terminal operation failure.
func RunExpr[A, B any](a kont.Expr[A], b kont.Expr[B]) (kont.Either[error, A], kont.Either[error, B]) {
	resultA, suspA := Step[A](a)
	resultB, suspB := Step[B](b)
	var bo iox.Backoff

	for suspA != nil || suspB != nil {
		progress := false
		if suspA != nil {
			var err error
			resultA, suspA, err = Advance[A](suspA)
			if err == nil {
				progress = true
			}
		}
		if suspB != nil {
			var err error
			resultB, suspB, err = Advance[B](suspB)
			if err == nil {
				progress = true
			}
		}
		if !progress {
			bo.Wait()
		} else {
			bo.Reset()
		}
	}
	return resultA, resultB
}
