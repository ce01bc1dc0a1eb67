// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package memsock

import (
	"code.hybscloud.com/kont"
)

// exprReturnFrame is the pre-allocated terminal frame shared by every
// Expr-world combinator below.
var exprReturnFrame kont.Frame = kont.ReturnFrame{}

// identityResume is the identity resume function for EffectFrame
// construction. Named function produces a static function value,
// consistent with kont convention.
func identityResume(v kont.Erased) kont.Erased { return v }

// socketBindUnwind resumes a *Socket-valued operation (Accept, Dial)
// into its continuation.
func socketBindUnwind[B any](data, _, _ kont.Erased, current kont.Erased) (kont.Erased, kont.Frame) {
	f := data.(func(*Socket) kont.Expr[B])
	result := f(current.(*Socket))
	return kont.Erased(result.Value), result.Frame
}

// ExprAcceptBind accepts a pending connection and passes it to f.
// Fuses ExprPerform(Accept{...}) + ExprBind.
func ExprAcceptBind[B any](l *Listener, f func(*Socket) kont.Expr[B]) kont.Expr[B] {
	bf := kont.AcquireUnwindFrame()
	bf.Data1 = f
	bf.Unwind = socketBindUnwind[B]
	ef := kont.AcquireEffectFrame()
	ef.Operation = Accept{Listener: l}
	ef.Resume = identityResume
	ef.Next = bf
	return kont.ExprSuspend[B](ef)
}

// ExprDialBind connects to addr and passes the connected socket to f.
// Fuses ExprPerform(Dial{...}) + ExprBind.
func ExprDialBind[B any](r *Registry, addr Addr, f func(*Socket) kont.Expr[B]) kont.Expr[B] {
	bf := kont.AcquireUnwindFrame()
	bf.Data1 = f
	bf.Unwind = socketBindUnwind[B]
	ef := kont.AcquireEffectFrame()
	ef.Operation = Dial{Registry: r, Addr: addr}
	ef.Resume = identityResume
	ef.Next = bf
	return kont.ExprSuspend[B](ef)
}

func readBindUnwind[B any](data, _, _ kont.Erased, current kont.Erased) (kont.Erased, kont.Frame) {
	f := data.(func([]byte) kont.Expr[B])
	result := f(current.([]byte))
	return kont.Erased(result.Value), result.Frame
}

// ExprReadBind reads up to maxLen bytes and passes them to f; a
// zero-length slice signals end of stream.
// Fuses ExprPerform(Read{...}) + ExprBind.
func ExprReadBind[B any](s *Socket, maxLen int, f func([]byte) kont.Expr[B]) kont.Expr[B] {
	bf := kont.AcquireUnwindFrame()
	bf.Data1 = f
	bf.Unwind = readBindUnwind[B]
	ef := kont.AcquireEffectFrame()
	ef.Operation = Read{Socket: s, MaxLen: maxLen}
	ef.Resume = identityResume
	ef.Next = bf
	return kont.ExprSuspend[B](ef)
}

// ExprWriteThen writes p whole and then continues with next.
// Fuses ExprPerform(Write{...}) + ExprThen.
func ExprWriteThen[B any](s *Socket, p []byte, next kont.Expr[B]) kont.Expr[B] {
	tf := kont.AcquireThenFrame()
	tf.Second = kont.Expr[kont.Erased]{Value: kont.Erased(next.Value), Frame: next.Frame}
	tf.Next = exprReturnFrame
	ef := kont.AcquireEffectFrame()
	ef.Operation = Write{Socket: s, Data: p}
	ef.Resume = identityResume
	ef.Next = tf
	return kont.ExprSuspend[B](ef)
}

// ExprShutdownThen half-closes the outbound direction and then
// continues with next. Fuses ExprPerform(Shutdown{...}) + ExprThen.
func ExprShutdownThen[B any](s *Socket, next kont.Expr[B]) kont.Expr[B] {
	tf := kont.AcquireThenFrame()
	tf.Second = kont.Expr[kont.Erased]{Value: kont.Erased(next.Value), Frame: next.Frame}
	tf.Next = exprReturnFrame
	ef := kont.AcquireEffectFrame()
	ef.Operation = Shutdown{Socket: s}
	ef.Resume = identityResume
	ef.Next = tf
	return kont.ExprSuspend[B](ef)
}

// ExprShutdownDone half-closes the outbound direction and returns a.
// Fuses ExprPerform(Shutdown{...}) + ExprThen + ExprReturn.
func ExprShutdownDone[A any](s *Socket, a A) kont.Expr[A] {
	tf := kont.AcquireThenFrame()
	tf.Second = kont.Expr[kont.Erased]{Value: kont.Erased(a), Frame: exprReturnFrame}
	tf.Next = exprReturnFrame
	ef := kont.AcquireEffectFrame()
	ef.Operation = Shutdown{Socket: s}
	ef.Resume = identityResume
	ef.Next = tf
	return kont.ExprSuspend[A](ef)
}
