// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corun

import (
	"time"

	"code.hybscloud.com/kont"
)

// Pre-allocated erased operations and frames to eliminate heap escapes
// when boxing empty structs into any/kont.Frame during Expr-world execution.
var (
	exprReturnFrame kont.Frame  = kont.ReturnFrame{}
	exprNextFrame   kont.Erased = NextFrame{}
	exprNoop        kont.Erased = Noop{}
)

// identityResume is the identity resume function for EffectFrame construction.
func identityResume(v kont.Erased) kont.Erased { return v }

// exprThen suspends on op, discards its value and continues with next.
func exprThen[B any](op kont.Erased, next kont.Expr[B]) kont.Expr[B] {
	tf := kont.AcquireThenFrame()
	tf.Second = kont.Expr[kont.Erased]{Value: kont.Erased(next.Value), Frame: next.Frame}
	tf.Next = exprReturnFrame
	ef := kont.AcquireEffectFrame()
	ef.Operation = op
	ef.Resume = identityResume
	ef.Next = tf
	return kont.ExprSuspend[B](ef)
}

func bindUnwind[T, B any](data, _, _ kont.Erased, current kont.Erased) (kont.Erased, kont.Frame) {
	f := data.(func(T) kont.Expr[B])
	result := f(current.(T))
	return kont.Erased(result.Value), result.Frame
}

// exprBind suspends on op and passes its value of type T to f.
func exprBind[T, B any](op kont.Erased, f func(T) kont.Expr[B]) kont.Expr[B] {
	bf := kont.AcquireUnwindFrame()
	bf.Data1 = f
	bf.Unwind = bindUnwind[T, B]
	ef := kont.AcquireEffectFrame()
	ef.Operation = op
	ef.Resume = identityResume
	ef.Next = bf
	return kont.ExprSuspend[B](ef)
}

// ExprSleepThen waits d and then continues with next.
// Fuses ExprPerform(Sleep{Duration: d}) + ExprThen.
func ExprSleepThen[B any](d time.Duration, next kont.Expr[B]) kont.Expr[B] {
	return exprThen(Sleep{Duration: d}, next)
}

// ExprSleepBind waits d and passes the wake-up instant to f.
// Fuses ExprPerform(Sleep{Duration: d}) + ExprBind.
func ExprSleepBind[B any](d time.Duration, f func(time.Time) kont.Expr[B]) kont.Expr[B] {
	return exprBind(Sleep{Duration: d}, f)
}

// ExprNextFrameThen waits for the next cycle and continues with next.
// Fuses ExprPerform(NextFrame{}) + ExprThen.
func ExprNextFrameThen[B any](next kont.Expr[B]) kont.Expr[B] {
	return exprThen(exprNextFrame, next)
}

// ExprNoopThen passes through a same-cycle suspension point and
// continues with next. Fuses ExprPerform(Noop{}) + ExprThen.
func ExprNoopThen[B any](next kont.Expr[B]) kont.Expr[B] {
	return exprThen(exprNoop, next)
}

// ExprSpawnBind runs work in the background and passes its outcome to f.
// Fuses ExprPerform(Spawn[V]{Work: work}) + ExprBind.
func ExprSpawnBind[V, B any](work func() (V, error), f func(kont.Either[error, V]) kont.Expr[B]) kont.Expr[B] {
	return exprBind(Spawn[V]{Work: work}, f)
}

// ExprBorrowBind passes a lease on the current parameter bundle to f.
// Fuses ExprPerform(Borrow[P]{}) + ExprBind.
func ExprBorrowBind[P, B any](f func(Lease[P]) kont.Expr[B]) kont.Expr[B] {
	return exprBind(Borrow[P]{}, f)
}

// ExprDone completes a computation.
func ExprDone() kont.Expr[struct{}] {
	return kont.ExprReturn(struct{}{})
}
