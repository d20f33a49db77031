// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corun

import (
	"code.hybscloud.com/kont"
)

// Loop iterates a multi-cycle body (Cont-world).
// body returns Left(nextState) to run again or Right(result) to finish.
// Each iteration may suspend any number of times.
func Loop[S, A any](initial S, body func(S) kont.Eff[kont.Either[S, A]]) kont.Eff[A] {
	return kont.Bind(body(initial), func(e kont.Either[S, A]) kont.Eff[A] {
		if next, ok := e.GetLeft(); ok {
			return Loop(next, body)
		}
		result, _ := e.GetRight()
		return kont.Pure(result)
	})
}

// Repeat runs body n times with indices 0..n-1 (Cont-world).
func Repeat(n int, body func(i int) kont.Eff[struct{}]) kont.Eff[struct{}] {
	return Loop(0, func(i int) kont.Eff[kont.Either[int, struct{}]] {
		if i >= n {
			return kont.Pure(kont.Right[int](struct{}{}))
		}
		return kont.Then(body(i), kont.Pure(kont.Left[int, struct{}](i+1)))
	})
}

// ExprLoop iterates a multi-cycle body (Expr-world).
// body returns Left(nextState) to run again or Right(result) to finish.
// Iterations that complete without suspending are unrolled eagerly;
// otherwise ExprBind is fused inline to avoid the type-erasing wrapper closure.
func ExprLoop[S, A any](initial S, body func(S) kont.Expr[kont.Either[S, A]]) kont.Expr[A] {
	m := body(initial)
	for {
		if _, ok := m.Frame.(kont.ReturnFrame); !ok {
			break
		}
		next, ok := m.Value.GetLeft()
		if !ok {
			result, _ := m.Value.GetRight()
			return kont.ExprReturn(result)
		}
		m = body(next)
	}
	bf := kont.AcquireBindFrame()
	bf.F = func(a kont.Erased) kont.Expr[kont.Erased] {
		e := a.(kont.Either[S, A])
		if next, ok := e.GetLeft(); ok {
			result := ExprLoop(next, body)
			return kont.Expr[kont.Erased]{Value: kont.Erased(result.Value), Frame: result.Frame}
		}
		result, _ := e.GetRight()
		return kont.Expr[kont.Erased]{Value: kont.Erased(result), Frame: exprReturnFrame}
	}
	bf.Next = exprReturnFrame
	var zero A
	return kont.Expr[A]{
		Value: zero,
		Frame: kont.ChainFrames(m.Frame, bf),
	}
}

// ExprRepeat runs body n times with indices 0..n-1 (Expr-world).
func ExprRepeat(n int, body func(i int) kont.Expr[struct{}]) kont.Expr[struct{}] {
	return ExprLoop(0, func(i int) kont.Expr[kont.Either[int, struct{}]] {
		if i >= n {
			return kont.ExprReturn(kont.Right[int](struct{}{}))
		}
		step := body(i)
		return kont.ExprMap(step, func(struct{}) kont.Either[int, struct{}] {
			return kont.Left[int, struct{}](i + 1)
		})
	})
}
