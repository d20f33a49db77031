// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corun

import (
	"fmt"

	"code.hybscloud.com/kont"
)

type exprPhase uint8

const (
	exprNew exprPhase = iota
	exprSuspended
	exprDone
)

// exprComputation steps a kont Expr one Awaitable at a time.
// Borrow effects are resolved inline with the current lease.
type exprComputation[P, R any] struct {
	phase exprPhase
	expr  kont.Expr[R]
	susp  *kont.Suspension[R]
	await Awaitable
}

// FromExpr adapts an Expr-world program into a Factory. build is called
// once per run, since an evaluated frame chain cannot be replayed.
// The program's result is discarded.
func FromExpr[P, R any](build func() kont.Expr[R]) Factory[P] {
	if build == nil {
		panic("corun: nil Expr builder")
	}
	return func() Computation[P] {
		return &exprComputation[P, R]{expr: build()}
	}
}

// Resume implements Computation.
func (c *exprComputation[P, R]) Resume(in Input[P]) (Control, error) {
	var susp *kont.Suspension[R]
	switch c.phase {
	case exprDone:
		return Control{}, ErrInvalidState
	case exprNew:
		_, susp = kont.StepExpr(c.expr)
		c.expr = kont.Expr[R]{}
	case exprSuspended:
		if err := checkResumed(c.await, in.value.payload); err != nil {
			c.susp.Discard()
			c.phase, c.susp, c.await = exprDone, nil, nil
			return Control{}, err
		}
		_, susp = c.susp.Resume(in.value.payload)
		c.susp, c.await = nil, nil
	}
	for susp != nil {
		switch op := susp.Op().(type) {
		case Borrow[P]:
			_, susp = susp.Resume(in.lease)
		case Awaitable:
			c.phase, c.susp, c.await = exprSuspended, susp, op
			return Yield(op), nil
		default:
			susp.Discard()
			c.phase = exprDone
			return Control{}, fmt.Errorf("%w: %T", ErrUnhandledEffect, op)
		}
	}
	c.phase = exprDone
	return Finish(), nil
}
