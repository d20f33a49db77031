// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corun

import (
	"code.hybscloud.com/kont"
)

// Reify converts a Cont-world program to Expr-world, the form the driver
// steps. Awaitables and Borrow effects keep their positions, so the
// reified program suspends on exactly the same cycles.
func Reify[A any](m kont.Eff[A]) kont.Expr[A] {
	return kont.Reify(m)
}

// Reflect converts an Expr-world program to Cont-world, so an Expr
// fragment can be sequenced with Bind, Loop and the Cont-world
// combinators inside a program passed to FromEff.
func Reflect[A any](m kont.Expr[A]) kont.Eff[A] {
	return kont.Reflect(m)
}

// FromEff adapts a Cont-world program into a Factory. build is called
// once per run and its result reified before the first resume.
func FromEff[P, R any](build func() kont.Eff[R]) Factory[P] {
	if build == nil {
		panic("corun: nil Eff builder")
	}
	return FromExpr[P](func() kont.Expr[R] { return Reify(build()) })
}
