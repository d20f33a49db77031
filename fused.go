// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corun

import (
	"time"

	"code.hybscloud.com/kont"
)

// SleepThen waits d and then continues with next.
// Fuses Perform(Sleep{Duration: d}) + Then.
func SleepThen[B any](d time.Duration, next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(Sleep{Duration: d}), next)
}

// SleepBind waits d and passes the wake-up instant to f.
// Fuses Perform(Sleep{Duration: d}) + Bind.
func SleepBind[B any](d time.Duration, f func(time.Time) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(Sleep{Duration: d}), f)
}

// NextFrameThen waits for the next cycle and continues with next.
// Fuses Perform(NextFrame{}) + Then.
func NextFrameThen[B any](next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(NextFrame{}), next)
}

// NoopThen passes through a same-cycle suspension point and continues
// with next. Fuses Perform(Noop{}) + Then.
func NoopThen[B any](next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(Noop{}), next)
}

// SpawnBind runs work in the background and passes its outcome to f.
// Fuses Perform(Spawn[V]{Work: work}) + Bind.
func SpawnBind[V, B any](work func() (V, error), f func(kont.Either[error, V]) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(Spawn[V]{Work: work}), f)
}

// BorrowBind passes a lease on the current parameter bundle to f.
// Fuses Perform(Borrow[P]{}) + Bind. Call it again after every
// suspension point instead of reusing an earlier lease.
func BorrowBind[P, B any](f func(Lease[P]) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(Borrow[P]{}), f)
}

// Done completes a computation.
func Done() kont.Eff[struct{}] {
	return kont.Pure(struct{}{})
}
