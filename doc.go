// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package corun runs resumable computations across the cycles ("frames")
// of a host application loop, built on algebraic effects from
// [code.hybscloud.com/kont].
//
// A computation suspends at explicit points by yielding an [Awaitable]
// and is resumed on a later cycle with a fresh, host-owned parameter
// bundle. The host calls the [Driver] once per cycle; the driver makes at
// most one resumption attempt per instance per cycle.
//
// # Architecture
//
//   - Awaitables: [Sleep], [NextFrame], [Noop] and [Spawn]. Each is a kont effect operation.
//   - Computations: the [Computation] contract; kont programs adapt via [FromExpr] and [FromEff].
//   - Parameters: every resume lends the bundle through a [Lease] that is revoked when Resume returns. [Borrow] re-acquires it.
//   - Background work: [Spawn] dispatches to an [Executor]; the [Job] handle is polled, returning [code.hybscloud.com/iox.ErrWouldBlock] while pending. Results cross back over a lock-free SPSC queue from [code.hybscloud.com/lfq].
//   - Bookkeeping: the [Registry] answers "is this instance running" for any goroutine.
//
// # Execution Modes
//
//   - One-shot: [Driver.Step], [Driver.Continue], [Driver.Trigger] with [Driver.Pump], and [Driver.Run]. A completed instance is dropped.
//   - Continuous: [Driver.Tick] every cycle. A completed instance restarts from the beginning on the next Tick.
//
// # Combinators
//
//   - Cont-world: [SleepThen], [SleepBind], [NextFrameThen], [NoopThen], [SpawnBind], [BorrowBind], [Loop], [Repeat].
//   - Expr-world: [ExprSleepThen], [ExprSleepBind], [ExprNextFrameThen], [ExprNoopThen], [ExprSpawnBind], [ExprBorrowBind], [ExprLoop], [ExprRepeat].
//
// # Faults
//
// Contract violations ([ErrTypeMismatch], [ErrInvalidState], [ErrRunaway],
// [ErrDuplicateDispatch], [ErrUnhandledEffect], [ErrPanicked]) are returned
// as a [*Fault] and tear down only the offending instance. A failed
// background job is not a fault: the computation receives Left(*[JobError]).
//
// # Example
//
//	type World struct{ Log []string }
//
//	d := corun.NewDriver[*World]()
//	d.Register("greet", corun.FromEff[*World](func() kont.Eff[struct{}] {
//		return corun.BorrowBind(func(l corun.Lease[*World]) kont.Eff[struct{}] {
//			l.Get().Log = append(l.Get().Log, "hello")
//			return corun.SleepThen(time.Second,
//				corun.BorrowBind(func(l corun.Lease[*World]) kont.Eff[struct{}] {
//					l.Get().Log = append(l.Get().Log, "world")
//					return corun.Done()
//				}))
//		})
//	}))
//	for {
//		if out, _ := d.Step("greet", world); out == corun.Completed {
//			break
//		}
//	}
package corun
