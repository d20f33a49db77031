// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corun

// Input is what a computation receives on every resume: a lease on the
// current cycle's parameter bundle and the value of the Awaitable it
// last yielded.
type Input[P any] struct {
	lease Lease[P]
	value Value
}

// Params returns the lease on the current parameter bundle.
func (in Input[P]) Params() Lease[P] { return in.lease }

// Value returns the resumption value. It is empty on the first resume.
func (in Input[P]) Value() Value { return in.value }

// Control is the result of one Resume: either a yielded Awaitable or
// completion.
type Control struct {
	await Awaitable
	done  bool
}

// Yield suspends the computation on a.
func Yield(a Awaitable) Control { return Control{await: a} }

// Finish completes the computation.
func Finish() Control { return Control{done: true} }

// Finished reports whether the computation completed.
func (c Control) Finished() bool { return c.done }

// Await returns the yielded Awaitable, or nil after Finish.
func (c Control) Await() Awaitable { return c.await }

// Computation is a resumable computation over parameter bundles of type P.
//
// Resume runs synchronously until the computation yields an Awaitable
// or finishes. It must reject a value whose type disagrees with the
// previously yielded Awaitable with ErrTypeMismatch, and any call after
// Finish with ErrInvalidState. A Computation is owned by one Task and is
// never resumed concurrently.
//
// References obtained from Input.Params are valid only until Resume
// returns.
type Computation[P any] interface {
	Resume(in Input[P]) (Control, error)
}

// Factory builds a fresh computation in its not-started state.
// The driver calls it once per run of an instance.
type Factory[P any] func() Computation[P]
