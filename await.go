// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corun

import (
	"fmt"
	"time"

	"code.hybscloud.com/kont"
)

// Kind tags an Awaitable and the resumption value it produces.
type Kind uint8

const (
	// KindNone tags the empty resumption value of a computation's first resume.
	KindNone Kind = iota
	// KindSleep tags Sleep.
	KindSleep
	// KindNextFrame tags NextFrame.
	KindNextFrame
	// KindNoop tags Noop.
	KindNoop
	// KindSpawn tags Spawn.
	KindSpawn
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindSleep:
		return "sleep"
	case KindNextFrame:
		return "next-frame"
	case KindNoop:
		return "noop"
	case KindSpawn:
		return "spawn"
	}
	return "kind(" + fmt.Sprint(uint8(k)) + ")"
}

// Awaitable is a suspension request issued by a computation.
// The set is closed: Sleep, NextFrame, Noop and Spawn.
//
// Every Awaitable is also a kont effect operation, so kont programs
// perform it directly with kont.Perform or kont.ExprPerform.
type Awaitable interface {
	// Kind returns the variant tag.
	Kind() Kind

	accepts(v kont.Resumed) bool
	payloadType() string
}

// Sleep suspends until the driver clock reaches a deadline.
// Perform(Sleep{Duration: d}) resumes with the wake-up instant.
//
// A non-zero Deadline is used as is. Otherwise the deadline is the
// driver clock plus Duration, read when the driver receives the yield.
type Sleep struct {
	kont.Phantom[time.Time]
	Duration time.Duration
	Deadline time.Time
}

// After returns a Sleep that lasts d from the moment it is yielded.
func After(d time.Duration) Sleep { return Sleep{Duration: d} }

// Until returns a Sleep that lasts until t.
func Until(t time.Time) Sleep { return Sleep{Deadline: t} }

// Kind returns KindSleep.
func (Sleep) Kind() Kind { return KindSleep }

func (Sleep) accepts(v kont.Resumed) bool {
	_, ok := v.(time.Time)
	return ok
}

func (Sleep) payloadType() string { return "time.Time" }

func (s Sleep) deadline(now time.Time) time.Time {
	if !s.Deadline.IsZero() {
		return s.Deadline
	}
	return now.Add(s.Duration)
}

// NextFrame suspends until the following cycle.
// Perform(NextFrame{}) resumes with struct{}{}.
type NextFrame struct {
	kont.Phantom[struct{}]
}

// Kind returns KindNextFrame.
func (NextFrame) Kind() Kind { return KindNextFrame }

func (NextFrame) accepts(v kont.Resumed) bool {
	_, ok := v.(struct{})
	return ok
}

func (NextFrame) payloadType() string { return "struct {}" }

// Noop resumes within the same driver step. It lets every branch of a
// computation pass through the same number of suspension points
// without costing a cycle.
type Noop struct {
	kont.Phantom[struct{}]
}

// Kind returns KindNoop.
func (Noop) Kind() Kind { return KindNoop }

func (Noop) accepts(v kont.Resumed) bool {
	_, ok := v.(struct{})
	return ok
}

func (Noop) payloadType() string { return "struct {}" }

// Spawn runs Work outside the driver and resumes once it returns.
// Perform(Spawn[V]{Work: w}) resumes with Right(v) on success and
// Left(*JobError) when Work returns an error or panics.
type Spawn[V any] struct {
	kont.Phantom[kont.Either[error, V]]
	Work func() (V, error)
}

// Background wraps an infallible function as a Spawn.
func Background[V any](work func() V) Spawn[V] {
	return Spawn[V]{Work: func() (V, error) { return work(), nil }}
}

// Kind returns KindSpawn.
func (Spawn[V]) Kind() Kind { return KindSpawn }

func (Spawn[V]) accepts(v kont.Resumed) bool {
	_, ok := v.(kont.Either[error, V])
	return ok
}

func (Spawn[V]) payloadType() string {
	return fmt.Sprintf("%T", kont.Either[error, V]{})
}

// run executes Work on the calling goroutine, capturing failure.
func (s Spawn[V]) run() (r kont.Either[error, V]) {
	defer func() {
		if p := recover(); p != nil {
			r = kont.Left[error, V](&JobError{Panic: p})
		}
	}()
	v, err := s.Work()
	if err != nil {
		return kont.Left[error, V](&JobError{Err: err})
	}
	return kont.Right[error](v)
}

// start hands the job to exec. done runs on the worker after Work returns.
func (s Spawn[V]) start(exec Executor, done func(time.Duration)) *Job {
	return startJob(exec, func() kont.Resumed { return s.run() }, done)
}

// spawner is the structural interface the driver dispatches through.
type spawner interface {
	Awaitable
	start(exec Executor, done func(time.Duration)) *Job
}

// Borrow requests the current cycle's parameter bundle without suspending.
// Perform(Borrow[P]{}) resumes immediately, inside the same Resume call,
// with a Lease that expires when that call returns.
type Borrow[P any] struct {
	kont.Phantom[Lease[P]]
}

// checkResumed validates v against the Awaitable a computation is
// suspended on. This is the single re-entry check.
func checkResumed(a Awaitable, v kont.Resumed) error {
	if a.accepts(v) {
		return nil
	}
	return &MismatchError{Kind: a.Kind(), Want: a.payloadType(), Got: fmt.Sprintf("%T", v)}
}
