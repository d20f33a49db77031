// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corun

import (
	"errors"
	"fmt"
	"strconv"
)

// Sentinel errors. Driver faults wrap exactly one of them.
var (
	// ErrTypeMismatch indicates a resumption value whose type disagrees
	// with the Awaitable that suspended the computation.
	ErrTypeMismatch = errors.New("corun: resumption value type mismatch")

	// ErrInvalidState indicates a computation resumed after it finished,
	// or a driver operation issued against an instance in the wrong phase.
	ErrInvalidState = errors.New("corun: invalid computation state")

	// ErrRunaway indicates a chain of Noop suspensions longer than the
	// configured limit within a single step.
	ErrRunaway = errors.New("corun: runaway computation")

	// ErrDuplicateDispatch indicates a background job dispatched while
	// another one is still pending for the same task.
	ErrDuplicateDispatch = errors.New("corun: duplicate background dispatch")

	// ErrJobFailure indicates background work that returned an error or
	// panicked. It reaches the computation as data, never as a fault.
	ErrJobFailure = errors.New("corun: background job failed")

	// ErrUnknownID indicates an instance identifier with no registered factory.
	ErrUnknownID = errors.New("corun: unknown instance identifier")

	// ErrDuplicateID indicates a second registration under the same identifier.
	ErrDuplicateID = errors.New("corun: duplicate instance identifier")

	// ErrModeConflict indicates an instance driven through both the
	// one-shot and the continuous path.
	ErrModeConflict = errors.New("corun: execution mode conflict")

	// ErrUnhandledEffect indicates a kont effect that is neither an
	// Awaitable nor a Borrow of the driver's parameter type.
	ErrUnhandledEffect = errors.New("corun: unhandled effect")

	// ErrPanicked indicates a computation that panicked inside Resume.
	ErrPanicked = errors.New("corun: computation panicked")
)

// Fault is a programming error scoped to a single instance.
// The instance is torn down before the Fault is returned.
type Fault struct {
	ID     ID
	Serial Serial
	Err    error
}

func (f *Fault) Error() string {
	return "corun: instance " + f.ID + " (serial " + strconv.FormatUint(uint64(f.Serial), 10) + "): " + f.Err.Error()
}

func (f *Fault) Unwrap() error { return f.Err }

// MismatchError describes a resumption value rejected at re-entry.
type MismatchError struct {
	// Kind is the Awaitable the computation is suspended on.
	Kind Kind
	// Want is the payload type Kind resumes with.
	Want string
	// Got is the dynamic type of the supplied payload.
	Got string
}

func (e *MismatchError) Error() string {
	return ErrTypeMismatch.Error() + ": " + e.Kind.String() + " wants " + e.Want + ", got " + e.Got
}

// Is reports ErrTypeMismatch.
func (e *MismatchError) Is(target error) bool { return target == ErrTypeMismatch }

// JobError is the failure of a background job, delivered to the
// computation as the Left side of its resumption value.
//
// Exactly one of Err and Panic is set.
type JobError struct {
	Err   error
	Panic any
}

func (e *JobError) Error() string {
	if e.Panic != nil {
		return ErrJobFailure.Error() + ": panic: " + fmt.Sprint(e.Panic)
	}
	return ErrJobFailure.Error() + ": " + e.Err.Error()
}

func (e *JobError) Unwrap() error { return e.Err }

// Is reports ErrJobFailure.
func (e *JobError) Is(target error) bool { return target == ErrJobFailure }

// faultKinds orders the sentinels for metric labels.
var faultKinds = []struct {
	err   error
	label string
}{
	{ErrTypeMismatch, "type_mismatch"},
	{ErrInvalidState, "invalid_state"},
	{ErrRunaway, "runaway"},
	{ErrDuplicateDispatch, "duplicate_dispatch"},
	{ErrUnhandledEffect, "unhandled_effect"},
	{ErrPanicked, "panicked"},
}

// faultLabel maps err to a bounded label value.
func faultLabel(err error) string {
	for _, k := range faultKinds {
		if errors.Is(err, k.err) {
			return k.label
		}
	}
	return "other"
}
