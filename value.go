// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corun

import (
	"fmt"
	"time"

	"code.hybscloud.com/kont"
)

// Value is the resumption value threaded into Resume, tagged with the
// Kind of the Awaitable that produced it.
type Value struct {
	kind    Kind
	payload kont.Resumed
}

// MakeValue tags payload with kind. The driver builds Values itself;
// MakeValue exists for hosts and tests that drive a Computation directly.
func MakeValue(kind Kind, payload any) Value {
	return Value{kind: kind, payload: payload}
}

// Kind returns the tag.
func (v Value) Kind() Kind { return v.kind }

// IsEmpty reports whether v is the value of a first resume.
func (v Value) IsEmpty() bool { return v.kind == KindNone }

// Payload returns the untyped payload.
func (v Value) Payload() kont.Resumed { return v.payload }

// Instant returns the wake-up instant of a Sleep.
func (v Value) Instant() (time.Time, error) {
	t, ok := v.payload.(time.Time)
	if v.kind != KindSleep || !ok {
		return time.Time{}, v.mismatch(KindSleep, "time.Time")
	}
	return t, nil
}

// Unit checks that v resumes a NextFrame or a Noop.
func (v Value) Unit() error {
	_, ok := v.payload.(struct{})
	if (v.kind != KindNextFrame && v.kind != KindNoop) || !ok {
		return v.mismatch(KindNextFrame, "struct {}")
	}
	return nil
}

func (v Value) mismatch(want Kind, wantType string) error {
	got := fmt.Sprintf("%T", v.payload)
	if v.kind != want {
		got = v.kind.String() + " " + got
	}
	return &MismatchError{Kind: want, Want: wantType, Got: got}
}

// JobResult returns the outcome of a Spawn[V]. A failed job yields its
// *JobError; a value of any other shape yields a *MismatchError.
func JobResult[V any](v Value) (V, error) {
	var zero V
	e, ok := v.payload.(kont.Either[error, V])
	if v.kind != KindSpawn || !ok {
		return zero, v.mismatch(KindSpawn, fmt.Sprintf("%T", kont.Either[error, V]{}))
	}
	if err, ok := e.GetLeft(); ok {
		return zero, err
	}
	r, _ := e.GetRight()
	return r, nil
}
