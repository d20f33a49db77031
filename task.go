// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corun

import (
	"time"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/kont"
)

// ID is a stable, host-assigned identifier of a computation definition.
type ID = string

// Serial is a monotonically increasing run number.
// Every fresh instance of a computation gets the next serial.
type Serial = uint32

// counter is the global monotonic counter for run serials.
var counter atomix.Uint32

// nextSerial returns the next monotonically increasing serial.
func nextSerial() Serial {
	return counter.Add(1)
}

// Mode is the execution mode an instance was created under.
type Mode uint8

const (
	// OneShot instances are driven by Step, Continue or Pump and are
	// dropped on completion.
	OneShot Mode = iota + 1
	// Continuous instances are driven by Tick every cycle and restart
	// from scratch on completion.
	Continuous
)

func (m Mode) String() string {
	switch m {
	case OneShot:
		return "one-shot"
	case Continuous:
		return "continuous"
	}
	return "mode(?)"
}

// task is the persistent per-instance record. Only the driver touches it.
type task[P any] struct {
	id      ID
	serial  Serial
	mode    Mode
	comp    Computation[P]
	started bool

	// await is the Awaitable the computation is suspended on, nil before
	// the first resume and while a resume is in progress.
	await    Awaitable
	deadline time.Time
	job      *Job

	resolved    kont.Resumed
	hasResolved bool

	resumes uint64
}

func newTask[P any](id ID, mode Mode, comp Computation[P]) *task[P] {
	return &task[P]{id: id, serial: nextSerial(), mode: mode, comp: comp}
}

// dispatch starts a background job for s.
// At most one job may be pending per task.
func (t *task[P]) dispatch(s spawner, exec Executor, m *Metrics) error {
	if t.job != nil {
		return ErrDuplicateDispatch
	}
	m.jobStarted()
	t.job = s.start(exec, m.jobFinished)
	return nil
}

// TaskState is a snapshot of an instance as seen by the driver.
type TaskState struct {
	ID     ID
	Serial Serial
	Mode   Mode
	// Started reports whether the computation has been resumed at least once.
	Started bool
	// Waiting is the Kind of the pending Awaitable, KindNone if not suspended.
	Waiting Kind
	// Deadline is the wake-up deadline while Waiting is KindSleep.
	Deadline time.Time
	// JobPending reports whether a background job handle is held.
	JobPending bool
	// Resumes counts Resume calls made on this instance.
	Resumes uint64
}

func (t *task[P]) state() TaskState {
	s := TaskState{
		ID:         t.id,
		Serial:     t.serial,
		Mode:       t.mode,
		Started:    t.started,
		JobPending: t.job != nil,
		Resumes:    t.resumes,
	}
	if t.await != nil {
		s.Waiting = t.await.Kind()
		if s.Waiting == KindSleep {
			s.Deadline = t.deadline
		}
	}
	return s
}
