// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corun

import (
	"fmt"

	"code.hybscloud.com/iox"
	"github.com/sirupsen/logrus"
)

// advance performs one step of t: it checks whether the pending
// Awaitable is satisfied, then resumes the computation until it yields
// an Awaitable that needs a later cycle, or finishes.
//
// At most one resumption attempt is made per Awaitable per call; only
// Noop loops within the call.
func (d *Driver[P]) advance(t *task[P], params P) (Outcome, error) {
	in, ready, err := d.wake(t)
	if err != nil {
		return Completed, d.fault(t, err)
	}
	if !ready {
		return StillRunning, nil
	}
	if !t.started {
		t.started = true
		d.markRunning(t)
		d.fields(t).Debug("instance started")
	}

	noops := 0
	for {
		ctl, err := d.resume(t, params, in)
		if err != nil {
			return Completed, d.fault(t, err)
		}
		if ctl.Finished() {
			d.finish(t)
			return Completed, nil
		}

		switch a := ctl.Await().(type) {
		case Noop:
			noops++
			if noops > d.opts.NoopLimit {
				return Completed, d.fault(t, fmt.Errorf("%w: %d consecutive no-ops", ErrRunaway, noops))
			}
			t.await = a
			in = Value{kind: KindNoop, payload: struct{}{}}
			continue
		case Sleep:
			t.deadline = a.deadline(d.opts.Clock())
		case NextFrame:
		case spawner:
			if err := t.dispatch(a, d.opts.Executor, d.opts.Metrics); err != nil {
				return Completed, d.fault(t, err)
			}
			d.fields(t).Debug("background job dispatched")
		default:
			return Completed, d.fault(t, fmt.Errorf("%w: yielded %T", ErrInvalidState, a))
		}
		t.await = ctl.Await()
		return StillRunning, nil
	}
}

// wake reports whether the Awaitable t is suspended on is satisfied,
// and the value to resume with. A pending job is polled without blocking.
func (d *Driver[P]) wake(t *task[P]) (Value, bool, error) {
	if !t.started {
		return Value{}, true, nil
	}
	kind := t.await.Kind()
	if t.hasResolved {
		v := Value{kind: kind, payload: t.resolved}
		t.resolved, t.hasResolved = nil, false
		t.job = nil
		return v, true, nil
	}
	switch kind {
	case KindSpawn:
		v, err := t.job.Poll()
		if err != nil {
			if iox.IsWouldBlock(err) {
				return Value{}, false, nil
			}
			return Value{}, false, err
		}
		t.job = nil
		return Value{kind: KindSpawn, payload: v}, true, nil
	case KindSleep:
		now := d.opts.Clock()
		if now.Before(t.deadline) {
			return Value{}, false, nil
		}
		return Value{kind: KindSleep, payload: now}, true, nil
	case KindNextFrame:
		return Value{kind: KindNextFrame, payload: struct{}{}}, true, nil
	}
	return Value{}, false, fmt.Errorf("%w: suspended on %s across a step", ErrInvalidState, kind)
}

// resume is the single re-entry point. It checks in against the pending
// Awaitable, lends params for exactly one Resume call, and converts a
// panic into an ErrPanicked error.
func (d *Driver[P]) resume(t *task[P], params P, in Value) (ctl Control, err error) {
	if t.await != nil {
		if err := checkResumed(t.await, in.payload); err != nil {
			return Control{}, err
		}
	}
	t.await = nil
	t.resumes++

	lease := lend(&d.leases, params)
	defer func() {
		d.leases.revoke()
		if r := recover(); r != nil {
			ctl, err = Control{}, fmt.Errorf("%w: %v", ErrPanicked, r)
		}
	}()
	return t.comp.Resume(Input[P]{lease: lease, value: in})
}

// finish retires a completed instance according to its mode.
func (d *Driver[P]) finish(t *task[P]) {
	d.drop(t)
	d.fields(t).Debug("instance completed")
	if t.mode != Continuous {
		return
	}
	next, err := d.instantiate(t.id, Continuous)
	if err != nil {
		d.fields(t).WithError(err).Warn("continuous instance not restarted")
		return
	}
	d.tasks[t.id] = next
}

// fault tears down t and wraps err as its Fault.
func (d *Driver[P]) fault(t *task[P], err error) error {
	d.drop(t)
	d.opts.Metrics.observeFault(t.id, err)
	d.fields(t).WithError(err).Warn("instance faulted")
	return &Fault{ID: t.id, Serial: t.serial, Err: err}
}

func (d *Driver[P]) fields(t *task[P]) *logrus.Entry {
	return d.log.WithFields(logrus.Fields{
		"id":     t.id,
		"serial": t.serial,
		"mode":   t.mode.String(),
	})
}
