// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corun

import (
	"errors"
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"
)

// Outcome is the result of one driver step.
type Outcome uint8

const (
	// NotStarted reports that no instance exists for the identifier.
	NotStarted Outcome = iota
	// StillRunning reports that the instance is suspended.
	StillRunning
	// Completed reports that the instance finished or was torn down by a fault.
	Completed
)

func (o Outcome) String() string {
	switch o {
	case NotStarted:
		return "not_started"
	case StillRunning:
		return "running"
	case Completed:
		return "completed"
	}
	return "outcome(?)"
}

// Driver advances resumable computations over parameter bundles of
// type P, one step per instance per cycle.
//
// A Driver is not safe for concurrent use: the host calls it from its
// cycle loop only. Its Registry may be queried from anywhere.
type Driver[P any] struct {
	opts   Options
	log    logrus.FieldLogger
	defs   map[ID]Factory[P]
	tasks  map[ID]*task[P]
	leases leases
}

// NewDriver creates a Driver.
func NewDriver[P any](opts ...Option) *Driver[P] {
	o := ResolveOptions(opts...)
	return &Driver[P]{
		opts:  o,
		log:   o.Logger,
		defs:  make(map[ID]Factory[P]),
		tasks: make(map[ID]*task[P]),
	}
}

// Registry returns the driver's Registry.
func (d *Driver[P]) Registry() *Registry { return d.opts.Registry }

// Register binds id to a computation definition.
func (d *Driver[P]) Register(id ID, f Factory[P]) error {
	if f == nil {
		panic("corun: nil Factory")
	}
	if _, ok := d.defs[id]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateID, id)
	}
	d.defs[id] = f
	return nil
}

// Step advances the one-shot instance id by one step, creating it on
// first use. On completion the instance is dropped and the next Step
// starts a fresh run.
func (d *Driver[P]) Step(id ID, params P) (Outcome, error) {
	return d.drive(id, params, OneShot)
}

// Tick advances the continuous instance id by one step, creating it on
// first use. On completion a fresh instance is installed immediately,
// so the computation restarts from the beginning on the next Tick.
func (d *Driver[P]) Tick(id ID, params P) (Outcome, error) {
	return d.drive(id, params, Continuous)
}

// Continue advances the one-shot instance id only if it exists.
// Returns NotStarted otherwise.
func (d *Driver[P]) Continue(id ID, params P) (Outcome, error) {
	t, ok := d.tasks[id]
	if !ok {
		return NotStarted, nil
	}
	if t.mode != OneShot {
		return NotStarted, fmt.Errorf("%w: %s is %s", ErrModeConflict, id, t.mode)
	}
	out, err := d.advance(t, params)
	d.opts.Metrics.observeStep(id, out)
	return out, err
}

// Trigger creates a one-shot instance of id without stepping it and
// marks it running, so the next Pump advances it. Returns false if the
// instance already exists.
func (d *Driver[P]) Trigger(id ID) (bool, error) {
	if t, ok := d.tasks[id]; ok {
		if t.mode != OneShot {
			return false, fmt.Errorf("%w: %s is %s", ErrModeConflict, id, t.mode)
		}
		return false, nil
	}
	t, err := d.lookup(id, OneShot)
	if err != nil {
		return false, err
	}
	d.markRunning(t)
	return true, nil
}

// Pump advances every one-shot instance by one step, in identifier
// order. Faults are joined into the returned error.
func (d *Driver[P]) Pump(params P) error {
	ids := make([]ID, 0, len(d.tasks))
	for id, t := range d.tasks {
		if t.mode == OneShot {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)

	var errs []error
	for _, id := range ids {
		if _, err := d.Continue(id, params); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Resolve supplies v as the resumption value of the Awaitable id is
// suspended on. The value is delivered and type-checked on the next
// step; a pending background job is detached and its result discarded.
func (d *Driver[P]) Resolve(id ID, v any) error {
	t, ok := d.tasks[id]
	if !ok || t.await == nil {
		return fmt.Errorf("%w: %s is not suspended", ErrInvalidState, id)
	}
	t.resolved, t.hasResolved = v, true
	return nil
}

// Cancel drops the instance id. A running background job is detached
// and runs to completion with its result discarded.
func (d *Driver[P]) Cancel(id ID) bool {
	t, ok := d.tasks[id]
	if !ok {
		return false
	}
	d.drop(t)
	d.log.WithFields(logrus.Fields{"id": id, "serial": t.serial}).Debug("instance cancelled")
	return true
}

// Close cancels every instance.
func (d *Driver[P]) Close() {
	for id := range d.tasks {
		d.Cancel(id)
	}
}

// Inspect returns a snapshot of the instance id.
func (d *Driver[P]) Inspect(id ID) (TaskState, bool) {
	t, ok := d.tasks[id]
	if !ok {
		return TaskState{}, false
	}
	return t.state(), true
}

func (d *Driver[P]) drive(id ID, params P, mode Mode) (Outcome, error) {
	t, err := d.lookup(id, mode)
	if err != nil {
		return NotStarted, err
	}
	out, err := d.advance(t, params)
	d.opts.Metrics.observeStep(id, out)
	return out, err
}

// lookup returns the task of id, creating it under mode if absent.
func (d *Driver[P]) lookup(id ID, mode Mode) (*task[P], error) {
	if t, ok := d.tasks[id]; ok {
		if t.mode != mode {
			return nil, fmt.Errorf("%w: %s is %s", ErrModeConflict, id, t.mode)
		}
		return t, nil
	}
	t, err := d.instantiate(id, mode)
	if err != nil {
		return nil, err
	}
	d.tasks[id] = t
	return t, nil
}

func (d *Driver[P]) instantiate(id ID, mode Mode) (*task[P], error) {
	f, ok := d.defs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownID, id)
	}
	comp := f()
	if comp == nil {
		return nil, fmt.Errorf("%w: factory of %s returned nil", ErrInvalidState, id)
	}
	return newTask(id, mode, comp), nil
}

func (d *Driver[P]) markRunning(t *task[P]) {
	d.opts.Registry.markRunning(t.id, t.serial)
	d.opts.Metrics.setRunning(d.opts.Registry.Len())
}

// drop removes t from the driver and the registry.
func (d *Driver[P]) drop(t *task[P]) {
	if d.tasks[t.id] == t {
		delete(d.tasks, t.id)
	}
	d.opts.Registry.markFinished(t.id)
	d.opts.Metrics.setRunning(d.opts.Registry.Len())
}
