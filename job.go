// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corun

import (
	"time"

	"code.hybscloud.com/kont"
	"code.hybscloud.com/lfq"
)

// jobQueueCapacity bounds the result queue. A job publishes exactly one
// result, so the queue never reports backpressure to the worker.
const jobQueueCapacity = 2

// Job is the handle of a background job.
//
// The worker publishes its single result through a bounded lock-free
// SPSC queue: the worker is the only producer and the driver the only
// consumer. Poll never blocks.
type Job struct {
	results lfq.SPSC[kont.Resumed]
	value   kont.Resumed
	ready   bool
}

// startJob hands run to exec. done, if non-nil, runs on the worker with
// the job's wall time after the result is published.
func startJob(exec Executor, run func() kont.Resumed, done func(time.Duration)) *Job {
	j := &Job{}
	j.results.Init(jobQueueCapacity)
	exec.Execute(func() {
		start := time.Now()
		v := run()
		_ = j.results.Enqueue(&v)
		if done != nil {
			done(time.Since(start))
		}
	})
	return j
}

// Poll reports the job's result.
// Returns iox.ErrWouldBlock while the job is running. Once ready, every
// later call returns the same value. Must be called from one goroutine.
func (j *Job) Poll() (kont.Resumed, error) {
	if j.ready {
		return j.value, nil
	}
	v, err := j.results.Dequeue()
	if err != nil {
		return nil, err
	}
	j.value, j.ready = v, true
	return v, nil
}

// Ready reports whether Poll has observed the result.
func (j *Job) Ready() bool { return j.ready }
