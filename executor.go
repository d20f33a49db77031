// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corun

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Executor runs background work off the stepping goroutine.
// Execute must not block the caller on the work itself.
type Executor interface {
	Execute(work func())
}

// ExecutorFunc adapts a function to Executor.
type ExecutorFunc func(work func())

// Execute calls f(work).
func (f ExecutorFunc) Execute(work func()) { f(work) }

// Go runs every job on its own goroutine. It is the default Executor.
var Go Executor = ExecutorFunc(func(work func()) { go work() })

// Pool runs jobs on goroutines with at most n executing at once.
// Excess jobs wait for a slot on their own goroutine, so Execute
// returns immediately.
type Pool struct {
	sem *semaphore.Weighted
	wg  sync.WaitGroup
}

// NewPool returns a Pool of width n. n < 1 is treated as 1.
func NewPool(n int) *Pool {
	if n < 1 {
		n = 1
	}
	return &Pool{sem: semaphore.NewWeighted(int64(n))}
}

// Execute implements Executor.
func (p *Pool) Execute(work func()) {
	p.wg.Go(func() {
		// Acquire with a background context cannot fail.
		_ = p.sem.Acquire(context.Background(), 1)
		defer p.sem.Release(1)
		work()
	})
}

// Wait blocks until every job handed to the pool has returned.
func (p *Pool) Wait() {
	p.wg.Wait()
}
