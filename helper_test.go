// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corun_test

import (
	"slices"
	"testing"
	"time"

	"code.hybscloud.com/corun"
	"code.hybscloud.com/kont"
)

// world stands in for the host's per-cycle parameter bundle.
type world struct {
	log []string
}

// fakeClock is a manually advanced driver clock.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// emitThen appends s to the borrowed world and continues with next.
func emitThen(s string, next kont.Eff[struct{}]) kont.Eff[struct{}] {
	return corun.BorrowBind(func(l corun.Lease[*world]) kont.Eff[struct{}] {
		w := l.Get()
		w.log = append(w.log, s)
		return next
	})
}

// exprEmitThen is the Expr-world emitThen.
func exprEmitThen(s string, next kont.Expr[struct{}]) kont.Expr[struct{}] {
	return corun.ExprBorrowBind(func(l corun.Lease[*world]) kont.Expr[struct{}] {
		w := l.Get()
		w.log = append(w.log, s)
		return next
	})
}

// newDriver returns a driver on a fake clock with def registered as id.
func newDriver(t testing.TB, id corun.ID, def corun.Factory[*world], opts ...corun.Option) (*corun.Driver[*world], *fakeClock) {
	t.Helper()
	clk := newFakeClock()
	d := corun.NewDriver[*world](append([]corun.Option{corun.WithClock(clk.Now)}, opts...)...)
	if err := d.Register(id, def); err != nil {
		t.Fatalf("Register(%q): %v", id, err)
	}
	return d, clk
}

// stepUntilDone steps id until it completes, sleeping between cycles.
// Fails the test after max cycles.
func stepUntilDone(t testing.TB, d *corun.Driver[*world], id corun.ID, w *world, max int) int {
	t.Helper()
	for cycle := 1; cycle <= max; cycle++ {
		out, err := d.Step(id, w)
		if err != nil {
			t.Fatalf("cycle %d: Step error: %v", cycle, err)
		}
		if out == corun.Completed {
			return cycle
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("%s did not complete within %d cycles", id, max)
	return 0
}

func assertLog(t testing.TB, w *world, want ...string) {
	t.Helper()
	if !slices.Equal(w.log, want) {
		t.Fatalf("log got %q, want %q", w.log, want)
	}
}
