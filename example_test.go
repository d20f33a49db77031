// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corun_test

import (
	"fmt"
	"time"

	"code.hybscloud.com/corun"
	"code.hybscloud.com/kont"
)

// frame is the per-cycle bundle of a tiny game loop.
type frame struct {
	n int
}

func ExampleDriver_Tick() {
	blink := func() kont.Eff[struct{}] {
		show := func(s string, next kont.Eff[struct{}]) kont.Eff[struct{}] {
			return corun.BorrowBind(func(l corun.Lease[*frame]) kont.Eff[struct{}] {
				fmt.Printf("frame %d: %s\n", l.Get().n, s)
				return next
			})
		}
		return show("on", corun.NextFrameThen(show("off", corun.Done())))
	}

	d := corun.NewDriver[*frame]()
	_ = d.Register("blink", corun.FromEff[*frame](blink))
	for n := range 4 {
		out, _ := d.Tick("blink", &frame{n: n})
		fmt.Println(out)
	}
	// Output:
	// frame 0: on
	// running
	// frame 1: off
	// completed
	// frame 2: on
	// running
	// frame 3: off
	// completed
}

func ExampleDriver_Step() {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	d := corun.NewDriver[struct{}](corun.WithClock(func() time.Time { return now }))
	_ = d.Register("door", corun.FromEff[struct{}](func() kont.Eff[struct{}] {
		fmt.Println("opening")
		return corun.SleepBind(2*time.Second, func(at time.Time) kont.Eff[struct{}] {
			fmt.Println("closing at", at.Format(time.TimeOnly))
			return corun.Done()
		})
	}))

	for range 3 {
		out, _ := d.Step("door", struct{}{})
		fmt.Println(now.Format(time.TimeOnly), out, d.Registry().IsRunning("door"))
		now = now.Add(time.Second)
	}
	// Output:
	// opening
	// 00:00:00 running true
	// 00:00:01 running true
	// closing at 00:00:02
	// 00:00:02 completed false
}

func ExampleFromExpr() {
	prog := func() kont.Expr[struct{}] {
		return corun.ExprRepeat(3, func(i int) kont.Expr[struct{}] {
			return corun.ExprBorrowBind(func(l corun.Lease[string]) kont.Expr[struct{}] {
				fmt.Println(i, l.Get())
				return corun.ExprNoopThen(corun.ExprDone())
			})
		})
	}
	d := corun.NewDriver[string]()
	_ = d.Register("count", corun.FromExpr[string](prog))
	out, _ := d.Step("count", "same step")
	fmt.Println(out)
	// Output:
	// 0 same step
	// 1 same step
	// 2 same step
	// completed
}

func ExampleDriver_Trigger() {
	d := corun.NewDriver[int]()
	for _, id := range []corun.ID{"b", "a"} {
		_ = d.Register(id, corun.FromEff[int](func() kont.Eff[struct{}] {
			return corun.BorrowBind(func(l corun.Lease[int]) kont.Eff[struct{}] {
				fmt.Println(id, l.Get())
				return corun.Done()
			})
		}))
		_, _ = d.Trigger(id)
	}
	fmt.Println(d.Registry().Snapshot())
	_ = d.Pump(1)
	fmt.Println(d.Registry().Len())
	// Output:
	// [a b]
	// a 1
	// b 1
	// 0
}
