// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corun

import (
	"context"

	"code.hybscloud.com/iox"
)

// Run drives the one-shot instance id to completion on the calling
// goroutine, calling frame once per cycle for the parameter bundle.
// Between cycles that did not resume the computation (a pending timer
// or job) it waits with adaptive backoff (iox.Backoff).
//
// If ctx is done first, the instance is cancelled and ctx.Err returned.
func (d *Driver[P]) Run(ctx context.Context, id ID, frame func() P) error {
	var bo iox.Backoff
	for {
		if err := ctx.Err(); err != nil {
			d.Cancel(id)
			return err
		}
		before := d.resumes(id)
		out, err := d.Step(id, frame())
		if err != nil {
			return err
		}
		if out == Completed {
			return nil
		}
		if d.resumes(id) != before {
			bo.Reset()
		} else {
			bo.Wait()
		}
	}
}

func (d *Driver[P]) resumes(id ID) uint64 {
	if t, ok := d.tasks[id]; ok {
		return t.resumes
	}
	return 0
}
