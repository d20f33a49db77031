// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corun

import "code.hybscloud.com/atomix"

// leases issues generations of Lease values. Every revoke invalidates
// all leases issued before it.
type leases struct {
	gen atomix.Uint32
}

func (s *leases) revoke() { s.gen.Add(1) }

func lend[P any](s *leases, p P) Lease[P] {
	return Lease[P]{src: s, gen: s.gen.Load(), p: p}
}

// Lease is a borrowed handle on the per-cycle parameter bundle.
// It is valid only while the Resume call that received it runs;
// the driver revokes it as soon as that call returns, so a computation
// must borrow again after every suspension point.
//
// Lease is safe to check from any goroutine. A Spawn closure that
// captured a Lease observes it as revoked.
type Lease[P any] struct {
	src *leases
	gen uint32
	p   P
}

// Valid reports whether the lease has not been revoked.
func (l Lease[P]) Valid() bool {
	return l.src != nil && l.src.gen.Load() == l.gen
}

// Get returns the parameter bundle.
// Panics if the lease has been revoked.
func (l Lease[P]) Get() P {
	if !l.Valid() {
		panic("corun: lease used after resume returned")
	}
	return l.p
}

// Lend runs f with an Input whose lease on p expires when f returns.
// It is the standalone counterpart of what the driver does on every
// resume, for driving a Computation outside a Driver.
func Lend[P any](p P, v Value, f func(Input[P])) {
	s := &leases{}
	defer s.revoke()
	f(Input[P]{lease: lend(s, p), value: v})
}
