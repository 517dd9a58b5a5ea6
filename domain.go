// Copyright 2025 The uart-sub000 authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package uart

// A Domain identifies an independently advancing clock domain and counts its
// ticks. State owned by a domain changes only on that domain's tick
// boundaries.
type Domain struct {
	name  string
	ticks uint64
}

// NewDomain returns a domain with a zeroed tick counter.
func NewDomain(name string) *Domain {
	return &Domain{name: name}
}

// Name returns the domain identity.
func (d *Domain) Name() string { return d.name }

// Ticks returns the number of ticks elapsed since creation or the last
// Reset.
func (d *Domain) Ticks() uint64 { return d.ticks }

// Tick advances the domain by one tick.
func (d *Domain) Tick() { d.ticks++ }

// Reset zeroes the tick counter.
func (d *Domain) Reset() { d.ticks = 0 }
