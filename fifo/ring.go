// Copyright 2025 The uart-sub000 authors.
// Licensed under the MIT license. See license text in the LICENSE file.

// Package fifo implements the byte FIFOs of the UART core: a same-clock ring
// buffer with a registered read output, and a dual-clock ring whose pointers
// cross domains through Gray-coded synchronizers.
package fifo

import "github.com/pkg/errors"

// almostMargin is the distance from full/empty at which the almost flags
// assert.
const almostMargin = 2

// A Ring is a fixed-capacity same-clock FIFO.
//
// Capacity must be a power of two. Pointers wrap at twice the capacity so
// that the extra bit distinguishes full from empty when the low bits match.
// The read output is registered: a value popped on tick T is returned by
// RdData after tick T completes, one tick after the read enable was asserted.
type Ring struct {
	mem  []byte
	mask uint16 // capacity - 1
	wrap uint16 // 2*capacity - 1

	wptr  uint16
	rptr  uint16
	rdata byte
}

// NewRing returns an empty ring buffer of the given capacity.
func NewRing(capacity int) (*Ring, error) {
	if capacity < 2 || capacity&(capacity-1) != 0 || capacity > 1<<15 {
		return nil, errors.Errorf("fifo: capacity must be a power of two in 2..32768, got %d", capacity)
	}
	c := uint16(capacity)
	return &Ring{mem: make([]byte, capacity), mask: c - 1, wrap: 2*c - 1}, nil
}

// Cap returns the buffer capacity.
func (r *Ring) Cap() int { return int(r.mask) + 1 }

// Empty reports whether the buffer holds no data.
func (r *Ring) Empty() bool { return r.wptr == r.rptr }

// Full reports whether the buffer is at capacity.
func (r *Ring) Full() bool { return r.wptr^r.rptr == r.mask+1 }

// Level returns the number of buffered bytes.
func (r *Ring) Level() int { return int((r.wptr - r.rptr) & r.wrap) }

// AlmostEmpty reports a level at or below the low watermark.
func (r *Ring) AlmostEmpty() bool { return r.Level() <= almostMargin }

// AlmostFull reports a level at or above the high watermark.
func (r *Ring) AlmostFull() bool { return r.Level() >= r.Cap()-almostMargin }

// RdData returns the registered read output: the byte popped by the most
// recent tick that had the read enable asserted while non-empty.
func (r *Ring) RdData() byte { return r.rdata }

// Tick advances the buffer by one clock tick. A write while full is dropped;
// a read while empty leaves the registered output unchanged. Full and empty
// are evaluated against the state before this tick, so a simultaneous
// write+read on a full buffer drops the write and performs the read.
func (r *Ring) Tick(wrEn bool, wrData byte, rdEn bool) {
	full, empty := r.Full(), r.Empty()
	if wrEn && !full {
		r.mem[r.wptr&r.mask] = wrData
		r.wptr = (r.wptr + 1) & r.wrap
	}
	if rdEn && !empty {
		r.rdata = r.mem[r.rptr&r.mask]
		r.rptr = (r.rptr + 1) & r.wrap
	}
}

// Reset empties the buffer and clears the registered output.
func (r *Ring) Reset() {
	r.wptr, r.rptr, r.rdata = 0, 0, 0
}
