// Copyright 2025 The uart-sub000 authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package fifo

import (
	"math/bits"

	"github.com/pkg/errors"

	"github.com/atsmith3/uart-sub000/cdc"
)

// An AsyncRing is a fixed-capacity FIFO whose write and read sides live in
// different clock domains.
//
// The write pointer is owned by the write domain and the read pointer by the
// read domain; each side sees the opposite pointer only through a Gray-coded
// synchronizer, so a mid-transition sample decodes to a recent valid pointer
// value, never a torn one. Consequences of the synchronization latency
// (roughly the stage count, in destination-domain ticks):
//
//   - the write side may report full for a few ticks after the read side
//     drained an entry, and the read side may report empty for a few ticks
//     after a write landed;
//   - both errors are conservative: a write accepted by WriteTick and a read
//     accepted by ReadTick are always correct.
//
// The storage array is owned by the buffer. Each entry is written by the
// write domain strictly before the synchronized write pointer makes it
// visible to the read domain, so the read side never observes a half-written
// entry.
type AsyncRing struct {
	mem  []byte
	mask uint16
	wrap uint16

	wptr  uint16        // write-domain pointer
	wrsyn *cdc.GraySync // read pointer as seen by the write domain

	rptr  uint16        // read-domain pointer
	rwsyn *cdc.GraySync // write pointer as seen by the read domain
	rdata byte          // registered read output, read domain
}

// NewAsyncRing returns an empty dual-clock ring buffer of the given capacity
// with the given pointer synchronizer depth.
func NewAsyncRing(capacity, stages int) (*AsyncRing, error) {
	if capacity < 2 || capacity&(capacity-1) != 0 || capacity > 1<<14 {
		return nil, errors.Errorf("fifo: capacity must be a power of two in 2..16384, got %d", capacity)
	}
	c := uint16(capacity)
	width := bits.Len16(2*c - 1)
	wrsyn, err := cdc.NewGraySync(width, stages)
	if err != nil {
		return nil, errors.Wrap(err, "fifo: read pointer sync")
	}
	rwsyn, err := cdc.NewGraySync(width, stages)
	if err != nil {
		return nil, errors.Wrap(err, "fifo: write pointer sync")
	}
	return &AsyncRing{
		mem:   make([]byte, capacity),
		mask:  c - 1,
		wrap:  2*c - 1,
		wrsyn: wrsyn,
		rwsyn: rwsyn,
	}, nil
}

// Cap returns the buffer capacity.
func (f *AsyncRing) Cap() int { return int(f.mask) + 1 }

// WriteFull reports, from the write domain, whether the buffer is at
// capacity. May stay asserted for a few ticks after the read side drains.
func (f *AsyncRing) WriteFull() bool { return f.wptr^f.wrsyn.Out() == f.mask+1 }

// WriteEmpty reports, from the write domain, whether every written entry has
// been seen drained by the read side.
func (f *AsyncRing) WriteEmpty() bool { return f.wptr == f.wrsyn.Out() }

// WriteLevel returns the occupancy as seen by the write domain (an upper
// bound on the true occupancy).
func (f *AsyncRing) WriteLevel() int { return int((f.wptr - f.wrsyn.Out()) & f.wrap) }

// ReadEmpty reports, from the read domain, whether no entry is available. May
// stay asserted for a few ticks after a write lands.
func (f *AsyncRing) ReadEmpty() bool { return f.rptr == f.rwsyn.Out() }

// ReadFull reports, from the read domain, whether the buffer appears at
// capacity.
func (f *AsyncRing) ReadFull() bool { return f.rwsyn.Out()^f.rptr == f.mask+1 }

// ReadLevel returns the occupancy as seen by the read domain (a lower bound
// on the true occupancy).
func (f *AsyncRing) ReadLevel() int { return int((f.rwsyn.Out() - f.rptr) & f.wrap) }

// RdData returns the registered read output: the byte popped by the most
// recent read-domain tick that had the read enable asserted while non-empty.
func (f *AsyncRing) RdData() byte { return f.rdata }

// TickWrite advances the write side by one write-domain tick. It must be
// called on every write-domain tick, enable or not, so the read-pointer
// synchronizer keeps sampling. A write while full is dropped.
func (f *AsyncRing) TickWrite(wrEn bool, wrData byte) {
	full := f.WriteFull()
	f.wrsyn.Tick(f.rptr)
	if wrEn && !full {
		f.mem[f.wptr&f.mask] = wrData
		f.wptr = (f.wptr + 1) & f.wrap
	}
}

// TickRead advances the read side by one read-domain tick. It must be called
// on every read-domain tick, enable or not. A read while empty leaves the
// registered output unchanged.
func (f *AsyncRing) TickRead(rdEn bool) {
	empty := f.ReadEmpty()
	f.rwsyn.Tick(f.wptr)
	if rdEn && !empty {
		f.rdata = f.mem[f.rptr&f.mask]
		f.rptr = (f.rptr + 1) & f.wrap
	}
}

// Reset empties the buffer from both sides at once. In hardware each side
// resets in its own domain; the model applies both on the tick of whichever
// domain requested it, which is safe because the model never runs the two
// domains concurrently.
func (f *AsyncRing) Reset() {
	f.wptr, f.rptr, f.rdata = 0, 0, 0
	f.wrsyn.Reset()
	f.rwsyn.Reset()
}
