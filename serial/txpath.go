// Copyright 2025 The uart-sub000 authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package serial

import (
	"github.com/atsmith3/uart-sub000/fifo"
)

type loadState uint8

const (
	loadIdle  loadState = iota
	loadFetch           // FIFO read enable asserted, data pending
	loadReady           // byte held, presented to the framer
)

// A TxPath is the wire-domain transmit datapath: the read side of a
// dual-clock byte buffer, a loader that hides the buffer's read latency from
// the framer, and the framer itself.
//
// The buffer's write side belongs to the control domain; obtain it through
// Buffer. Tick drives only the read side. The loader issues exactly one
// buffer read per transmitted byte: Idle to Fetch when the buffer has data
// and the framer is ready, Fetch to Ready one tick later when the registered
// output is captured, Ready back to Idle on the bit tick that starts the
// frame.
//
// The oversample divider realigns at frame start, so the start bit spans
// exactly Oversample sample ticks from the tick the frame begins.
type TxPath struct {
	buf  *fifo.AsyncRing
	tx   *Transmitter
	load loadState
	data byte
	os   uint8 // oversample divider, 0..Oversample-1
}

// NewTxPath returns a transmit path over a dual-clock buffer of the given
// capacity and pointer synchronizer depth.
func NewTxPath(capacity, stages int) (*TxPath, error) {
	buf, err := fifo.NewAsyncRing(capacity, stages)
	if err != nil {
		return nil, err
	}
	return &TxPath{buf: buf, tx: NewTransmitter()}, nil
}

// Buffer returns the underlying dual-clock buffer. The caller owns its write
// side and must drive TickWrite from the control domain.
func (p *TxPath) Buffer() *fifo.AsyncRing { return p.buf }

// Tick advances the path by one wire-domain tick. enable gates the loader, so
// a disabled transmitter leaves queued bytes in the buffer; sampleTick is the
// oversample pulse from the baud generator.
func (p *TxPath) Tick(enable, sampleTick bool) {
	rdEn := false
	switch p.load {
	case loadIdle:
		if enable && !p.buf.ReadEmpty() && p.tx.Ready() {
			rdEn = true
			p.load = loadFetch
		}
	case loadFetch:
		// the registered output was committed on the previous tick
		p.data = p.buf.RdData()
		p.load = loadReady
	}
	p.buf.TickRead(rdEn)

	bitTick := false
	if sampleTick {
		if p.load == loadReady && p.tx.Ready() {
			// frame start: realign the divider and issue the first bit tick
			bitTick = true
			p.os = 0
		} else if p.os == Oversample-1 {
			p.os = 0
			bitTick = true
		} else {
			p.os++
		}
	}

	consumed := bitTick && p.tx.Ready() && p.load == loadReady
	p.tx.Tick(bitTick, p.data, p.load == loadReady)
	if consumed {
		p.load = loadIdle
	}
}

// Serial returns the current level of the transmit line.
func (p *TxPath) Serial() bool { return p.tx.Serial() }

// Active reports whether a frame is in flight or a byte is staged.
func (p *TxPath) Active() bool { return p.tx.Active() || p.load != loadIdle }

// Reset aborts any frame in flight, drops any staged byte and empties the
// buffer.
func (p *TxPath) Reset() {
	p.buf.Reset()
	p.tx.Reset()
	p.load = loadIdle
	p.data = 0
	p.os = 0
}
