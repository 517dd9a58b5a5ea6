// Copyright 2025 The uart-sub000 authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package serial

import (
	"github.com/atsmith3/uart-sub000/cdc"
	"github.com/atsmith3/uart-sub000/fifo"
)

// An RxPath is the wire-domain receive datapath: a bit synchronizer on the
// serial input, the deframer, and the write side of a dual-clock byte buffer.
//
// The buffer's read side belongs to the control domain; obtain it through
// Buffer. A completed byte is written to the buffer and acknowledged on the
// tick after the deframer presents it; the acknowledgment clears the
// presented byte, so each frame is written at most once. When the buffer is
// full the byte is discarded, the sticky overrun flag is raised and no
// backpressure is applied to the wire.
type RxPath struct {
	sync    *cdc.BitSync
	rx      *Receiver
	buf     *fifo.AsyncRing
	overrun bool
}

// NewRxPath returns a receive path over a dual-clock buffer of the given
// capacity, using the given synchronizer depth for both the serial input and
// the buffer pointers.
func NewRxPath(capacity, stages int) (*RxPath, error) {
	buf, err := fifo.NewAsyncRing(capacity, stages)
	if err != nil {
		return nil, err
	}
	sync, err := cdc.NewBitSync(stages, true)
	if err != nil {
		return nil, err
	}
	return &RxPath{sync: sync, rx: NewReceiver(), buf: buf}, nil
}

// Buffer returns the underlying dual-clock buffer. The caller owns its read
// side and must drive TickRead from the control domain.
func (p *RxPath) Buffer() *fifo.AsyncRing { return p.buf }

// Tick advances the path by one wire-domain tick. sampleTick is the
// oversample pulse, rxSerial the raw asynchronous line level. clearFrame and
// clearOverrun clear the sticky error flags.
func (p *RxPath) Tick(sampleTick bool, rxSerial bool, clearFrame, clearOverrun bool) {
	p.sync.Tick(rxSerial)

	wrEn := false
	var wrData byte
	ack := false
	if p.rx.Valid() {
		if !p.buf.WriteFull() {
			wrEn = true
			wrData = p.rx.Data()
		} else {
			p.overrun = true
		}
		ack = true
	}
	p.buf.TickWrite(wrEn, wrData)
	if clearOverrun {
		p.overrun = false
	}
	p.rx.Tick(sampleTick, p.sync.Out(), ack, clearFrame)
}

// Active reports whether a frame is being received.
func (p *RxPath) Active() bool { return p.rx.Active() }

// FrameError reports the sticky frame error flag.
func (p *RxPath) FrameError() bool { return p.rx.FrameError() }

// OverrunError reports the sticky overrun flag.
func (p *RxPath) OverrunError() bool { return p.overrun }

// Reset returns the deframer to idle, clears both sticky flags and empties
// the buffer.
func (p *RxPath) Reset() {
	p.sync.Reset()
	p.rx.Reset()
	p.buf.Reset()
	p.overrun = false
}
