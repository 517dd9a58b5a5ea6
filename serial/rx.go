// Copyright 2025 The uart-sub000 authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package serial

type rxState uint8

const (
	rxIdle rxState = iota
	rxStart
	rxData
	rxStop
	rxWait
)

// sampleMid is the oversample count at the center of a bit period.
const sampleMid = Oversample / 2

// A Receiver recovers bytes from an oversampled serial input.
//
// The input must already be synchronized into the wire domain. The receiver
// watches for a mark-to-space edge while idle, confirms the start bit at the
// center of the bit period, samples each data bit at its center and checks
// the stop bit. A completed byte is presented with Valid held until the
// consumer asserts ready; only then does the receiver return to idle.
//
// A start bit that does not survive to its center is a false start: the
// receiver returns to idle with no output and no error. A stop bit sampled at
// space raises the sticky frame error and the byte is discarded; reception of
// later frames is not blocked.
type Receiver struct {
	state     rxState
	sample    uint8 // oversample counter, 0..Oversample-1
	bit       uint8
	shift     byte
	last      bool // previous line sample, for edge detection while idle
	presented bool // current frame produced a byte

	data     byte
	valid    bool
	frameErr bool
}

// NewReceiver returns an idle receiver.
func NewReceiver() *Receiver {
	return &Receiver{last: true}
}

// Tick advances the deframer by one wire-domain tick. sampleTick gates the
// oversampling; in is the synchronized line level. ready acknowledges the
// currently presented byte and clearErr clears the sticky frame error.
func (r *Receiver) Tick(sampleTick bool, in bool, ready bool, clearErr bool) {
	if clearErr {
		r.frameErr = false
	}
	if r.valid && ready {
		r.valid = false
	}
	if !sampleTick {
		return
	}
	switch r.state {
	case rxIdle:
		if r.last && !in {
			r.state = rxStart
			r.sample = 0
		}
		r.last = in
		return
	case rxStart:
		if r.sample == sampleMid && in {
			// false start: the line recovered before the bit center
			r.state = rxIdle
			r.last = in
			return
		}
		if r.advance() {
			r.state = rxData
			r.bit = 0
			r.shift = 0
		}
	case rxData:
		if r.sample == sampleMid {
			r.shift >>= 1
			if in {
				r.shift |= 0x80
			}
		}
		if r.advance() {
			r.bit++
			if r.bit == 8 {
				r.state = rxStop
			}
		}
	case rxStop:
		if r.sample == sampleMid {
			if in {
				r.data = r.shift
				r.valid = true
				r.presented = true
			} else {
				r.frameErr = true
			}
		}
		if r.advance() {
			if r.presented && r.valid {
				r.state = rxWait
			} else {
				r.state = rxIdle
			}
			r.presented = false
			r.last = in
		}
	case rxWait:
		if !r.valid {
			r.state = rxIdle
		}
		r.last = in
	}
}

// advance bumps the oversample counter and reports a wrap at the end of the
// bit period.
func (r *Receiver) advance() bool {
	if r.sample == Oversample-1 {
		r.sample = 0
		return true
	}
	r.sample++
	return false
}

// Valid reports whether a received byte is waiting for acknowledgment.
func (r *Receiver) Valid() bool { return r.valid }

// Data returns the most recently completed byte.
func (r *Receiver) Data() byte { return r.data }

// Active reports whether a frame is being received or held.
func (r *Receiver) Active() bool { return r.state != rxIdle }

// FrameError reports the sticky frame error flag.
func (r *Receiver) FrameError() bool { return r.frameErr }

// Reset returns the receiver to idle and clears the error flag.
func (r *Receiver) Reset() {
	*r = Receiver{last: true}
}
