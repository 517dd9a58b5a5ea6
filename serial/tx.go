// Copyright 2025 The uart-sub000 authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package serial

type txState uint8

const (
	txIdle txState = iota
	txStart
	txData
	txStop
)

// A Transmitter serializes bytes into the UART frame format.
//
// State advances only on bit ticks. While idle with a valid byte presented,
// a bit tick latches the byte and drives the start bit; the eight data bits
// follow LSB first, then one stop bit, then the line returns to idle mark.
// Ready is true only in the idle state, so a presented byte is consumed at
// most once per frame.
type Transmitter struct {
	state  txState
	shift  byte
	bit    uint8
	serial bool
}

// NewTransmitter returns an idle transmitter with the line at mark.
func NewTransmitter() *Transmitter {
	return &Transmitter{serial: true}
}

// Tick advances the framer by one wire-domain tick. bitTick gates all state
// transitions; data and valid form the byte handshake, sampled on the bit
// tick that leaves idle.
func (t *Transmitter) Tick(bitTick bool, data byte, valid bool) {
	if !bitTick {
		return
	}
	switch t.state {
	case txIdle:
		if valid {
			t.shift = data
			t.bit = 0
			t.state = txStart
			t.serial = false
		}
	case txStart:
		t.state = txData
		t.serial = t.shift&1 != 0
	case txData:
		t.shift >>= 1
		t.bit++
		if t.bit == 8 {
			t.state = txStop
			t.serial = true
		} else {
			t.serial = t.shift&1 != 0
		}
	case txStop:
		t.state = txIdle
		t.serial = true
	}
}

// Serial returns the current level of the transmit line.
func (t *Transmitter) Serial() bool { return t.serial }

// Ready reports whether a new byte can be accepted.
func (t *Transmitter) Ready() bool { return t.state == txIdle }

// Active reports whether a frame is in flight.
func (t *Transmitter) Active() bool { return t.state != txIdle }

// Reset aborts any frame in flight and returns the line to mark.
func (t *Transmitter) Reset() {
	t.state = txIdle
	t.shift = 0
	t.bit = 0
	t.serial = true
}
