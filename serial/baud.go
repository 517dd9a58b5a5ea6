// Copyright 2025 The uart-sub000 authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package serial

// Oversample is the number of sample ticks per bit period. The receiver
// samples at this rate to locate bit centers; the transmit path divides the
// same tick stream back down to the bit rate.
const Oversample = 16

// A BaudGen divides the wire-domain clock down to the oversample tick.
//
// With divisor d the generator emits one single-tick pulse every d clock
// ticks, so the resulting bit rate is clock / (d * Oversample). A divisor of
// 1 pulses on every tick. Changing the divisor while running takes effect on
// the counter's current value; the first period after a change may be a blend
// of the old and new divisor.
type BaudGen struct {
	divisor uint16
	counter uint16
	pulse   bool
}

// NewBaudGen returns a generator with the given initial divisor.
func NewBaudGen(divisor uint16) *BaudGen {
	return &BaudGen{divisor: divisor}
}

// SetDivisor updates the divisor. A zero divisor stops the generator.
func (g *BaudGen) SetDivisor(d uint16) { g.divisor = d }

// Divisor returns the current divisor.
func (g *BaudGen) Divisor() uint16 { return g.divisor }

// Tick advances the generator by one wire-domain tick. While disabled or with
// a zero divisor the counter holds at reset and no pulse is emitted.
func (g *BaudGen) Tick(enable bool) {
	if !enable || g.divisor == 0 {
		g.counter = 0
		g.pulse = false
		return
	}
	if g.counter == 0 {
		g.pulse = true
		g.counter = g.divisor - 1
	} else {
		g.pulse = false
		g.counter--
	}
}

// Out reports whether a pulse fired on the last tick.
func (g *BaudGen) Out() bool { return g.pulse }

// Reset clears the counter and pulse output.
func (g *BaudGen) Reset() {
	g.counter = 0
	g.pulse = false
}
