// Copyright 2025 The uart-sub000 authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package cdc

// GrayEncode converts a binary value to its Gray-coded representation.
// Consecutive integers differ in exactly one bit of the result.
func GrayEncode(v uint16) uint16 { return v ^ (v >> 1) }

// GrayDecode converts a Gray-coded value back to binary.
func GrayDecode(g uint16) uint16 {
	v := g
	for shift := uint(1); shift < 16; shift <<= 1 {
		v ^= v >> shift
	}
	return v
}

// A GraySync carries a multi-bit counter across clock domains.
//
// The source value is Gray-encoded, run through a word synchronizer and
// decoded on the destination side. Because only one bit changes per unit
// increment, a destination sample taken mid-transition decodes to either the
// old or the new source value, never an arbitrary combination. The guarantee
// holds for values that change by small increments between destination
// samples (FIFO pointers, level counters); a value that jumps arbitrarily may
// be observed as a transient intermediate for a few ticks.
type GraySync struct {
	ws *WordSync
}

// NewGraySync returns a Gray-coded synchronizer for width bits with the given
// chain depth.
func NewGraySync(width, stages int) (*GraySync, error) {
	ws, err := NewWordSync(width, stages)
	if err != nil {
		return nil, err
	}
	return &GraySync{ws: ws}, nil
}

// Tick samples the binary source value and advances the chain by one
// destination-domain tick.
func (s *GraySync) Tick(bin uint16) {
	s.ws.Tick(GrayEncode(bin))
}

// Out returns the synchronized value, decoded back to binary.
func (s *GraySync) Out() uint16 { return GrayDecode(s.ws.Out()) }

// Reset clears every stage.
func (s *GraySync) Reset() { s.ws.Reset() }
