// Copyright 2025 The uart-sub000 authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package cdc

import "github.com/pkg/errors"

// MinStages is the smallest usable synchronizer depth. A single flop offers
// no settling margin, so chains shorter than two stages are rejected.
const MinStages = 2

// A BitSync is a multi-stage sampling chain for a single asynchronous bit.
//
// Each Tick shifts the current input into the first stage and moves every
// prior sample one stage forward; Out returns the last stage. For an input
// held constant for at least Stages ticks, Out equals that input starting at
// exactly the Stages-th tick. Every stage always holds a whole prior sample,
// so Out is never a torn value, only a stale one.
type BitSync struct {
	stages []bool
	reset  bool
}

// NewBitSync returns a synchronizer chain of the given depth with all stages
// preset to the reset value.
func NewBitSync(stages int, reset bool) (*BitSync, error) {
	if stages < MinStages {
		return nil, errors.Errorf("cdc: bit sync needs at least %d stages, got %d", MinStages, stages)
	}
	s := &BitSync{stages: make([]bool, stages), reset: reset}
	s.Reset()
	return s, nil
}

// Tick samples in and advances the chain by one destination-domain tick.
func (s *BitSync) Tick(in bool) {
	for i := len(s.stages) - 1; i > 0; i-- {
		s.stages[i] = s.stages[i-1]
	}
	s.stages[0] = in
}

// Out returns the synchronized value (the last stage).
func (s *BitSync) Out() bool { return s.stages[len(s.stages)-1] }

// Stages returns the chain depth.
func (s *BitSync) Stages() int { return len(s.stages) }

// Reset presets every stage to the reset value.
func (s *BitSync) Reset() {
	for i := range s.stages {
		s.stages[i] = s.reset
	}
}

// A WordSync synchronizes a multi-bit word as independent per-bit chains.
//
// This is only valid for words whose bits are logically independent (a set of
// unrelated flags). It must not be used for counters or any other value whose
// bits change together; use a GraySync for those.
type WordSync struct {
	stages []uint16
	mask   uint16
}

// NewWordSync returns a word synchronizer for width bits with the given chain
// depth. All stages reset to zero.
func NewWordSync(width, stages int) (*WordSync, error) {
	if width < 1 || width > 16 {
		return nil, errors.Errorf("cdc: word sync width must be 1..16, got %d", width)
	}
	if stages < MinStages {
		return nil, errors.Errorf("cdc: word sync needs at least %d stages, got %d", MinStages, stages)
	}
	return &WordSync{stages: make([]uint16, stages), mask: uint16(1)<<uint(width) - 1}, nil
}

// Tick samples in and advances the chain by one destination-domain tick.
func (s *WordSync) Tick(in uint16) {
	for i := len(s.stages) - 1; i > 0; i-- {
		s.stages[i] = s.stages[i-1]
	}
	s.stages[0] = in & s.mask
}

// Out returns the synchronized word.
func (s *WordSync) Out() uint16 { return s.stages[len(s.stages)-1] }

// Reset clears every stage.
func (s *WordSync) Reset() {
	for i := range s.stages {
		s.stages[i] = 0
	}
}
