// Copyright 2025 The uart-sub000 authors.
// Licensed under the MIT license. See license text in the LICENSE file.

// Package uarttest provides utilities for driving UART transceiver models in
// tests and demos: a deterministic multi-clock scheduler and serial frame
// helpers.
package uarttest

import "github.com/pkg/errors"

// A Clock is one free-running tick source managed by a Scheduler.
type Clock struct {
	period uint64 // ns
	next   uint64 // ns, absolute time of the next tick
	fn     func()
}

// A Scheduler advances any number of clocks in simulated-time order, mapping
// hardware's free-running clock domains onto a deterministic, replayable
// sequence of tick callbacks. Clocks with no fixed ratio to each other are
// simply clocks whose periods are not multiples of one another.
type Scheduler struct {
	clocks []*Clock
	now    uint64 // ns
}

// NewScheduler returns an empty scheduler at time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// AddClock registers a tick callback fired at the given frequency. The first
// tick fires one full period after time zero.
func (s *Scheduler) AddClock(freqHz uint64, fn func()) (*Clock, error) {
	if freqHz == 0 || freqHz > 1e9 {
		return nil, errors.Errorf("uarttest: clock frequency must be in 1..1e9 Hz, got %d", freqHz)
	}
	c := &Clock{period: 1e9 / freqHz, fn: fn}
	c.next = s.now + c.period
	s.clocks = append(s.clocks, c)
	return c, nil
}

// Run advances simulated time by d nanoseconds, firing every due tick in time
// order. Ticks due at the same instant fire in clock registration order.
func (s *Scheduler) Run(d uint64) {
	end := s.now + d
	for {
		var due *Clock
		for _, c := range s.clocks {
			if c.next <= end && (due == nil || c.next < due.next) {
				due = c
			}
		}
		if due == nil {
			break
		}
		s.now = due.next
		due.next += due.period
		due.fn()
	}
	s.now = end
}

// Now returns the current simulated time in nanoseconds.
func (s *Scheduler) Now() uint64 { return s.now }
