// Copyright 2025 The uart-sub000 authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package uarttest

import uart "github.com/atsmith3/uart-sub000"

// SendFrame drives one UART frame (start, 8 data bits LSB first, stop) onto
// tick, holding each bit level for ticksPerBit calls. tick receives the line
// level for that wire-domain tick.
func SendFrame(tick func(level bool), ticksPerBit int, data byte) {
	bit := func(level bool) {
		for i := 0; i < ticksPerBit; i++ {
			tick(level)
		}
	}
	bit(false) // start
	for i := 0; i < 8; i++ {
		bit(data>>uint(i)&1 == 1)
	}
	bit(true) // stop
}

// A Pair is two transceivers with their serial lines cross-connected:
// A's transmit line feeds B's receive line and vice versa.
type Pair struct {
	A *uart.Transceiver
	B *uart.Transceiver
}

// NewPair returns a cross-connected pair built with the same options.
func NewPair(opts ...uart.Option) (*Pair, error) {
	a, err := uart.New(opts...)
	if err != nil {
		return nil, err
	}
	b, err := uart.New(opts...)
	if err != nil {
		return nil, err
	}
	return &Pair{A: a, B: b}, nil
}

// TickWire advances both wire domains by one tick, each sampling the other's
// transmit line as it stood before this tick.
func (p *Pair) TickWire() {
	aLine := p.B.TxSerial()
	bLine := p.A.TxSerial()
	p.A.TickWire(aLine)
	p.B.TickWire(bLine)
}

// TickBus advances both control domains by one idle tick.
func (p *Pair) TickBus() {
	p.A.TickBus(uart.BusRequest{})
	p.B.TickBus(uart.BusRequest{})
}
