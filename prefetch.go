// Copyright 2025 The uart-sub000 authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package uart

type fetchState uint8

const (
	fetchIdle fetchState = iota
	fetchPending
	fetchReady
)

// A ReadPort is the read-domain face of a latency-one buffer, as implemented
// by the fifo package's ring types.
type ReadPort interface {
	// ReadEmpty reports whether no entry is available.
	ReadEmpty() bool
	// RdData returns the registered read output.
	RdData() byte
	// TickRead advances the read side by one tick, popping when rdEn is set.
	TickRead(rdEn bool)
}

// A PrefetchRegister hides the one-tick read latency of a buffer behind a
// holding value that is always fresh and consumed exactly once.
//
// Whenever the source buffer is non-empty and the consumer side is enabled,
// the register issues a read one tick ahead of consumption: Idle to Fetching
// asserts the buffer's read enable, Fetching to Ready captures the registered
// output on the next tick. Consuming the held value either refetches
// immediately (buffer still has data) or returns to Idle. The read enable is
// asserted on exactly those two transitions, so the buffer is read exactly
// once per byte delivered: never skipped, never double-counted.
type PrefetchRegister struct {
	src   ReadPort
	state fetchState
	value byte
}

// NewPrefetchRegister returns an empty prefetch register over src.
func NewPrefetchRegister(src ReadPort) *PrefetchRegister {
	return &PrefetchRegister{src: src}
}

// Tick advances the register by one consumer-domain tick. enabled gates
// fetching; consume acknowledges the held value. Disabling flushes any held
// or in-flight value.
func (p *PrefetchRegister) Tick(enabled, consume bool) {
	if !enabled {
		p.state = fetchIdle
		p.value = 0
		p.src.TickRead(false)
		return
	}
	rdEn := false
	switch p.state {
	case fetchIdle:
		if !p.src.ReadEmpty() {
			rdEn = true
			p.state = fetchPending
		}
	case fetchPending:
		// the registered output was committed on the previous tick
		p.value = p.src.RdData()
		p.state = fetchReady
	case fetchReady:
		if consume {
			if !p.src.ReadEmpty() {
				rdEn = true
				p.state = fetchPending
			} else {
				p.state = fetchIdle
			}
		}
	}
	p.src.TickRead(rdEn)
}

// Valid reports whether a byte is held and consumable.
func (p *PrefetchRegister) Valid() bool { return p.state == fetchReady }

// Value returns the held byte. Only meaningful while Valid.
func (p *PrefetchRegister) Value() byte { return p.value }

// Reset flushes the register.
func (p *PrefetchRegister) Reset() {
	p.state = fetchIdle
	p.value = 0
}
