// Copyright 2025 The uart-sub000 authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package cdc

// pulse synchronizers use a deeper chain so that a toggle is never missed
// while a previous one is still settling.
const pulseStages = 3

// A PulseSync carries single-tick pulse events from a source domain to a
// destination domain.
//
// The source toggles a flag on each Send; the destination synchronizes the
// flag through a 3-stage chain and emits one output pulse per detected toggle.
// With the acknowledgment path enabled, the destination toggles a return flag
// on each emitted pulse and Ready reports whether the round trip has
// completed, so the source can hold off until at most one pulse is in flight.
//
// Without acknowledgment, Sends spaced closer than the synchronization
// latency (about 3 destination ticks) may be observed late; caller events
// must be naturally rate-limited.
type PulseSync struct {
	useAck bool

	req bool // source-domain toggle flag

	dst  *BitSync // req synchronized into the destination domain
	prev bool     // previous synchronized sample

	ack  bool     // destination-domain ack toggle flag
	sack *BitSync // ack synchronized back into the source domain
}

// NewPulseSync returns a pulse synchronizer. With useAck the source side can
// throttle itself via Ready.
func NewPulseSync(useAck bool) *PulseSync {
	dst, _ := NewBitSync(pulseStages, false)
	sack, _ := NewBitSync(pulseStages, false)
	return &PulseSync{useAck: useAck, dst: dst, sack: sack}
}

// Send marks one pulse event in the source domain. With the ack path enabled,
// callers should check Ready first; a Send while not Ready collapses into the
// in-flight one.
func (p *PulseSync) Send() {
	if p.useAck && !p.Ready() {
		return
	}
	p.req = !p.req
}

// Ready reports whether the source may issue a new pulse. Always true without
// the acknowledgment path.
func (p *PulseSync) Ready() bool {
	if !p.useAck {
		return true
	}
	return p.req == p.sack.Out()
}

// TickSrc advances the source-domain side (the ack return chain).
func (p *PulseSync) TickSrc() {
	if p.useAck {
		p.sack.Tick(p.ack)
	}
}

// TickDst advances the destination-domain side and reports whether a pulse
// fired on this tick.
func (p *PulseSync) TickDst() bool {
	p.dst.Tick(p.req)
	cur := p.dst.Out()
	fired := cur != p.prev
	p.prev = cur
	if fired && p.useAck {
		p.ack = !p.ack
	}
	return fired
}

// Reset returns both sides to their quiescent state.
func (p *PulseSync) Reset() {
	p.req = false
	p.prev = false
	p.ack = false
	p.dst.Reset()
	p.sack.Reset()
}
