/*
Package cdc provides the clock-domain-crossing primitives used by the UART
core: multi-stage bit synchronizers, Gray-coded word synchronizers and
toggle-based pulse synchronizers.

A value produced in one clock domain must never be consumed directly in
another; every crossing in this module goes through one of the types in this
package. All types are driven by explicit Tick methods: a Tick call models one
clock edge of the domain that owns the synchronizer's output side. The input
argument to Tick plays the role of the asynchronous signal being sampled.

Latency is part of the contract: a BitSync with N stages presents an input
N ticks after it became stable, a GraySync adds the same stage latency on top
of the encode/decode, and a PulseSync delivers a pulse roughly 3 destination
ticks after Send.
*/
package cdc
