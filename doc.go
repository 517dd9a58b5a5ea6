/*
Package uart is a cycle-accurate software model of a dual-clock UART
transceiver with a memory-mapped register interface.

The model has two independent clock domains: the control domain, which owns
the register file and the byte buffers' consumer-facing sides, and the wire
domain, which owns the baud generator, the framer and the oversampled
deframer. Each domain advances through its own Tick method and the two may be
interleaved at any ratio; every value that crosses between them goes through
an explicit synchronizer from the cdc package, never directly.

A Transceiver is driven like hardware: one TickBus call per control-domain
clock edge carrying at most one register access, and one TickWire call per
wire-domain clock edge carrying the receive line level. Convenience wrappers
(WriteReg, ReadReg) implement the multi-tick register access protocol on top.

	u, _ := uart.New()
	u.WriteReg(uart.RegBaudDiv, 1)
	u.WriteReg(uart.RegCtrl, uart.CtrlTxEnable|uart.CtrlRxEnable)
	u.WriteReg(uart.RegTxData, 0xA5)
	for i := 0; i < 200; i++ {
		u.TickWire(u.TxSerial()) // loop the line back
	}

All state updates within a tick are computed from the state as of the
previous tick, mirroring flip-flop semantics: components sample their inputs
before committing their next state, so update order within a tick never leaks
intermediate values.
*/
package uart
