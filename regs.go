// Copyright 2025 The uart-sub000 authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package uart

// Register offsets (byte addresses, word aligned). The external bus adapter
// is responsible for translating its protocol into single-tick read/write
// pulses on these offsets.
const (
	RegCtrl      uint32 = 0x00 // control: enables
	RegStatus    uint32 = 0x04 // read-only status flags and levels
	RegTxData    uint32 = 0x08 // write-only: push byte to transmit buffer
	RegRxData    uint32 = 0x0C // read: pop byte through the prefetch register
	RegBaudDiv   uint32 = 0x10 // 16-bit baud divisor
	RegIntEnable uint32 = 0x14 // interrupt enables
	RegIntStatus uint32 = 0x18 // latched interrupt status, write-1-to-clear
	RegFifoCtrl  uint32 = 0x1C // self-clearing buffer reset pulses
)

// CTRL register bits.
const (
	CtrlTxEnable uint32 = 1 << 0
	CtrlRxEnable uint32 = 1 << 1

	ctrlMask = CtrlTxEnable | CtrlRxEnable
)

// STATUS register bits.
const (
	StatusTxEmpty      uint32 = 1 << 0
	StatusTxFull       uint32 = 1 << 1
	StatusRxEmpty      uint32 = 1 << 2
	StatusRxFull       uint32 = 1 << 3
	StatusTxActive     uint32 = 1 << 4
	StatusRxActive     uint32 = 1 << 5
	StatusFrameError   uint32 = 1 << 6
	StatusOverrunError uint32 = 1 << 7

	statusTxLevelShift = 8
	statusRxLevelShift = 16
)

// Interrupt bits, shared by INT_ENABLE and INT_STATUS. Status bits latch on
// their event and are cleared only by writing 1 to them in INT_STATUS.
const (
	IntTxIdle     uint32 = 1 << 0 // transmit buffer drained
	IntRxReady    uint32 = 1 << 1 // received byte available
	IntFrameError uint32 = 1 << 2
	IntOverrun    uint32 = 1 << 3

	intMask = IntTxIdle | IntRxReady | IntFrameError | IntOverrun
)

// FIFO_CTRL register bits. Each written 1 produces a one-tick reset pulse and
// self-clears; the register always reads back as zero.
const (
	FifoCtrlTxReset uint32 = 1 << 0
	FifoCtrlRxReset uint32 = 1 << 1
)

// DefaultBaudDiv is the reset value of BAUD_DIV.
const DefaultBaudDiv uint16 = 0x0004

// baudMask limits BAUD_DIV to its 16 writable bits.
const baudMask = 0xFFFF
