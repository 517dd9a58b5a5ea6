// Copyright 2025 The uart-sub000 authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package uart

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/atsmith3/uart-sub000/cdc"
	"github.com/atsmith3/uart-sub000/serial"
)

// A BusRequest is one control-domain register access: at most one of Ren and
// Wen asserted for a single tick.
type BusRequest struct {
	Ren   bool
	Wen   bool
	Addr  uint32
	WData uint32
}

// A Transceiver is the full dual-clock UART core.
//
// The control domain (TickBus) owns the register file, the transmit buffer's
// write side and the receive buffer's read side behind a prefetch register.
// The wire domain (TickWire) owns the baud generator, the framer and the
// deframer. The two tick methods may be interleaved at any ratio; all
// coupling between them runs through cdc synchronizers:
//
//	enables      control -> wire   word sync (independent flags)
//	baud divisor control -> wire   Gray sync
//	buffer ptrs  both directions   Gray sync (inside fifo.AsyncRing)
//	active flags wire -> control   word sync
//	error events wire -> control   pulse sync
//	error clears control -> wire   pulse sync, ack-throttled
//	serial input wire input        bit sync
//
// A register write is observable in the wire domain only after the relevant
// synchronizer latency (roughly SyncStages wire ticks); this latency is part
// of the contract.
type Transceiver struct {
	cfg Config
	log *zap.Logger

	bus  *Domain
	wire *Domain

	// control-domain register state
	ctrl      uint32
	baudDiv   uint16
	intEnable uint32
	intStatus uint32
	rdata     uint32
	frameErr  bool // sticky, mirrored into STATUS and INT_STATUS
	overrun   bool // sticky

	pf          *PrefetchRegister
	prevTxEmpty bool
	prevRxValid bool

	// domain crossings
	enSync     *cdc.WordSync  // control -> wire: {txEn, rxEn}
	activeSync *cdc.WordSync  // wire -> control: {txActive, rxActive}
	divSync    *cdc.GraySync  // control -> wire: baud divisor
	frameEvt   *cdc.PulseSync // wire -> control
	overEvt    *cdc.PulseSync // wire -> control
	clrFrame   *cdc.PulseSync // control -> wire
	clrOver    *cdc.PulseSync // control -> wire

	// wire-domain state
	baud       *serial.BaudGen
	tx         *serial.TxPath
	rx         *serial.RxPath
	prevFrame  bool // edge detectors for the event pulses
	prevOver   bool
}

// New returns a transceiver in its power-on state: disabled, buffers empty,
// BAUD_DIV at its default.
func New(opts ...Option) (*Transceiver, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}

	tx, err := serial.NewTxPath(cfg.TxDepth, cfg.SyncStages)
	if err != nil {
		return nil, errors.Wrap(err, "uart: transmit path")
	}
	rx, err := serial.NewRxPath(cfg.RxDepth, cfg.SyncStages)
	if err != nil {
		return nil, errors.Wrap(err, "uart: receive path")
	}
	enSync, err := cdc.NewWordSync(2, cfg.SyncStages)
	if err != nil {
		return nil, errors.Wrap(err, "uart: enable sync")
	}
	activeSync, err := cdc.NewWordSync(2, cfg.SyncStages)
	if err != nil {
		return nil, errors.Wrap(err, "uart: active flag sync")
	}
	divSync, err := cdc.NewGraySync(16, cfg.SyncStages)
	if err != nil {
		return nil, errors.Wrap(err, "uart: divisor sync")
	}

	u := &Transceiver{
		cfg:         cfg,
		log:         cfg.Logger,
		bus:         NewDomain("control"),
		wire:        NewDomain("wire"),
		baudDiv:     DefaultBaudDiv,
		enSync:      enSync,
		activeSync:  activeSync,
		divSync:     divSync,
		frameEvt:    cdc.NewPulseSync(false),
		overEvt:     cdc.NewPulseSync(false),
		clrFrame:    cdc.NewPulseSync(true),
		clrOver:     cdc.NewPulseSync(true),
		baud:        serial.NewBaudGen(DefaultBaudDiv),
		tx:          tx,
		rx:          rx,
		prevTxEmpty: true,
	}
	u.pf = NewPrefetchRegister(rx.Buffer())
	return u, nil
}

// TickBus advances the control domain by one tick, carrying at most one
// register access. An access to an unmapped offset returns an error (the bus
// adapter's error response); the tick still completes.
func (u *Transceiver) TickBus(req BusRequest) error {
	u.bus.Tick()

	// sample wire-domain activity and error events
	u.activeSync.Tick(packFlags(u.tx.Active(), u.rx.Active()))
	if u.frameEvt.TickDst() {
		u.frameErr = true
		u.intStatus |= IntFrameError
		u.log.Debug("frame error latched", zap.Uint64("tick", u.bus.Ticks()))
	}
	if u.overEvt.TickDst() {
		u.overrun = true
		u.intStatus |= IntOverrun
		u.log.Debug("overrun latched", zap.Uint64("tick", u.bus.Ticks()))
	}
	u.clrFrame.TickSrc()
	u.clrOver.TickSrc()

	var err error
	consume := false
	txWr := false
	var txData byte

	if req.Ren {
		rdata, ok := u.readReg(req.Addr)
		if !ok {
			err = errors.Errorf("uart: no register at offset 0x%02X", req.Addr)
		}
		u.rdata = rdata
		consume = req.Addr == RegRxData
	}
	if req.Wen {
		var ok bool
		txWr, txData, ok = u.writeReg(req.Addr, req.WData)
		if !ok {
			err = errors.Errorf("uart: no register at offset 0x%02X", req.Addr)
		}
	}

	u.tx.Buffer().TickWrite(txWr, txData)
	u.pf.Tick(u.ctrl&CtrlRxEnable != 0, consume)

	// interrupt event edges, control-domain local
	txEmpty := u.tx.Buffer().WriteEmpty()
	if txEmpty && !u.prevTxEmpty {
		u.intStatus |= IntTxIdle
	}
	u.prevTxEmpty = txEmpty
	rxValid := u.pf.Valid()
	if rxValid && !u.prevRxValid {
		u.intStatus |= IntRxReady
	}
	u.prevRxValid = rxValid

	return err
}

// readReg latches the read data for one register. ok is false for unmapped
// offsets.
func (u *Transceiver) readReg(addr uint32) (uint32, bool) {
	switch addr {
	case RegCtrl:
		return u.ctrl, true
	case RegStatus:
		return u.status(), true
	case RegTxData:
		return 0, true // write-only
	case RegRxData:
		if u.pf.Valid() {
			return uint32(u.pf.Value()), true
		}
		return 0, true
	case RegBaudDiv:
		return uint32(u.baudDiv), true
	case RegIntEnable:
		return u.intEnable, true
	case RegIntStatus:
		return u.intStatus, true
	case RegFifoCtrl:
		return 0, true // self-clearing
	}
	return 0, false
}

// writeReg applies one register write. It returns the transmit buffer write
// strobe for this tick; ok is false for unmapped offsets.
func (u *Transceiver) writeReg(addr, wdata uint32) (txWr bool, txData byte, ok bool) {
	switch addr {
	case RegCtrl:
		u.ctrl = wdata & ctrlMask
		u.log.Debug("ctrl write",
			zap.Bool("txEnable", u.ctrl&CtrlTxEnable != 0),
			zap.Bool("rxEnable", u.ctrl&CtrlRxEnable != 0),
			zap.Uint64("tick", u.bus.Ticks()))
	case RegStatus:
		// read-only, ignored
	case RegTxData:
		txWr = true
		txData = byte(wdata)
		if u.tx.Buffer().WriteFull() {
			u.log.Debug("tx byte dropped, buffer full",
				zap.Uint8("data", txData), zap.Uint64("tick", u.bus.Ticks()))
		} else {
			u.log.Debug("tx byte queued",
				zap.Uint8("data", txData), zap.Uint64("tick", u.bus.Ticks()))
		}
	case RegBaudDiv:
		u.baudDiv = uint16(wdata & baudMask)
	case RegIntEnable:
		u.intEnable = wdata & intMask
	case RegIntStatus:
		u.intStatus &^= wdata & intMask
		if wdata&IntFrameError != 0 {
			u.frameErr = false
			u.clrFrame.Send()
		}
		if wdata&IntOverrun != 0 {
			u.overrun = false
			u.clrOver.Send()
		}
	case RegFifoCtrl:
		if wdata&FifoCtrlTxReset != 0 {
			u.tx.Buffer().Reset()
		}
		if wdata&FifoCtrlRxReset != 0 {
			u.rx.Buffer().Reset()
			u.pf.Reset()
		}
	default:
		return false, 0, false
	}
	return txWr, txData, true
}

// status composes the STATUS register from the control-domain view of both
// buffers, the synchronized wire-domain activity flags and the sticky error
// flags. RX empty and level account for a byte held in the prefetch register.
func (u *Transceiver) status() uint32 {
	var s uint32
	txBuf, rxBuf := u.tx.Buffer(), u.rx.Buffer()
	if txBuf.WriteEmpty() {
		s |= StatusTxEmpty
	}
	if txBuf.WriteFull() {
		s |= StatusTxFull
	}
	rxLevel := rxBuf.ReadLevel()
	if u.pf.Valid() {
		rxLevel++
	}
	if rxLevel == 0 {
		s |= StatusRxEmpty
	}
	if rxBuf.ReadFull() {
		s |= StatusRxFull
	}
	act := u.activeSync.Out()
	if act&1 != 0 {
		s |= StatusTxActive
	}
	if act&2 != 0 {
		s |= StatusRxActive
	}
	if u.frameErr {
		s |= StatusFrameError
	}
	if u.overrun {
		s |= StatusOverrunError
	}
	s |= uint32(txBuf.WriteLevel()&0xFF) << statusTxLevelShift
	s |= uint32(rxLevel&0xFF) << statusRxLevelShift
	return s
}

// TickWire advances the wire domain by one tick. rxSerial is the raw receive
// line level (idle mark is true).
func (u *Transceiver) TickWire(rxSerial bool) {
	u.wire.Tick()

	// sample control-domain settings
	u.enSync.Tick(uint16(u.ctrl & ctrlMask))
	u.divSync.Tick(u.baudDiv)
	clrF := u.clrFrame.TickDst()
	clrO := u.clrOver.TickDst()

	en := u.enSync.Out()
	txEn := en&uint16(CtrlTxEnable) != 0
	rxEn := en&uint16(CtrlRxEnable) != 0

	u.baud.SetDivisor(u.divSync.Out())
	u.baud.Tick(txEn || rxEn)
	sample := u.baud.Out()

	u.tx.Tick(txEn, sample && txEn)
	u.rx.Tick(sample && rxEn, rxSerial, clrF, clrO)

	// error event edges toward the control domain
	fe := u.rx.FrameError()
	if fe && !u.prevFrame {
		u.frameEvt.Send()
	}
	u.prevFrame = fe
	oe := u.rx.OverrunError()
	if oe && !u.prevOver {
		u.overEvt.Send()
	}
	u.prevOver = oe
}

// TxSerial returns the current level of the transmit line.
func (u *Transceiver) TxSerial() bool { return u.tx.Serial() }

// RData returns the registered bus read data, valid one control tick after
// the read-enable tick.
func (u *Transceiver) RData() uint32 { return u.rdata }

// IRQ reports the aggregated interrupt output: any latched status bit whose
// enable is set.
func (u *Transceiver) IRQ() bool { return u.intStatus&u.intEnable != 0 }

// BusDomain returns the control-domain tick counter.
func (u *Transceiver) BusDomain() *Domain { return u.bus }

// WireDomain returns the wire-domain tick counter.
func (u *Transceiver) WireDomain() *Domain { return u.wire }

// WriteReg performs one register write, advancing the control domain by one
// tick.
func (u *Transceiver) WriteReg(offset, value uint32) error {
	return u.TickBus(BusRequest{Wen: true, Addr: offset, WData: value})
}

// ReadReg performs one registered register read, advancing the control domain
// by two ticks (the read-enable tick plus the data tick).
func (u *Transceiver) ReadReg(offset uint32) (uint32, error) {
	if err := u.TickBus(BusRequest{Ren: true, Addr: offset}); err != nil {
		return 0, err
	}
	if err := u.TickBus(BusRequest{}); err != nil {
		return 0, err
	}
	return u.RData(), nil
}

// Reset returns the whole transceiver to its power-on state.
func (u *Transceiver) Reset() {
	u.bus.Reset()
	u.wire.Reset()
	u.ctrl = 0
	u.baudDiv = DefaultBaudDiv
	u.intEnable = 0
	u.intStatus = 0
	u.rdata = 0
	u.frameErr = false
	u.overrun = false
	u.pf.Reset()
	u.prevTxEmpty = true
	u.prevRxValid = false
	u.enSync.Reset()
	u.activeSync.Reset()
	u.divSync.Reset()
	u.frameEvt.Reset()
	u.overEvt.Reset()
	u.clrFrame.Reset()
	u.clrOver.Reset()
	u.baud.Reset()
	u.baud.SetDivisor(DefaultBaudDiv)
	u.tx.Reset()
	u.rx.Reset()
	u.prevFrame = false
	u.prevOver = false
}

// packFlags packs independent flags into a word for a WordSync.
func packFlags(b0, b1 bool) uint16 {
	var w uint16
	if b0 {
		w |= 1
	}
	if b1 {
		w |= 2
	}
	return w
}
