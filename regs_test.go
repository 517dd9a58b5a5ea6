package uart_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	uart "github.com/atsmith3/uart-sub000"
)

// rd is a registered read that must succeed.
func rd(t *testing.T, u *uart.Transceiver, offset uint32) uint32 {
	t.Helper()
	v, err := u.ReadReg(offset)
	require.NoError(t, err)
	return v
}

// wr is a register write that must succeed.
func wr(t *testing.T, u *uart.Transceiver, offset, value uint32) {
	t.Helper()
	require.NoError(t, u.WriteReg(offset, value))
}

func TestRegResetValues(t *testing.T) {
	u, err := uart.New()
	require.NoError(t, err)

	require.Zero(t, rd(t, u, uart.RegCtrl))
	require.Equal(t, uint32(uart.DefaultBaudDiv), rd(t, u, uart.RegBaudDiv))
	require.Zero(t, rd(t, u, uart.RegIntEnable))
	require.Zero(t, rd(t, u, uart.RegIntStatus))
	require.Zero(t, rd(t, u, uart.RegFifoCtrl))

	s := rd(t, u, uart.RegStatus)
	require.Equal(t, uart.StatusTxEmpty|uart.StatusRxEmpty, s)
	require.False(t, u.IRQ())
}

func TestRegCtrlReservedBits(t *testing.T) {
	u, _ := uart.New()
	wr(t, u, uart.RegCtrl, 0xFFFFFFFF)
	require.Equal(t, uart.CtrlTxEnable|uart.CtrlRxEnable, rd(t, u, uart.RegCtrl))

	wr(t, u, uart.RegCtrl, uart.CtrlRxEnable)
	require.Equal(t, uart.CtrlRxEnable, rd(t, u, uart.RegCtrl))

	wr(t, u, uart.RegCtrl, 0)
	require.Zero(t, rd(t, u, uart.RegCtrl))
}

func TestRegBaudDivWidth(t *testing.T) {
	u, _ := uart.New()
	wr(t, u, uart.RegBaudDiv, 0x1ABCD)
	require.Equal(t, uint32(0xABCD), rd(t, u, uart.RegBaudDiv))

	wr(t, u, uart.RegBaudDiv, 0)
	require.Zero(t, rd(t, u, uart.RegBaudDiv))
}

func TestRegIntEnableMask(t *testing.T) {
	u, _ := uart.New()
	wr(t, u, uart.RegIntEnable, 0xFFFFFFFF)
	require.Equal(t,
		uart.IntTxIdle|uart.IntRxReady|uart.IntFrameError|uart.IntOverrun,
		rd(t, u, uart.RegIntEnable))
}

func TestRegTxDataWriteOnly(t *testing.T) {
	u, _ := uart.New()
	wr(t, u, uart.RegTxData, 0x5A)
	require.Zero(t, rd(t, u, uart.RegTxData))

	// the byte landed in the transmit buffer: level 1, no longer empty
	s := rd(t, u, uart.RegStatus)
	require.Zero(t, s&uart.StatusTxEmpty)
	require.Equal(t, uint32(1), s>>8&0xFF, "tx level")
}

func TestRegStatusLevels(t *testing.T) {
	u, _ := uart.New(uart.WithTxDepth(4))
	for i := 0; i < 4; i++ {
		wr(t, u, uart.RegTxData, uint32(i))
	}
	s := rd(t, u, uart.RegStatus)
	require.NotZero(t, s&uart.StatusTxFull)
	require.Equal(t, uint32(4), s>>8&0xFF, "tx level")

	// a write to a full buffer is dropped
	wr(t, u, uart.RegTxData, 0xEE)
	s = rd(t, u, uart.RegStatus)
	require.Equal(t, uint32(4), s>>8&0xFF, "tx level after dropped write")
}

func TestRegStatusReadOnly(t *testing.T) {
	u, _ := uart.New()
	wr(t, u, uart.RegStatus, 0xFFFFFFFF)
	require.Equal(t, uart.StatusTxEmpty|uart.StatusRxEmpty, rd(t, u, uart.RegStatus))
}

func TestRegIntStatusClearIdempotent(t *testing.T) {
	u, _ := uart.New()
	wr(t, u, uart.RegIntStatus, 0xFFFFFFFF)
	require.Zero(t, rd(t, u, uart.RegIntStatus))
	require.False(t, u.IRQ())
}

func TestRegFifoCtrlTxReset(t *testing.T) {
	u, _ := uart.New()
	for i := 0; i < 3; i++ {
		wr(t, u, uart.RegTxData, uint32(0x40+i))
	}
	require.Equal(t, uint32(3), rd(t, u, uart.RegStatus)>>8&0xFF)

	wr(t, u, uart.RegFifoCtrl, uart.FifoCtrlTxReset)
	require.Zero(t, rd(t, u, uart.RegFifoCtrl), "reset pulses must self-clear")

	s := rd(t, u, uart.RegStatus)
	require.NotZero(t, s&uart.StatusTxEmpty)
	require.Zero(t, s>>8&0xFF, "tx level after reset")
}

func TestRegUnmappedOffset(t *testing.T) {
	u, _ := uart.New()
	for _, off := range []uint32{0x20, 0x24, 0x07, 0xFFFC} {
		if _, err := u.ReadReg(off); err == nil {
			t.Errorf("read 0x%02X: expected error", off)
		}
		if err := u.WriteReg(off, 0); err == nil {
			t.Errorf("write 0x%02X: expected error", off)
		}
	}

	// the tick still completed and the core still works
	wr(t, u, uart.RegBaudDiv, 7)
	require.Equal(t, uint32(7), rd(t, u, uart.RegBaudDiv))
}

// Bus reads are registered: the data latched by a read-enable tick holds on
// RData until the next read.
func TestRegReadDataHolds(t *testing.T) {
	u, _ := uart.New()
	wr(t, u, uart.RegBaudDiv, 0x1234)

	require.NoError(t, u.TickBus(uart.BusRequest{Ren: true, Addr: uart.RegBaudDiv}))
	require.NoError(t, u.TickBus(uart.BusRequest{}))
	require.Equal(t, uint32(0x1234), u.RData())

	for i := 0; i < 5; i++ {
		require.NoError(t, u.TickBus(uart.BusRequest{}))
	}
	require.Equal(t, uint32(0x1234), u.RData())
}

func TestTransceiverBadOptions(t *testing.T) {
	if _, err := uart.New(uart.WithTxDepth(3)); err == nil {
		t.Error("tx depth 3: expected error")
	}
	if _, err := uart.New(uart.WithRxDepth(0)); err == nil {
		t.Error("rx depth 0: expected error")
	}
	if _, err := uart.New(uart.WithSyncStages(1)); err == nil {
		t.Error("1 sync stage: expected error")
	}
}
