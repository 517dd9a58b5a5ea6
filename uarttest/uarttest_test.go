package uarttest_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	uart "github.com/atsmith3/uart-sub000"
	"github.com/atsmith3/uart-sub000/uarttest"
)

func TestSchedulerBadFrequency(t *testing.T) {
	s := uarttest.NewScheduler()
	if _, err := s.AddClock(0, func() {}); err == nil {
		t.Error("0 Hz: expected error")
	}
	if _, err := s.AddClock(2e9, func() {}); err == nil {
		t.Error("2 GHz: expected error")
	}
}

func TestSchedulerTickCounts(t *testing.T) {
	s := uarttest.NewScheduler()
	fast, slow := 0, 0
	_, err := s.AddClock(8_000_000, func() { fast++ })
	require.NoError(t, err)
	_, err = s.AddClock(1_000_000, func() { slow++ })
	require.NoError(t, err)

	s.Run(10_000) // 10 us
	require.Equal(t, 80, fast)
	require.Equal(t, 10, slow)
	require.Equal(t, uint64(10_000), s.Now())

	s.Run(1_000)
	require.Equal(t, 88, fast)
	require.Equal(t, 11, slow)
}

// Ticks fire in simulated-time order; coincident ticks fire in registration
// order.
func TestSchedulerOrdering(t *testing.T) {
	s := uarttest.NewScheduler()
	var events []string
	_, _ = s.AddClock(4, func() { events = append(events, "a") })
	_, _ = s.AddClock(2, func() { events = append(events, "b") })

	s.Run(1_000_000_000) // 1 s
	require.Equal(t, []string{"a", "a", "b", "a", "a", "b"}, events)
}

// Two transceivers cross-connected at an 8:1 wire-to-bus clock ratio exchange
// bytes in both directions at once.
func TestPairFullDuplex(t *testing.T) {
	p, err := uarttest.NewPair()
	require.NoError(t, err)

	for _, u := range []*uart.Transceiver{p.A, p.B} {
		require.NoError(t, u.WriteReg(uart.RegBaudDiv, 1))
		require.NoError(t, u.WriteReg(uart.RegCtrl, uart.CtrlTxEnable|uart.CtrlRxEnable))
	}
	aToB := []byte{0x11, 0x22}
	bToA := []byte{0xEE, 0xDD}
	for _, b := range aToB {
		require.NoError(t, p.A.WriteReg(uart.RegTxData, uint32(b)))
	}
	for _, b := range bToA {
		require.NoError(t, p.B.WriteReg(uart.RegTxData, uint32(b)))
	}

	s := uarttest.NewScheduler()
	_, err = s.AddClock(16_000_000, p.TickWire)
	require.NoError(t, err)
	_, err = s.AddClock(2_000_000, p.TickBus)
	require.NoError(t, err)

	// two frames at 16 ticks per bit need roughly 400 wire ticks
	s.Run(60_000)

	readAll := func(u *uart.Transceiver, n int) []byte {
		var out []byte
		for i := 0; i < n; i++ {
			v, err := u.ReadReg(uart.RegRxData)
			require.NoError(t, err)
			out = append(out, byte(v))
		}
		return out
	}
	require.Equal(t, aToB, readAll(p.B, len(aToB)))
	require.Equal(t, bToA, readAll(p.A, len(bToA)))

	sa, err := p.A.ReadReg(uart.RegStatus)
	require.NoError(t, err)
	require.NotZero(t, sa&uart.StatusTxEmpty)
	require.NotZero(t, sa&uart.StatusRxEmpty)
	require.Zero(t, sa&(uart.StatusFrameError|uart.StatusOverrunError))
}

// SendFrame drives the exact frame waveform onto the tick callback.
func TestSendFrameWaveform(t *testing.T) {
	var levels []bool
	uarttest.SendFrame(func(lv bool) { levels = append(levels, lv) }, 2, 0xC3)

	want := []bool{
		false, false, // start
		true, true, true, true, // bits 0,1
		false, false, false, false, false, false, false, false, // bits 2..5
		true, true, true, true, // bits 6,7
		true, true, // stop
	}
	require.Equal(t, want, levels)
}
