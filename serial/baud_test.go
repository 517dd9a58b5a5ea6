package serial_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/atsmith3/uart-sub000/serial"
)

// pulseTicks runs the generator for n ticks and returns the 1-based tick
// numbers on which it pulsed.
func pulseTicks(g *serial.BaudGen, n int, enable bool) []int {
	var out []int
	for i := 1; i <= n; i++ {
		g.Tick(enable)
		if g.Out() {
			out = append(out, i)
		}
	}
	return out
}

func TestBaudGenDivisors(t *testing.T) {
	tests := []struct {
		div   uint16
		ticks int
		want  []int
	}{
		{1, 5, []int{1, 2, 3, 4, 5}},
		{4, 13, []int{1, 5, 9, 13}},
		{12, 25, []int{1, 13, 25}},
	}
	for _, tt := range tests {
		g := serial.NewBaudGen(tt.div)
		require.Equal(t, tt.want, pulseTicks(g, tt.ticks, true), "divisor %d", tt.div)
	}
}

func TestBaudGenDisabled(t *testing.T) {
	g := serial.NewBaudGen(4)
	require.Empty(t, pulseTicks(g, 10, false))

	// the counter holds at reset while disabled, so the first enabled tick
	// pulses immediately
	g.Tick(true)
	require.True(t, g.Out())
}

func TestBaudGenZeroDivisor(t *testing.T) {
	g := serial.NewBaudGen(0)
	require.Empty(t, pulseTicks(g, 10, true))

	g.SetDivisor(2)
	require.Equal(t, []int{1, 3, 5}, pulseTicks(g, 6, true))
}

func TestBaudGenDivisorChange(t *testing.T) {
	g := serial.NewBaudGen(4)
	require.Equal(t, []int{1, 5}, pulseTicks(g, 8, true))

	// the previous period expired on tick 8, so the next pulse lands on the
	// first tick and the new rate applies from there
	g.SetDivisor(2)
	require.Equal(t, []int{1, 3, 5, 7}, pulseTicks(g, 8, true))
}
