// Copyright 2025 The uart-sub000 authors.
// Licensed under the MIT license. See license text in the LICENSE file.

// Command uartloop runs a loopback demo: it queues a message on a
// transceiver whose transmit line is wired back to its own receive line, runs
// the two clock domains at unequal rates, and prints the bytes read back
// through the register interface.
package main

import (
	"fmt"
	"log"

	"go.uber.org/zap"

	uart "github.com/atsmith3/uart-sub000"
	"github.com/atsmith3/uart-sub000/uarttest"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	u, err := uart.New(uart.WithLogger(logger))
	if err != nil {
		log.Fatal(err)
	}

	must := func(err error) {
		if err != nil {
			log.Fatal(err)
		}
	}

	// wire clock at 8 MHz, control clock at 1 MHz
	sched := uarttest.NewScheduler()
	if _, err := sched.AddClock(8_000_000, func() { u.TickWire(u.TxSerial()) }); err != nil {
		log.Fatal(err)
	}
	if _, err := sched.AddClock(1_000_000, func() { u.TickBus(uart.BusRequest{}) }); err != nil {
		log.Fatal(err)
	}

	must(u.WriteReg(uart.RegBaudDiv, 1))
	must(u.WriteReg(uart.RegCtrl, uart.CtrlTxEnable|uart.CtrlRxEnable))

	// the message is longer than the transmit buffer, so throttle on the
	// full flag the way a polling driver would
	msg := []byte("hello, uart")
	for _, b := range msg {
		for {
			status, err := u.ReadReg(uart.RegStatus)
			must(err)
			if status&uart.StatusTxFull == 0 {
				break
			}
			sched.Run(10_000) // 10us
		}
		must(u.WriteReg(uart.RegTxData, uint32(b)))
	}

	var got []byte
	for len(got) < len(msg) {
		sched.Run(100_000) // 100us slices
		for {
			status, err := u.ReadReg(uart.RegStatus)
			must(err)
			if status&uart.StatusRxEmpty != 0 {
				break
			}
			data, err := u.ReadReg(uart.RegRxData)
			must(err)
			got = append(got, byte(data))
		}
	}

	fmt.Printf("sent:     %q\n", msg)
	fmt.Printf("received: %q\n", got)
}
