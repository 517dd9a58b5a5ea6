/*
Package serial implements the wire-side of the UART core: the baud-rate tick
divider, the transmit framer, the 16x oversampled receive deframer, and the
two datapaths that bind them to the dual-clock byte buffers.

Framing is fixed at one start bit (space), eight data bits LSB first and one
stop bit (mark); the line idles at mark. All components advance through
explicit Tick methods driven by the wire-domain clock.
*/
package serial
