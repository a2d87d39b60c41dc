package nrf24

import (
	"github.com/pkg/errors"
)

// WritePayload queues data in the Tx FIFO and pulses CE to send it.
// Payloads longer than MaxPayload are rejected without touching the bus.
func (r *Radio) WritePayload(data []byte) error {
	return r.writePayload(CmdWriteTxPayload, data)
}

// WritePayloadNoAck is like WritePayload but asks the receiver
// not to acknowledge the packet.
func (r *Radio) WritePayloadNoAck(data []byte) error {
	return r.writePayload(CmdWriteNoAck, data)
}

func (r *Radio) writePayload(cmd byte, data []byte) error {
	if len(data) > MaxPayload {
		return errors.Wrapf(ErrPayloadTooLarge, "%d bytes", len(data))
	}
	// CS stays asserted across the command and data transfers.
	r.selectChip()
	r.transmit([]byte{cmd})
	r.transmit(data)
	r.deselectChip()

	r.setCE(true)
	r.delay.Sleep(cePulseWidth)
	r.setCE(false)

	r.stats.Packets.Sent++
	r.stats.Bytes.Sent += len(data)
	return nil
}

// FlushRx discards the contents of the Rx FIFO.
func (r *Radio) FlushRx() {
	r.selectChip()
	r.transmit([]byte{CmdFlushRx})
	r.deselectChip()
}
