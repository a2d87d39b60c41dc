// Package nrf24test provides a simulated nRF24L01+ for testing code
// that uses package nrf24 without hardware.
//
// The simulation models the chip's registers as a plain 32-entry register
// file: every register reads back what was last written to it.
// It records each pin write, bus transfer and delay in order.
package nrf24test

import (
	"time"

	"github.com/pkg/errors"

	"github.com/ecc1/nrf24"
)

// Power-on register values that differ from zero.
var resetValues = map[byte]byte{
	nrf24.CONFIG:   0x08,
	nrf24.SETUP_AW: nrf24.ResetAddressWidth,
	nrf24.RF_CH:    0x02,
	nrf24.RF_SETUP: 0x0E,
	nrf24.STATUS:   0x0E,
}

var (
	errNotSelected = errors.New("transfer with chip-select deasserted")
	errBusClosed   = errors.New("transfer on uninitialized bus")
)

// EventKind identifies what an Event records.
type EventKind int

const (
	PinWrite EventKind = iota
	Transfer
	Sleep
)

// Event is one observable interaction with the simulated chip.
type Event struct {
	Kind  EventKind
	Pin   string // PinWrite
	Level bool   // PinWrite
	Data  []byte // Transfer: bytes shifted out by the host
	Delay time.Duration
}

// Frame is one chip-select-framed transaction.
type Frame struct {
	Transfers [][]byte
}

// Bytes returns all bytes sent to the chip during the frame.
func (f Frame) Bytes() []byte {
	var b []byte
	for _, t := range f.Transfers {
		b = append(b, t...)
	}
	return b
}

// Chip is a simulated transceiver. It implements nrf24.Bus and nrf24.Delay;
// its CS and CE fields implement nrf24.Pin. It is not safe for concurrent use.
type Chip struct {
	Regs [32]byte

	CS *Pin
	CE *Pin

	// TxFIFO holds payloads written with W_TX_PAYLOAD or W_TX_PAYLOAD_NOACK.
	TxFIFO []Payload
	// RxFIFO holds received payloads; FLUSH_RX empties it.
	RxFIFO [][]byte

	Events []Event
	Frames []Frame

	// InitErr, if set, is returned by Init.
	InitErr error

	BusOpen  bool
	Held     bool
	Acquires int
	Releases int

	frame *Frame
	cmd   int
	data  []byte
}

// Payload is a Tx FIFO entry.
type Payload struct {
	Data  []byte
	NoAck bool
}

// New returns a chip with power-on register values.
func New() *Chip {
	c := &Chip{}
	c.CS = &Pin{chip: c, Name: "CS", Level: true}
	c.CE = &Pin{chip: c, Name: "CE"}
	c.PowerOnReset()
	return c
}

// PowerOnReset restores the power-on register values and empties the FIFOs.
func (c *Chip) PowerOnReset() {
	c.Regs = [32]byte{}
	for addr, v := range resetValues {
		c.Regs[addr] = v
	}
	c.TxFIFO = nil
	c.RxFIFO = nil
}

// ClearLog forgets recorded events and frames.
func (c *Chip) ClearLog() {
	c.Events = nil
	c.Frames = nil
}

// Count returns the number of recorded events of the given kind.
func (c *Chip) Count(kind EventKind) int {
	n := 0
	for _, e := range c.Events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// PinLevels returns the sequence of levels written to the named pin.
func (c *Chip) PinLevels(name string) []bool {
	var v []bool
	for _, e := range c.Events {
		if e.Kind == PinWrite && e.Pin == name {
			v = append(v, e.Level)
		}
	}
	return v
}

func (c *Chip) Init() error {
	if c.InitErr != nil {
		return c.InitErr
	}
	c.BusOpen = true
	return nil
}

func (c *Chip) Deinit() error {
	c.BusOpen = false
	return nil
}

// Acquire panics if the bus is already held, since nested acquisition
// would deadlock a real host bus.
func (c *Chip) Acquire() {
	if c.Held {
		panic("nrf24test: bus acquired twice")
	}
	c.Held = true
	c.Acquires++
}

func (c *Chip) Release() {
	if !c.Held {
		panic("nrf24test: bus released but not held")
	}
	c.Held = false
	c.Releases++
}

func (c *Chip) Transceive(tx, rx []byte, _ time.Duration) error {
	if len(rx) < len(tx) {
		return errors.Errorf("rx buffer too short (%d < %d)", len(rx), len(tx))
	}
	return c.transfer(tx, rx)
}

func (c *Chip) Transmit(tx []byte, _ time.Duration) error {
	return c.transfer(tx, nil)
}

func (c *Chip) Sleep(d time.Duration) {
	c.Events = append(c.Events, Event{Kind: Sleep, Delay: d})
}

func (c *Chip) transfer(tx, rx []byte) error {
	data := append([]byte(nil), tx...)
	c.Events = append(c.Events, Event{Kind: Transfer, Data: data})
	if !c.BusOpen {
		return errBusClosed
	}
	if c.frame == nil {
		return errNotSelected
	}
	c.frame.Transfers = append(c.frame.Transfers, data)
	for i, b := range tx {
		out := c.shift(b)
		if rx != nil {
			rx[i] = out
		}
	}
	return nil
}

func (c *Chip) selectChip() {
	c.frame = &Frame{}
	c.cmd = -1
	c.data = nil
}

func (c *Chip) deselectChip() {
	if c.frame == nil {
		return
	}
	switch c.cmd {
	case nrf24.CmdWriteTxPayload, nrf24.CmdWriteNoAck:
		c.TxFIFO = append(c.TxFIFO, Payload{
			Data:  c.data,
			NoAck: c.cmd == nrf24.CmdWriteNoAck,
		})
	}
	c.Frames = append(c.Frames, *c.frame)
	c.frame = nil
}

// shift clocks one byte into the chip and returns the byte clocked out.
func (c *Chip) shift(b byte) byte {
	if c.cmd < 0 {
		c.cmd = int(b)
		if b == nrf24.CmdFlushRx {
			c.RxFIFO = nil
		}
		return c.Regs[nrf24.STATUS]
	}
	cmd := byte(c.cmd)
	switch {
	case cmd&^nrf24.RegisterMask == nrf24.CmdReadReg:
		return c.Regs[cmd&nrf24.RegisterMask]
	case cmd&^nrf24.RegisterMask == nrf24.CmdWriteReg:
		if len(c.data) == 0 {
			c.Regs[cmd&nrf24.RegisterMask] = b
		}
		c.data = append(c.data, b)
	case cmd == nrf24.CmdWriteTxPayload, cmd == nrf24.CmdWriteNoAck:
		c.data = append(c.data, b)
	}
	return 0
}

// Pin is a simulated GPIO output connected to the chip.
type Pin struct {
	chip *Chip

	Name       string
	Configured bool
	Speed      nrf24.PinSpeed
	Level      bool
}

func (p *Pin) ConfigureOutput(speed nrf24.PinSpeed) error {
	p.Configured = true
	p.Speed = speed
	return nil
}

func (p *Pin) Write(high bool) error {
	c := p.chip
	c.Events = append(c.Events, Event{Kind: PinWrite, Pin: p.Name, Level: high})
	if p == c.CS {
		switch {
		case p.Level && !high:
			c.selectChip()
		case !p.Level && high:
			c.deselectChip()
		}
	}
	p.Level = high
	return nil
}
