package nrf24

import (
	"log"
	"time"

	"github.com/pkg/errors"
)

const (
	busTimeout   = 100 * time.Millisecond
	powerUpDelay = 2 * time.Millisecond
	cePulseWidth = 15 * time.Microsecond

	verbose    = false
	verboseSPI = false
)

func init() {
	if verbose || verboseSPI {
		log.SetFlags(log.Ltime | log.Lmicroseconds | log.LUTC)
	}
}

var (
	// ErrNotConnected is recorded when the connectivity probe fails.
	ErrNotConnected = errors.New("nRF24L01+ not responding")
	// ErrChannelRange is returned for channels above MaxChannel.
	ErrChannelRange = errors.New("channel out of range")
	// ErrPayloadTooLarge is returned for payloads longer than MaxPayload.
	ErrPayloadTooLarge = errors.New("payload exceeds FIFO slot size")
)

// Radio represents an nRF24L01+ transceiver attached to a host SPI bus.
//
// Apart from Init, Deinit and SetIdle, methods assume the caller already
// holds the bus (see Exclusive).
type Radio struct {
	bus   Bus
	cs    Pin
	ce    Pin
	delay Delay

	device      string
	busOpen     bool
	initialized bool
	state       State
	lastStatus  Status
	stats       Statistics
	err         error
}

// New returns an uninitialized radio using the given host collaborators.
// A nil delay uses time.Sleep.
func New(bus Bus, cs, ce Pin, delay Delay) *Radio {
	if delay == nil {
		delay = sleeper{}
	}
	return &Radio{bus: bus, cs: cs, ce: ce, delay: delay}
}

// Name returns the radio's name.
func (r *Radio) Name() string {
	return "nRF24L01+"
}

// Device returns the pathname of the radio's device, if known.
func (r *Radio) Device() string {
	return r.device
}

// Error returns the first bus or pin error since the last Init.
func (r *Radio) Error() error {
	return r.err
}

// SetError sets the error state of the radio device.
func (r *Radio) SetError(err error) {
	r.err = err
}

func (r *Radio) setError(err error) {
	if err != nil && r.err == nil {
		r.err = err
	}
}

// Initialized reports whether the last Init succeeded.
func (r *Radio) Initialized() bool {
	return r.initialized
}

// State returns the current transceiver mode.
func (r *Radio) State() State {
	return r.state
}

// LastStatus returns the STATUS byte shifted out during the most recent
// register read.
func (r *Radio) LastStatus() Status {
	return r.lastStatus
}

// Statistics counts payloads queued for transmission.
type Statistics struct {
	Packets struct{ Sent int }
	Bytes   struct{ Sent int }
}

// Statistics returns the byte and packet counts for the radio device.
func (r *Radio) Statistics() Statistics {
	return r.stats
}

func (r *Radio) setState(s State) {
	if verbose && s != r.state {
		log.Printf("state %v -> %v", r.state, s)
	}
	r.state = s
}

// Exclusive runs fn while holding the bus. The bus is released on every
// return path, including a panic in fn.
func (r *Radio) Exclusive(fn func() error) error {
	r.bus.Acquire()
	defer r.bus.Release()
	return fn()
}

func (r *Radio) withBus(fn func()) {
	_ = r.Exclusive(func() error {
		fn()
		return nil
	})
}

// Init configures the pins, sets up the bus and probes for the chip.
// It reports whether the chip responded; on failure Error explains why.
func (r *Radio) Init() bool {
	r.err = nil
	r.setError(r.cs.ConfigureOutput(SpeedLow))
	r.setError(r.cs.Write(true))
	r.setError(r.ce.ConfigureOutput(SpeedVeryHigh))
	r.setError(r.ce.Write(false))
	if err := r.bus.Init(); err != nil {
		r.setError(errors.Wrap(err, "bus init"))
		r.initialized = false
		r.setState(Uninitialized)
		return false
	}
	r.busOpen = true
	var connected bool
	r.withBus(func() {
		connected = r.CheckConnection()
	})
	if !connected {
		r.setError(ErrNotConnected)
		r.initialized = false
		r.setState(Uninitialized)
		return false
	}
	r.initialized = true
	r.lastStatus = 0
	r.setState(Ready)
	return true
}

// Deinit powers the chip down and releases the bus.
// It may be called in any state, any number of times.
func (r *Radio) Deinit() {
	if r.busOpen {
		r.withBus(r.SetIdle)
		r.setError(r.bus.Deinit())
		r.busOpen = false
	}
	r.initialized = false
	r.setState(Uninitialized)
}

// CheckConnection reports whether SETUP_AW holds its power-on value.
// A chip whose address width was reconfigured reads as absent.
func (r *Radio) CheckConnection() bool {
	return r.ReadRegister(SETUP_AW) == ResetAddressWidth
}

func (r *Radio) selectChip() {
	r.setError(r.cs.Write(false))
}

func (r *Radio) deselectChip() {
	r.setError(r.cs.Write(true))
}

func (r *Radio) setCE(high bool) {
	r.setError(r.ce.Write(high))
}

func (r *Radio) transmit(tx []byte) {
	r.setError(r.bus.Transmit(tx, busTimeout))
	if verboseSPI {
		log.Printf("xfer % X", tx)
	}
}

// ReadRegister returns the value of an nRF24L01+ register.
// The address is not validated and must fit in 5 bits.
func (r *Radio) ReadRegister(addr byte) byte {
	tx := []byte{CmdReadReg | addr, 0}
	rx := make([]byte, len(tx))
	r.selectChip()
	r.setError(r.bus.Transceive(tx, rx, busTimeout))
	r.deselectChip()
	if verboseSPI {
		log.Printf("xfer % X -> % X", tx, rx)
	}
	r.lastStatus = Status(rx[0])
	return rx[1]
}

// WriteRegister writes a value to an nRF24L01+ register.
// The address is not validated and must fit in 5 bits.
func (r *Radio) WriteRegister(addr byte, value byte) {
	r.selectChip()
	r.transmit([]byte{CmdWriteReg | addr, value})
	r.deselectChip()
}
