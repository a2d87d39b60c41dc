package nrf24

import (
	"sync"
	"time"

	"github.com/ecc1/gpio"
	"github.com/ecc1/spi"
	"github.com/pkg/errors"
)

const spiSpeed = 4000000 // Hz

var errPinNotConfigured = errors.New("GPIO pin not configured as output")

// Open opens the radio attached to the board's default SPI device and pins.
// Check Error before using it.
func Open() *Radio {
	return OpenDevice(spiDevice, csPin, cePin)
}

// OpenDevice opens the radio attached to the given spidev path,
// using sysfs GPIO numbers cs and ce for chip-select and chip-enable.
func OpenDevice(device string, cs, ce int) *Radio {
	r := newDevice(device, cs, ce)
	r.Init()
	return r
}

func newDevice(device string, cs, ce int) *Radio {
	r := New(&spiBus{path: device, speed: spiSpeed}, &gpioPin{num: cs, initial: true}, &gpioPin{num: ce}, nil)
	r.device = device
	return r
}

// spiBus is a Linux spidev bus. The kernel transfer is synchronous,
// so the per-transaction timeout is not used.
type spiBus struct {
	path   string
	speed  int
	mu     sync.Mutex
	device *spi.Device
}

func (b *spiBus) Init() error {
	if b.device != nil {
		return nil
	}
	var err error
	b.device, err = spi.Open(b.path, b.speed, 0)
	return errors.Wrapf(err, "open %s", b.path)
}

func (b *spiBus) Deinit() error {
	if b.device == nil {
		return nil
	}
	err := b.device.Close()
	b.device = nil
	return errors.Wrapf(err, "close %s", b.path)
}

func (b *spiBus) Acquire() {
	b.mu.Lock()
}

func (b *spiBus) Release() {
	b.mu.Unlock()
}

func (b *spiBus) Transceive(tx, rx []byte, _ time.Duration) error {
	if b.device == nil {
		return errors.Errorf("%s not open", b.path)
	}
	if len(tx) == 0 {
		return nil
	}
	return b.device.Transfer(tx, rx[:len(tx)])
}

func (b *spiBus) Transmit(tx []byte, timeout time.Duration) error {
	if len(tx) == 0 {
		return nil
	}
	return b.Transceive(tx, make([]byte, len(tx)), timeout)
}

// gpioPin is a sysfs GPIO output, driven to initial when it is created.
// The kernel interface has no slew-rate control, so the requested speed
// is ignored.
type gpioPin struct {
	num     int
	initial bool
	pin     gpio.OutputPin
}

func (p *gpioPin) ConfigureOutput(PinSpeed) error {
	if p.pin != nil {
		return nil
	}
	var err error
	p.pin, err = gpio.Output(p.num, false, p.initial)
	return errors.Wrapf(err, "GPIO %d", p.num)
}

func (p *gpioPin) Write(high bool) error {
	if p.pin == nil {
		return errors.Wrapf(errPinNotConfigured, "GPIO %d", p.num)
	}
	return p.pin.Write(high)
}
