// Package periph connects an nRF24L01+ through periph.io drivers,
// for hosts where the sysfs interfaces used by package nrf24 are unavailable.
package periph

import (
	"sync"
	"time"

	"github.com/pkg/errors"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"github.com/ecc1/nrf24"
)

// DefaultSpeed is the SPI clock used when Config.Speed is zero.
const DefaultSpeed = 4 * physic.MegaHertz

// Config names the SPI port and GPIO pins in periph.io registry terms,
// for example "/dev/spidev0.0" or "SPI0.0", and "GPIO22".
type Config struct {
	Port  string
	CS    string
	CE    string
	Speed physic.Frequency
}

// Open initializes the periph.io host drivers and opens the radio.
// Check Error on the result before using it.
func Open(c Config) (*nrf24.Radio, error) {
	if _, err := host.Init(); err != nil {
		return nil, errors.Wrap(err, "periph host init")
	}
	cs, err := pinByName(c.CS)
	if err != nil {
		return nil, err
	}
	ce, err := pinByName(c.CE)
	if err != nil {
		return nil, err
	}
	if c.Speed == 0 {
		c.Speed = DefaultSpeed
	}
	r := nrf24.New(&Bus{port: c.Port, speed: c.Speed}, cs, ce, nil)
	r.Init()
	return r, nil
}

func pinByName(name string) (*Pin, error) {
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, errors.Errorf("unknown GPIO pin %q", name)
	}
	return &Pin{p: p}, nil
}

// Bus is an SPI port opened through spireg.
// periph.io transfers are synchronous, so the timeout is not used.
type Bus struct {
	port  string
	speed physic.Frequency

	mu   sync.Mutex
	pc   spi.PortCloser
	conn spi.Conn
}

// NewBus returns a bus for the named port; it is opened by Init.
func NewBus(port string, speed physic.Frequency) *Bus {
	return &Bus{port: port, speed: speed}
}

func (b *Bus) Init() error {
	if b.conn != nil {
		return nil
	}
	pc, err := spireg.Open(b.port)
	if err != nil {
		return errors.Wrapf(err, "open SPI port %q", b.port)
	}
	// CS is driven through a GPIO, so the port's own CS line is left alone.
	conn, err := pc.Connect(b.speed, spi.Mode0|spi.NoCS, 8)
	if err != nil {
		_ = pc.Close()
		return errors.Wrapf(err, "connect SPI port %q", b.port)
	}
	b.pc = pc
	b.conn = conn
	return nil
}

func (b *Bus) Deinit() error {
	if b.pc == nil {
		return nil
	}
	err := b.pc.Close()
	b.pc = nil
	b.conn = nil
	return errors.Wrapf(err, "close SPI port %q", b.port)
}

func (b *Bus) Acquire() {
	b.mu.Lock()
}

func (b *Bus) Release() {
	b.mu.Unlock()
}

func (b *Bus) Transceive(tx, rx []byte, _ time.Duration) error {
	if b.conn == nil {
		return errors.Errorf("SPI port %q not open", b.port)
	}
	return b.conn.Tx(tx, rx[:len(tx)])
}

func (b *Bus) Transmit(tx []byte, _ time.Duration) error {
	if b.conn == nil {
		return errors.Errorf("SPI port %q not open", b.port)
	}
	if len(tx) == 0 {
		return nil
	}
	return b.conn.Tx(tx, make([]byte, len(tx)))
}

// Pin is a GPIO output looked up through gpioreg.
// periph.io exposes no slew-rate control, so the speed is ignored.
type Pin struct {
	p gpio.PinIO
}

// NewPin wraps a periph.io pin.
func NewPin(p gpio.PinIO) *Pin {
	return &Pin{p: p}
}

func (p *Pin) ConfigureOutput(nrf24.PinSpeed) error {
	// Out both configures the pin as an output and sets its level.
	return p.p.Out(p.p.Read())
}

func (p *Pin) Write(high bool) error {
	return errors.Wrap(p.p.Out(gpio.Level(high)), p.p.Name())
}
