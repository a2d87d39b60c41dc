package nrf24

import (
	"time"
)

// PinSpeed selects the output slew rate of a GPIO pin.
type PinSpeed int

const (
	SpeedLow PinSpeed = iota
	SpeedVeryHigh
)

// Pin is a push-pull GPIO output.
type Pin interface {
	// ConfigureOutput puts the pin in push-pull output mode.
	ConfigureOutput(speed PinSpeed) error
	// Write drives the pin high (true) or low (false).
	Write(high bool) error
}

// Bus is the host SPI bus the transceiver is attached to.
// Transfers happen while the caller holds chip-select asserted.
type Bus interface {
	Init() error
	Deinit() error

	// Acquire and Release bracket exclusive use of a shared bus.
	Acquire()
	Release()

	// Transceive shifts out tx while shifting into rx (len(rx) >= len(tx)).
	Transceive(tx, rx []byte, timeout time.Duration) error
	// Transmit shifts out tx and discards what is received.
	Transmit(tx []byte, timeout time.Duration) error
}

// Delay blocks the calling goroutine.
type Delay interface {
	Sleep(d time.Duration)
}

type sleeper struct{}

func (sleeper) Sleep(d time.Duration) {
	time.Sleep(d)
}

// State is the driver's view of the transceiver mode.
type State int

const (
	Uninitialized State = iota
	Ready
	TxMode
	RxMode
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Ready:
		return "ready"
	case TxMode:
		return "tx"
	case RxMode:
		return "rx"
	default:
		return "unknown"
	}
}
