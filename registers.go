package nrf24

import (
	"strconv"
)

// nRF24L01+ register addresses.
const (
	CONFIG   = 0x00 // Configuration
	SETUP_AW = 0x03 // Setup of address widths
	RF_CH    = 0x05 // RF channel
	RF_SETUP = 0x06 // RF setup
	STATUS   = 0x07 // Status
	RPD      = 0x09 // Received power detector
)

// nRF24L01+ SPI commands.
const (
	CmdReadReg        = 0x00 // OR with 5-bit register address
	CmdWriteReg       = 0x20 // OR with 5-bit register address
	CmdWriteTxPayload = 0xA0
	CmdWriteNoAck     = 0xB0
	CmdFlushRx        = 0xE2
	CmdNop            = 0xFF
)

const (
	// RegisterMask limits addresses to the 5-bit register space.
	RegisterMask = 0x1F

	// MaxPayload is the size of one hardware FIFO slot.
	MaxPayload = 32

	// MaxChannel is the highest RF channel (2400 + 125 MHz).
	MaxChannel = 125

	// ResetAddressWidth is the power-on value of SETUP_AW (5-byte addresses).
	ResetAddressWidth = 0x03
)

// flags renders the bits of b selected by mask into the template f.
// Each '+' in f stands for the next selected bit, high bit first,
// and is printed as '+' if that bit is set or '-' if it is clear.
func flags(f string, mask, b byte) string {
	buf := make([]byte, len(f))
	m := byte(0x80)
	for i := range buf {
		if f[i] != '+' {
			buf[i] = f[i]
			continue
		}
		for mask&m == 0 {
			m >>= 1
		}
		if b&m == 0 {
			buf[i] = '-'
		} else {
			buf[i] = '+'
		}
		m >>= 1
	}
	return string(buf)
}

// Config is the value of the CONFIG register.
type Config byte

const (
	PrimRx    Config = 1 << iota // 1: PRX, 0: PTX
	PwrUp                        // 1: power up, 0: power down
	CRCO                         // CRC length 0: one byte, 1: two bytes
	EnCRC                        // Enable CRC
	MaskMaxRT                    // Mask interrupt caused by MaxRT
	MaskTxDS                     // Mask interrupt caused by TxDS
	MaskRxDR                     // Mask interrupt caused by RxDR
)

// Has reports whether all bits of f are set in c.
func (c Config) Has(f Config) bool {
	return c&f == f
}

// Set returns c with the bits of f set.
func (c Config) Set(f Config) Config {
	return c | f
}

// Clear returns c with the bits of f cleared.
func (c Config) Clear(f Config) Config {
	return c &^ f
}

func (c Config) String() string {
	return flags("Mask(RxDR+ TxDS+ MaxRT+) EnCRC+ CRCO+ PwrUp+ PrimRx+", 0x7F, byte(c))
}

// PowerLevel is the 2-bit RF output power field of RF_SETUP.
type PowerLevel byte

const (
	PowerMin  PowerLevel = iota // -18dBm
	PowerLow                    // -12dBm
	PowerHigh                   // -6dBm
	PowerMax                    // 0dBm
)

// DBm returns the output power in dBm.
func (p PowerLevel) DBm() int {
	return 6*int(p) - 18
}

func (p PowerLevel) String() string {
	if p > PowerMax {
		return "PowerLevel(" + strconv.Itoa(int(p)) + ")"
	}
	return strconv.Itoa(p.DBm()) + "dBm"
}

// RFSetup is the value of the RF_SETUP register.
type RFSetup byte

const (
	rfPowerShift = 1
	rfPowerMask  = RFSetup(3 << rfPowerShift)

	DRHigh RFSetup = 1 << 3 // 0: 1Mbps, 1: 2Mbps
	Lock   RFSetup = 1 << 4 // Force PLL lock (test only)
	DRLow  RFSetup = 1 << 5 // 250kbps
	Wave   RFSetup = 1 << 7 // Continuous carrier
)

// Power returns the output power field.
func (rf RFSetup) Power() PowerLevel {
	return PowerLevel((rf & rfPowerMask) >> rfPowerShift)
}

// WithPower returns rf with the power field replaced by p.
// All other bits are preserved; p is clamped to PowerMax.
func (rf RFSetup) WithPower(p PowerLevel) RFSetup {
	if p > PowerMax {
		p = PowerMax
	}
	return rf&^rfPowerMask | RFSetup(p)<<rfPowerShift
}

func (rf RFSetup) String() string {
	return flags("Wave+ DRLow+ Lock+ DRHigh+ Pwr:", 0xB8, byte(rf)) + rf.Power().String()
}

// Status is the value of the STATUS register,
// which the chip also shifts out as the first byte of every command.
type Status byte

const (
	TxFull Status = 1 << 0 // Tx FIFO full
	MaxRT  Status = 1 << 4 // Maximum number of Tx retransmits
	TxDS   Status = 1 << 5 // Data sent
	RxDR   Status = 1 << 6 // Data ready
)

// RxPipe returns the data pipe number of the payload at the head of
// the Rx FIFO, or -1 if the Rx FIFO is empty.
func (s Status) RxPipe() int {
	n := int(s) & 0x0E
	if n == 0x0E {
		return -1
	}
	return n >> 1
}

func (s Status) String() string {
	return flags("RxDR+ TxDS+ MaxRT+ TxFull+ RxPipe:", 0x71, byte(s)) + strconv.Itoa(s.RxPipe())
}
