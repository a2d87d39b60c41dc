package nrf24

// Configuration for Raspberry Pi 3/4 (64-bit) with the radio on SPI0.

const (
	spiDevice = "/dev/spidev0.0"
	csPin     = 22
	cePin     = 25
)
