package nrf24

// Configuration for Raspberry Pi Zero W with the radio on SPI0.

const (
	spiDevice = "/dev/spidev0.1"
	csPin     = 22
	cePin     = 25
)
