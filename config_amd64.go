package nrf24

// Configuration for Intel Edison in 64-bit mode.

const (
	spiDevice = "/dev/spidev5.1"
	csPin     = 110
	cePin     = 14
)
