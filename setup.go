package nrf24

import (
	"github.com/ecc1/radio"
	"github.com/pkg/errors"
)

const (
	baseFrequency = 2400000000 // Hz
	channelWidth  = 1000000    // Hz
)

// SetChannel tunes the radio to 2400+ch MHz.
// Channels above MaxChannel are rejected without touching the bus.
func (r *Radio) SetChannel(ch byte) error {
	if ch > MaxChannel {
		return errors.Wrapf(ErrChannelRange, "channel %d", ch)
	}
	r.WriteRegister(RF_CH, ch)
	return nil
}

// Channel returns the current RF channel.
func (r *Radio) Channel() byte {
	return r.ReadRegister(RF_CH)
}

// Frequency returns the radio's current frequency, in Hertz.
func (r *Radio) Frequency() uint32 {
	return baseFrequency + uint32(r.Channel())*channelWidth
}

// SetFrequency tunes the radio to the channel containing freq, in Hertz.
// A frequency outside the 2400-2525 MHz band is recorded as an error
// and leaves the channel unchanged.
func (r *Radio) SetFrequency(freq uint32) {
	if freq < baseFrequency || (freq-baseFrequency)/channelWidth > MaxChannel {
		r.setError(errors.Wrapf(ErrChannelRange, "%s MHz", radio.MegaHertz(freq)))
		return
	}
	r.setError(r.SetChannel(byte((freq - baseFrequency) / channelWidth)))
}

// SetPower sets the Tx output power, clamped to PowerMax.
// The data-rate and other RF_SETUP bits are preserved.
func (r *Radio) SetPower(level PowerLevel) {
	rf := RFSetup(r.ReadRegister(RF_SETUP))
	r.WriteRegister(RF_SETUP, byte(rf.WithPower(level)))
}

// Power returns the current Tx output power.
func (r *Radio) Power() PowerLevel {
	return RFSetup(r.ReadRegister(RF_SETUP)).Power()
}

// ReadStatus reads the STATUS register.
func (r *Radio) ReadStatus() Status {
	return Status(r.ReadRegister(STATUS))
}

// ClearStatus clears the given interrupt flags (RxDR, TxDS, MaxRT).
func (r *Radio) ClearStatus(s Status) {
	r.WriteRegister(STATUS, byte(s&(RxDR|TxDS|MaxRT)))
}

// CarrierDetected reports whether a signal above -64dBm
// was seen on the current channel.
func (r *Radio) CarrierDetected() bool {
	return r.ReadRegister(RPD)&1 != 0
}
