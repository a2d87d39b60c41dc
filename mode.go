package nrf24

func (r *Radio) readConfig() Config {
	return Config(r.ReadRegister(CONFIG))
}

func (r *Radio) writeConfig(c Config) {
	r.WriteRegister(CONFIG, byte(c))
}

// SetIdle powers the chip down and stops any Rx listening.
func (r *Radio) SetIdle() {
	r.writeConfig(r.readConfig().Clear(PwrUp))
	r.setCE(false)
	if r.initialized {
		r.setState(Ready)
	}
}

// SetTxMode powers the chip up as a primary transmitter.
// CE stays low; each payload write pulses it.
func (r *Radio) SetTxMode() {
	r.writeConfig(r.readConfig().Clear(PrimRx).Set(PwrUp))
	r.delay.Sleep(powerUpDelay)
	if r.initialized {
		r.setState(TxMode)
	}
}

// SetRxMode powers the chip up as a primary receiver and raises CE,
// which keeps it listening until the next mode change.
func (r *Radio) SetRxMode() {
	r.writeConfig(r.readConfig().Set(PrimRx | PwrUp))
	r.delay.Sleep(powerUpDelay)
	r.setCE(true)
	if r.initialized {
		r.setState(RxMode)
	}
}
