package nrf24

import (
	"fmt"
	"testing"
)

func TestWithPower(t *testing.T) {
	cases := []struct {
		rf    RFSetup
		level PowerLevel
		want  RFSetup
	}{
		{0x00, PowerMin, 0x00},
		{0x00, PowerMax, 0x06},
		{0x29, PowerHigh, 0x2D},
		{0xFF, PowerMin, 0xF9},
		{0xA9, 5, 0xAF},
		{0x0E, PowerLow, 0x0A},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("%02X_%d", byte(c.rf), c.level), func(t *testing.T) {
			got := c.rf.WithPower(c.level)
			if got != c.want {
				t.Errorf("RFSetup(%02X).WithPower(%d) == %02X, want %02X", byte(c.rf), c.level, byte(got), byte(c.want))
			}
			if got&^rfPowerMask != c.rf&^rfPowerMask {
				t.Errorf("non-power bits changed: %02X -> %02X", byte(c.rf), byte(got))
			}
		})
	}
}

func TestConfigBits(t *testing.T) {
	c := EnCRC | MaskTxDS
	c = c.Clear(PrimRx).Set(PwrUp)
	if !c.Has(PwrUp) || c.Has(PrimRx) {
		t.Errorf("tx config %v", c)
	}
	c = c.Set(PrimRx | PwrUp)
	if !c.Has(PrimRx | PwrUp) {
		t.Errorf("rx config %v", c)
	}
	c = c.Clear(PwrUp)
	if c != EnCRC|MaskTxDS|PrimRx {
		t.Errorf("idle config == %02X, want %02X", byte(c), byte(EnCRC|MaskTxDS|PrimRx))
	}
}

func TestStrings(t *testing.T) {
	cases := []struct {
		val  fmt.Stringer
		want string
	}{
		{Status(0x0E), "RxDR- TxDS- MaxRT- TxFull- RxPipe:-1"},
		{Status(0x42), "RxDR+ TxDS- MaxRT- TxFull- RxPipe:1"},
		{Status(0x31), "RxDR- TxDS+ MaxRT+ TxFull+ RxPipe:0"},
		{Config(0x0B), "Mask(RxDR- TxDS- MaxRT-) EnCRC+ CRCO- PwrUp+ PrimRx+"},
		{RFSetup(0x0E), "Wave- DRLow- Lock- DRHigh+ Pwr:0dBm"},
		{RFSetup(0x20), "Wave- DRLow+ Lock- DRHigh- Pwr:-18dBm"},
		{PowerLow, "-12dBm"},
		{PowerHigh, "-6dBm"},
		{PowerLevel(5), "PowerLevel(5)"},
		{RxMode, "rx"},
		{State(9), "unknown"},
	}
	for _, c := range cases {
		t.Run(c.want, func(t *testing.T) {
			s := c.val.String()
			if s != c.want {
				t.Errorf("String() == %q, want %q", s, c.want)
			}
		})
	}
}

func TestRxPipe(t *testing.T) {
	cases := []struct {
		s    Status
		pipe int
	}{
		{0x00, 0},
		{0x0A, 5},
		{0x4C, 6},
		{0x0E, -1},
		{0x7F, -1},
	}
	for _, c := range cases {
		if p := c.s.RxPipe(); p != c.pipe {
			t.Errorf("Status(%02X).RxPipe() == %d, want %d", byte(c.s), p, c.pipe)
		}
	}
}
