package nrf24l01

import (
	"bytes"
	"testing"
)

func TestRegisterRoundTrips(t *testing.T) {
	cases := []struct {
		name string
		reg  Register
		raw  []byte
	}{
		{"CONFIG", new(Config), []byte{0x7F}},
		{"STATUS", new(Status), []byte{0x4E}},
		{"EN_AA", new(EnAa), []byte{0x3F}},
		{"EN_RXADDR", new(EnRxaddr), []byte{0x03}},
		{"SETUP_AW", new(SetupAw), []byte{0x03}},
		{"SETUP_RETR", new(SetupRetr), []byte{0xF3}},
		{"RF_CH", new(RfCh), []byte{0x4C}},
		{"RF_SETUP", new(RfSetup), []byte{0x26}},
		{"OBSERVE_TX", new(ObserveTx), []byte{0xA5}},
		{"RPD", new(Rpd), []byte{0x01}},
		{"RX_ADDR_P0", new(RxAddrP0), []byte{0xE7, 0xE7, 0xE7, 0xE7, 0xE7}},
		{"RX_ADDR_P1", new(RxAddrP1), []byte{0xC2, 0xC2, 0xC2, 0xC2, 0xC2}},
		{"RX_ADDR_P3", &RxAddrLsb{Pipe: 3}, []byte{0xCC}},
		{"TX_ADDR", new(TxAddrReg), []byte{0x01, 0x02, 0x03, 0x04, 0x05}},
		{"RX_PW_P2", &RxPw{Pipe: 2}, []byte{0x20}},
		{"FIFO_STATUS", new(FifoStatus), []byte{0x11}},
		{"DYNPD", new(Dynpd), []byte{0x3F}},
		{"FEATURE", new(Feature), []byte{0x07}},
	}

	for _, tc := range cases {
		if got := tc.reg.Size(); got != len(tc.raw) {
			t.Errorf("%s: Size() = %d, want %d", tc.name, got, len(tc.raw))
			continue
		}
		tc.reg.Decode(tc.raw)
		out := make([]byte, len(tc.raw))
		tc.reg.Encode(out)
		if !bytes.Equal(out, tc.raw) {
			t.Errorf("%s: encode(decode(%X)) = %X", tc.name, tc.raw, out)
		}
	}
}

func TestRegisterAddresses(t *testing.T) {
	if got := (RxAddrLsb{Pipe: 5}).Addr(); got != 0x0F {
		t.Errorf("RX_ADDR_P5 address = 0x%02X, want 0x0F", got)
	}
	if got := (RxPw{Pipe: 4}).Addr(); got != 0x15 {
		t.Errorf("RX_PW_P4 address = 0x%02X, want 0x15", got)
	}
	if got := new(FifoStatus).Addr(); got != 0x17 {
		t.Errorf("FIFO_STATUS address = 0x%02X, want 0x17", got)
	}
}

func TestConfigReset(t *testing.T) {
	c := configReset
	if c.Crc() != CRCLength8 {
		t.Errorf("Reset CRC length = %d, want CRCLength8", c.Crc())
	}
	if c.MaskRxDr() || c.MaskTxDs() || c.MaskMaxRt() {
		t.Error("Reset value must leave all interrupts unmasked")
	}
	if c.PwrUp() || c.PrimRx() {
		t.Error("Reset value must be powered down, primary transmitter")
	}
}

func TestConfigAccessorsNeverTouchReservedBit(t *testing.T) {
	var c Config
	c.SetPrimRx(true)
	c.SetPwrUp(true)
	c.SetCrc(CRCLength16)
	c.SetMaskRxDr(true)
	c.SetMaskTxDs(true)
	c.SetMaskMaxRt(true)

	var buf [1]byte
	c.Encode(buf[:])
	if buf[0]&0x80 != 0 {
		t.Errorf("Reserved bit 7 set: %08b", buf[0])
	}
	if buf[0] != 0x7F {
		t.Errorf("Expected 0x7F with everything on, got 0x%02X", buf[0])
	}
}

func TestConfigCrcModes(t *testing.T) {
	var c Config
	c.SetCrc(CRCLength16)
	if c.Crc() != CRCLength16 {
		t.Errorf("Crc() = %d, want CRCLength16", c.Crc())
	}
	c.SetCrc(CRCLength8)
	if c.Crc() != CRCLength8 {
		t.Errorf("Crc() = %d, want CRCLength8", c.Crc())
	}
	c.SetCrc(CRCLengthDisabled)
	if c.Crc() != CRCLengthDisabled {
		t.Errorf("Crc() = %d, want CRCLengthDisabled", c.Crc())
	}
}

func TestStatusBits(t *testing.T) {
	s := Status(0x4E)
	if !s.RxDr() || s.TxDs() || s.MaxRt() {
		t.Errorf("Unexpected flag decode for 0x4E: %v", s)
	}
	if s.RxPNo() != 7 {
		t.Errorf("RxPNo() = %d, want 7 (FIFO empty)", s.RxPNo())
	}

	s = Status(0x05)
	if s.RxPNo() != 2 {
		t.Errorf("RxPNo() = %d, want 2", s.RxPNo())
	}
	if !s.TxFull() {
		t.Error("Expected TxFull for 0x05")
	}
}

func TestSetupAwProbeField(t *testing.T) {
	// A floating bus reads 0xFF; the three-bit getter surfaces 7 so the
	// connectivity probe rejects it.
	if got := SetupAw(0xFF).Aw(); got != 7 {
		t.Errorf("Aw() = %d for 0xFF, want 7", got)
	}

	// The setter is confined to the two architected bits.
	var a SetupAw
	a.SetAw(0xFF)
	if byte(a) != 0x03 {
		t.Errorf("SetAw(0xFF) wrote 0x%02X, want 0x03", byte(a))
	}
	if a.Aw() != 3 {
		t.Errorf("Aw() = %d after clamp, want 3", a.Aw())
	}
}

func TestSetupRetrFields(t *testing.T) {
	var r SetupRetr
	r.SetArd(15)
	r.SetArc(3)
	if byte(r) != 0xF3 {
		t.Errorf("SETUP_RETR = 0x%02X, want 0xF3", byte(r))
	}
	if r.Ard() != 15 || r.Arc() != 3 {
		t.Errorf("Ard/Arc = %d/%d, want 15/3", r.Ard(), r.Arc())
	}
}

func TestRfSetupFields(t *testing.T) {
	var s RfSetup
	s.SetDataRate(DataRate250kbps)
	s.SetPower(PALevelMax)
	if byte(s) != 0x26 {
		t.Errorf("RF_SETUP = 0x%02X, want 0x26", byte(s))
	}
	if s.DataRate() != DataRate250kbps || s.Power() != PALevelMax {
		t.Errorf("Decode mismatch: %v %v", s.DataRate(), s.Power())
	}

	s.SetDataRate(DataRate2mbps)
	if byte(s) != 0x0E {
		t.Errorf("RF_SETUP = 0x%02X, want 0x0E", byte(s))
	}
	s.SetDataRate(DataRate1mbps)
	if s.DataRate() != DataRate1mbps {
		t.Errorf("DataRate() = %v, want 1mbps", s.DataRate())
	}
}

func TestRxPwWidthClamp(t *testing.T) {
	var r RxPw
	r.SetWidth(40)
	if r.Width != MaxPayloadBytes {
		t.Errorf("SetWidth(40) stored %d, want %d", r.Width, MaxPayloadBytes)
	}
}

func TestObserveTxCounters(t *testing.T) {
	o := ObserveTx(0xF3)
	if o.PlosCnt() != 15 || o.ArcCnt() != 3 {
		t.Errorf("PlosCnt/ArcCnt = %d/%d, want 15/3", o.PlosCnt(), o.ArcCnt())
	}
}

func TestPipeBitfields(t *testing.T) {
	var aa EnAa
	aa.SetPipes(P0 | P2)
	if !aa.Enabled(0) || aa.Enabled(1) || !aa.Enabled(2) {
		t.Errorf("Pipe decode mismatch: %06b", byte(aa))
	}
	aa.SetEnabled(1, true)
	aa.SetEnabled(2, false)
	if aa.Pipes() != P0|P1 {
		t.Errorf("Pipes() = %06b, want P0|P1", byte(aa.Pipes()))
	}
}
