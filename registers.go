package nrf24l01

import "fmt"

// PipesCount is the number of RX pipes with configurable addresses.
const PipesCount = 6

// MaxPayloadBytes is the size of one FIFO entry.
const MaxPayloadBytes = 32

// maxRegisterSize is the widest register encoding (the 5-byte address
// registers).
const maxRegisterSize = 5

// Register addresses.
const (
	regConfig     = 0x00
	regEnAa       = 0x01
	regEnRxaddr   = 0x02
	regSetupAw    = 0x03
	regSetupRetr  = 0x04
	regRfCh       = 0x05
	regRfSetup    = 0x06
	regStatus     = 0x07
	regObserveTx  = 0x08
	regRpd        = 0x09 // CD on the non-plus part
	regRxAddrP0   = 0x0A
	regTxAddr     = 0x10
	regRxPwP0     = 0x11
	regFifoStatus = 0x17
	regDynpd      = 0x1C
	regFeature    = 0x1D
)

// Register is a typed, bit-accurate view over one chip register.
// Encode/Decode operate on exactly Size bytes and round-trip losslessly;
// the accessor methods are the only place where reserved bits and
// sub-range fields are policed.
type Register interface {
	Addr() byte
	Size() int
	Encode(buf []byte)
	Decode(buf []byte)
}

func setBits(b, mask byte, v bool) byte {
	if v {
		return b | mask
	}
	return b &^ mask
}

// Pipes is a bitfield selecting the chip's six RX data pipes.
type Pipes byte

const (
	P0 Pipes = 1 << iota
	P1
	P2
	P3
	P4
	P5
	PAll = P0 | P1 | P2 | P3 | P4 | P5
)

// --- CONFIG (0x00) ---

// Config is the CONFIG register. The transport holds the authoritative
// in-memory copy; mutate it through Device.UpdateConfig only.
type Config byte

// Power-on reset value: EN_CRC set, everything else clear.
const configReset Config = 0b0000_1000

const (
	cfgPrimRx    = 1 << 0
	cfgPwrUp     = 1 << 1
	cfgCrco      = 1 << 2
	cfgEnCrc     = 1 << 3
	cfgMaskMaxRt = 1 << 4
	cfgMaskTxDs  = 1 << 5
	cfgMaskRxDr  = 1 << 6
)

func (Config) Addr() byte { return regConfig }
func (Config) Size() int { return 1 }
func (c Config) Encode(buf []byte) { buf[0] = byte(c) }
func (c *Config) Decode(buf []byte) {
	*c = Config(buf[0])
}

// PrimRx reports whether the chip is configured as primary receiver.
func (c Config) PrimRx() bool { return c&cfgPrimRx != 0 }

// SetPrimRx selects primary receiver (true) or transmitter (false).
func (c *Config) SetPrimRx(v bool) { *c = Config(setBits(byte(*c), cfgPrimRx, v)) }

func (c Config) PwrUp() bool { return c&cfgPwrUp != 0 }
func (c *Config) SetPwrUp(v bool) { *c = Config(setBits(byte(*c), cfgPwrUp, v)) }

// Crc returns the configured CRC length.
func (c Config) Crc() CRCLength {
	if c&cfgEnCrc == 0 {
		return CRCLengthDisabled
	}
	if c&cfgCrco != 0 {
		return CRCLength16
	}
	return CRCLength8
}

// SetCrc sets the CRC length. The chip forces CRC on whenever auto-ack
// is enabled on any pipe, regardless of this field.
func (c *Config) SetCrc(l CRCLength) {
	b := byte(*c)
	switch l {
	case CRCLengthDisabled:
		b = setBits(b, cfgEnCrc|cfgCrco, false)
	case CRCLength8:
		b = setBits(b, cfgEnCrc, true)
		b = setBits(b, cfgCrco, false)
	case CRCLength16:
		b = setBits(b, cfgEnCrc|cfgCrco, true)
	}
	*c = Config(b)
}

// Mask bits suppress the corresponding interrupt on the IRQ pin when
// set. The reset state leaves all three unmasked.
func (c Config) MaskRxDr() bool { return c&cfgMaskRxDr != 0 }
func (c *Config) SetMaskRxDr(v bool) { *c = Config(setBits(byte(*c), cfgMaskRxDr, v)) }
func (c Config) MaskTxDs() bool { return c&cfgMaskTxDs != 0 }
func (c *Config) SetMaskTxDs(v bool) { *c = Config(setBits(byte(*c), cfgMaskTxDs, v)) }
func (c Config) MaskMaxRt() bool { return c&cfgMaskMaxRt != 0 }
func (c *Config) SetMaskMaxRt(v bool) {
	*c = Config(setBits(byte(*c), cfgMaskMaxRt, v))
}

// --- STATUS (0x07) ---

// Status is the STATUS register. The chip shifts it out as the first
// byte of every transaction, whatever the command. Writing 1 to the
// RX_DR/TX_DS/MAX_RT bits clears them (write-to-clear latch).
type Status byte

const (
	statusTxFull = 1 << 0
	statusMaxRt  = 1 << 4
	statusTxDs   = 1 << 5
	statusRxDr   = 1 << 6
)

func (Status) Addr() byte { return regStatus }
func (Status) Size() int { return 1 }
func (s Status) Encode(buf []byte) { buf[0] = byte(s) }
func (s *Status) Decode(buf []byte) { *s = Status(buf[0]) }

// RxDr reports data ready in the RX FIFO.
func (s Status) RxDr() bool { return s&statusRxDr != 0 }

// TxDs reports a packet transmitted (and acknowledged, with auto-ack).
func (s Status) TxDs() bool { return s&statusTxDs != 0 }

// MaxRt reports that the retransmit budget was exhausted.
func (s Status) MaxRt() bool { return s&statusMaxRt != 0 }

// RxPNo returns the pipe number of the payload at the head of the RX
// FIFO, 0-5. 7 means the FIFO is empty.
func (s Status) RxPNo() byte { return byte(s>>1) & 0x07 }

// TxFull reports a full TX FIFO.
func (s Status) TxFull() bool { return s&statusTxFull != 0 }

func (s *Status) SetRxDr(v bool) { *s = Status(setBits(byte(*s), statusRxDr, v)) }
func (s *Status) SetTxDs(v bool) { *s = Status(setBits(byte(*s), statusTxDs, v)) }
func (s *Status) SetMaxRt(v bool) { *s = Status(setBits(byte(*s), statusMaxRt, v)) }

func (s Status) String() string {
	return fmt.Sprintf("RxDR=%v TxDS=%v MaxRT=%v RxPNo=%d TxFull=%v",
		s.RxDr(), s.TxDs(), s.MaxRt(), s.RxPNo(), s.TxFull())
}

// --- EN_AA (0x01) ---

// EnAa enables the auto-acknowledgment function per pipe.
type EnAa byte

func (EnAa) Addr() byte { return regEnAa }
func (EnAa) Size() int { return 1 }
func (e EnAa) Encode(buf []byte) { buf[0] = byte(e) }
func (e *EnAa) Decode(buf []byte) { *e = EnAa(buf[0]) }

func (e EnAa) Pipes() Pipes { return Pipes(e) & PAll }
func (e *EnAa) SetPipes(p Pipes) { *e = EnAa(p & PAll) }
func (e EnAa) Enabled(pipe byte) bool {
	return e&(1<<pipe) != 0
}
func (e *EnAa) SetEnabled(pipe byte, v bool) {
	*e = EnAa(setBits(byte(*e), 1<<(pipe&0x07), v)) & EnAa(PAll)
}

// --- EN_RXADDR (0x02) ---

// EnRxaddr enables RX addresses per pipe.
type EnRxaddr byte

func (EnRxaddr) Addr() byte { return regEnRxaddr }
func (EnRxaddr) Size() int { return 1 }
func (e EnRxaddr) Encode(buf []byte) { buf[0] = byte(e) }
func (e *EnRxaddr) Decode(buf []byte) { *e = EnRxaddr(buf[0]) }

func (e EnRxaddr) Pipes() Pipes { return Pipes(e) & PAll }
func (e *EnRxaddr) SetPipes(p Pipes) { *e = EnRxaddr(p & PAll) }
func (e EnRxaddr) Enabled(pipe byte) bool {
	return e&(1<<pipe) != 0
}
func (e *EnRxaddr) SetEnabled(pipe byte, v bool) {
	*e = EnRxaddr(setBits(byte(*e), 1<<(pipe&0x07), v)) & EnRxaddr(PAll)
}

// --- SETUP_AW (0x03) ---

// SetupAw configures the address width shared by all pipes.
type SetupAw byte

func (SetupAw) Addr() byte { return regSetupAw }
func (SetupAw) Size() int { return 1 }
func (a SetupAw) Encode(buf []byte) { buf[0] = byte(a) }
func (a *SetupAw) Decode(buf []byte) { *a = SetupAw(buf[0]) }

// Aw returns the raw address-width field. The architected field is two
// bits wide; reading three catches the floating-bus 0xFF pattern in the
// connectivity probe (7 is never a legal value).
func (a SetupAw) Aw() byte { return byte(a) & 0x07 }

// SetAw writes the two-bit field: address width in bytes minus two.
func (a *SetupAw) SetAw(v byte) {
	*a = SetupAw(byte(*a)&^0x03 | v&0x03)
}

// --- SETUP_RETR (0x04) ---

// SetupRetr configures automatic retransmission.
type SetupRetr byte

func (SetupRetr) Addr() byte { return regSetupRetr }
func (SetupRetr) Size() int { return 1 }
func (r SetupRetr) Encode(buf []byte) { buf[0] = byte(r) }
func (r *SetupRetr) Decode(buf []byte) { *r = SetupRetr(buf[0]) }

// Ard is the auto-retransmit delay field: (n+1)*250µs.
func (r SetupRetr) Ard() byte { return byte(r) >> 4 }
func (r *SetupRetr) SetArd(v byte) {
	*r = SetupRetr(byte(*r)&0x0F | v<<4)
}

// Arc is the retransmit count, 0 (disabled) to 15.
func (r SetupRetr) Arc() byte { return byte(r) & 0x0F }
func (r *SetupRetr) SetArc(v byte) {
	*r = SetupRetr(byte(*r)&0xF0 | v&0x0F)
}

// --- RF_CH (0x05) ---

// RfCh selects the RF channel frequency, 2400+n MHz.
type RfCh byte

func (RfCh) Addr() byte { return regRfCh }
func (RfCh) Size() int { return 1 }
func (c RfCh) Encode(buf []byte) { buf[0] = byte(c) }
func (c *RfCh) Decode(buf []byte) { *c = RfCh(buf[0]) }

func (c RfCh) Ch() byte { return byte(c) & 0x7F }
func (c *RfCh) SetCh(v byte) { *c = RfCh(v & 0x7F) }

// --- RF_SETUP (0x06) ---

// RfSetup configures data rate and output power.
type RfSetup byte

const (
	rfDrHigh = 1 << 3
	rfDrLow  = 1 << 5
	rfPwr    = 0x06 // bits 2:1
)

func (RfSetup) Addr() byte { return regRfSetup }
func (RfSetup) Size() int { return 1 }
func (s RfSetup) Encode(buf []byte) { buf[0] = byte(s) }
func (s *RfSetup) Decode(buf []byte) { *s = RfSetup(buf[0]) }

func (s RfSetup) DataRate() DataRate {
	switch {
	case s&rfDrLow != 0:
		return DataRate250kbps
	case s&rfDrHigh != 0:
		return DataRate2mbps
	default:
		return DataRate1mbps
	}
}

func (s *RfSetup) SetDataRate(r DataRate) {
	b := setBits(byte(*s), rfDrLow|rfDrHigh, false)
	switch r {
	case DataRate250kbps:
		b |= rfDrLow
	case DataRate2mbps:
		b |= rfDrHigh
	}
	*s = RfSetup(b)
}

func (s RfSetup) Power() PALevel { return PALevel(byte(s) & rfPwr >> 1) }
func (s *RfSetup) SetPower(p PALevel) {
	*s = RfSetup(byte(*s)&^byte(rfPwr) | byte(p&0x03)<<1)
}

// --- OBSERVE_TX (0x08) ---

// ObserveTx counts lost packets and retransmissions. Read-only; the
// lost-packet counter resets on an RF_CH write.
type ObserveTx byte

func (ObserveTx) Addr() byte { return regObserveTx }
func (ObserveTx) Size() int { return 1 }
func (o ObserveTx) Encode(buf []byte) { buf[0] = byte(o) }
func (o *ObserveTx) Decode(buf []byte) { *o = ObserveTx(buf[0]) }

// PlosCnt is the count of packets lost since the last channel write.
func (o ObserveTx) PlosCnt() byte { return byte(o) >> 4 }

// ArcCnt is the retransmissions used by the latest transmission.
func (o ObserveTx) ArcCnt() byte { return byte(o) & 0x0F }

// --- RPD (0x09) ---

// Rpd is the received-power detector (carrier detect on the non-plus
// part). Read-only.
type Rpd byte

func (Rpd) Addr() byte { return regRpd }
func (Rpd) Size() int { return 1 }
func (r Rpd) Encode(buf []byte) { buf[0] = byte(r) }
func (r *Rpd) Decode(buf []byte) { *r = Rpd(buf[0]) }

func (r Rpd) Rpd() bool { return r&0x01 != 0 }

// --- RX_ADDR_P0/P1 (0x0A/0x0B), TX_ADDR (0x10) ---

// RxAddrP0 is the five-byte receive address for pipe 0. With auto-ack
// it must mirror TX_ADDR on the transmitter, because the ACK comes back
// on pipe 0.
type RxAddrP0 struct {
	Address Address
}

func (RxAddrP0) Addr() byte { return regRxAddrP0 }
func (RxAddrP0) Size() int { return 5 }
func (r RxAddrP0) Encode(buf []byte) { copy(buf, r.Address[:]) }
func (r *RxAddrP0) Decode(buf []byte) { copy(r.Address[:], buf) }

// RxAddrP1 is the five-byte receive address for pipe 1. Pipes 2-5 share
// its upper bytes.
type RxAddrP1 struct {
	Address Address
}

func (RxAddrP1) Addr() byte { return regRxAddrP0 + 1 }
func (RxAddrP1) Size() int { return 5 }
func (r RxAddrP1) Encode(buf []byte) { copy(buf, r.Address[:]) }
func (r *RxAddrP1) Decode(buf []byte) { copy(r.Address[:], buf) }

// RxAddrLsb is the one-byte RX_ADDR_P2..P5 register for the given pipe.
type RxAddrLsb struct {
	Pipe byte // 2-5
	Lsb  byte
}

func (r RxAddrLsb) Addr() byte { return regRxAddrP0 + r.Pipe }
func (RxAddrLsb) Size() int { return 1 }
func (r RxAddrLsb) Encode(buf []byte) { buf[0] = r.Lsb }
func (r *RxAddrLsb) Decode(buf []byte) {
	r.Lsb = buf[0]
}

// TxAddrReg is the five-byte transmit address.
type TxAddrReg struct {
	Address Address
}

func (TxAddrReg) Addr() byte { return regTxAddr }
func (TxAddrReg) Size() int { return 5 }
func (r TxAddrReg) Encode(buf []byte) { copy(buf, r.Address[:]) }
func (r *TxAddrReg) Decode(buf []byte) { copy(r.Address[:], buf) }

// --- RX_PW_P0..P5 (0x11..0x16) ---

// RxPw is the static payload width register for the given pipe. Ignored
// when dynamic payloads are enabled on that pipe.
type RxPw struct {
	Pipe  byte
	Width byte
}

func (r RxPw) Addr() byte { return regRxPwP0 + r.Pipe }
func (RxPw) Size() int { return 1 }
func (r RxPw) Encode(buf []byte) { buf[0] = r.Width }
func (r *RxPw) Decode(buf []byte) {
	r.Width = buf[0]
}

// SetWidth clamps to the 32-byte FIFO entry size.
func (r *RxPw) SetWidth(w byte) {
	if w > MaxPayloadBytes {
		w = MaxPayloadBytes
	}
	r.Width = w
}

// --- FIFO_STATUS (0x17) ---

// FifoStatus reports the TX/RX FIFO fill state.
type FifoStatus byte

const (
	fifoRxEmpty = 1 << 0
	fifoRxFull  = 1 << 1
	fifoTxEmpty = 1 << 4
	fifoTxFull  = 1 << 5
	fifoTxReuse = 1 << 6
)

func (FifoStatus) Addr() byte { return regFifoStatus }
func (FifoStatus) Size() int { return 1 }
func (f FifoStatus) Encode(buf []byte) { buf[0] = byte(f) }
func (f *FifoStatus) Decode(buf []byte) { *f = FifoStatus(buf[0]) }

func (f FifoStatus) RxEmpty() bool { return f&fifoRxEmpty != 0 }
func (f FifoStatus) RxFull() bool { return f&fifoRxFull != 0 }
func (f FifoStatus) TxEmpty() bool { return f&fifoTxEmpty != 0 }
func (f FifoStatus) TxFull() bool { return f&fifoTxFull != 0 }
func (f FifoStatus) TxReuse() bool { return f&fifoTxReuse != 0 }

// --- DYNPD (0x1C) ---

// Dynpd enables dynamic payload length per pipe.
type Dynpd byte

func (Dynpd) Addr() byte { return regDynpd }
func (Dynpd) Size() int { return 1 }
func (d Dynpd) Encode(buf []byte) { buf[0] = byte(d) }
func (d *Dynpd) Decode(buf []byte) { *d = Dynpd(buf[0]) }

func (d Dynpd) Pipes() Pipes { return Pipes(d) & PAll }
func (d *Dynpd) SetPipes(p Pipes) { *d = Dynpd(p & PAll) }

// --- FEATURE (0x1D) ---

// Feature gates dynamic payloads, ACK payloads and selective no-ack.
// On non-plus silicon the register only responds after ACTIVATE.
type Feature byte

const (
	featEnDynAck = 1 << 0
	featEnAckPay = 1 << 1
	featEnDpl    = 1 << 2
)

func (Feature) Addr() byte { return regFeature }
func (Feature) Size() int { return 1 }
func (f Feature) Encode(buf []byte) { buf[0] = byte(f) }
func (f *Feature) Decode(buf []byte) { *f = Feature(buf[0]) }

func (f Feature) EnDpl() bool { return f&featEnDpl != 0 }
func (f *Feature) SetEnDpl(v bool) { *f = Feature(setBits(byte(*f), featEnDpl, v)) }
func (f Feature) EnAckPay() bool { return f&featEnAckPay != 0 }
func (f *Feature) SetEnAckPay(v bool) {
	*f = Feature(setBits(byte(*f), featEnAckPay, v))
}
func (f Feature) EnDynAck() bool { return f&featEnDynAck != 0 }
func (f *Feature) SetEnDynAck(v bool) {
	*f = Feature(setBits(byte(*f), featEnDynAck, v))
}
