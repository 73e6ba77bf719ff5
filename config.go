package nrf24l01

import "fmt"

type (
	// Address is a radio address, LSB first. With address widths below
	// five bytes, the trailing bytes are ignored by the chip.
	Address [5]byte

	DataRate  byte
	PALevel   byte
	CRCLength byte
)

func (a Address) String() string {
	return fmt.Sprintf("%02X:%02X:%02X:%02X:%02X", a[0], a[1], a[2], a[3], a[4])
}

const (
	// DataRate1mbps represents a data rate of 1mbps
	DataRate1mbps DataRate = iota
	// DataRate2mbps represents a data rate of 2mbps
	DataRate2mbps
	// DataRate250kbps represents a data rate of 250kbps
	DataRate250kbps
)

func (d DataRate) String() string {
	switch d {
	case DataRate250kbps:
		return "250kbps"
	case DataRate1mbps:
		return "1mbps"
	case DataRate2mbps:
		return "2mbps"
	default:
		return "unknown"
	}
}

const (
	// PALevelMin represents a power amplifier level of -18dBm
	PALevelMin PALevel = iota
	// PALevelLow represents a power amplifier level of -12dBm
	PALevelLow
	// PALevelHigh represents a power amplifier level of -6dBm
	PALevelHigh
	// PALevelMax represents a power amplifier level of 0dBm
	PALevelMax
)

func (p PALevel) String() string {
	switch p {
	case PALevelMin:
		return "-18dBm"
	case PALevelLow:
		return "-12dBm"
	case PALevelHigh:
		return "-6dBm"
	case PALevelMax:
		return "0dBm"
	default:
		return "unknown"
	}
}

const (
	// CRCLengthDisabled disables CRC
	CRCLengthDisabled CRCLength = iota
	// CRCLength8 enables 8-bit CRC
	CRCLength8
	// CRCLength16 enables 16-bit CRC
	CRCLength16
)

// Channels run 0 to 125 (2400 to 2525 MHz).
const maxChannel = 125

// RadioConfig is the configuration batch staged by New while the chip
// is still powered down.
type RadioConfig struct {
	// ChannelNumber determines the radio frequency within the 2.4 GHz
	// ISM band, 2400+n MHz. The range is 0 to 125. Channels above the
	// main Wi-Fi spectrum (70-80) are often good choices.
	ChannelNumber byte
	// RxAddr is this module's receive address (written to pipe 1).
	// Left zero, no receive address is staged.
	RxAddr Address
	// TxAddr is the transmit target address. With auto-ack it is
	// mirrored to pipe 0, where the ACK comes back.
	// Left zero, no transmit address is staged.
	TxAddr Address
	// PayloadSize is the static payload width in bytes for the enabled
	// pipes. Range: 1 to 32. Defaults to 32 if not provided.
	PayloadSize byte
	// DisableAutoAck turns off hardware auto-acknowledgements on all
	// pipes. The zero value leaves them enabled.
	DisableAutoAck bool
	// DataRate sets the air data rate.
	// Defaults to DataRate1mbps if not provided.
	DataRate DataRate
	// PALevel sets the power amplifier level.
	// Defaults to PALevelMax if not provided.
	PALevel PALevel
	// AutoRetransmitDelay is in microseconds and must be a multiple of
	// 250. Range: 250 to 4000. Defaults to 250 if not provided.
	AutoRetransmitDelay uint16
	// AutoRetransmitCount ranges 0 to 15. Defaults to 3 if not provided.
	AutoRetransmitCount byte
	// AddressWidth sets the address width. Range: 3 to 5.
	// Defaults to 5 if not provided.
	AddressWidth byte
	// CRCLength sets the CRC length.
	// Defaults to CRCLength16 if not provided.
	CRCLength CRCLength
}

var zeroAddress Address

// applyConfig stages the whole batch through register writes. Called
// before power-up, so none of the writes race a live radio.
func (r *Radio) applyConfig(c RadioConfig) error {
	if c.PayloadSize == 0 || c.PayloadSize > MaxPayloadBytes {
		c.PayloadSize = MaxPayloadBytes
	}
	if c.PALevel == 0 {
		c.PALevel = PALevelMax
	}
	if c.CRCLength == 0 {
		c.CRCLength = CRCLength16
	}
	if c.AutoRetransmitDelay == 0 {
		c.AutoRetransmitDelay = 250
	}
	if c.AutoRetransmitCount == 0 {
		c.AutoRetransmitCount = 3
	}
	if c.AddressWidth == 0 {
		c.AddressWidth = 5
	}

	if err := r.SetCrcMode(c.CRCLength); err != nil {
		return err
	}
	if err := r.SetChannel(c.ChannelNumber); err != nil {
		return err
	}
	if err := r.SetAddressWidth(c.AddressWidth); err != nil {
		return err
	}
	if err := r.SetAutoRetransmit(c.AutoRetransmitDelay, c.AutoRetransmitCount); err != nil {
		return err
	}
	if err := r.SetRf(c.DataRate, c.PALevel); err != nil {
		return err
	}
	if c.DisableAutoAck {
		if err := r.SetAutoAckPipes(0); err != nil {
			return err
		}
	} else {
		if err := r.SetAutoAckPipes(PAll); err != nil {
			return err
		}
	}
	if err := r.SetPipesRxEnable(P0 | P1); err != nil {
		return err
	}
	for pipe := byte(0); pipe < 2; pipe++ {
		if err := r.SetRxPipeWidth(pipe, c.PayloadSize); err != nil {
			return err
		}
	}
	if c.RxAddr != zeroAddress {
		if err := r.SetRxAddr(1, c.RxAddr[:]); err != nil {
			return err
		}
	}
	if c.TxAddr != zeroAddress {
		if err := r.SetTxAddr(c.TxAddr[:]); err != nil {
			return err
		}
		if !c.DisableAutoAck {
			// The ACK for an outbound packet arrives on pipe 0.
			if err := r.SetRxAddr(0, c.TxAddr[:]); err != nil {
				return err
			}
		}
	}
	return nil
}

// SetChannel tunes the carrier to 2400+channel MHz.
func (r *Radio) SetChannel(channel byte) error {
	if channel > maxChannel {
		return fmt.Errorf("%w: %w (%d)", ErrPkg, ErrInvalidChannel, channel)
	}
	var ch RfCh
	ch.SetCh(channel)
	_, err := r.device.WriteRegister(&ch)
	return err
}

// Channel reads back the current RF channel.
func (r *Radio) Channel() (byte, error) {
	var ch RfCh
	_, err := r.device.ReadRegister(&ch)
	return ch.Ch(), err
}

// SetRf sets the air data rate and power amplifier level in one
// read-modify-write of RF_SETUP.
func (r *Radio) SetRf(rate DataRate, power PALevel) error {
	var s RfSetup
	return r.device.UpdateRegister(&s, func() {
		s.SetDataRate(rate)
		s.SetPower(power)
	})
}

// SetCrcMode sets the packet integrity check width.
func (r *Radio) SetCrcMode(l CRCLength) error {
	return r.device.UpdateConfig(func(c *Config) { c.SetCrc(l) })
}

// SetInterruptMask suppresses the selected interrupts on the IRQ pin.
// All three are unmasked after construction.
func (r *Radio) SetInterruptMask(rxDr, txDs, maxRt bool) error {
	return r.device.UpdateConfig(func(c *Config) {
		c.SetMaskRxDr(rxDr)
		c.SetMaskTxDs(txDs)
		c.SetMaskMaxRt(maxRt)
	})
}

// SetAutoRetransmit configures the automatic retransmission parameters.
// delay: 250 to 4000 microseconds (must be a multiple of 250).
// count: 0 to 15 retransmits.
func (r *Radio) SetAutoRetransmit(delay uint16, count byte) error {
	if delay < 250 || delay > 4000 || delay%250 != 0 {
		return fmt.Errorf("%w: delay must be between 250 and 4000 us and multiple of 250", ErrPkg)
	}
	if count > 15 {
		return fmt.Errorf("%w: count must be between 0 and 15", ErrPkg)
	}
	var retr SetupRetr
	retr.SetArd(byte(delay/250 - 1))
	retr.SetArc(count)
	_, err := r.device.WriteRegister(&retr)
	return err
}

// SetAddressWidth sets the address width (3, 4, or 5 bytes).
func (r *Radio) SetAddressWidth(width byte) error {
	if width < 3 || width > 5 {
		return fmt.Errorf("%w: address width must be 3, 4, or 5", ErrPkg)
	}
	var aw SetupAw
	aw.SetAw(width - 2)
	_, err := r.device.WriteRegister(&aw)
	return err
}

// SetAutoAckPipes enables hardware auto-acknowledgement on the given
// pipes and disables it on the rest.
func (r *Radio) SetAutoAckPipes(pipes Pipes) error {
	var aa EnAa
	aa.SetPipes(pipes)
	_, err := r.device.WriteRegister(&aa)
	return err
}

// SetPipesRxEnable selects which pipes listen at all.
func (r *Radio) SetPipesRxEnable(pipes Pipes) error {
	var en EnRxaddr
	en.SetPipes(pipes)
	_, err := r.device.WriteRegister(&en)
	return err
}

// SetRxPipeWidth sets the static payload width for one pipe. Ignored on
// pipes with dynamic payloads enabled.
func (r *Radio) SetRxPipeWidth(pipe, width byte) error {
	if pipe >= PipesCount {
		return fmt.Errorf("%w: %w (%d)", ErrPkg, ErrInvalidPipe, pipe)
	}
	reg := RxPw{Pipe: pipe}
	reg.SetWidth(width)
	_, err := r.device.WriteRegister(&reg)
	return err
}

// SetRxAddr sets the receive address for a pipe. Pipes 0 and 1 take a
// full address; pipes 2-5 use only the first byte, sharing the rest
// with pipe 1.
func (r *Radio) SetRxAddr(pipe byte, addr []byte) error {
	if pipe >= PipesCount {
		return fmt.Errorf("%w: %w (%d)", ErrPkg, ErrInvalidPipe, pipe)
	}
	if len(addr) == 0 {
		return fmt.Errorf("%w: empty address", ErrPkg)
	}
	switch pipe {
	case 0:
		var reg RxAddrP0
		copy(reg.Address[:], addr)
		_, err := r.device.WriteRegister(&reg)
		return err
	case 1:
		var reg RxAddrP1
		copy(reg.Address[:], addr)
		_, err := r.device.WriteRegister(&reg)
		return err
	default:
		reg := RxAddrLsb{Pipe: pipe, Lsb: addr[0]}
		_, err := r.device.WriteRegister(&reg)
		return err
	}
}

// SetTxAddr sets the transmit target address. With auto-ack enabled the
// ACK comes back on pipe 0, so mirror the address there too
// (SetRxAddr(0, addr)).
func (r *Radio) SetTxAddr(addr []byte) error {
	if len(addr) == 0 {
		return fmt.Errorf("%w: empty address", ErrPkg)
	}
	var reg TxAddrReg
	copy(reg.Address[:], addr)
	_, err := r.device.WriteRegister(&reg)
	return err
}

// SetFeatures gates dynamic payload length, ACK payloads and selective
// no-ack. Non-plus silicon needs Activate first.
func (r *Radio) SetFeatures(dynamicPayload, ackPayload, dynamicAck bool) error {
	var f Feature
	return r.device.UpdateRegister(&f, func() {
		f.SetEnDpl(dynamicPayload)
		f.SetEnAckPay(ackPayload)
		f.SetEnDynAck(dynamicAck)
	})
}

// SetDynamicPayloadPipes enables dynamic payload length on the given
// pipes. The feature bit must be on as well (SetFeatures).
func (r *Radio) SetDynamicPayloadPipes(pipes Pipes) error {
	var d Dynpd
	d.SetPipes(pipes)
	_, err := r.device.WriteRegister(&d)
	return err
}

// Activate toggles the feature lock on non-plus silicon. The plus part
// ignores it.
func (r *Radio) Activate() error {
	_, _, err := r.device.SendCommand(Activate{})
	return err
}

// FlushTx discards every queued outbound packet.
func (r *Radio) FlushTx() error {
	_, _, err := r.device.SendCommand(FlushTx{})
	return err
}

// FlushRx discards every received packet still queued.
func (r *Radio) FlushRx() error {
	_, _, err := r.device.SendCommand(FlushRx{})
	return err
}

// RetransmissionCounters returns the packets lost since the last
// channel write and the retransmissions used by the latest
// transmission.
func (r *Radio) RetransmissionCounters() (lost, retries byte, err error) {
	var o ObserveTx
	_, err = r.device.ReadRegister(&o)
	return o.PlosCnt(), o.ArcCnt(), err
}

// HasCarrier reports an in-band RF signal on the current channel. The
// detector needs the signal present for 40µs (128µs on the non-plus
// part) before the register reads high.
func (r *Radio) HasCarrier() (bool, error) {
	var rpd Rpd
	_, err := r.device.ReadRegister(&rpd)
	return rpd.Rpd(), err
}
