package nrf24l01

import (
	"fmt"
	"io"
	"time"
)

// Mode is the radio's current operating state.
type Mode byte

const (
	ModeStandby Mode = iota
	ModeRx
	ModeTx
)

func (m Mode) String() string {
	switch m {
	case ModeStandby:
		return "standby"
	case ModeRx:
		return "rx"
	case ModeTx:
		return "tx"
	default:
		return "unknown"
	}
}

// Interrupts selects which STATUS interrupt latches to acknowledge.
type Interrupts struct {
	RxDr  bool
	TxDs  bool
	MaxRt bool
}

// Radio is the top-level driver handle: a mode state machine over a
// Device. It tracks the current operating mode and performs the
// control-line and CONFIG transitions each mode change requires, in the
// order the chip's protocol mandates.
//
// A Radio is exclusively owned by one caller context; it contains no
// internal locking and no background activity. Poll-style methods
// return ErrWouldBlock instead of sleeping.
type Radio struct {
	mode   Mode
	device Device
	closer io.Closer
}

func newRadio(device Device) *Radio {
	return &Radio{mode: ModeStandby, device: device}
}

// New builds the transport over the supplied lines and bus, stages the
// configuration batch while the chip is still powered down, then powers
// it up into Standby.
func New(ce, csn OutputPin, spi SPI, cfg RadioConfig) (*Radio, error) {
	dev, err := newSpiDevice(ce, csn, spi)
	if err != nil {
		return nil, err
	}
	r := newRadio(dev)
	if err := r.applyConfig(cfg); err != nil {
		return nil, err
	}
	if err := r.PowerUp(); err != nil {
		return nil, err
	}
	globalLogger.Info("nRF24L01 configured and powered up in standby")
	return r, nil
}

// Mode returns the current operating mode.
func (r *Radio) Mode() Mode { return r.mode }

// Close powers the chip down and releases the underlying bus, if the
// radio owns one.
func (r *Radio) Close() error {
	if err := r.PowerDown(); err != nil {
		globalLogger.Warn("power down failed")
	}
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}

func wouldBlock() error {
	return fmt.Errorf("%w: %w", ErrPkg, ErrWouldBlock)
}

func (r *Radio) clear(i Interrupts) error {
	var s Status
	s.SetRxDr(i.RxDr)
	s.SetTxDs(i.TxDs)
	s.SetMaxRt(i.MaxRt)
	_, err := r.device.WriteRegister(&s)
	return err
}

// ClearInterrupts acknowledges the RX_DR, TX_DS and MAX_RT events. The
// flags are a write-to-clear latch: writing 1 resets them.
func (r *Radio) ClearInterrupts() error {
	return r.clear(Interrupts{RxDr: true, TxDs: true, MaxRt: true})
}

// rx transitions into RX mode. Any queued outbound packet finishes
// transmitting first; switching direction with a non-empty TX FIFO
// would silently abandon it. May return ErrWouldBlock while draining.
func (r *Radio) rx() error {
	if r.mode == ModeRx {
		return nil
	}
	if err := r.WaitTxEmpty(); err != nil {
		return err
	}
	r.device.CeEnable()
	if err := r.device.UpdateConfig(func(c *Config) { c.SetPrimRx(true) }); err != nil {
		return err
	}
	r.mode = ModeRx
	return nil
}

// tx transitions into TX mode. CE must drop before PRIM_RX is cleared.
func (r *Radio) tx() error {
	if r.mode == ModeTx {
		return nil
	}
	r.device.CeDisable()
	if err := r.device.UpdateConfig(func(c *Config) { c.SetPrimRx(false) }); err != nil {
		return err
	}
	r.mode = ModeTx
	return nil
}

// Standby drops CE and returns to Standby. Reception stops; a queued
// transmission stays queued.
func (r *Radio) Standby() {
	r.device.CeDisable()
	r.mode = ModeStandby
}

// Send queues packet in the TX FIFO and raises CE to start the radio.
// It does not wait for the packet to leave; poll WaitTxReady or
// WaitTxEmpty for completion.
func (r *Radio) Send(packet []byte) error {
	if len(packet) > MaxPayloadBytes {
		return fmt.Errorf("%w: %w (%d bytes)", ErrPkg, ErrPayloadTooLarge, len(packet))
	}
	if err := r.tx(); err != nil {
		return err
	}
	if _, _, err := r.device.SendCommand(WriteTxPayload{Data: packet}); err != nil {
		return err
	}
	r.device.CeEnable()
	return nil
}

// SendNoAck queues packet flagged so the receiver does not acknowledge
// it. Requires the dynamic-ack feature (SetFeatures).
func (r *Radio) SendNoAck(packet []byte) error {
	if len(packet) > MaxPayloadBytes {
		return fmt.Errorf("%w: %w (%d bytes)", ErrPkg, ErrPayloadTooLarge, len(packet))
	}
	if err := r.tx(); err != nil {
		return err
	}
	if _, _, err := r.device.SendCommand(WriteTxPayloadNoAck{Data: packet}); err != nil {
		return err
	}
	r.device.CeEnable()
	return nil
}

// WriteAckPayload queues data to ride on the next ACK transmitted from
// pipe. Requires the ack-payload feature (SetFeatures).
func (r *Radio) WriteAckPayload(pipe byte, data []byte) error {
	if pipe >= PipesCount {
		return fmt.Errorf("%w: %w (%d)", ErrPkg, ErrInvalidPipe, pipe)
	}
	if len(data) > MaxPayloadBytes {
		return fmt.Errorf("%w: %w (%d bytes)", ErrPkg, ErrPayloadTooLarge, len(data))
	}
	_, _, err := r.device.SendCommand(WriteAckPayload{Pipe: pipe, Data: data})
	return err
}

// flushStuckPacket discards a retry-exhausted packet and acknowledges
// the TX interrupts. The chip offers no way to recover the packet.
func (r *Radio) flushStuckPacket() error {
	globalLogger.Warn("max retransmissions reached, dropping packet")
	if _, _, err := r.device.SendCommand(FlushTx{}); err != nil {
		return err
	}
	return r.clear(Interrupts{TxDs: true, MaxRt: true})
}

// WaitTxReady reports whether the TX FIFO can take another packet.
// ErrWouldBlock means poll again. A packet that exhausted its
// retransmit budget is flushed before ErrWouldBlock is reported.
func (r *Radio) WaitTxReady() error {
	if err := r.tx(); err != nil {
		return err
	}
	var fifo FifoStatus
	status, err := r.device.ReadRegister(&fifo)
	if err != nil {
		return err
	}
	if status.MaxRt() {
		if err := r.flushStuckPacket(); err != nil {
			return err
		}
		return wouldBlock()
	}
	if fifo.TxFull() {
		return wouldBlock()
	}
	return nil
}

// WaitTxEmpty reports whether every queued packet has left the TX FIFO,
// dropping CE once it has so the radio returns to an idle RF state.
func (r *Radio) WaitTxEmpty() error {
	if err := r.tx(); err != nil {
		return err
	}
	var fifo FifoStatus
	status, err := r.device.ReadRegister(&fifo)
	if err != nil {
		return err
	}
	if fifo.TxEmpty() {
		r.device.CeDisable()
		return nil
	}
	if status.MaxRt() {
		if err := r.flushStuckPacket(); err != nil {
			return err
		}
	}
	return wouldBlock()
}

// WaitRxReady reports whether a packet is waiting, returning the number
// of the pipe that received it. ErrWouldBlock means the RX FIFO is
// empty; poll again.
func (r *Radio) WaitRxReady() (byte, error) {
	if err := r.rx(); err != nil {
		return 0, err
	}
	var fifo FifoStatus
	status, err := r.device.ReadRegister(&fifo)
	if err != nil {
		return 0, err
	}
	if fifo.RxEmpty() {
		return 0, wouldBlock()
	}
	return status.RxPNo(), nil
}

// Read returns the next received packet: a payload-width read followed
// by a payload read. Call it only after WaitRxReady reported data; on
// an empty FIFO the width byte is unspecified.
func (r *Radio) Read() (Payload, error) {
	if err := r.rx(); err != nil {
		return Payload{}, err
	}
	_, resp, err := r.device.SendCommand(ReadRxPayloadWidth{})
	if err != nil {
		return Payload{}, err
	}
	width := ReadRxPayloadWidth{}.DecodeResponse(resp)
	if width > MaxPayloadBytes {
		// Noise can corrupt the width byte; drop the queue rather than
		// read past the FIFO entry.
		if _, _, err := r.device.SendCommand(FlushRx{}); err != nil {
			return Payload{}, err
		}
		return Payload{}, wouldBlock()
	}
	cmd := ReadRxPayload{Width: int(width)}
	_, resp, err = r.device.SendCommand(cmd)
	if err != nil {
		return Payload{}, err
	}
	return cmd.DecodeResponse(resp), nil
}

// Status reads the STATUS register via a NOP transaction.
func (r *Radio) Status() (Status, error) {
	status, _, err := r.device.SendCommand(Nop{})
	return status, err
}

// PowerUp wakes the chip. The oscillator needs a settle time before the
// first mode transition; the constructor waits it out here so callers
// never have to.
func (r *Radio) PowerUp() error {
	if err := r.device.UpdateConfig(func(c *Config) { c.SetPwrUp(true) }); err != nil {
		return err
	}
	time.Sleep(2 * time.Millisecond)
	return nil
}

// PowerDown puts the chip into power-down mode (about 900nA). The FIFOs
// and registers keep their contents.
func (r *Radio) PowerDown() error {
	r.device.CeDisable()
	r.mode = ModeStandby
	return r.device.UpdateConfig(func(c *Config) { c.SetPwrUp(false) })
}

// Register-level escape hatches for advanced configuration.

func (r *Radio) ReadRegister(reg Register) (Status, error) {
	return r.device.ReadRegister(reg)
}

func (r *Radio) WriteRegister(reg Register) (Status, error) {
	return r.device.WriteRegister(reg)
}

func (r *Radio) UpdateRegister(reg Register, f func()) error {
	return r.device.UpdateRegister(reg, f)
}
