package nrf24l01

import (
	"bytes"
	"fmt"
)

// Device hides the concrete pin and bus types from the operating-mode
// and configuration layers, so they can run against test doubles.
type Device interface {
	// CeEnable drives the chip-enable line high. Fire and forget; the
	// caller is responsible for the chip's settling times.
	CeEnable()
	// CeDisable drives the chip-enable line low.
	CeDisable()
	// SendCommand executes one chip-select framed transaction. The
	// returned response aliases the internal transfer buffer and is only
	// valid until the next command; copy it if it must survive.
	SendCommand(c Command) (Status, []byte, error)
	// WriteRegister issues a W_REGISTER command.
	WriteRegister(r Register) (Status, error)
	// ReadRegister issues an R_REGISTER command and decodes the response
	// into r.
	ReadRegister(r Register) (Status, error)
	// UpdateRegister reads r, applies f (which mutates r), and writes it
	// back only if the encoding changed. Must not be used for CONFIG;
	// that register is cached, use UpdateConfig.
	UpdateRegister(r Register, f func()) error
	// UpdateConfig applies f to the cached CONFIG value and writes it to
	// the chip only if f changed it. The cache is the sole writer of
	// CONFIG; any out-of-band write to it desynchronizes the cache.
	UpdateConfig(f func(*Config)) error
}

// spiDevice is the concrete transport over two control lines and an SPI
// handle. Not safe for concurrent use; the caller owns it exclusively.
type spiDevice struct {
	ce      OutputPin
	csn     OutputPin
	spi     SPI
	config  Config
	scratch [1 + MaxPayloadBytes]byte
}

// newSpiDevice drives the lines to their idle levels, seeds the CONFIG
// cache and probes the chip. A transport that returns garbage (e.g.
// all-ones from a disconnected bus) fails the probe with
// ErrNotConnected.
func newSpiDevice(ce, csn OutputPin, spi SPI) (*spiDevice, error) {
	d := &spiDevice{ce: ce, csn: csn, spi: spi}
	if err := d.ce.Out(Low); err != nil {
		return nil, fmt.Errorf("%w: CE init: %w", ErrPkg, err)
	}
	if err := d.csn.Out(High); err != nil {
		return nil, fmt.Errorf("%w: CSN init: %w", ErrPkg, err)
	}

	// Power-on reset value with the three interrupt masks explicitly
	// cleared. From here on the cache is authoritative.
	d.config = configReset
	d.config.SetMaskRxDr(false)
	d.config.SetMaskTxDs(false)
	d.config.SetMaskMaxRt(false)

	ok, err := d.IsConnected()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %w", ErrPkg, ErrNotConnected)
	}
	return d, nil
}

func (d *spiDevice) CeEnable() {
	if err := d.ce.Out(High); err != nil {
		globalLogger.Error("CE set high failed")
	}
}

func (d *spiDevice) CeDisable() {
	if err := d.ce.Out(Low); err != nil {
		globalLogger.Error("CE set low failed")
	}
}

func (d *spiDevice) SendCommand(c Command) (Status, []byte, error) {
	n := c.Len()
	buf := d.scratch[:n]
	c.Encode(buf)

	if err := d.csn.Out(Low); err != nil {
		return 0, nil, fmt.Errorf("%w: CSN assert: %w", ErrPkg, err)
	}
	txErr := d.spi.Tx(buf, buf)
	// CSN must be released even when the exchange failed; only then is
	// the error propagated.
	csnErr := d.csn.Out(High)
	if txErr != nil {
		return 0, nil, fmt.Errorf("%w: transfer: %w", ErrPkg, txErr)
	}
	if csnErr != nil {
		return 0, nil, fmt.Errorf("%w: CSN release: %w", ErrPkg, csnErr)
	}

	return Status(buf[0]), buf[1:n], nil
}

func (d *spiDevice) WriteRegister(r Register) (Status, error) {
	status, _, err := d.SendCommand(WriteRegister{Reg: r})
	return status, err
}

func (d *spiDevice) ReadRegister(r Register) (Status, error) {
	cmd := ReadRegister{Reg: r}
	status, resp, err := d.SendCommand(cmd)
	if err != nil {
		return 0, err
	}
	cmd.DecodeResponse(resp)
	return status, nil
}

func (d *spiDevice) UpdateRegister(r Register, f func()) error {
	if r.Addr() == regConfig {
		panic("nrf24l01: UpdateRegister on CONFIG, use UpdateConfig")
	}
	if _, err := d.ReadRegister(r); err != nil {
		return err
	}
	var old, cur [maxRegisterSize]byte
	n := r.Size()
	r.Encode(old[:n])
	f()
	r.Encode(cur[:n])
	if bytes.Equal(old[:n], cur[:n]) {
		return nil
	}
	_, err := d.WriteRegister(r)
	return err
}

func (d *spiDevice) UpdateConfig(f func(*Config)) error {
	old := d.config
	f(&d.config)
	if d.config == old {
		return nil
	}
	_, err := d.WriteRegister(&d.config)
	return err
}

// IsConnected reads SETUP_AW and checks the address-width field for a
// plausible value.
func (d *spiDevice) IsConnected() (bool, error) {
	var aw SetupAw
	if _, err := d.ReadRegister(&aw); err != nil {
		return false, err
	}
	return aw.Aw() <= 3, nil
}
