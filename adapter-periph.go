//go:build !tinygo

package nrf24l01

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

// periphPin adapts a gpio.PinIO to the OutputPin capability.
type periphPin struct {
	gpio.PinIO
}

func (p *periphPin) Out(l Level) error {
	if l == High {
		return p.PinIO.Out(gpio.High)
	}
	return p.PinIO.Out(gpio.Low)
}

// HostConfig holds the configuration for the Linux/periph.io
// constructor.
type HostConfig struct {
	RadioConfig
	// CEPin is the GPIO pin number (BCM numbering) for the chip enable
	// (CE) line. Defaults to 25 if not provided.
	CEPin int
	// CSNPin is the GPIO pin number for the chip select (CSN) line. The
	// driver frames every transaction on it itself, so wire CSN to this
	// pin rather than relying on the controller's own CS output.
	// Defaults to 8 if not provided.
	CSNPin int
	// SpiBusPath is the path to the SPI bus (e.g., "/dev/spidev0.0").
	// Defaults to "/dev/spidev0.0" if not provided.
	SpiBusPath string
	// SpiClockHz is the SPI clock frequency in Hz.
	// Defaults to 1000000 (1MHz) if not provided.
	SpiClockHz int
}

// Open initializes the periph.io host, opens the SPI bus and GPIO
// lines, and builds a Radio over them. The returned Radio owns the bus
// and releases it on Close.
func Open(c HostConfig) (*Radio, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize periph.io host: %w", err)
	}

	if c.SpiBusPath == "" {
		c.SpiBusPath = "/dev/spidev0.0"
	}
	port, err := spireg.Open(c.SpiBusPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SPI port: %w", err)
	}

	if c.SpiClockHz == 0 {
		c.SpiClockHz = 1000000
	}
	conn, err := port.Connect(physic.Frequency(c.SpiClockHz)*physic.Hertz, spi.Mode0, 8)
	if err != nil {
		port.Close()
		return nil, fmt.Errorf("failed to create SPI connection: %w", err)
	}

	if c.CEPin == 0 {
		c.CEPin = 25
	}
	if c.CSNPin == 0 {
		c.CSNPin = 8
	}
	ceName := fmt.Sprintf("GPIO%d", c.CEPin)
	ce := gpioreg.ByName(ceName)
	if ce == nil {
		port.Close()
		return nil, fmt.Errorf("failed to open CE pin %s", ceName)
	}
	csnName := fmt.Sprintf("GPIO%d", c.CSNPin)
	csn := gpioreg.ByName(csnName)
	if csn == nil {
		port.Close()
		return nil, fmt.Errorf("failed to open CSN pin %s", csnName)
	}

	radio, err := New(&periphPin{PinIO: ce}, &periphPin{PinIO: csn}, conn, c.RadioConfig)
	if err != nil {
		port.Close()
		return nil, err
	}
	radio.closer = port
	return radio, nil
}
