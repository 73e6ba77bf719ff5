//go:build tinygo

package nrf24l01

import (
	"machine"
)

// machinePin adapts a machine.Pin to the OutputPin capability.
type machinePin struct {
	pin machine.Pin
}

func (p machinePin) Out(l Level) error {
	p.pin.Set(bool(l))
	return nil
}

// OpenTinyGo builds a Radio over a machine SPI bus and pins. The SPI
// bus must be configured by the caller; CE and CSN are configured here.
func OpenTinyGo(c RadioConfig, spi *machine.SPI, csnPin, cePin machine.Pin) (*Radio, error) {
	cePin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	csnPin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	csnPin.High()

	return New(machinePin{pin: cePin}, machinePin{pin: csnPin}, spi, c)
}
