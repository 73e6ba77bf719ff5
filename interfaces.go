package nrf24l01

// Level represents the logical level of a pin (Low or High).
type Level bool

const (
	Low  Level = false
	High Level = true
)

// OutputPin represents a generic GPIO output line. The driver needs two
// of them: chip enable (CE) and chip select (CSN).
type OutputPin interface {
	// Out drives the pin to the given level.
	Out(l Level) error
}

// SPI represents a generic full-duplex SPI connection. Chip-select
// framing is handled by the driver, not the bus.
type SPI interface {
	// Tx sends w and reads into r.
	// len(r) must be >= len(w).
	Tx(w, r []byte) error
}
