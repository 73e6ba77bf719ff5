package nrf24l01

import "errors"

var (
	ErrPkg = errors.New("nrf24l01")
	// ErrNotConnected is returned by the constructors when the SETUP_AW
	// probe reads an implausible value, which usually means a wiring or
	// power fault rather than a misconfigured chip.
	ErrNotConnected = errors.New("device not connected")
	// ErrWouldBlock signals that a poll-style call found the awaited
	// condition not yet true. It is a request to retry later, not a
	// transport failure; test with errors.Is.
	ErrWouldBlock = errors.New("would block")
	// ErrPayloadTooLarge is returned when a packet exceeds the 32-byte
	// FIFO entry size.
	ErrPayloadTooLarge = errors.New("payload too large")
	// ErrInvalidPipe is returned for pipe numbers outside 0-5.
	ErrInvalidPipe = errors.New("pipe number out of range")
	// ErrInvalidChannel is returned for RF channels outside 0-125.
	ErrInvalidChannel = errors.New("channel number out of range")
)
