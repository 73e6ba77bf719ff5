package nrf24l01

// Payload is one received packet. The contents are copied out of the
// transfer buffer, so a Payload stays valid across later bus
// transactions and is owned by the caller.
type Payload struct {
	data  [MaxPayloadBytes]byte
	width int
}

func newPayload(buf []byte) Payload {
	var p Payload
	p.width = copy(p.data[:], buf)
	return p
}

// Bytes returns the payload contents.
func (p *Payload) Bytes() []byte { return p.data[:p.width] }

// Len returns the payload width in bytes, 0 to 32.
func (p *Payload) Len() int { return p.width }
