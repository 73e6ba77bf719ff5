package nrf24l01

// Command opcodes. Register commands carry the register address in the
// low five bits and the direction (read=000, write=001) in bits 5-6.
const (
	cmdRRegister       = 0x00
	cmdWRegister       = 0x20
	cmdActivate        = 0x50
	cmdRRxPlWid        = 0x60
	cmdRRxPayload      = 0x61
	cmdWTxPayload      = 0xA0
	cmdWAckPayload     = 0xA8 // | pipe
	cmdWTxPayloadNoAck = 0xB0
	cmdFlushTx         = 0xE1
	cmdFlushRx         = 0xE2
	cmdReuseTxPl       = 0xE3
	cmdNop             = 0xFF

	regAddrMask = 0x1F
)

// Command is one encodable chip operation. Len is the exact transaction
// size including the opcode byte, never more than 33; Encode must fill
// buf[0:Len]. The first byte the chip shifts back is always the STATUS
// register, whatever the command.
type Command interface {
	Len() int
	Encode(buf []byte)
}

// ReadRegister reads Reg. The response bytes after the status byte
// decode into Reg.
type ReadRegister struct {
	Reg Register
}

func (c ReadRegister) Len() int { return 1 + c.Reg.Size() }

func (c ReadRegister) Encode(buf []byte) {
	buf[0] = cmdRRegister | c.Reg.Addr()&regAddrMask
	for i := 1; i < c.Len(); i++ {
		buf[i] = cmdNop
	}
}

// DecodeResponse decodes the register bytes that followed the status
// byte into Reg.
func (c ReadRegister) DecodeResponse(resp []byte) {
	c.Reg.Decode(resp[:c.Reg.Size()])
}

// WriteRegister writes Reg.
type WriteRegister struct {
	Reg Register
}

func (c WriteRegister) Len() int { return 1 + c.Reg.Size() }

func (c WriteRegister) Encode(buf []byte) {
	buf[0] = cmdWRegister | c.Reg.Addr()&regAddrMask
	c.Reg.Encode(buf[1:c.Len()])
}

// ReadRxPayloadWidth reads the width of the payload at the head of the
// RX FIFO (R_RX_PL_WID).
type ReadRxPayloadWidth struct{}

func (ReadRxPayloadWidth) Len() int { return 2 }

func (ReadRxPayloadWidth) Encode(buf []byte) {
	buf[0] = cmdRRxPlWid
	buf[1] = cmdNop
}

// DecodeResponse returns the raw width byte.
func (ReadRxPayloadWidth) DecodeResponse(resp []byte) byte { return resp[0] }

// ReadRxPayload drains Width bytes from the RX FIFO. A zero width still
// transacts (opcode only) and decodes to an empty payload.
type ReadRxPayload struct {
	Width int
}

func (c ReadRxPayload) Len() int { return 1 + c.Width }

func (c ReadRxPayload) Encode(buf []byte) {
	buf[0] = cmdRRxPayload
	for i := 1; i < c.Len(); i++ {
		buf[i] = cmdNop
	}
}

// DecodeResponse copies the payload bytes out of the response buffer.
func (c ReadRxPayload) DecodeResponse(resp []byte) Payload {
	return newPayload(resp[:c.Width])
}

// WriteTxPayload queues Data in the TX FIFO.
type WriteTxPayload struct {
	Data []byte
}

func (c WriteTxPayload) Len() int { return 1 + len(c.Data) }

func (c WriteTxPayload) Encode(buf []byte) {
	buf[0] = cmdWTxPayload
	copy(buf[1:], c.Data)
}

// WriteTxPayloadNoAck queues Data flagged so the receiver does not
// acknowledge it. Requires EN_DYN_ACK in FEATURE.
type WriteTxPayloadNoAck struct {
	Data []byte
}

func (c WriteTxPayloadNoAck) Len() int { return 1 + len(c.Data) }

func (c WriteTxPayloadNoAck) Encode(buf []byte) {
	buf[0] = cmdWTxPayloadNoAck
	copy(buf[1:], c.Data)
}

// WriteAckPayload queues Data to ride on the next ACK transmitted from
// Pipe. Requires EN_ACK_PAY in FEATURE.
type WriteAckPayload struct {
	Pipe byte
	Data []byte
}

func (c WriteAckPayload) Len() int { return 1 + len(c.Data) }

func (c WriteAckPayload) Encode(buf []byte) {
	buf[0] = cmdWAckPayload | c.Pipe&0x07
	copy(buf[1:], c.Data)
}

// FlushTx discards the whole TX FIFO.
type FlushTx struct{}

func (FlushTx) Len() int { return 1 }
func (FlushTx) Encode(buf []byte) { buf[0] = cmdFlushTx }

// FlushRx discards the whole RX FIFO.
type FlushRx struct{}

func (FlushRx) Len() int { return 1 }
func (FlushRx) Encode(buf []byte) { buf[0] = cmdFlushRx }

// ReuseTxPayload rearms the last transmitted payload for retransmission.
type ReuseTxPayload struct{}

func (ReuseTxPayload) Len() int { return 1 }
func (ReuseTxPayload) Encode(buf []byte) { buf[0] = cmdReuseTxPl }

// Activate toggles access to R_RX_PL_WID, W_ACK_PAYLOAD and
// W_TX_PAYLOAD_NOACK on non-plus silicon. Issuing it again deactivates.
type Activate struct{}

func (Activate) Len() int { return 2 }

func (Activate) Encode(buf []byte) {
	buf[0] = cmdActivate
	buf[1] = 0x73
}

// Nop performs no operation; useful to fetch STATUS alone.
type Nop struct{}

func (Nop) Len() int { return 1 }
func (Nop) Encode(buf []byte) { buf[0] = cmdNop }
