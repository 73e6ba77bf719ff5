package nrf24l01

import (
	"bytes"
	"testing"
)

func TestCommandLengths(t *testing.T) {
	cases := []struct {
		name string
		cmd  Command
		want int
	}{
		{"ReadRegister(CONFIG)", ReadRegister{Reg: new(Config)}, 2},
		{"ReadRegister(RX_ADDR_P0)", ReadRegister{Reg: new(RxAddrP0)}, 6},
		{"WriteRegister(RF_CH)", WriteRegister{Reg: new(RfCh)}, 2},
		{"WriteRegister(TX_ADDR)", WriteRegister{Reg: new(TxAddrReg)}, 6},
		{"ReadRxPayloadWidth", ReadRxPayloadWidth{}, 2},
		{"ReadRxPayload(0)", ReadRxPayload{Width: 0}, 1},
		{"ReadRxPayload(32)", ReadRxPayload{Width: 32}, 33},
		{"WriteTxPayload(2)", WriteTxPayload{Data: []byte{1, 2}}, 3},
		{"WriteTxPayloadNoAck(1)", WriteTxPayloadNoAck{Data: []byte{1}}, 2},
		{"WriteAckPayload(3)", WriteAckPayload{Pipe: 1, Data: []byte{1, 2, 3}}, 4},
		{"FlushTx", FlushTx{}, 1},
		{"FlushRx", FlushRx{}, 1},
		{"ReuseTxPayload", ReuseTxPayload{}, 1},
		{"Activate", Activate{}, 2},
		{"Nop", Nop{}, 1},
	}

	for _, tc := range cases {
		if got := tc.cmd.Len(); got != tc.want {
			t.Errorf("%s: Len() = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestRegisterCommandOpcodes(t *testing.T) {
	// Direction in bits 5-6, address in the low five bits.
	var ch RfCh
	ch.SetCh(76)
	buf := make([]byte, 2)
	WriteRegister{Reg: &ch}.Encode(buf)
	if !bytes.Equal(buf, []byte{0x25, 76}) {
		t.Errorf("W_REGISTER(RF_CH) = %X, want [25 4C]", buf)
	}

	var fifo FifoStatus
	ReadRegister{Reg: &fifo}.Encode(buf)
	if !bytes.Equal(buf, []byte{0x17, 0xFF}) {
		t.Errorf("R_REGISTER(FIFO_STATUS) = %X, want [17 FF]", buf)
	}
}

func TestPayloadCommandOpcodes(t *testing.T) {
	buf := make([]byte, 4)
	WriteTxPayload{Data: []byte{0xAA, 0xBB, 0xCC}}.Encode(buf)
	if !bytes.Equal(buf, []byte{0xA0, 0xAA, 0xBB, 0xCC}) {
		t.Errorf("W_TX_PAYLOAD = %X", buf)
	}

	WriteTxPayloadNoAck{Data: []byte{0xAA, 0xBB, 0xCC}}.Encode(buf)
	if buf[0] != 0xB0 {
		t.Errorf("W_TX_PAYLOAD_NOACK opcode = 0x%02X, want 0xB0", buf[0])
	}

	WriteAckPayload{Pipe: 5, Data: []byte{1, 2, 3}}.Encode(buf)
	if buf[0] != 0xAD {
		t.Errorf("W_ACK_PAYLOAD|5 opcode = 0x%02X, want 0xAD", buf[0])
	}

	cmd := ReadRxPayload{Width: 3}
	cmd.Encode(buf)
	if !bytes.Equal(buf, []byte{0x61, 0xFF, 0xFF, 0xFF}) {
		t.Errorf("R_RX_PAYLOAD = %X", buf)
	}
}

func TestActivateMagicByte(t *testing.T) {
	buf := make([]byte, 2)
	Activate{}.Encode(buf)
	if !bytes.Equal(buf, []byte{0x50, 0x73}) {
		t.Errorf("ACTIVATE = %X, want [50 73]", buf)
	}
}

func TestReadRegisterDecodeResponse(t *testing.T) {
	var s RfSetup
	cmd := ReadRegister{Reg: &s}
	cmd.DecodeResponse([]byte{0x26})
	if s.DataRate() != DataRate250kbps || s.Power() != PALevelMax {
		t.Errorf("Decoded RF_SETUP mismatch: %v %v", s.DataRate(), s.Power())
	}
}

func TestReadRxPayloadDecodeResponse(t *testing.T) {
	cmd := ReadRxPayload{Width: 5}
	p := cmd.DecodeResponse([]byte{'h', 'e', 'l', 'l', 'o'})
	if p.Len() != 5 || string(p.Bytes()) != "hello" {
		t.Errorf("Expected 'hello', got %q", p.Bytes())
	}

	empty := ReadRxPayload{Width: 0}.DecodeResponse(nil)
	if empty.Len() != 0 {
		t.Errorf("Expected empty payload, got %d bytes", empty.Len())
	}
}

func TestPayloadOwnsItsBytes(t *testing.T) {
	src := []byte{1, 2, 3}
	p := newPayload(src)
	src[0] = 0xFF
	if p.Bytes()[0] != 1 {
		t.Error("Payload must not alias the source buffer")
	}
}
