package sink

import (
	"fmt"

	"github.com/goburrow/modbus"

	"accelstream/host/config"
)

// RegisterCount is the number of holding registers written per record:
// X, Y, then the low 16 bits of the sequence number.
const RegisterCount = 3

// RegisterWriter is the part of modbus.Client used by the Modbus sink.
type RegisterWriter interface {
	WriteMultipleRegisters(address, quantity uint16, value []byte) (results []byte, err error)
}

// Modbus mirrors the latest record into holding registers.
type Modbus struct {
	client  RegisterWriter
	handler *modbus.TCPClientHandler
	address uint16
	buf     [RegisterCount * 2]byte
}

// DialModbus connects to the Modbus TCP server named in cfg.
func DialModbus(cfg config.ModbusConfig) (*Modbus, error) {
	h := modbus.NewTCPClientHandler(cfg.Endpoint)
	h.Timeout = cfg.Timeout
	h.SlaveId = cfg.UnitID

	if err := h.Connect(); err != nil {
		return nil, fmt.Errorf("modbus connect %s: %w", cfg.Endpoint, err)
	}

	m := NewModbus(modbus.NewClient(h), cfg.Address)
	m.handler = h
	return m, nil
}

// NewModbus creates a sink writing through client starting at address.
func NewModbus(client RegisterWriter, address uint16) *Modbus {
	return &Modbus{client: client, address: address}
}

// Write implements Sink.
func (m *Modbus) Write(r Record) error {
	packRegisters(m.buf[:], uint16(r.Sample.X), uint16(r.Sample.Y), uint16(r.Seq))
	if _, err := m.client.WriteMultipleRegisters(m.address, RegisterCount, m.buf[:]); err != nil {
		return fmt.Errorf("modbus write at %d: %w", m.address, err)
	}
	return nil
}

// Close implements Sink.
func (m *Modbus) Close() error {
	if m.handler != nil {
		return m.handler.Close()
	}
	return nil
}

func packRegisters(out []byte, regs ...uint16) {
	for i, r := range regs {
		out[2*i] = byte(r >> 8)
		out[2*i+1] = byte(r)
	}
}
