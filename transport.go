package alicat

import (
	"context"

	"github.com/grid-x/modbus"
)

// ClientTransport adapts a grid-x modbus client handler to the Transport
// interface. The handler's packager routes requests by slave id, so the
// adapter selects the slave before each request; that lets several
// Devices with different slave ids share one handler on the same bus.
type ClientTransport struct {
	client   modbus.Client
	packager modbus.Packager
}

// NewClientTransport wraps the given handler. The caller remains
// responsible for Connect and Close on the handler.
func NewClientTransport(handler modbus.ClientHandler) *ClientTransport {
	return &ClientTransport{
		client:   modbus.NewClient(handler),
		packager: handler,
	}
}

// ReadHoldingRegisters implements Transport.
func (t *ClientTransport) ReadHoldingRegisters(slaveID byte, address, quantity uint16) ([]byte, error) {
	t.packager.SetSlave(slaveID)
	return t.client.ReadHoldingRegisters(context.Background(), address, quantity)
}

// WriteMultipleRegisters implements Transport.
func (t *ClientTransport) WriteMultipleRegisters(slaveID byte, address, quantity uint16, value []byte) ([]byte, error) {
	t.packager.SetSlave(slaveID)
	return t.client.WriteMultipleRegisters(context.Background(), address, quantity, value)
}
