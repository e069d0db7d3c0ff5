package alicat

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Transport is the register access the driver needs from the underlying
// Modbus layer. The slave id is passed on every call so several devices
// can share one bus handle; serializing access to that handle is the
// transport's concern, not the driver's.
//
// Register payloads are byte slices holding big-endian 16-bit words, the
// same encoding the grid-x modbus client uses. ClientTransport adapts
// such a client to this interface.
type Transport interface {
	// ReadHoldingRegisters reads quantity registers starting at address
	// and returns 2*quantity bytes.
	ReadHoldingRegisters(slaveID byte, address, quantity uint16) (results []byte, err error)
	// WriteMultipleRegisters writes quantity registers starting at
	// address from the 2*quantity bytes in value.
	WriteMultipleRegisters(slaveID byte, address, quantity uint16, value []byte) (results []byte, err error)
}

// logger is the interface to the required logging functions
type logger interface {
	Printf(format string, v ...interface{})
}

// DefaultRegisterOffset is applied to every documented register address
// before it goes on the wire. Alicat devices follow the Modbus convention
// of addressing register N at protocol address N-1.
const DefaultRegisterOffset = -1

// Device drives a single Alicat instrument through a register transport.
//
// A Device holds no state read from the instrument: telemetry, status
// words and command results are fetched fresh on every call. It is not
// safe for concurrent use.
type Device struct {
	// Logger receives human-readable diagnostics for rejected operations
	// and device-reported command failures. Nil disables the output.
	Logger logger

	transport      Transport
	slaveID        byte
	deviceType     DeviceType
	registerOffset int
}

// NewDevice returns a driver for the instrument with the given slave id
// (1 to 247) and type, using DefaultRegisterOffset.
func NewDevice(transport Transport, slaveID byte, deviceType DeviceType) *Device {
	return &Device{
		transport:      transport,
		slaveID:        slaveID,
		deviceType:     deviceType,
		registerOffset: DefaultRegisterOffset,
	}
}

// Type returns the device type the driver was created with.
func (d *Device) Type() DeviceType {
	return d.deviceType
}

// SlaveID returns the slave id requests are addressed to.
func (d *Device) SlaveID() byte {
	return d.slaveID
}

// SetSlaveID changes the slave id for subsequent requests.
func (d *Device) SetSlaveID(slaveID byte) error {
	if slaveID < 1 || slaveID > 247 {
		return fmt.Errorf("alicat: slave id '%v' must be between '%v' and '%v'", slaveID, 1, 247)
	}
	d.slaveID = slaveID
	return nil
}

// SetRegisterOffset changes the correction added to every documented
// register address before transmission.
func (d *Device) SetRegisterOffset(offset int) {
	d.registerOffset = offset
}

// offset maps a documented register address to the wire address.
func (d *Device) offset(address uint16) uint16 {
	return uint16(int(address) + d.registerOffset)
}

// statisticRegister returns the address of device statistic index 1..20.
func statisticRegister(index int) (uint16, error) {
	if index < 1 || index > 20 {
		return 0, fmt.Errorf("alicat: statistic index '%v' must be between '%v' and '%v'", index, 1, 20)
	}
	return RegDeviceStatistic1 + 2*uint16(index-1), nil
}

// ReadRegister reads a single 16-bit holding register.
func (d *Device) ReadRegister(address uint16) (uint16, error) {
	results, err := d.transport.ReadHoldingRegisters(d.slaveID, d.offset(address), 1)
	if err != nil {
		d.logf("alicat: failed to read register %v: %v", address, err)
		return 0, err
	}
	if len(results) != 2 {
		return 0, fmt.Errorf("alicat: response data size '%v' does not match expected '%v'", len(results), 2)
	}
	return binary.BigEndian.Uint16(results), nil
}

// ReadFloat reads a 32-bit IEEE-754 float spanning the two registers at
// address. The device keeps bits 31:16 in the lower-numbered register and
// bits 15:0 in the higher one.
func (d *Device) ReadFloat(address uint16) (float32, error) {
	results, err := d.transport.ReadHoldingRegisters(d.slaveID, d.offset(address), 2)
	if err != nil {
		d.logf("alicat: failed to read register %v: %v", address, err)
		return 0, err
	}
	if len(results) != 4 {
		return 0, fmt.Errorf("alicat: response data size '%v' does not match expected '%v'", len(results), 4)
	}
	return decodeFloat(results), nil
}

// WriteRegister writes a single 16-bit holding register.
func (d *Device) WriteRegister(address uint16, value uint16) error {
	data := make([]byte, 2)
	binary.BigEndian.PutUint16(data, value)
	if _, err := d.transport.WriteMultipleRegisters(d.slaveID, d.offset(address), 1, data); err != nil {
		d.logf("alicat: failed to write register %v: %v", address, err)
		return err
	}
	return nil
}

// WriteFloat writes a 32-bit IEEE-754 float into the two registers at
// address, high half first, as one two-register write.
func (d *Device) WriteFloat(address uint16, value float32) error {
	if _, err := d.transport.WriteMultipleRegisters(d.slaveID, d.offset(address), 2, encodeFloat(value)); err != nil {
		d.logf("alicat: failed to write register %v: %v", address, err)
		return err
	}
	return nil
}

// readStatistic reads the float value of a device statistic by index.
func (d *Device) readStatistic(index int) (float32, error) {
	address, err := statisticRegister(index)
	if err != nil {
		d.logf("%v", err)
		return 0, err
	}
	return d.ReadFloat(address)
}

// encodeFloat splits a float into two big-endian register words, high
// half first. With big-endian bytes inside each word this is simply the
// big-endian encoding of the float's bits.
func encodeFloat(value float32) []byte {
	data := make([]byte, 4)
	binary.BigEndian.PutUint32(data, math.Float32bits(value))
	return data
}

// decodeFloat reassembles the two register words produced by encodeFloat.
func decodeFloat(data []byte) float32 {
	return math.Float32frombits(binary.BigEndian.Uint32(data))
}

// unsupported logs and returns an UnsupportedTypeError for op.
func (d *Device) unsupported(op string) error {
	err := &UnsupportedTypeError{Op: op, Type: d.deviceType}
	d.logf("%v", err)
	return err
}

func (d *Device) logf(format string, v ...interface{}) {
	if d.Logger != nil {
		d.Logger.Printf(format, v...)
	}
}
