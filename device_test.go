package alicat

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

const testSlaveID = 7

type call struct {
	slaveID  byte
	address  uint16
	quantity uint16
	value    []byte
}

// mockTransport keeps registers in memory and records every call so
// tests can assert wire addresses and call counts.
type mockTransport struct {
	regs   map[uint16]uint16
	reads  []call
	writes []call

	readErr  error
	writeErr error

	// when set, every write is answered by placing reply into the
	// register following the written block, mimicking the device
	// completing a special command
	reply    uint16
	hasReply bool
}

func newMockTransport() *mockTransport {
	return &mockTransport{regs: make(map[uint16]uint16)}
}

func (m *mockTransport) ReadHoldingRegisters(slaveID byte, address, quantity uint16) ([]byte, error) {
	m.reads = append(m.reads, call{slaveID: slaveID, address: address, quantity: quantity})
	if m.readErr != nil {
		return nil, m.readErr
	}
	data := make([]byte, 2*quantity)
	for i := uint16(0); i < quantity; i++ {
		binary.BigEndian.PutUint16(data[2*i:], m.regs[address+i])
	}
	return data, nil
}

func (m *mockTransport) WriteMultipleRegisters(slaveID byte, address, quantity uint16, value []byte) ([]byte, error) {
	m.writes = append(m.writes, call{slaveID: slaveID, address: address, quantity: quantity, value: append([]byte(nil), value...)})
	if m.writeErr != nil {
		return nil, m.writeErr
	}
	for i := uint16(0); i < quantity; i++ {
		m.regs[address+i] = binary.BigEndian.Uint16(value[2*i:])
	}
	if m.hasReply {
		m.regs[address+quantity-1] = m.reply
	}
	return nil, nil
}

func (m *mockTransport) respond(status uint16) {
	m.reply = status
	m.hasReply = true
}

func (m *mockTransport) calls() int {
	return len(m.reads) + len(m.writes)
}

// wire maps a documented register address to its on-wire address under
// the default offset.
func wire(address uint16) uint16 {
	return address - 1
}

func (m *mockTransport) setFloat(wireAddress uint16, value float32) {
	bits := math.Float32bits(value)
	m.regs[wireAddress] = uint16(bits >> 16)
	m.regs[wireAddress+1] = uint16(bits)
}

func newTestDevice(t DeviceType) (*Device, *mockTransport) {
	transport := newMockTransport()
	return NewDevice(transport, testSlaveID, t), transport
}

func TestReadRegister(t *testing.T) {
	d, transport := newTestDevice(MassFlowController)
	transport.regs[wire(RegGasNumber)] = 12

	value, err := d.ReadRegister(RegGasNumber)
	require.NoError(t, err)
	assert.Equal(t, uint16(12), value)

	require.Len(t, transport.reads, 1)
	assert.Equal(t, byte(testSlaveID), transport.reads[0].slaveID)
	assert.Equal(t, wire(RegGasNumber), transport.reads[0].address)
	assert.Equal(t, uint16(1), transport.reads[0].quantity)
}

func TestReadRegisterTransportFailure(t *testing.T) {
	d, transport := newTestDevice(MassFlowController)
	transport.readErr = errors.New("modbus: timeout")

	_, err := d.ReadRegister(RegGasNumber)
	assert.ErrorIs(t, err, transport.readErr)
}

func TestWriteRegister(t *testing.T) {
	d, transport := newTestDevice(MassFlowController)

	require.NoError(t, d.WriteRegister(RegGasNumber, 47))

	require.Len(t, transport.writes, 1)
	assert.Equal(t, wire(RegGasNumber), transport.writes[0].address)
	assert.Equal(t, uint16(1), transport.writes[0].quantity)
	assert.Equal(t, uint16(47), transport.regs[wire(RegGasNumber)])
}

func TestReadWriteFloat(t *testing.T) {
	d, transport := newTestDevice(MassFlowController)

	require.NoError(t, d.WriteFloat(RegSetpoint, 12.5))

	require.Len(t, transport.writes, 1)
	assert.Equal(t, wire(RegSetpoint), transport.writes[0].address)
	assert.Equal(t, uint16(2), transport.writes[0].quantity)

	// 12.5 is 0x41480000, high half in the lower register
	assert.Equal(t, uint16(0x4148), transport.regs[wire(RegSetpoint)])
	assert.Equal(t, uint16(0x0000), transport.regs[wire(RegSetpoint)+1])

	value, err := d.ReadFloat(RegSetpoint)
	require.NoError(t, err)
	assert.Equal(t, float32(12.5), value)
}

func TestFloatRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		value := rapid.Float32().Draw(t, "value")

		decoded := decodeFloat(encodeFloat(value))
		if math.Float32bits(decoded) != math.Float32bits(value) {
			t.Fatalf("round trip changed %x to %x", math.Float32bits(value), math.Float32bits(decoded))
		}
	})
}

func TestRegisterOffsetApplied(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		address := rapid.Uint16Range(100, 2000).Draw(t, "address")
		offset := rapid.IntRange(-99, 99).Draw(t, "offset")

		d, transport := newTestDevice(MassFlowController)
		d.SetRegisterOffset(offset)

		if _, err := d.ReadRegister(address); err != nil {
			t.Fatalf("read failed: %+v", err)
		}
		want := uint16(int(address) + offset)
		if got := transport.reads[0].address; got != want {
			t.Fatalf("read used address %v, want %v", got, want)
		}
	})
}

func TestStatisticRegister(t *testing.T) {
	for _, tc := range []struct {
		index   int
		address uint16
		wantErr bool
	}{
		{index: 1, address: RegDeviceStatistic1},
		{index: 2, address: RegDeviceStatistic1 + 2},
		{index: 20, address: RegDeviceStatistic1 + 38},
		{index: 0, wantErr: true},
		{index: 21, wantErr: true},
		{index: -3, wantErr: true},
	} {
		address, err := statisticRegister(tc.index)
		if tc.wantErr {
			assert.Error(t, err, "index %d", tc.index)
			continue
		}
		require.NoError(t, err, "index %d", tc.index)
		assert.Equal(t, tc.address, address, "index %d", tc.index)
	}
}

func TestSetSlaveID(t *testing.T) {
	d, transport := newTestDevice(MassFlowController)

	require.NoError(t, d.SetSlaveID(42))
	assert.Equal(t, byte(42), d.SlaveID())

	_, err := d.ReadRegister(RegDeviceStatus)
	require.NoError(t, err)
	assert.Equal(t, byte(42), transport.reads[0].slaveID)

	assert.Error(t, d.SetSlaveID(0))
	assert.Error(t, d.SetSlaveID(248))
	assert.Equal(t, byte(42), d.SlaveID())
}

func TestDeviceTypePredicates(t *testing.T) {
	for _, tc := range []struct {
		deviceType         DeviceType
		massFlow           bool
		controller         bool
		pressureController bool
		liquid             bool
	}{
		{MassFlowController, true, true, false, false},
		{LiquidController, false, false, false, true},
		{MassFlowMeter, true, false, false, false},
		{PSIDController, false, true, true, false},
		{GaugePressureController, false, true, true, false},
	} {
		assert.Equal(t, tc.massFlow, tc.deviceType.IsMassFlow(), "%v IsMassFlow", tc.deviceType)
		assert.Equal(t, tc.controller, tc.deviceType.IsController(), "%v IsController", tc.deviceType)
		assert.Equal(t, tc.pressureController, tc.deviceType.IsPressureController(), "%v IsPressureController", tc.deviceType)
		assert.Equal(t, tc.liquid, tc.deviceType.IsLiquid(), "%v IsLiquid", tc.deviceType)
	}
}
