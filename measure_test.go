package alicat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statisticWire(index int) uint16 {
	return wire(RegDeviceStatistic1 + 2*uint16(index-1))
}

func TestPressure(t *testing.T) {
	// every device type reports pressure as statistic 1
	for _, deviceType := range []DeviceType{
		MassFlowController, LiquidController, MassFlowMeter, PSIDController, GaugePressureController,
	} {
		d, transport := newTestDevice(deviceType)
		transport.setFloat(statisticWire(1), 14.696)

		pressure, err := d.Pressure()
		require.NoError(t, err, "%v", deviceType)
		assert.Equal(t, float32(14.696), pressure, "%v", deviceType)
		assert.Equal(t, statisticWire(1), transport.reads[0].address, "%v", deviceType)
	}
}

func TestFlowTemperature(t *testing.T) {
	d, transport := newTestDevice(MassFlowMeter)
	transport.setFloat(statisticWire(2), 21.5)

	temperature, err := d.FlowTemperature()
	require.NoError(t, err)
	assert.Equal(t, float32(21.5), temperature)

	d, transport = newTestDevice(PSIDController)
	_, err = d.FlowTemperature()
	assert.Error(t, err)
	assert.Zero(t, transport.calls())
}

func TestVolumetricFlow(t *testing.T) {
	d, transport := newTestDevice(LiquidController)
	transport.setFloat(statisticWire(3), 0.25)

	flow, err := d.VolumetricFlow()
	require.NoError(t, err)
	assert.Equal(t, float32(0.25), flow)
	assert.Equal(t, statisticWire(3), transport.reads[0].address)
}

func TestMassFlow(t *testing.T) {
	d, transport := newTestDevice(MassFlowController)
	transport.setFloat(statisticWire(4), 1.5)

	flow, err := d.MassFlow()
	require.NoError(t, err)
	assert.Equal(t, float32(1.5), flow)
	assert.Equal(t, statisticWire(4), transport.reads[0].address)

	d, transport = newTestDevice(GaugePressureController)
	_, err = d.MassFlow()
	assert.Error(t, err)
	assert.Zero(t, transport.calls())
}

func TestMassTotalStatisticDependsOnController(t *testing.T) {
	// a meter totalizes in statistic 5, a controller in statistic 6
	d, transport := newTestDevice(MassFlowMeter)
	transport.setFloat(statisticWire(5), 100)

	total, err := d.MassTotal()
	require.NoError(t, err)
	assert.Equal(t, float32(100), total)
	assert.Equal(t, statisticWire(5), transport.reads[0].address)

	d, transport = newTestDevice(MassFlowController)
	transport.setFloat(statisticWire(6), 200)

	total, err = d.MassTotal()
	require.NoError(t, err)
	assert.Equal(t, float32(200), total)
	assert.Equal(t, statisticWire(6), transport.reads[0].address)
}

func TestSetSetpoint(t *testing.T) {
	d, transport := newTestDevice(MassFlowController)

	require.NoError(t, d.SetSetpoint(2.75))
	require.Len(t, transport.writes, 1)
	assert.Equal(t, wire(RegSetpoint), transport.writes[0].address)
	assert.Equal(t, uint16(2), transport.writes[0].quantity)

	d, transport = newTestDevice(MassFlowMeter)
	assert.Error(t, d.SetSetpoint(2.75))
	assert.Zero(t, transport.calls())
}

func TestSetpoint(t *testing.T) {
	// mass flow controllers report the setpoint as statistic 5
	d, transport := newTestDevice(MassFlowController)
	transport.setFloat(statisticWire(5), 2.75)

	setpoint, err := d.Setpoint()
	require.NoError(t, err)
	assert.Equal(t, float32(2.75), setpoint)

	// pressure controllers as statistic 2
	d, transport = newTestDevice(PSIDController)
	transport.setFloat(statisticWire(2), 30)

	setpoint, err = d.Setpoint()
	require.NoError(t, err)
	assert.Equal(t, float32(30), setpoint)

	// non-controllers have no setpoint at all
	d, transport = newTestDevice(LiquidController)
	_, err = d.Setpoint()
	assert.Error(t, err)
	assert.Zero(t, transport.calls())
}

func TestUnitSelection(t *testing.T) {
	d, transport := newTestDevice(MassFlowController)

	require.NoError(t, d.SetMassFlowUnits(MassFlowUnitGPerSecond))
	assert.Equal(t, uint16(MassFlowUnitGPerSecond), transport.regs[wire(RegMassFlowUnits)])

	require.NoError(t, d.SetVolumetricFlowUnits(VolumetricFlowUnitLPerMinute))
	assert.Equal(t, uint16(VolumetricFlowUnitLPerMinute), transport.regs[wire(RegVolumetricFlowUnits)])

	d, transport = newTestDevice(PSIDController)
	assert.Error(t, d.SetMassFlowUnits(MassFlowUnitGPerSecond))
	assert.Error(t, d.SetVolumetricFlowUnits(VolumetricFlowUnitLPerMinute))
	assert.Error(t, d.SetTotalizerUnits(TotalizerUnitG))
	assert.Zero(t, transport.calls())
}

func TestSetAnalogScaleFactor(t *testing.T) {
	d, transport := newTestDevice(GaugePressureController)

	require.NoError(t, d.SetAnalogScaleFactor(1.0))
	require.Len(t, transport.writes, 1)
	assert.Equal(t, wire(RegAnalogScaleFactor), transport.writes[0].address)
	assert.Equal(t, uint16(2), transport.writes[0].quantity)
}
