/*
Package alicat provides a register-map driver for Alicat mass-flow and
pressure instruments speaking Modbus RTU.

The package translates the vendor's documented holding-register map into
typed operations: 32-bit IEEE-754 floats split across two big-endian
registers, fixed-point gas percentages, a 14-bit status word, and the
two-register special-command protocol. Every operation is gated by the
device type, so a command that a mass-flow meter cannot perform is
rejected before any register access happens.

The Modbus protocol itself is out of scope: the driver talks to the bus
through the Transport interface, typically backed by a
github.com/grid-x/modbus client.
*/
package alicat

import (
	"fmt"
)

// DeviceType identifies the instrument category. It decides which
// registers exist and which special commands the device accepts.
type DeviceType int

// Vendor-defined instrument categories.
const (
	MassFlowController DeviceType = iota
	LiquidController
	MassFlowMeter
	PSIDController
	GaugePressureController
)

// IsMassFlow reports whether the device measures mass flow.
func (t DeviceType) IsMassFlow() bool {
	return t == MassFlowMeter || t == MassFlowController
}

// IsController reports whether the device has a control loop.
func (t DeviceType) IsController() bool {
	return t == PSIDController || t == GaugePressureController || t == MassFlowController
}

// IsPressureController reports whether the device controls pressure.
func (t DeviceType) IsPressureController() bool {
	return t == PSIDController || t == GaugePressureController
}

// IsLiquid reports whether the device is a liquid controller.
func (t DeviceType) IsLiquid() bool {
	return t == LiquidController
}

func (t DeviceType) String() string {
	switch t {
	case MassFlowController:
		return "mass flow controller"
	case LiquidController:
		return "liquid controller"
	case MassFlowMeter:
		return "mass flow meter"
	case PSIDController:
		return "PSID controller"
	case GaugePressureController:
		return "gauge pressure controller"
	}
	return fmt.Sprintf("unknown device type %d", int(t))
}

// Holding register addresses from the vendor's Modbus RTU and MPL manuals.
// All addresses pass through the device's register offset before they are
// put on the wire.
const (
	// RegCommandID accepts a special command id, all devices
	RegCommandID uint16 = 1000
	// RegCommandArgument carries the command argument and, after the
	// command completes, the device's status code, all devices
	RegCommandArgument uint16 = 1001
	// RegSetpoint is the active setpoint, controllers, write
	RegSetpoint uint16 = 1010
	// RegSetpoint2 is the secondary setpoint, controllers
	RegSetpoint2 uint16 = 1012
	// RegBatchSize is the totalizer batch size
	RegBatchSize uint16 = 1015
	// RegDirectValveDrive drives the valve directly, controllers
	RegDirectValveDrive uint16 = 1018
	// RegMixtureGas1Index is the first gas-mixture constituent index,
	// mass flow devices. Slot n lives at RegMixtureGas1Index + 2*(n-1).
	RegMixtureGas1Index uint16 = 1050
	// RegMixtureGas1Percent is the first constituent percentage,
	// mass flow devices. Slot n lives at RegMixtureGas1Percent + 2*(n-1).
	RegMixtureGas1Percent uint16 = 1051
	// RegFilterAlphaGain is the single exponential filter alpha gain
	RegFilterAlphaGain uint16 = 1110
	// RegSTPDensity is the standard temperature and pressure density
	RegSTPDensity uint16 = 1112
	// RegProportionalGain is the PID loop P gain
	RegProportionalGain uint16 = 1120
	// RegIntegralGain is the PID loop I gain
	RegIntegralGain uint16 = 1122
	// RegDerivativeGain is the PID loop D gain
	RegDerivativeGain uint16 = 1124
	// RegValveOffset is the valve offset
	RegValveOffset uint16 = 1126
	// RegPowerUpSetpoint is the setpoint applied at power up, controllers
	RegPowerUpSetpoint uint16 = 1128
	// RegMassFlowUnits selects the mass flow engineering unit
	RegMassFlowUnits uint16 = 1134
	// RegVolumetricFlowUnits selects the volumetric flow engineering unit
	RegVolumetricFlowUnits uint16 = 1135
	// RegTotalizerSelect selects the totalizer source
	RegTotalizerSelect uint16 = 1137
	// RegTotalizerUnits selects the totalizer engineering unit
	RegTotalizerUnits uint16 = 1138
	// RegSTPTemperature is the standard temperature reference
	RegSTPTemperature uint16 = 1139
	// RegAnalogScaleFactor scales the analog output
	RegAnalogScaleFactor uint16 = 1142
	// RegSTPVolumetricFlowUnits selects the STP volumetric flow unit
	RegSTPVolumetricFlowUnits uint16 = 1144
	// RegGasNumber selects the active gas table entry, mass flow devices
	RegGasNumber uint16 = 1200
	// RegDeviceStatus is the status bit word, all devices, read only
	RegDeviceStatus uint16 = 1201
	// RegDeviceStatistic1 is the first telemetry statistic, all devices,
	// read only. Statistic n lives at RegDeviceStatistic1 + 2*(n-1).
	RegDeviceStatistic1 uint16 = 1203
	// RegMassFlow is the mass flow reading, mass flow devices, read only
	RegMassFlow uint16 = 1209
)

// Special command ids written to RegCommandID.
const (
	// CmdChangeGasNumber for mass flow devices
	CmdChangeGasNumber uint16 = 1
	// CmdCreateCustomGasMixture for mass flow devices
	CmdCreateCustomGasMixture uint16 = 2
	// CmdDeleteCustomGasMixture for mass flow devices
	CmdDeleteCustomGasMixture uint16 = 3
	// CmdTare for all devices
	CmdTare uint16 = 4
	// CmdResetTotalizer for mass flow and liquid devices
	CmdResetTotalizer uint16 = 5
	// CmdValveSetting for controllers
	CmdValveSetting uint16 = 6
	// CmdDisplayLock for all devices
	CmdDisplayLock uint16 = 7
	// CmdChangePInPIDLoop for controllers
	CmdChangePInPIDLoop uint16 = 8
	// CmdChangeDInPIDLoop for controllers
	CmdChangeDInPIDLoop uint16 = 9
	// CmdChangeIInPIDLoop for controllers
	CmdChangeIInPIDLoop uint16 = 10
	// CmdChangeControlLoopVariable for all devices
	CmdChangeControlLoopVariable uint16 = 11
	// CmdSaveCurrentSetpointToMemory for controllers
	CmdSaveCurrentSetpointToMemory uint16 = 12
	// CmdChangeLoopControlAlgorithm for controllers
	CmdChangeLoopControlAlgorithm uint16 = 13
	// CmdReadPIDValue for controllers
	CmdReadPIDValue uint16 = 14
	// CmdValveControlOverride for controllers
	CmdValveControlOverride uint16 = 16
	// CmdChangeSetpointSource for controllers
	CmdChangeSetpointSource uint16 = 18
	// CmdChangeModbusID for all devices
	CmdChangeModbusID uint16 = 32767
	// CmdChangeSerialBaudRate for all devices
	CmdChangeSerialBaudRate uint16 = 32768
)

// Status codes the device leaves in RegCommandArgument after a special
// command completes.
const (
	// StatusCodeSuccess for all devices
	StatusCodeSuccess uint16 = 0
	// StatusCodeInvalidCommandID for all devices
	StatusCodeInvalidCommandID uint16 = 32769
	// StatusCodeInvalidSetting for all devices
	StatusCodeInvalidSetting uint16 = 32770
	// StatusCodeUnsupportedFeature for all devices
	StatusCodeUnsupportedFeature uint16 = 32771
	// StatusCodeInvalidGasMixIndex for mass flow devices
	StatusCodeInvalidGasMixIndex uint16 = 32772
	// StatusCodeInvalidGasMixConstituent for mass flow devices
	StatusCodeInvalidGasMixConstituent uint16 = 32773
	// StatusCodeInvalidGasMixPercentage for mass flow devices
	StatusCodeInvalidGasMixPercentage uint16 = 32774
)

// Bits of the RegDeviceStatus word.
const (
	// StatusBitTemperatureOverflow (TOV), mass flow and liquid
	StatusBitTemperatureOverflow uint16 = 0x0001
	// StatusBitTemperatureUnderflow (TOV), mass flow and liquid
	StatusBitTemperatureUnderflow uint16 = 0x0002
	// StatusBitVolumetricOverflow (VOV), mass flow and liquid
	StatusBitVolumetricOverflow uint16 = 0x0004
	// StatusBitVolumetricUnderflow (VOV), mass flow
	StatusBitVolumetricUnderflow uint16 = 0x0008
	// StatusBitMassOverflow (MOV), mass flow
	StatusBitMassOverflow uint16 = 0x0010
	// StatusBitMassUnderflow (MOV), mass flow
	StatusBitMassUnderflow uint16 = 0x0020
	// StatusBitPressureOverflow (POV), all devices
	StatusBitPressureOverflow uint16 = 0x0040
	// StatusBitTotalizerOverflow (OVR), mass flow and liquid
	StatusBitTotalizerOverflow uint16 = 0x0080
	// StatusBitPIDLoopInHold (HLD), controllers
	StatusBitPIDLoopInHold uint16 = 0x0100
	// StatusBitADCError (ADC), all devices
	StatusBitADCError uint16 = 0x0200
	// StatusBitPIDExhaust (EXH), dual valve controllers
	StatusBitPIDExhaust uint16 = 0x0400
	// StatusBitOverPressureLimit (OPL), custom OPL devices
	StatusBitOverPressureLimit uint16 = 0x0800
	// StatusBitFlowOverflowDuringTotalize (TMF), mass flow and liquid
	StatusBitFlowOverflowDuringTotalize uint16 = 0x1000
	// StatusBitMeasurementAborted, all devices
	StatusBitMeasurementAborted uint16 = 0x2000
)

// Arguments for Tare.
const (
	TareTypePressure         uint16 = 0
	TareTypeAbsolutePressure uint16 = 1
	// TareTypeVolume only for mass flow and liquid devices
	TareTypeVolume uint16 = 2
)

// Arguments for ValveSetting.
const (
	ValveSettingCancel      uint16 = 0
	ValveSettingHoldClose   uint16 = 1
	ValveSettingHoldCurrent uint16 = 2
	// ValveSettingExhaust only for dual valve controller devices
	ValveSettingExhaust uint16 = 3
)

// Arguments for DisplayLock.
const (
	DisplayLockUnlock uint16 = 0
	DisplayLockLock   uint16 = 1
)

// Arguments for ChangeControlLoopVariable.
const (
	ControlLoopMassFlow             uint16 = 0
	ControlLoopVolumetricFlow       uint16 = 1
	ControlLoopDifferentialPressure uint16 = 2
	ControlLoopAbsolutePressure     uint16 = 3
	ControlLoopGaugePressure        uint16 = 4
)

// Arguments for ChangeLoopControlAlgorithm.
const (
	LoopControlAlgorithmPD   uint16 = 1
	LoopControlAlgorithmPDDI uint16 = 2
)

// Arguments for ReadPIDValue.
const (
	PIDValueP uint16 = 0
	PIDValueD uint16 = 1
	PIDValueI uint16 = 2
)

// Arguments for ChangeSetpointSource.
const (
	SetpointSourceDigital uint16 = 0
	SetpointSourceAnalog  uint16 = 1
)

// Values for RegMassFlowUnits.
const (
	MassFlowUnitGPerHour    uint16 = 0
	MassFlowUnitGPerMinute  uint16 = 2
	MassFlowUnitGPerSecond  uint16 = 5
	MassFlowUnitKgPerMinute uint16 = 8
	MassFlowUnitKgPerSecond uint16 = 11
	MassFlowUnitMgPerMinute uint16 = 14
	MassFlowUnitMgPerSecond uint16 = 17
	MassFlowUnitOzPerMinute uint16 = 20
	MassFlowUnitOzPerSecond uint16 = 23
	MassFlowUnitLbPerHour   uint16 = 25
	MassFlowUnitLbPerMinute uint16 = 26
)

// Values for RegVolumetricFlowUnits.
const (
	VolumetricFlowUnitLPerHour     uint16 = 0
	VolumetricFlowUnitCm3PerHour   uint16 = 7
	VolumetricFlowUnitCm3PerMinute uint16 = 8
	VolumetricFlowUnitCm3PerSecond uint16 = 9
	VolumetricFlowUnitFt3PerMinute uint16 = 10
	VolumetricFlowUnitIn3PerMinute uint16 = 12
	VolumetricFlowUnitM3PerDay     uint16 = 14
	VolumetricFlowUnitM3PerHour    uint16 = 15
	VolumetricFlowUnitM3PerMinute  uint16 = 16
	VolumetricFlowUnitGalPerHour   uint16 = 24
	VolumetricFlowUnitGalPerMinute uint16 = 25
	VolumetricFlowUnitLPerMinute   uint16 = 27
	VolumetricFlowUnitLPerSecond   uint16 = 28
	VolumetricFlowUnitMlPerSecond  uint16 = 29
)

// Values for RegTotalizerUnits.
const (
	TotalizerUnitG      uint16 = 0
	TotalizerUnitL      uint16 = 0
	TotalizerUnitKg     uint16 = 10
	TotalizerUnitMg     uint16 = 11
	TotalizerUnitCm3    uint16 = 11
	TotalizerUnitOz     uint16 = 12
	TotalizerUnitFt3    uint16 = 13
	TotalizerUnitIn3    uint16 = 14
	TotalizerUnitLb     uint16 = 16
	TotalizerUnitM3     uint16 = 16
	TotalizerUnitUSTon  uint16 = 27
	TotalizerUnitGallon uint16 = 27
	TotalizerUnitUl     uint16 = 33
	TotalizerUnitMl     uint16 = 34
)

// UnsupportedTypeError is returned when an operation is invoked on a
// device type that cannot perform it. No register access happens in that
// case.
type UnsupportedTypeError struct {
	Op   string
	Type DeviceType
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("alicat: %s is not supported by a %v", e.Op, e.Type)
}

// CommandError is a non-success status code reported by the device after
// a special command.
type CommandError struct {
	StatusCode uint16
}

// Error converts known special-command status codes to error messages.
func (e *CommandError) Error() string {
	var name string
	switch e.StatusCode {
	case StatusCodeInvalidCommandID:
		name = "invalid command id"
	case StatusCodeInvalidSetting:
		name = "invalid setting"
	case StatusCodeUnsupportedFeature:
		name = "requested feature is unsupported"
	case StatusCodeInvalidGasMixIndex:
		name = "invalid gas mix index"
	case StatusCodeInvalidGasMixConstituent:
		name = "invalid gas mix constituent"
	case StatusCodeInvalidGasMixPercentage:
		name = "invalid gas mix percentage"
	default:
		name = "unknown"
	}
	return fmt.Sprintf("alicat: command status '%v' (%s)", e.StatusCode, name)
}
