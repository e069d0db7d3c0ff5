package alicat

import (
	"encoding/binary"
	"fmt"
)

// writeCommand writes the command id and argument to the command
// register pair as a single two-register write.
func (d *Device) writeCommand(command, argument uint16) error {
	data := make([]byte, 4)
	binary.BigEndian.PutUint16(data, command)
	binary.BigEndian.PutUint16(data[2:], argument)
	if _, err := d.transport.WriteMultipleRegisters(d.slaveID, d.offset(RegCommandID), 2, data); err != nil {
		d.logf("alicat: failed to write command %v: %v", command, err)
		return err
	}
	return nil
}

// SendSpecialCommand issues a special command with its argument, then
// reads back the status code the device leaves in the argument register.
// A non-success code is returned as a *CommandError.
func (d *Device) SendSpecialCommand(command, argument uint16) error {
	if err := d.writeCommand(command, argument); err != nil {
		return err
	}
	status, err := d.ReadRegister(RegCommandArgument)
	if err != nil {
		return err
	}
	if status != StatusCodeSuccess {
		cmdErr := &CommandError{StatusCode: status}
		d.logf("%v", cmdErr)
		return cmdErr
	}
	return nil
}

// ChangeGasNumber selects a gas table entry through the special command
// interface. Mass flow devices only.
func (d *Device) ChangeGasNumber(gasTableIndex uint16) error {
	if !d.deviceType.IsMassFlow() {
		return d.unsupported("ChangeGasNumber")
	}
	return d.SendSpecialCommand(CmdChangeGasNumber, gasTableIndex)
}

// CreateCustomGasMixture stores the staged mixture constituents under
// the given index: 0 lets the device pick the next free slot, otherwise
// the index must be 236..255. Mass flow devices only.
func (d *Device) CreateCustomGasMixture(gasMixtureIndex uint16) error {
	if !d.deviceType.IsMassFlow() {
		return d.unsupported("CreateCustomGasMixture")
	}
	if gasMixtureIndex != 0 && (gasMixtureIndex < minCustomGasMix || gasMixtureIndex > maxCustomGasMix) {
		err := fmt.Errorf("alicat: gas mixture index '%v' must be 0 or between '%v' and '%v'", gasMixtureIndex, minCustomGasMix, maxCustomGasMix)
		d.logf("%v", err)
		return err
	}
	return d.SendSpecialCommand(CmdCreateCustomGasMixture, gasMixtureIndex)
}

// DeleteCustomGasMixture removes a stored custom mixture. Mass flow
// devices only.
func (d *Device) DeleteCustomGasMixture(gasMixtureIndex uint16) error {
	if !d.deviceType.IsMassFlow() {
		return d.unsupported("DeleteCustomGasMixture")
	}
	return d.SendSpecialCommand(CmdDeleteCustomGasMixture, gasMixtureIndex)
}

// Tare zeroes a measurement. TareTypePressure and
// TareTypeAbsolutePressure require a pressure controller,
// TareTypeVolume a mass flow or liquid device.
func (d *Device) Tare(argument uint16) error {
	switch argument {
	case TareTypePressure, TareTypeAbsolutePressure:
		if !d.deviceType.IsPressureController() {
			return d.unsupported(fmt.Sprintf("Tare(%v)", argument))
		}
	case TareTypeVolume:
		if !d.deviceType.IsMassFlow() && !d.deviceType.IsLiquid() {
			return d.unsupported(fmt.Sprintf("Tare(%v)", argument))
		}
	default:
		err := fmt.Errorf("alicat: tare argument '%v' must be between '%v' and '%v'", argument, TareTypePressure, TareTypeVolume)
		d.logf("%v", err)
		return err
	}
	return d.SendSpecialCommand(CmdTare, argument)
}

// TarePressure tares the pressure reading.
func (d *Device) TarePressure() error {
	return d.Tare(TareTypePressure)
}

// TareAbsolutePressure tares the absolute pressure reading.
func (d *Device) TareAbsolutePressure() error {
	return d.Tare(TareTypeAbsolutePressure)
}

// TareVolume tares the volumetric reading.
func (d *Device) TareVolume() error {
	return d.Tare(TareTypeVolume)
}

// ResetTotalizer clears the totalized value. Mass flow and liquid
// devices only.
func (d *Device) ResetTotalizer() error {
	if !d.deviceType.IsMassFlow() && !d.deviceType.IsLiquid() {
		return d.unsupported("ResetTotalizer")
	}
	return d.SendSpecialCommand(CmdResetTotalizer, 0)
}

// ValveSetting overrides the valve behavior with one of the
// ValveSetting constants. Controllers only.
func (d *Device) ValveSetting(argument uint16) error {
	if !d.deviceType.IsController() {
		return d.unsupported("ValveSetting")
	}
	if argument > ValveSettingExhaust {
		err := fmt.Errorf("alicat: valve setting '%v' must be between '%v' and '%v'", argument, ValveSettingCancel, ValveSettingExhaust)
		d.logf("%v", err)
		return err
	}
	return d.SendSpecialCommand(CmdValveSetting, argument)
}

// CancelValveSetting returns the valve to setpoint control.
func (d *Device) CancelValveSetting() error {
	return d.ValveSetting(ValveSettingCancel)
}

// HoldValveClosed holds the valve closed.
func (d *Device) HoldValveClosed() error {
	return d.ValveSetting(ValveSettingHoldClose)
}

// HoldValveCurrent holds the valve at its current position.
func (d *Device) HoldValveCurrent() error {
	return d.ValveSetting(ValveSettingHoldCurrent)
}

// ExhaustValve opens the exhaust valve. Dual valve controllers only;
// other controllers report an unsupported feature status.
func (d *Device) ExhaustValve() error {
	return d.ValveSetting(ValveSettingExhaust)
}

// DisplayLock locks or unlocks the front display.
func (d *Device) DisplayLock(argument uint16) error {
	if argument != DisplayLockUnlock && argument != DisplayLockLock {
		err := fmt.Errorf("alicat: display lock argument '%v' must be '%v' or '%v'", argument, DisplayLockUnlock, DisplayLockLock)
		d.logf("%v", err)
		return err
	}
	return d.SendSpecialCommand(CmdDisplayLock, argument)
}

// LockDisplay locks the front display.
func (d *Device) LockDisplay() error {
	return d.DisplayLock(DisplayLockLock)
}

// UnlockDisplay unlocks the front display.
func (d *Device) UnlockDisplay() error {
	return d.DisplayLock(DisplayLockUnlock)
}

// ChangePInPIDLoop sets the PID loop P coefficient. Controllers only.
func (d *Device) ChangePInPIDLoop(p uint16) error {
	if !d.deviceType.IsController() {
		return d.unsupported("ChangePInPIDLoop")
	}
	return d.SendSpecialCommand(CmdChangePInPIDLoop, p)
}

// ChangeDInPIDLoop sets the PID loop D coefficient. Controllers only.
func (d *Device) ChangeDInPIDLoop(dCoeff uint16) error {
	if !d.deviceType.IsController() {
		return d.unsupported("ChangeDInPIDLoop")
	}
	return d.SendSpecialCommand(CmdChangeDInPIDLoop, dCoeff)
}

// ChangeIInPIDLoop sets the PID loop I coefficient. Controllers only.
func (d *Device) ChangeIInPIDLoop(i uint16) error {
	if !d.deviceType.IsController() {
		return d.unsupported("ChangeIInPIDLoop")
	}
	return d.SendSpecialCommand(CmdChangeIInPIDLoop, i)
}

// ReadPIDValue reads one PID coefficient: PIDValueP, PIDValueD or
// PIDValueI. The device replies with the coefficient in the command
// argument register rather than a status code. Controllers only.
func (d *Device) ReadPIDValue(coefficient uint16) (uint16, error) {
	if !d.deviceType.IsController() {
		return 0, d.unsupported("ReadPIDValue")
	}
	if coefficient > PIDValueI {
		err := fmt.Errorf("alicat: PID coefficient '%v' must be between '%v' and '%v'", coefficient, PIDValueP, PIDValueI)
		d.logf("%v", err)
		return 0, err
	}
	if err := d.writeCommand(CmdReadPIDValue, coefficient); err != nil {
		return 0, err
	}
	return d.ReadRegister(RegCommandArgument)
}

// ReadPValue reads the PID loop P coefficient.
func (d *Device) ReadPValue() (uint16, error) {
	return d.ReadPIDValue(PIDValueP)
}

// ReadDValue reads the PID loop D coefficient.
func (d *Device) ReadDValue() (uint16, error) {
	return d.ReadPIDValue(PIDValueD)
}

// ReadIValue reads the PID loop I coefficient.
func (d *Device) ReadIValue() (uint16, error) {
	return d.ReadPIDValue(PIDValueI)
}

// ChangeControlLoopVariable selects which statistic the control loop
// regulates, one of the ControlLoop constants.
func (d *Device) ChangeControlLoopVariable(variable uint16) error {
	if variable > ControlLoopGaugePressure {
		err := fmt.Errorf("alicat: control loop variable '%v' must be between '%v' and '%v'", variable, ControlLoopMassFlow, ControlLoopGaugePressure)
		d.logf("%v", err)
		return err
	}
	return d.SendSpecialCommand(CmdChangeControlLoopVariable, variable)
}

// ControlMassFlow makes the loop regulate mass flow.
func (d *Device) ControlMassFlow() error {
	return d.ChangeControlLoopVariable(ControlLoopMassFlow)
}

// ControlVolumetricFlow makes the loop regulate volumetric flow.
func (d *Device) ControlVolumetricFlow() error {
	return d.ChangeControlLoopVariable(ControlLoopVolumetricFlow)
}

// ControlDifferentialPressure makes the loop regulate differential
// pressure.
func (d *Device) ControlDifferentialPressure() error {
	return d.ChangeControlLoopVariable(ControlLoopDifferentialPressure)
}

// ControlAbsolutePressure makes the loop regulate absolute pressure.
func (d *Device) ControlAbsolutePressure() error {
	return d.ChangeControlLoopVariable(ControlLoopAbsolutePressure)
}

// ControlGaugePressure makes the loop regulate gauge pressure.
func (d *Device) ControlGaugePressure() error {
	return d.ChangeControlLoopVariable(ControlLoopGaugePressure)
}

// SaveCurrentSetpointToMemory persists the active setpoint as the power
// up setpoint. Controllers only.
func (d *Device) SaveCurrentSetpointToMemory() error {
	if !d.deviceType.IsController() {
		return d.unsupported("SaveCurrentSetpointToMemory")
	}
	return d.SendSpecialCommand(CmdSaveCurrentSetpointToMemory, 0)
}

// ChangeLoopControlAlgorithm selects LoopControlAlgorithmPD or
// LoopControlAlgorithmPDDI. Controllers only.
func (d *Device) ChangeLoopControlAlgorithm(algorithm uint16) error {
	if !d.deviceType.IsController() {
		return d.unsupported("ChangeLoopControlAlgorithm")
	}
	if algorithm != LoopControlAlgorithmPD && algorithm != LoopControlAlgorithmPDDI {
		err := fmt.Errorf("alicat: loop control algorithm '%v' must be '%v' or '%v'", algorithm, LoopControlAlgorithmPD, LoopControlAlgorithmPDDI)
		d.logf("%v", err)
		return err
	}
	return d.SendSpecialCommand(CmdChangeLoopControlAlgorithm, algorithm)
}

// ValveControlOverride overrides the valve drive. Controllers only.
func (d *Device) ValveControlOverride(argument uint16) error {
	if !d.deviceType.IsController() {
		return d.unsupported("ValveControlOverride")
	}
	return d.SendSpecialCommand(CmdValveControlOverride, argument)
}

// ChangeSetpointSource selects SetpointSourceDigital or
// SetpointSourceAnalog. Controllers only.
func (d *Device) ChangeSetpointSource(source uint16) error {
	if !d.deviceType.IsController() {
		return d.unsupported("ChangeSetpointSource")
	}
	if source != SetpointSourceDigital && source != SetpointSourceAnalog {
		err := fmt.Errorf("alicat: setpoint source '%v' must be '%v' or '%v'", source, SetpointSourceDigital, SetpointSourceAnalog)
		d.logf("%v", err)
		return err
	}
	return d.SendSpecialCommand(CmdChangeSetpointSource, source)
}

// SetSetpointSourceToDigital selects the digital setpoint source.
func (d *Device) SetSetpointSourceToDigital() error {
	return d.ChangeSetpointSource(SetpointSourceDigital)
}

// SetSetpointSourceToAnalog selects the analog setpoint source.
func (d *Device) SetSetpointSourceToAnalog() error {
	return d.ChangeSetpointSource(SetpointSourceAnalog)
}

// ChangeModbusID moves the device to a new slave id 1..247. The driver
// keeps addressing the old id; call SetSlaveID once the device has
// switched.
func (d *Device) ChangeModbusID(slaveID uint16) error {
	if slaveID < 1 || slaveID > 247 {
		err := fmt.Errorf("alicat: slave id '%v' must be between '%v' and '%v'", slaveID, 1, 247)
		d.logf("%v", err)
		return err
	}
	return d.SendSpecialCommand(CmdChangeModbusID, slaveID)
}

// ChangeSerialBaudRate changes the device's serial baud rate. The
// transport keeps its current rate; reconfigure it once the device has
// switched.
func (d *Device) ChangeSerialBaudRate(baudRate uint16) error {
	return d.SendSpecialCommand(CmdChangeSerialBaudRate, baudRate)
}
