package alicat

import (
	"fmt"
	"math"
)

const (
	maxGasIndex     = 210
	minMixtureSlot  = 1
	maxMixtureSlot  = 5
	minCustomGasMix = 236
	maxCustomGasMix = 255
)

// mixtureRegisters returns the index and percent register addresses of a
// gas mixture slot 1..5.
func mixtureRegisters(mixtureIndex int) (index, percent uint16, err error) {
	if mixtureIndex < minMixtureSlot || mixtureIndex > maxMixtureSlot {
		return 0, 0, fmt.Errorf("alicat: mixture index '%v' must be between '%v' and '%v'", mixtureIndex, minMixtureSlot, maxMixtureSlot)
	}
	index = RegMixtureGas1Index + 2*uint16(mixtureIndex-1)
	return index, index + 1, nil
}

// encodePercent converts a percentage to the device's fixed-point
// register encoding, so 50.0% becomes 5000.
func encodePercent(percent float32) uint16 {
	return uint16(math.Round(float64(percent) * 100))
}

// decodePercent converts the fixed-point register encoding back to a
// percentage.
func decodePercent(raw uint16) float32 {
	return float32(raw) / 100
}

// SetGasNumber selects the active gas table entry 0..210. Mass flow
// devices only.
func (d *Device) SetGasNumber(gasIndex uint16) error {
	if !d.deviceType.IsMassFlow() {
		return d.unsupported("SetGasNumber")
	}
	if gasIndex > maxGasIndex {
		err := fmt.Errorf("alicat: gas index '%v' must be between '%v' and '%v'", gasIndex, 0, maxGasIndex)
		d.logf("%v", err)
		return err
	}
	return d.WriteRegister(RegGasNumber, gasIndex)
}

// GasNumber reads the active gas table entry. Mass flow devices only.
func (d *Device) GasNumber() (uint16, error) {
	if !d.deviceType.IsMassFlow() {
		return 0, d.unsupported("GasNumber")
	}
	return d.ReadRegister(RegGasNumber)
}

// SetMixtureGas configures one constituent of a custom gas mixture:
// slot 1..5, gas table index 0..210 and percentage 0..100. The
// percentage is stored in hundredths, so 50.0% is written as 5000.
// Mass flow devices only.
func (d *Device) SetMixtureGas(mixtureIndex int, gasIndex uint16, gasPercent float32) error {
	if !d.deviceType.IsMassFlow() {
		return d.unsupported("SetMixtureGas")
	}
	indexReg, percentReg, err := mixtureRegisters(mixtureIndex)
	if err != nil {
		d.logf("%v", err)
		return err
	}
	if gasIndex > maxGasIndex {
		err := fmt.Errorf("alicat: gas index '%v' must be between '%v' and '%v'", gasIndex, 0, maxGasIndex)
		d.logf("%v", err)
		return err
	}
	if gasPercent < 0 || gasPercent > 100 {
		err := fmt.Errorf("alicat: gas percent '%v' must be between '%v' and '%v'", gasPercent, 0, 100)
		d.logf("%v", err)
		return err
	}
	if err := d.WriteRegister(indexReg, gasIndex); err != nil {
		return err
	}
	return d.WriteRegister(percentReg, encodePercent(gasPercent))
}

// MixtureGas reads one constituent of a custom gas mixture. Mass flow
// devices only.
func (d *Device) MixtureGas(mixtureIndex int) (gasIndex uint16, gasPercent float32, err error) {
	if !d.deviceType.IsMassFlow() {
		return 0, 0, d.unsupported("MixtureGas")
	}
	indexReg, percentReg, err := mixtureRegisters(mixtureIndex)
	if err != nil {
		d.logf("%v", err)
		return 0, 0, err
	}
	gasIndex, err = d.ReadRegister(indexReg)
	if err != nil {
		return 0, 0, err
	}
	raw, err := d.ReadRegister(percentReg)
	if err != nil {
		return 0, 0, err
	}
	return gasIndex, decodePercent(raw), nil
}
