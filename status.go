package alicat

import (
	"strings"
)

// StatusFlags is the decoded device status word. AnyError is set when
// any bit of the raw word is, including bits this package does not name.
type StatusFlags struct {
	TemperatureOverflow        bool
	TemperatureUnderflow       bool
	VolumetricOverflow         bool
	VolumetricUnderflow        bool
	MassOverflow               bool
	MassUnderflow              bool
	PressureOverflow           bool
	TotalizerOverflow          bool
	PIDLoopInHold              bool
	ADCError                   bool
	PIDExhaust                 bool
	OverPressureLimit          bool
	FlowOverflowDuringTotalize bool
	MeasurementAborted         bool
	AnyError                   bool
}

// decodeStatusFlags decomposes a raw status word into named flags.
func decodeStatusFlags(status uint16) StatusFlags {
	return StatusFlags{
		TemperatureOverflow:        status&StatusBitTemperatureOverflow != 0,
		TemperatureUnderflow:       status&StatusBitTemperatureUnderflow != 0,
		VolumetricOverflow:         status&StatusBitVolumetricOverflow != 0,
		VolumetricUnderflow:        status&StatusBitVolumetricUnderflow != 0,
		MassOverflow:               status&StatusBitMassOverflow != 0,
		MassUnderflow:              status&StatusBitMassUnderflow != 0,
		PressureOverflow:           status&StatusBitPressureOverflow != 0,
		TotalizerOverflow:          status&StatusBitTotalizerOverflow != 0,
		PIDLoopInHold:              status&StatusBitPIDLoopInHold != 0,
		ADCError:                   status&StatusBitADCError != 0,
		PIDExhaust:                 status&StatusBitPIDExhaust != 0,
		OverPressureLimit:          status&StatusBitOverPressureLimit != 0,
		FlowOverflowDuringTotalize: status&StatusBitFlowOverflowDuringTotalize != 0,
		MeasurementAborted:         status&StatusBitMeasurementAborted != 0,
		AnyError:                   status != 0,
	}
}

// String lists the set flags, or "ok" when none are.
func (s StatusFlags) String() string {
	var set []string
	for _, f := range []struct {
		name string
		on   bool
	}{
		{"temperature overflow", s.TemperatureOverflow},
		{"temperature underflow", s.TemperatureUnderflow},
		{"volumetric overflow", s.VolumetricOverflow},
		{"volumetric underflow", s.VolumetricUnderflow},
		{"mass overflow", s.MassOverflow},
		{"mass underflow", s.MassUnderflow},
		{"pressure overflow", s.PressureOverflow},
		{"totalizer overflow", s.TotalizerOverflow},
		{"PID loop in hold", s.PIDLoopInHold},
		{"ADC error", s.ADCError},
		{"PID exhaust", s.PIDExhaust},
		{"over pressure limit", s.OverPressureLimit},
		{"flow overflow during totalize", s.FlowOverflowDuringTotalize},
		{"measurement aborted", s.MeasurementAborted},
	} {
		if f.on {
			set = append(set, f.name)
		}
	}
	if len(set) == 0 {
		return "ok"
	}
	return strings.Join(set, ", ")
}

// Status reads and decodes the device status word. The word is fetched
// fresh on every call.
func (d *Device) Status() (StatusFlags, error) {
	status, err := d.ReadRegister(RegDeviceStatus)
	if err != nil {
		return StatusFlags{}, err
	}
	flags := decodeStatusFlags(status)
	if flags.AnyError {
		d.logf("alicat: status bits %016b: %v", status, flags)
	}
	return flags, nil
}
