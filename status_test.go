package alicat

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeStatusFlags(t *testing.T) {
	for _, tc := range []struct {
		name   string
		status uint16
		want   StatusFlags
	}{
		{
			name:   "all clear",
			status: 0,
			want:   StatusFlags{},
		},
		{
			name:   "pressure and temperature overflow",
			status: 0x0041,
			want: StatusFlags{
				TemperatureOverflow: true,
				PressureOverflow:    true,
				AnyError:            true,
			},
		},
		{
			name:   "adc error",
			status: StatusBitADCError,
			want: StatusFlags{
				ADCError: true,
				AnyError: true,
			},
		},
		{
			name:   "unnamed bit still raises any error",
			status: 0x8000,
			want: StatusFlags{
				AnyError: true,
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := decodeStatusFlags(tc.status)
			if !cmp.Equal(tc.want, got) {
				t.Errorf("invalid flags: %s", cmp.Diff(tc.want, got))
			}
		})
	}
}

func TestStatus(t *testing.T) {
	d, transport := newTestDevice(MassFlowController)
	transport.regs[wire(RegDeviceStatus)] = StatusBitPIDLoopInHold | StatusBitTotalizerOverflow

	flags, err := d.Status()
	require.NoError(t, err)
	assert.True(t, flags.PIDLoopInHold)
	assert.True(t, flags.TotalizerOverflow)
	assert.True(t, flags.AnyError)
	assert.False(t, flags.ADCError)

	assert.Equal(t, wire(RegDeviceStatus), transport.reads[0].address)
}

func TestStatusFlagsString(t *testing.T) {
	assert.Equal(t, "ok", StatusFlags{}.String())
	assert.Equal(t, "pressure overflow, ADC error",
		decodeStatusFlags(StatusBitPressureOverflow|StatusBitADCError).String())
}
