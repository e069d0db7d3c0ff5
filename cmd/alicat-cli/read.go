package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/williamstoy/alicat"
)

var readCmd = &cobra.Command{
	Use:   "read",
	Short: "Read a telemetry value from the instrument",
}

// readFloat wires a telemetry getter into a subcommand printing the
// value on stdout.
func readFloat(use, short string, get func(d *alicat.Device) (float32, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			device, closePort, err := newDevice()
			if err != nil {
				return err
			}
			defer closePort()

			value, err := get(device)
			if err != nil {
				return err
			}
			fmt.Printf("%g\n", value)
			return nil
		},
	}
}

func init() {
	readCmd.AddCommand(
		readFloat("pressure", "Pressure reading (all device types)", (*alicat.Device).Pressure),
		readFloat("temperature", "Flow temperature (mass flow and liquid devices)", (*alicat.Device).FlowTemperature),
		readFloat("volumetric-flow", "Volumetric flow (mass flow and liquid devices)", (*alicat.Device).VolumetricFlow),
		readFloat("mass-flow", "Mass flow (mass flow devices)", (*alicat.Device).MassFlow),
		readFloat("mass-total", "Totalized mass (mass flow devices)", (*alicat.Device).MassTotal),
		readFloat("setpoint", "Current setpoint (controllers)", (*alicat.Device).Setpoint),
	)
	rootCmd.AddCommand(readCmd)
}
