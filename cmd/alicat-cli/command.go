package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/williamstoy/alicat"
)

// command wires one argument-free device command into a subcommand.
func command(use, short string, run func(d *alicat.Device) error) *cobra.Command {
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

			return run(device)
		},
	}
}

var tareCmd = &cobra.Command{
	Use:       "tare {pressure|absolute-pressure|volume}",
	Short:     "Tare a measurement",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"pressure", "absolute-pressure", "volume"},
	RunE: func(cmd *cobra.Command, args []string) error {
		device, closePort, err := newDevice()
		if err != nil {
			return err
		}
		defer closePort()

		switch args[0] {
		case "pressure":
			return device.TarePressure()
		case "absolute-pressure":
			return device.TareAbsolutePressure()
		case "volume":
			return device.TareVolume()
		}
		return fmt.Errorf("unknown tare target %q", args[0])
	},
}

var valveCmd = &cobra.Command{
	Use:       "valve {cancel|close|hold|exhaust}",
	Short:     "Override the valve behavior (controllers)",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"cancel", "close", "hold", "exhaust"},
	RunE: func(cmd *cobra.Command, args []string) error {
		device, closePort, err := newDevice()
		if err != nil {
			return err
		}
		defer closePort()

		switch args[0] {
		case "cancel":
			return device.CancelValveSetting()
		case "close":
			return device.HoldValveClosed()
		case "hold":
			return device.HoldValveCurrent()
		case "exhaust":
			return device.ExhaustValve()
		}
		return fmt.Errorf("unknown valve setting %q", args[0])
	},
}

var pidCmd = &cobra.Command{
	Use:       "pid {p|i|d}",
	Short:     "Read a PID loop coefficient (controllers)",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"p", "i", "d"},
	RunE: func(cmd *cobra.Command, args []string) error {
		device, closePort, err := newDevice()
		if err != nil {
			return err
		}
		defer closePort()

		var value uint16
		switch args[0] {
		case "p":
			value, err = device.ReadPValue()
		case "i":
			value, err = device.ReadIValue()
		case "d":
			value, err = device.ReadDValue()
		default:
			return fmt.Errorf("unknown PID coefficient %q", args[0])
		}
		if err != nil {
			return err
		}
		fmt.Println(value)
		return nil
	},
}

func init() {
	displayCmd := &cobra.Command{
		Use:   "display",
		Short: "Lock or unlock the front display",
	}
	displayCmd.AddCommand(
		command("lock", "Lock the front display", (*alicat.Device).LockDisplay),
		command("unlock", "Unlock the front display", (*alicat.Device).UnlockDisplay),
	)

	totalizerCmd := &cobra.Command{
		Use:   "totalizer",
		Short: "Totalizer maintenance (mass flow and liquid devices)",
	}
	totalizerCmd.AddCommand(
		command("reset", "Reset the totalized value", (*alicat.Device).ResetTotalizer),
	)

	rootCmd.AddCommand(tareCmd, valveCmd, pidCmd, displayCmd, totalizerCmd)
}
