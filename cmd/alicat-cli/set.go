package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var setpointCmd = &cobra.Command{
	Use:   "setpoint <value>",
	Short: "Write the control setpoint (controllers)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := strconv.ParseFloat(args[0], 32)
		if err != nil {
			return fmt.Errorf("invalid setpoint %q: %w", args[0], err)
		}

		device, closePort, err := newDevice()
		if err != nil {
			return err
		}
		defer closePort()

		return device.SetSetpoint(float32(value))
	},
}

var gasCmd = &cobra.Command{
	Use:   "gas",
	Short: "Read or select the active gas table entry (mass flow devices)",
}

var gasGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Read the active gas table entry",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		device, closePort, err := newDevice()
		if err != nil {
			return err
		}
		defer closePort()

		gas, err := device.GasNumber()
		if err != nil {
			return err
		}
		fmt.Println(gas)
		return nil
	},
}

var gasSetCmd = &cobra.Command{
	Use:   "set <index>",
	Short: "Select a gas table entry 0-210",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.ParseUint(args[0], 10, 16)
		if err != nil {
			return fmt.Errorf("invalid gas index %q: %w", args[0], err)
		}

		device, closePort, err := newDevice()
		if err != nil {
			return err
		}
		defer closePort()

		return device.SetGasNumber(uint16(index))
	},
}

var mixCmd = &cobra.Command{
	Use:   "mix",
	Short: "Inspect or stage custom gas mixture constituents (mass flow devices)",
}

var mixGetCmd = &cobra.Command{
	Use:   "get <slot>",
	Short: "Read the constituent in mixture slot 1-5",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		slot, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid mixture slot %q: %w", args[0], err)
		}

		device, closePort, err := newDevice()
		if err != nil {
			return err
		}
		defer closePort()

		gasIndex, gasPercent, err := device.MixtureGas(slot)
		if err != nil {
			return err
		}
		fmt.Printf("gas %d at %g%%\n", gasIndex, gasPercent)
		return nil
	},
}

var mixSetCmd = &cobra.Command{
	Use:   "set <slot> <gas-index> <percent>",
	Short: "Stage a constituent into mixture slot 1-5",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		slot, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid mixture slot %q: %w", args[0], err)
		}
		gasIndex, err := strconv.ParseUint(args[1], 10, 16)
		if err != nil {
			return fmt.Errorf("invalid gas index %q: %w", args[1], err)
		}
		percent, err := strconv.ParseFloat(args[2], 32)
		if err != nil {
			return fmt.Errorf("invalid percentage %q: %w", args[2], err)
		}

		device, closePort, err := newDevice()
		if err != nil {
			return err
		}
		defer closePort()

		return device.SetMixtureGas(slot, uint16(gasIndex), float32(percent))
	},
}

func init() {
	gasCmd.AddCommand(gasGetCmd, gasSetCmd)
	mixCmd.AddCommand(mixGetCmd, mixSetCmd)
	rootCmd.AddCommand(setpointCmd, gasCmd, mixCmd)
}
