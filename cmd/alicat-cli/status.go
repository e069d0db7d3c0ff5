package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Read and decode the device status word",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		device, closePort, err := newDevice()
		if err != nil {
			return err
		}
		defer closePort()

		flags, err := device.Status()
		if err != nil {
			return err
		}
		fmt.Println(flags)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
