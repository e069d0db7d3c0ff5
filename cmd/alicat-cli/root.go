package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/grid-x/modbus"
	"github.com/grid-x/serial"
	"github.com/spf13/cobra"

	"github.com/williamstoy/alicat"
)

var opt struct {
	address        string
	slaveID        int
	deviceType     string
	timeout        time.Duration
	registerOffset int
	verbose        bool

	rtu struct {
		baudRate int
		dataBits int
		parity   string
		stopBits int
	}

	rs485 struct {
		enabled            bool
		delayRtsBeforeSend time.Duration
		delayRtsAfterSend  time.Duration
		rtsHighDuringSend  bool
		rtsHighAfterSend   bool
		rxDuringTx         bool
	}
}

var rootCmd = &cobra.Command{
	Use:   "alicat-cli",
	Short: "Talk to Alicat flow and pressure instruments over Modbus RTU",
	Long: `alicat-cli reads telemetry from and sends commands to Alicat mass flow
and pressure instruments attached to a serial line.

The device type decides which operations are valid, so pass the type that
matches your instrument:
  mfc   mass flow controller
  mfm   mass flow meter
  lc    liquid controller
  psid  PSID (differential pressure) controller
  gpc   gauge pressure controller`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&opt.address, "address", "a", "/dev/ttyUSB0", "Serial port the instrument is attached to")
	pf.IntVar(&opt.slaveID, "slave", 1, "Modbus slave id of the instrument (1-247)")
	pf.StringVarP(&opt.deviceType, "device-type", "t", "mfc", "Device type: mfc, mfm, lc, psid or gpc")
	pf.DurationVar(&opt.timeout, "timeout", 5*time.Second, "Modbus connection timeout")
	pf.IntVar(&opt.registerOffset, "register-offset", alicat.DefaultRegisterOffset, "Correction added to every documented register address")
	pf.BoolVarP(&opt.verbose, "verbose", "v", false, "Log rejected operations and modbus frames")
	// rtu
	pf.IntVar(&opt.rtu.baudRate, "rtu-baudrate", 19200, "Symbol rate, e.g.: 9600, 19200, 38400, 57600")
	pf.IntVar(&opt.rtu.dataBits, "rtu-databits", 8, "5, 6, 7 or 8")
	pf.StringVar(&opt.rtu.parity, "rtu-parity", "N", "Parity: N - None, E - Even, O - Odd")
	pf.IntVar(&opt.rtu.stopBits, "rtu-stopbits", 1, "1 or 2")
	// rs485
	pf.BoolVar(&opt.rs485.enabled, "rs485-enable", false, "enables rs485 cfg")
	pf.DurationVar(&opt.rs485.delayRtsBeforeSend, "rs485-delayRtsBeforeSend", 0, "Delay rts before send")
	pf.DurationVar(&opt.rs485.delayRtsAfterSend, "rs485-delayRtsAfterSend", 0, "Delay rts after send")
	pf.BoolVar(&opt.rs485.rtsHighDuringSend, "rs485-rtsHighDuringSend", false, "Allow rts high during send")
	pf.BoolVar(&opt.rs485.rtsHighAfterSend, "rs485-rtsHighAfterSend", false, "Allow rts high after send")
	pf.BoolVar(&opt.rs485.rxDuringTx, "rs485-rxDuringTx", false, "Allow bidirectional rx during tx")
}

func parseDeviceType(s string) (alicat.DeviceType, error) {
	switch s {
	case "mfc":
		return alicat.MassFlowController, nil
	case "mfm":
		return alicat.MassFlowMeter, nil
	case "lc":
		return alicat.LiquidController, nil
	case "psid":
		return alicat.PSIDController, nil
	case "gpc":
		return alicat.GaugePressureController, nil
	}
	return 0, fmt.Errorf("unknown device type %q", s)
}

// newDevice opens the serial port and returns a connected driver plus a
// close function.
func newDevice() (*alicat.Device, func(), error) {
	deviceType, err := parseDeviceType(opt.deviceType)
	if err != nil {
		return nil, nil, err
	}
	if opt.slaveID < 1 || opt.slaveID > 247 {
		return nil, nil, fmt.Errorf("slave id %d out of range 1-247", opt.slaveID)
	}

	handler := modbus.NewRTUClientHandler(opt.address)
	handler.Timeout = opt.timeout
	handler.SlaveID = byte(opt.slaveID)
	handler.BaudRate = opt.rtu.baudRate
	handler.DataBits = opt.rtu.dataBits
	handler.Parity = opt.rtu.parity
	handler.StopBits = opt.rtu.stopBits
	handler.RS485 = serial.RS485Config{
		Enabled:            opt.rs485.enabled,
		DelayRtsBeforeSend: opt.rs485.delayRtsBeforeSend,
		DelayRtsAfterSend:  opt.rs485.delayRtsAfterSend,
		RtsHighDuringSend:  opt.rs485.rtsHighDuringSend,
		RtsHighAfterSend:   opt.rs485.rtsHighAfterSend,
		RxDuringTx:         opt.rs485.rxDuringTx,
	}
	if opt.verbose {
		handler.Logger = &logAdapter{slog.Default()}
	}
	if err := handler.Connect(context.Background()); err != nil {
		return nil, nil, fmt.Errorf("could not open %s: %w", opt.address, err)
	}

	device := alicat.NewDevice(alicat.NewClientTransport(handler), byte(opt.slaveID), deviceType)
	device.SetRegisterOffset(opt.registerOffset)
	if opt.verbose {
		device.Logger = &logAdapter{slog.Default()}
	}
	return device, func() { handler.Close() }, nil
}
