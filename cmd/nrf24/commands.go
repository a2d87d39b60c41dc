package main

import (
	"fmt"
	"time"

	"github.com/ecc1/radio"
	"github.com/spf13/cobra"

	"github.com/ecc1/nrf24"
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Check that the transceiver responds and print its settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := openRadio()
		if err != nil {
			return err
		}
		defer r.Deinit()
		return r.Exclusive(func() error {
			fmt.Printf("device: %s %s\n", r.Name(), r.Device())
			fmt.Printf("state: %v\n", r.State())
			fmt.Printf("config: %v\n", nrf24.Config(r.ReadRegister(nrf24.CONFIG)))
			fmt.Printf("channel: %d (%s MHz)\n", r.Channel(), radio.MegaHertz(r.Frequency()))
			fmt.Printf("rf setup: %v\n", nrf24.RFSetup(r.ReadRegister(nrf24.RF_SETUP)))
			fmt.Printf("status: %v\n", r.ReadStatus())
			return r.Error()
		})
	},
}

var (
	channel uint8
	power   uint8
	noAck   bool
	listen  time.Duration
)

func init() {
	for _, c := range []*cobra.Command{sendCmd, listenCmd} {
		c.Flags().Uint8Var(&channel, "channel", 76, "RF channel (0-125)")
	}
	sendCmd.Flags().Uint8Var(&power, "power", uint8(nrf24.PowerMax), "output power level (0-3)")
	sendCmd.Flags().BoolVar(&noAck, "noack", false, "do not request an acknowledgement")
	listenCmd.Flags().DurationVar(&listen, "duration", 5*time.Second, "how long to listen")
}

var sendCmd = &cobra.Command{
	Use:   "send MESSAGE",
	Short: "Transmit one payload",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := openRadio()
		if err != nil {
			return err
		}
		defer r.Deinit()
		return r.Exclusive(func() error {
			if err := r.SetChannel(channel); err != nil {
				return err
			}
			r.SetPower(nrf24.PowerLevel(power))
			r.SetTxMode()
			write := r.WritePayload
			if noAck {
				write = r.WritePayloadNoAck
			}
			if err := write([]byte(args[0])); err != nil {
				return err
			}
			fmt.Printf("status: %v\n", r.ReadStatus())
			return r.Error()
		})
	},
}

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Listen on a channel and report carrier and status changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := openRadio()
		if err != nil {
			return err
		}
		defer r.Deinit()
		return r.Exclusive(func() error {
			if err := r.SetChannel(channel); err != nil {
				return err
			}
			r.FlushRx()
			r.SetRxMode()
			const pollInterval = 10 * time.Millisecond
			var last nrf24.Status
			for end := time.Now().Add(listen); time.Now().Before(end); time.Sleep(pollInterval) {
				s := r.ReadStatus()
				if s != last {
					fmt.Printf("%s status: %v carrier: %v\n",
						time.Now().Format("15:04:05.000"), s, r.CarrierDetected())
					last = s
				}
				if s&nrf24.RxDR != 0 {
					r.FlushRx()
					r.ClearStatus(nrf24.RxDR)
				}
			}
			return r.Error()
		})
	},
}

var idleCmd = &cobra.Command{
	Use:   "idle",
	Short: "Power the transceiver down",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := openRadio()
		if err != nil {
			return err
		}
		r.Deinit()
		return r.Error()
	},
}

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the single-byte registers",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := openRadio()
		if err != nil {
			return err
		}
		defer r.Deinit()
		return r.Exclusive(func() error {
			for addr := byte(0); addr <= nrf24.RegisterMask; addr++ {
				fmt.Printf("%02X: %02X\n", addr, r.ReadRegister(addr))
			}
			return r.Error()
		})
	},
}
