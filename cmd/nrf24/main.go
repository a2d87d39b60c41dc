package main

import (
	"log"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ecc1/nrf24"
	"github.com/ecc1/nrf24/nrf24test"
	"github.com/ecc1/nrf24/periph"
)

var (
	backend  string
	device   string
	csName   string
	ceName   string
	simulate bool
)

var rootCmd = &cobra.Command{
	Use:           "nrf24",
	Short:         "Inspect and drive an nRF24L01+ transceiver",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&backend, "backend", "sysfs", "host drivers: sysfs or periph")
	f.StringVar(&device, "device", "", "SPI device (default depends on board)")
	f.StringVar(&csName, "cs", "", "chip-select GPIO")
	f.StringVar(&ceName, "ce", "", "chip-enable GPIO")
	f.BoolVar(&simulate, "simulate", false, "use a simulated chip instead of hardware")
	rootCmd.AddCommand(probeCmd, sendCmd, listenCmd, idleCmd, dumpCmd)
}

func main() {
	log.SetFlags(0)
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

// openRadio returns an initialized radio or the reason it could not be.
func openRadio() (*nrf24.Radio, error) {
	var r *nrf24.Radio
	switch {
	case simulate:
		c := nrf24test.New()
		r = nrf24.New(c, c.CS, c.CE, c)
		r.Init()
	case backend == "periph":
		var err error
		r, err = periph.Open(periph.Config{Port: device, CS: csName, CE: ceName})
		if err != nil {
			return nil, err
		}
	case backend == "sysfs":
		if device == "" && csName == "" && ceName == "" {
			r = nrf24.Open()
			break
		}
		cs, err := strconv.Atoi(csName)
		if err != nil {
			return nil, errors.Wrap(err, "--cs")
		}
		ce, err := strconv.Atoi(ceName)
		if err != nil {
			return nil, errors.Wrap(err, "--ce")
		}
		r = nrf24.OpenDevice(device, cs, ce)
	default:
		return nil, errors.Errorf("unknown backend %q", backend)
	}
	if !r.Initialized() {
		r.Deinit()
		return nil, r.Error()
	}
	return r, nil
}
