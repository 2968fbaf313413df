// accel-probe exercises a LIS35DE wired to a Linux I2C bus: it runs the
// firmware's startup handshake, checks WHO_AM_I and prints frames in the
// same format the firmware streams.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/golang/glog"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"

	"accelstream/core"
	"accelstream/sensor/lis35de"
)

var (
	busName  = flag.String("bus", "", "I2C bus name or number (empty for the first one)")
	addr     = flag.Uint("addr", lis35de.Address, "7-bit sensor address")
	speedKHz = flag.Int64("khz", 100, "Bus clock in kHz")
	count    = flag.Int("n", 40, "Number of samples (0 for endless)")
	interval = flag.Duration("interval", time.Duration(core.DefaultTimerConfig().PeriodUS())*time.Microsecond, "Sampling period")
)

func main() {
	flag.Parse()
	defer glog.Flush()

	if _, err := host.Init(); err != nil {
		glog.Exitf("host init: %v", err)
	}

	bus, err := i2creg.Open(*busName)
	if err != nil {
		glog.Exitf("open i2c bus %q: %v", *busName, err)
	}
	defer bus.Close()

	if err := bus.SetSpeed(physic.Frequency(*speedKHz) * physic.KiloHertz); err != nil {
		glog.Warningf("set bus speed: %v", err)
	}
	glog.Infof("using %s", bus)

	if err := probe(bus, uint16(*addr), *count, *interval); err != nil {
		glog.Errorf("%v", err)
		glog.Flush()
		os.Exit(1)
	}
}

func probe(bus i2c.Bus, address uint16, n int, period time.Duration) error {
	dev := lis35de.New(bus)
	dev.Address = address

	// Same order as the firmware: configure first, best effort.
	if err := dev.Configure(); err != nil {
		glog.Warningf("configure: %v", err)
	}
	if err := dev.Verify(); err != nil {
		return fmt.Errorf("sensor at 0x%02x: %w", address, err)
	}

	frame := core.NewFrame()
	tick := time.NewTicker(period)
	defer tick.Stop()
	for i := 0; n == 0 || i < n; i++ {
		x, err := dev.ReadRegister(lis35de.RegOutX)
		if err != nil {
			return fmt.Errorf("read X: %w", err)
		}
		y, err := dev.ReadRegister(lis35de.RegOutY)
		if err != nil {
			return fmt.Errorf("read Y: %w", err)
		}
		frame.Put(core.AxisX, x)
		frame.Put(core.AxisY, y)
		fmt.Printf("%s  (%d mg, %d mg)\n", frame.String(), lis35de.MilliG(x), lis35de.MilliG(y))
		<-tick.C
	}
	return nil
}
