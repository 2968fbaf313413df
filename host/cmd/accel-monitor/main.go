// accel-monitor reads the accelerometer frame stream from a serial port and
// forwards every sample to stdout, an MQTT broker and/or a Modbus server.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang/glog"

	"accelstream/host/config"
	"accelstream/host/monitor"
	"accelstream/host/serial"
	"accelstream/host/sink"
)

var (
	configPath = flag.String("config", "accel-monitor.yaml", "YAML configuration file")
	device     = flag.String("device", "", "Serial device path (overrides config)")
	baud       = flag.Int("baud", 0, "Baud rate (overrides config)")
	mqttBroker = flag.String("mqtt", "", "MQTT broker URL; enables MQTT publishing")
	milliG     = flag.Bool("milli-g", false, "Print samples in milli-g")
	listPorts  = flag.Bool("list", false, "List serial ports and exit")
)

func main() {
	flag.Parse()
	defer glog.Flush()

	if *listPorts {
		ports, err := serial.Ports()
		if err != nil {
			glog.Exitf("%v", err)
		}
		for _, p := range ports {
			fmt.Println(p)
		}
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		glog.Exitf("%v", err)
	}
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		glog.Exitf("invalid configuration: %v", err)
	}

	sinks, err := openSinks(cfg)
	if err != nil {
		glog.Exitf("%v", err)
	}
	defer sinks.Close()

	port, err := serial.Open(&serial.Config{
		Device:      cfg.Serial.Port,
		Baud:        cfg.Serial.Baud,
		ReadTimeout: int(cfg.Serial.ReadTimeout / time.Millisecond),
	})
	if err != nil {
		glog.Exitf("%v", err)
	}
	if err := port.Flush(); err != nil {
		glog.Warningf("flush %s: %v", cfg.Serial.Port, err)
	}
	glog.Infof("reading frames from %s at %d baud", cfg.Serial.Port, cfg.Serial.Baud)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		glog.Info("stop requested")
		port.Close()
	}()

	mon := monitor.New(port, sinks, cfg.Decoder.BufferSize)
	runErr := mon.Run(ctx)
	st := mon.Stats()
	glog.Infof("samples=%d discarded=%d overflow=%d sink_errors=%d",
		st.Samples, st.Decoder.Discarded, st.Decoder.Overflow, st.SinkErrors)
	if runErr != nil {
		glog.Errorf("%v", runErr)
		glog.Flush()
		os.Exit(1)
	}
}

func applyFlags(cfg *config.Config) {
	if *device != "" {
		cfg.Serial.Port = *device
	}
	if *baud != 0 {
		cfg.Serial.Baud = *baud
	}
	if *mqttBroker != "" {
		cfg.MQTT.Enabled = true
		cfg.MQTT.Broker = *mqttBroker
	}
	if *milliG {
		cfg.Stdout.MilliG = true
	}
}

func openSinks(cfg *config.Config) (sink.Multi, error) {
	var sinks sink.Multi
	if cfg.Stdout.Enabled {
		sinks = append(sinks, sink.NewWriter(os.Stdout, cfg.Stdout.MilliG))
	}
	if cfg.MQTT.Enabled {
		m, err := sink.DialMQTT(cfg.MQTT)
		if err != nil {
			sinks.Close()
			return nil, err
		}
		sinks = append(sinks, m)
	}
	if cfg.Modbus.Enabled {
		m, err := sink.DialModbus(cfg.Modbus)
		if err != nil {
			sinks.Close()
			return nil, err
		}
		sinks = append(sinks, m)
	}
	return sinks, nil
}
