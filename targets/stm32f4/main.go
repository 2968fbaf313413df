//go:build stm32f407

package main

import (
	"device/stm32"
	"machine"
	"runtime/interrupt"
	"time"

	"accelstream/core"
	"accelstream/sensor/lis35de"
)

// baudRate is the frame stream rate expected by accel-monitor.
const baudRate = 9600

var (
	pipeline *core.Pipeline
	bus      *I2CController
	engine   *DMAEngine
)

func main() {
	// USART2 on PA2/PA3. The debug writer uses it blocking until DMA takes
	// the port over.
	machine.Serial.Configure(machine.UARTConfig{
		BaudRate: baudRate,
		TX:       machine.PA2,
		RX:       machine.PA3,
	})
	core.SetDebugWriter(func(msg string) {
		machine.Serial.Write([]byte(msg))
		machine.Serial.Write([]byte("\r\n"))
	})
	core.SetDebugEnabled(true)

	var err error
	bus, err = NewI2CController()
	if err != nil {
		core.DebugPrintln("[INIT] i2c configure failed: " + err.Error())
	}

	// Sensor setup is best effort: sampling starts whatever the outcome so
	// a late sensor still shows up in the stream.
	sensor := lis35de.New(core.NewBlockingBus(bus))
	if err := sensor.Configure(); err != nil {
		core.DebugPrintln("[INIT] sensor configure: " + err.Error())
	} else {
		core.DebugPrintln("[INIT] sensor configured")
	}

	timerCfg := core.DefaultTimerConfig().ForClock(timerClockHz)
	ConfigureSamplingTimer(timerCfg)

	engine = NewDMAEngine()
	pipeline = core.NewPipeline(bus, engine, core.DefaultConfig())

	core.DebugPrintln("[INIT] streaming")
	core.SetDebugEnabled(false)

	registerInterrupts()
	StartSamplingTimer()

	led := machine.LED
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})
	button := machine.BUTTON
	button.Configure(machine.PinConfig{Mode: machine.PinInputPulldown})

	var lastCycles uint32
	for {
		time.Sleep(500 * time.Millisecond)
		if button.Get() {
			dumpTrace()
		}
		st := pipeline.Stats()
		// heartbeat while frames flow, solid on once any frame was dropped
		if st.Dispatch.Dropped > 0 {
			led.High()
		} else if st.Sampler.Cycles != lastCycles {
			led.Set(!led.Get())
		}
		lastCycles = st.Sampler.Cycles
	}
}

func registerInterrupts() {
	// bus events must preempt the timer so a read started on the update
	// event can progress before the compare event
	i2cEv := interrupt.New(stm32.IRQ_I2C1_EV, handleI2CEvent)
	i2cEv.SetPriority(0x40)
	i2cEv.Enable()

	i2cEr := interrupt.New(stm32.IRQ_I2C1_ER, handleI2CError)
	i2cEr.SetPriority(0x40)
	i2cEr.Enable()

	dma := interrupt.New(stm32.IRQ_DMA1_Stream6, handleDMA)
	dma.SetPriority(0x80)
	dma.Enable()

	tim := interrupt.New(stm32.IRQ_TIM4, handleTimer)
	tim.SetPriority(0xC0)
	tim.Enable()
}

func handleTimer(interrupt.Interrupt) {
	pipeline.OnTimer(takeTimerEvents())
}

func handleI2CEvent(interrupt.Interrupt) {
	pipeline.OnBusEvent(bus.Status())
}

func handleI2CError(interrupt.Interrupt) {
	bus.ClearErrors()
	pipeline.OnBusError()
}

func handleDMA(interrupt.Interrupt) {
	pipeline.OnTransferComplete()
}

// dumpTrace pauses sampling, waits for the queued frames to drain and writes
// the trace ring as text lines into the stream. accel-monitor skips them
// while resynchronising.
func dumpTrace() {
	StopSamplingTimer()
	for engine.Busy() || pipeline.Stats().Pending > 0 {
		time.Sleep(time.Millisecond)
	}

	core.DumpTrace()
	core.ClearTrace()

	StartSamplingTimer()
}
