package core

import "accelstream/sensor/lis35de"

// Config selects the sensor and sizes the pipeline.
type Config struct {
	Address       uint8    // 7-bit sensor address
	RegisterX     Register // X axis output register
	RegisterY     Register // Y axis output register
	QueueCapacity int      // frames held while the transmitter is busy
}

// DefaultConfig returns the LIS35DE setup.
func DefaultConfig() Config {
	return Config{
		Address:       lis35de.Address,
		RegisterX:     Register(lis35de.RegOutX),
		RegisterY:     Register(lis35de.RegOutY),
		QueueCapacity: QueueCapacity,
	}
}

// Stats is a snapshot of all pipeline counters.
type Stats struct {
	Bus      BusStats
	Dispatch DispatchStats
	Sampler  SamplerStats
	Pending  int
}

// Pipeline owns every piece of state shared between the interrupt handlers.
//
// Writers per piece of state:
//   - bus transaction state: OnBusEvent/OnBusError, and OnTimer only while idle
//     or when cancelling a stale transaction
//   - latched readings: OnBusEvent
//   - frame buffer: OnTimer
//   - pending queue and in-flight frame: OnTimer and OnTransferComplete, both
//     inside a critical section
type Pipeline struct {
	bus        *BusReader
	dispatcher *Dispatcher
	sampler    *Sampler
}

// NewPipeline wires the pipeline to the bus controller and transfer engine.
// Nothing happens until the target routes interrupts to the On* methods.
func NewPipeline(ctrl BusController, engine TransferEngine, cfg Config) *Pipeline {
	if cfg.QueueCapacity <= 0 {
		cfg.QueueCapacity = QueueCapacity
	}
	bus := NewBusReader(ctrl, cfg.Address, nil)
	dispatcher := NewDispatcher(engine, cfg.QueueCapacity)
	return &Pipeline{
		bus:        bus,
		dispatcher: dispatcher,
		sampler:    NewSampler(bus, dispatcher, cfg.RegisterX, cfg.RegisterY),
	}
}

// OnTimer handles the sampling timer interrupt.
func (p *Pipeline) OnTimer(events TimerEvent) {
	p.sampler.HandleTimer(events)
}

// OnBusEvent handles the bus event interrupt.
func (p *Pipeline) OnBusEvent(events BusEvent) {
	p.bus.HandleEvent(events)
}

// OnBusError handles the bus error interrupt.
func (p *Pipeline) OnBusError() {
	p.bus.HandleError()
}

// OnTransferComplete handles the transfer-complete interrupt.
func (p *Pipeline) OnTransferComplete() {
	p.dispatcher.HandleTransferComplete()
}

// Bus returns the bus reader.
func (p *Pipeline) Bus() *BusReader {
	return p.bus
}

// Sampler returns the sampling scheduler.
func (p *Pipeline) Sampler() *Sampler {
	return p.sampler
}

// Stats returns a snapshot of the counters. Values may be torn if an
// interrupt fires while copying; they are diagnostics only.
func (p *Pipeline) Stats() Stats {
	return Stats{
		Bus:      p.bus.Stats(),
		Dispatch: p.dispatcher.Stats(),
		Sampler:  p.sampler.Stats(),
		Pending:  p.dispatcher.Pending(),
	}
}
