package core

// TimerEvent is a set of sampling timer interrupt flags.
type TimerEvent uint8

const (
	TimerUpdate  TimerEvent = 1 << iota // period rollover
	TimerCompare                        // compare match inside the period
)

// SamplerStats counts sampling cycles.
type SamplerStats struct {
	Cycles uint32 // frames submitted
}

// Sampler paces two reads per timer period: X on the update event and Y on
// the compare event. It submits one frame per period.
//
// Each field of the frame is rendered right after its read is requested, so
// it carries the value latched by the previous period's read of that axis.
type Sampler struct {
	bus        *BusReader
	dispatcher *Dispatcher
	registers  [2]Register
	latched    [2]uint8 // written by the bus interrupt, read by the timer interrupt
	frame      Frame
	stats      SamplerStats
}

// NewSampler creates a sampler reading regX and regY through bus and
// registers itself as the bus completion hook.
func NewSampler(bus *BusReader, d *Dispatcher, regX, regY Register) *Sampler {
	s := &Sampler{
		bus:        bus,
		dispatcher: d,
		registers:  [2]Register{regX, regY},
		frame:      NewFrame(),
	}
	bus.OnComplete(s.Latch)
	return s
}

// HandleTimer is the timer interrupt entry point. Update is handled before
// compare when both are asserted.
func (s *Sampler) HandleTimer(events TimerEvent) {
	if events&TimerUpdate != 0 {
		tickCycle()
		s.sample(AxisX)
	}
	if events&TimerCompare != 0 {
		s.sample(AxisY)
		s.dispatcher.Submit(&s.frame)
		s.stats.Cycles++
	}
}

func (s *Sampler) sample(axis Axis) {
	// a transaction still running at a cycle boundary will never finish
	if !s.bus.Idle() {
		s.bus.Abort()
	}
	s.bus.BeginRead(s.registers[axis])
	s.frame.Put(axis, s.latched[axis])
}

// Latch stores a completed reading for the axis it belongs to. Readings of
// other registers are ignored.
func (s *Sampler) Latch(r Reading) {
	switch r.Register {
	case s.registers[AxisX]:
		s.latched[AxisX] = r.Value
	case s.registers[AxisY]:
		s.latched[AxisY] = r.Value
	}
}

// Latched returns the last completed value of axis.
func (s *Sampler) Latched(axis Axis) uint8 {
	return s.latched[axis]
}

// Frame returns a copy of the live frame.
func (s *Sampler) Frame() Frame {
	return s.frame
}

// Stats returns a copy of the sampling counters.
func (s *Sampler) Stats() SamplerStats {
	return s.stats
}
