package core

// TimerClockHz is the sampling timer input clock (internal 16MHz oscillator).
const TimerClockHz = 16000000

// TimerConfig holds the register values of the sampling timer.
type TimerConfig struct {
	ClockHz   uint32
	Prescaler uint16 // counter clock = ClockHz / (Prescaler+1)
	Reload    uint16 // period = Reload+1 counter ticks
	Compare   uint16 // compare match position inside the period
}

// DefaultTimerConfig returns the ~25ms period with the Y read at half period.
func DefaultTimerConfig() TimerConfig {
	return TimerConfig{
		ClockHz:   TimerClockHz,
		Prescaler: 400,
		Reload:    1000,
		Compare:   500,
	}
}

// PeriodUS returns the sampling period in microseconds.
func (c TimerConfig) PeriodUS() uint32 {
	return c.ticksToUS(uint64(c.Reload) + 1)
}

// CompareUS returns the delay from the update event to the compare event.
func (c TimerConfig) CompareUS() uint32 {
	return c.ticksToUS(uint64(c.Compare))
}

func (c TimerConfig) ticksToUS(ticks uint64) uint32 {
	if c.ClockHz == 0 {
		return 0
	}
	return uint32(ticks * (uint64(c.Prescaler) + 1) * 1000000 / uint64(c.ClockHz))
}

// ForClock returns c retargeted to a timer input clock of clockHz, keeping
// the counter tick rate as close as the integer prescaler allows.
func (c TimerConfig) ForClock(clockHz uint32) TimerConfig {
	if c.ClockHz == 0 || clockHz == c.ClockHz {
		c.ClockHz = clockHz
		return c
	}
	div := ((uint64(c.Prescaler)+1)*uint64(clockHz) + uint64(c.ClockHz)/2) / uint64(c.ClockHz)
	if div < 1 {
		div = 1
	}
	if div > 1<<16 {
		div = 1 << 16
	}
	c.ClockHz = clockHz
	c.Prescaler = uint16(div - 1)
	return c
}

// Valid reports whether the compare event falls strictly inside the period,
// which the X-before-Y ordering depends on.
func (c TimerConfig) Valid() bool {
	return c.ClockHz > 0 && c.Reload > 0 && c.Compare > 0 && c.Compare <= c.Reload
}

// GetTime returns the number of sampling periods since boot. It stamps trace
// events.
func GetTime() uint32 {
	return getCycleCount()
}

// SetTime overrides the period counter (tests and target integration).
func SetTime(cycles uint32) {
	setCycleCount(cycles)
}
