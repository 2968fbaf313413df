//go:build stm32f407

package main

import (
	"accelstream/core"
)

// APB1 timer clock with the runtime's 168MHz clock tree (PCLK1 42MHz, x2 for
// timers). The TinyGo runtime owns TIM3 for sleeping, so sampling runs on TIM4.
const timerClockHz = 84000000

// ConfigureSamplingTimer programs TIM4 from cfg and enables the update and
// compare interrupts. The counter is left stopped.
func ConfigureSamplingTimer(cfg core.TimerConfig) {
	rcc.APB1ENR.SetBits(rccAPB1ENR_TIM4EN)

	tim4.CR1.Set(0)
	tim4.PSC.Set(uint32(cfg.Prescaler))
	tim4.ARR.Set(uint32(cfg.Reload))
	tim4.CCR1.Set(uint32(cfg.Compare))
	// load PSC/ARR now, then drop the flag the forced update raised
	tim4.EGR.Set(timEGR_UG)
	tim4.SR.Set(^uint32(timSR_UIF | timSR_CC1IF))
	tim4.DIER.Set(timDIER_UIE | timDIER_CC1IE)
}

// StartSamplingTimer starts counting.
func StartSamplingTimer() {
	tim4.CR1.SetBits(timCR1_CEN)
}

// StopSamplingTimer stops counting. A pending flag is still serviced.
func StopSamplingTimer() {
	tim4.CR1.ClearBits(timCR1_CEN)
}

// takeTimerEvents returns the enabled pending flags and clears them.
func takeTimerEvents() core.TimerEvent {
	status := tim4.SR.Get() & tim4.DIER.Get()
	var ev core.TimerEvent
	if status&timSR_UIF != 0 {
		ev |= core.TimerUpdate
	}
	if status&timSR_CC1IF != 0 {
		ev |= core.TimerCompare
	}
	// rc_w0: writing 0 clears only the flags we handled
	tim4.SR.Set(^status)
	return ev
}
