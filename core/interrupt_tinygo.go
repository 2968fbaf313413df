//go:build tinygo

package core

import "runtime/interrupt"

type irqState = interrupt.State

// disableInterrupts masks all interrupts and returns the previous mask. The
// dispatcher uses it because the timer and transfer-complete interrupts may
// run at different priorities.
func disableInterrupts() irqState {
	return interrupt.Disable()
}

// restoreInterrupts restores a mask returned by disableInterrupts.
func restoreInterrupts(state irqState) {
	interrupt.Restore(state)
}
