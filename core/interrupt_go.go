//go:build !tinygo

package core

// irqState stands in for the saved interrupt mask on regular Go, where the
// handlers are plain function calls made by tests.
type irqState uintptr

// disableInterrupts opens a critical section (no-op on regular Go).
func disableInterrupts() irqState {
	return 0
}

// restoreInterrupts closes a critical section (no-op on regular Go).
func restoreInterrupts(irqState) {}
