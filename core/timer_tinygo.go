//go:build tinygo

package core

import "sync/atomic"

// written by the timer interrupt, read from any context
var cycleCount uint32

func getCycleCount() uint32 {
	return atomic.LoadUint32(&cycleCount)
}

func setCycleCount(n uint32) {
	atomic.StoreUint32(&cycleCount, n)
}

func tickCycle() {
	atomic.AddUint32(&cycleCount, 1)
}
