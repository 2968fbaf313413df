//go:build !tinygo

package core

var cycleCount uint32

func getCycleCount() uint32 {
	return cycleCount
}

func setCycleCount(n uint32) {
	cycleCount = n
}

func tickCycle() {
	cycleCount++
}
