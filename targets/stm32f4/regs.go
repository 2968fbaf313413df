//go:build stm32f407

package main

import (
	"runtime/volatile"
	"unsafe"
)

// Peripheral base addresses (RM0090 memory map)
const (
	i2c1Base   = 0x40005400
	tim4Base   = 0x40000800
	usart2Base = 0x40004400
	dma1Base   = 0x40026000
	rccBase    = 0x40023800
)

// i2cRegs is the I2C peripheral register block
type i2cRegs struct {
	CR1   volatile.Register32
	CR2   volatile.Register32
	OAR1  volatile.Register32
	OAR2  volatile.Register32
	DR    volatile.Register32
	SR1   volatile.Register32
	SR2   volatile.Register32
	CCR   volatile.Register32
	TRISE volatile.Register32
}

// I2C bits
const (
	i2cCR1_PE    = 1 << 0
	i2cCR1_START = 1 << 8
	i2cCR1_STOP  = 1 << 9
	i2cCR1_ACK   = 1 << 10

	i2cCR2_ITERREN = 1 << 8
	i2cCR2_ITEVTEN = 1 << 9
	i2cCR2_ITBUFEN = 1 << 10

	i2cSR1_SB   = 1 << 0
	i2cSR1_ADDR = 1 << 1
	i2cSR1_BTF  = 1 << 2
	i2cSR1_RXNE = 1 << 6
	i2cSR1_TXE  = 1 << 7
	i2cSR1_BERR = 1 << 8
	i2cSR1_ARLO = 1 << 9
	i2cSR1_AF   = 1 << 10
	i2cSR1_OVR  = 1 << 11

	i2cSR1_Errors = i2cSR1_BERR | i2cSR1_ARLO | i2cSR1_AF | i2cSR1_OVR
)

// timRegs is the general purpose timer register block up to CCR1
type timRegs struct {
	CR1   volatile.Register32
	CR2   volatile.Register32
	SMCR  volatile.Register32
	DIER  volatile.Register32
	SR    volatile.Register32
	EGR   volatile.Register32
	CCMR1 volatile.Register32
	CCMR2 volatile.Register32
	CCER  volatile.Register32
	CNT   volatile.Register32
	PSC   volatile.Register32
	ARR   volatile.Register32
	RCR   volatile.Register32
	CCR1  volatile.Register32
}

// Timer bits
const (
	timCR1_CEN    = 1 << 0
	timDIER_UIE   = 1 << 0
	timDIER_CC1IE = 1 << 1
	timSR_UIF     = 1 << 0
	timSR_CC1IF   = 1 << 1
	timEGR_UG     = 1 << 0
)

// usartRegs is the USART register block
type usartRegs struct {
	SR  volatile.Register32
	DR  volatile.Register32
	BRR volatile.Register32
	CR1 volatile.Register32
	CR2 volatile.Register32
	CR3 volatile.Register32
}

const usartCR3_DMAT = 1 << 7

// dmaStreamRegs is one DMA stream
type dmaStreamRegs struct {
	CR   volatile.Register32
	NDTR volatile.Register32
	PAR  volatile.Register32
	M0AR volatile.Register32
	M1AR volatile.Register32
	FCR  volatile.Register32
}

// dmaRegs is the DMA controller with its eight streams
type dmaRegs struct {
	LISR   volatile.Register32
	HISR   volatile.Register32
	LIFCR  volatile.Register32
	HIFCR  volatile.Register32
	Stream [8]dmaStreamRegs
}

// DMA bits
const (
	dmaSxCR_EN      = 1 << 0
	dmaSxCR_TCIE    = 1 << 4
	dmaSxCR_DIR_M2P = 1 << 6
	dmaSxCR_MINC    = 1 << 10
	dmaSxCR_PL_HIGH = 1 << 17
	dmaSxCR_CHSEL4  = 4 << 25

	// stream 6 flags in HISR / HIFCR
	dmaHISR_TCIF6 = 1 << 21
	dmaHIFCR_All6 = 0x3D << 16
)

// rccRegs covers the clock enable registers used here
type rccRegs struct {
	_       [12]volatile.Register32
	AHB1ENR volatile.Register32 // 0x30
	_       [3]volatile.Register32
	APB1ENR volatile.Register32 // 0x40
}

const (
	rccAHB1ENR_DMA1EN = 1 << 21
	rccAPB1ENR_TIM4EN = 1 << 2
)

var (
	i2c1   = (*i2cRegs)(unsafe.Pointer(uintptr(i2c1Base)))
	tim4   = (*timRegs)(unsafe.Pointer(uintptr(tim4Base)))
	usart2 = (*usartRegs)(unsafe.Pointer(uintptr(usart2Base)))
	dma1   = (*dmaRegs)(unsafe.Pointer(uintptr(dma1Base)))
	rcc    = (*rccRegs)(unsafe.Pointer(uintptr(rccBase)))
)
