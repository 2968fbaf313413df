//go:build stm32f407

package main

import (
	"unsafe"

	"accelstream/core"
)

// dmaStream is the USART2_TX stream (DMA1 stream 6, channel 4)
const dmaStream = 6

// DMAEngine implements core.TransferEngine on DMA1 stream 6 feeding the
// USART2 data register.
type DMAEngine struct {
	stream *dmaStreamRegs
}

// NewDMAEngine enables the DMA clock and prepares the stream for
// memory-to-peripheral byte transfers with a completion interrupt.
func NewDMAEngine() *DMAEngine {
	rcc.AHB1ENR.SetBits(rccAHB1ENR_DMA1EN)
	s := &dma1.Stream[dmaStream]
	s.CR.Set(0)
	for s.CR.HasBits(dmaSxCR_EN) {
	}
	s.CR.Set(dmaSxCR_CHSEL4 | dmaSxCR_PL_HIGH | dmaSxCR_MINC | dmaSxCR_DIR_M2P | dmaSxCR_TCIE)
	s.PAR.Set(uint32(uintptr(unsafe.Pointer(&usart2.DR))))
	dma1.HIFCR.Set(dmaHIFCR_All6)
	usart2.CR3.SetBits(usartCR3_DMAT)
	return &DMAEngine{stream: s}
}

// Busy implements core.TransferEngine.
func (e *DMAEngine) Busy() bool {
	return e.stream.CR.HasBits(dmaSxCR_EN)
}

// CompletePending implements core.TransferEngine.
func (e *DMAEngine) CompletePending() bool {
	return dma1.HISR.HasBits(dmaHISR_TCIF6)
}

// ClearComplete implements core.TransferEngine.
func (e *DMAEngine) ClearComplete() {
	dma1.HIFCR.Set(dmaHISR_TCIF6)
}

// Start implements core.TransferEngine. buf must stay untouched until the
// completion interrupt.
func (e *DMAEngine) Start(buf []byte) {
	if len(buf) == 0 {
		return
	}
	e.stream.M0AR.Set(uint32(uintptr(unsafe.Pointer(&buf[0]))))
	e.stream.NDTR.Set(uint32(len(buf)))
	e.stream.CR.SetBits(dmaSxCR_EN)
}

var _ core.TransferEngine = (*DMAEngine)(nil)
