//go:build stm32f407

package main

import (
	"machine"

	"accelstream/core"
)

// i2cSpeedHz is the standard mode bus clock the sensor is wired for.
const i2cSpeedHz = 100000

// I2CController implements core.BusController on the I2C1 registers.
// machine.I2C0 (I2C1 on this board) does pin muxing and clock setup.
type I2CController struct {
	regs *i2cRegs
}

// NewI2CController configures I2C1 on PB8 (SCL) / PB9 (SDA). The
// controller is returned even when configuration fails.
func NewI2CController() (*I2CController, error) {
	err := machine.I2C0.Configure(machine.I2CConfig{
		Frequency: i2cSpeedHz,
		SCL:       machine.PB8,
		SDA:       machine.PB9,
	})
	c := &I2CController{regs: i2c1}
	c.DisableEvents()
	return c, err
}

// Status implements core.BusController.
func (c *I2CController) Status() core.BusEvent {
	sr1 := c.regs.SR1.Get()
	var ev core.BusEvent
	if sr1&i2cSR1_SB != 0 {
		ev |= core.EventStartSent
	}
	if sr1&i2cSR1_ADDR != 0 {
		ev |= core.EventAddressAck
	}
	if sr1&i2cSR1_BTF != 0 {
		ev |= core.EventByteTransferred
	}
	if sr1&i2cSR1_RXNE != 0 {
		ev |= core.EventDataReady
	}
	if sr1&i2cSR1_TXE != 0 {
		ev |= core.EventTxEmpty
	}
	return ev
}

// ClearErrors clears the NACK, bus error, arbitration lost and overrun
// flags so the error interrupt does not fire again.
func (c *I2CController) ClearErrors() {
	c.regs.SR1.ClearBits(i2cSR1_Errors)
}

// Start implements core.BusController.
func (c *I2CController) Start() {
	c.regs.CR1.SetBits(i2cCR1_START)
}

// Stop implements core.BusController.
func (c *I2CController) Stop() {
	c.regs.CR1.SetBits(i2cCR1_STOP)
}

// WriteData implements core.BusController.
func (c *I2CController) WriteData(b byte) {
	c.regs.DR.Set(uint32(b))
}

// ReadData implements core.BusController.
func (c *I2CController) ReadData() byte {
	return byte(c.regs.DR.Get())
}

// ClearAddress implements core.BusController. ADDR clears on an SR1 read
// followed by an SR2 read.
func (c *I2CController) ClearAddress() {
	c.regs.SR1.Get()
	c.regs.SR2.Get()
}

// SetAck implements core.BusController.
func (c *I2CController) SetAck(enabled bool) {
	if enabled {
		c.regs.CR1.SetBits(i2cCR1_ACK)
	} else {
		c.regs.CR1.ClearBits(i2cCR1_ACK)
	}
}

// EnableEvents implements core.BusController.
func (c *I2CController) EnableEvents() {
	c.regs.CR2.SetBits(i2cCR2_ITEVTEN | i2cCR2_ITBUFEN | i2cCR2_ITERREN)
}

// DisableEvents implements core.BusController.
func (c *I2CController) DisableEvents() {
	c.regs.CR2.ClearBits(i2cCR2_ITEVTEN | i2cCR2_ITBUFEN | i2cCR2_ITERREN)
}

var _ core.BusController = (*I2CController)(nil)
