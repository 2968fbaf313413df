// Package lis35de implements a driver for the ST LIS35DE three axis 8-bit
// accelerometer over I2C.
//
// Datasheet: https://www.st.com/resource/en/datasheet/lis35de.pdf
package lis35de

import (
	"errors"
	"time"

	"tinygo.org/x/drivers"
)

// ErrWrongDevice is returned by Verify when another part answers.
var ErrWrongDevice = errors.New("lis35de: unexpected WHO_AM_I value")

// Device wraps an I2C connection to a LIS35DE.
type Device struct {
	bus     drivers.I2C
	Address uint16

	// SettleDelay is the pause between the two control register writes
	// of Configure.
	SettleDelay time.Duration

	x, y, z uint8
}

// New creates a new LIS35DE connection on the default address. The I2C bus
// must already be configured.
func New(bus drivers.I2C) Device {
	return Device{
		bus:         bus,
		Address:     Address,
		SettleDelay: 5 * time.Millisecond,
	}
}

// Configure powers the sensor up and enables the data-ready interrupt. Both
// writes are attempted even if the first fails; the first error is
// returned.
func (d *Device) Configure() error {
	err := d.WriteRegister(RegCtrl1, DefaultCtrl1)
	if d.SettleDelay > 0 {
		time.Sleep(d.SettleDelay)
	}
	if err3 := d.WriteRegister(RegCtrl3, DefaultCtrl3); err == nil {
		err = err3
	}
	return err
}

// Connected returns whether a LIS35DE has been found.
func (d *Device) Connected() bool {
	return d.Verify() == nil
}

// Verify reads WHO_AM_I and reports bus errors or a mismatching part.
func (d *Device) Verify() error {
	id, err := d.ReadRegister(RegWhoAmI)
	if err != nil {
		return err
	}
	if id != WhoAmI {
		return ErrWrongDevice
	}
	return nil
}

// ReadRegister reads one register.
func (d *Device) ReadRegister(reg uint8) (uint8, error) {
	var buf [1]byte
	if err := d.bus.Tx(d.Address, []byte{reg}, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// WriteRegister writes one register.
func (d *Device) WriteRegister(reg, value uint8) error {
	return d.bus.Tx(d.Address, []byte{reg, value}, nil)
}

// Update reads the axis output registers. Only drivers.Acceleration is
// supported; other measurements are ignored.
func (d *Device) Update(which drivers.Measurement) error {
	if which&drivers.Acceleration == 0 {
		return nil
	}
	var err error
	if d.x, err = d.ReadRegister(RegOutX); err != nil {
		return err
	}
	if d.y, err = d.ReadRegister(RegOutY); err != nil {
		return err
	}
	if d.z, err = d.ReadRegister(RegOutZ); err != nil {
		return err
	}
	return nil
}

// RawAcceleration returns the register values read by the last Update.
func (d *Device) RawAcceleration() (x, y, z uint8) {
	return d.x, d.y, d.z
}

// Acceleration returns the last readings in milli-g.
func (d *Device) Acceleration() (x, y, z int32) {
	return MilliG(d.x), MilliG(d.y), MilliG(d.z)
}

// MilliG converts a raw two's complement output register value to milli-g
// at the default full scale.
func MilliG(raw uint8) int32 {
	return int32(int8(raw)) * SensitivityMilliG
}

var _ drivers.Sensor = (*Device)(nil)
