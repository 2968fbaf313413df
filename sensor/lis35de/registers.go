package lis35de

// Address is the 7-bit I2C address with SDO tied low.
const Address = 0x1C

// AddressAlt is the 7-bit I2C address with SDO tied high.
const AddressAlt = 0x1D

// Registers
const (
	RegWhoAmI   = 0x0F
	RegCtrl1    = 0x20
	RegCtrl2    = 0x21
	RegCtrl3    = 0x22
	RegStatus   = 0x27
	RegOutX     = 0x29
	RegOutY     = 0x2B
	RegOutZ     = 0x2D
	RegFFWUCfg1 = 0x30
)

// WhoAmI is the identification value of the part.
const WhoAmI = 0x3B

// CTRL_REG1 bits
const (
	Ctrl1DataRate400 = 1 << 7 // 400Hz output data rate, 100Hz when clear
	Ctrl1PowerUp     = 1 << 6
	Ctrl1FullScale8G = 1 << 5
	Ctrl1ZEnable     = 1 << 2
	Ctrl1YEnable     = 1 << 1
	Ctrl1XEnable     = 1 << 0
)

// Values written during startup: powered up at 100Hz with all axes enabled,
// and data-ready routed to the interrupt pin.
const (
	DefaultCtrl1 = Ctrl1PowerUp | Ctrl1ZEnable | Ctrl1YEnable | Ctrl1XEnable
	DefaultCtrl3 = 0x04
)

// SensitivityMilliG is the typical scale at ±2g full scale.
const SensitivityMilliG = 18
