package core

// BusEvent is a set of hardware status flags reported by the two-wire bus
// controller. Several flags may be asserted in a single interrupt.
type BusEvent uint8

const (
	EventStartSent       BusEvent = 1 << iota // start or repeated start generated (SB)
	EventAddressAck                           // address sent and acknowledged (ADDR)
	EventByteTransferred                      // byte transfer finished (BTF)
	EventDataReady                            // receive buffer not empty (RXNE)
	EventTxEmpty                              // transmit buffer empty (TXE), status only

	// protocolEvents are the flags that advance a transaction.
	protocolEvents = EventStartSent | EventAddressAck | EventByteTransferred | EventDataReady

	// EventNone means none of the protocol flags are asserted.
	EventNone BusEvent = 0
)

// Has reports whether all flags in mask are asserted.
func (e BusEvent) Has(mask BusEvent) bool {
	return e&mask == mask && mask != 0
}

func (e BusEvent) String() string {
	if e == EventNone {
		return "none"
	}
	s := ""
	add := func(flag BusEvent, name string) {
		if e&flag != 0 {
			if s != "" {
				s += "|"
			}
			s += name
		}
	}
	add(EventStartSent, "SB")
	add(EventAddressAck, "ADDR")
	add(EventByteTransferred, "BTF")
	add(EventDataReady, "RXNE")
	add(EventTxEmpty, "TXE")
	return s
}

// BusController is the register-level view of the I2C peripheral that the
// bus state machine drives. Target code implements it on top of the real
// hardware; tests implement it with a recording fake.
type BusController interface {
	// Status returns the protocol flags currently asserted.
	Status() BusEvent

	// Start requests a start (or repeated start) condition.
	Start()

	// Stop requests a stop condition. Issuing it twice is harmless.
	Stop()

	// WriteData loads a byte into the transmit data register.
	WriteData(b byte)

	// ReadData returns the byte in the receive data register.
	ReadData() byte

	// ClearAddress clears the address-acknowledged flag (status register
	// read sequence on most parts).
	ClearAddress()

	// SetAck enables or disables acknowledge of received bytes.
	SetAck(enabled bool)

	// EnableEvents enables the event and buffer interrupts.
	EnableEvents()

	// DisableEvents disables the event, buffer and error interrupts.
	DisableEvents()
}
