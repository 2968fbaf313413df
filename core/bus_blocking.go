package core

import "errors"

// WaitLimit is the busy-wait ceiling used during startup, in status polls.
const WaitLimit = 1000000

var (
	// ErrHandshakeTimeout is returned when an expected bus flag never
	// asserts. A stop condition has already been issued.
	ErrHandshakeTimeout = errors.New("bus flag wait timed out")

	// ErrUnsupportedTx is returned for transactions the blocking bus does
	// not implement.
	ErrUnsupportedTx = errors.New("blocking bus supports register writes only")
)

// WaitFor polls ctrl until all flags in event are asserted. After limit
// polls it forces a stop condition and returns false.
func WaitFor(ctrl BusController, event BusEvent, limit int) bool {
	for i := 0; i < limit; i++ {
		if ctrl.Status().Has(event) {
			return true
		}
	}
	ctrl.Stop()
	return false
}

// BlockingBus performs polled write transactions on the same controller the
// interrupt-driven reader uses. It exists for the one-time sensor setup,
// before the bus interrupts are enabled, and implements drivers.I2C so
// device drivers can be layered on top.
type BlockingBus struct {
	ctrl  BusController
	Limit int // polls per flag, WaitLimit by default
}

// NewBlockingBus wraps ctrl.
func NewBlockingBus(ctrl BusController) *BlockingBus {
	return &BlockingBus{ctrl: ctrl, Limit: WaitLimit}
}

// Tx writes w to the device at addr. Reads are not supported. The error may
// be ignored by callers that treat setup as best effort.
func (b *BlockingBus) Tx(addr uint16, w, r []byte) error {
	if len(r) != 0 || len(w) == 0 {
		return ErrUnsupportedTx
	}

	b.ctrl.Start()
	if !WaitFor(b.ctrl, EventStartSent, b.Limit) {
		return ErrHandshakeTimeout
	}
	b.ctrl.WriteData(byte(addr&0x7F) << 1)
	if !WaitFor(b.ctrl, EventAddressAck, b.Limit) {
		return ErrHandshakeTimeout
	}
	b.ctrl.ClearAddress()

	b.ctrl.WriteData(w[0])
	for _, c := range w[1:] {
		if !WaitFor(b.ctrl, EventTxEmpty, b.Limit) {
			return ErrHandshakeTimeout
		}
		b.ctrl.WriteData(c)
	}
	if !WaitFor(b.ctrl, EventByteTransferred, b.Limit) {
		return ErrHandshakeTimeout
	}
	b.ctrl.Stop()
	return nil
}
