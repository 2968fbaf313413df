// Interrupt-driven single register read over I2C.
// Implements the write-register / repeated-start / read-one-byte sequence as an
// explicit state machine advanced once per bus event interrupt.
package core

import "errors"

// ErrBusBusy is returned by BeginRead when a transaction is already in flight.
var ErrBusBusy = errors.New("bus transaction in progress")

// Register identifies a sensor register.
type Register uint8

// State is the position of the bus transaction state machine.
type State uint8

const (
	StateIdle State = iota
	// start requested, waiting for the start condition to be sent
	StateAwaitingAddressAck
	// device address (write) sent, waiting for it to be acknowledged
	StateAwaitingRegisterWriteComplete
	// register id written, waiting for the byte transfer to finish
	StateAwaitingByteTransferComplete
	// repeated start requested
	StateAwaitingRestartAck
	// device address (read) sent
	StateAwaitingReadAddressAck
	// stop scheduled, waiting for the data byte
	StateAwaitingDataReady

	numStates
)

var stateNames = [numStates]string{
	"idle",
	"awaiting-address-ack",
	"awaiting-register-write-complete",
	"awaiting-byte-transfer-complete",
	"awaiting-restart-ack",
	"awaiting-read-address-ack",
	"awaiting-data-ready",
}

func (s State) String() string {
	if s < numStates {
		return stateNames[s]
	}
	return "state(" + utoa(uint32(s)) + ")"
}

// Action is the hardware operation the state machine performs for a
// (state, event) pair.
type Action uint8

const (
	ActionNone Action = iota
	ActionSendWriteAddress
	ActionSendRegister
	ActionRestart
	ActionSendReadAddress
	ActionStopBeforeData
	ActionLatch
	// ActionRecover forces a stop condition and returns to idle.
	ActionRecover
)

type transition struct {
	expect BusEvent
	action Action
	next   State
}

var transitions = [numStates]transition{
	StateAwaitingAddressAck:            {EventStartSent, ActionSendWriteAddress, StateAwaitingRegisterWriteComplete},
	StateAwaitingRegisterWriteComplete: {EventAddressAck, ActionSendRegister, StateAwaitingByteTransferComplete},
	StateAwaitingByteTransferComplete:  {EventByteTransferred, ActionRestart, StateAwaitingRestartAck},
	StateAwaitingRestartAck:            {EventStartSent, ActionSendReadAddress, StateAwaitingReadAddressAck},
	StateAwaitingReadAddressAck:        {EventAddressAck, ActionStopBeforeData, StateAwaitingDataReady},
	StateAwaitingDataReady:             {EventDataReady, ActionLatch, StateIdle},
}

// Transition returns the action to perform and the next state for the given
// state and asserted event flags. The expected flag wins when several are
// asserted. An interrupt with no protocol flag (for example TXE alone) leaves
// the state unchanged; any other mismatch recovers to idle.
func Transition(s State, events BusEvent) (Action, State) {
	events &= protocolEvents
	if events == EventNone {
		return ActionNone, s
	}
	if s != StateIdle && s < numStates {
		t := transitions[s]
		if events.Has(t.expect) {
			return t.action, t.next
		}
	}
	return ActionRecover, StateIdle
}

// Reading is one raw byte read from a sensor register.
type Reading struct {
	Register Register
	Value    uint8
}

// BusStats counts transaction outcomes.
type BusStats struct {
	Completed uint32
	Desyncs   uint32 // unexpected event for the current state
	Errors    uint32 // error interrupts (NACK, bus error, arbitration lost)
	Aborted   uint32 // stale transactions cancelled by the caller
}

// BusReader runs one register read at a time against a device.
//
// state and target are written by BeginRead only while idle and by the bus
// interrupt handlers otherwise, so they never have two concurrent writers.
type BusReader struct {
	ctrl       BusController
	addr       uint8
	state      State
	target     Register
	last       Reading
	onComplete func(Reading)
	stats      BusStats
}

// NewBusReader creates a reader for the 7-bit device address addr. onComplete
// is called from interrupt context with every successfully latched byte and
// may be nil.
func NewBusReader(ctrl BusController, addr uint8, onComplete func(Reading)) *BusReader {
	return &BusReader{
		ctrl:       ctrl,
		addr:       addr & 0x7F,
		onComplete: onComplete,
	}
}

// OnComplete replaces the completion hook. Call it before sampling starts.
func (r *BusReader) OnComplete(fn func(Reading)) {
	r.onComplete = fn
}

// State returns the current transaction state.
func (r *BusReader) State() State {
	return r.state
}

// Idle reports whether a new transaction may start.
func (r *BusReader) Idle() bool {
	return r.state == StateIdle
}

// Last returns the most recently latched reading.
func (r *BusReader) Last() Reading {
	return r.last
}

// Stats returns a copy of the outcome counters.
func (r *BusReader) Stats() BusStats {
	return r.stats
}

// BeginRead starts a read of reg and returns immediately. The transaction
// then advances through HandleEvent. The result may be ignored; a refused
// start leaves the in-flight transaction untouched.
func (r *BusReader) BeginRead(reg Register) error {
	if r.state != StateIdle {
		return ErrBusBusy
	}
	r.target = reg
	r.state = StateAwaitingAddressAck
	r.ctrl.EnableEvents()
	r.ctrl.Start()
	RecordTrace(TraceBusStart, uint8(reg), 0)
	return nil
}

// HandleEvent is the bus event interrupt entry point.
func (r *BusReader) HandleEvent(events BusEvent) {
	action, next := Transition(r.state, events)
	if action == ActionRecover {
		RecordTrace(TraceBusDesync, uint8(r.state), uint32(events))
		r.stats.Desyncs++
	}
	r.state = next
	r.apply(action)
}

// HandleError is the bus error interrupt entry point. The sample in flight
// is abandoned.
func (r *BusReader) HandleError() {
	r.stats.Errors++
	RecordTrace(TraceBusError, uint8(r.state), 0)
	r.reset()
}

// Abort cancels any in-flight transaction.
func (r *BusReader) Abort() {
	if r.state == StateIdle {
		return
	}
	r.stats.Aborted++
	RecordTrace(TraceBusAbort, uint8(r.state), 0)
	r.reset()
}

func (r *BusReader) reset() {
	r.ctrl.Stop()
	r.ctrl.DisableEvents()
	r.state = StateIdle
}

func (r *BusReader) apply(action Action) {
	switch action {
	case ActionSendWriteAddress:
		r.ctrl.WriteData(r.addr << 1)
	case ActionSendRegister:
		r.ctrl.ClearAddress()
		r.ctrl.WriteData(byte(r.target))
	case ActionRestart:
		r.ctrl.Start()
	case ActionSendReadAddress:
		r.ctrl.WriteData(r.addr<<1 | 1)
		// single byte read: NACK the only byte
		r.ctrl.SetAck(false)
	case ActionStopBeforeData:
		r.ctrl.ClearAddress()
		r.ctrl.Stop()
	case ActionLatch:
		r.last = Reading{Register: r.target, Value: r.ctrl.ReadData()}
		r.ctrl.Stop()
		r.ctrl.DisableEvents()
		r.stats.Completed++
		RecordTrace(TraceBusDone, uint8(r.target), uint32(r.last.Value))
		if r.onComplete != nil {
			r.onComplete(r.last)
		}
	case ActionRecover:
		r.reset()
	}
}
