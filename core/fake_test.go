package core

import "strings"

// fakeBus records every controller operation. Status returns whatever the
// test put in status.
type fakeBus struct {
	ops           []string
	status        BusEvent
	data          byte
	ack           bool
	eventsEnabled bool
	stops         int

	// react, when set, updates status after each operation
	react func(op string)
}

func (b *fakeBus) record(op string) {
	b.ops = append(b.ops, op)
	if b.react != nil {
		b.react(op)
	}
}

func (b *fakeBus) Status() BusEvent { return b.status }
func (b *fakeBus) Start()           { b.record("start") }
func (b *fakeBus) Stop()            { b.stops++; b.record("stop") }
func (b *fakeBus) WriteData(v byte) { b.record("write " + hex8(v)) }
func (b *fakeBus) ReadData() byte   { b.record("read"); return b.data }
func (b *fakeBus) ClearAddress()    { b.record("clear-addr") }
func (b *fakeBus) EnableEvents()    { b.eventsEnabled = true; b.record("irq-on") }
func (b *fakeBus) DisableEvents()   { b.eventsEnabled = false; b.record("irq-off") }

func (b *fakeBus) SetAck(enabled bool) {
	b.ack = enabled
	if enabled {
		b.record("ack-on")
	} else {
		b.record("ack-off")
	}
}

func (b *fakeBus) reset() {
	b.ops = nil
	b.stops = 0
}

func (b *fakeBus) String() string {
	return strings.Join(b.ops, ", ")
}

// canonicalRead is the event sequence of one successful register read.
var canonicalRead = []BusEvent{
	EventStartSent,
	EventAddressAck,
	EventByteTransferred,
	EventStartSent,
	EventAddressAck,
	EventDataReady,
}

// completeRead feeds the canonical sequence to handle with value in the
// receive register.
func completeRead(bus *fakeBus, handle func(BusEvent), value uint8) {
	bus.data = value
	for _, ev := range canonicalRead {
		handle(ev)
	}
}

// fakeEngine models the DMA stream. Bytes are captured when the transfer
// completes, so a buffer modified mid-transfer shows up in the output.
type fakeEngine struct {
	busy     bool
	complete bool
	current  []byte
	starts   int
	output   []byte
	frames   []string
}

func (e *fakeEngine) Busy() bool            { return e.busy }
func (e *fakeEngine) CompletePending() bool { return e.complete }
func (e *fakeEngine) ClearComplete()        { e.complete = false }

func (e *fakeEngine) Start(buf []byte) {
	if e.busy {
		panic("transfer started while busy")
	}
	e.busy = true
	e.current = buf
	e.starts++
}

// finish ends the running transfer and raises the completion flag.
func (e *fakeEngine) finish() {
	if !e.busy {
		return
	}
	e.output = append(e.output, e.current...)
	e.frames = append(e.frames, string(e.current))
	e.busy = false
	e.complete = true
	e.current = nil
}
