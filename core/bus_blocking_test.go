package core

import (
	"reflect"
	"strings"
	"testing"

	"accelstream/sensor/lis35de"
	"tinygo.org/x/drivers"
)

// respondingBus raises the flag the blocking bus waits for after each
// operation, like a present and healthy sensor would.
func respondingBus() *fakeBus {
	bus := &fakeBus{}
	addressPhase := false
	bus.react = func(op string) {
		switch {
		case op == "start":
			bus.status = EventStartSent
			addressPhase = true
		case strings.HasPrefix(op, "write") && addressPhase:
			bus.status = EventAddressAck
			addressPhase = false
		case op == "clear-addr":
			bus.status = EventTxEmpty
		case strings.HasPrefix(op, "write"):
			bus.status = EventTxEmpty | EventByteTransferred
		case op == "stop":
			bus.status = EventNone
		}
	}
	return bus
}

func TestWaitForTimesOut(t *testing.T) {
	bus := &fakeBus{status: EventTxEmpty}

	if WaitFor(bus, EventStartSent, 100) {
		t.Fatal("WaitFor succeeded without the flag")
	}
	if bus.stops != 1 {
		t.Errorf("stops = %d, want a forced stop", bus.stops)
	}
}

func TestWaitForSeesFlag(t *testing.T) {
	bus := &fakeBus{status: EventStartSent | EventTxEmpty}

	if !WaitFor(bus, EventStartSent, 1) {
		t.Fatal("WaitFor missed an asserted flag")
	}
	if bus.stops != 0 {
		t.Error("WaitFor stopped the bus on success")
	}
}

func TestBlockingBusWrite(t *testing.T) {
	bus := respondingBus()
	bb := NewBlockingBus(bus)

	if err := bb.Tx(0x1C, []byte{0x20, 0x47}, nil); err != nil {
		t.Fatalf("Tx failed: %v", err)
	}

	want := []string{"start", "write 0x38", "clear-addr", "write 0x20", "write 0x47", "stop"}
	if !reflect.DeepEqual(bus.ops, want) {
		t.Errorf("ops:\n got %v\nwant %v", bus.ops, want)
	}
}

func TestBlockingBusTimeout(t *testing.T) {
	bus := respondingBus()
	react := bus.react
	// the device never acknowledges its address
	bus.react = func(op string) {
		react(op)
		if bus.status == EventAddressAck {
			bus.status = EventNone
		}
	}
	bb := NewBlockingBus(bus)
	bb.Limit = 10

	if err := bb.Tx(0x1C, []byte{0x20, 0x47}, nil); err != ErrHandshakeTimeout {
		t.Fatalf("Tx error = %v, want ErrHandshakeTimeout", err)
	}
	if bus.stops != 1 {
		t.Errorf("stops = %d, want 1", bus.stops)
	}
}

func TestBlockingBusRejectsReads(t *testing.T) {
	bb := NewBlockingBus(&fakeBus{})

	if err := bb.Tx(0x1C, []byte{0x0F}, make([]byte, 1)); err != ErrUnsupportedTx {
		t.Errorf("read Tx error = %v", err)
	}
	if err := bb.Tx(0x1C, nil, nil); err != ErrUnsupportedTx {
		t.Errorf("empty Tx error = %v", err)
	}
}

func TestSensorHandshakeOverBlockingBus(t *testing.T) {
	bus := respondingBus()
	var i2c drivers.I2C = NewBlockingBus(bus)

	sensor := lis35de.New(i2c)
	sensor.SettleDelay = 0
	if err := sensor.Configure(); err != nil {
		t.Fatalf("Configure failed: %v", err)
	}

	writes := []string{}
	for _, op := range bus.ops {
		if strings.HasPrefix(op, "write") {
			writes = append(writes, op)
		}
	}
	want := []string{"write 0x38", "write 0x20", "write 0x47", "write 0x38", "write 0x22", "write 0x04"}
	if !reflect.DeepEqual(writes, want) {
		t.Errorf("writes = %v, want %v", writes, want)
	}
}

func TestSensorHandshakeAbsentSensor(t *testing.T) {
	bus := &fakeBus{} // nothing ever answers
	bb := NewBlockingBus(bus)
	bb.Limit = 10

	sensor := lis35de.New(bb)
	sensor.SettleDelay = 0
	if err := sensor.Configure(); err != ErrHandshakeTimeout {
		t.Errorf("Configure error = %v, want ErrHandshakeTimeout", err)
	}
	// one forced stop per register write, both attempted
	if bus.stops != 2 {
		t.Errorf("stops = %d, want 2", bus.stops)
	}
}
