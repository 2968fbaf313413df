package core

import (
	"strings"
	"testing"
)

type testRig struct {
	t      *testing.T
	bus    *fakeBus
	engine *fakeEngine
	p      *Pipeline
}

func newTestRig(t *testing.T, capacity int) *testRig {
	cfg := DefaultConfig()
	cfg.QueueCapacity = capacity
	bus := &fakeBus{}
	engine := &fakeEngine{}
	return &testRig{
		t:      t,
		bus:    bus,
		engine: engine,
		p:      NewPipeline(bus, engine, cfg),
	}
}

// cycle runs one sampling period in hardware order: update, X read, compare,
// Y read.
func (r *testRig) cycle(x, y uint8) {
	r.p.OnTimer(TimerUpdate)
	completeRead(r.bus, r.p.OnBusEvent, x)
	r.p.OnTimer(TimerCompare)
	completeRead(r.bus, r.p.OnBusEvent, y)
}

// drain finishes every outstanding transfer.
func (r *testRig) drain() {
	for r.engine.busy {
		r.engine.finish()
		r.p.OnTransferComplete()
	}
}

func TestPipelineEndToEnd(t *testing.T) {
	rig := newTestRig(t, QueueCapacity)

	rig.cycle(10, 20)
	rig.drain()
	rig.cycle(200, 3)
	rig.drain()
	rig.cycle(0, 0)
	rig.drain()

	out := string(rig.engine.output)
	want := "X010Y020\r\nX200Y003\r\n"
	if !strings.Contains(out, want) {
		t.Fatalf("output %q does not contain %q", out, want)
	}
	if idx := strings.Index(out, want); idx%FramePayloadLen != 0 {
		t.Errorf("frames misaligned in output %q", out)
	}
	if len(rig.engine.frames) != 3 {
		t.Errorf("frames = %q, want one per cycle", rig.engine.frames)
	}
}

func TestPipelineSlowTransmitter(t *testing.T) {
	rig := newTestRig(t, QueueCapacity)

	// transmitter never completes during these cycles
	rig.cycle(1, 2)
	rig.cycle(3, 4)
	rig.cycle(5, 6)
	rig.cycle(7, 8)

	if s := rig.p.Stats(); s.Pending != 3 || s.Dispatch.Sent != 1 {
		t.Fatalf("stats = %+v", s)
	}

	rig.drain()
	want := []string{"X000Y000\r\n", "X001Y002\r\n", "X003Y004\r\n", "X005Y006\r\n"}
	for i, f := range want {
		if rig.engine.frames[i] != f {
			t.Errorf("frame %d = %q, want %q", i, rig.engine.frames[i], f)
		}
	}
}

func TestPipelineOverflowDrops(t *testing.T) {
	rig := newTestRig(t, 2)

	for i := uint8(0); i < 6; i++ {
		rig.cycle(i, i)
	}

	s := rig.p.Stats()
	if s.Dispatch.Dropped != 3 || s.Pending != 2 {
		t.Errorf("stats = %+v, want 3 dropped, 2 pending", s)
	}

	rig.drain()
	// newest frames are the ones lost
	if got := rig.engine.frames; len(got) != 3 || got[2] != "X001Y001\r\n" {
		t.Errorf("frames = %q", got)
	}
}

func TestPipelineFailedReadKeepsStaleValue(t *testing.T) {
	rig := newTestRig(t, QueueCapacity)

	rig.cycle(50, 60)
	rig.drain()

	// X read fails on the address byte, Y read succeeds
	rig.p.OnTimer(TimerUpdate)
	rig.p.OnBusEvent(EventStartSent)
	rig.p.OnBusError()
	rig.p.OnTimer(TimerCompare)
	completeRead(rig.bus, rig.p.OnBusEvent, 61)
	rig.drain()

	rig.cycle(0, 0)
	rig.drain()

	want := []string{"X000Y000\r\n", "X050Y060\r\n", "X050Y061\r\n"}
	for i, f := range want {
		if rig.engine.frames[i] != f {
			t.Errorf("frame %d = %q, want %q", i, rig.engine.frames[i], f)
		}
	}
	if rig.p.Stats().Bus.Errors != 1 {
		t.Errorf("bus errors = %d", rig.p.Stats().Bus.Errors)
	}
}

func TestPipelineRecoversFromDesync(t *testing.T) {
	rig := newTestRig(t, QueueCapacity)

	rig.p.OnTimer(TimerUpdate)
	rig.p.OnBusEvent(EventStartSent)
	rig.p.OnBusEvent(EventDataReady) // garbage
	if !rig.p.Bus().Idle() {
		t.Fatalf("bus not idle after desync")
	}

	rig.p.OnTimer(TimerCompare)
	completeRead(rig.bus, rig.p.OnBusEvent, 9)
	if rig.p.Sampler().Latched(AxisY) != 9 {
		t.Errorf("read after desync did not complete")
	}
	if rig.p.Stats().Bus.Desyncs != 1 {
		t.Errorf("desyncs = %d", rig.p.Stats().Bus.Desyncs)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Address != 0x1C || cfg.RegisterX != 0x29 || cfg.RegisterY != 0x2B || cfg.QueueCapacity != 512 {
		t.Errorf("DefaultConfig() = %+v", cfg)
	}
}
