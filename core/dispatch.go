package core

// DispatchStats counts what happened to submitted frames.
type DispatchStats struct {
	Sent    uint32 // transfers started
	Queued  uint32
	Dropped uint32 // queue full
}

// Dispatcher hands frames to the transfer engine, queueing them while it is
// busy.
//
// Frames are copied on submission, so the caller may keep reusing its
// buffer. inflight is the only memory the engine reads from; it is written
// only while no transfer is running.
type Dispatcher struct {
	engine   TransferEngine
	queue    *Queue[Frame]
	inflight Frame
	stats    DispatchStats
}

// NewDispatcher creates a dispatcher with a pending queue of the given
// capacity.
func NewDispatcher(engine TransferEngine, capacity int) *Dispatcher {
	return &Dispatcher{
		engine: engine,
		queue:  NewQueue[Frame](capacity),
	}
}

// Submit sends f now if the engine is idle, otherwise queues it. When the
// queue is full the frame is dropped.
func (d *Dispatcher) Submit(f *Frame) {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	if !d.engine.Busy() && !d.engine.CompletePending() {
		d.start(f)
		return
	}
	if d.queue.Enqueue(*f) {
		d.stats.Queued++
		RecordTrace(TraceFrameQueued, 0, uint32(d.queue.Len()))
		return
	}
	d.stats.Dropped++
	RecordTrace(TraceFrameDropped, 0, d.stats.Dropped)
}

// HandleTransferComplete is the transfer-complete interrupt entry point.
func (d *Dispatcher) HandleTransferComplete() {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	if !d.engine.CompletePending() {
		return
	}
	d.engine.ClearComplete()
	if !d.queue.Empty() {
		f := d.queue.Dequeue()
		d.start(&f)
	}
}

func (d *Dispatcher) start(f *Frame) {
	d.inflight = *f
	d.engine.Start(d.inflight.Payload())
	d.stats.Sent++
	RecordTrace(TraceFrameSent, 0, d.stats.Sent)
}

// Pending returns the number of queued frames.
func (d *Dispatcher) Pending() int {
	return d.queue.Len()
}

// Stats returns a copy of the dispatch counters.
func (d *Dispatcher) Stats() DispatchStats {
	return d.stats
}
