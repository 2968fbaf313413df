package core

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

// TraceEvent captures a pipeline event for post-mortem analysis
type TraceEvent struct {
	Kind  TraceKind
	Arg   uint8  // register, bus state, ...
	Cycle uint32 // sampling period when the event happened
	Value uint32 // context-dependent value
}

// TraceKind identifies what a TraceEvent records.
type TraceKind uint8

// Trace kinds
const (
	TraceBusStart     TraceKind = iota + 1 // read started, Arg=register
	TraceBusDone                           // byte latched, Arg=register, Value=byte
	TraceBusDesync                         // unexpected event, Arg=state, Value=event flags
	TraceBusError                          // error interrupt, Arg=state
	TraceBusAbort                          // stale transaction cancelled, Arg=state
	TraceFrameSent                         // transfer started, Value=total sent
	TraceFrameQueued                       // Value=queue length
	TraceFrameDropped                      // Value=total dropped
)

var traceNames = [...]string{
	TraceBusStart:     "BUS_START",
	TraceBusDone:      "BUS_DONE",
	TraceBusDesync:    "BUS_DESYNC!",
	TraceBusError:     "BUS_ERROR!",
	TraceBusAbort:     "BUS_ABORT",
	TraceFrameSent:    "FRAME_SENT",
	TraceFrameQueued:  "FRAME_QUEUED",
	TraceFrameDropped: "FRAME_DROPPED!",
}

func (k TraceKind) String() string {
	if int(k) < len(traceNames) && traceNames[k] != "" {
		return traceNames[k]
	}
	return "UNKNOWN"
}

const (
	TraceRingSize = 32 // Keep last 32 events for post-mortem
)

var (
	// debugPrintln is the global debug print function (can be set by platform code)
	debugPrintln DebugWriter = func(s string) {} // No-op by default

	// debugEnabled controls whether debug output is active
	debugEnabled bool = false

	// Trace ring buffer (non-blocking, for post-mortem)
	traceRing     [TraceRingSize]TraceEvent
	traceRingHead uint8
)

// SetDebugWriter sets the platform-specific debug output function
// This allows platforms to redirect debug output to UART, semihosting, etc.
func SetDebugWriter(writer DebugWriter) {
	debugPrintln = writer
}

// SetDebugEnabled enables or disables debug output
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// DebugPrintln writes a debug message using the platform-specific writer.
// Never call it from an interrupt handler; record a trace event instead.
func DebugPrintln(msg string) {
	if debugEnabled && debugPrintln != nil {
		debugPrintln(msg)
	}
}

// RecordTrace captures an event in the trace ring. Safe from interrupt
// context: no allocation, no blocking.
func RecordTrace(kind TraceKind, arg uint8, value uint32) {
	idx := traceRingHead
	traceRing[idx] = TraceEvent{
		Kind:  kind,
		Arg:   arg,
		Cycle: GetTime(),
		Value: value,
	}
	traceRingHead = (idx + 1) % TraceRingSize
}

// TraceEvents returns the captured events, oldest first.
func TraceEvents() []TraceEvent {
	events := make([]TraceEvent, 0, TraceRingSize)
	start := traceRingHead
	for i := uint8(0); i < TraceRingSize; i++ {
		evt := traceRing[(start+i)%TraceRingSize]
		if evt.Kind == 0 {
			continue
		}
		events = append(events, evt)
	}
	return events
}

// DumpTrace outputs the trace ring through the debug writer.
// Call it from the main loop, never from an interrupt handler.
func DumpTrace() {
	if debugPrintln == nil {
		return
	}

	debugPrintln("[TRACE] === Trace Ring Dump ===")
	for _, evt := range TraceEvents() {
		debugPrintln("[TRACE] " + evt.Kind.String() +
			" arg=" + hex8(evt.Arg) +
			" cycle=" + utoa(evt.Cycle) +
			" v=" + utoa(evt.Value))
	}
	debugPrintln("[TRACE] === End Dump ===")
}

// ClearTrace clears the trace ring
func ClearTrace() {
	for i := range traceRing {
		traceRing[i] = TraceEvent{}
	}
	traceRingHead = 0
}
