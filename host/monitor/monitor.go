// Package monitor turns the raw serial stream into sink records.
package monitor

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/golang/glog"

	"accelstream/host/sink"
	"accelstream/protocol"
)

// ReadChunk is the largest single read from the port.
const ReadChunk = 256

// StatsEvery is how many samples pass between periodic stats log lines.
const StatsEvery = 1000

// Stats counts monitor activity.
type Stats struct {
	Samples    uint64
	SinkErrors uint64
	Decoder    protocol.DecoderStats
}

// Monitor reads frames from r and forwards decoded samples to a sink.
type Monitor struct {
	r    io.Reader
	dec  *protocol.Decoder
	sink sink.Sink
	buf  []byte

	// Now stamps records; tests replace it.
	Now func() time.Time

	seq        uint64
	sinkErrors uint64
}

// New creates a monitor. bufSize is the decoder buffer size and is raised
// to fit at least one read chunk plus a partial frame.
func New(r io.Reader, s sink.Sink, bufSize int) *Monitor {
	if floor := ReadChunk + protocol.FrameLen + 1; bufSize < floor {
		bufSize = floor
	}
	return &Monitor{
		r:    r,
		dec:  protocol.NewDecoder(bufSize),
		sink: s,
		buf:  make([]byte, ReadChunk),
		Now:  time.Now,
	}
}

// Run reads until ctx is cancelled or the reader reports end of stream.
// A blocked Read is not interrupted by ctx; close the reader to unblock it.
func (m *Monitor) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}
		n, err := m.r.Read(m.buf)
		if n > 0 {
			m.dec.Feed(m.buf[:n])
			m.drain()
		}
		if err == io.EOF {
			glog.Info("end of stream")
			return nil
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read frame stream: %w", err)
		}
	}
}

func (m *Monitor) drain() {
	for {
		s, ok := m.dec.Next()
		if !ok {
			return
		}
		rec := sink.Record{Seq: m.seq, Time: m.Now(), Sample: s}
		m.seq++
		if err := m.sink.Write(rec); err != nil {
			m.sinkErrors++
			glog.Warningf("sink: %v", err)
		}
		if m.seq%StatsEvery == 0 {
			st := m.Stats()
			glog.V(1).Infof("samples=%d discarded=%d overflow=%d sink_errors=%d",
				st.Samples, st.Decoder.Discarded, st.Decoder.Overflow, st.SinkErrors)
		}
	}
}

// Stats returns the counters. Call it from the goroutine running Run or
// after Run returns.
func (m *Monitor) Stats() Stats {
	return Stats{
		Samples:    m.seq,
		SinkErrors: m.sinkErrors,
		Decoder:    m.dec.Stats(),
	}
}
