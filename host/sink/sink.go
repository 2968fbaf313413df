// Package sink delivers decoded samples to their consumers.
package sink

import (
	"errors"
	"fmt"
	"io"
	"time"

	"accelstream/protocol"
	"accelstream/sensor/lis35de"
)

// Record is one decoded sample as handed to sinks.
type Record struct {
	Seq    uint64 // position in the stream since the monitor started
	Time   time.Time
	Sample protocol.Sample
}

// MilliG returns the sample scaled to milli-g.
func (r Record) MilliG() (x, y int32) {
	return lis35de.MilliG(r.Sample.X), lis35de.MilliG(r.Sample.Y)
}

// Sink consumes records. Write is called from a single goroutine.
type Sink interface {
	Write(r Record) error
	Close() error
}

// Writer prints one line per record.
type Writer struct {
	w      io.Writer
	milliG bool
}

// NewWriter creates a sink printing to w, raw counts or milli-g.
func NewWriter(w io.Writer, milliG bool) *Writer {
	return &Writer{w: w, milliG: milliG}
}

// Write implements Sink.
func (s *Writer) Write(r Record) error {
	var err error
	if s.milliG {
		x, y := r.MilliG()
		_, err = fmt.Fprintf(s.w, "%d x=%dmg y=%dmg\n", r.Seq, x, y)
	} else {
		_, err = fmt.Fprintf(s.w, "%d x=%d y=%d\n", r.Seq, r.Sample.X, r.Sample.Y)
	}
	return err
}

// Close implements Sink.
func (s *Writer) Close() error {
	return nil
}

// Multi fans every record out to all sinks. A failing sink does not stop the
// others; the errors are joined.
type Multi []Sink

// Write implements Sink.
func (m Multi) Write(r Record) error {
	var errs []error
	for _, s := range m {
		if err := s.Write(r); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close implements Sink.
func (m Multi) Close() error {
	var errs []error
	for _, s := range m {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
