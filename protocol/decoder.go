package protocol

// DecoderStats counts decoder activity.
type DecoderStats struct {
	Frames    uint64 // frames decoded
	Discarded uint64 // bytes skipped while resynchronising
	Overflow  uint64 // bytes lost because the buffer was full
}

// Decoder turns an arbitrary chunked byte stream into samples. Garbage and
// partial frames (for example after opening the port mid-frame) are skipped
// one byte at a time until a valid frame lines up again.
type Decoder struct {
	fifo  *FifoBuffer
	frame [FrameLen]byte
	stats DecoderStats
}

// NewDecoder creates a decoder buffering up to bufSize bytes.
func NewDecoder(bufSize int) *Decoder {
	if bufSize < FrameLen+1 {
		bufSize = FrameLen + 1
	}
	return &Decoder{fifo: NewFifoBuffer(bufSize)}
}

// Feed appends received bytes. Bytes that do not fit are counted and lost;
// call Next until it returns false between feeds to keep room.
func (d *Decoder) Feed(data []byte) {
	n := d.fifo.Write(data)
	d.stats.Overflow += uint64(len(data) - n)
}

// Next returns the next complete frame, or false if more bytes are needed.
func (d *Decoder) Next() (Sample, bool) {
	for d.fifo.Available() >= FrameLen {
		if d.fifo.Peek(0) != 'X' {
			d.fifo.Pop(1)
			d.stats.Discarded++
			continue
		}
		for i := range d.frame {
			d.frame[i] = d.fifo.Peek(i)
		}
		s, err := Decode(d.frame[:])
		if err != nil {
			d.fifo.Pop(1)
			d.stats.Discarded++
			continue
		}
		d.fifo.Pop(FrameLen)
		d.stats.Frames++
		return s, true
	}
	return Sample{}, false
}

// Stats returns a copy of the counters.
func (d *Decoder) Stats() DecoderStats {
	return d.stats
}
