// Package protocol decodes the accelerometer report stream emitted by the
// firmware: back to back "XdddYddd\r\n" frames with no other framing.
package protocol

import (
	"errors"
	"fmt"

	"accelstream/core"
)

// FrameLen is the number of bytes of one frame on the wire.
const FrameLen = core.FramePayloadLen

// ErrMalformed is returned for a frame that does not match the layout.
var ErrMalformed = errors.New("malformed frame")

// Sample is one decoded frame.
type Sample struct {
	X uint8
	Y uint8
}

func (s Sample) String() string {
	return fmt.Sprintf("X=%d Y=%d", s.X, s.Y)
}

// Decode parses exactly one frame.
func Decode(b []byte) (Sample, error) {
	if len(b) != FrameLen {
		return Sample{}, fmt.Errorf("%w: length %d", ErrMalformed, len(b))
	}
	if b[0] != 'X' || b[4] != 'Y' || b[8] != '\r' || b[9] != '\n' {
		return Sample{}, fmt.Errorf("%w: markers %q", ErrMalformed, b)
	}
	x, ok := parseField(b[1:4])
	if !ok {
		return Sample{}, fmt.Errorf("%w: X field %q", ErrMalformed, b[1:4])
	}
	y, ok := parseField(b[5:8])
	if !ok {
		return Sample{}, fmt.Errorf("%w: Y field %q", ErrMalformed, b[5:8])
	}
	return Sample{X: x, Y: y}, nil
}

func parseField(b []byte) (uint8, bool) {
	v := 0
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0, false
		}
		v = v*10 + int(c-'0')
	}
	if v > 255 {
		return 0, false
	}
	return uint8(v), true
}
