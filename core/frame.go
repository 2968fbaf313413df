package core

// Frame layout: "X" ddd "Y" ddd CR LF, NUL terminated.
const (
	FrameSize       = 11
	FramePayloadLen = 10 // bytes put on the wire

	frameOffsetX  = 0
	frameOffsetY  = 4
	frameOffsetCR = 8
	frameOffsetLF = 9

	// ReadingDigits is the width of a decimal reading field.
	ReadingDigits = 3
)

// Axis selects a reading field inside a frame.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
)

func (a Axis) String() string {
	if a == AxisY {
		return "Y"
	}
	return "X"
}

func (a Axis) offset() int {
	if a == AxisY {
		return frameOffsetY
	}
	return frameOffsetX
}

// Frame is one outbound report. The zero value has no markers; use NewFrame.
type Frame [FrameSize]byte

// NewFrame returns a frame with the fixed markers set and both readings at
// zero.
func NewFrame() Frame {
	var f Frame
	f.Reset()
	return f
}

// Reset writes the markers and zeroes both readings.
func (f *Frame) Reset() {
	f[frameOffsetX] = 'X'
	f[frameOffsetY] = 'Y'
	f[frameOffsetCR] = '\r'
	f[frameOffsetLF] = '\n'
	f[FrameSize-1] = 0
	FormatReading(f[frameOffsetX+1:frameOffsetX+1+ReadingDigits], 0)
	FormatReading(f[frameOffsetY+1:frameOffsetY+1+ReadingDigits], 0)
}

// Put renders value into the field of axis. Markers and the other field are
// left untouched.
func (f *Frame) Put(axis Axis, value uint8) {
	off := axis.offset() + 1
	FormatReading(f[off:off+ReadingDigits], value)
}

// Payload returns the bytes sent on the wire. It aliases the frame.
func (f *Frame) Payload() []byte {
	return f[:FramePayloadLen]
}

func (f Frame) String() string {
	return string(f[:FramePayloadLen])
}

// FormatReading writes value into dst as zero padded decimal, most
// significant digit first. dst must hold ReadingDigits bytes.
func FormatReading(dst []byte, value uint8) {
	for i := ReadingDigits - 1; i >= 0; i-- {
		dst[i] = '0' + value%10
		value /= 10
	}
}
