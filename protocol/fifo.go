package protocol

// FifoBuffer is a circular byte buffer between the serial reader and the
// frame decoder. One slot is kept free to tell full from empty.
type FifoBuffer struct {
	buf   []byte
	read  int
	write int
}

// NewFifoBuffer creates a buffer holding up to capacity-1 bytes.
func NewFifoBuffer(capacity int) *FifoBuffer {
	return &FifoBuffer{buf: make([]byte, capacity)}
}

// Write appends as much of data as fits and returns the count.
func (f *FifoBuffer) Write(data []byte) int {
	n := min(len(data), f.Free())
	// at most two segments: up to the end of buf, then from the start
	first := copy(f.buf[f.write:], data[:n])
	copy(f.buf, data[first:n])
	f.write = (f.write + n) % len(f.buf)
	return n
}

// Read moves up to len(data) bytes out of the buffer.
func (f *FifoBuffer) Read(data []byte) int {
	n := min(len(data), f.Available())
	for i := 0; i < n; i++ {
		data[i] = f.Peek(i)
	}
	f.Pop(n)
	return n
}

// Peek returns the byte i positions after the read position without
// consuming it. i must be below Available().
func (f *FifoBuffer) Peek(i int) byte {
	return f.buf[(f.read+i)%len(f.buf)]
}

// Pop drops up to n bytes from the front.
func (f *FifoBuffer) Pop(n int) {
	n = min(n, f.Available())
	f.read = (f.read + n) % len(f.buf)
}

// Available returns the number of buffered bytes.
func (f *FifoBuffer) Available() int {
	return (f.write - f.read + len(f.buf)) % len(f.buf)
}

// Free returns the number of bytes Write can still accept.
func (f *FifoBuffer) Free() int {
	return len(f.buf) - 1 - f.Available()
}

// IsEmpty reports whether nothing is buffered.
func (f *FifoBuffer) IsEmpty() bool {
	return f.read == f.write
}

// Reset clears the buffer
func (f *FifoBuffer) Reset() {
	f.read = 0
	f.write = 0
}
