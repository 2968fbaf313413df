package core

// TransferEngine is the abstract DMA-to-transmitter channel used to send
// frames without processor involvement.
type TransferEngine interface {
	// Busy reports whether a transfer is currently enabled.
	Busy() bool

	// CompletePending reports whether the transfer-complete flag is asserted
	// and has not been consumed yet.
	CompletePending() bool

	// ClearComplete consumes the transfer-complete flag.
	ClearComplete()

	// Start begins moving buf to the transmitter. buf must not change until
	// the completion interrupt fires.
	Start(buf []byte)
}
