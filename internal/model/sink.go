package model

// Sink receives the output of a capture session. Both methods may be
// invoked from the capture goroutine and must return without blocking
// it; implementations are responsible for marshaling onto their own
// execution context.
type Sink interface {
	// OnBatch delivers one flushed batch of records in capture order.
	// The slice is a private copy and will not be reused by the caller.
	OnBatch(records []Record)

	// OnStatus delivers an out-of-band status or error message.
	OnStatus(message string)
}
