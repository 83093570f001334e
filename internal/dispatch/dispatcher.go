package dispatch

import (
	"time"

	"NetLens/internal/model"
)

// Defaults for the dual flush policy.
const (
	DefaultMaxBatchSize  = 200
	DefaultMaxBufferTime = 300 * time.Millisecond
)

// Dispatcher accumulates records from the capture goroutine and flushes
// them to a sink in batches. A flush fires when the pending buffer
// reaches MaxBatchSize or when more than MaxBufferTime has elapsed
// since the last flush, whichever occurs first.
//
// The pending buffer is owned exclusively by the capture goroutine;
// only flushed copies ever cross a goroutine boundary, so Dispatcher
// needs no locking of its own.
type Dispatcher struct {
	sink      model.Sink
	maxBatch  int
	maxWait   time.Duration
	pending   []model.Record
	lastFlush time.Time

	// now is swappable for tests.
	now func() time.Time
}

// NewDispatcher creates a dispatcher delivering to the given sink.
// Non-positive limits fall back to the defaults.
func NewDispatcher(sink model.Sink, maxBatch int, maxWait time.Duration) *Dispatcher {
	if maxBatch <= 0 {
		maxBatch = DefaultMaxBatchSize
	}
	if maxWait <= 0 {
		maxWait = DefaultMaxBufferTime
	}
	d := &Dispatcher{
		sink:     sink,
		maxBatch: maxBatch,
		maxWait:  maxWait,
		pending:  make([]model.Record, 0, maxBatch),
		now:      time.Now,
	}
	d.lastFlush = d.now()
	return d
}

// Submit appends one record to the pending buffer in capture order and
// flushes if either trigger condition is met.
func (d *Dispatcher) Submit(rec model.Record) {
	d.pending = append(d.pending, rec)
	if len(d.pending) >= d.maxBatch || d.now().Sub(d.lastFlush) > d.maxWait {
		d.Flush()
	}
}

// Flush unconditionally delivers the pending records, if any, as one
// batch. The delivered slice is a copy; the pending buffer is reset for
// reuse. Flush always resets the buffer-time clock.
func (d *Dispatcher) Flush() {
	d.lastFlush = d.now()
	if len(d.pending) == 0 {
		return
	}

	batch := make([]model.Record, len(d.pending))
	copy(batch, d.pending)
	d.pending = d.pending[:0]

	d.sink.OnBatch(batch)
}

// PendingCount returns the number of buffered, not yet flushed records.
func (d *Dispatcher) PendingCount() int {
	return len(d.pending)
}
