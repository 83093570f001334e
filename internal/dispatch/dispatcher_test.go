package dispatch

import (
	"testing"
	"time"

	"NetLens/internal/model"
)

// collectSink records delivered batches. The dispatcher is driven from a
// single goroutine in these tests, so no locking is needed.
type collectSink struct {
	batches  [][]model.Record
	statuses []string
}

func (c *collectSink) OnBatch(records []model.Record) {
	c.batches = append(c.batches, records)
}

func (c *collectSink) OnStatus(message string) {
	c.statuses = append(c.statuses, message)
}

func makeRecord(length int) model.Record {
	rec := model.NewRecord(time.Now(), length, nil)
	rec.Protocol = "TCP"
	return rec
}

func TestDispatcherSizeTrigger(t *testing.T) {
	consumer := &collectSink{}
	d := NewDispatcher(consumer, 200, 10*time.Second)

	for i := 0; i < 199; i++ {
		d.Submit(makeRecord(100 + i))
	}
	if len(consumer.batches) != 0 {
		t.Fatalf("Expected no batches at 199 records, got %d", len(consumer.batches))
	}
	if d.PendingCount() != 199 {
		t.Fatalf("Expected 199 pending records, got %d", d.PendingCount())
	}

	d.Submit(makeRecord(100 + 199))
	if len(consumer.batches) != 1 {
		t.Fatalf("Expected exactly one batch at 200 records, got %d", len(consumer.batches))
	}
	batch := consumer.batches[0]
	if len(batch) != 200 {
		t.Fatalf("Expected batch of 200 records, got %d", len(batch))
	}
	for i, rec := range batch {
		if rec.Length != 100+i {
			t.Fatalf("Record %d out of capture order: length %d", i, rec.Length)
		}
	}
	if d.PendingCount() != 0 {
		t.Errorf("Expected empty pending buffer after flush, got %d", d.PendingCount())
	}
}

func TestDispatcherTimeTrigger(t *testing.T) {
	consumer := &collectSink{}
	d := NewDispatcher(consumer, 200, 300*time.Millisecond)

	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	d.now = func() time.Time { return clock }
	d.lastFlush = clock

	d.Submit(makeRecord(10))
	if len(consumer.batches) != 0 {
		t.Fatalf("Expected no flush before the buffer time elapses, got %d batches", len(consumer.batches))
	}

	clock = clock.Add(301 * time.Millisecond)
	d.Submit(makeRecord(20))
	if len(consumer.batches) != 1 {
		t.Fatalf("Expected a time-triggered flush, got %d batches", len(consumer.batches))
	}
	if len(consumer.batches[0]) != 2 {
		t.Errorf("Expected 2 records in the flushed batch, got %d", len(consumer.batches[0]))
	}
}

func TestDispatcherFlushResetsClock(t *testing.T) {
	consumer := &collectSink{}
	d := NewDispatcher(consumer, 200, 300*time.Millisecond)

	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	d.now = func() time.Time { return clock }

	// An empty flush must still reset the clock, so the next submit
	// shortly after does not fire a stale time trigger.
	clock = clock.Add(time.Second)
	d.Flush()
	if len(consumer.batches) != 0 {
		t.Fatalf("Expected no batch from an empty flush, got %d", len(consumer.batches))
	}

	clock = clock.Add(100 * time.Millisecond)
	d.Submit(makeRecord(10))
	if len(consumer.batches) != 0 {
		t.Fatalf("Expected no flush 100ms after reset, got %d batches", len(consumer.batches))
	}
}

func TestDispatcherForceFlush(t *testing.T) {
	consumer := &collectSink{}
	d := NewDispatcher(consumer, 200, 10*time.Second)

	for i := 0; i < 37; i++ {
		d.Submit(makeRecord(i + 1))
	}
	d.Flush()

	if len(consumer.batches) != 1 {
		t.Fatalf("Expected one forced batch, got %d", len(consumer.batches))
	}
	if len(consumer.batches[0]) != 37 {
		t.Errorf("Expected 37 records in the forced batch, got %d", len(consumer.batches[0]))
	}

	// Nothing pending: a second flush delivers nothing.
	d.Flush()
	if len(consumer.batches) != 1 {
		t.Errorf("Expected no batch from flushing an empty buffer, got %d", len(consumer.batches))
	}
}

func TestDispatcherBatchIsACopy(t *testing.T) {
	consumer := &collectSink{}
	d := NewDispatcher(consumer, 200, 10*time.Second)

	d.Submit(makeRecord(42))
	d.Flush()

	// Refilling the pending buffer must not alias the delivered batch.
	d.Submit(makeRecord(7))
	if consumer.batches[0][0].Length != 42 {
		t.Errorf("Delivered batch was mutated after flush: length %d", consumer.batches[0][0].Length)
	}
}

func TestDispatcherDefaults(t *testing.T) {
	d := NewDispatcher(&collectSink{}, 0, 0)
	if d.maxBatch != DefaultMaxBatchSize {
		t.Errorf("Expected default batch size %d, got %d", DefaultMaxBatchSize, d.maxBatch)
	}
	if d.maxWait != DefaultMaxBufferTime {
		t.Errorf("Expected default buffer time %v, got %v", DefaultMaxBufferTime, d.maxWait)
	}
}
