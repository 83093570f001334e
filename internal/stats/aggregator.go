package stats

import (
	"sync"
	"time"

	"NetLens/internal/model"
)

// Aggregator maintains incremental traffic statistics over every record
// it has analyzed. The capture goroutine is the sole writer; snapshot
// reads may happen concurrently from any goroutine.
type Aggregator struct {
	mu             sync.RWMutex
	protocolCounts map[string]uint64
	portBytes      map[int]uint64
	totalBytes     uint64
}

// NewAggregator creates an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{
		protocolCounts: make(map[string]uint64),
		portBytes:      make(map[int]uint64),
	}
}

// Analyze folds a single record into the counters: the record's
// protocol occurrence count is incremented, its length is added to the
// destination port's total unless the port is PortNone, and the grand
// total always grows by the record's length.
func (a *Aggregator) Analyze(rec model.Record) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.protocolCounts[rec.Protocol]++
	if rec.DstPort != model.PortNone {
		a.portBytes[rec.DstPort] += uint64(rec.Length)
	}
	a.totalBytes += uint64(rec.Length)
}

// Snapshot returns a deep copy of the current statistics. Mutating the
// returned maps has no effect on the aggregator.
func (a *Aggregator) Snapshot() model.StatsSnapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()

	protocols := make(map[string]uint64, len(a.protocolCounts))
	for proto, count := range a.protocolCounts {
		protocols[proto] = count
	}
	ports := make(map[int]uint64, len(a.portBytes))
	for port, bytes := range a.portBytes {
		ports[port] = bytes
	}

	return model.StatsSnapshot{
		TakenAt:        time.Now(),
		ProtocolCounts: protocols,
		PortBytes:      ports,
		TotalBytes:     a.totalBytes,
	}
}

// ProtocolDistribution returns a copy of the protocol occurrence counts.
func (a *Aggregator) ProtocolDistribution() map[string]uint64 {
	return a.Snapshot().ProtocolCounts
}

// PortTraffic returns a copy of the per-destination-port byte totals.
func (a *Aggregator) PortTraffic() map[int]uint64 {
	return a.Snapshot().PortBytes
}

// TotalBytes returns the grand total of bytes across all analyzed records.
func (a *Aggregator) TotalBytes() uint64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.totalBytes
}
