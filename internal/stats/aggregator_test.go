package stats

import (
	"sync"
	"testing"
	"time"

	"NetLens/internal/model"
)

func record(protocol string, dstPort, length int) model.Record {
	rec := model.NewRecord(time.Now(), length, nil)
	rec.Protocol = protocol
	rec.DstPort = dstPort
	return rec
}

func TestAggregatorCounters(t *testing.T) {
	agg := NewAggregator()
	agg.Analyze(record("TCP", 443, 100))
	agg.Analyze(record("TCP", 443, 50))
	agg.Analyze(record("HTTP", 80, 200))
	agg.Analyze(record("UDP", 53, 75))

	dist := agg.ProtocolDistribution()
	if dist["TCP"] != 2 || dist["HTTP"] != 1 || dist["UDP"] != 1 {
		t.Errorf("Unexpected protocol distribution: %v", dist)
	}

	ports := agg.PortTraffic()
	if ports[443] != 150 {
		t.Errorf("Expected 150 bytes on port 443, got %d", ports[443])
	}
	if ports[80] != 200 {
		t.Errorf("Expected 200 bytes on port 80, got %d", ports[80])
	}

	if agg.TotalBytes() != 425 {
		t.Errorf("Expected total of 425 bytes, got %d", agg.TotalBytes())
	}
}

func TestAggregatorExcludesPortlessRecords(t *testing.T) {
	agg := NewAggregator()
	agg.Analyze(record(model.ProtocolUnknown, model.PortNone, 60))
	agg.Analyze(record("ICMPV4", model.PortNone, 98))

	if got := len(agg.PortTraffic()); got != 0 {
		t.Errorf("Expected no port entries for portless records, got %d", got)
	}
	// Portless records still count toward the grand total.
	if agg.TotalBytes() != 158 {
		t.Errorf("Expected total of 158 bytes, got %d", agg.TotalBytes())
	}
}

func TestSnapshotIsolation(t *testing.T) {
	agg := NewAggregator()
	agg.Analyze(record("TCP", 80, 100))

	first := agg.Snapshot()
	first.ProtocolCounts["TCP"] = 999
	first.PortBytes[80] = 999

	second := agg.Snapshot()
	if second.ProtocolCounts["TCP"] != 1 {
		t.Errorf("Snapshot mutation leaked into the aggregator: count %d", second.ProtocolCounts["TCP"])
	}
	if second.PortBytes[80] != 100 {
		t.Errorf("Snapshot mutation leaked into the aggregator: bytes %d", second.PortBytes[80])
	}

	// Later analysis must not retroactively change an old snapshot.
	agg.Analyze(record("TCP", 80, 100))
	if second.ProtocolCounts["TCP"] != 1 {
		t.Errorf("Old snapshot changed after later analysis: count %d", second.ProtocolCounts["TCP"])
	}
}

func TestAggregatorConcurrentReads(t *testing.T) {
	agg := NewAggregator()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			agg.Analyze(record("TCP", 80, 10))
		}
	}()
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				agg.Snapshot()
			}
		}()
	}
	wg.Wait()

	if agg.TotalBytes() != 10000 {
		t.Errorf("Expected total of 10000 bytes, got %d", agg.TotalBytes())
	}
}
