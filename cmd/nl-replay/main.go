package main

import (
	"fmt"
	"log"
	"os"
	"sort"
	"time"

	"NetLens/internal/dispatch"
	"NetLens/internal/model"
	"NetLens/internal/sink"
	"NetLens/internal/stats"
	"NetLens/pkg/pcap"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: nl-replay <path_to_pcap_file>")
		os.Exit(1)
	}
	pcapFilePath := os.Args[1]

	reader, err := pcap.NewReader(pcapFilePath)
	if err != nil {
		log.Fatalf("Failed to open pcap file: %v", err)
	}
	defer reader.Close()
	log.Printf("Replaying frames from '%s'...", pcapFilePath)

	// The replayed records run through the same aggregate-then-dispatch
	// pipeline a live session uses.
	consumer := sink.NewChannelSink(4096)
	agg := stats.NewAggregator()
	dispatcher := dispatch.NewDispatcher(consumer, 0, 0)

	records := make(chan model.Record)
	go reader.ReadRecords(records)

	start := time.Now()
	total := 0
	for rec := range records {
		agg.Analyze(rec)
		dispatcher.Submit(rec)
		total++
	}
	dispatcher.Flush()

	batches, delivered := 0, 0
	for {
		select {
		case batch := <-consumer.Batches():
			batches++
			delivered += len(batch)
			continue
		default:
		}
		break
	}
	log.Printf("Replayed %d frames in %s (%d records delivered in %d batches).",
		total, time.Since(start), delivered, batches)

	printSnapshot(agg.Snapshot())
}

// printSnapshot renders the final statistics, protocols sorted by count.
func printSnapshot(snapshot model.StatsSnapshot) {
	type protoCount struct {
		proto string
		count uint64
	}
	protos := make([]protoCount, 0, len(snapshot.ProtocolCounts))
	for proto, count := range snapshot.ProtocolCounts {
		protos = append(protos, protoCount{proto, count})
	}
	sort.Slice(protos, func(i, j int) bool { return protos[i].count > protos[j].count })

	fmt.Println("Protocol distribution:")
	for _, pc := range protos {
		fmt.Printf("  %-10s %d\n", pc.proto, pc.count)
	}
	fmt.Printf("Ports with traffic: %d\n", len(snapshot.PortBytes))
	fmt.Printf("Total bytes: %d\n", snapshot.TotalBytes)
}
