package model

import "time"

// StatsSnapshot is a point-in-time, read-only copy of the aggregated
// traffic statistics. The maps are deep copies; mutating a snapshot has
// no effect on the live aggregator.
type StatsSnapshot struct {
	// TakenAt records when the snapshot was produced.
	TakenAt time.Time `json:"taken_at"`

	// ProtocolCounts maps a protocol tag to the number of records seen
	// with that classification.
	ProtocolCounts map[string]uint64 `json:"protocol_counts"`

	// PortBytes maps a destination port to the cumulative byte total of
	// records addressed to it. Records with DstPort == PortNone are
	// never represented here.
	PortBytes map[int]uint64 `json:"port_bytes"`

	// TotalBytes is the grand total across every record ever analyzed.
	TotalBytes uint64 `json:"total_bytes"`
}
