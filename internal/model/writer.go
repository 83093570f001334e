package model

import "time"

// Writer defines a generic interface for persisting statistics
// snapshots. Only aggregate statistics are ever written; raw captured
// frames never reach a Writer.
type Writer interface {
	// Write persists a single snapshot. The timestamp string identifies
	// the snapshot on the storage side.
	Write(snapshot StatsSnapshot, timestamp string) error

	// GetInterval returns the configured snapshot interval for this writer.
	GetInterval() time.Duration
}
