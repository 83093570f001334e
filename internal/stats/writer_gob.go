package stats

import (
	"encoding/gob"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"NetLens/internal/model"
)

// SummaryData holds the metadata for a snapshot, internal to the writer.
type SummaryData struct {
	Protocols  int    `json:"protocols"`
	Ports      int    `json:"ports"`
	TotalBytes uint64 `json:"total_bytes"`
	Timestamp  string `json:"timestamp"`
}

// GobWriter writes statistics snapshots to disk in gob format, one
// timestamped directory per snapshot. It implements the model.Writer
// interface.
type GobWriter struct {
	rootPath string
	interval time.Duration
}

// NewGobWriter creates a new on-disk snapshot writer.
func NewGobWriter(rootPath string, interval time.Duration) model.Writer {
	return &GobWriter{rootPath: rootPath, interval: interval}
}

// GetInterval returns the configured snapshot interval for this writer.
func (w *GobWriter) GetInterval() time.Duration {
	return w.interval
}

// Write serializes one snapshot to <root>/<timestamp>/stats.gob and
// records its metadata in a summary.json next to it. Empty snapshots
// are skipped.
func (w *GobWriter) Write(snapshot model.StatsSnapshot, timestamp string) error {
	if len(snapshot.ProtocolCounts) == 0 && snapshot.TotalBytes == 0 {
		return nil // Nothing to write
	}

	snapshotDir := filepath.Join(w.rootPath, timestamp)
	if err := os.MkdirAll(snapshotDir, 0755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	dataPath := filepath.Join(snapshotDir, "stats.gob")
	file, err := os.Create(dataPath)
	if err != nil {
		return fmt.Errorf("failed to create snapshot file '%s': %w", dataPath, err)
	}
	defer file.Close()

	if err := gob.NewEncoder(file).Encode(snapshot); err != nil {
		return fmt.Errorf("failed to encode snapshot to gob: %w", err)
	}

	summary := SummaryData{
		Protocols:  len(snapshot.ProtocolCounts),
		Ports:      len(snapshot.PortBytes),
		TotalBytes: snapshot.TotalBytes,
		Timestamp:  snapshot.TakenAt.UTC().Format(time.RFC3339),
	}
	summaryPath := filepath.Join(snapshotDir, "summary.json")
	summaryFile, err := os.Create(summaryPath)
	if err != nil {
		return fmt.Errorf("failed to create summary file: %w", err)
	}
	defer summaryFile.Close()

	encoder := json.NewEncoder(summaryFile)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(summary); err != nil {
		return fmt.Errorf("failed to encode summary to json: %w", err)
	}

	return nil
}
