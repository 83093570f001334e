package stats

import (
	"log"
	"sync"
	"time"

	"NetLens/internal/model"
)

// timestampLayout names snapshot directories and rows on the storage side.
const timestampLayout = "2006-01-02_15-04-05"

// Recorder periodically snapshots an aggregator and hands the snapshot
// to every configured writer. Each writer runs on its own interval; a
// final snapshot is written for each writer at shutdown.
type Recorder struct {
	agg     *Aggregator
	writers []model.Writer
	done    chan struct{}
	wg      sync.WaitGroup
}

// NewRecorder creates a recorder for the given aggregator and writers.
func NewRecorder(agg *Aggregator, writers []model.Writer) *Recorder {
	return &Recorder{
		agg:     agg,
		writers: writers,
		done:    make(chan struct{}),
	}
}

// Start launches one snapshot loop per writer.
func (r *Recorder) Start() {
	for _, writer := range r.writers {
		r.wg.Add(1)
		go r.runSnapshotter(writer)
		log.Printf("Started stats snapshotter with interval %s", writer.GetInterval())
	}
}

// Stop signals all snapshot loops to take a final snapshot and exit,
// then waits for them to finish.
func (r *Recorder) Stop() {
	close(r.done)
	r.wg.Wait()
}

// runSnapshotter runs the snapshot loop for a single writer.
func (r *Recorder) runSnapshotter(writer model.Writer) {
	defer r.wg.Done()

	interval := writer.GetInterval()
	if interval <= 0 {
		log.Printf("Invalid interval %s for writer, snapshotter will not run.", interval)
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.writeSnapshot(writer)
		case <-r.done:
			r.writeSnapshot(writer)
			return
		}
	}
}

// writeSnapshot takes one snapshot and persists it through the writer.
func (r *Recorder) writeSnapshot(writer model.Writer) {
	snapshot := r.agg.Snapshot()
	timestamp := snapshot.TakenAt.Format(timestampLayout)
	if err := writer.Write(snapshot, timestamp); err != nil {
		log.Printf("Error writing stats snapshot at %s: %v", timestamp, err)
	}
}
