package sink

import (
	"encoding/json"
	"log"
	"time"

	"NetLens/internal/config"
	"NetLens/internal/model"

	"github.com/nats-io/nats.go"
)

// Batch is the JSON wire form of one flushed batch.
type Batch struct {
	PublishedAt time.Time      `json:"published_at"`
	Records     []model.Record `json:"records"`
}

// NATSSink publishes flushed batches and status messages to NATS
// subjects. Publishing writes into the client's outbound buffer, so
// the capture goroutine is never blocked on the consumer.
type NATSSink struct {
	nc            *nats.Conn
	subject       string
	statusSubject string
}

// NewNATSSink connects to the configured NATS server.
func NewNATSSink(cfg config.NATSConfig) (*NATSSink, error) {
	nc, err := nats.Connect(cfg.URL)
	if err != nil {
		return nil, err
	}
	log.Printf("Connected to NATS server at %s", cfg.URL)
	return &NATSSink{
		nc:            nc,
		subject:       cfg.Subject,
		statusSubject: cfg.StatusSubject,
	}, nil
}

// OnBatch implements model.Sink by publishing the batch as JSON.
func (s *NATSSink) OnBatch(records []model.Record) {
	data, err := json.Marshal(Batch{PublishedAt: time.Now(), Records: records})
	if err != nil {
		log.Printf("NATSSink: failed to marshal batch: %v", err)
		return
	}
	if err := s.nc.Publish(s.subject, data); err != nil {
		log.Printf("NATSSink: failed to publish batch of %d records: %v", len(records), err)
	}
}

// OnStatus implements model.Sink by publishing the message verbatim.
func (s *NATSSink) OnStatus(message string) {
	if err := s.nc.Publish(s.statusSubject, []byte(message)); err != nil {
		log.Printf("NATSSink: failed to publish status: %v", err)
	}
}

// Close drains and closes the NATS connection.
func (s *NATSSink) Close() {
	if s.nc != nil {
		s.nc.Drain()
		log.Println("NATS connection drained and closed.")
	}
}
