package sink

import (
	"encoding/json"
	"log"

	"NetLens/internal/config"
	"NetLens/internal/model"

	"github.com/nats-io/nats.go"
)

// BatchHandler processes one received batch of records.
type BatchHandler func(records []model.Record)

// StatusHandler processes one received status message.
type StatusHandler func(message string)

// Subscriber is the consumer-side counterpart of NATSSink: it
// subscribes to the batch and status subjects and invokes the handlers
// for every message.
type Subscriber struct {
	nc   *nats.Conn
	cfg  config.NATSConfig
	subs []*nats.Subscription
}

// NewSubscriber connects to the configured NATS server.
func NewSubscriber(cfg config.NATSConfig) (*Subscriber, error) {
	nc, err := nats.Connect(cfg.URL)
	if err != nil {
		return nil, err
	}
	log.Printf("Connected to NATS server at %s", cfg.URL)
	return &Subscriber{nc: nc, cfg: cfg}, nil
}

// Start subscribes to the batch subject and, when statusHandler is not
// nil, to the status subject as well.
func (s *Subscriber) Start(batchHandler BatchHandler, statusHandler StatusHandler) error {
	sub, err := s.nc.Subscribe(s.cfg.Subject, func(msg *nats.Msg) {
		var batch Batch
		if err := json.Unmarshal(msg.Data, &batch); err != nil {
			log.Printf("Error unmarshalling batch: %v", err)
			return
		}
		batchHandler(batch.Records)
	})
	if err != nil {
		return err
	}
	s.subs = append(s.subs, sub)

	if statusHandler != nil {
		sub, err := s.nc.Subscribe(s.cfg.StatusSubject, func(msg *nats.Msg) {
			statusHandler(string(msg.Data))
		})
		if err != nil {
			return err
		}
		s.subs = append(s.subs, sub)
	}

	log.Printf("Subscribed to '%s'. Waiting for batches...", s.cfg.Subject)
	return nil
}

// Close unsubscribes and closes the NATS connection.
func (s *Subscriber) Close() {
	for _, sub := range s.subs {
		sub.Unsubscribe()
	}
	if s.nc != nil {
		s.nc.Close()
		log.Println("NATS connection closed.")
	}
}
