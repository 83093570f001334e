package sink

import (
	"log"

	"NetLens/internal/model"
)

// ChannelSink hands batches and status messages to an in-process
// consumer over buffered channels. Delivery is post-and-return: when a
// consumer falls behind and a buffer fills up, the overflow is dropped
// with a log line rather than blocking the capture goroutine.
type ChannelSink struct {
	batches chan []model.Record
	status  chan string
}

// NewChannelSink creates a sink with the given channel buffer size.
func NewChannelSink(bufferSize int) *ChannelSink {
	if bufferSize <= 0 {
		bufferSize = 64
	}
	return &ChannelSink{
		batches: make(chan []model.Record, bufferSize),
		status:  make(chan string, bufferSize),
	}
}

// Batches returns the channel on which flushed batches arrive in
// capture order.
func (s *ChannelSink) Batches() <-chan []model.Record {
	return s.batches
}

// Status returns the channel on which status messages arrive.
func (s *ChannelSink) Status() <-chan string {
	return s.status
}

// OnBatch implements model.Sink.
func (s *ChannelSink) OnBatch(records []model.Record) {
	select {
	case s.batches <- records:
	default:
		log.Printf("ChannelSink: consumer is behind, dropping batch of %d records", len(records))
	}
}

// OnStatus implements model.Sink.
func (s *ChannelSink) OnStatus(message string) {
	select {
	case s.status <- message:
	default:
	}
}
