package capture

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"NetLens/internal/config"
	"NetLens/internal/dispatch"
	"NetLens/internal/dissect"
	"NetLens/internal/model"
	"NetLens/internal/stats"
)

// State is the lifecycle state of a capture session.
type State int32

const (
	StateIdle State = iota
	StateRunning
	StatePaused
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateRunning:
		return "Running"
	case StatePaused:
		return "Paused"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Session orchestrates a live capture: it owns the device handle and
// the capture goroutine, and drives every captured frame through
// dissection, aggregation, and batch dispatch.
//
// State transitions are serialized by the session mutex and must come
// from the controlling goroutine; the capture goroutine only reads the
// halt flag. At most one device handle is open at a time.
type Session struct {
	mu     sync.Mutex
	state  State
	device string
	source FrameSource

	open       OpenFunc
	captureCfg config.CaptureConfig

	// halt asks the capture loop to exit at its next iteration.
	halt   atomic.Bool
	loopWg sync.WaitGroup

	agg  *stats.Aggregator
	disp *dispatch.Dispatcher
	sink model.Sink
}

// NewSession creates an Idle session delivering batches and status
// messages to sink. A nil open falls back to the libpcap implementation.
func NewSession(cfg *config.Config, sink model.Sink, open OpenFunc) (*Session, error) {
	if open == nil {
		open = OpenLive
	}

	maxWait, err := time.ParseDuration(cfg.Dispatch.MaxBufferTime)
	if err != nil {
		return nil, fmt.Errorf("invalid max_buffer_time %q: %w", cfg.Dispatch.MaxBufferTime, err)
	}

	return &Session{
		state:      StateIdle,
		open:       open,
		captureCfg: cfg.Capture,
		agg:        stats.NewAggregator(),
		disp:       dispatch.NewDispatcher(sink, cfg.Dispatch.MaxBatchSize, maxWait),
		sink:       sink,
	}, nil
}

// Aggregator exposes the session's statistics for snapshot readers.
func (s *Session) Aggregator() *stats.Aggregator {
	return s.agg
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Device returns the name of the currently bound device, if any.
func (s *Session) Device() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.device
}

// Start begins or resumes capturing on the named device.
//
// Starting twice on the same device while Running is a no-op. Resuming
// from Paused on the unchanged device reuses the open handle without
// reinitialization. Any device change forces the old handle closed and
// a new one opened before the capture goroutine restarts. A failed open
// leaves the session Idle.
func (s *Session) Start(device string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateRunning:
		if device == s.device {
			return nil
		}
		s.haltLoopLocked()
		s.closeSourceLocked()
	case StatePaused:
		if device == s.device && s.source != nil {
			s.resumeLocked()
			s.sink.OnStatus("capture resumed on " + device)
			return nil
		}
		s.closeSourceLocked()
	}

	source, err := s.open(device, s.captureCfg)
	if err != nil {
		s.state = StateIdle
		s.sink.OnStatus(fmt.Sprintf("failed to open device %s: %v", device, err))
		return fmt.Errorf("open device %s: %w", device, err)
	}

	s.source = source
	s.device = device
	s.resumeLocked()
	s.sink.OnStatus("capture started on " + device)
	return nil
}

// Pause stops the capture loop but keeps the device handle open so a
// subsequent Start on the same device is cheap. Buffered records are
// flushed before the loop exits.
func (s *Session) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRunning {
		return
	}
	s.haltLoopLocked()
	s.state = StatePaused
	s.sink.OnStatus("capture paused on " + s.device)
}

// Stop tears the session down: the capture loop exits, flushes any
// buffered records, and the device handle is closed. The session always
// reaches Idle, even if closing the handle fails.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateIdle {
		return
	}
	s.haltLoopLocked()
	s.closeSourceLocked()
	s.state = StateIdle
	s.sink.OnStatus("capture stopped")
}

// resumeLocked clears the halt flag and launches the capture goroutine.
func (s *Session) resumeLocked() {
	s.halt.Store(false)
	s.loopWg.Add(1)
	go s.captureLoop(s.source)
	s.state = StateRunning
}

// haltLoopLocked signals the capture loop and waits for it to exit.
// The wait is bounded by the source's read timeout.
func (s *Session) haltLoopLocked() {
	s.halt.Store(true)
	s.loopWg.Wait()
}

// closeSourceLocked closes and forgets the current device handle.
func (s *Session) closeSourceLocked() {
	if s.source == nil {
		return
	}
	if err := s.source.Close(); err != nil {
		s.sink.OnStatus(fmt.Sprintf("error closing capture handle for %s: %v", s.device, err))
	}
	s.source = nil
}

// captureLoop is the body of the capture goroutine: read one frame,
// dissect it, fold it into the statistics, buffer it for dispatch.
// Timeout reads keep the loop responsive to the halt flag; read errors
// are reported and skipped. Whatever remains buffered is flushed on the
// way out so no captured record is ever lost to a pause or stop.
func (s *Session) captureLoop(source FrameSource) {
	defer s.loopWg.Done()
	defer s.disp.Flush()

	for !s.halt.Load() {
		data, ci, err := source.ReadFrame()
		if err != nil {
			if errors.Is(err, ErrReadTimeout) {
				continue
			}
			if s.halt.Load() {
				return
			}
			s.sink.OnStatus("capture read error: " + err.Error())
			continue
		}

		rec := dissect.Dissect(data, ci)
		s.agg.Analyze(rec)
		s.disp.Submit(rec)
	}
}
