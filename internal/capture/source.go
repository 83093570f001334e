package capture

import (
	"errors"
	"fmt"
	"time"

	"NetLens/internal/config"

	"github.com/google/gopacket"
	"github.com/google/gopacket/pcap"
)

// ErrReadTimeout is returned by a FrameSource when a blocking read
// expired without a frame. The capture loop uses these periodic returns
// to observe the stop flag.
var ErrReadTimeout = errors.New("frame read timed out")

// FrameSource is a live, open binding to a network device from which
// raw frames are read. Reads block for at most the source's configured
// read timeout.
type FrameSource interface {
	// ReadFrame returns the next raw frame and its capture metadata, or
	// ErrReadTimeout when no frame arrived within the read timeout.
	ReadFrame() ([]byte, gopacket.CaptureInfo, error)

	// Close releases the underlying device handle.
	Close() error
}

// OpenFunc opens a FrameSource on the named device. It exists so tests
// and alternative capture backends can substitute the libpcap
// implementation.
type OpenFunc func(device string, cfg config.CaptureConfig) (FrameSource, error)

// OpenLive opens a libpcap live capture on the named device with the
// configured snapshot length, promiscuous mode, and read timeout.
func OpenLive(device string, cfg config.CaptureConfig) (FrameSource, error) {
	timeout, err := time.ParseDuration(cfg.ReadTimeout)
	if err != nil {
		return nil, fmt.Errorf("invalid read_timeout %q: %w", cfg.ReadTimeout, err)
	}

	handle, err := pcap.OpenLive(device, cfg.SnapshotLen, cfg.Promiscuous, timeout)
	if err != nil {
		return nil, err
	}
	return &pcapSource{handle: handle}, nil
}

// pcapSource adapts a *pcap.Handle to the FrameSource interface.
type pcapSource struct {
	handle *pcap.Handle
}

func (s *pcapSource) ReadFrame() ([]byte, gopacket.CaptureInfo, error) {
	data, ci, err := s.handle.ReadPacketData()
	if err == pcap.NextErrorTimeoutExpired {
		return nil, ci, ErrReadTimeout
	}
	return data, ci, err
}

func (s *pcapSource) Close() error {
	s.handle.Close()
	return nil
}
