package pcap

import (
	"NetLens/internal/dissect"
	"NetLens/internal/model"

	"github.com/google/gopacket"
	"github.com/google/gopacket/pcap"
)

// Reader replays frames from a pcap file through the dissector,
// producing the same Records a live capture would.
type Reader struct {
	handle *pcap.Handle
}

// NewReader creates a new pcap reader for the given file path.
func NewReader(filePath string) (*Reader, error) {
	handle, err := pcap.OpenOffline(filePath)
	if err != nil {
		return nil, err
	}
	return &Reader{handle: handle}, nil
}

// Close closes the pcap handle.
func (r *Reader) Close() {
	r.handle.Close()
}

// ReadRecords dissects every frame in the file and sends the resulting
// Records to the provided channel in file order. It closes the channel
// when done. Dissection never fails, so every frame yields a Record.
func (r *Reader) ReadRecords(out chan<- model.Record) {
	defer close(out)

	packetSource := gopacket.NewPacketSource(r.handle, r.handle.LinkType())
	for packet := range packetSource.Packets() {
		out <- dissect.Dissect(packet.Data(), packet.Metadata().CaptureInfo)
	}
}
