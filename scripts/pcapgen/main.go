// pcapgen generates a pcap file with a mix of HTTP, plain TCP, and UDP
// traffic for exercising the dissector and nl-replay.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net"
	"os"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
)

var httpRequests = []string{
	"GET /index.html HTTP/1.1\r\nHost: example.com\r\n\r\n",
	"POST /api/login HTTP/1.1\r\nHost: example.com\r\nContent-Length: 0\r\n\r\n",
	"HTTP/1.1 200 OK\r\nContent-Type: text/html\r\n\r\n<html></html>",
	"HTTP/1.1 404 Not Found\r\nContent-Length: 0\r\n\r\n",
}

func main() {
	outputFile := flag.String("o", "test.pcap", "Output pcap file path")
	packetCount := flag.Int("c", 1000, "Number of packets to generate")
	flag.Parse()

	f, err := os.Create(*outputFile)
	if err != nil {
		log.Fatalf("Failed to create output file: %v", err)
	}
	defer f.Close()

	pcapWriter := pcapgo.NewWriter(f)
	if err := pcapWriter.WriteFileHeader(65536, layers.LinkTypeEthernet); err != nil {
		log.Fatalf("Failed to write pcap header: %v", err)
	}

	log.Printf("Generating %d packets into %s...", *packetCount, *outputFile)

	for i := 0; i < *packetCount; i++ {
		var frame []byte
		var err error
		switch i % 3 {
		case 0:
			frame, err = buildTCP(randomPayload())
		case 1:
			frame, err = buildTCP([]byte(httpRequests[rand.Intn(len(httpRequests))]))
		case 2:
			frame, err = buildUDP(randomPayload())
		}
		if err != nil {
			log.Fatalf("Failed to serialize packet: %v", err)
		}

		ci := gopacket.CaptureInfo{
			Timestamp:     time.Now(),
			CaptureLength: len(frame),
			Length:        len(frame),
		}
		if err := pcapWriter.WritePacket(ci, frame); err != nil {
			log.Fatalf("Failed to write packet: %v", err)
		}
	}

	log.Printf("Successfully generated %d packets into %s.", *packetCount, *outputFile)
}

func randomPayload() []byte {
	payload := make([]byte, rand.Intn(1400)+50)
	rand.Read(payload)
	return payload
}

func randomIP() net.IP {
	return net.IP{10, byte(rand.Intn(256)), byte(rand.Intn(256)), byte(rand.Intn(254) + 1)}
}

func ethernetLayer() *layers.Ethernet {
	return &layers.Ethernet{
		SrcMAC:       net.HardwareAddr{0x00, 0x11, 0x22, 0x33, 0x44, 0x55},
		DstMAC:       net.HardwareAddr{0x00, 0x66, 0x77, 0x88, 0x99, 0xAA},
		EthernetType: layers.EthernetTypeIPv4,
	}
}

func serialize(ls ...gopacket.SerializableLayer) ([]byte, error) {
	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{
		ComputeChecksums: true,
		FixLengths:       true,
	}
	if err := gopacket.SerializeLayers(buf, opts, ls...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func buildTCP(payload []byte) ([]byte, error) {
	ipLayer := &layers.IPv4{
		SrcIP:    randomIP(),
		DstIP:    randomIP(),
		Version:  4,
		TTL:      64,
		Protocol: layers.IPProtocolTCP,
	}
	tcpLayer := &layers.TCP{
		SrcPort: layers.TCPPort(rand.Intn(65535-1024) + 1024),
		DstPort: 80,
		Seq:     rand.Uint32(),
		ACK:     true,
		Window:  14600,
	}
	tcpLayer.SetNetworkLayerForChecksum(ipLayer)
	return serialize(ethernetLayer(), ipLayer, tcpLayer, gopacket.Payload(payload))
}

func buildUDP(payload []byte) ([]byte, error) {
	ipLayer := &layers.IPv4{
		SrcIP:    randomIP(),
		DstIP:    randomIP(),
		Version:  4,
		TTL:      64,
		Protocol: layers.IPProtocolUDP,
	}
	udpLayer := &layers.UDP{
		SrcPort: layers.UDPPort(rand.Intn(65535-1024) + 1024),
		DstPort: layers.UDPPort([]int{53, 123, 5353}[rand.Intn(3)]),
	}
	if err := udpLayer.SetNetworkLayerForChecksum(ipLayer); err != nil {
		return nil, fmt.Errorf("set checksum layer: %w", err)
	}
	return serialize(ethernetLayer(), ipLayer, udpLayer, gopacket.Payload(payload))
}
