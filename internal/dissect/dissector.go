package dissect

import (
	"strings"
	"time"
	"unicode"

	"NetLens/internal/model"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

// maxDetailLen caps the length of a protocol detail taken from an HTTP
// status line.
const maxDetailLen = 50

// Dissect decodes a raw frame into a Record, layer by layer. It never
// fails: any layer that cannot be parsed is skipped, leaving that
// layer's fields at their defaults. The function is stateless and safe
// to call concurrently.
//
// Classification order is network layer first (provisional tag from the
// IP header), then transport, then the HTTP heuristic on TCP payloads;
// the last layer that succeeds wins the protocol tag.
func Dissect(data []byte, ci gopacket.CaptureInfo) model.Record {
	timestamp := ci.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now()
	}
	length := ci.Length
	if length <= 0 {
		length = len(data)
	}

	rec := model.NewRecord(timestamp, length, data)
	packet := gopacket.NewPacket(data, layers.LayerTypeEthernet, gopacket.Default)

	// Network layer: addresses plus a provisional protocol name taken
	// from the IP header.
	if l := packet.Layer(layers.LayerTypeIPv4); l != nil {
		ip := l.(*layers.IPv4)
		rec.SrcAddr = ip.SrcIP.String()
		rec.DstAddr = ip.DstIP.String()
		rec.Protocol = strings.ToUpper(ip.Protocol.String())
	} else if l := packet.Layer(layers.LayerTypeIPv6); l != nil {
		ip := l.(*layers.IPv6)
		rec.SrcAddr = ip.SrcIP.String()
		rec.DstAddr = ip.DstIP.String()
		rec.Protocol = strings.ToUpper(ip.NextHeader.String())
	}

	// Transport layer: ports and a more specific classification. Only
	// TCP payloads are probed for HTTP; UDP is classified as-is.
	if l := packet.Layer(layers.LayerTypeTCP); l != nil {
		tcp := l.(*layers.TCP)
		rec.SrcPort = int(tcp.SrcPort)
		rec.DstPort = int(tcp.DstPort)
		rec.Protocol = "TCP"
		if len(tcp.Payload) > 0 {
			sniffHTTP(tcp.Payload, &rec)
		}
	} else if l := packet.Layer(layers.LayerTypeUDP); l != nil {
		udp := l.(*layers.UDP)
		rec.SrcPort = int(udp.SrcPort)
		rec.DstPort = int(udp.DstPort)
		rec.Protocol = "UDP"
	}

	return rec
}

// httpMethods are the request prefixes recognized by the heuristic.
var httpMethods = []string{"GET", "POST", "PUT", "DELETE"}

// sniffHTTP inspects a TCP payload for an HTTP request or status line.
// Anything that does not look like ASCII HTTP is silently ignored and
// the TCP classification is kept unchanged.
func sniffHTTP(payload []byte, rec *model.Record) {
	text := strings.TrimSpace(string(payload))
	line := firstLine(text)
	if !isASCII(line) {
		return
	}

	for _, method := range httpMethods {
		if strings.HasPrefix(text, method) {
			parts := strings.Fields(line)
			if len(parts) >= 2 {
				rec.Protocol = "HTTP"
				rec.ProtocolDetail = parts[0] + " " + parts[1]
			}
			return
		}
	}

	if strings.HasPrefix(text, "HTTP/") {
		if len(line) > maxDetailLen {
			line = line[:maxDetailLen]
		}
		rec.Protocol = "HTTP"
		rec.ProtocolDetail = line
	}
}

// firstLine returns s up to the first CR or LF.
func firstLine(s string) string {
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		return s[:i]
	}
	return s
}

// isASCII reports whether s contains only printable ASCII characters.
func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > unicode.MaxASCII {
			return false
		}
	}
	return true
}
