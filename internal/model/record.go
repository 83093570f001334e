package model

import (
	"time"
)

// Default values for Record fields that could not be resolved during
// dissection. Every Record field has a defined default, so a Record is
// never partially initialized.
const (
	AddrUnresolved  = "N/A"
	ProtocolUnknown = "UNKNOWN"
	PortNone        = -1
)

// Record holds the decoded form of a single captured frame. It is built
// once by the dissector and never mutated afterwards; consumers receive
// it by value.
type Record struct {
	// Timestamp is the capture instant, assigned when the frame is
	// received, not when it is processed.
	Timestamp time.Time `json:"timestamp"`

	// Length is the total frame byte length as seen on the wire.
	Length int `json:"length"`

	// SrcAddr and DstAddr are the network-layer addresses, or
	// AddrUnresolved when the frame carries no resolvable ones.
	SrcAddr string `json:"src_addr"`
	DstAddr string `json:"dst_addr"`

	// Protocol is the uppercase tag of the most specific layer that
	// classified the frame.
	Protocol string `json:"protocol"`

	// SrcPort and DstPort are transport-layer ports, or PortNone when
	// the frame has no parsed transport layer.
	SrcPort int `json:"src_port"`
	DstPort int `json:"dst_port"`

	// ProtocolDetail is a free-text refinement, e.g. an HTTP method and
	// path, or a truncated status line.
	ProtocolDetail string `json:"protocol_detail,omitempty"`

	// RawFrame references the original frame bytes. It may be nil and is
	// not serialized; downstream consumers must tolerate its absence.
	RawFrame []byte `json:"-"`
}

// NewRecord returns a Record with the required fields set and every
// optional field at its documented default.
func NewRecord(timestamp time.Time, length int, rawFrame []byte) Record {
	return Record{
		Timestamp: timestamp,
		Length:    length,
		SrcAddr:   AddrUnresolved,
		DstAddr:   AddrUnresolved,
		Protocol:  ProtocolUnknown,
		SrcPort:   PortNone,
		DstPort:   PortNone,
		RawFrame:  rawFrame,
	}
}

// ValidPort reports whether p is a usable transport-layer port number.
func ValidPort(p int) bool {
	return p >= 0 && p <= 65535
}
