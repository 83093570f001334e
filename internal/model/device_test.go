package model

import (
	"net"
	"testing"
	"time"
)

func TestDeviceString(t *testing.T) {
	mac, _ := net.ParseMAC("aa:bb:cc:dd:ee:ff")
	tests := []struct {
		name   string
		device Device
		want   string
	}{
		{
			name: "full",
			device: Device{
				Name:        "eth0",
				Description: "Primary NIC",
				Addresses:   []net.IP{net.ParseIP("fe80::1"), net.ParseIP("192.168.1.10")},
				MAC:         mac,
			},
			want: "eth0 | IP: 192.168.1.10 | MAC: AA:BB:CC:DD:EE:FF | Desc: Primary NIC",
		},
		{
			name:   "bare",
			device: Device{Name: "lo"},
			want:   "lo | IP: No IPv4 | MAC: No MAC",
		},
		{
			name: "ipv6 only",
			device: Device{
				Name:      "wlan0",
				Addresses: []net.IP{net.ParseIP("fe80::1")},
				MAC:       mac,
			},
			want: "wlan0 | IP: No IPv4 | MAC: AA:BB:CC:DD:EE:FF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.device.String(); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestNewRecordDefaults(t *testing.T) {
	rec := NewRecord(time.Now(), 60, []byte{1, 2, 3})

	if rec.SrcAddr != AddrUnresolved || rec.DstAddr != AddrUnresolved {
		t.Errorf("Expected unresolved addresses, got %s -> %s", rec.SrcAddr, rec.DstAddr)
	}
	if rec.Protocol != ProtocolUnknown {
		t.Errorf("Expected protocol %s, got %s", ProtocolUnknown, rec.Protocol)
	}
	if rec.SrcPort != PortNone || rec.DstPort != PortNone {
		t.Errorf("Expected ports %d, got %d -> %d", PortNone, rec.SrcPort, rec.DstPort)
	}
	if rec.Length != 60 {
		t.Errorf("Expected length 60, got %d", rec.Length)
	}
	if len(rec.RawFrame) != 3 {
		t.Errorf("Expected raw frame kept, got %v", rec.RawFrame)
	}
}

func TestValidPort(t *testing.T) {
	for port, want := range map[int]bool{0: true, 80: true, 65535: true, PortNone: false, 65536: false} {
		if got := ValidPort(port); got != want {
			t.Errorf("ValidPort(%d) = %v, want %v", port, got, want)
		}
	}
}
