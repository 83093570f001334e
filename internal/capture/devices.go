package capture

import (
	"fmt"
	"net"

	"NetLens/internal/model"

	"github.com/google/gopacket/pcap"
)

// ListDevices enumerates the capturable network interfaces on this
// host. The link-layer address is resolved through the OS interface
// table; devices without one are still listed.
func ListDevices() ([]model.Device, error) {
	ifaces, err := pcap.FindAllDevs()
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}

	devices := make([]model.Device, 0, len(ifaces))
	for _, iface := range ifaces {
		dev := model.Device{
			Name:        iface.Name,
			Description: iface.Description,
		}
		for _, addr := range iface.Addresses {
			dev.Addresses = append(dev.Addresses, addr.IP)
		}
		if osIface, err := net.InterfaceByName(iface.Name); err == nil {
			dev.MAC = osIface.HardwareAddr
		}
		devices = append(devices, dev)
	}
	return devices, nil
}
