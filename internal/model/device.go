package model

import (
	"fmt"
	"net"
	"strings"
)

// Device describes one capturable network interface as reported by the
// device provider. It is opaque to the capture pipeline except for its
// name, which identifies the interface to open.
type Device struct {
	Name        string
	Description string
	Addresses   []net.IP
	MAC         net.HardwareAddr
}

// String renders the device in the form
// "name | IP: x.x.x.x | MAC: XX:XX:XX:XX:XX:XX | Desc: ...".
func (d Device) String() string {
	var sb strings.Builder
	sb.WriteString(d.Name)

	ipv4 := "No IPv4"
	for _, addr := range d.Addresses {
		if v4 := addr.To4(); v4 != nil {
			ipv4 = v4.String()
			break
		}
	}
	fmt.Fprintf(&sb, " | IP: %s", ipv4)

	if len(d.MAC) > 0 {
		fmt.Fprintf(&sb, " | MAC: %s", strings.ToUpper(d.MAC.String()))
	} else {
		sb.WriteString(" | MAC: No MAC")
	}

	if d.Description != "" {
		fmt.Fprintf(&sb, " | Desc: %s", d.Description)
	}
	return sb.String()
}
