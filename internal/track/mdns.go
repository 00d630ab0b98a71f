package track

import (
	"fmt"
	"os"

	"github.com/hashicorp/mdns"
)

const serviceType = "_aircanvas._tcp"

// Advertise announces the tracking ingest endpoint on the local network so
// the browser client can find the host without typing an address.
func Advertise(port int) (*mdns.Server, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("could not get hostname: %w", err)
	}

	service, err := mdns.NewMDNSService(
		host,
		serviceType,
		"", // domain, defaults to .local
		"", // hostname, defaults to the OS hostname
		port,
		nil, // IPs auto-detected
		[]string{"AirCanvas tracking ingest"},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}
	return server, nil
}
