package discovery

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Service represents a logobrief intake server found on the network
type Service struct {
	// Instance is the mDNS instance name (e.g., "studio-mac")
	Instance string

	// Hostname is the mDNS hostname (e.g., "studio-mac.local.")
	Hostname string

	// IP is the IPv4 address, or IPv6 when no IPv4 address was advertised
	IP string

	// Port is the HTTP port of the intake server
	Port int

	// Path is the briefs route from the "path" TXT record
	Path string

	// Version is the server version from the "version" TXT record
	Version string

	// Metadata contains all TXT record data
	Metadata map[string]string

	// DiscoveredAt is when the service was discovered
	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the service
func (s *Service) String() string {
	return fmt.Sprintf("Intake %s (%s) at %s", s.Instance, s.Hostname, net.JoinHostPort(s.IP, strconv.Itoa(s.Port)))
}

// BaseURL returns the HTTP base URL for the service
func (s *Service) BaseURL() string {
	return "http://" + net.JoinHostPort(s.IP, strconv.Itoa(s.Port))
}

// URL returns the full endpoint that briefs are POSTed to
func (s *Service) URL() string {
	return s.BaseURL() + s.Path
}

// FeedURL returns the websocket URL of the live feed
func (s *Service) FeedURL() string {
	return "ws://" + net.JoinHostPort(s.IP, strconv.Itoa(s.Port)) + FeedPath
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (s *Service) GetMetadata(key string) string {
	if s.Metadata == nil {
		return ""
	}
	return s.Metadata[key]
}
