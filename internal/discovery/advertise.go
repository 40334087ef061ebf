package discovery

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"

	"github.com/muurk/logobrief/internal/logging"
)

// Advertisement describes how an intake server announces itself.
type Advertisement struct {
	Instance string // mDNS instance name; hostname when empty
	Port     int
	Path     string
	Version  string
}

// TXT returns the TXT records for the advertisement.
func (a Advertisement) TXT() []string {
	path := a.Path
	if path == "" {
		path = DefaultPath
	}
	txt := []string{"path=" + path}
	if a.Version != "" {
		txt = append(txt, "version="+a.Version)
	}
	return txt
}

// InstanceName returns the configured instance name or a hostname-based one.
func (a Advertisement) InstanceName() string {
	if a.Instance != "" {
		return a.Instance
	}
	host, err := os.Hostname()
	if err != nil || host == "" {
		return "logobrief"
	}
	return "logobrief-" + strings.SplitN(host, ".", 2)[0]
}

// Advertise registers the service over mDNS and keeps it registered until
// ctx is cancelled.
func Advertise(ctx context.Context, ad Advertisement) error {
	if ad.Port <= 0 {
		return fmt.Errorf("invalid port for mDNS advertisement: %d", ad.Port)
	}

	instance := ad.InstanceName()
	server, err := zeroconf.Register(instance, ServiceType, ServiceDomain, ad.Port, ad.TXT(), nil)
	if err != nil {
		return fmt.Errorf("failed to register mDNS service: %w", err)
	}
	defer server.Shutdown()

	logging.Info("mDNS service registered",
		zap.String("instance", instance),
		zap.String("type", ServiceType),
		zap.Int("port", ad.Port),
	)

	<-ctx.Done()

	logging.Info("mDNS service withdrawn", zap.String("instance", instance))
	return nil
}
