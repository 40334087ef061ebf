package config

import "time"

// CurrentVersion is the settings file format version.
const CurrentVersion = 1

// Settings represents the entire user configuration file.
type Settings struct {
	Version    int              `yaml:"version"`
	Submission *SubmissionPrefs `yaml:"submission,omitempty"`
	Discovery  *DiscoveryPrefs  `yaml:"discovery,omitempty"`
	Logging    *LoggingPrefs    `yaml:"logging,omitempty"`
	Interface  *InterfacePrefs  `yaml:"interface,omitempty"`
	Server     *ServerPrefs     `yaml:"server,omitempty"`
}

// SubmissionPrefs controls where completed briefs are sent.
type SubmissionPrefs struct {
	Endpoint         string `yaml:"endpoint,omitempty"` // Intake URL; empty means simulated submission
	TimeoutSeconds   int    `yaml:"timeout_seconds"`    // HTTP request timeout
	SimulatedDelayMS int    `yaml:"simulated_delay_ms"` // Delay of the simulated transport
}

// DiscoveryPrefs controls mDNS lookup of intake servers.
type DiscoveryPrefs struct {
	Enabled        bool `yaml:"enabled"`         // Browse for an intake server when no endpoint is set
	TimeoutSeconds int  `yaml:"timeout_seconds"` // mDNS browse timeout
}

// LoggingPrefs mirrors LOGOBRIEF_LOG_LEVEL and LOGOBRIEF_LOG_FILE.
type LoggingPrefs struct {
	Level string `yaml:"level,omitempty"`
	File  string `yaml:"file,omitempty"`
}

// InterfacePrefs holds questionnaire display settings.
type InterfacePrefs struct {
	NotificationSeconds int `yaml:"notification_seconds"` // How long toasts stay visible
}

// ServerPrefs holds defaults for logobrief-server.
type ServerPrefs struct {
	ListenAddr   string `yaml:"listen_addr"`
	Advertise    bool   `yaml:"advertise"`               // Register the service over mDNS
	InstanceName string `yaml:"instance_name,omitempty"` // mDNS instance name; hostname when empty
}

// NewSettings creates Settings with default values.
func NewSettings() *Settings {
	s := &Settings{Version: CurrentVersion}
	s.fillDefaults()
	return s
}

// fillDefaults replaces missing sections and zero values with defaults.
func (s *Settings) fillDefaults() {
	if s.Submission == nil {
		s.Submission = &SubmissionPrefs{}
	}
	if s.Submission.TimeoutSeconds <= 0 {
		s.Submission.TimeoutSeconds = 10
	}
	if s.Submission.SimulatedDelayMS <= 0 {
		s.Submission.SimulatedDelayMS = 1500
	}

	if s.Discovery == nil {
		s.Discovery = &DiscoveryPrefs{Enabled: false}
	}
	if s.Discovery.TimeoutSeconds <= 0 {
		s.Discovery.TimeoutSeconds = 3
	}

	if s.Logging == nil {
		s.Logging = &LoggingPrefs{}
	}

	if s.Interface == nil {
		s.Interface = &InterfacePrefs{}
	}
	if s.Interface.NotificationSeconds <= 0 {
		s.Interface.NotificationSeconds = 5
	}

	if s.Server == nil {
		s.Server = &ServerPrefs{Advertise: true}
	}
	if s.Server.ListenAddr == "" {
		s.Server.ListenAddr = ":8080"
	}
}

// SubmitTimeout returns the HTTP submission timeout.
func (s *Settings) SubmitTimeout() time.Duration {
	return time.Duration(s.Submission.TimeoutSeconds) * time.Second
}

// SimulatedDelay returns the delay of the simulated transport.
func (s *Settings) SimulatedDelay() time.Duration {
	return time.Duration(s.Submission.SimulatedDelayMS) * time.Millisecond
}

// DiscoverTimeout returns the mDNS browse timeout.
func (s *Settings) DiscoverTimeout() time.Duration {
	return time.Duration(s.Discovery.TimeoutSeconds) * time.Second
}

// NotificationDuration returns how long a toast stays on screen.
func (s *Settings) NotificationDuration() time.Duration {
	return time.Duration(s.Interface.NotificationSeconds) * time.Second
}
