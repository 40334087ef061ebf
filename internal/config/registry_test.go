package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestGetConfigDir(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG layout only applies on Linux")
	}
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}
	if configDir != filepath.Join("/tmp/xdg", "logobrief") {
		t.Errorf("GetConfigDir() = %v, want /tmp/xdg/logobrief", configDir)
	}
}

func TestGetConfigPathOverride(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "/etc/logobrief.yaml")

	path, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}
	if path != "/etc/logobrief.yaml" {
		t.Errorf("GetConfigPath() = %v, want override", path)
	}
}

func TestNewSettingsDefaults(t *testing.T) {
	s := NewSettings()

	if s.Version != CurrentVersion {
		t.Errorf("Version = %v, want %v", s.Version, CurrentVersion)
	}
	if s.Submission.Endpoint != "" {
		t.Errorf("Endpoint = %q, want empty (simulated)", s.Submission.Endpoint)
	}
	if s.SimulatedDelay() != 1500*time.Millisecond {
		t.Errorf("SimulatedDelay() = %v, want 1.5s", s.SimulatedDelay())
	}
	if s.SubmitTimeout() != 10*time.Second {
		t.Errorf("SubmitTimeout() = %v, want 10s", s.SubmitTimeout())
	}
	if s.DiscoverTimeout() != 3*time.Second {
		t.Errorf("DiscoverTimeout() = %v, want 3s", s.DiscoverTimeout())
	}
	if s.NotificationDuration() != 5*time.Second {
		t.Errorf("NotificationDuration() = %v, want 5s", s.NotificationDuration())
	}
	if s.Server.ListenAddr != ":8080" || !s.Server.Advertise {
		t.Errorf("Server = %+v", s.Server)
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	s, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if diff := cmp.Diff(NewSettings(), s); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	s := NewSettings()
	s.Submission.Endpoint = "http://intake.local:8080/api/v1/briefs"
	s.Logging.Level = "debug"
	s.Interface.NotificationSeconds = 8

	if err := s.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if runtime.GOOS != "windows" && info.Mode().Perm() != 0600 {
		t.Errorf("file mode = %v, want 0600", info.Mode().Perm())
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file should be renamed away")
	}

	data, _ := os.ReadFile(path)
	if !strings.HasPrefix(string(data), "# logobrief configuration file") {
		t.Error("saved file should start with the header comment")
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if diff := cmp.Diff(s, loaded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFromPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "version: 1\nsubmission:\n  endpoint: localhost:9000\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	s, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if s.Submission.Endpoint != "localhost:9000" {
		t.Errorf("Endpoint = %q", s.Submission.Endpoint)
	}
	if s.Submission.SimulatedDelayMS != 1500 {
		t.Errorf("SimulatedDelayMS = %d, want default 1500", s.Submission.SimulatedDelayMS)
	}
	if s.Interface == nil || s.Server == nil {
		t.Error("missing sections should be filled with defaults")
	}
}

func TestLoadFromErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"wrong version", "version: 7\n", "unsupported config version"},
		{"malformed", "version: [\n", "failed to parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}
			_, err := LoadFrom(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("LoadFrom() error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestLoadSettingsAndCreateDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv(ConfigPathEnvVar, path)

	got, err := CreateDefaultConfig(false)
	if err != nil {
		t.Fatalf("CreateDefaultConfig() error = %v", err)
	}
	if got != path {
		t.Errorf("CreateDefaultConfig() path = %q, want %q", got, path)
	}
	if _, err := CreateDefaultConfig(false); err == nil {
		t.Error("CreateDefaultConfig() should refuse to overwrite")
	}

	s, err := ReloadSettings()
	if err != nil {
		t.Fatalf("ReloadSettings() error = %v", err)
	}
	again, _ := LoadSettings()
	if s != again {
		t.Error("LoadSettings() should return the cached instance")
	}
}
