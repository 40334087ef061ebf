package main

import (
	"testing"
	"time"

	"github.com/muurk/logobrief/internal/config"
	"github.com/muurk/logobrief/internal/submission"
)

func TestNewTransport(t *testing.T) {
	settings := config.NewSettings()

	sim, ok := newTransport(settings).(*submission.SimulatedTransport)
	if !ok {
		t.Fatalf("newTransport() without endpoint = %T, want *SimulatedTransport", newTransport(settings))
	}
	if sim.Delay != 1500*time.Millisecond {
		t.Errorf("Delay = %v, want 1.5s", sim.Delay)
	}

	settings.Submission.Endpoint = "intake.local:8080"
	settings.Submission.TimeoutSeconds = 4
	client, ok := newTransport(settings).(*submission.HTTPClient)
	if !ok {
		t.Fatalf("newTransport() with endpoint = %T, want *HTTPClient", newTransport(settings))
	}
	if want := "http://intake.local:8080/api/v1/briefs"; client.Endpoint != want {
		t.Errorf("Endpoint = %q, want %q", client.Endpoint, want)
	}
	if client.HTTPClient.Timeout != 4*time.Second {
		t.Errorf("Timeout = %v, want 4s", client.HTTPClient.Timeout)
	}
}

func TestTroubleshootingStripsHeading(t *testing.T) {
	tips := troubleshooting(submission.NewHTTPError(503, "service unavailable"))
	if len(tips) == 0 {
		t.Fatal("troubleshooting() returned no tips")
	}
	for _, tip := range tips {
		if tip == "Troubleshooting:" || tip == "" {
			t.Errorf("troubleshooting() kept %q", tip)
		}
	}
}
