package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/logobrief/internal/discovery"
)

func testServices() []*discovery.Service {
	return []*discovery.Service{
		{Instance: "studio-mac", Hostname: "studio-mac.local.", IP: "192.168.1.20", Port: 8080, Path: "/api/v1/briefs", Version: "1.0.0"},
		{Instance: "front-desk", Hostname: "front-desk.local.", IP: "192.168.1.21", Port: 8080, Path: "/api/v1/briefs"},
	}
}

func staticScan(services []*discovery.Service, err error) ScanFunc {
	return func(context.Context) ([]*discovery.Service, error) {
		return services, err
	}
}

func scanned(t *testing.T, services []*discovery.Service) DiscoveryModel {
	t.Helper()
	m := NewDiscoveryModel(staticScan(services, nil), time.Second)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = m.Update(scanStartMsg{})
	m, _ = m.Update(scanCompleteMsg{services: services})
	return m
}

func TestDiscoverySelectsService(t *testing.T) {
	m := scanned(t, testServices())

	if m.Scanning {
		t.Fatal("Scanning = true after scan completed")
	}

	m, _ = m.Update(keyMsg("down"))
	m, _ = m.Update(keyMsg("enter"))

	if !m.Chosen() {
		t.Fatal("Chosen() = false after enter")
	}
	if want := "http://192.168.1.21:8080/api/v1/briefs"; m.Endpoint != want {
		t.Errorf("Endpoint = %q, want %q", m.Endpoint, want)
	}
}

func TestDiscoveryManualEndpoint(t *testing.T) {
	m := scanned(t, nil)

	m, _ = m.Update(keyMsg("m"))
	if !m.ManualMode {
		t.Fatal("ManualMode = false after m")
	}
	m, _ = m.Update(keyMsg("intake.local:9000"))
	m, _ = m.Update(keyMsg("enter"))

	if m.Endpoint != "intake.local:9000" {
		t.Errorf("Endpoint = %q, want intake.local:9000", m.Endpoint)
	}
}

func TestDiscoveryEnterIgnoredWhileScanning(t *testing.T) {
	m := NewDiscoveryModel(staticScan(nil, nil), time.Second)
	m, _ = m.Update(scanStartMsg{})
	m, _ = m.Update(keyMsg("enter"))

	if m.Chosen() {
		t.Error("Chosen() = true after enter during scan")
	}
}

func TestAppSkipDiscoveryKeepsDefaultTransport(t *testing.T) {
	app := NewAppModel(AppConfig{Discover: true, Scan: staticScan(nil, nil)})
	if app.CurrentScreen != ScreenDiscovery {
		t.Fatalf("CurrentScreen = %q, want discovery", app.CurrentScreen)
	}

	model, _ := app.Update(scanCompleteMsg{})
	model, _ = model.Update(keyMsg("s"))
	app = model.(AppModel)

	if app.CurrentScreen != ScreenQuestionnaire {
		t.Fatalf("CurrentScreen = %q, want questionnaire", app.CurrentScreen)
	}
	if got := app.QuestionnaireModel.TransportName(); got != "simulated" {
		t.Errorf("TransportName() = %q, want simulated", got)
	}
}

func TestAppChosenServerUsesHTTP(t *testing.T) {
	app := NewAppModel(AppConfig{Discover: true, Scan: staticScan(testServices(), nil), SubmitTimeout: time.Second})

	model, _ := app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	model, _ = model.Update(scanCompleteMsg{services: testServices()})
	model, _ = model.Update(keyMsg("enter"))
	app = model.(AppModel)

	if app.CurrentScreen != ScreenQuestionnaire {
		t.Fatalf("CurrentScreen = %q, want questionnaire", app.CurrentScreen)
	}
	if got := app.QuestionnaireModel.TransportName(); got != "http" {
		t.Errorf("TransportName() = %q, want http", got)
	}
	if app.QuestionnaireModel.Width != 120 {
		t.Errorf("questionnaire Width = %d, want 120", app.QuestionnaireModel.Width)
	}
}

func TestAppWithoutDiscoveryStartsOnQuestionnaire(t *testing.T) {
	app := NewAppModel(AppConfig{})
	if app.CurrentScreen != ScreenQuestionnaire {
		t.Errorf("CurrentScreen = %q, want questionnaire", app.CurrentScreen)
	}
}
