package submission

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/muurk/logobrief/internal/questionnaire"
)

func sampleForm() questionnaire.Form {
	f := questionnaire.NewForm()
	f.BusinessName = "Bean There"
	f.ServiceTier = "logo-marketing"
	f.LogoUseLocations = []string{"Website", "Signage", "Packaging"}
	f.TermsAgreement = true
	return f
}

func TestNormalizeEndpoint(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"localhost:8080", "http://localhost:8080/api/v1/briefs"},
		{"http://10.0.0.5:9000", "http://10.0.0.5:9000/api/v1/briefs"},
		{"http://10.0.0.5:9000/", "http://10.0.0.5:9000/api/v1/briefs"},
		{"localhost:8080/", "http://localhost:8080/api/v1/briefs"},
		{"http://localhost:8080//", "http://localhost:8080/api/v1/briefs"},
		{"https://intake.example.com/custom/path", "https://intake.example.com/custom/path"},
		{"  ", ""},
	}
	for _, tt := range tests {
		if got := NormalizeEndpoint(tt.in); got != tt.want {
			t.Errorf("NormalizeEndpoint(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestHTTPClientSetTimeout(t *testing.T) {
	client := NewHTTPClient("localhost:8080")
	client.SetTimeout(5 * time.Second)

	if client.HTTPClient.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", client.HTTPClient.Timeout)
	}
}

func TestHTTPClientSubmitSuccess(t *testing.T) {
	var received questionnaire.Form
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Method = %s, want POST", r.Method)
		}
		if r.URL.Path != BriefsPath {
			t.Errorf("Path = %s, want %s", r.URL.Path, BriefsPath)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %s, want application/json", ct)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &received); err != nil {
			t.Errorf("request body is not a form: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"b-123","received_at":"2026-10-19T12:00:00Z"}`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL)
	receipt, err := client.Submit(context.Background(), sampleForm())
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if receipt.ID != "b-123" {
		t.Errorf("ID = %q, want b-123", receipt.ID)
	}
	if diff := cmp.Diff(sampleForm(), received); diff != "" {
		t.Errorf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestHTTPClientSubmitRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"brief failed validation","fields":[{"field":"deadline","section":"budget","message":"Deadline for Final Logo is required"}]}`))
	}))
	defer server.Close()

	_, err := NewHTTPClient(server.URL).Submit(context.Background(), sampleForm())
	if !IsRejected(err) {
		t.Fatalf("Submit() error = %v, want rejected", err)
	}

	subErr := err.(*SubmitError)
	if len(subErr.Fields) != 1 || subErr.Fields[0].Field != "deadline" {
		t.Errorf("Fields = %+v, want deadline issue", subErr.Fields)
	}
	if got := GetShortErrorMessage(err); got != "Brief rejected: Deadline for Final Logo is required" {
		t.Errorf("GetShortErrorMessage() = %q", got)
	}
}

func TestHTTPClientSubmitErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		check   func(error) bool
		wantMsg string
	}{
		{"server error", http.StatusInternalServerError, "boom", IsHTTPError, "Intake server error (HTTP 500)"},
		{"not found", http.StatusNotFound, "", IsHTTPError, "Intake server error (HTTP 404)"},
		{"garbage receipt", http.StatusCreated, "not json", IsParseError, "Failed to parse intake server response"},
		{"receipt without id", http.StatusCreated, `{}`, IsParseError, "Failed to parse intake server response"},
		{"bad request without json", http.StatusBadRequest, "nope", IsHTTPError, "Intake server error (HTTP 400)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := NewHTTPClient(server.URL).Submit(context.Background(), sampleForm())
			if !tt.check(err) {
				t.Fatalf("Submit() error = %v, wrong type", err)
			}
			if got := GetShortErrorMessage(err); got != tt.wantMsg {
				t.Errorf("GetShortErrorMessage() = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestHTTPClientConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewHTTPClient(url).Submit(context.Background(), sampleForm())
	if !IsNetworkError(err) {
		t.Fatalf("Submit() error = %v, want network error", err)
	}
}

func TestHTTPClientTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	client := NewHTTPClient(server.URL)
	client.SetTimeout(50 * time.Millisecond)

	_, err := client.Submit(context.Background(), sampleForm())
	subErr, ok := err.(*SubmitError)
	if !ok {
		t.Fatalf("Submit() error = %T, want *SubmitError", err)
	}
	if subErr.Type != ErrTypeTimeout {
		t.Errorf("Type = %v, want Timeout", subErr.Type)
	}
}
