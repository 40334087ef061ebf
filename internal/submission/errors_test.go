package submission

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"syscall"
	"testing"
)

func TestErrorTypeString(t *testing.T) {
	tests := []struct {
		et   ErrorType
		want string
	}{
		{ErrTypeNetwork, "Network Error"},
		{ErrTypeTimeout, "Timeout"},
		{ErrTypeRejected, "Rejected"},
		{ErrorType(99), "ErrorType(99)"},
	}
	for _, tt := range tests {
		if got := tt.et.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestClassifyNetworkError(t *testing.T) {
	refused := &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}

	tests := []struct {
		name        string
		err         error
		wantType    ErrorType
		wantSubtype NetworkErrorSubtype
	}{
		{"deadline", context.DeadlineExceeded, ErrTypeTimeout, NetworkErrorTimeout},
		{"cancelled", context.Canceled, ErrTypeNetwork, NetworkErrorCancelled},
		{"dns", &net.DNSError{Name: "intake.invalid", Err: "no such host"}, ErrTypeDNS, NetworkErrorDNS},
		{"refused", refused, ErrTypeConnectionRefused, NetworkErrorConnectionRefused},
		{"host unreachable", &net.OpError{Op: "dial", Err: syscall.EHOSTUNREACH}, ErrTypeNetwork, NetworkErrorHostUnreachable},
		{"wrapped in url.Error", &url.Error{Op: "Post", URL: "http://x", Err: refused}, ErrTypeConnectionRefused, NetworkErrorConnectionRefused},
		{"generic", errors.New("something"), ErrTypeNetwork, NetworkErrorGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyNetworkError(tt.err, "http://intake")
			if got.Type != tt.wantType {
				t.Errorf("Type = %v, want %v", got.Type, tt.wantType)
			}
			if got.NetworkSubtype != tt.wantSubtype {
				t.Errorf("NetworkSubtype = %v, want %v", got.NetworkSubtype, tt.wantSubtype)
			}
			if got.Endpoint != "http://intake" {
				t.Errorf("Endpoint = %q", got.Endpoint)
			}
		})
	}

	if ClassifyNetworkError(nil, "") != nil {
		t.Error("ClassifyNetworkError(nil) should be nil")
	}
}

func TestSubmitErrorUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := NewParseError("failed to parse receipt", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
	if !strings.Contains(err.Error(), "root cause") {
		t.Errorf("Error() = %q, want cause included", err.Error())
	}

	wrapped := fmt.Errorf("submit: %w", err)
	if !IsParseError(wrapped) {
		t.Error("predicates should see through fmt.Errorf wrapping")
	}
}

func TestTroubleshootingHints(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"refused", &SubmitError{Type: ErrTypeConnectionRefused}, "logobrief-server serve"},
		{"server error", NewHTTPError(503, "x"), "HTTP 503"},
		{"rejected", NewRejectedError(&Rejection{Fields: []FieldIssue{{Field: "deadline", Section: "budget", Message: "required"}}}), "deadline (budget): required"},
		{"cancelled", &SubmitError{Type: ErrTypeNetwork, NetworkSubtype: NetworkErrorCancelled}, "cancelled"},
		{"plain error", errors.New("x"), "unexpected error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetTroubleshootingHint(tt.err); !strings.Contains(got, tt.want) {
				t.Errorf("GetTroubleshootingHint() = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}

func TestGetShortErrorMessagePlainError(t *testing.T) {
	if got := GetShortErrorMessage(errors.New("plain")); got != "plain" {
		t.Errorf("GetShortErrorMessage() = %q, want plain", got)
	}
}
