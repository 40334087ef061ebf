package submission

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"
	"syscall"
)

// ErrorType represents the category of a submission failure
type ErrorType int

const (
	// ErrTypeNetwork indicates a network-level error
	ErrTypeNetwork ErrorType = iota
	// ErrTypeTimeout indicates the intake server did not answer in time
	ErrTypeTimeout
	// ErrTypeConnectionRefused indicates nothing is listening at the endpoint
	ErrTypeConnectionRefused
	// ErrTypeDNS indicates the endpoint hostname could not be resolved
	ErrTypeDNS
	// ErrTypeHTTP indicates an unexpected HTTP status code
	ErrTypeHTTP
	// ErrTypeRejected indicates the intake server refused the brief as invalid
	ErrTypeRejected
	// ErrTypeParse indicates a malformed response body
	ErrTypeParse
	// ErrTypeUnknown indicates an unknown or unexpected error
	ErrTypeUnknown
)

// NetworkErrorSubtype provides more specific network error classification
type NetworkErrorSubtype int

const (
	NetworkErrorGeneral NetworkErrorSubtype = iota
	NetworkErrorTimeout
	NetworkErrorConnectionRefused
	NetworkErrorDNS
	NetworkErrorHostUnreachable
	NetworkErrorNetworkUnreachable
	NetworkErrorCancelled
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeNetwork:
		return "Network Error"
	case ErrTypeTimeout:
		return "Timeout"
	case ErrTypeConnectionRefused:
		return "Connection Refused"
	case ErrTypeDNS:
		return "DNS Error"
	case ErrTypeHTTP:
		return "HTTP Error"
	case ErrTypeRejected:
		return "Rejected"
	case ErrTypeParse:
		return "Parse Error"
	case ErrTypeUnknown:
		return "Unknown Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// SubmitError represents a failed attempt to deliver a brief
type SubmitError struct {
	Type           ErrorType           // Category of error
	Message        string              // Human-readable error message
	StatusCode     int                 // HTTP status code (if applicable)
	Err            error               // Underlying error (if any)
	NetworkSubtype NetworkErrorSubtype // More specific network error type
	Endpoint       string              // Intake URL (for context)
	Fields         []FieldIssue        // Field problems reported by the server
}

// Error implements the error interface
func (e *SubmitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *SubmitError) Unwrap() error {
	return e.Err
}

// ClassifyNetworkError analyzes an error and returns a more specific error type
func ClassifyNetworkError(err error, endpoint string) *SubmitError {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) {
		return &SubmitError{
			Type:           ErrTypeNetwork,
			Message:        "Submission cancelled",
			Err:            err,
			NetworkSubtype: NetworkErrorCancelled,
			Endpoint:       endpoint,
		}
	}

	if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
		return &SubmitError{
			Type:           ErrTypeTimeout,
			Message:        "Request timed out",
			Err:            err,
			NetworkSubtype: NetworkErrorTimeout,
			Endpoint:       endpoint,
		}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &SubmitError{
			Type:           ErrTypeDNS,
			Message:        fmt.Sprintf("DNS resolution failed for %s", dnsErr.Name),
			Err:            err,
			NetworkSubtype: NetworkErrorDNS,
			Endpoint:       endpoint,
		}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if errors.Is(opErr.Err, syscall.ECONNREFUSED) {
			return &SubmitError{
				Type:           ErrTypeConnectionRefused,
				Message:        "Intake server refused connection",
				Err:            err,
				NetworkSubtype: NetworkErrorConnectionRefused,
				Endpoint:       endpoint,
			}
		}
		if errors.Is(opErr.Err, syscall.EHOSTUNREACH) {
			return &SubmitError{
				Type:           ErrTypeNetwork,
				Message:        "Host unreachable",
				Err:            err,
				NetworkSubtype: NetworkErrorHostUnreachable,
				Endpoint:       endpoint,
			}
		}
		if errors.Is(opErr.Err, syscall.ENETUNREACH) {
			return &SubmitError{
				Type:           ErrTypeNetwork,
				Message:        "Network unreachable",
				Err:            err,
				NetworkSubtype: NetworkErrorNetworkUnreachable,
				Endpoint:       endpoint,
			}
		}
	}

	// Recursively classify the underlying error
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return ClassifyNetworkError(urlErr.Err, endpoint)
	}

	return &SubmitError{
		Type:           ErrTypeNetwork,
		Message:        "Network error occurred",
		Err:            err,
		NetworkSubtype: NetworkErrorGeneral,
		Endpoint:       endpoint,
	}
}

// NewNetworkError creates a network-level error with automatic classification
func NewNetworkError(message string, err error) *SubmitError {
	classified := ClassifyNetworkError(err, "")
	if classified != nil {
		classified.Message = message
		return classified
	}
	return &SubmitError{
		Type:    ErrTypeNetwork,
		Message: message,
		Err:     err,
	}
}

// NewHTTPError creates an HTTP-level error
func NewHTTPError(statusCode int, message string) *SubmitError {
	return &SubmitError{
		Type:       ErrTypeHTTP,
		Message:    message,
		StatusCode: statusCode,
	}
}

// NewRejectedError creates an error for a brief the intake server refused
func NewRejectedError(rejection *Rejection) *SubmitError {
	msg := rejection.Error
	if msg == "" {
		msg = "brief rejected"
	}
	return &SubmitError{
		Type:    ErrTypeRejected,
		Message: msg,
		Fields:  rejection.Fields,
	}
}

// NewParseError creates a parsing error
func NewParseError(message string, err error) *SubmitError {
	return &SubmitError{
		Type:    ErrTypeParse,
		Message: message,
		Err:     err,
	}
}

func asSubmitError(err error) (*SubmitError, bool) {
	var subErr *SubmitError
	if errors.As(err, &subErr) {
		return subErr, true
	}
	return nil, false
}

// IsNetworkError checks if an error is a network error (including timeout, connection refused, DNS)
func IsNetworkError(err error) bool {
	if subErr, ok := asSubmitError(err); ok {
		return subErr.Type == ErrTypeNetwork ||
			subErr.Type == ErrTypeTimeout ||
			subErr.Type == ErrTypeConnectionRefused ||
			subErr.Type == ErrTypeDNS
	}
	return false
}

// IsHTTPError checks if an error is an HTTP error
func IsHTTPError(err error) bool {
	if subErr, ok := asSubmitError(err); ok {
		return subErr.Type == ErrTypeHTTP
	}
	return false
}

// IsRejected checks if the intake server refused the brief
func IsRejected(err error) bool {
	if subErr, ok := asSubmitError(err); ok {
		return subErr.Type == ErrTypeRejected
	}
	return false
}

// IsParseError checks if an error is a parse error
func IsParseError(err error) bool {
	if subErr, ok := asSubmitError(err); ok {
		return subErr.Type == ErrTypeParse
	}
	return false
}

// GetTroubleshootingHint returns user-friendly troubleshooting advice for an error
func GetTroubleshootingHint(err error) string {
	subErr, ok := asSubmitError(err)
	if !ok {
		return "An unexpected error occurred. Please try again."
	}

	switch subErr.Type {
	case ErrTypeTimeout:
		return strings.Join([]string{
			"The intake server did not respond in time.",
			"Troubleshooting:",
			"  • Check that the intake server is running",
			"  • Try increasing the timeout (--timeout)",
		}, "\n")

	case ErrTypeConnectionRefused:
		return strings.Join([]string{
			"The intake server refused the connection.",
			"Troubleshooting:",
			"  • Start it with: logobrief-server serve",
			"  • Verify the endpoint host and port",
			"  • Run 'logobrief discover' to find servers on the local network",
		}, "\n")

	case ErrTypeDNS:
		return strings.Join([]string{
			"Could not resolve the intake server hostname.",
			"Troubleshooting:",
			"  • Use the IP address instead of hostname",
			"  • Check your network DNS settings",
		}, "\n")

	case ErrTypeNetwork:
		hint := []string{"Network communication failed."}

		switch subErr.NetworkSubtype {
		case NetworkErrorCancelled:
			return "The submission was cancelled before it completed."

		case NetworkErrorHostUnreachable, NetworkErrorNetworkUnreachable:
			hint = append(hint,
				"Troubleshooting:",
				"  • Verify the endpoint address is correct",
				"  • Check that you're on the same network as the intake server")

		default:
			hint = append(hint,
				"Troubleshooting:",
				"  • Check your network connection",
				"  • Verify the intake server is running")
		}

		return strings.Join(hint, "\n")

	case ErrTypeHTTP:
		if subErr.StatusCode >= 500 {
			return strings.Join([]string{
				fmt.Sprintf("The intake server returned an error (HTTP %d).", subErr.StatusCode),
				"Troubleshooting:",
				"  • Check the server logs (LOGOBRIEF_LOG_LEVEL=debug)",
				"  • Try again in a moment",
			}, "\n")
		}
		return fmt.Sprintf("The intake server returned HTTP error %d. Check the endpoint path.", subErr.StatusCode)

	case ErrTypeRejected:
		lines := []string{"The intake server rejected the brief:"}
		for _, f := range subErr.Fields {
			lines = append(lines, fmt.Sprintf("  • %s (%s): %s", f.Field, f.Section, f.Message))
		}
		return strings.Join(lines, "\n")

	case ErrTypeParse:
		return strings.Join([]string{
			"Failed to parse the intake server's response.",
			"The endpoint may not be a logobrief intake server.",
		}, "\n")

	default:
		return "An error occurred. Please check the error message for details."
	}
}

// GetShortErrorMessage returns a concise, user-friendly error message
func GetShortErrorMessage(err error) string {
	subErr, ok := asSubmitError(err)
	if !ok {
		return err.Error()
	}

	switch subErr.Type {
	case ErrTypeTimeout:
		return "Intake server not responding (timeout)"
	case ErrTypeConnectionRefused:
		return "Intake server refused connection - is it running?"
	case ErrTypeDNS:
		return "Cannot resolve intake server hostname"
	case ErrTypeNetwork:
		switch subErr.NetworkSubtype {
		case NetworkErrorCancelled:
			return "Submission cancelled"
		case NetworkErrorHostUnreachable:
			return "Intake server unreachable - check network connection"
		case NetworkErrorNetworkUnreachable:
			return "Network unreachable - check connection"
		default:
			return "Network error - check connection"
		}
	case ErrTypeHTTP:
		return fmt.Sprintf("Intake server error (HTTP %d)", subErr.StatusCode)
	case ErrTypeRejected:
		if len(subErr.Fields) > 0 {
			return fmt.Sprintf("Brief rejected: %s", subErr.Fields[0].Message)
		}
		return "Brief rejected: " + subErr.Message
	case ErrTypeParse:
		return "Failed to parse intake server response"
	default:
		return subErr.Message
	}
}
