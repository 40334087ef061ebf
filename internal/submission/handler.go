package submission

import (
	"context"
	"errors"
	"fmt"

	"github.com/muurk/logobrief/internal/logging"
	"github.com/muurk/logobrief/internal/questionnaire"
)

var (
	// ErrTermsNotAccepted is returned by Begin when the engagement terms are unchecked.
	ErrTermsNotAccepted = errors.New("design engagement terms have not been accepted")

	// ErrInFlight is returned by Begin while a submission is already running.
	ErrInFlight = errors.New("a submission is already in progress")
)

// State is the lifecycle state of a submission.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Variant selects how a notification is styled.
type Variant int

const (
	VariantDefault Variant = iota
	VariantDestructive
)

// Notification is a transient message shown after an action completes.
type Notification struct {
	Title       string
	Description string
	Detail      string // transport-specific reason, empty on success
	Variant     Variant
}

// SuccessNotification is shown when a brief has been accepted.
func SuccessNotification() Notification {
	return Notification{
		Title:       "Questionnaire submitted!",
		Description: "Thank you for your submission. We will review your requirements.",
	}
}

// FailureNotification is shown when a submission fails.
func FailureNotification(err error) Notification {
	n := Notification{
		Title:       "Submission failed",
		Description: "There was an error submitting your questionnaire. Please try again.",
		Variant:     VariantDestructive,
	}
	if err != nil {
		n.Detail = GetShortErrorMessage(err)
	}
	return n
}

// AttachmentNotification is shown when a concept image path is confirmed.
func AttachmentNotification() Notification {
	return Notification{
		Title:       "File attached",
		Description: "Your concept image has been attached.",
	}
}

// IncompleteNotification is shown when submit is pressed with a required
// answer missing or malformed. first is the error the questionnaire jumps to.
func IncompleteNotification(first *questionnaire.FieldError) Notification {
	label := string(first.Field)
	if spec, ok := questionnaire.Spec(first.Field); ok {
		label = spec.Label
	}
	return Notification{
		Title:       "Missing information",
		Description: fmt.Sprintf("Please complete %q in %s.", label, first.Section.Title()),
		Detail:      first.Message,
		Variant:     VariantDestructive,
	}
}

// Handler tracks a single submission lifecycle:
// Idle -> Submitting -> Idle (success) or Failed. Failed behaves like Idle
// for the next attempt.
//
// Handler is not safe for concurrent use; it is owned by one event loop.
type Handler struct {
	state   State
	lastErr error
	receipt *Receipt
}

// State returns the current lifecycle state.
func (h *Handler) State() State { return h.state }

// Submitting reports whether a submission is in flight.
func (h *Handler) Submitting() bool { return h.state == StateSubmitting }

// LastError returns the error of the most recent failed attempt.
func (h *Handler) LastError() error { return h.lastErr }

// Receipt returns the receipt of the most recent successful attempt.
func (h *Handler) Receipt() *Receipt { return h.receipt }

// CanSubmit reports whether the submit control is enabled.
func (h *Handler) CanSubmit(termsAgreed bool) bool {
	return termsAgreed && h.state != StateSubmitting
}

// Begin moves to Submitting. It fails without changing state if the terms
// are not accepted or a submission is already running.
func (h *Handler) Begin(form questionnaire.Form) error {
	if h.state == StateSubmitting {
		return ErrInFlight
	}
	if !form.TermsAgreement {
		return ErrTermsNotAccepted
	}
	h.state = StateSubmitting
	h.lastErr = nil
	return nil
}

// Complete records the outcome of the transport call started by Begin and
// returns the notification to show.
func (h *Handler) Complete(receipt *Receipt, err error) Notification {
	if err != nil {
		h.state = StateFailed
		h.lastErr = err
		return FailureNotification(err)
	}
	h.state = StateIdle
	h.receipt = receipt
	return SuccessNotification()
}

// Run performs Begin, the transport call, and Complete in one blocking step.
// It is used by non-interactive commands.
func (h *Handler) Run(ctx context.Context, t Transport, form questionnaire.Form) (*Receipt, Notification, error) {
	if err := h.Begin(form); err != nil {
		return nil, Notification{}, err
	}
	receipt, err := Dispatch(ctx, t, form)
	return receipt, h.Complete(receipt, err), err
}

// Dispatch sends form through t and logs the outcome. It leaves handler
// state alone; interactive callers run it inside a command between Begin
// and Complete.
func Dispatch(ctx context.Context, t Transport, form questionnaire.Form) (*Receipt, error) {
	receipt, err := t.Submit(ctx, form)
	id := ""
	if receipt != nil {
		id = receipt.ID
	}
	logging.LogSubmission(t.Name(), form.BusinessName, form.ServiceTier, id, err)
	return receipt, err
}
