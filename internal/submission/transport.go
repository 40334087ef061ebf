package submission

import (
	"context"
	"time"

	"github.com/muurk/logobrief/internal/questionnaire"
)

// Transport delivers a brief to its destination.
type Transport interface {
	// Submit sends the form and blocks until it is accepted or fails.
	Submit(ctx context.Context, form questionnaire.Form) (*Receipt, error)

	// Name identifies the transport in logs and output.
	Name() string
}

// Receipt is the acknowledgement returned for an accepted brief.
type Receipt struct {
	ID         string    `json:"id"`
	ReceivedAt time.Time `json:"received_at"`
	Simulated  bool      `json:"simulated,omitempty"`
}

// Rejection is the body an intake server returns with 400 Bad Request.
type Rejection struct {
	Error  string       `json:"error"`
	Fields []FieldIssue `json:"fields,omitempty"`
}

// FieldIssue is one entry of Rejection.Fields.
type FieldIssue struct {
	Field   string `json:"field"`
	Section string `json:"section"`
	Message string `json:"message"`
}

// RejectionFromErrors builds the 400 response body for failed validation.
func RejectionFromErrors(errs []*questionnaire.FieldError) *Rejection {
	r := &Rejection{Error: "brief failed validation"}
	for _, e := range errs {
		r.Fields = append(r.Fields, FieldIssue{
			Field:   string(e.Field),
			Section: e.Section.ID(),
			Message: e.Message,
		})
	}
	return r
}
