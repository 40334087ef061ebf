// Package submission delivers completed briefs and tracks the state of an
// in-flight submission.
//
// A Transport performs the delivery. SimulatedTransport waits a fixed delay
// and always succeeds; HTTPClient POSTs the brief as JSON to an intake
// server. Handler enforces that only one submission runs at a time and only
// after the engagement terms are accepted, and turns each outcome into the
// Notification shown to the user.
//
// Transport failures are returned as *SubmitError, classified by ErrorType so
// callers can print a short message and a troubleshooting hint:
//
//	receipt, err := client.Submit(ctx, form)
//	if err != nil {
//	    fmt.Println(submission.GetShortErrorMessage(err))
//	    fmt.Println(submission.GetTroubleshootingHint(err))
//	}
package submission
