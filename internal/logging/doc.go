// Package logging provides structured logging for logobrief.
//
// This package wraps a global zap logger with convenience functions. Logging
// is silent unless a level is passed to Initialize or LOGOBRIEF_LOG_LEVEL is
// set, so interactive commands produce no stray output.
//
// # Structured Logging
//
//	logging.Info("Brief received",
//	    zap.String("id", receipt.ID),
//	    zap.String("business_name", form.BusinessName),
//	)
//
// # Domain Helpers
//
//	logging.LogSubmission("http", form.BusinessName, form.ServiceTier, receipt.ID, err)
//	logging.LogAttachment("/home/me/sketch.png")
//	logging.LogHTTPRequest(r.RemoteAddr, r.Method, r.URL.Path, logging.HeaderMap(r.Header))
//	logging.LogFeedEvent(conn.RemoteAddr().String(), "subscribed", hub.Count())
//
// # TUI Output
//
// The questionnaire runs in the terminal's alternate screen. Use
// InitializeWithOutput with a file path (or set LOGOBRIEF_LOG_FILE) to keep
// log lines off the screen:
//
//	if err := logging.InitializeWithOutput("debug", "/tmp/logobrief.log"); err != nil {
//	    return err
//	}
//	defer logging.Sync()
package logging
