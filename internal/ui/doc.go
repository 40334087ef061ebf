// Package ui provides non-interactive terminal output for the logobrief CLI.
//
// The interactive questionnaire lives in internal/wizard/tui. The components
// here render once and are written straight to a writer:
//
//   - Header: command banner showing the operation and its parameters
//   - Progress: step list with a progress bar
//   - Result: success, failure, and warning boxes
//   - Brief: read-only summary of a submitted questionnaire
//
// A Runner drives the header → progress → result flow around one operation:
//
//	runner := ui.NewRunner(ui.RunnerConfig{
//	    Title:   "Submit Brief",
//	    Command: "logobrief submit --file brief.yaml",
//	    Steps:   []string{"Loading brief", "Validating answers", "Submitting"},
//	})
//
//	err := runner.Run(ctx, func(ctx context.Context, onStep ui.StepCallback) (*ui.Outcome, error) {
//	    onStep(1, ui.StepRunning, "")
//	    // ...
//	    onStep(1, ui.StepComplete, "")
//	    return &ui.Outcome{Title: "Questionnaire submitted!"}, nil
//	})
//
// Logging is controlled separately through LOGOBRIEF_LOG_LEVEL. When it is
// unset zap is silent, so only the curated output reaches the terminal.
package ui
