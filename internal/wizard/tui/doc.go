// Package tui implements the interactive logo design questionnaire.
//
// The questionnaire is a full-screen Bubble Tea program. It follows the Elm
// architecture: models are values, Update returns the next model plus
// commands, and View is a pure rendering of model state.
//
// # Architecture
//
// The TUI has two screens:
//   - Discovery: browse the local network for intake servers (optional)
//   - Questionnaire: five tabbed sections and the submit control
//
// Both screens use RenderApplicationContainer for a consistent layout with a
// header, content area, and context-sensitive help footer.
//
// # Framework Components
//
//   - bubbles/textinput: single-line answers, the deadline, the concept image path
//   - bubbles/textarea: long-form answers
//   - bubbles/viewport: scrolling section content
//   - bubbles/spinner: submission and scan indicators
//   - bubbles/list, bubbles/progress: the intake server picker
//   - bubbles/help, bubbles/key: key bindings and the help footer
//   - lipgloss: styling and layout
//
// # Usage Example
//
//	final, err := tui.Run(tui.AppConfig{
//	    Options: tui.Options{Transport: submission.NewSimulatedTransport()},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(final.Form.BusinessName)
//
// # Key Bindings
//
//   - Discovery: ↑/↓ navigate, enter use server, r rescan, m enter endpoint, s skip, q quit
//   - Questionnaire: tab/shift+tab (or ctrl+n/ctrl+p) switch sections, ↑/↓ move focus,
//     space/enter select or toggle, ctrl+s submit, ? or f1 help (f1 inside text fields), ctrl+c quit
//
// Section changes scroll the panel back to the top. Submit is disabled until
// the engagement terms are accepted and while a submission is in flight.
//
// # Thread Safety
//
// All model updates occur in the Bubble Tea event loop. The transport call
// runs as a tea.Cmd and reports back with a message; the form is copied
// into the command before it starts.
package tui
