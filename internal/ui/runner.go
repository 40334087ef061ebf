package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"
)

// RunnerConfig describes a non-interactive command run by a Runner.
type RunnerConfig struct {
	Title   string            // e.g., "Submit Brief"
	Command string            // e.g., "logobrief submit --file brief.yaml"
	Params  map[string]string // shown in the header
	Steps   []string          // step names, in order
	Output  io.Writer         // default: os.Stdout

	// Troubleshooting returns tips for the failure box. Optional.
	Troubleshooting func(err error) []string
}

// Outcome is what an operation reports for the closing result box. Title
// and Description override the defaults derived from RunnerConfig.Title.
type Outcome struct {
	Title       string
	Description string
	Details     map[string]string
}

// Operation is the work a Runner drives. It reports progress through onStep.
// On failure it may still return an Outcome to customize the failure box.
type Operation func(ctx context.Context, onStep StepCallback) (*Outcome, error)

// Runner prints header → progress → result around a single operation.
type Runner struct {
	config   RunnerConfig
	header   *Header
	progress *Progress
	output   io.Writer
	width    int
}

// NewRunner creates a runner for a command
func NewRunner(config RunnerConfig) *Runner {
	if config.Output == nil {
		config.Output = os.Stdout
	}
	width := GetTerminalWidth()

	header := NewHeader(config.Title, config.Command, config.Params)
	header.SetWidth(width)

	var prog *Progress
	if len(config.Steps) > 0 {
		prog = NewProgress("", config.Steps...)
		prog.SetWidth(width)
	}

	return &Runner{
		config:   config,
		header:   header,
		progress: prog,
		output:   config.Output,
		width:    width,
	}
}

// SetWidth overrides the detected terminal width.
func (r *Runner) SetWidth(width int) *Runner {
	r.width = width
	r.header.SetWidth(width)
	if r.progress != nil {
		r.progress.SetWidth(width)
	}
	return r
}

// Progress returns the step tracker, or nil when the command has no steps.
func (r *Runner) Progress() *Progress {
	return r.progress
}

// Run prints the header, executes op, and prints the result box. The
// operation's error is returned unchanged.
func (r *Runner) Run(ctx context.Context, op Operation) error {
	start := time.Now()

	_, _ = fmt.Fprintln(r.output, r.header.Render())
	_, _ = fmt.Fprintln(r.output)

	outcome, err := op(ctx, r.onStep)
	duration := time.Since(start).Round(time.Millisecond)

	_, _ = fmt.Fprintln(r.output)
	_, _ = fmt.Fprintln(r.output, r.result(outcome, err, duration).Render())

	return err
}

func (r *Runner) onStep(stepNumber int, status StepStatus, message string) {
	if r.progress == nil || stepNumber < 1 || stepNumber > len(r.progress.Steps) {
		return
	}
	r.progress.UpdateStep(stepNumber, status, message)

	line := r.progress.renderStepLine(r.progress.Steps[stepNumber-1])
	switch {
	case status.done():
		// Pad so a shorter final line fully covers the running one.
		_, _ = fmt.Fprintf(r.output, "%s%s\n", line, "   ")
	case status == StepRunning:
		_, _ = fmt.Fprint(r.output, line+"\r")
	}
}

func (r *Runner) result(outcome *Outcome, err error, duration time.Duration) *Result {
	if outcome == nil {
		outcome = &Outcome{}
	}

	var res *Result
	if err != nil {
		title := outcome.Title
		if title == "" {
			title = r.config.Title + " failed"
		}
		var tips []string
		if r.config.Troubleshooting != nil {
			tips = r.config.Troubleshooting(err)
		}
		res = NewFailureResult(title, err, tips)
	} else {
		title := outcome.Title
		if title == "" {
			title = r.config.Title + " complete"
		}
		res = NewSuccessResult(title, nil)
	}

	res.SetWidth(r.width)
	res.SetDescription(outcome.Description)
	for k, v := range outcome.Details {
		res.AddDetail(k, v)
	}
	res.AddDetail("Duration", duration.String())
	return res
}
