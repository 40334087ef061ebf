package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/muurk/logobrief/internal/config"
	"github.com/muurk/logobrief/internal/logging"
	"github.com/muurk/logobrief/internal/questionnaire"
	"github.com/muurk/logobrief/internal/submission"
)

// useTestSettings points the settings file at a temp config with a 1ms
// simulated delay.
func useTestSettings(t *testing.T) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	data := fmt.Sprintf("version: %d\nsubmission:\n  timeout_seconds: 5\n  simulated_delay_ms: 1\n", config.CurrentVersion)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(config.ConfigPathEnvVar, path)
	t.Setenv(logging.LogLevelEnvVar, "")
	t.Setenv(logging.LogFileEnvVar, "")
	if _, err := config.ReloadSettings(); err != nil {
		t.Fatalf("ReloadSettings() error = %v", err)
	}
	t.Cleanup(func() { _, _ = config.ReloadSettings() })
}

func writeBrief(t *testing.T, f questionnaire.Form) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "brief.yaml")
	if err := questionnaire.SaveForm(path, f); err != nil {
		t.Fatalf("SaveForm() error = %v", err)
	}
	return path
}

func completeBrief() questionnaire.Form {
	f := questionnaire.NewForm()
	f.BusinessName = "Bean There"
	f.Industry = "Coffee Shop"
	f.BusinessDescription = "Roastery and cafe"
	f.LogoMessage = "Warmth"
	f.TargetAudience = "Commuters"
	f.LogoType = "combination"
	f.LogoUseLocations = []string{"Website", "Signage"}
	f.FileFormats = []string{"SVG"}
	f.ServiceTier = "logo-marketing"
	f.Deadline = "2026-12-01"
	f.TermsAgreement = true
	return f
}

// runRoot executes the root command with args and returns its output.
func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()

	briefFile, assumeYes = "", false
	for _, name := range []string{"file", "yes"} {
		submitCmd.Flags().Lookup(name).Changed = false
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestSubmitCommand(t *testing.T) {
	unagreed := completeBrief()
	unagreed.TermsAgreement = false

	incomplete := completeBrief()
	incomplete.Deadline = ""
	incomplete.FileFormats = nil

	tests := []struct {
		name     string
		form     questionnaire.Form
		yes      bool
		wantErr  error
		contains []string
	}{
		{
			name:     "success",
			form:     completeBrief(),
			yes:      true,
			contains: []string{"Questionnaire submitted!", "Receipt", "simulated"},
		},
		{
			name:     "terms accepted by flag",
			form:     unagreed,
			yes:      true,
			contains: []string{"Questionnaire submitted!"},
		},
		{
			// Without a terminal the command refuses outright; with one,
			// the empty input declines the prompt.
			name:    "terms refused without --yes",
			form:    unagreed,
			wantErr: submission.ErrTermsNotAccepted,
		},
		{
			name:     "incomplete brief",
			form:     incomplete,
			yes:      true,
			wantErr:  errIncomplete,
			contains: []string{"Brief is incomplete", "deadline", "fileFormats"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useTestSettings(t)
			args := []string{"submit", "--file", writeBrief(t, tt.form)}
			if tt.yes {
				args = append(args, "--yes")
			}

			out, err := runRoot(t, args...)

			if tt.wantErr == nil && err != nil {
				t.Fatalf("Execute() error = %v\n%s", err, out)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("Execute() error = %v, want %v", err, tt.wantErr)
			}
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestSubmitCommandRequiresFile(t *testing.T) {
	useTestSettings(t)

	if _, err := runRoot(t, "submit", "--yes"); err == nil {
		t.Error("Execute() without --file succeeded, want error")
	}
}
