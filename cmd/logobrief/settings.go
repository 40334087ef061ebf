package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/logobrief/internal/config"
	"github.com/muurk/logobrief/internal/discovery"
	"github.com/muurk/logobrief/internal/logging"
	"github.com/muurk/logobrief/internal/submission"
)

// Flags shared by every command (persistent on root)
var (
	endpoint   string
	discover   bool
	timeoutSec int
	logLevel   string
	logFile    string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", "", "Intake server URL or host:port (default: simulated submission)")
	rootCmd.PersistentFlags().BoolVar(&discover, "discover", false, "Browse the local network for an intake server")
	rootCmd.PersistentFlags().IntVar(&timeoutSec, "timeout", 0, "Submission timeout in seconds (default from config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file")
}

// loadSettings reads the settings file and applies flags the user set
// explicitly on top of it.
func loadSettings(cmd *cobra.Command) (*config.Settings, error) {
	settings, err := config.LoadSettings()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("endpoint") {
		settings.Submission.Endpoint = endpoint
	}
	if flags.Changed("discover") {
		settings.Discovery.Enabled = discover
	}
	if flags.Changed("timeout") && timeoutSec > 0 {
		settings.Submission.TimeoutSeconds = timeoutSec
	}
	if flags.Changed("log-level") {
		settings.Logging.Level = logLevel
	}
	if flags.Changed("log-file") {
		settings.Logging.File = logFile
	}
	return settings, nil
}

// initLogging starts the logger. The questionnaire owns the terminal, so
// interactive commands never log to stdout.
func initLogging(settings *config.Settings, interactive bool) error {
	level := settings.Logging.Level
	if level == "" {
		level = os.Getenv(logging.LogLevelEnvVar)
	}
	path := settings.Logging.File
	if path == "" {
		path = os.Getenv(logging.LogFileEnvVar)
	}
	if interactive && level != "" && path == "" {
		path = filepath.Join(os.TempDir(), "logobrief.log")
	}
	return logging.InitializeWithOutput(level, path)
}

// newTransport returns the transport the settings ask for: HTTP when an
// endpoint is set, simulated otherwise.
func newTransport(settings *config.Settings) submission.Transport {
	if settings.Submission.Endpoint != "" {
		client := submission.NewHTTPClient(settings.Submission.Endpoint)
		client.SetTimeout(settings.SubmitTimeout())
		return client
	}
	return &submission.SimulatedTransport{Delay: settings.SimulatedDelay()}
}

// resolveTransport is newTransport, with a discovery lookup first when
// enabled and no endpoint is configured. Discovery failure falls back to
// the simulated transport. The returned string describes the choice.
func resolveTransport(ctx context.Context, settings *config.Settings) (submission.Transport, string) {
	if settings.Submission.Endpoint == "" && settings.Discovery.Enabled {
		scanner := newScanner(settings.DiscoverTimeout())
		svc, err := scanner.First(ctx)
		if err != nil {
			logging.Warn("Intake server discovery failed", zap.Error(err))
			return newTransport(settings), "no intake server found, using simulated"
		}
		settings.Submission.Endpoint = svc.URL()
		return newTransport(settings), fmt.Sprintf("%s (%s)", svc.Instance, svc.URL())
	}

	t := newTransport(settings)
	if client, ok := t.(*submission.HTTPClient); ok {
		return t, client.Endpoint
	}
	return t, "simulated"
}

func newScanner(timeout time.Duration) *discovery.Scanner {
	scanner := discovery.NewScanner()
	if timeout > 0 {
		scanner.Timeout = timeout
	}
	return scanner
}

// troubleshooting turns a submission hint into result box tips.
func troubleshooting(err error) []string {
	var tips []string
	for _, line := range strings.Split(submission.GetTroubleshootingHint(err), "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimSpace(strings.TrimPrefix(line, "•"))
		if line == "" || line == "Troubleshooting:" {
			continue
		}
		tips = append(tips, line)
	}
	return tips
}
