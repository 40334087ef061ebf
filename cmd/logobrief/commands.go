package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/muurk/logobrief/internal/config"
	"github.com/muurk/logobrief/internal/intake"
	"github.com/muurk/logobrief/internal/logging"
	"github.com/muurk/logobrief/internal/questionnaire"
	"github.com/muurk/logobrief/internal/submission"
	"github.com/muurk/logobrief/internal/ui"
	"github.com/muurk/logobrief/internal/wizard/tui"
)

// Command flags
var (
	fromFile     string
	outFile      string
	briefFile    string
	assumeYes    bool
	scanTimeout  int
	catalogAsYML bool
	feedURL      string
	forceInit    bool
)

var errIncomplete = errors.New("brief is incomplete")

func init() {
	rootCmd.AddCommand(fillCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(configCmd)
}

// fillCmd launches the interactive questionnaire
var fillCmd = &cobra.Command{
	Use:   "fill",
	Short: "Launch the interactive questionnaire",
	Long: `Launch the interactive logo design questionnaire.

Answers can be pre-filled from a brief file and saved to one when the
questionnaire exits, whether or not it was submitted.`,
	Example: `  # Fill in a new brief (fill is the default command)
  logobrief fill
  logobrief

  # Continue a saved brief and save it again on exit
  logobrief fill --from brief.yaml --out brief.yaml

  # Send to a specific intake server
  logobrief --endpoint 192.168.1.20:8080`,
	RunE: runFill,
}

func init() {
	fillCmd.Flags().StringVar(&fromFile, "from", "", "Pre-fill answers from a YAML or JSON brief")
	fillCmd.Flags().StringVar(&outFile, "out", "", "Save answers to this file on exit")
}

func runFill(cmd *cobra.Command, args []string) error {
	if !ui.IsInteractive() {
		return fmt.Errorf("the questionnaire needs a terminal; use 'logobrief submit --file' instead")
	}

	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if err := initLogging(settings, true); err != nil {
		return err
	}
	defer logging.Sync()

	opts := tui.Options{
		Transport:      newTransport(settings),
		NotifyDuration: settings.NotificationDuration(),
		Context:        cmd.Context(),
	}
	if fromFile != "" {
		form, err := questionnaire.LoadForm(fromFile)
		if err != nil {
			return err
		}
		opts.Form = &form
	}

	appConfig := tui.AppConfig{
		Options:       opts,
		Discover:      settings.Discovery.Enabled && settings.Submission.Endpoint == "",
		Scan:          newScanner(settings.DiscoverTimeout()).Scan,
		ScanTimeout:   settings.DiscoverTimeout(),
		SubmitTimeout: settings.SubmitTimeout(),
	}

	final, err := tui.Run(appConfig)
	if err != nil {
		return fmt.Errorf("questionnaire error: %w", err)
	}

	printer := ui.NewPrinter(cmd.OutOrStdout())
	if outFile != "" {
		if err := questionnaire.SaveForm(outFile, final.Form); err != nil {
			return err
		}
		printer.Println(fmt.Sprintf("Answers saved to %s", outFile))
	}
	switch receipt := final.Receipt(); {
	case receipt != nil:
		printer.PrintSuccess("Questionnaire submitted!", map[string]string{
			"Receipt":   receipt.ID,
			"Business":  final.Form.BusinessName,
			"Transport": final.TransportName(),
		})
	case final.LastError() != nil:
		printer.PrintFailure("Questionnaire not submitted", final.LastError(), troubleshooting(final.LastError()))
	}
	return nil
}

// submitCmd submits a brief file without the questionnaire
var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit a brief from a file",
	Long: `Submit a YAML or JSON brief without the interactive questionnaire.

The brief is validated first. If it does not accept the design engagement
terms, you are asked to type "I AGREE" unless --yes is given.`,
	Example: `  # Submit to the configured intake server (or simulated)
  logobrief submit --file brief.yaml

  # Submit to a discovered intake server, accepting the terms
  logobrief submit --file brief.json --discover --yes`,
	RunE: runSubmit,
}

func init() {
	submitCmd.Flags().StringVarP(&briefFile, "file", "f", "", "Brief file (.yaml, .yml, or .json)")
	submitCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Accept the design engagement terms without prompting")
	_ = submitCmd.MarkFlagRequired("file")
}

func runSubmit(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if err := initLogging(settings, false); err != nil {
		return err
	}
	defer logging.Sync()

	form, err := questionnaire.LoadForm(briefFile)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !form.TermsAgreement {
		if !assumeYes && !ui.IsInteractive() {
			return fmt.Errorf("%w: pass --yes to accept them without a terminal", submission.ErrTermsNotAccepted)
		}
		if !assumeYes && !ui.ConfirmTerms(cmd.InOrStdin(), out) {
			return submission.ErrTermsNotAccepted
		}
		form, _ = form.SetBool(questionnaire.FieldTermsAgreement, true)
	}

	catalog := questionnaire.MustCatalog()
	runner := ui.NewRunner(ui.RunnerConfig{
		Title:   "Submit Brief",
		Command: "logobrief submit --file " + briefFile,
		Params: map[string]string{
			"Business": form.BusinessName,
			"Package":  catalog.DisplayValue(form, questionnaire.FieldServiceTier),
		},
		Steps:  []string{"Validating answers", "Resolving intake server", "Submitting brief"},
		Output: out,
		Troubleshooting: func(err error) []string {
			if errors.Is(err, errIncomplete) {
				return []string{"Fix the listed answers in " + briefFile + " and run submit again"}
			}
			return troubleshooting(err)
		},
	})

	return runner.Run(cmd.Context(), func(ctx context.Context, onStep ui.StepCallback) (*ui.Outcome, error) {
		onStep(1, ui.StepRunning, "")
		if errs := questionnaire.ValidateWith(catalog, form); len(errs) > 0 {
			onStep(1, ui.StepFailed, fmt.Sprintf("%d problem(s)", len(errs)))
			details := make(map[string]string, len(errs))
			for _, e := range errs {
				details[string(e.Field)] = e.Message
			}
			return &ui.Outcome{Title: "Brief is incomplete", Details: details}, errIncomplete
		}
		onStep(1, ui.StepComplete, "all required answers present")

		onStep(2, ui.StepRunning, "")
		transport, where := resolveTransport(ctx, settings)
		onStep(2, ui.StepComplete, where)

		onStep(3, ui.StepRunning, "")
		var handler submission.Handler
		receipt, note, err := handler.Run(ctx, transport, form)
		if err != nil {
			onStep(3, ui.StepFailed, submission.GetShortErrorMessage(err))
			return &ui.Outcome{Title: note.Title, Description: note.Description}, err
		}
		onStep(3, ui.StepComplete, receipt.ID)

		return &ui.Outcome{
			Title:       note.Title,
			Description: note.Description,
			Details: map[string]string{
				"Receipt":   receipt.ID,
				"Transport": transport.Name(),
				"Received":  receipt.ReceivedAt.Format("2006-01-02 15:04:05 MST"),
			},
		}, nil
	})
}

// catalogCmd prints the static option lists
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Show service packages and answer options",
	Long: `Show the service packages, logo styles, colors, and other options that a
brief may use. Use --yaml to print the raw catalog for writing brief files.`,
	RunE: runCatalog,
}

func init() {
	catalogCmd.Flags().BoolVar(&catalogAsYML, "yaml", false, "Print the catalog as YAML")
}

func runCatalog(cmd *cobra.Command, args []string) error {
	catalog, err := questionnaire.LoadCatalog()
	if err != nil {
		return err
	}

	if catalogAsYML {
		data, err := yaml.Marshal(catalog)
		if err != nil {
			return fmt.Errorf("failed to marshal catalog: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	ui.NewPrinter(cmd.OutOrStdout()).PrintCatalog(catalog)
	return nil
}

// discoverCmd lists intake servers on the local network
var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Scan for intake servers on the network",
	Long: `Scan for logobrief intake servers using mDNS/DNS-SD discovery.

Servers started with 'logobrief-server serve' advertise themselves as
_logobrief._tcp unless --advertise=false is given.`,
	Example: `  # Scan for 3 seconds (default)
  logobrief discover

  # Longer scan for slow networks
  logobrief discover --scan-timeout 10`,
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().IntVar(&scanTimeout, "scan-timeout", 0, "Scan timeout in seconds (default from config)")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if err := initLogging(settings, false); err != nil {
		return err
	}
	defer logging.Sync()

	timeout := settings.DiscoverTimeout()
	if scanTimeout > 0 {
		timeout = time.Duration(scanTimeout) * time.Second
	}

	fmt.Printf("Scanning for intake servers (timeout: %v)...\n\n", timeout)

	services, err := newScanner(timeout).Scan(cmd.Context())
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(services) == 0 {
		ui.NewPrinter(cmd.OutOrStdout()).PrintWarning("No intake servers found", map[string]string{
			"Start one":    "logobrief-server serve",
			"Network":      "multicast DNS must be allowed between you and the server",
			"Slow network": "try a longer --scan-timeout",
			"Manual":       "use --endpoint to name the server",
		})
		return nil
	}

	fmt.Printf("Found %d intake server(s):\n\n", len(services))

	for i, svc := range services {
		fmt.Printf("%d. %s\n", i+1, svc.Instance)
		fmt.Printf("   Endpoint: %s\n", svc.URL())
		fmt.Printf("   Feed:     %s\n", svc.FeedURL())
		if svc.Version != "" {
			fmt.Printf("   Version:  %s\n", svc.Version)
		}
		fmt.Println()
	}

	fmt.Println("Use 'logobrief --endpoint <url>' to submit to a specific server")
	fmt.Println("Use 'logobrief watch --feed <url>' to follow received briefs")

	return nil
}

// watchCmd follows the live feed of an intake server
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print briefs as an intake server receives them",
	Long: `Connect to an intake server's live feed and print every brief it accepts.

Without --feed, the first intake server found on the network is used.
Press Ctrl+C to stop.`,
	Example: `  # Follow the first discovered server
  logobrief watch

  # Follow a specific server
  logobrief watch --feed ws://192.168.1.20:8080/api/v1/feed`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&feedURL, "feed", "", "Feed websocket URL (default: discover)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if err := initLogging(settings, false); err != nil {
		return err
	}
	defer logging.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	url := feedURL
	if url == "" {
		svc, err := newScanner(settings.DiscoverTimeout()).First(ctx)
		if err != nil {
			return fmt.Errorf("no feed URL given and %w", err)
		}
		url = svc.FeedURL()
	}

	printer := ui.NewPrinter(cmd.OutOrStdout())
	printer.PrintHeader("Watch Briefs", "logobrief watch", map[string]string{"Feed": url})
	printer.Println("Waiting for briefs... (Ctrl+C to stop)")
	printer.Newline()

	return intake.Watch(ctx, url, func(ev intake.FeedEvent) {
		printer.PrintBrief(fmt.Sprintf("Brief %s (%s)", ev.ID, ev.ReceivedAt.Local().Format("15:04:05")), ev.Brief)
	})
}

// configCmd manages the settings file
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the settings file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default settings file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.CreateDefaultConfig(forceInit)
		if err != nil {
			return err
		}
		fmt.Printf("✓ Settings written to %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		data, err := yaml.Marshal(settings)
		if err != nil {
			return fmt.Errorf("failed to marshal settings: %w", err)
		}
		fmt.Printf("# %s\n%s", path, data)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing settings file")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}
