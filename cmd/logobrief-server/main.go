// Logobrief-server is the intake server for logo design briefs.
//
// It accepts briefs submitted by the logobrief questionnaire over HTTP,
// validates them, and relays every accepted brief to live feed subscribers
// over WebSocket. It advertises itself on the local network via mDNS so
// that questionnaires can find it without configuration. Nothing is stored.
//
// Usage:
//
//	logobrief-server serve [flags]
//
// See 'logobrief-server serve --help' for available options.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/muurk/logobrief/internal/config"
	"github.com/muurk/logobrief/internal/discovery"
	"github.com/muurk/logobrief/internal/intake"
	"github.com/muurk/logobrief/internal/logging"
	"github.com/muurk/logobrief/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "logobrief-server",
	Short: "Logobrief Intake Server",
	Long: `A standalone intake server for logo design briefs.

Briefs are POSTed as JSON to /api/v1/briefs, validated, and pushed to
every client connected to the /api/v1/feed WebSocket.

Note: to fill in a brief, use the separate 'logobrief' utility.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// Serve command and flags
var (
	listenAddr string
	logLevel   string
	advertise  bool
	instance   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the intake server",
	Long: `Start the intake server and, unless disabled, advertise it over mDNS as
_logobrief._tcp in the local. domain.

The server shuts down gracefully on Ctrl+C or SIGTERM, closing feed
connections first.`,
	Example: `  # Start on the default address (:8080)
  logobrief-server serve

  # Custom port with debug logging
  logobrief-server serve --listen :9000 --log-level debug

  # Do not announce on the local network
  logobrief-server serve --advertise=false

  # Announce under a fixed name
  logobrief-server serve --name studio-intake`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "listen", "", "Listen address (default from config, :8080)")
	serveCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	serveCmd.Flags().BoolVar(&advertise, "advertise", true, "Advertise the server over mDNS")
	serveCmd.Flags().StringVar(&instance, "name", "", "mDNS instance name (default: logobrief-<hostname>)")
}

func runServe(cmd *cobra.Command, args []string) error {
	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("listen") {
		settings.Server.ListenAddr = listenAddr
	}
	if cmd.Flags().Changed("advertise") {
		settings.Server.Advertise = advertise
	}
	if cmd.Flags().Changed("name") {
		settings.Server.InstanceName = instance
	}

	srv, err := intake.New(&intake.Config{
		Addr:     settings.Server.ListenAddr,
		LogLevel: logLevel,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	// bind first so the advertised port is the real one
	if err := srv.Listen(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Serve(ctx)
	})

	if settings.Server.Advertise {
		ad := discovery.Advertisement{
			Instance: settings.Server.InstanceName,
			Port:     srv.Port(),
			Path:     intake.BriefsPath,
			Version:  version.Version,
		}
		g.Go(func() error {
			err := discovery.Advertise(ctx, ad)
			if err != nil && !errors.Is(err, context.Canceled) {
				// the server stays useful with a manual endpoint
				logging.Warn("mDNS advertisement failed", zap.Error(err))
			}
			return nil
		})
	}

	fmt.Printf("Intake server listening on %s\n", srv.Addr())
	return g.Wait()
}

// Version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("logobrief-server %s (commit: %s)\n", version.Version, version.Commit)
	},
}
