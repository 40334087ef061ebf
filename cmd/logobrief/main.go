// Logobrief collects logo design requirements from a client.
//
// Running without arguments launches the interactive questionnaire. The
// completed brief is sent to a logobrief intake server when one is
// configured or discovered, and to a simulated backend otherwise.
//
// Usage:
//
//	logobrief [command] [flags]
//
// See 'logobrief --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/logobrief/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "logobrief",
	Short: "Logo Design Questionnaire",
	Long: `An interactive questionnaire for logo design briefs.

Walks through five sections (company, design, history, usage, budget),
then submits the brief to an intake server or a simulated backend.

If no command is specified, the questionnaire launches automatically.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: run the questionnaire when no subcommand provided
		return runFill(cmd, args)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("logobrief %s (commit: %s)\n", version.Version, version.Commit)
	},
}
