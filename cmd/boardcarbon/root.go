package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

// newRootCmd builds the boardcarbon root command. The persistent debug
// flag switches console logging to debug level for every subcommand.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "boardcarbon",
		Short: "Embodied-carbon estimation for electronic hardware",
		Long: "boardcarbon estimates the embodied carbon of electronic hardware from a\n" +
			"bill of materials, dispatching every line to a per-category emission\n" +
			"factor model.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.AddCommand(newEstimateCmd())
	return cmd
}

// newLogger builds the console logger honoring the persistent debug flag.
func newLogger(cmd *cobra.Command) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}
