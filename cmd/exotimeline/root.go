package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/exotimeline/internal/log"
)

// NewRootCmd creates the root command for exotimeline.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exotimeline",
		Short: "Animate the history of exoplanet discoveries",
		Long: `exotimeline fetches the Open Exoplanet Catalogue and renders the discovered
planets as an animated mass versus semi-major axis diagram, one frame at a
time, with a year timeline below the plot.

A typical session:
  exotimeline fetch              # writes exoplanets.txt
  exotimeline render             # writes frames/frame_00000.png, ...
  ffmpeg -i frames/frame_%05d.png exoplanets.mp4`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON")

	cmd.AddCommand(NewFetchCmd())
	cmd.AddCommand(NewRenderCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getPersistentBool retrieves a global flag from the command or its parent.
func getPersistentBool(cmd *cobra.Command, name string) bool {
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		v, err = cmd.Root().PersistentFlags().GetBool(name)
		if err != nil {
			return false
		}
	}
	return v
}

// setupLogger builds the stderr logger of a command and makes it the default.
func setupLogger(cmd *cobra.Command) *slog.Logger {
	verbose := getPersistentBool(cmd, "verbose")

	var logger *slog.Logger
	if getPersistentBool(cmd, "log-json") {
		logger = log.NewSecureJSONLogger(cmd.ErrOrStderr(), verbose)
	} else {
		logger = log.NewSecureLogger(cmd.ErrOrStderr(), verbose)
	}
	slog.SetDefault(logger)
	return logger
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
