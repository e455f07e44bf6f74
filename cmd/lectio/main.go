package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/lectio/internal/app"
)

// version is set during build with -ldflags
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintf(os.Stderr, "lectio: %v\n", err)
		}
		return 1
	}
	return 0
}

func newRootCommand() *cobra.Command {
	opts := &app.Options{}

	root := &cobra.Command{
		Use:     "lectio",
		Short:   "Build study guides from Google Drive transcripts",
		Long:    `lectio picks up to eight Google Drive text files, collects a series title, audience and model, and asks the study guide service to generate a guide into Drive.`,
		Version: version,
		Args:    cobra.NoArgs,
		// Errors are printed once by main.
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), *opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.config/lectio/config.toml)")
	flags.StringVar(&opts.PrefsPath, "prefs", "", "preferences file (default ~/.config/lectio/prefs.toml)")
	flags.StringVar(&opts.Source, "source", "", "file source: modal or picker (overrides config)")
	flags.StringVar(&opts.LogLevel, "log-level", "", "debug, info, warn or error (overrides config)")

	root.AddCommand(newFilesCommand(opts), newGenerateCommand(opts))
	return root
}
