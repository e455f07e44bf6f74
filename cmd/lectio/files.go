package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/lectio/internal/app"
	"github.com/five82/lectio/internal/selection"
)

func newFilesCommand(opts *app.Options) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "files",
		Short: "List the Google Drive text files the service can read",
		Example: `  lectio files
  lectio files -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := app.Setup(*opts)
			if err != nil {
				return err
			}
			defer env.Close()

			files, err := env.Client.ListFiles(cmd.Context())
			if err != nil {
				return fmt.Errorf("list files: %w", err)
			}
			selection.SortByName(files)
			return writeFiles(cmd.OutOrStdout(), output, files, time.Now())
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", formatTable, "output format: table, json or yaml")
	return cmd
}
