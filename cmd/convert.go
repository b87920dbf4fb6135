package main

import (
	"fmt"

	"github.com/meghashyamc/booksearch/config"
	"github.com/meghashyamc/booksearch/logger"
	"github.com/meghashyamc/booksearch/services/convert"
	"github.com/spf13/cobra"
)

type convertOptions struct {
	source      string
	destination string
	index       string
}

func newConvertCmd() *cobra.Command {
	opts := &convertOptions{}

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a JSON array of books into a bulk indexing file",
		Long: `Convert reads a JSON array of book objects and writes one action line
and one document line per book, ready to be sent to the engine's bulk API.

Examples:
  # Convert google.json into google_bulk_data.json
  booksearch convert

  # Use other files and another index
  booksearch convert --source books.json --destination books_bulk.json --index books`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.applyDefaults(cfg)
			return runConvert(cmd, logger.New(cfg.GetLogLevel()), opts)
		},
	}

	cmd.Flags().StringVar(&opts.source, "source", "", "JSON array to convert (default from config)")
	cmd.Flags().StringVar(&opts.destination, "destination", "", "bulk file to write (default from config)")
	cmd.Flags().StringVar(&opts.index, "index", "", "index named in every action line (default from config)")

	return cmd
}

func (o *convertOptions) applyDefaults(cfg *config.Config) {
	if len(o.source) == 0 {
		o.source = cfg.GetConvertSource()
	}
	if len(o.destination) == 0 {
		o.destination = cfg.GetConvertDestination()
	}
	if len(o.index) == 0 {
		o.index = cfg.GetIndexName()
	}
}

func runConvert(cmd *cobra.Command, logger logger.Logger, opts *convertOptions) error {
	service := convert.New(logger, opts.index)

	result, err := service.Run(cmd.Context(), opts.source, opts.destination)
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d documents (%d bytes) to %s\n", result.Documents, result.Bytes, opts.destination)
	return nil
}
