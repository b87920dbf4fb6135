package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/meghashyamc/booksearch/api"
	"github.com/meghashyamc/booksearch/config"
	"github.com/spf13/cobra"
)

var cfg *config.Config

func main() {
	godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "booksearch",
	Short: "Search gateway and bulk converter for the books index",
	Long: `booksearch serves search and delete requests against the books index,
and converts a JSON array of books into a bulk indexing file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load("")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP search gateway",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return api.Run(cmd.Context(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(newConvertCmd())
}
