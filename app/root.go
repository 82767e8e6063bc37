// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "idregistry",
	Short: "idregistry manages an ID registry SQLite database",
	Long: `idregistry manages an ID registry SQLite database: it creates the
schema, edits the registry settings stored inside it, and serves the
identifier-generation HTTP API.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
