package app

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/idregistry/idregistry/internal/db/conn"
	"github.com/idregistry/idregistry/internal/db/schema"
	"github.com/idregistry/idregistry/internal/prefs"
)

func init() { //nolint: gochecknoinits
	initCmd.Flags().StringVar(&initDBPath, "db", "", "Path to the registry database file (default: last used path)")

	rootCmd.AddCommand(initCmd)
}

var (
	initDBPath string

	initCmd = &cobra.Command{
		Use:   "init",
		Short: "Create or update the registry database schema",
		Long: `init prepares a SQLite file to serve as the ID registry database.
It creates the ids and settings tables if they do not exist and seeds the
default settings rows without overwriting existing values. Running it against
an already initialized database is safe.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true

			store, storeErr := prefs.Open()

			path := initDBPath
			if path == "" && storeErr == nil {
				path = store.Get(prefs.KeyDBPath, "")
			}

			seeds, err := schema.Initialize(conn.NewRegistry(), path)
			if err != nil {
				color.Red("Error: %v", err)
				return err
			}

			// Remember the path for the next run. Best effort, like the
			// original tool's preference write.
			if storeErr == nil {
				_ = store.Set(prefs.KeyDBPath, path)
			}

			var warned bool
			for _, seed := range seeds {
				if seed.Err != nil {
					color.Yellow("Warning: seeding %q failed: %v", seed.Key, seed.Err)
					warned = true
				}
			}

			if warned {
				color.Yellow("Database initialized at %s, but some defaults were not seeded.", path)
				return nil
			}

			color.Green("Database initialized at %s", path)

			return nil
		},
	}
)
