package app

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/idregistry/idregistry/internal/db/conn"
	"github.com/idregistry/idregistry/internal/db/controller/registry"
	"github.com/idregistry/idregistry/internal/db/schema"
	"github.com/idregistry/idregistry/internal/prefs"
)

func init() { //nolint: gochecknoinits
	settingsCmd.PersistentFlags().StringVar(&settingsDBPath, "db", "", "Path to the registry database file (default: last used path)")

	settingsSetCmd.Flags().IntVar(&setIDLength, "id-length", 0, "Generated identifier length (8-32)")
	settingsSetCmd.Flags().StringVar(&setCharset, "charset", "", "Characters allowed in generated identifiers")
	settingsSetCmd.Flags().StringVar(&setAdminSecret, "admin-secret", "", "Admin secret for suspend/resume")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

var (
	settingsDBPath string
	setIDLength    int
	setCharset     string
	setAdminSecret string

	settingsCmd = &cobra.Command{
		Use:   "settings",
		Short: "Show or change the registry settings",
	}

	settingsShowCmd = &cobra.Command{
		Use:   "show",
		Short: "Show the settings stored in the registry database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true

			path, err := resolveDBPath(settingsDBPath)
			if err != nil {
				color.Red("Error: %v", err)
				return err
			}

			guard := conn.NewRegistry().Open(path, "load_settings")
			defer guard.Close()

			if !guard.IsOpen() {
				color.Red("Error: failed to open database: %v", guard.Err())
				return guard.Err()
			}

			settings := registry.Default()
			if err := settings.Load(guard.DB()); err != nil {
				color.Red("Error: failed to load settings: %v", err)
				return err
			}

			fmt.Printf("id_length    = %d\n", settings.IDLength)
			fmt.Printf("charset      = %s\n", settings.Charset)
			fmt.Printf("admin_secret = %s\n", settings.AdminSecret)

			return nil
		},
	}

	settingsSetCmd = &cobra.Command{
		Use:   "set",
		Short: "Update settings in the registry database",
		Long: `set initializes the database if needed, then overwrites the given
settings. Flags that are not provided keep the value currently stored.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true

			path, err := resolveDBPath(settingsDBPath)
			if err != nil {
				color.Red("Error: %v", err)
				return err
			}

			reg := conn.NewRegistry()

			// Mirror the save action: initialize first, then update.
			if _, err := schema.Initialize(reg, path); err != nil {
				color.Red("Error: %v", err)
				return err
			}

			guard := reg.Open(path, "update_settings")
			defer guard.Close()

			if !guard.IsOpen() {
				color.Red("Error: failed to open database: %v", guard.Err())
				return guard.Err()
			}

			settings := registry.Default()
			if err := settings.Load(guard.DB()); err != nil {
				color.Red("Error: failed to load settings: %v", err)
				return err
			}

			if setIDLength != 0 {
				settings.IDLength = setIDLength
			}
			if setCharset != "" {
				settings.Charset = setCharset
			}
			if setAdminSecret != "" {
				settings.AdminSecret = setAdminSecret
			}

			if err := settings.Validate(); err != nil {
				color.Red("Error: %v", err)
				return err
			}

			if err := settings.Save(guard.DB()); err != nil {
				color.Yellow("Warning: settings update incomplete: %v", err)
				return err
			}

			color.Green("Settings saved to %s", path)

			return nil
		},
	}
)

// resolveDBPath falls back to the remembered preference when no --db flag was
// given.
func resolveDBPath(flagPath string) (string, error) {
	if flagPath != "" {
		return flagPath, nil
	}

	store, err := prefs.Open()
	if err != nil {
		return "", err
	}

	path := store.Get(prefs.KeyDBPath, "")
	if path == "" {
		return "", errNoDBPath
	}

	return path, nil
}
