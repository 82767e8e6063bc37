package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/idregistry/idregistry/internal/uniuri"
)

func init() { //nolint: gochecknoinits
	secretCmd.Flags().IntVar(&secretLength, "length", uniuri.SecretLen, "Length of the generated secret")

	rootCmd.AddCommand(secretCmd)
}

var (
	secretLength int

	secretCmd = &cobra.Command{
		Use:   "secret",
		Short: "Generate a random admin secret",
		RunE: func(_ *cobra.Command, _ []string) error {
			fmt.Println(uniuri.NewSecret(secretLength))
			return nil
		},
	}
)
