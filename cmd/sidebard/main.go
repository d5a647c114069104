package main

import (
	"fmt"
	"os"
	"sidebard/internal/di"
	"sidebard/internal/structures"

	"github.com/spf13/cobra"
)

func main() {
	flags := &structures.CliFlags{}

	rootCmd := &cobra.Command{
		Use:           "sidebard",
		Short:         "Serves the admin console sidebar",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := di.InitApp(flags)
			return err
		},
	}
	rootCmd.Flags().StringVarP(&flags.ConfigPath, "config", "c", "config/config.yml", "path to the YAML config file")
	rootCmd.Flags().BoolVarP(&flags.DebugMode, "debug", "d", false, "mirror logs to stdout")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "sidebard: %s\n", err)
		os.Exit(1)
	}
}
