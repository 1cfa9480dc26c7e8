package config

import (
	"github.com/spf13/cobra"

	"github.com/collegedir/cli/internal/app"
	appConfig "github.com/collegedir/cli/internal/config"
)

// NewConfigCmd builds the config command group
func NewConfigCmd(a *app.App) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "CLI configuration commands",
		Long: `CLI configuration commands for the college directory CLI.

Configuration is read from $HOME/.collegedir.yaml and COLLEGEDIR_*
environment variables. Session data is never written to it.`,
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the configuration in effect",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Printer.Print(a.Config)
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the configuration file in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := appConfig.ConfigFileUsed()
			if path == "" {
				var err error
				if path, err = appConfig.DefaultPath(); err != nil {
					return err
				}
			}
			a.Printer.Info("%s", path)
			return nil
		},
	})

	return configCmd
}
