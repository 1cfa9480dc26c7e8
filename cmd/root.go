package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/collegedir/cli/cmd/admin"
	"github.com/collegedir/cli/cmd/auth"
	configcmd "github.com/collegedir/cli/cmd/config"
	"github.com/collegedir/cli/cmd/faculty"
	"github.com/collegedir/cli/cmd/home"
	"github.com/collegedir/cli/cmd/shell"
	"github.com/collegedir/cli/cmd/students"
	"github.com/collegedir/cli/internal/app"
	appConfig "github.com/collegedir/cli/internal/config"
	"github.com/collegedir/cli/internal/session"
)

func init() {
	// group guards run after the root hook has loaded configuration
	cobra.EnableTraverseRunHooks = true
}

// NewRootCmd builds the command tree for one invocation. The shell calls it
// once per input line so flag values never leak between lines.
func NewRootCmd(a *app.App) *cobra.Command {
	var (
		cfgFile string
		debug   bool
		output  string
	)

	rootCmd := &cobra.Command{
		Use:   "collegedir",
		Short: "College Directory CLI - role based access to the college directory",
		Long: `College Directory CLI gives students, faculty members and administrators
access to the college directory service.

Sessions live in memory only. Run 'collegedir shell' to open a session that
lasts until the shell exits; a single command outside the shell starts with
no session.`,
		Version:       app.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !a.Configured() {
				if err := appConfig.Initialize(cfgFile); err != nil {
					return fmt.Errorf("failed to initialize configuration: %w", err)
				}
			}
			appConfig.SetDebug(debug)
			appConfig.SetOutputFormat(output)
			return a.Configure(appConfig.Get(), appConfig.IsDebug(), appConfig.GetOutputFormat())
		},
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.collegedir.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug mode")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "output format (table, json, yaml, text)")

	rootCmd.AddCommand(auth.NewAuthCmd(a))
	rootCmd.AddCommand(home.NewHomeCmd(a))
	rootCmd.AddCommand(students.NewStudentsCmd(a))
	rootCmd.AddCommand(faculty.NewFacultyCmd(a))
	rootCmd.AddCommand(admin.NewAdminCmd(a))
	rootCmd.AddCommand(configcmd.NewConfigCmd(a))
	rootCmd.AddCommand(shell.NewShellCmd(a, func() *cobra.Command { return NewRootCmd(a) }))

	return rootCmd
}

// Execute runs one command in a fresh tab. This is called by main.main().
func Execute() error {
	a := app.New(os.Stdin, os.Stdout, os.Stderr, session.NewMemoryStore())
	if err := NewRootCmd(a).Execute(); err != nil {
		a.Report(err)
		return err
	}
	return nil
}
