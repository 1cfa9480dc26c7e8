package home

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/collegedir/cli/internal/app"
)

const overview = `College Directory Management System

Centralized records for students, faculty members and administrators.
  Students         view your profile, courses and advisors
  Faculty members  view your profile and the student directory
  Administrators   review student and faculty records
`

// NewHomeCmd builds the public landing page
func NewHomeCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "home",
		Short: "Show the portal overview and who is signed in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(a.Out, overview)
			fmt.Fprintln(a.Out)

			s, ok := a.Session.Read()
			if !ok {
				a.Printer.Info("Not signed in: run `auth login` or `auth register`")
				return nil
			}
			if !s.HasRole() {
				a.Printer.Info("Signed in as %s", s.DisplayName())
				return nil
			}
			dashboard := app.DashboardPath(s.Role)
			a.Printer.Info("Signed in as %s (%s): run `%s`", s.DisplayName(), s.Role.Label(), app.CommandFor(dashboard))
			return nil
		},
	}
}
