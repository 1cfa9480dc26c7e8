package faculty

import (
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/collegedir/cli/internal/app"
	"github.com/collegedir/cli/internal/guard"
	"github.com/collegedir/cli/internal/models"
)

// NewFacultyCmd builds the faculty dashboard
func NewFacultyCmd(a *app.App) *cobra.Command {
	facultyCmd := &cobra.Command{
		Use:               "faculty",
		Short:             "Faculty dashboard",
		Long:              "Profile of the signed-in faculty member and the student directory.",
		PersistentPreRunE: guard.Require(a.Session, models.RoleFacultyMember),
	}

	facultyCmd.AddCommand(&cobra.Command{
		Use:   "profile",
		Short: "Show your faculty profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.UserID()
			if err != nil {
				return err
			}
			profile, err := a.Client.FacultyProfile(cmd.Context(), id)
			if err != nil {
				return oops.In("faculty").Code("PROFILE_FAILED").With("id", id).Wrap(err)
			}
			return a.Printer.Print(profile)
		},
	})

	facultyCmd.AddCommand(&cobra.Command{
		Use:   "students",
		Short: "List registered students",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			students, err := a.Client.ListStudents(cmd.Context())
			if err != nil {
				return oops.In("faculty").Code("LIST_STUDENTS_FAILED").Wrap(err)
			}
			if len(students) == 0 {
				a.Printer.Info("No students found")
				return nil
			}
			return a.Printer.Print(students)
		},
	})

	return facultyCmd
}
