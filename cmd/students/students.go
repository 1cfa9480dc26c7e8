package students

import (
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/collegedir/cli/internal/api"
	"github.com/collegedir/cli/internal/app"
	"github.com/collegedir/cli/internal/guard"
	"github.com/collegedir/cli/internal/models"
)

// NewStudentsCmd builds the student dashboard. Every subcommand requires a
// STUDENT session.
func NewStudentsCmd(a *app.App) *cobra.Command {
	studentsCmd := &cobra.Command{
		Use:               "students",
		Short:             "Student dashboard",
		Long:              "Profile, courses and advisors of the signed-in student.",
		PersistentPreRunE: guard.Require(a.Session, models.RoleStudent),
	}

	studentsCmd.AddCommand(newProfileCmd(a))
	studentsCmd.AddCommand(newCoursesCmd(a))
	studentsCmd.AddCommand(newAdvisorsCmd(a))

	return studentsCmd
}

func newProfileCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show your profile with courses and advisors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.UserID()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			profile, err := a.Client.StudentProfile(ctx, id)
			if err != nil {
				return oops.In("students").Code("PROFILE_FAILED").With("id", id).Wrap(err)
			}
			if err := a.Printer.Print(profile); err != nil {
				return err
			}

			// courses and advisors are optional panels
			courses, err := a.Client.StudentCourses(ctx, id)
			if err != nil {
				a.Printer.Warning("Could not load courses: %s", api.UserMessage(err))
			} else if err := printCourses(a, courses); err != nil {
				return err
			}

			advisors, err := a.Client.StudentAdvisors(ctx, id)
			if err != nil {
				a.Printer.Warning("Could not load advisors: %s", api.UserMessage(err))
				return nil
			}
			return printAdvisors(a, advisors)
		},
	}
}

func newCoursesCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "courses",
		Short: "List the courses you are enrolled in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.UserID()
			if err != nil {
				return err
			}
			courses, err := a.Client.StudentCourses(cmd.Context(), id)
			if err != nil {
				return oops.In("students").Code("COURSES_FAILED").With("id", id).Wrap(err)
			}
			return printCourses(a, courses)
		},
	}
}

func newAdvisorsCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "advisors",
		Short: "List your assigned advisors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.UserID()
			if err != nil {
				return err
			}
			advisors, err := a.Client.StudentAdvisors(cmd.Context(), id)
			if err != nil {
				return oops.In("students").Code("ADVISORS_FAILED").With("id", id).Wrap(err)
			}
			return printAdvisors(a, advisors)
		},
	}
}

func printCourses(a *app.App, courses []map[string]any) error {
	if len(courses) == 0 {
		a.Printer.Info("No active courses found in your record.")
		return nil
	}
	return a.Printer.Print(courses)
}

func printAdvisors(a *app.App, advisors []models.Record) error {
	if len(advisors) == 0 {
		a.Printer.Info("No assigned advisors found.")
		return nil
	}
	return a.Printer.Print(advisors)
}
