package admin

import (
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/collegedir/cli/internal/api"
	"github.com/collegedir/cli/internal/app"
	"github.com/collegedir/cli/internal/guard"
	"github.com/collegedir/cli/internal/models"
)

// NewAdminCmd builds the administrator dashboard
func NewAdminCmd(a *app.App) *cobra.Command {
	adminCmd := &cobra.Command{
		Use:               "admin",
		Short:             "Administrator dashboard",
		Long:              "Student and faculty records with directory totals.",
		PersistentPreRunE: guard.Require(a.Session, models.RoleAdministrator),
	}

	adminCmd.AddCommand(&cobra.Command{
		Use:   "students",
		Short: "List student records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := a.Client.ListStudents(cmd.Context())
			if err != nil {
				return oops.In("admin").Code("LIST_STUDENTS_FAILED").Wrap(err)
			}
			return printRecords(a, records, "students")
		},
	})

	adminCmd.AddCommand(&cobra.Command{
		Use:   "faculty",
		Short: "List faculty records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := a.Client.ListFaculty(cmd.Context())
			if err != nil {
				return oops.In("admin").Code("LIST_FACULTY_FAILED").Wrap(err)
			}
			return printRecords(a, records, "faculty")
		},
	})

	adminCmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show student and faculty totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var stats models.Stats
			ctx := cmd.Context()

			// a failed list counts as zero, as the dashboard does
			students, err := a.Client.ListStudents(ctx)
			if err != nil {
				a.Printer.Warning("Failed to load students: %s", api.UserMessage(err))
			}
			stats.Students = len(students)

			faculty, err := a.Client.ListFaculty(ctx)
			if err != nil {
				a.Printer.Warning("Failed to load faculty: %s", api.UserMessage(err))
			}
			stats.Faculty = len(faculty)

			return a.Printer.Print(stats)
		},
	})

	return adminCmd
}

func printRecords(a *app.App, records []models.Record, kind string) error {
	if len(records) == 0 {
		a.Printer.Info("No %s found", kind)
		return nil
	}
	return a.Printer.Print(records)
}
