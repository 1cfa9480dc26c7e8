package auth

import (
	"errors"
	"strings"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/collegedir/cli/internal/app"
	"github.com/collegedir/cli/internal/guard"
	"github.com/collegedir/cli/internal/models"
)

// NewAuthCmd builds the auth command group
func NewAuthCmd(a *app.App) *cobra.Command {
	authCmd := &cobra.Command{
		Use:   "auth",
		Short: "Login, registration and password reset",
		Long: `Authentication commands for the college directory.

This command group includes login, logout, registration with email
verification and the forgot-password flow.`,
	}

	authCmd.AddCommand(newLoginCmd(a))
	authCmd.AddCommand(newLogoutCmd(a))
	authCmd.AddCommand(newStatusCmd(a))
	authCmd.AddCommand(newRegisterCmd(a))
	authCmd.AddCommand(newResetPasswordCmd(a))

	return authCmd
}

func newLoginCmd(a *app.App) *cobra.Command {
	var email, password, roleName string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in as a student, faculty member or administrator",
		Long: `Authenticate against the login endpoint for the chosen role.
The password is prompted for when --password is omitted.`,
		Example: `  collegedir auth login -e jane@college.edu -r student
  collegedir auth login -e dean@college.edu -r administrator -p secret123`,
		RunE: func(cmd *cobra.Command, args []string) error {
			role, err := models.ParseRole(roleName)
			if err != nil {
				return err
			}
			if email, err = promptIfEmpty(a, email, "Email: "); err != nil {
				return err
			}
			email = strings.TrimSpace(email)
			if password, err = promptIfEmpty(a, password, "Password: "); err != nil {
				return err
			}
			if errs := a.Validator.ValidateLogin(email, password); len(errs) > 0 {
				return errs
			}

			a.Printer.Debugf("Logging in as %s (%s)", email, role)
			s, err := a.Client.Login(cmd.Context(), email, password, role)
			if err != nil {
				return oops.In("auth").Code("LOGIN_FAILED").With("role", string(role)).Wrap(err)
			}
			a.Session.Write(s)

			a.Printer.Success("Welcome, %s", s.DisplayName())
			redirect(a, app.DashboardPath(s.Role))
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "Email address")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password")
	cmd.Flags().StringVarP(&roleName, "role", "r", "student", "Account role (student, faculty_member, administrator)")

	return cmd
}

func newLogoutCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out of this shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.Session.Clear()
			a.Printer.Success("Logged out successfully")
			redirect(a, guard.LoginPath)
			return nil
		},
	}
}

func newStatusCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the identity held by this shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, ok := a.Session.Read()
			if !ok {
				a.Printer.Info("Status: Not logged in")
				return nil
			}
			a.Printer.Info("Status: Logged in as %s (%s)", s.DisplayName(), s.Role.Label())
			return a.Printer.Print(s.Fields())
		},
	}
}

// promptIfEmpty asks for value when no flag supplied it. Exhausted input
// leaves it empty so validation reports the missing field.
func promptIfEmpty(a *app.App, value, label string) (string, error) {
	if value != "" {
		return value, nil
	}
	line, err := a.Prompt(label)
	if errors.Is(err, app.ErrNoInput) {
		return "", nil
	}
	return line, err
}

func redirect(a *app.App, path string) {
	a.Printer.Info("Redirected to %s: run `%s`", path, app.CommandFor(path))
}
