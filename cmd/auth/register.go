package auth

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/collegedir/cli/internal/app"
	"github.com/collegedir/cli/internal/models"
	"github.com/collegedir/cli/internal/otp"
)

func newRegisterCmd(a *app.App) *cobra.Command {
	var (
		form       models.RegistrationForm
		roleName   string
		pictureArg string
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a student, faculty member or administrator account",
		Long: `Register a new account. Every field is validated before anything is sent.
When registration.require_otp is enabled the email address must be verified
with a one-time code before the account is created.`,
		Example: `  collegedir auth register --name "Jane Doe" --username jane --email jane@college.edu \
    --phone 5551234567 --password secret123 --confirm secret123 --dept CSE --year 2 --role student`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			role, err := models.ParseRole(roleName)
			if err != nil {
				return err
			}
			form.Role = role

			if form.Password, err = promptIfEmpty(a, form.Password, "Password: "); err != nil {
				return err
			}
			if form.Confirm, err = promptIfEmpty(a, form.Confirm, "Confirm password: "); err != nil {
				return err
			}
			if pictureArg != "" {
				data, err := os.ReadFile(pictureArg)
				if err != nil {
					return oops.In("register").With("path", pictureArg).Wrapf(err, "reading profile picture")
				}
				form.ProfileImage = &models.ProfileImage{Filename: filepath.Base(pictureArg), Data: data}
			}
			form.Email = strings.TrimSpace(form.Email)

			if errs := a.Validator.Validate(form); len(errs) > 0 {
				return errs
			}

			if err := register(cmd.Context(), a, form); err != nil {
				return oops.In("register").Code("REGISTRATION_FAILED").With("role", string(role)).Wrap(err)
			}

			a.Printer.Success("Registration Successful")
			if s, ok := a.Session.Read(); ok {
				redirect(a, app.DashboardPath(s.Role))
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&form.Name, "name", "", "Full name")
	flags.StringVar(&form.Username, "username", "", "Username")
	flags.StringVar(&form.Email, "email", "", "Email address")
	flags.StringVar(&form.Phone, "phone", "", "10 digit phone number")
	flags.StringVar(&form.Password, "password", "", "Password (prompted when omitted)")
	flags.StringVar(&form.Confirm, "confirm", "", "Password confirmation (prompted when omitted)")
	flags.StringVar(&form.Department, "dept", "", "Department")
	flags.StringVar(&form.Year, "year", "", "Year of study (students only)")
	flags.StringVar(&roleName, "role", "student", "Account role (student, faculty_member, administrator)")
	flags.StringVar(&pictureArg, "profile-pic", "", "Path to a profile picture")

	return cmd
}

// register submits the form, gated on email verification when configured,
// and stores the returned identity as the session.
func register(ctx context.Context, a *app.App, form models.RegistrationForm) error {
	submit := func(ctx context.Context, email string) error {
		s, err := a.Client.Register(ctx, form)
		if err != nil {
			return err
		}
		a.Session.Write(s)
		return nil
	}

	if !a.Config.Registration.RequireOTP {
		return submit(ctx, form.Email)
	}

	ch := otp.New(otp.VerifierFuncs{
		Send:  a.Client.RequestEmailVerification,
		Check: a.Client.VerifyEmailCode,
	}, submit)
	if err := verifyEmail(ctx, a, ch, form.Email); err != nil {
		return err
	}
	return ch.Finalize(ctx)
}
