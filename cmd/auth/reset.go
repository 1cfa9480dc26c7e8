package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/collegedir/cli/internal/app"
	"github.com/collegedir/cli/internal/guard"
	"github.com/collegedir/cli/internal/otp"
	"github.com/collegedir/cli/internal/validation"
)

func newResetPasswordCmd(a *app.App) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Reset a forgotten password",
		Long: `Send a one-time code to the account's email address, verify it, then
choose a new password.`,
		Example: `  collegedir auth reset-password --email jane@college.edu`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if email, err = promptIfEmpty(a, email, "Email: "); err != nil {
				return err
			}
			email = strings.TrimSpace(email)
			if email == "" {
				return validation.Errors{"email": "Email is required"}
			}
			if msg := a.Validator.ValidateEmail(email); msg != "" {
				return validation.Errors{"email": msg}
			}

			var newPassword string
			ch := otp.New(otp.VerifierFuncs{
				Send:  a.Client.RequestPasswordResetCode,
				Check: a.Client.VerifyResetCode,
			}, func(ctx context.Context, email string) error {
				return a.Client.FinalizeReset(ctx, email, newPassword)
			})

			ctx := cmd.Context()
			if err := verifyEmail(ctx, a, ch, email); err != nil {
				return oops.In("reset").Code("RESET_VERIFY_FAILED").Wrap(err)
			}

			if newPassword, err = promptNewPassword(a); err != nil {
				ch.Reset()
				return err
			}
			if err := ch.Finalize(ctx); err != nil {
				return oops.In("reset").Code("RESET_FAILED").Wrap(err)
			}

			a.Printer.Success("Password reset successful")
			redirect(a, guard.LoginPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "Email address of the account")

	return cmd
}

// promptNewPassword asks until the password and its confirmation pass
// validation
func promptNewPassword(a *app.App) (string, error) {
	for {
		password, err := a.Prompt("New password: ")
		if err != nil {
			return "", noPassword(err)
		}
		confirm, err := a.Prompt("Confirm new password: ")
		if err != nil {
			return "", noPassword(err)
		}
		errs := a.Validator.ValidateNewPassword(password, confirm)
		if len(errs) == 0 {
			return password, nil
		}
		a.Report(errs)
	}
}

var errNoPassword = errors.New("no new password entered")

func noPassword(err error) error {
	if errors.Is(err, app.ErrNoInput) {
		return errNoPassword
	}
	return err
}
