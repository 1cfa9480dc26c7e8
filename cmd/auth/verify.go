package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/collegedir/cli/internal/api"
	"github.com/collegedir/cli/internal/app"
	"github.com/collegedir/cli/internal/otp"
)

// ErrVerificationCancelled is returned when the user leaves the code prompt
// blank or input runs out before the email is verified
var ErrVerificationCancelled = errors.New("email verification cancelled")

const resendCommand = "resend"

// verifyEmail sends a code to email and prompts until the challenge is
// Verified. Typing "resend" requests a new code; a blank line cancels and
// resets the challenge.
func verifyEmail(ctx context.Context, a *app.App, ch *otp.Challenge, email string) error {
	if err := ch.RequestCode(ctx, email); err != nil {
		return err
	}
	a.Printer.Success("Verification code sent to %s", ch.Email())

	for ch.State() != otp.Verified {
		line, err := a.Prompt("Verification code (`" + resendCommand + "` for a new code, blank to cancel): ")
		if err != nil && !errors.Is(err, app.ErrNoInput) {
			ch.Reset()
			return err
		}
		code := strings.TrimSpace(line)
		if code == "" {
			ch.Reset()
			return ErrVerificationCancelled
		}

		if strings.EqualFold(code, resendCommand) {
			if err := ch.RequestCode(ctx, email); err != nil {
				a.Printer.Error("%s", api.UserMessage(err))
				continue
			}
			a.Printer.Success("A new code was sent to %s", ch.Email())
			continue
		}

		if err := ch.SubmitCode(ctx, code); err != nil {
			a.Printer.Error("%s", api.UserMessage(err))
			continue
		}
	}

	a.Printer.Success("Email verified")
	return nil
}
