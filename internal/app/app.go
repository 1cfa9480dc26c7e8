// Package app wires the pieces one shell needs: configuration, the session
// store, the API client and the output printer.
package app

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/collegedir/cli/internal/api"
	"github.com/collegedir/cli/internal/config"
	"github.com/collegedir/cli/internal/errutil"
	"github.com/collegedir/cli/internal/format"
	"github.com/collegedir/cli/internal/guard"
	"github.com/collegedir/cli/internal/logging"
	"github.com/collegedir/cli/internal/models"
	"github.com/collegedir/cli/internal/session"
	"github.com/collegedir/cli/internal/validation"
)

// Version is reported by --version and in log lines
const Version = "1.0.0"

// App is shared by every command run inside one shell
type App struct {
	In      *bufio.Reader
	Out     io.Writer
	ErrOut  io.Writer
	Session session.Store

	Config    *config.Config
	Logger    *slog.Logger
	Client    *api.Client
	Validator *validation.Validator
	Printer   *format.Printer

	// TabID identifies this shell in logs
	TabID   string
	InShell bool

	configured bool
}

// New creates an App with an empty session and default configuration
func New(in io.Reader, out, errOut io.Writer, store session.Store) *App {
	a := &App{
		In:      bufio.NewReader(in),
		Out:     out,
		ErrOut:  errOut,
		Session: store,
		TabID:   uuid.NewString(),
	}
	a.Printer = format.NewPrinter(out, "table", false, false)
	a.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return a
}

// Configure builds the logger, client and validator from cfg. Later calls
// only update the output settings, so a shell keeps one client and logger.
func (a *App) Configure(cfg *config.Config, debug bool, output string) error {
	if output == "" {
		output = cfg.Format.Default
	}
	if _, err := format.GetFormatter(output, a.Out, false); err != nil {
		return err
	}
	a.Printer = format.NewPrinter(a.Out, output, cfg.Format.Colors, debug)

	if a.configured {
		return nil
	}

	level := cfg.Log.Level
	if debug {
		level = "debug"
	}
	logger, err := logging.Setup("collegedir", Version, cfg.Log.Format, level, a.ErrOut)
	if err != nil {
		return err
	}
	logger = logger.With("tab", a.TabID)

	timeout, err := cfg.Timeout()
	if err != nil {
		return err
	}

	policy, err := validation.ParsePolicy(cfg.Validation.Policy)
	if err != nil {
		return err
	}

	a.Config = cfg
	a.Logger = logger
	a.Client = api.NewClient(cfg.Server.URL, timeout, logger)
	a.Validator = validation.New(validation.Options{
		Policy:              policy,
		RequireProfileImage: cfg.Registration.RequireProfileImage,
		ImageMinKB:          cfg.Registration.ImageMinKB,
		ImageMaxKB:          cfg.Registration.ImageMaxKB,
	})
	a.configured = true
	return nil
}

// Configured reports whether Configure has run
func (a *App) Configured() bool {
	return a.configured
}

// UserID returns the id of the signed-in user. A session without one is
// reported and sent back home.
func (a *App) UserID() (string, error) {
	s, ok := a.Session.Read()
	if !ok || strings.TrimSpace(s.ID) == "" {
		a.Printer.Error("User ID not found in session")
		return "", &guard.RedirectError{Path: guard.HomePath}
	}
	return s.ID, nil
}

// ErrNoInput is returned by Prompt when input is exhausted
var ErrNoInput = errors.New("no more input")

// Prompt writes label and reads one line
func (a *App) Prompt(label string) (string, error) {
	fmt.Fprint(a.Out, label)
	line, err := a.In.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrNoInput
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Report shows a failed command to the user. Redirects are informational;
// validation errors are listed per field; gateway errors show the server's
// message verbatim.
func (a *App) Report(err error) {
	if err == nil {
		return
	}

	var redirect *guard.RedirectError
	var fieldErrs validation.Errors
	switch {
	case errors.As(err, &redirect):
		a.Printer.Warning("%s", redirect.Error())
		a.Printer.Info("Redirected to %s: run `%s`%s", redirect.Path, CommandFor(redirect.Path), a.sessionHint(redirect.Path))
		return
	case errors.As(err, &fieldErrs):
		a.Printer.Error("Please fix form errors")
		_ = a.Printer.Print(map[string]string(fieldErrs))
	default:
		a.Printer.Error("%s", api.UserMessage(err))
	}
	errutil.LogError(a.Logger, "command failed", err)
}

func (a *App) sessionHint(path string) string {
	if path == guard.LoginPath && !a.InShell {
		return " inside `collegedir shell`; sessions last as long as the shell"
	}
	return ""
}

// CommandFor maps a page path to the command that renders it
func CommandFor(path string) string {
	switch path {
	case guard.LoginPath:
		return "auth login"
	case guard.HomePath:
		return "home"
	case "/students":
		return "students profile"
	case "/faculty":
		return "faculty profile"
	case "/admin":
		return "admin stats"
	default:
		return "home"
	}
}

// DashboardPath returns the landing page for a role after login
func DashboardPath(role models.Role) string {
	switch {
	case role.Equal(models.RoleStudent):
		return "/students"
	case role.Equal(models.RoleFacultyMember):
		return "/faculty"
	case role.Equal(models.RoleAdministrator):
		return "/admin"
	default:
		return guard.HomePath
	}
}
