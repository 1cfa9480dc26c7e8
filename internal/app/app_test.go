package app

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/collegedir/cli/internal/api"
	"github.com/collegedir/cli/internal/config"
	"github.com/collegedir/cli/internal/guard"
	"github.com/collegedir/cli/internal/models"
	"github.com/collegedir/cli/internal/session"
	"github.com/collegedir/cli/internal/validation"
)

func newTestApp(t *testing.T, input string) (*App, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	a := New(strings.NewReader(input), &out, &bytes.Buffer{}, session.NewMemoryStore())
	cfg := config.Default()
	cfg.Format.Colors = false
	require.NoError(t, a.Configure(cfg, false, ""))
	return a, &out
}

func TestConfigureBuildsDependencies(t *testing.T) {
	a, _ := newTestApp(t, "")
	assert.True(t, a.Configured())
	assert.NotNil(t, a.Client)
	assert.Equal(t, validation.PolicyBasic, a.Validator.Policy())

	client := a.Client
	require.NoError(t, a.Configure(config.Default(), true, "json"))
	assert.Same(t, client, a.Client)
	assert.Equal(t, "json", a.Printer.Format)
}

func TestConfigureRejectsUnknownOutput(t *testing.T) {
	a := New(strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{}, session.NewMemoryStore())
	assert.Error(t, a.Configure(config.Default(), false, "xml"))
}

func TestPrompt(t *testing.T) {
	a, out := newTestApp(t, "123456\nlast")

	line, err := a.Prompt("Code: ")
	require.NoError(t, err)
	assert.Equal(t, "123456", line)
	assert.Equal(t, "Code: ", out.String())

	line, err = a.Prompt("Again: ")
	require.NoError(t, err)
	assert.Equal(t, "last", line)

	_, err = a.Prompt("More: ")
	assert.ErrorIs(t, err, ErrNoInput)
}

func TestReportAuthErrorShowsServerMessage(t *testing.T) {
	a, out := newTestApp(t, "")
	err := oops.Code("LOGIN_FAILED").Wrap(&api.AuthError{Kind: api.InvalidCredentials, StatusCode: 401, Message: "Invalid Credentials"})

	a.Report(err)
	assert.Equal(t, "Error: Invalid Credentials\n", out.String())
}

func TestReportRedirect(t *testing.T) {
	a, out := newTestApp(t, "")
	a.Report(&guard.RedirectError{Path: guard.LoginPath, Required: models.RoleStudent})

	assert.Contains(t, out.String(), "please log in first")
	assert.Contains(t, out.String(), "run `auth login`")
	assert.Contains(t, out.String(), "collegedir shell")

	out.Reset()
	a.InShell = true
	a.Report(&guard.RedirectError{Path: guard.LoginPath})
	assert.NotContains(t, out.String(), "collegedir shell")
}

func TestReportValidationErrors(t *testing.T) {
	a, out := newTestApp(t, "")
	a.Report(validation.Errors{"phone": "Phone must be exactly 10 digits"})

	assert.Contains(t, out.String(), "Please fix form errors")
	assert.Contains(t, out.String(), "Phone must be exactly 10 digits")
}

func TestReportPlainError(t *testing.T) {
	a, out := newTestApp(t, "")
	a.Report(errors.New("boom"))
	assert.Equal(t, "Error: boom\n", out.String())
}

func TestDashboardPath(t *testing.T) {
	assert.Equal(t, "/students", DashboardPath("student"))
	assert.Equal(t, "/faculty", DashboardPath(models.RoleFacultyMember))
	assert.Equal(t, "/admin", DashboardPath(models.RoleAdministrator))
	assert.Equal(t, "/", DashboardPath(models.RoleNone))
	assert.Equal(t, "students profile", CommandFor(DashboardPath(models.RoleStudent)))
}
