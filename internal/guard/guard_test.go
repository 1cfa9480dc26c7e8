package guard

import (
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/collegedir/cli/internal/models"
	"github.com/collegedir/cli/internal/session"
)

func TestAuthorizeWithoutSession(t *testing.T) {
	store := session.NewMemoryStore()

	for _, role := range models.Roles {
		assert.Equal(t, RedirectTo(LoginPath), Authorize(store, role))
	}
	assert.True(t, Authorize(store, models.RoleNone).Admitted())
}

func TestAuthorizeRoleMatch(t *testing.T) {
	store := session.NewMemoryStore()
	store.Write(session.Session{ID: "1", Role: "faculty_member"})

	assert.True(t, Authorize(store, models.RoleFacultyMember).Admitted())
	assert.Equal(t, RedirectTo(HomePath), Authorize(store, models.RoleStudent))
	assert.Equal(t, RedirectTo(HomePath), Authorize(store, models.RoleAdministrator))
}

func TestAuthorizeSessionWithoutRole(t *testing.T) {
	store := session.NewMemoryStore()
	store.Write(session.Session{ID: "1"})

	assert.Equal(t, RedirectTo(HomePath), Authorize(store, models.RoleStudent))
	assert.True(t, Authorize(store, models.RoleNone).Admitted())
}

func TestAuthorizeIsNotCached(t *testing.T) {
	store := session.NewMemoryStore()
	store.Write(session.Session{ID: "42", Role: models.RoleStudent})
	require.True(t, Authorize(store, models.RoleStudent).Admitted())

	store.Clear()
	assert.Equal(t, RedirectTo(LoginPath), Authorize(store, models.RoleStudent))
}

func TestRequireStopsCommand(t *testing.T) {
	store := session.NewMemoryStore()
	ran := false
	cmd := &cobra.Command{
		Use:           "profile",
		PreRunE:       Require(store, models.RoleStudent),
		RunE:          func(*cobra.Command, []string) error { ran = true; return nil },
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	var redirect *RedirectError
	require.True(t, errors.As(err, &redirect))
	assert.Equal(t, LoginPath, redirect.Path)
	assert.False(t, ran)

	store.Write(session.Session{ID: "42", Role: models.RoleStudent})
	require.NoError(t, cmd.Execute())
	assert.True(t, ran)
}

func TestRedirectErrorMessage(t *testing.T) {
	assert.Equal(t, "please log in first", (&RedirectError{Path: LoginPath}).Error())
	assert.Equal(t, "this page is only available to Administrator accounts",
		(&RedirectError{Path: HomePath, Required: models.RoleAdministrator}).Error())
}
