// Package guard decides whether a protected command may run for the
// current session. The check is repeated on every run and never cached.
package guard

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/collegedir/cli/internal/models"
	"github.com/collegedir/cli/internal/session"
)

const (
	LoginPath = "/login"
	HomePath  = "/"
)

// Decision is the outcome of Authorize
type Decision struct {
	// Redirect is empty when the visitor is admitted
	Redirect string
}

// Admitted reports whether the page may render
func (d Decision) Admitted() bool {
	return d.Redirect == ""
}

// Admit lets the page render
func Admit() Decision {
	return Decision{}
}

// RedirectTo sends the visitor elsewhere
func RedirectTo(path string) Decision {
	return Decision{Redirect: path}
}

// Authorize checks the session against the role a page requires.
// RoleNone admits everyone, signed in or not.
func Authorize(store session.Store, required models.Role) Decision {
	if required == models.RoleNone {
		return Admit()
	}

	s, ok := store.Read()
	if !ok {
		return RedirectTo(LoginPath)
	}
	if !s.HasRole() || !s.Role.Equal(required) {
		return RedirectTo(HomePath)
	}
	return Admit()
}

// RedirectError stops a command whose guard did not admit the session
type RedirectError struct {
	Path     string
	Required models.Role
}

// Error implements the error interface
func (e *RedirectError) Error() string {
	switch e.Path {
	case LoginPath:
		return "please log in first"
	case HomePath:
		if e.Required != models.RoleNone {
			return fmt.Sprintf("this page is only available to %s accounts", e.Required.Label())
		}
	}
	return "redirected to " + e.Path
}

// Require returns a cobra hook that runs Authorize before the command body
func Require(store session.Store, role models.Role) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		d := Authorize(store, role)
		if d.Admitted() {
			return nil
		}
		return &RedirectError{Path: d.Redirect, Required: role}
	}
}
