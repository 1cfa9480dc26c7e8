// Package session holds the authenticated identity for the lifetime of one
// shell. Nothing here is ever written to disk.
package session

import (
	"maps"

	"github.com/collegedir/cli/internal/models"
)

// Session is the identity returned by a successful login or registration
type Session struct {
	ID         string
	Role       models.Role
	Name       string
	Email      string
	Phone      string
	Department string
	Year       string
	ProfilePic string
	Extra      map[string]any
}

// HasRole reports whether the server (or the login endpoint) assigned a role
func (s Session) HasRole() bool {
	return s.Role != models.RoleNone
}

// DisplayName is the name to greet the user by, falling back to email and
// then id
func (s Session) DisplayName() string {
	switch {
	case s.Name != "":
		return s.Name
	case s.Email != "":
		return s.Email
	default:
		return s.ID
	}
}

// Fields flattens the session for display
func (s Session) Fields() map[string]any {
	out := make(map[string]any, len(s.Extra)+7)
	for k, v := range s.Extra {
		out[k] = v
	}
	out["id"] = s.ID
	out["role"] = string(s.Role)
	out["name"] = s.Name
	out["email"] = s.Email
	out["phone"] = s.Phone
	out["department"] = s.Department
	if s.Year != "" {
		out["year"] = s.Year
	}
	return out
}

func (s Session) clone() Session {
	s.Extra = maps.Clone(s.Extra)
	return s
}
