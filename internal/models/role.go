package models

import (
	"fmt"
	"strings"
)

// Role identifies which kind of account a session belongs to
type Role string

const (
	// RoleNone means no role requirement
	RoleNone          Role = ""
	RoleStudent       Role = "STUDENT"
	RoleFacultyMember Role = "FACULTY_MEMBER"
	RoleAdministrator Role = "ADMINISTRATOR"
)

// Roles lists every assignable role
var Roles = []Role{RoleStudent, RoleFacultyMember, RoleAdministrator}

var roleAliases = map[string]Role{
	"STUDENT":        RoleStudent,
	"FACULTY_MEMBER": RoleFacultyMember,
	"FACULTY":        RoleFacultyMember,
	"ADMINISTRATOR":  RoleAdministrator,
	"ADMIN":          RoleAdministrator,
}

// ParseRole converts user or server input into a Role.
// Matching ignores case and treats '-' and ' ' like '_'.
func ParseRole(s string) (Role, error) {
	if r, ok := roleAliases[canonical(s)]; ok {
		return r, nil
	}
	return RoleNone, fmt.Errorf("unknown role %q (use student, faculty_member or administrator)", s)
}

// Equal compares two roles case-insensitively
func (r Role) Equal(other Role) bool {
	return canonical(string(r)) == canonical(string(other))
}

// Known reports whether r is one of the assignable roles
func (r Role) Known() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// Label returns a human readable role name
func (r Role) Label() string {
	switch {
	case r.Equal(RoleStudent):
		return "Student"
	case r.Equal(RoleFacultyMember):
		return "Faculty Member"
	case r.Equal(RoleAdministrator):
		return "Administrator"
	default:
		return string(r)
	}
}

func canonical(s string) string {
	s = strings.TrimSpace(strings.ToUpper(s))
	return strings.NewReplacer("-", "_", " ", "_").Replace(s)
}
