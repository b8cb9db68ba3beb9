package domain

import (
	"errors"
	"strings"
)

// Role is the closed set of authorization levels a user can hold.
type Role string

const (
	RoleEngineer Role = "engineer"
	RoleMedic    Role = "medic"
	// RoleNurse is a legacy alias of medic. Stored profiles still carry it,
	// so it remains a valid member of the set until those are migrated.
	RoleNurse Role = "nurse"
	RoleAdmin Role = "admin"
)

var allowedRoles = map[Role]struct{}{
	RoleEngineer: {},
	RoleMedic:    {},
	RoleNurse:    {},
	RoleAdmin:    {},
}

var ErrInvalidRole = errors.New("invalid role")
var ErrCorruptStoredRole = errors.New("stored role is not a member of the role set")

// NormalizeRole trims and lowercases the input and checks membership in the
// role set. Membership is the only schema validation performed on the field.
func NormalizeRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", ErrInvalidRole
	}
	return r, nil
}

// Valid reports whether r is a member of the role set.
func (r Role) Valid() bool {
	_, ok := allowedRoles[r]
	return ok
}
