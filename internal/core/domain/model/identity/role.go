package identity

import (
	"fmt"
	"strings"

	"ordering/internal/pkg/errs"
)

// Role is the caller's tier in the organization hierarchy.
type Role string

const (
	Admin   Role = "ADMIN"
	Manager Role = "MANAGER"
	Member  Role = "MEMBER"
)

// Roles lists every role, highest first.
func Roles() []Role {
	return []Role{Admin, Manager, Member}
}

// ParseRole accepts role names case-insensitively.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r, nil
}

func (r Role) Validate() error {
	switch r {
	case Admin, Manager, Member:
		return nil
	case "":
		return errs.NewValueIsRequiredError("role")
	}
	return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a supported role", string(r)))
}

func (r Role) String() string {
	return string(r)
}
