// Package identity models the authenticated caller. Identities are produced
// upstream from verified credentials and are read-only to the domain.
package identity

import (
	"errors"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrIdentityIsNotConstructed = errors.New("Identity must be created via NewIdentity constructor")

// Identity is the {userId, role, region} tuple attached to every call.
type Identity struct { //nolint:recvcheck //using for validation
	userID string
	role   Role
	region kernel.Region
	guard  guard.ConstructorGuard
}

// NewIdentity validates every component; the user id is an opaque non-empty string.
func NewIdentity(userID string, role Role, region kernel.Region) (Identity, error) {
	id := Identity{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		id.setUserID(userID),
		role.Validate(),
		region.Validate(),
	); err != nil {
		return Identity{}, err
	}
	id.role = role
	id.region = region

	return id, nil
}

func (i Identity) Validate() error {
	return i.guard.Validate(ErrIdentityIsNotConstructed)
}

func (i Identity) UserID() string {
	return i.userID
}

func (i Identity) Role() Role {
	return i.role
}

func (i Identity) Region() kernel.Region {
	return i.region
}

func (i Identity) IsAdmin() bool {
	return i.role == Admin
}

func (i *Identity) setUserID(userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return errs.NewValueIsRequiredError("userId")
	}
	i.userID = userID
	return nil
}
