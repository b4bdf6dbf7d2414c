package kernel

import (
	"fmt"

	"campusdelivery/internal/pkg/errs"
)

// Role identifies the kind of actor performing an operation.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleCustomer is a student placing and tracking orders.
	RoleCustomer

	// RoleShopkeeper manages a shop and sees that shop's orders.
	RoleShopkeeper

	// RoleAgent is a delivery agent fulfilling assigned orders.
	RoleAgent

	// RoleAdmin oversees all other roles.
	RoleAdmin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:    "unknown",
		RoleCustomer:   "customer",
		RoleShopkeeper: "shopkeeper",
		RoleAgent:      "agent",
		RoleAdmin:      "admin",
	}
}

// RoleFromString parses a role name as it appears on the wire.
func RoleFromString(s string) (Role, error) {
	for role, str := range getRoleStrings() {
		if role != RoleUnknown && str == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role",
		fmt.Errorf("%q is not a valid role", s))
}

// String returns the wire name of the role.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// Validate checks if the Role value is valid.
func (r Role) Validate() error {
	if _, ok := getRoleStrings()[r]; !ok || r == RoleUnknown {
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// Principal is the authenticated identity on whose behalf an operation runs.
// Authorization rules in the application layer compare the principal against
// the owners and the assigned agent of the target aggregate.
type Principal struct {
	id   UUID
	role Role
}

// NewPrincipal creates a Principal from an identity and a role.
func NewPrincipal(id UUID, role Role) (Principal, error) {
	if err := id.Validate(); err != nil {
		return Principal{}, err
	}
	if err := role.Validate(); err != nil {
		return Principal{}, err
	}
	return Principal{id: id, role: role}, nil
}

// ID returns the principal's identity.
func (p Principal) ID() UUID {
	return p.id
}

// Role returns the principal's role.
func (p Principal) Role() Role {
	return p.role
}

// IsAdmin reports whether the principal holds the admin role.
func (p Principal) IsAdmin() bool {
	return p.role == RoleAdmin
}

// Validate checks the principal carries a constructed identity and a valid role.
func (p Principal) Validate() error {
	if err := p.id.Validate(); err != nil {
		return err
	}
	return p.role.Validate()
}
