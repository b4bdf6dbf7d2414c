package order

import (
	"campusdelivery/internal/pkg/errs"
)

// Address is the delivery destination on campus.
// Zone is the optional campus area (hostel block, faculty building) used by
// the assignment engine to prefer agents working that area.
type Address struct {
	street string
	zone   string
}

// NewAddress creates a validated delivery address. Street is required.
func NewAddress(street, zone string) (Address, error) {
	if street == "" {
		return Address{}, errs.NewValueIsRequiredError("street")
	}
	return Address{street: street, zone: zone}, nil
}

// Street returns the street or hostel/room line of the address.
func (a Address) Street() string {
	return a.street
}

// Zone returns the campus zone, or an empty string when not provided.
func (a Address) Zone() string {
	return a.zone
}

// Validate checks the address was constructed with a street.
func (a Address) Validate() error {
	if a.street == "" {
		return errs.NewValueIsRequiredError("street")
	}
	return nil
}
