package agent

import (
	"fmt"

	"campusdelivery/internal/pkg/errs"
)

// DutyStatus is a delivery agent's current capacity signal.
type DutyStatus int

const (
	// DutyUnknown represents an invalid or undefined duty status.
	DutyUnknown DutyStatus = iota

	// Available means the agent can be reserved for a new order.
	Available

	// Busy means the agent holds an active assignment. Set and cleared only
	// by the assignment engine, never by the agent's own toggle.
	Busy

	// NotAvailable means the agent has taken themselves off duty.
	NotAvailable
)

func getDutyStatusStrings() map[DutyStatus]string {
	return map[DutyStatus]string{
		DutyUnknown:  "Unknown",
		Available:    "Available",
		Busy:         "Busy",
		NotAvailable: "Not Available",
	}
}

// DutyStatusFromString parses a duty status from its persisted string form.
func DutyStatusFromString(s string) (DutyStatus, error) {
	for status, str := range getDutyStatusStrings() {
		if status != DutyUnknown && str == s {
			return status, nil
		}
	}
	return DutyUnknown, errs.NewValueIsInvalidErrorWithCause("duty status",
		fmt.Errorf("%q is not a valid duty status", s))
}

// String returns the display name of the duty status.
func (s DutyStatus) String() string {
	if str, ok := getDutyStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Validate checks if the DutyStatus value is valid.
func (s DutyStatus) Validate() error {
	if _, ok := getDutyStatusStrings()[s]; !ok || s == DutyUnknown {
		return errs.NewValueIsInvalidErrorWithCause("duty status",
			fmt.Errorf("%d is not a valid duty status", s))
	}
	return nil
}

// AdminControl is the administrative enable flag of a delivery agent.
// An inactive agent is never eligible for assignment regardless of duty status.
type AdminControl int

const (
	// AdminControlUnknown represents an invalid or undefined flag.
	AdminControlUnknown AdminControl = iota

	// Active means the agent is administratively enabled.
	Active

	// Inactive means an admin has disabled the agent.
	Inactive
)

func getAdminControlStrings() map[AdminControl]string {
	return map[AdminControl]string{
		AdminControlUnknown: "unknown",
		Active:              "active",
		Inactive:            "inactive",
	}
}

// AdminControlFromString parses the flag from its persisted string form.
func AdminControlFromString(s string) (AdminControl, error) {
	for control, str := range getAdminControlStrings() {
		if control != AdminControlUnknown && str == s {
			return control, nil
		}
	}
	return AdminControlUnknown, errs.NewValueIsInvalidErrorWithCause("admin control",
		fmt.Errorf("%q is not a valid admin control", s))
}

// String returns the persisted name of the flag.
func (c AdminControl) String() string {
	if str, ok := getAdminControlStrings()[c]; ok {
		return str
	}
	return "unknown"
}

// Validate checks if the AdminControl value is valid.
func (c AdminControl) Validate() error {
	if _, ok := getAdminControlStrings()[c]; !ok || c == AdminControlUnknown {
		return errs.NewValueIsInvalidErrorWithCause("admin control",
			fmt.Errorf("%d is not a valid admin control", c))
	}
	return nil
}
