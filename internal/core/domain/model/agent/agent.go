package agent

import (
	"errors"
	"fmt"
	"time"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/pkg/errs"
	"campusdelivery/internal/pkg/guard"
)

// Domain errors for delivery agent operations.
var (
	// ErrNameIsRequired is returned when onboarding an agent without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrPhoneIsRequired is returned when onboarding an agent without a contact phone.
	ErrPhoneIsRequired = errs.NewValueIsRequiredError("phone")
	// ErrAgentIsNotConstructed is returned when using an improperly initialized Agent.
	ErrAgentIsNotConstructed = errors.New("Agent must be created via NewAgent or RestoreAgent")
	// ErrAgentNotEligible is returned when reserving an agent that is inactive
	// or not Available.
	ErrAgentNotEligible = errors.New("agent is not eligible for assignment")
	// ErrAgentIsBusy is returned when an agent tries to toggle their own duty
	// status while holding an active assignment.
	ErrAgentIsBusy = errors.New("duty status cannot be changed while busy")
)

// Agent is the aggregate root for a delivery agent registered on campus.
//
// Invariants:
//   - An agent with admin control inactive is never eligible for assignment
//     regardless of duty status.
//   - Duty status moves to Busy only through Reserve (assignment side effect)
//     and back to Available only through Release, which callers invoke when
//     the agent holds zero active assignments.
//   - The agent's own toggle switches between Available and NotAvailable and
//     is rejected while Busy.
type Agent struct {
	// id uniquely identifies the agent
	id kernel.UUID
	// name is the human-readable name of the agent
	name string
	// phone is the agent's contact number shown to the addressee
	phone string
	// zone is the campus area the agent prefers to work, empty when unset
	zone string
	// dutyStatus is the agent's current capacity signal
	dutyStatus DutyStatus
	// adminControl is the administrative enable flag
	adminControl AdminControl
	// updatedAt records the last mutation time
	updatedAt time.Time
	// version supports optimistic concurrency control in the repositories
	version int

	guard guard.ConstructorGuard
}

// NewAgent onboards a delivery agent. New agents start Available and
// administratively active.
func NewAgent(id kernel.UUID, name, phone, zone string, now time.Time) (*Agent, error) {
	a := &Agent{
		zone:         zone,
		dutyStatus:   Available,
		adminControl: Active,
		updatedAt:    now,
		version:      1,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setID(id),
		a.setName(name),
		a.setPhone(phone),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// RestoreAgent reconstructs an agent aggregate from persistent storage.
func RestoreAgent(
	id kernel.UUID,
	name, phone, zone string,
	dutyStatus DutyStatus,
	adminControl AdminControl,
	updatedAt time.Time,
	version int,
) (*Agent, error) {
	a := &Agent{
		zone:      zone,
		updatedAt: updatedAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setID(id),
		a.setName(name),
		a.setPhone(phone),
		a.setDutyStatus(dutyStatus),
		a.setAdminControl(adminControl),
		a.setVersion(version),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// Validate ensures the Agent instance was properly constructed through a factory.
func (a *Agent) Validate() error {
	if a == nil {
		return ErrAgentIsNotConstructed
	}
	return a.guard.Validate(ErrAgentIsNotConstructed)
}

// IsEqual compares two agents by their unique identifiers.
func (a *Agent) IsEqual(other *Agent) bool {
	return other != nil && a.id.IsEqual(other.id)
}

// ID returns the agent's unique identifier.
func (a *Agent) ID() kernel.UUID {
	return a.id
}

// Name returns the agent's display name.
func (a *Agent) Name() string {
	return a.name
}

// Phone returns the agent's contact phone.
func (a *Agent) Phone() string {
	return a.phone
}

// Zone returns the campus area the agent prefers, or an empty string.
func (a *Agent) Zone() string {
	return a.zone
}

// DutyStatus returns the agent's current capacity signal.
func (a *Agent) DutyStatus() DutyStatus {
	return a.dutyStatus
}

// AdminControl returns the administrative enable flag.
func (a *Agent) AdminControl() AdminControl {
	return a.adminControl
}

// UpdatedAt returns the last mutation time.
func (a *Agent) UpdatedAt() time.Time {
	return a.updatedAt
}

// Version returns the optimistic-concurrency version the aggregate was loaded at.
func (a *Agent) Version() int {
	return a.version
}

// IsEligible reports whether the assignment engine may reserve this agent:
// administratively active and currently Available.
func (a *Agent) IsEligible() bool {
	return a.adminControl == Active && a.dutyStatus == Available
}

// Reserve marks the agent Busy for a new assignment.
// Fails with ErrAgentNotEligible unless the agent is active and Available.
func (a *Agent) Reserve(now time.Time) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if !a.IsEligible() {
		return fmt.Errorf("%w: duty status is %s, admin control is %s",
			ErrAgentNotEligible, a.dutyStatus, a.adminControl)
	}

	a.dutyStatus = Busy
	a.updatedAt = now
	return nil
}

// Release returns a Busy agent to Available after their order reached a
// terminal status. Callers must only release an agent that holds zero other
// active assignments. Releasing a non-Busy agent is a no-op, so duplicate
// terminal events stay idempotent.
func (a *Agent) Release(now time.Time) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if a.dutyStatus != Busy {
		return nil
	}

	a.dutyStatus = Available
	a.updatedAt = now
	return nil
}

// SetDutyStatus is the agent's own on/off-duty toggle.
// Only Available and NotAvailable can be requested, and never while Busy:
// Busy is owned by the assignment engine.
func (a *Agent) SetDutyStatus(status DutyStatus, now time.Time) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if err := status.Validate(); err != nil {
		return err
	}
	if status == Busy {
		return errs.NewValueIsInvalidErrorWithCause("duty status",
			errors.New("Busy is set only by the assignment engine"))
	}
	if a.dutyStatus == Busy {
		return ErrAgentIsBusy
	}

	a.dutyStatus = status
	a.updatedAt = now
	return nil
}

// SetAdminControl flips the administrative enable flag.
// Disabling does not interrupt an in-flight delivery; it only removes the
// agent from future eligibility.
func (a *Agent) SetAdminControl(control AdminControl, now time.Time) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if err := control.Validate(); err != nil {
		return err
	}

	a.adminControl = control
	a.updatedAt = now
	return nil
}

func (a *Agent) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Agent) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	a.name = name
	return nil
}

func (a *Agent) setPhone(phone string) error {
	if phone == "" {
		return ErrPhoneIsRequired
	}
	a.phone = phone
	return nil
}

func (a *Agent) setDutyStatus(status DutyStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	a.dutyStatus = status
	return nil
}

func (a *Agent) setAdminControl(control AdminControl) error {
	if err := control.Validate(); err != nil {
		return err
	}
	a.adminControl = control
	return nil
}

func (a *Agent) setVersion(version int) error {
	if version <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("version",
			fmt.Errorf("%d is not greater than 0", version))
	}
	a.version = version
	return nil
}
