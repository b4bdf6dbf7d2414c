package order

// Event is the closed set of external stimuli that drive the order lifecycle.
// Each transition in the state machine has exactly one variant, so Apply can
// be an exhaustive type switch instead of string comparisons.
//
// Implementations are value types; the unexported marker method keeps the set
// closed to this package.
type Event interface {
	// Name returns the event name used in errors and logs.
	Name() string

	// note returns the ledger note recorded when the event is accepted.
	note() string

	isOrderEvent()
}

// PaymentConfirmed is the payment collaborator's callback: the order is paid
// and ready for delivery assignment.
type PaymentConfirmed struct{}

func (PaymentConfirmed) Name() string { return "PaymentConfirmed" }
func (PaymentConfirmed) note() string { return "Payment confirmed, waiting for a delivery agent" }
func (PaymentConfirmed) isOrderEvent() {}

// AssignmentSucceeded binds a reserved delivery agent to the order.
type AssignmentSucceeded struct {
	// Agent identifies the reserved delivery agent.
	Agent AgentInfo
}

func (AssignmentSucceeded) Name() string { return "AssignmentSucceeded" }
func (e AssignmentSucceeded) note() string {
	return "Assigned to delivery agent " + e.Agent.Name()
}
func (AssignmentSucceeded) isOrderEvent() {}

// AssignmentFailed records that no eligible agent was found. The order stays
// in PendingDelivery; no ledger entry is written. This is an expected
// operational state, not an error.
type AssignmentFailed struct{}

func (AssignmentFailed) Name() string  { return "AssignmentFailed" }
func (AssignmentFailed) note() string  { return "" }
func (AssignmentFailed) isOrderEvent() {}

// AgentMarkedPickedUp is raised by the bound agent after collecting the order
// from the shop.
type AgentMarkedPickedUp struct{}

func (AgentMarkedPickedUp) Name() string  { return "AgentMarkedPickedUp" }
func (AgentMarkedPickedUp) note() string  { return "Order picked up from the shop" }
func (AgentMarkedPickedUp) isOrderEvent() {}

// AgentMarkedEnRoute is raised by the bound agent once heading to the addressee.
type AgentMarkedEnRoute struct{}

func (AgentMarkedEnRoute) Name() string  { return "AgentMarkedEnRoute" }
func (AgentMarkedEnRoute) note() string  { return "Order is on the way" }
func (AgentMarkedEnRoute) isOrderEvent() {}

// AgentMarkedDelivered is raised by the bound agent on handover to the addressee.
type AgentMarkedDelivered struct{}

func (AgentMarkedDelivered) Name() string  { return "AgentMarkedDelivered" }
func (AgentMarkedDelivered) note() string  { return "Order delivered" }
func (AgentMarkedDelivered) isOrderEvent() {}

// OrderCancelled cancels the order from any non-terminal status.
// Raised by an admin or by the order's own agent.
type OrderCancelled struct {
	// Reason is an optional free-text explanation recorded on the ledger.
	Reason string
}

func (OrderCancelled) Name() string { return "OrderCancelled" }
func (e OrderCancelled) note() string {
	if e.Reason == "" {
		return "Order cancelled"
	}
	return "Order cancelled: " + e.Reason
}
func (OrderCancelled) isOrderEvent() {}
