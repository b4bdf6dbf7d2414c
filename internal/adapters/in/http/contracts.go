package http

import "time"

// Error is the JSON error payload returned by every endpoint on failure.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewOrderItem is one cart line in an order creation request.
type NewOrderItem struct {
	ProductID string `json:"product_id"`
	ShopID    string `json:"shop_id"`
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

// NewOrder is the order creation request body.
type NewOrder struct {
	Items  []NewOrderItem `json:"items"`
	Street string         `json:"street"`
	Zone   string         `json:"zone"`
}

// OrderCreated acknowledges a newly placed order.
type OrderCreated struct {
	ID     string `json:"id"`
	Number string `json:"number"`
}

// PaymentConfirmation is the payment collaborator's callback body.
type PaymentConfirmation struct {
	OrderID string `json:"order_id"`
}

// OrderEvent is a delivery progress or cancellation request body.
// Event is one of "picked_up", "on_the_way", "delivered", "cancelled".
type OrderEvent struct {
	Event  string `json:"event"`
	Reason string `json:"reason,omitempty"`
}

// OrderAgent is the bound delivery agent as shown on an order.
type OrderAgent struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// OrderItem is one purchased line item on an order view.
type OrderItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

// OrderLedgerEntry is one entry of the order's status history.
type OrderLedgerEntry struct {
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
	Note       string    `json:"note"`
}

// Order is the full order view.
type Order struct {
	ID        string             `json:"id"`
	Number    string             `json:"number"`
	Status    string             `json:"status"`
	Street    string             `json:"street"`
	Zone      string             `json:"zone"`
	Total     string             `json:"total"`
	Agent     *OrderAgent        `json:"agent,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	Items     []OrderItem        `json:"items"`
	Events    []OrderLedgerEntry `json:"events"`
}

// NewAgent is the agent onboarding request body.
type NewAgent struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Zone  string `json:"zone"`
}

// AgentCreated acknowledges a newly onboarded agent.
type AgentCreated struct {
	ID string `json:"id"`
}

// Agent is one entry of the agent registry view.
type Agent struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Zone         string `json:"zone"`
	DutyStatus   string `json:"duty_status"`
	AdminControl string `json:"admin_control"`
}

// AgentDutyStatusChange is the duty toggle request body.
// DutyStatus is "Available" or "Not Available"; "Busy" is reserved for the
// assignment engine and is rejected here.
type AgentDutyStatusChange struct {
	DutyStatus string `json:"duty_status"`
}

// AgentAdminControlChange is the administrative enable flag request body.
// AdminControl is "active" or "inactive".
type AgentAdminControlChange struct {
	AdminControl string `json:"admin_control"`
}
