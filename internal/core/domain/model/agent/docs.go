// Package agent implements the DeliveryAgent aggregate for the campus
// delivery system.
//
// A delivery agent carries two independent switches:
//   - duty status (Available, Busy, NotAvailable): the agent's capacity signal
//   - admin control (active, inactive): the administrative enable flag
//
// An agent is eligible for assignment only when administratively active and
// Available. Duty status becomes Busy only as a side effect of a reservation
// made by the assignment engine and returns to Available only when the agent
// holds no active assignments. Agents may toggle themselves between Available
// and NotAvailable, but never while Busy.
package agent
