// Package order implements the Order aggregate for the campus delivery system.
//
// An order is a single checkout's worth of line items from one shop, tracked
// through delivery. The aggregate owns:
//   - a snapshot of the purchased line items and the total computed at creation
//   - the current lifecycle status and the rules for moving between statuses
//   - the append-only status history (ledger) recording every transition
//   - the projection of the assigned delivery agent, if any
//
// The lifecycle is driven exclusively through Apply with one of the closed
// Event variants. Every accepted event advances the status and appends a
// ledger entry in the same aggregate mutation, so readers never observe one
// without the other once the aggregate is persisted atomically.
//
// Statuses follow the sequence
//
//	pending -> pending_delivery -> assigned -> picked_up -> on_the_way -> delivered
//
// with cancelled reachable from any non-terminal status. Delivered and
// cancelled are terminal.
package order
