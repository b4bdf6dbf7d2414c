// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the campus delivery system. It implements
// business workflows that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - AgentDispatcher: round-robin selection of the next delivery agent for an
//     order awaiting dispatch
//
// Domain services coordinate between aggregates, implementing business logic
// that spans multiple bounded contexts following Domain-Driven Design principles.
package services
