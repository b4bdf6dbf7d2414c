package services

import (
	"errors"
	"fmt"
	"sort"

	"campusdelivery/internal/core/domain/model/agent"
	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/pkg/errs"
)

// ErrAgentNotFound is returned when no eligible delivery agent exists for an
// order. This is an expected operational state: the order stays queued in
// pending_delivery and selection is retried later.
var ErrAgentNotFound = errors.New("no eligible delivery agent found")

// AgentDispatcher is the domain service that selects the next delivery agent
// for an order awaiting dispatch.
//
// Selection rules:
//   - Only administratively active, Available agents are considered.
//   - Agents working the order's campus zone are preferred; when none match,
//     the full eligible pool is used.
//   - Within the pool, selection is round-robin over a shared cursor: the
//     next call picks (cursor+1) mod poolSize. The cursor is owned by the
//     caller (persisted alongside the reservation), so fairness is global
//     across all assignment calls, not per shop.
//
// The dispatcher only selects; reserving the agent and binding it to the
// order is the caller's transaction.
type AgentDispatcher struct{}

// NewAgentDispatcher creates a new AgentDispatcher instance.
func NewAgentDispatcher() AgentDispatcher {
	return AgentDispatcher{}
}

// Select picks the next agent for the order using round-robin.
//
// The cursor is the index selected by the previous call (use -1 when no
// selection has been made yet). Returns the chosen agent and the advanced
// cursor to persist, or ErrAgentNotFound when the eligible pool is empty.
//
// The pool is ordered deterministically by agent ID before indexing so the
// cursor means the same thing regardless of the order the registry returned
// the agents in.
func (d AgentDispatcher) Select(o *order.Order, agents []*agent.Agent, cursor int) (*agent.Agent, int, error) {
	if err := o.Validate(); err != nil {
		return nil, cursor, err
	}
	if o.Status() != order.PendingDelivery {
		return nil, cursor, errs.NewValueIsInvalidErrorWithCause("order status",
			fmt.Errorf("%s is not awaiting assignment", o.Status()))
	}

	pool, err := d.eligiblePool(o, agents)
	if err != nil {
		return nil, cursor, err
	}
	if len(pool) == 0 {
		return nil, cursor, ErrAgentNotFound
	}

	sort.Slice(pool, func(i, j int) bool {
		return pool[i].ID().String() < pool[j].ID().String()
	})

	next := (cursor + 1) % len(pool)
	if next < 0 {
		next += len(pool)
	}

	return pool[next], next, nil
}

// eligiblePool filters the agents down to those the engine may reserve,
// preferring the order's campus zone when any eligible agent works it.
func (d AgentDispatcher) eligiblePool(o *order.Order, agents []*agent.Agent) ([]*agent.Agent, error) {
	var eligible, zoned []*agent.Agent

	zone := o.Address().Zone()
	for _, a := range agents {
		if err := a.Validate(); err != nil {
			return nil, err
		}
		if !a.IsEligible() {
			continue
		}

		eligible = append(eligible, a)
		if zone != "" && a.Zone() == zone {
			zoned = append(zoned, a)
		}
	}

	if len(zoned) > 0 {
		return zoned, nil
	}
	return eligible, nil
}
