package order

import (
	"fmt"
	"strings"

	"orders/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct business workflow.
//
// State transitions:
//
//	Pending ──┬──> Confirmed ──┬──> Completed
//	          │                │
//	          └──> Cancelled <─┘
//
// Completed and Cancelled are terminal states with no outgoing transitions.
// Cancellation is a terminal state, not a deletion: cancelled orders stay
// persisted for audit and event consumers.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status when an order is first created.
	// Items may only be added or removed while the order is pending.
	Pending

	// Confirmed indicates inventory has been reserved and the order
	// is committed. Item mutation is no longer allowed.
	Confirmed

	// Completed indicates the order has been fulfilled. Terminal.
	Completed

	// Cancelled indicates the order was cancelled from Pending or
	// Confirmed. Terminal.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Pending:   "Pending",
		Confirmed: "Confirmed",
		Completed: "Completed",
		Cancelled: "Cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "Pending",
		Confirmed: "Confirmed",
		Completed: "Completed",
		Cancelled: "Cancelled",
	}
}

// getAllowedTransitions returns the lifecycle adjacency table. Any
// (from, to) edge not present here is rejected by TransitionTo.
func getAllowedTransitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:   {Confirmed, Cancelled},
		Confirmed: {Completed, Cancelled},
		Completed: {},
		Cancelled: {},
	}
}

// StatusFromString parses a status name, case-insensitively.
// Returns an error for unknown names and for "Unknown" itself.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if strings.EqualFold(name, s) {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is one of the defined lifecycle states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidError("status")
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer; safe to call on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transitions are allowed.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// CanTransitionTo reports whether the (s, target) edge is present in the
// lifecycle adjacency table.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range getAllowedTransitions()[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo returns the target status if the transition is allowed,
// or an InvalidTransitionError for any edge outside the adjacency table.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}
	if !s.CanTransitionTo(target) {
		return Unknown, errs.NewInvalidTransitionError(s.String(), target.String())
	}
	return target, nil
}
