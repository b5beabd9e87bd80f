package billing

import domainErrors "schoolhub/internal/domain/errors"

// Status is the lifecycle state of a subscription.
type Status string

const (
	StatusTrial     Status = "trial"
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
	StatusCancelled Status = "cancelled"
	StatusInactive  Status = "inactive"
)

// Action is an operator-initiated status change.
type Action string

const (
	ActionActivate   Action = "activate"
	ActionSuspend    Action = "suspend"
	ActionReactivate Action = "reactivate"
	ActionCancel     Action = "cancel"
	ActionDeactivate Action = "deactivate"
)

// transitions is the full set of allowed status changes. Anything not in
// the table is rejected, including repeating an action a subscription has
// already absorbed (suspending a suspended subscription is an error, not
// a no-op).
var transitions = map[Status]map[Action]Status{
	StatusTrial: {
		ActionActivate:   StatusActive,
		ActionCancel:     StatusCancelled,
		ActionDeactivate: StatusInactive,
	},
	StatusActive: {
		ActionSuspend:    StatusSuspended,
		ActionCancel:     StatusCancelled,
		ActionDeactivate: StatusInactive,
	},
	StatusSuspended: {
		ActionReactivate: StatusActive,
		ActionCancel:     StatusCancelled,
	},
	StatusCancelled: {
		ActionReactivate: StatusActive,
	},
	StatusInactive: {
		ActionActivate: StatusActive,
	},
}

// Transition applies an action to a status and returns the new status.
func Transition(from Status, action Action) (Status, error) {
	if allowed, ok := transitions[from]; ok {
		if to, ok := allowed[action]; ok {
			return to, nil
		}
	}
	return "", domainErrors.NewInvalidTransitionError(string(from), string(action))
}

// ValidStatus reports whether s is a known subscription status.
func ValidStatus(s Status) bool {
	_, ok := transitions[s]
	return ok
}
