package membership

import "github.com/BruksfildServices01/dogtrainer-admin/internal/httperr"

// ===============================
// Membership Status
// ===============================

type Status string

const (
	StatusMember    Status = "member"
	StatusNonMember Status = "non-member"
)

type Transition string

const (
	TransitionRenew  Transition = "renewed"
	TransitionCancel Transition = "cancelled"
)

func StatusOf(isMember bool) Status {
	if isMember {
		return StatusMember
	}
	return StatusNonMember
}

func ParseTransition(s string) (Transition, error) {
	switch Transition(s) {
	case TransitionRenew, TransitionCancel:
		return Transition(s), nil
	}
	return "", httperr.ErrValidation("invalid_membership_status")
}

// ===============================
// Transitions
// ===============================

// Apply returns the next status and whether it differs from current. Both
// transitions are idempotent: applying one to its own target state is a
// no-op, not an error.
func Apply(current Status, t Transition) (next Status, changed bool) {
	switch t {
	case TransitionRenew:
		next = StatusMember
	default:
		next = StatusNonMember
	}
	return next, next != current
}

// InsertsPayment reports whether the transition records a Membership row.
// Cancellations only flip the client flag.
func (t Transition) InsertsPayment() bool {
	return t == TransitionRenew
}
