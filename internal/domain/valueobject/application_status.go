package valueobject

import (
	"errors"
	"fmt"
)

// ---------------------------------------------------------------------------
// ApplicationStatus – immutable value object
// ---------------------------------------------------------------------------

// ApplicationStatus represents the lifecycle stage of a loan application.
type ApplicationStatus struct {
	value string
}

const (
	appStatusPending   = "pending"
	appStatusReviewing = "reviewing"
	appStatusApproved  = "approved"
	appStatusRejected  = "rejected"
)

var (
	ApplicationStatusPending   = ApplicationStatus{value: appStatusPending}
	ApplicationStatusReviewing = ApplicationStatus{value: appStatusReviewing}
	ApplicationStatusApproved  = ApplicationStatus{value: appStatusApproved}
	ApplicationStatusRejected  = ApplicationStatus{value: appStatusRejected}
)

var validApplicationStatuses = map[string]ApplicationStatus{
	appStatusPending:   ApplicationStatusPending,
	appStatusReviewing: ApplicationStatusReviewing,
	appStatusApproved:  ApplicationStatusApproved,
	appStatusRejected:  ApplicationStatusRejected,
}

// NewApplicationStatus creates an ApplicationStatus from a raw string.
func NewApplicationStatus(s string) (ApplicationStatus, error) {
	v, ok := validApplicationStatuses[s]
	if !ok {
		return ApplicationStatus{}, fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s ApplicationStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s ApplicationStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s ApplicationStatus) Equal(other ApplicationStatus) bool {
	return s.value == other.value
}

// IsTerminal returns true for approved and rejected.
func (s ApplicationStatus) IsTerminal() bool {
	return s.value == appStatusApproved || s.value == appStatusRejected
}

// CanTransitionTo reports whether moving from s to next is permitted.
// Re-entering the current status is always allowed (a re-approve refreshes
// the approval timestamp, a notes-only update re-enters pending). Terminal
// statuses cannot transition to a different status, and reviewing cannot
// move back to pending.
func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	if s.Equal(next) {
		return true
	}
	switch s.value {
	case appStatusPending:
		return true
	case appStatusReviewing:
		return next.value == appStatusApproved || next.value == appStatusRejected
	default:
		return false
	}
}

// ---------------------------------------------------------------------------
// Sentinel errors
// ---------------------------------------------------------------------------

var (
	ErrInvalidStatus           = errors.New("invalid application status")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)
