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
	statusPending      = "pending"
	statusApproved     = "approved"
	statusRejected     = "rejected"
	statusManualReview = "manual_review"
)

var (
	ApplicationStatusPending      = ApplicationStatus{value: statusPending}
	ApplicationStatusApproved     = ApplicationStatus{value: statusApproved}
	ApplicationStatusRejected     = ApplicationStatus{value: statusRejected}
	ApplicationStatusManualReview = ApplicationStatus{value: statusManualReview}
)

var validApplicationStatuses = map[string]ApplicationStatus{
	statusPending:      ApplicationStatusPending,
	statusApproved:     ApplicationStatusApproved,
	statusRejected:     ApplicationStatusRejected,
	statusManualReview: ApplicationStatusManualReview,
}

// NewApplicationStatus creates an ApplicationStatus from a raw string.
func NewApplicationStatus(s string) (ApplicationStatus, error) {
	v, ok := validApplicationStatuses[s]
	if !ok {
		return ApplicationStatus{}, fmt.Errorf("invalid application status: %q", s)
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

// IsDecided returns true for statuses a finished submission may carry.
// pending is transient while the scoring step runs.
func (s ApplicationStatus) IsDecided() bool {
	return s.value == statusApproved || s.value == statusRejected || s.value == statusManualReview
}

// ---------------------------------------------------------------------------
// Sentinel errors
// ---------------------------------------------------------------------------

var (
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)
