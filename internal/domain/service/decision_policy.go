package service

import (
	"github.com/fairlend/loanapp/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// DecisionPolicy – domain service mapping a risk score to a status
// ---------------------------------------------------------------------------

// Decision thresholds. Strict comparisons: a score equal to either bound
// lands in manual review.
const (
	ApproveBelow = 30
	RejectAbove  = 70
)

// DecisionPolicy turns a risk score into an application status. It is a pure
// total function; every integer input yields a decided status.
type DecisionPolicy struct{}

// NewDecisionPolicy returns a new policy instance.
func NewDecisionPolicy() *DecisionPolicy {
	return &DecisionPolicy{}
}

// Decide maps a risk score to a status:
//
//	score < 30        -> approved
//	score > 70        -> rejected
//	30 <= score <= 70 -> manual_review
func (p *DecisionPolicy) Decide(riskScore int) valueobject.ApplicationStatus {
	switch {
	case riskScore < ApproveBelow:
		return valueobject.ApplicationStatusApproved
	case riskScore > RejectAbove:
		return valueobject.ApplicationStatusRejected
	default:
		return valueobject.ApplicationStatusManualReview
	}
}
