package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fairlend/loanapp/internal/domain/event"
	"github.com/fairlend/loanapp/internal/domain/valueobject"
)

// MinLoanAmount is the smallest acceptable loan amount, in currency-neutral units.
var MinLoanAmount = decimal.NewFromInt(100)

// ---------------------------------------------------------------------------
// LoanApplication aggregate root
// ---------------------------------------------------------------------------

// LoanApplication is an immutable aggregate. Every mutation returns a new copy.
//
// A fresh application is pending only while the scoring step runs; a finished
// submission always carries approved, rejected, or manual_review. Amount and
// risk score never change after the decision is recorded.
type LoanApplication struct {
	id                string
	applicantID       string
	amount            decimal.Decimal
	riskScore         *int
	status            valueobject.ApplicationStatus
	externalReference string
	createdAt         time.Time
	updatedAt         time.Time
	domainEvents      []event.DomainEvent
}

// NewLoanApplication creates a brand-new application in pending status.
func NewLoanApplication(applicantID string, amount decimal.Decimal, externalReference string, now time.Time) (LoanApplication, error) {
	if applicantID == "" {
		return LoanApplication{}, ValidationError{Field: "applicant", Reason: "is required"}
	}
	if amount.IsZero() {
		return LoanApplication{}, ValidationError{Field: "amount", Reason: "is required"}
	}
	if amount.LessThan(MinLoanAmount) {
		return LoanApplication{}, ValidationError{Field: "amount", Reason: "must be at least " + MinLoanAmount.String()}
	}

	id := uuid.New().String()
	app := LoanApplication{
		id:                id,
		applicantID:       applicantID,
		amount:            amount,
		status:            valueobject.ApplicationStatusPending,
		externalReference: externalReference,
		createdAt:         now,
		updatedAt:         now,
	}
	app.domainEvents = append(app.domainEvents, event.NewApplicationSubmitted(id, applicantID, amount))
	return app, nil
}

// ReconstructLoanApplication rebuilds an aggregate from persistence without side-effects.
func ReconstructLoanApplication(
	id, applicantID string,
	amount decimal.Decimal,
	riskScore *int,
	status valueobject.ApplicationStatus,
	externalReference string,
	createdAt, updatedAt time.Time,
) LoanApplication {
	return LoanApplication{
		id:                id,
		applicantID:       applicantID,
		amount:            amount,
		riskScore:         riskScore,
		status:            status,
		externalReference: externalReference,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}
}

// ---------------------------------------------------------------------------
// State transitions (each returns a new copy)
// ---------------------------------------------------------------------------

// ApplyDecision records the risk score and the decided status on a pending
// application. The risk score is assigned exactly once.
func (a LoanApplication) ApplyDecision(riskScore int, decided valueobject.ApplicationStatus, now time.Time) (LoanApplication, error) {
	if !a.status.Equal(valueobject.ApplicationStatusPending) || a.riskScore != nil {
		return a, valueobject.ErrInvalidStatusTransition
	}
	if !decided.IsDecided() {
		return a, valueobject.ErrInvalidStatusTransition
	}

	next := a
	score := riskScore
	next.riskScore = &score
	next.status = decided
	next.updatedAt = now
	next.domainEvents = copyEvents(a.domainEvents)

	switch {
	case decided.Equal(valueobject.ApplicationStatusApproved):
		next.domainEvents = append(next.domainEvents, event.NewApplicationApproved(a.id, a.applicantID, riskScore))
	case decided.Equal(valueobject.ApplicationStatusRejected):
		next.domainEvents = append(next.domainEvents, event.NewApplicationRejected(a.id, a.applicantID, riskScore))
	default:
		next.domainEvents = append(next.domainEvents, event.NewApplicationFlaggedForReview(a.id, a.applicantID, riskScore))
	}
	return next, nil
}

// ResolveReview settles a manual_review application with an explicit decision.
// It is the only transition allowed after submission and may run exactly once;
// amount, risk score, and applicant stay untouched.
func (a LoanApplication) ResolveReview(next valueobject.ApplicationStatus, now time.Time) (LoanApplication, error) {
	if !a.status.Equal(valueobject.ApplicationStatusManualReview) {
		return a, valueobject.ErrInvalidStatusTransition
	}
	if !next.Equal(valueobject.ApplicationStatusApproved) && !next.Equal(valueobject.ApplicationStatusRejected) {
		return a, valueobject.ErrInvalidStatusTransition
	}

	resolved := a
	resolved.status = next
	resolved.updatedAt = now
	resolved.domainEvents = copyEvents(a.domainEvents)
	resolved.domainEvents = append(resolved.domainEvents, event.NewApplicationStatusUpdated(a.id, a.applicantID, a.status.String(), next.String()))
	return resolved, nil
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (a LoanApplication) ID() string                            { return a.id }
func (a LoanApplication) ApplicantID() string                   { return a.applicantID }
func (a LoanApplication) Amount() decimal.Decimal               { return a.amount }
func (a LoanApplication) Status() valueobject.ApplicationStatus { return a.status }
func (a LoanApplication) ExternalReference() string             { return a.externalReference }
func (a LoanApplication) CreatedAt() time.Time                  { return a.createdAt }
func (a LoanApplication) UpdatedAt() time.Time                  { return a.updatedAt }
func (a LoanApplication) DomainEvents() []event.DomainEvent     { return a.domainEvents }

// RiskScore returns the assigned risk score and whether one has been recorded.
func (a LoanApplication) RiskScore() (int, bool) {
	if a.riskScore == nil {
		return 0, false
	}
	return *a.riskScore, true
}

// ClearEvents returns a copy with an empty event list (call after publishing).
func (a LoanApplication) ClearEvents() LoanApplication {
	next := a
	next.domainEvents = nil
	return next
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func copyEvents(src []event.DomainEvent) []event.DomainEvent {
	if len(src) == 0 {
		return nil
	}
	dst := make([]event.DomainEvent, len(src))
	copy(dst, src)
	return dst
}
