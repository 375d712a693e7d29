package event

import (
	"github.com/shopspring/decimal"

	"github.com/fairlend/loanapp/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

// ---------------------------------------------------------------------------
// Applicant events
// ---------------------------------------------------------------------------

// ApplicantRegistered is raised when an unseen email first enters the system.
type ApplicantRegistered struct {
	events.BaseEvent
	Email string `json:"email"`
}

func NewApplicantRegistered(applicantID, email string) ApplicantRegistered {
	return ApplicantRegistered{
		BaseEvent: events.NewBaseEvent("loanapp.applicant.registered", applicantID, "Applicant"),
		Email:     email,
	}
}

// ApplicantContactUpdated is raised when a re-submission changes contact data.
type ApplicantContactUpdated struct {
	events.BaseEvent
	Email         string   `json:"email"`
	ChangedFields []string `json:"changed_fields"`
}

func NewApplicantContactUpdated(applicantID, email string, changedFields []string) ApplicantContactUpdated {
	return ApplicantContactUpdated{
		BaseEvent:     events.NewBaseEvent("loanapp.applicant.contact_updated", applicantID, "Applicant"),
		Email:         email,
		ChangedFields: changedFields,
	}
}

// ---------------------------------------------------------------------------
// Loan application events
// ---------------------------------------------------------------------------

// ApplicationSubmitted is raised when a new application enters the system.
type ApplicationSubmitted struct {
	events.BaseEvent
	ApplicantID string          `json:"applicant_id"`
	Amount      decimal.Decimal `json:"amount"`
}

func NewApplicationSubmitted(applicationID, applicantID string, amount decimal.Decimal) ApplicationSubmitted {
	return ApplicationSubmitted{
		BaseEvent:   events.NewBaseEvent("loanapp.application.submitted", applicationID, "LoanApplication"),
		ApplicantID: applicantID,
		Amount:      amount,
	}
}

// ApplicationApproved is raised when the decision policy approves an application.
type ApplicationApproved struct {
	events.BaseEvent
	ApplicantID string `json:"applicant_id"`
	RiskScore   int    `json:"risk_score"`
}

func NewApplicationApproved(applicationID, applicantID string, riskScore int) ApplicationApproved {
	return ApplicationApproved{
		BaseEvent:   events.NewBaseEvent("loanapp.application.approved", applicationID, "LoanApplication"),
		ApplicantID: applicantID,
		RiskScore:   riskScore,
	}
}

// ApplicationRejected is raised when the decision policy rejects an application.
type ApplicationRejected struct {
	events.BaseEvent
	ApplicantID string `json:"applicant_id"`
	RiskScore   int    `json:"risk_score"`
}

func NewApplicationRejected(applicationID, applicantID string, riskScore int) ApplicationRejected {
	return ApplicationRejected{
		BaseEvent:   events.NewBaseEvent("loanapp.application.rejected", applicationID, "LoanApplication"),
		ApplicantID: applicantID,
		RiskScore:   riskScore,
	}
}

// ApplicationFlaggedForReview is raised when the score lands in the manual band.
type ApplicationFlaggedForReview struct {
	events.BaseEvent
	ApplicantID string `json:"applicant_id"`
	RiskScore   int    `json:"risk_score"`
}

func NewApplicationFlaggedForReview(applicationID, applicantID string, riskScore int) ApplicationFlaggedForReview {
	return ApplicationFlaggedForReview{
		BaseEvent:   events.NewBaseEvent("loanapp.application.flagged_for_review", applicationID, "LoanApplication"),
		ApplicantID: applicantID,
		RiskScore:   riskScore,
	}
}

// ApplicationStatusUpdated is raised when a reviewer settles a manual_review case.
type ApplicationStatusUpdated struct {
	events.BaseEvent
	ApplicantID string `json:"applicant_id"`
	FromStatus  string `json:"from_status"`
	ToStatus    string `json:"to_status"`
}

func NewApplicationStatusUpdated(applicationID, applicantID, fromStatus, toStatus string) ApplicationStatusUpdated {
	return ApplicationStatusUpdated{
		BaseEvent:   events.NewBaseEvent("loanapp.application.status_updated", applicationID, "LoanApplication"),
		ApplicantID: applicantID,
		FromStatus:  fromStatus,
		ToStatus:    toStatus,
	}
}
