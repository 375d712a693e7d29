package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// ApplicantInput carries the applicant fields of a submission.
type ApplicantInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// SubmitApplicationRequest carries the data needed to submit a new loan application.
type SubmitApplicationRequest struct {
	Applicant         ApplicantInput  `json:"applicant"`
	Amount            decimal.Decimal `json:"amount"`
	ExternalReference string          `json:"external_reference,omitempty"`
}

// UpdateStatusRequest settles a manual_review application.
type UpdateStatusRequest struct {
	ApplicationID string `json:"application_id"`
	Status        string `json:"status"`
}

// GetApplicationRequest retrieves a single application.
type GetApplicationRequest struct {
	ApplicationID string `json:"application_id"`
}

// GetApplicantRequest retrieves a single applicant.
type GetApplicantRequest struct {
	ApplicantID string `json:"applicant_id"`
}

// ListApplicationsRequest narrows the application listing. Zero values match
// everything.
type ListApplicationsRequest struct {
	Status    string     `json:"status,omitempty"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// ApplicantResponse is the outward shape of an applicant.
type ApplicantResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoanApplicationResponse is the outward shape of a loan application,
// including the owning applicant's details.
type LoanApplicationResponse struct {
	ID                string            `json:"id"`
	ApplicantID       string            `json:"applicant_id"`
	Applicant         ApplicantResponse `json:"applicant_details"`
	Amount            decimal.Decimal   `json:"amount"`
	RiskScore         *int              `json:"risk_score"`
	Status            string            `json:"status"`
	ExternalReference string            `json:"external_reference,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// SummaryResponse is the on-demand aggregate over all applications.
type SummaryResponse struct {
	Total         int64   `json:"total"`
	Approved      int64   `json:"approved"`
	Rejected      int64   `json:"rejected"`
	Pending       int64   `json:"pending"`
	ManualReview  int64   `json:"manual_review"`
	ApprovalRate  float64 `json:"approval_rate"`
	AverageAmount float64 `json:"average_amount"`
	RecentCount   int64   `json:"recent_count"`
	Timestamp     string  `json:"timestamp"`
}
