package port

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fairlend/loanapp/internal/domain/event"
	"github.com/fairlend/loanapp/internal/domain/model"
	"github.com/fairlend/loanapp/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Sentinel errors
// ---------------------------------------------------------------------------

var (
	// ErrApplicantNotFound is returned when no applicant matches the lookup key.
	ErrApplicantNotFound = errors.New("applicant not found")
	// ErrApplicationNotFound is returned when no application matches the lookup key.
	ErrApplicationNotFound = errors.New("loan application not found")
	// ErrDuplicateEmail is returned when an applicant insert loses the race on
	// the unique email constraint.
	ErrDuplicateEmail = errors.New("applicant email already exists")
	// ErrScoringUnavailable is returned by a scorer when the provider cannot be
	// reached at the network layer. It is the only scorer failure the fallback
	// strategy recovers from.
	ErrScoringUnavailable = errors.New("risk scoring provider unavailable")
)

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// ApplicantRepository persists and retrieves applicants.
type ApplicantRepository interface {
	Create(ctx context.Context, a model.Applicant) error
	// UpdateContact persists only the named fields of the applicant.
	UpdateContact(ctx context.Context, a model.Applicant, fields []string) error
	FindByEmail(ctx context.Context, email string) (model.Applicant, error)
	FindByID(ctx context.Context, id string) (model.Applicant, error)
	List(ctx context.Context) ([]model.Applicant, error)
}

// ApplicationFilter narrows List results. Nil fields match everything.
type ApplicationFilter struct {
	Status      *valueobject.ApplicationStatus
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// SummarySnapshot is the raw aggregate the summary report is computed from.
type SummarySnapshot struct {
	Total         int64
	Approved      int64
	Rejected      int64
	Pending       int64
	ManualReview  int64
	AverageAmount decimal.Decimal
	RecentCount   int64
}

// ApplicationRepository persists and retrieves loan applications.
type ApplicationRepository interface {
	Create(ctx context.Context, app model.LoanApplication) error
	// RecordDecision persists the risk score and decided status of an
	// application created earlier in the same transaction.
	RecordDecision(ctx context.Context, app model.LoanApplication) error
	// UpdateStatus persists only the status column.
	UpdateStatus(ctx context.Context, app model.LoanApplication) error
	FindByID(ctx context.Context, id string) (model.LoanApplication, error)
	List(ctx context.Context, filter ApplicationFilter) ([]model.LoanApplication, error)
	// Summarize aggregates counts and the average amount over all
	// applications; recentSince bounds the recent-activity count.
	Summarize(ctx context.Context, recentSince time.Time) (SummarySnapshot, error)
}

// Repositories bundles the repository ports bound to one transaction scope.
type Repositories struct {
	Applicants   ApplicantRepository
	Applications ApplicationRepository
}

// UnitOfWork runs fn against repositories bound to a single atomic
// transaction. If fn returns an error nothing it wrote stays visible.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(repos Repositories) error) error
}

// ---------------------------------------------------------------------------
// External service ports
// ---------------------------------------------------------------------------

// RiskScorer computes or fetches a risk score in [0, 100] for an
// (applicant, amount) pair. Higher scores mean higher lending risk.
type RiskScorer interface {
	Score(ctx context.Context, applicant model.Applicant, amount decimal.Decimal) (int, error)
}

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}
