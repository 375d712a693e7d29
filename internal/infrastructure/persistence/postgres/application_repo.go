package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/fairlend/loanapp/internal/domain/model"
	"github.com/fairlend/loanapp/internal/domain/port"
	"github.com/fairlend/loanapp/internal/domain/valueobject"
	pgutil "github.com/fairlend/loanapp/pkg/postgres"
)

// ApplicationRepo implements port.ApplicationRepository over PostgreSQL.
type ApplicationRepo struct {
	q pgutil.Querier
}

// NewApplicationRepo creates a repository bound to the given querier.
func NewApplicationRepo(q pgutil.Querier) *ApplicationRepo {
	return &ApplicationRepo{q: q}
}

// Create inserts a freshly submitted application.
func (r *ApplicationRepo) Create(ctx context.Context, app model.LoanApplication) error {
	query := `
		INSERT INTO loan_applications (
			id, applicant_id, amount, risk_score, status,
			external_reference, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	var riskScore *int
	if score, ok := app.RiskScore(); ok {
		riskScore = &score
	}
	_, err := r.q.Exec(ctx, query,
		app.ID(), app.ApplicantID(), app.Amount(), riskScore,
		app.Status().String(), app.ExternalReference(),
		app.CreatedAt(), app.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("insert loan application: %w", err)
	}
	return nil
}

// RecordDecision persists the risk score and decided status of a pending
// application. The status guard in the WHERE clause keeps the score
// write-once at the storage layer too.
func (r *ApplicationRepo) RecordDecision(ctx context.Context, app model.LoanApplication) error {
	score, ok := app.RiskScore()
	if !ok {
		return fmt.Errorf("record decision: application %s has no risk score", app.ID())
	}
	query := `
		UPDATE loan_applications
		SET risk_score = $2, status = $3, updated_at = $4
		WHERE id = $1 AND status = 'pending'
	`
	tag, err := r.q.Exec(ctx, query, app.ID(), score, app.Status().String(), app.UpdatedAt())
	if err != nil {
		return fmt.Errorf("record decision: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return port.ErrApplicationNotFound
	}
	return nil
}

// UpdateStatus persists only the status column of an application under
// manual review.
func (r *ApplicationRepo) UpdateStatus(ctx context.Context, app model.LoanApplication) error {
	query := `
		UPDATE loan_applications
		SET status = $2, updated_at = $3
		WHERE id = $1 AND status = 'manual_review'
	`
	tag, err := r.q.Exec(ctx, query, app.ID(), app.Status().String(), app.UpdatedAt())
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return valueobject.ErrInvalidStatusTransition
	}
	return nil
}

// FindByID retrieves a single application.
func (r *ApplicationRepo) FindByID(ctx context.Context, id string) (model.LoanApplication, error) {
	query := selectApplication + " WHERE id = $1"
	app, err := scanApplication(r.q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.LoanApplication{}, port.ErrApplicationNotFound
	}
	return app, err
}

// List returns applications matching the filter, newest first.
func (r *ApplicationRepo) List(ctx context.Context, filter port.ApplicationFilter) ([]model.LoanApplication, error) {
	query := selectApplication
	var (
		conds []string
		args  []any
	)
	if filter.Status != nil {
		args = append(args, filter.Status.String())
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.CreatedFrom != nil {
		args = append(args, *filter.CreatedFrom)
		conds = append(conds, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.CreatedTo != nil {
		args = append(args, *filter.CreatedTo)
		conds = append(conds, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	for i, cond := range conds {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query loan applications: %w", err)
	}
	defer rows.Close()

	var result []model.LoanApplication
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, app)
	}
	return result, rows.Err()
}

// Summarize computes the status counts, overall average amount, and the
// recent-activity count in a single aggregate query.
func (r *ApplicationRepo) Summarize(ctx context.Context, recentSince time.Time) (port.SummarySnapshot, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'approved'),
			COUNT(*) FILTER (WHERE status = 'rejected'),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'manual_review'),
			COALESCE(AVG(amount), 0),
			COUNT(*) FILTER (WHERE created_at >= $1)
		FROM loan_applications
	`
	var snap port.SummarySnapshot
	err := r.q.QueryRow(ctx, query, recentSince).Scan(
		&snap.Total, &snap.Approved, &snap.Rejected,
		&snap.Pending, &snap.ManualReview,
		&snap.AverageAmount, &snap.RecentCount,
	)
	if err != nil {
		return port.SummarySnapshot{}, fmt.Errorf("summarize loan applications: %w", err)
	}
	return snap, nil
}

// ---------------------------------------------------------------------------
// scan helpers
// ---------------------------------------------------------------------------

const selectApplication = `
	SELECT id, applicant_id, amount, risk_score, status,
	       external_reference, created_at, updated_at
	FROM loan_applications`

type scannable interface {
	Scan(dest ...any) error
}

func scanApplication(s scannable) (model.LoanApplication, error) {
	var (
		id, applicantID      string
		amount               decimal.Decimal
		riskScore            *int
		statusStr            string
		externalReference    string
		createdAt, updatedAt time.Time
	)
	err := s.Scan(
		&id, &applicantID, &amount, &riskScore,
		&statusStr, &externalReference, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.LoanApplication{}, err
		}
		return model.LoanApplication{}, fmt.Errorf("scan loan application: %w", err)
	}

	status, err := valueobject.NewApplicationStatus(statusStr)
	if err != nil {
		return model.LoanApplication{}, fmt.Errorf("parse status: %w", err)
	}

	return model.ReconstructLoanApplication(
		id, applicantID, amount, riskScore,
		status, externalReference, createdAt, updatedAt,
	), nil
}
