package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/fairlend/loanapp/internal/domain/model"
	"github.com/fairlend/loanapp/internal/domain/port"
	pgutil "github.com/fairlend/loanapp/pkg/postgres"
)

// ApplicantRepo implements port.ApplicantRepository over PostgreSQL. It works
// against either a pool or an open transaction via the Querier abstraction.
type ApplicantRepo struct {
	q pgutil.Querier
}

// NewApplicantRepo creates a repository bound to the given querier.
func NewApplicantRepo(q pgutil.Querier) *ApplicantRepo {
	return &ApplicantRepo{q: q}
}

// Create inserts a new applicant. A concurrent insert that already claimed
// the email reports port.ErrDuplicateEmail without aborting the surrounding
// transaction.
func (r *ApplicantRepo) Create(ctx context.Context, a model.Applicant) error {
	query := `
		INSERT INTO applicants (id, name, email, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (email) DO NOTHING
	`
	tag, err := r.q.Exec(ctx, query,
		a.ID(), a.Name(), a.Email(), a.Phone(), a.CreatedAt(), a.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("insert applicant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return port.ErrDuplicateEmail
	}
	return nil
}

// UpdateContact persists only the named contact fields plus updated_at.
func (r *ApplicantRepo) UpdateContact(ctx context.Context, a model.Applicant, fields []string) error {
	set := "updated_at = $2"
	args := []any{a.ID(), a.UpdatedAt()}
	for _, field := range fields {
		switch field {
		case "name":
			args = append(args, a.Name())
		case "phone":
			args = append(args, a.Phone())
		default:
			return fmt.Errorf("update applicant: unknown field %q", field)
		}
		set += fmt.Sprintf(", %s = $%d", field, len(args))
	}

	query := fmt.Sprintf("UPDATE applicants SET %s WHERE id = $1", set)
	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update applicant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return port.ErrApplicantNotFound
	}
	return nil
}

// FindByEmail retrieves an applicant by its unique email.
func (r *ApplicantRepo) FindByEmail(ctx context.Context, email string) (model.Applicant, error) {
	query := `
		SELECT id, name, email, phone, created_at, updated_at
		FROM applicants
		WHERE email = $1
	`
	return r.scanOne(ctx, query, email)
}

// FindByID retrieves an applicant by primary key.
func (r *ApplicantRepo) FindByID(ctx context.Context, id string) (model.Applicant, error) {
	query := `
		SELECT id, name, email, phone, created_at, updated_at
		FROM applicants
		WHERE id = $1
	`
	return r.scanOne(ctx, query, id)
}

// List returns all applicants, newest first.
func (r *ApplicantRepo) List(ctx context.Context) ([]model.Applicant, error) {
	query := `
		SELECT id, name, email, phone, created_at, updated_at
		FROM applicants
		ORDER BY created_at DESC
	`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query applicants: %w", err)
	}
	defer rows.Close()

	var result []model.Applicant
	for rows.Next() {
		applicant, err := scanApplicant(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, applicant)
	}
	return result, rows.Err()
}

func (r *ApplicantRepo) scanOne(ctx context.Context, query string, args ...any) (model.Applicant, error) {
	applicant, err := scanApplicant(r.q.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Applicant{}, port.ErrApplicantNotFound
	}
	return applicant, err
}

func scanApplicant(s scannable) (model.Applicant, error) {
	var (
		id, name, email, phone string
		createdAt, updatedAt   time.Time
	)
	if err := s.Scan(&id, &name, &email, &phone, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Applicant{}, err
		}
		return model.Applicant{}, fmt.Errorf("scan applicant: %w", err)
	}
	return model.ReconstructApplicant(id, name, email, phone, createdAt, updatedAt), nil
}
