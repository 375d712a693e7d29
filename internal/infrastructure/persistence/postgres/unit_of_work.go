package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fairlend/loanapp/internal/domain/port"
	pgutil "github.com/fairlend/loanapp/pkg/postgres"
)

// UnitOfWork implements port.UnitOfWork by running fn against repositories
// bound to one pgx transaction.
type UnitOfWork struct {
	pool *pgxpool.Pool
}

func NewUnitOfWork(pool *pgxpool.Pool) *UnitOfWork {
	return &UnitOfWork{pool: pool}
}

// Do runs fn inside a transaction. Any error from fn rolls the transaction
// back and propagates.
func (u *UnitOfWork) Do(ctx context.Context, fn func(repos port.Repositories) error) error {
	return pgutil.WithTransaction(ctx, u.pool, func(tx pgx.Tx) error {
		return fn(NewRepositories(tx))
	})
}

// NewRepositories bundles the repositories over a shared querier, either a
// pool for standalone reads or a transaction for atomic writes.
func NewRepositories(q pgutil.Querier) port.Repositories {
	return port.Repositories{
		Applicants:   NewApplicantRepo(q),
		Applications: NewApplicationRepo(q),
	}
}
