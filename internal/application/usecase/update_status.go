package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fairlend/loanapp/internal/application/dto"
	"github.com/fairlend/loanapp/internal/domain/model"
	"github.com/fairlend/loanapp/internal/domain/port"
)

// UpdateStatusUseCase settles a manual_review application with an explicit
// reviewer decision. Any other current status rejects the update.
type UpdateStatusUseCase struct {
	uow       port.UnitOfWork
	publisher port.EventPublisher
	logger    *slog.Logger
}

// NewUpdateStatusUseCase wires dependencies.
func NewUpdateStatusUseCase(uow port.UnitOfWork, publisher port.EventPublisher, logger *slog.Logger) *UpdateStatusUseCase {
	return &UpdateStatusUseCase{uow: uow, publisher: publisher, logger: logger}
}

// Execute loads the application, applies the guarded transition, and persists
// only the status field.
func (uc *UpdateStatusUseCase) Execute(
	ctx context.Context,
	req dto.UpdateStatusRequest,
) (dto.LoanApplicationResponse, error) {
	next, err := valueStatus(req.Status)
	if err != nil {
		return dto.LoanApplicationResponse{}, err
	}

	now := time.Now().UTC()

	var (
		application model.LoanApplication
		applicant   model.Applicant
	)

	err = uc.uow.Do(ctx, func(repos port.Repositories) error {
		current, err := repos.Applications.FindByID(ctx, req.ApplicationID)
		if err != nil {
			return err
		}

		resolved, err := current.ResolveReview(next, now)
		if err != nil {
			return err
		}

		if err := repos.Applications.UpdateStatus(ctx, resolved); err != nil {
			return fmt.Errorf("update status: %w", err)
		}

		applicant, err = repos.Applicants.FindByID(ctx, resolved.ApplicantID())
		if err != nil {
			return fmt.Errorf("find applicant: %w", err)
		}

		application = resolved
		return nil
	})
	if err != nil {
		return dto.LoanApplicationResponse{}, err
	}

	if err := uc.publisher.Publish(ctx, application.DomainEvents()...); err != nil {
		uc.logger.Error("publish domain events", "error", err)
	}

	return toApplicationResponse(application, applicant), nil
}
