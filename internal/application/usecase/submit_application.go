package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fairlend/loanapp/internal/application/dto"
	"github.com/fairlend/loanapp/internal/domain/event"
	"github.com/fairlend/loanapp/internal/domain/model"
	"github.com/fairlend/loanapp/internal/domain/port"
	"github.com/fairlend/loanapp/internal/domain/service"
)

// SubmitApplicationUseCase orchestrates new loan application submission:
// applicant upsert, risk scoring, and the automatic decision, all inside one
// transaction.
type SubmitApplicationUseCase struct {
	uow       port.UnitOfWork
	scorer    port.RiskScorer
	policy    *service.DecisionPolicy
	publisher port.EventPublisher
	logger    *slog.Logger
}

// NewSubmitApplicationUseCase wires dependencies.
func NewSubmitApplicationUseCase(
	uow port.UnitOfWork,
	scorer port.RiskScorer,
	policy *service.DecisionPolicy,
	publisher port.EventPublisher,
	logger *slog.Logger,
) *SubmitApplicationUseCase {
	return &SubmitApplicationUseCase{
		uow:       uow,
		scorer:    scorer,
		policy:    policy,
		publisher: publisher,
		logger:    logger,
	}
}

// Execute validates the request, upserts the applicant, creates the
// application, fetches a risk score, applies the decision policy, and
// persists the result atomically. A submission never returns a pending
// application: it either comes back decided or the whole operation fails.
func (uc *SubmitApplicationUseCase) Execute(
	ctx context.Context,
	req dto.SubmitApplicationRequest,
) (dto.LoanApplicationResponse, error) {
	// Validate before touching storage.
	if req.Applicant.Email == "" {
		return dto.LoanApplicationResponse{}, model.ValidationError{Field: "email", Reason: "is required"}
	}
	if req.Amount.IsZero() {
		return dto.LoanApplicationResponse{}, model.ValidationError{Field: "amount", Reason: "is required"}
	}
	if req.Amount.LessThan(model.MinLoanAmount) {
		return dto.LoanApplicationResponse{}, model.ValidationError{Field: "amount", Reason: "must be at least " + model.MinLoanAmount.String()}
	}

	now := time.Now().UTC()

	var (
		applicant   model.Applicant
		application model.LoanApplication
	)

	err := uc.uow.Do(ctx, func(repos port.Repositories) error {
		var err error

		// 1. Upsert applicant by email.
		applicant, err = uc.upsertApplicant(ctx, repos.Applicants, req.Applicant, now)
		if err != nil {
			return err
		}

		// 2. Create the application in transient pending status.
		application, err = model.NewLoanApplication(applicant.ID(), req.Amount, req.ExternalReference, now)
		if err != nil {
			return err
		}
		if err := repos.Applications.Create(ctx, application); err != nil {
			return fmt.Errorf("create application: %w", err)
		}

		// 3. Fetch the risk score. A scorer failure aborts the whole
		// submission; transport failures were already absorbed by the
		// fallback strategy before reaching this point.
		score, err := uc.scorer.Score(ctx, applicant, req.Amount)
		if err != nil {
			return fmt.Errorf("fetch risk score: %w", err)
		}

		// 4. Decide and persist.
		application, err = application.ApplyDecision(score, uc.policy.Decide(score), now)
		if err != nil {
			return fmt.Errorf("apply decision: %w", err)
		}
		if err := repos.Applications.RecordDecision(ctx, application); err != nil {
			return fmt.Errorf("record decision: %w", err)
		}
		return nil
	})
	if err != nil {
		return dto.LoanApplicationResponse{}, err
	}

	// The decision is durable; publish failures must not undo it.
	evts := append(applicant.DomainEvents(), application.DomainEvents()...)
	uc.publish(ctx, evts)

	return toApplicationResponse(application, applicant), nil
}

// upsertApplicant finds the applicant by email and updates changed contact
// fields, or creates a new one. An insert that loses the race on the unique
// email constraint falls back to re-reading and updating.
func (uc *SubmitApplicationUseCase) upsertApplicant(
	ctx context.Context,
	applicants port.ApplicantRepository,
	input dto.ApplicantInput,
	now time.Time,
) (model.Applicant, error) {
	existing, err := applicants.FindByEmail(ctx, input.Email)
	switch {
	case err == nil:
		return uc.updateContact(ctx, applicants, existing, input, now)

	case errors.Is(err, port.ErrApplicantNotFound):
		created, err := model.NewApplicant(input.Name, input.Email, input.Phone, now)
		if err != nil {
			return model.Applicant{}, err
		}
		if err := applicants.Create(ctx, created); err != nil {
			if errors.Is(err, port.ErrDuplicateEmail) {
				// A concurrent submission won the insert. Re-read theirs
				// and apply our contact data on top.
				raced, ferr := applicants.FindByEmail(ctx, input.Email)
				if ferr != nil {
					return model.Applicant{}, fmt.Errorf("re-read applicant after conflict: %w", ferr)
				}
				return uc.updateContact(ctx, applicants, raced, input, now)
			}
			return model.Applicant{}, fmt.Errorf("create applicant: %w", err)
		}
		return created, nil

	default:
		return model.Applicant{}, fmt.Errorf("find applicant: %w", err)
	}
}

func (uc *SubmitApplicationUseCase) updateContact(
	ctx context.Context,
	applicants port.ApplicantRepository,
	existing model.Applicant,
	input dto.ApplicantInput,
	now time.Time,
) (model.Applicant, error) {
	updated, changed := existing.UpdateContact(input.Name, input.Phone, now)
	if len(changed) == 0 {
		return existing, nil
	}
	if err := applicants.UpdateContact(ctx, updated, changed); err != nil {
		return model.Applicant{}, fmt.Errorf("update applicant: %w", err)
	}
	return updated, nil
}

func (uc *SubmitApplicationUseCase) publish(ctx context.Context, evts []event.DomainEvent) {
	if len(evts) == 0 {
		return
	}
	if err := uc.publisher.Publish(ctx, evts...); err != nil {
		uc.logger.Error("publish domain events", "error", err, "count", len(evts))
	}
}
