package usecase

import (
	"context"
	"fmt"

	"github.com/fairlend/loanapp/internal/application/dto"
	"github.com/fairlend/loanapp/internal/domain/port"
)

type GetApplicationUseCase struct {
	repos port.Repositories
}

func NewGetApplicationUseCase(repos port.Repositories) *GetApplicationUseCase {
	return &GetApplicationUseCase{repos: repos}
}

func (uc *GetApplicationUseCase) Execute(ctx context.Context, req dto.GetApplicationRequest) (dto.LoanApplicationResponse, error) {
	application, err := uc.repos.Applications.FindByID(ctx, req.ApplicationID)
	if err != nil {
		return dto.LoanApplicationResponse{}, fmt.Errorf("find application: %w", err)
	}

	applicant, err := uc.repos.Applicants.FindByID(ctx, application.ApplicantID())
	if err != nil {
		return dto.LoanApplicationResponse{}, fmt.Errorf("find applicant: %w", err)
	}

	return toApplicationResponse(application, applicant), nil
}
