package usecase

import (
	"context"
	"fmt"

	"github.com/fairlend/loanapp/internal/application/dto"
	"github.com/fairlend/loanapp/internal/domain/port"
)

type GetApplicantUseCase struct {
	repos port.Repositories
}

func NewGetApplicantUseCase(repos port.Repositories) *GetApplicantUseCase {
	return &GetApplicantUseCase{repos: repos}
}

func (uc *GetApplicantUseCase) Execute(ctx context.Context, req dto.GetApplicantRequest) (dto.ApplicantResponse, error) {
	applicant, err := uc.repos.Applicants.FindByID(ctx, req.ApplicantID)
	if err != nil {
		return dto.ApplicantResponse{}, fmt.Errorf("find applicant: %w", err)
	}
	return toApplicantResponse(applicant), nil
}

type ListApplicantsUseCase struct {
	repos port.Repositories
}

func NewListApplicantsUseCase(repos port.Repositories) *ListApplicantsUseCase {
	return &ListApplicantsUseCase{repos: repos}
}

func (uc *ListApplicantsUseCase) Execute(ctx context.Context) ([]dto.ApplicantResponse, error) {
	applicants, err := uc.repos.Applicants.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list applicants: %w", err)
	}

	responses := make([]dto.ApplicantResponse, 0, len(applicants))
	for _, applicant := range applicants {
		responses = append(responses, toApplicantResponse(applicant))
	}
	return responses, nil
}
