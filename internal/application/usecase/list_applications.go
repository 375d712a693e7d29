package usecase

import (
	"context"
	"fmt"

	"github.com/fairlend/loanapp/internal/application/dto"
	"github.com/fairlend/loanapp/internal/domain/model"
	"github.com/fairlend/loanapp/internal/domain/port"
)

type ListApplicationsUseCase struct {
	repos port.Repositories
}

func NewListApplicationsUseCase(repos port.Repositories) *ListApplicationsUseCase {
	return &ListApplicationsUseCase{repos: repos}
}

func (uc *ListApplicationsUseCase) Execute(ctx context.Context, req dto.ListApplicationsRequest) ([]dto.LoanApplicationResponse, error) {
	var filter port.ApplicationFilter
	if req.Status != "" {
		status, err := valueStatus(req.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = &status
	}
	filter.CreatedFrom = req.StartDate
	filter.CreatedTo = req.EndDate

	applications, err := uc.repos.Applications.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}

	applicants := make(map[string]model.Applicant)
	responses := make([]dto.LoanApplicationResponse, 0, len(applications))
	for _, application := range applications {
		applicant, ok := applicants[application.ApplicantID()]
		if !ok {
			applicant, err = uc.repos.Applicants.FindByID(ctx, application.ApplicantID())
			if err != nil {
				return nil, fmt.Errorf("find applicant %s: %w", application.ApplicantID(), err)
			}
			applicants[application.ApplicantID()] = applicant
		}
		responses = append(responses, toApplicationResponse(application, applicant))
	}
	return responses, nil
}
