package usecase

import (
	"github.com/fairlend/loanapp/internal/application/dto"
	"github.com/fairlend/loanapp/internal/domain/model"
	"github.com/fairlend/loanapp/internal/domain/valueobject"
)

func toApplicantResponse(a model.Applicant) dto.ApplicantResponse {
	return dto.ApplicantResponse{
		ID:        a.ID(),
		Name:      a.Name(),
		Email:     a.Email(),
		Phone:     a.Phone(),
		CreatedAt: a.CreatedAt(),
		UpdatedAt: a.UpdatedAt(),
	}
}

func toApplicationResponse(app model.LoanApplication, applicant model.Applicant) dto.LoanApplicationResponse {
	var riskScore *int
	if score, ok := app.RiskScore(); ok {
		riskScore = &score
	}

	return dto.LoanApplicationResponse{
		ID:                app.ID(),
		ApplicantID:       app.ApplicantID(),
		Applicant:         toApplicantResponse(applicant),
		Amount:            app.Amount(),
		RiskScore:         riskScore,
		Status:            app.Status().String(),
		ExternalReference: app.ExternalReference(),
		CreatedAt:         app.CreatedAt(),
		UpdatedAt:         app.UpdatedAt(),
	}
}

func valueStatus(raw string) (valueobject.ApplicationStatus, error) {
	status, err := valueobject.NewApplicationStatus(raw)
	if err != nil {
		return valueobject.ApplicationStatus{}, model.ValidationError{
			Field:  "status",
			Reason: "must be one of pending, approved, rejected, manual_review",
		}
	}
	return status, nil
}
