package grpc

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/fairlend/loanapp/internal/application/dto"
	"github.com/fairlend/loanapp/internal/application/usecase"
	"github.com/fairlend/loanapp/internal/domain/model"
	"github.com/fairlend/loanapp/internal/domain/port"
	"github.com/fairlend/loanapp/internal/domain/valueobject"
)

// LoanHandler implements LoanServiceServer on top of the application usecases.
type LoanHandler struct {
	UnimplementedLoanServiceServer

	submit           *usecase.SubmitApplicationUseCase
	updateStatus     *usecase.UpdateStatusUseCase
	getApplication   *usecase.GetApplicationUseCase
	listApplications *usecase.ListApplicationsUseCase
	summarize        *usecase.SummarizeApplicationsUseCase
}

// NewLoanHandler creates a new handler with all use-case dependencies.
func NewLoanHandler(
	submit *usecase.SubmitApplicationUseCase,
	updateStatus *usecase.UpdateStatusUseCase,
	getApplication *usecase.GetApplicationUseCase,
	listApplications *usecase.ListApplicationsUseCase,
	summarize *usecase.SummarizeApplicationsUseCase,
) *LoanHandler {
	return &LoanHandler{
		submit:           submit,
		updateStatus:     updateStatus,
		getApplication:   getApplication,
		listApplications: listApplications,
		summarize:        summarize,
	}
}

// SubmitApplication handles a new loan application submission.
func (h *LoanHandler) SubmitApplication(ctx context.Context, req *SubmitApplicationRequest) (*SubmitApplicationResponse, error) {
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid amount: %v", err)
	}

	resp, err := h.submit.Execute(ctx, dto.SubmitApplicationRequest{
		Applicant: dto.ApplicantInput{
			Name:  req.ApplicantName,
			Email: req.ApplicantEmail,
			Phone: req.ApplicantPhone,
		},
		Amount:            amount,
		ExternalReference: req.ExternalReference,
	})
	if err != nil {
		return nil, toStatusError(err)
	}
	return &SubmitApplicationResponse{Application: toApplicationMessage(resp)}, nil
}

// GetApplication retrieves a loan application by ID.
func (h *LoanHandler) GetApplication(ctx context.Context, req *GetApplicationRequest) (*GetApplicationResponse, error) {
	resp, err := h.getApplication.Execute(ctx, dto.GetApplicationRequest{
		ApplicationID: req.ApplicationId,
	})
	if err != nil {
		return nil, toStatusError(err)
	}
	return &GetApplicationResponse{Application: toApplicationMessage(resp)}, nil
}

// UpdateApplicationStatus settles a manual_review application.
func (h *LoanHandler) UpdateApplicationStatus(ctx context.Context, req *UpdateApplicationStatusRequest) (*UpdateApplicationStatusResponse, error) {
	resp, err := h.updateStatus.Execute(ctx, dto.UpdateStatusRequest{
		ApplicationID: req.ApplicationId,
		Status:        req.Status,
	})
	if err != nil {
		return nil, toStatusError(err)
	}
	return &UpdateApplicationStatusResponse{Application: toApplicationMessage(resp)}, nil
}

// ListApplications returns applications matching the optional filters.
func (h *LoanHandler) ListApplications(ctx context.Context, req *ListApplicationsRequest) (*ListApplicationsResponse, error) {
	filter := dto.ListApplicationsRequest{Status: req.Status}

	if req.StartDate != "" {
		start, err := time.Parse(time.RFC3339, req.StartDate)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid start_date: %v", err)
		}
		filter.StartDate = &start
	}
	if req.EndDate != "" {
		end, err := time.Parse(time.RFC3339, req.EndDate)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid end_date: %v", err)
		}
		filter.EndDate = &end
	}

	resp, err := h.listApplications.Execute(ctx, filter)
	if err != nil {
		return nil, toStatusError(err)
	}

	messages := make([]*LoanApplicationMessage, 0, len(resp))
	for _, app := range resp {
		messages = append(messages, toApplicationMessage(app))
	}
	return &ListApplicationsResponse{Applications: messages, Count: int32(len(messages))}, nil
}

// GetSummary returns the on-demand aggregate over all applications.
func (h *LoanHandler) GetSummary(ctx context.Context, _ *GetSummaryRequest) (*GetSummaryResponse, error) {
	resp, err := h.summarize.Execute(ctx)
	if err != nil {
		return nil, toStatusError(err)
	}
	return &GetSummaryResponse{
		Total:         resp.Total,
		Approved:      resp.Approved,
		Rejected:      resp.Rejected,
		Pending:       resp.Pending,
		ManualReview:  resp.ManualReview,
		ApprovalRate:  resp.ApprovalRate,
		AverageAmount: resp.AverageAmount,
		RecentCount:   resp.RecentCount,
		Timestamp:     resp.Timestamp,
	}, nil
}

func toApplicationMessage(resp dto.LoanApplicationResponse) *LoanApplicationMessage {
	var riskScore *int32
	if resp.RiskScore != nil {
		score := int32(*resp.RiskScore)
		riskScore = &score
	}
	return &LoanApplicationMessage{
		Id:          resp.ID,
		ApplicantId: resp.ApplicantID,
		Applicant: &ApplicantMessage{
			Id:        resp.Applicant.ID,
			Name:      resp.Applicant.Name,
			Email:     resp.Applicant.Email,
			Phone:     resp.Applicant.Phone,
			CreatedAt: resp.Applicant.CreatedAt.Format(time.RFC3339),
			UpdatedAt: resp.Applicant.UpdatedAt.Format(time.RFC3339),
		},
		Amount:            resp.Amount.String(),
		RiskScore:         riskScore,
		Status:            resp.Status,
		ExternalReference: resp.ExternalReference,
		CreatedAt:         resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         resp.UpdatedAt.Format(time.RFC3339),
	}
}

// toStatusError maps domain failures onto gRPC status codes. Unknown
// failures surface as opaque internal errors.
func toStatusError(err error) error {
	var verr model.ValidationError
	switch {
	case errors.As(err, &verr):
		return status.Error(codes.InvalidArgument, verr.Error())
	case errors.Is(err, port.ErrApplicationNotFound), errors.Is(err, port.ErrApplicantNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, valueobject.ErrInvalidStatusTransition):
		return status.Error(codes.FailedPrecondition, "only manual_review applications can be updated, and only to approved or rejected")
	default:
		return status.Error(codes.Internal, "internal error")
	}
}
