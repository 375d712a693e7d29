package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/fairlend/loanapp/internal/application/dto"
	"github.com/fairlend/loanapp/internal/domain/port"
)

const recentWindow = 7 * 24 * time.Hour

type SummarizeApplicationsUseCase struct {
	repos port.Repositories
	now   func() time.Time
}

func NewSummarizeApplicationsUseCase(repos port.Repositories) *SummarizeApplicationsUseCase {
	return &SummarizeApplicationsUseCase{repos: repos, now: time.Now}
}

// WithClock overrides the time source anchoring the recent-activity window.
func (uc *SummarizeApplicationsUseCase) WithClock(now func() time.Time) *SummarizeApplicationsUseCase {
	uc.now = now
	return uc
}

func (uc *SummarizeApplicationsUseCase) Execute(ctx context.Context) (dto.SummaryResponse, error) {
	now := uc.now().UTC()

	snapshot, err := uc.repos.Applications.Summarize(ctx, now.Add(-recentWindow))
	if err != nil {
		return dto.SummaryResponse{}, fmt.Errorf("summarize applications: %w", err)
	}

	var approvalRate float64
	if snapshot.Total > 0 {
		approvalRate = math.Round(float64(snapshot.Approved)/float64(snapshot.Total)*10000) / 100
	}

	average, _ := snapshot.AverageAmount.Float64()

	return dto.SummaryResponse{
		Total:         snapshot.Total,
		Approved:      snapshot.Approved,
		Rejected:      snapshot.Rejected,
		Pending:       snapshot.Pending,
		ManualReview:  snapshot.ManualReview,
		ApprovalRate:  approvalRate,
		AverageAmount: average,
		RecentCount:   snapshot.RecentCount,
		Timestamp:     now.Format(time.RFC3339),
	}, nil
}
