package scoring

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/fairlend/loanapp/internal/domain/model"
	"github.com/fairlend/loanapp/internal/domain/port"
)

// FallbackScore is the conservative default used when the provider cannot be
// reached. It lands in the manual_review band of the decision policy.
const FallbackScore = 50

// FallbackScorer decorates another scorer and recovers network-layer
// failures with FallbackScore. Any other error, including a non-2xx answer
// the provider actually sent, propagates unchanged.
type FallbackScorer struct {
	next   port.RiskScorer
	logger *slog.Logger
}

func NewFallbackScorer(next port.RiskScorer, logger *slog.Logger) *FallbackScorer {
	return &FallbackScorer{next: next, logger: logger}
}

// Score implements port.RiskScorer.
func (s *FallbackScorer) Score(ctx context.Context, applicant model.Applicant, amount decimal.Decimal) (int, error) {
	score, err := s.next.Score(ctx, applicant, amount)
	if err == nil {
		return score, nil
	}
	if !errors.Is(err, port.ErrScoringUnavailable) {
		return 0, err
	}
	s.logger.Warn("scoring provider unreachable, using fallback score",
		"error", err,
		"fallback_score", FallbackScore,
	)
	return FallbackScore, nil
}
