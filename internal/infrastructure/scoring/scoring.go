// Package scoring provides the risk scorer adapters: a deterministic mock
// for development, a live HTTP client for the external provider, and a
// fallback decorator that absorbs provider outages.
package scoring

import (
	"log/slog"
	"time"

	"github.com/fairlend/loanapp/internal/domain/port"
)

// Config selects and parameterizes the scoring strategy.
type Config struct {
	// UseLiveAPI switches from the deterministic mock to the external provider.
	UseLiveAPI bool
	// BaseURL is the scoring provider endpoint, required in live mode.
	BaseURL string
	// APIKey is the bearer token for the provider, required in live mode.
	APIKey string
	// Timeout bounds each provider call.
	Timeout time.Duration
}

// New builds the configured scorer. Live mode is always wrapped in the
// fallback decorator so provider outages degrade to a conservative score
// instead of failing submissions.
func New(cfg Config, logger *slog.Logger) port.RiskScorer {
	if cfg.UseLiveAPI {
		return NewFallbackScorer(NewLiveScorer(cfg), logger)
	}
	return NewMockScorer()
}
