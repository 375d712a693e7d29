package scoring

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fairlend/loanapp/internal/domain/model"
	"github.com/fairlend/loanapp/internal/domain/port"
)

const defaultScoringTimeout = 10 * time.Second

type scoreRequest struct {
	Applicant  applicantPayload `json:"applicant"`
	LoanAmount float64          `json:"loan_amount"`
	RequestID  string           `json:"request_id"`
}

type applicantPayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type scoreResponse struct {
	Score int `json:"score"`
}

// LiveScorer calls the external risk scoring provider over HTTPS. TLS
// verification is never disabled and every call carries a bounded timeout.
type LiveScorer struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewLiveScorer(cfg Config) *LiveScorer {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultScoringTimeout
	}
	return &LiveScorer{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: timeout},
	}
}

// Score implements port.RiskScorer. Network-layer failures wrap
// port.ErrScoringUnavailable so the fallback strategy can recover them;
// a response the provider did send, 2xx or not, propagates as-is.
func (s *LiveScorer) Score(ctx context.Context, applicant model.Applicant, amount decimal.Decimal) (int, error) {
	amt, _ := amount.Float64()
	payload := scoreRequest{
		Applicant: applicantPayload{
			Name:  applicant.Name(),
			Email: applicant.Email(),
			Phone: applicant.Phone(),
		},
		LoanAmount: amt,
		RequestID:  requestID(applicant.Email(), amount),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("encode scoring request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v1/score", bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("build scoring request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("User-Agent", "loanapp/1.0")

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", port.ErrScoringUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, fmt.Errorf("scoring provider returned status %d", resp.StatusCode)
	}

	var parsed scoreResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&parsed); err != nil {
		return 0, fmt.Errorf("decode scoring response: %w", err)
	}
	if parsed.Score < 0 || parsed.Score > 100 {
		return 0, fmt.Errorf("scoring provider returned score %d outside [0, 100]", parsed.Score)
	}
	return parsed.Score, nil
}

// requestID derives a stable identifier from the scoring inputs so retried
// calls for the same submission are correlatable on the provider side.
func requestID(email string, amount decimal.Decimal) string {
	h := sha256.Sum256([]byte(email + "|" + amount.String()))
	return hex.EncodeToString(h[:16])
}
