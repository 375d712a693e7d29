package scoring

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"math"
	"math/rand"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fairlend/loanapp/internal/domain/model"
)

var freeMailDomains = map[string]bool{
	"gmail.com":   true,
	"yahoo.com":   true,
	"hotmail.com": true,
}

// MockScorer computes a deterministic score from the applicant and amount.
// Identical email and amount always reproduce the same score, which keeps
// local runs and tests repeatable.
type MockScorer struct{}

func NewMockScorer() *MockScorer { return &MockScorer{} }

// Score implements port.RiskScorer.
func (s *MockScorer) Score(_ context.Context, applicant model.Applicant, amount decimal.Decimal) (int, error) {
	h := sha256.Sum256([]byte(applicant.Email() + amount.String()))
	rng := rand.New(rand.NewSource(int64(binary.BigEndian.Uint64(h[:8]))))

	score := 50.0

	amt, _ := amount.Float64()
	score += math.Min(25, amt/10000*12)

	domain := emailDomain(applicant.Email())
	switch {
	case freeMailDomains[domain]:
		score += 5
	case strings.HasSuffix(domain, ".edu"), strings.HasSuffix(domain, ".gov"), strings.HasSuffix(domain, ".org"):
		score -= 8
	}

	if len(strings.Fields(applicant.Name())) >= 2 {
		score -= 4
	}

	score += float64(rng.Intn(25) - 12)

	return clampScore(int(math.Round(score))), nil
}

func emailDomain(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return ""
	}
	return strings.ToLower(email[at+1:])
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
