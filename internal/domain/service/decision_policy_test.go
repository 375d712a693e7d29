package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fairlend/loanapp/internal/domain/service"
	"github.com/fairlend/loanapp/internal/domain/valueobject"
)

func TestDecisionPolicy_Decide(t *testing.T) {
	policy := service.NewDecisionPolicy()

	tests := []struct {
		name  string
		score int
		want  valueobject.ApplicationStatus
	}{
		{name: "zero score approves", score: 0, want: valueobject.ApplicationStatusApproved},
		{name: "just below approval bound approves", score: 29, want: valueobject.ApplicationStatusApproved},
		{name: "approval bound goes to review", score: 30, want: valueobject.ApplicationStatusManualReview},
		{name: "middle of band goes to review", score: 50, want: valueobject.ApplicationStatusManualReview},
		{name: "rejection bound goes to review", score: 70, want: valueobject.ApplicationStatusManualReview},
		{name: "just above rejection bound rejects", score: 71, want: valueobject.ApplicationStatusRejected},
		{name: "maximum score rejects", score: 100, want: valueobject.ApplicationStatusRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := policy.Decide(tt.score)
			assert.True(t, got.Equal(tt.want), "Decide(%d) = %s, want %s", tt.score, got, tt.want)
		})
	}
}

func TestDecisionPolicy_IsDeterministic(t *testing.T) {
	policy := service.NewDecisionPolicy()

	for score := 0; score <= 100; score++ {
		first := policy.Decide(score)
		second := policy.Decide(score)
		assert.True(t, first.Equal(second), "Decide(%d) not stable", score)
		assert.True(t, first.IsDecided(), "Decide(%d) returned a non-decided status", score)
	}
}
