package model_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairlend/loanapp/internal/domain/model"
	"github.com/fairlend/loanapp/internal/domain/valueobject"
)

func newPendingApplication(t *testing.T, now time.Time) model.LoanApplication {
	t.Helper()
	app, err := model.NewLoanApplication("applicant-1", decimal.NewFromInt(5000), "", now)
	require.NoError(t, err)
	return app
}

func TestNewLoanApplication(t *testing.T) {
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

	app, err := model.NewLoanApplication("applicant-1", decimal.NewFromInt(5000), "ref-42", now)
	require.NoError(t, err)
	assert.NotEmpty(t, app.ID())
	assert.Equal(t, "applicant-1", app.ApplicantID())
	assert.True(t, app.Amount().Equal(decimal.NewFromInt(5000)))
	assert.True(t, app.Status().Equal(valueobject.ApplicationStatusPending))
	assert.Equal(t, "ref-42", app.ExternalReference())
	_, scored := app.RiskScore()
	assert.False(t, scored, "new application carries no risk score")
	assert.Len(t, app.DomainEvents(), 1, "should have ApplicationSubmitted event")
}

func TestNewLoanApplication_Validation(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name        string
		applicantID string
		amount      decimal.Decimal
		wantField   string
	}{
		{name: "missing applicant", applicantID: "", amount: decimal.NewFromInt(500), wantField: "applicant"},
		{name: "zero amount", applicantID: "applicant-1", amount: decimal.Zero, wantField: "amount"},
		{name: "amount below minimum", applicantID: "applicant-1", amount: decimal.NewFromInt(50), wantField: "amount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := model.NewLoanApplication(tt.applicantID, tt.amount, "", now)
			var vErr model.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.wantField, vErr.Field)
		})
	}

	t.Run("exact minimum amount is accepted", func(t *testing.T) {
		_, err := model.NewLoanApplication("applicant-1", decimal.NewFromInt(100), "", now)
		assert.NoError(t, err)
	})
}

func TestLoanApplication_ApplyDecision(t *testing.T) {
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

	t.Run("records score and status once", func(t *testing.T) {
		app := newPendingApplication(t, now)

		decided, err := app.ApplyDecision(42, valueobject.ApplicationStatusManualReview, now)
		require.NoError(t, err)

		score, scored := decided.RiskScore()
		assert.True(t, scored)
		assert.Equal(t, 42, score)
		assert.True(t, decided.Status().Equal(valueobject.ApplicationStatusManualReview))
		assert.Len(t, decided.DomainEvents(), 2, "submitted + flagged events")

		// A decided application cannot be decided again.
		_, err = decided.ApplyDecision(10, valueobject.ApplicationStatusApproved, now)
		assert.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)
	})

	t.Run("rejects pending as a decision target", func(t *testing.T) {
		app := newPendingApplication(t, now)
		_, err := app.ApplyDecision(42, valueobject.ApplicationStatusPending, now)
		assert.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)
	})

	t.Run("emits the event matching the decision", func(t *testing.T) {
		tests := []struct {
			status    valueobject.ApplicationStatus
			eventType string
		}{
			{valueobject.ApplicationStatusApproved, "loanapp.application.approved"},
			{valueobject.ApplicationStatusRejected, "loanapp.application.rejected"},
			{valueobject.ApplicationStatusManualReview, "loanapp.application.flagged_for_review"},
		}
		for _, tt := range tests {
			app := newPendingApplication(t, now).ClearEvents()
			decided, err := app.ApplyDecision(50, tt.status, now)
			require.NoError(t, err)
			require.Len(t, decided.DomainEvents(), 1)
			assert.Equal(t, tt.eventType, decided.DomainEvents()[0].EventType())
		}
	})
}

func TestLoanApplication_ResolveReview(t *testing.T) {
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

	reviewed := func(t *testing.T) model.LoanApplication {
		t.Helper()
		app := newPendingApplication(t, now)
		app, err := app.ApplyDecision(50, valueobject.ApplicationStatusManualReview, now)
		require.NoError(t, err)
		return app.ClearEvents()
	}

	t.Run("manual_review can be approved", func(t *testing.T) {
		app := reviewed(t)
		resolved, err := app.ResolveReview(valueobject.ApplicationStatusApproved, now)
		require.NoError(t, err)
		assert.True(t, resolved.Status().Equal(valueobject.ApplicationStatusApproved))

		// Only the status changed.
		score, _ := resolved.RiskScore()
		assert.Equal(t, 50, score)
		assert.True(t, resolved.Amount().Equal(app.Amount()))
		assert.Equal(t, app.ApplicantID(), resolved.ApplicantID())
		require.Len(t, resolved.DomainEvents(), 1)
		assert.Equal(t, "loanapp.application.status_updated", resolved.DomainEvents()[0].EventType())
	})

	t.Run("manual_review can be rejected", func(t *testing.T) {
		app := reviewed(t)
		resolved, err := app.ResolveReview(valueobject.ApplicationStatusRejected, now)
		require.NoError(t, err)
		assert.True(t, resolved.Status().Equal(valueobject.ApplicationStatusRejected))
	})

	t.Run("already decided statuses reject the update", func(t *testing.T) {
		app := newPendingApplication(t, now)
		approved, err := app.ApplyDecision(10, valueobject.ApplicationStatusApproved, now)
		require.NoError(t, err)

		_, err = approved.ResolveReview(valueobject.ApplicationStatusRejected, now)
		assert.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)
	})

	t.Run("pending rejects the update", func(t *testing.T) {
		app := newPendingApplication(t, now)
		_, err := app.ResolveReview(valueobject.ApplicationStatusApproved, now)
		assert.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)
	})

	t.Run("target must be approved or rejected", func(t *testing.T) {
		app := reviewed(t)
		_, err := app.ResolveReview(valueobject.ApplicationStatusManualReview, now)
		assert.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)

		_, err = app.ResolveReview(valueobject.ApplicationStatusPending, now)
		assert.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)
	})
}

func TestNewApplicationStatus(t *testing.T) {
	for _, raw := range []string{"pending", "approved", "rejected", "manual_review"} {
		status, err := valueobject.NewApplicationStatus(raw)
		require.NoError(t, err)
		assert.Equal(t, raw, status.String())
	}

	_, err := valueobject.NewApplicationStatus("disbursed")
	assert.Error(t, err)
}
