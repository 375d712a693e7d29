package usecase_test

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fairlend/loanapp/internal/domain/event"
	"github.com/fairlend/loanapp/internal/domain/model"
	"github.com/fairlend/loanapp/internal/domain/port"
	"github.com/fairlend/loanapp/internal/domain/valueobject"
)

func testNow() time.Time {
	return time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
}

// --- Mock implementations ---

type mockApplicantRepository struct {
	byID       map[string]model.Applicant
	createFunc func(ctx context.Context, a model.Applicant) error
}

func newMockApplicantRepository() *mockApplicantRepository {
	return &mockApplicantRepository{byID: make(map[string]model.Applicant)}
}

func (m *mockApplicantRepository) Create(ctx context.Context, a model.Applicant) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, a)
	}
	for _, existing := range m.byID {
		if strings.EqualFold(existing.Email(), a.Email()) {
			return port.ErrDuplicateEmail
		}
	}
	m.byID[a.ID()] = a.ClearEvents()
	return nil
}

func (m *mockApplicantRepository) UpdateContact(_ context.Context, a model.Applicant, _ []string) error {
	if _, ok := m.byID[a.ID()]; !ok {
		return port.ErrApplicantNotFound
	}
	m.byID[a.ID()] = a.ClearEvents()
	return nil
}

func (m *mockApplicantRepository) FindByEmail(_ context.Context, email string) (model.Applicant, error) {
	for _, a := range m.byID {
		if strings.EqualFold(a.Email(), email) {
			return a, nil
		}
	}
	return model.Applicant{}, port.ErrApplicantNotFound
}

func (m *mockApplicantRepository) FindByID(_ context.Context, id string) (model.Applicant, error) {
	a, ok := m.byID[id]
	if !ok {
		return model.Applicant{}, port.ErrApplicantNotFound
	}
	return a, nil
}

func (m *mockApplicantRepository) List(_ context.Context) ([]model.Applicant, error) {
	out := make([]model.Applicant, 0, len(m.byID))
	for _, a := range m.byID {
		out = append(out, a)
	}
	return out, nil
}

type mockApplicationRepository struct {
	byID       map[string]model.LoanApplication
	order      []string
	createFunc func(ctx context.Context, app model.LoanApplication) error
}

func newMockApplicationRepository() *mockApplicationRepository {
	return &mockApplicationRepository{byID: make(map[string]model.LoanApplication)}
}

func (m *mockApplicationRepository) Create(ctx context.Context, app model.LoanApplication) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, app)
	}
	m.byID[app.ID()] = app.ClearEvents()
	m.order = append(m.order, app.ID())
	return nil
}

func (m *mockApplicationRepository) RecordDecision(_ context.Context, app model.LoanApplication) error {
	if _, ok := m.byID[app.ID()]; !ok {
		return port.ErrApplicationNotFound
	}
	m.byID[app.ID()] = app.ClearEvents()
	return nil
}

func (m *mockApplicationRepository) UpdateStatus(_ context.Context, app model.LoanApplication) error {
	if _, ok := m.byID[app.ID()]; !ok {
		return port.ErrApplicationNotFound
	}
	m.byID[app.ID()] = app.ClearEvents()
	return nil
}

func (m *mockApplicationRepository) FindByID(_ context.Context, id string) (model.LoanApplication, error) {
	app, ok := m.byID[id]
	if !ok {
		return model.LoanApplication{}, port.ErrApplicationNotFound
	}
	return app, nil
}

func (m *mockApplicationRepository) List(_ context.Context, filter port.ApplicationFilter) ([]model.LoanApplication, error) {
	out := make([]model.LoanApplication, 0, len(m.order))
	for _, id := range m.order {
		app := m.byID[id]
		if filter.Status != nil && !app.Status().Equal(*filter.Status) {
			continue
		}
		if filter.CreatedFrom != nil && app.CreatedAt().Before(*filter.CreatedFrom) {
			continue
		}
		if filter.CreatedTo != nil && app.CreatedAt().After(*filter.CreatedTo) {
			continue
		}
		out = append(out, app)
	}
	return out, nil
}

func (m *mockApplicationRepository) Summarize(_ context.Context, recentSince time.Time) (port.SummarySnapshot, error) {
	var snap port.SummarySnapshot
	sum := decimal.Zero
	for _, app := range m.byID {
		snap.Total++
		sum = sum.Add(app.Amount())
		switch app.Status() {
		case valueobject.ApplicationStatusApproved:
			snap.Approved++
		case valueobject.ApplicationStatusRejected:
			snap.Rejected++
		case valueobject.ApplicationStatusPending:
			snap.Pending++
		case valueobject.ApplicationStatusManualReview:
			snap.ManualReview++
		}
		if !app.CreatedAt().Before(recentSince) {
			snap.RecentCount++
		}
	}
	if snap.Total > 0 {
		snap.AverageAmount = sum.Div(decimal.NewFromInt(snap.Total))
	}
	return snap, nil
}

// mockUnitOfWork snapshots the in-memory stores before fn and restores them
// when fn fails, mirroring transaction rollback.
type mockUnitOfWork struct {
	applicants   *mockApplicantRepository
	applications *mockApplicationRepository
}

func newMockUnitOfWork() *mockUnitOfWork {
	return &mockUnitOfWork{
		applicants:   newMockApplicantRepository(),
		applications: newMockApplicationRepository(),
	}
}

func (m *mockUnitOfWork) repos() port.Repositories {
	return port.Repositories{Applicants: m.applicants, Applications: m.applications}
}

func (m *mockUnitOfWork) Do(_ context.Context, fn func(repos port.Repositories) error) error {
	applicantSnap := make(map[string]model.Applicant, len(m.applicants.byID))
	for k, v := range m.applicants.byID {
		applicantSnap[k] = v
	}
	applicationSnap := make(map[string]model.LoanApplication, len(m.applications.byID))
	for k, v := range m.applications.byID {
		applicationSnap[k] = v
	}
	orderSnap := append([]string(nil), m.applications.order...)

	if err := fn(m.repos()); err != nil {
		m.applicants.byID = applicantSnap
		m.applications.byID = applicationSnap
		m.applications.order = orderSnap
		return err
	}
	return nil
}

type mockRiskScorer struct {
	scoreFunc func(ctx context.Context, applicant model.Applicant, amount decimal.Decimal) (int, error)
	calls     int
}

func (m *mockRiskScorer) Score(ctx context.Context, applicant model.Applicant, amount decimal.Decimal) (int, error) {
	m.calls++
	if m.scoreFunc != nil {
		return m.scoreFunc(ctx, applicant, amount)
	}
	return 50, nil
}

type mockEventPublisher struct {
	publishFunc     func(ctx context.Context, events ...event.DomainEvent) error
	publishedEvents []event.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...event.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}
