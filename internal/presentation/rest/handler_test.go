package rest_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairlend/loanapp/internal/application/usecase"
	"github.com/fairlend/loanapp/internal/domain/event"
	"github.com/fairlend/loanapp/internal/domain/model"
	"github.com/fairlend/loanapp/internal/domain/port"
	"github.com/fairlend/loanapp/internal/domain/service"
	"github.com/fairlend/loanapp/internal/presentation/rest"
)

// memStore is a tiny in-memory persistence backend wired under the real
// usecases, so handler tests cover the full request path.
type memStore struct {
	applicants   map[string]model.Applicant
	applications map[string]model.LoanApplication
}

func newMemStore() *memStore {
	return &memStore{
		applicants:   make(map[string]model.Applicant),
		applications: make(map[string]model.LoanApplication),
	}
}

func (s *memStore) Create(_ context.Context, a model.Applicant) error {
	for _, existing := range s.applicants {
		if existing.Email() == a.Email() {
			return port.ErrDuplicateEmail
		}
	}
	s.applicants[a.ID()] = a.ClearEvents()
	return nil
}

func (s *memStore) UpdateContact(_ context.Context, a model.Applicant, _ []string) error {
	s.applicants[a.ID()] = a.ClearEvents()
	return nil
}

func (s *memStore) FindByEmail(_ context.Context, email string) (model.Applicant, error) {
	for _, a := range s.applicants {
		if a.Email() == email {
			return a, nil
		}
	}
	return model.Applicant{}, port.ErrApplicantNotFound
}

func (s *memStore) FindByID(_ context.Context, id string) (model.Applicant, error) {
	a, ok := s.applicants[id]
	if !ok {
		return model.Applicant{}, port.ErrApplicantNotFound
	}
	return a, nil
}

func (s *memStore) List(_ context.Context) ([]model.Applicant, error) {
	out := make([]model.Applicant, 0, len(s.applicants))
	for _, a := range s.applicants {
		out = append(out, a)
	}
	return out, nil
}

type memApplications struct{ store *memStore }

func (m *memApplications) Create(_ context.Context, app model.LoanApplication) error {
	m.store.applications[app.ID()] = app.ClearEvents()
	return nil
}

func (m *memApplications) RecordDecision(_ context.Context, app model.LoanApplication) error {
	m.store.applications[app.ID()] = app.ClearEvents()
	return nil
}

func (m *memApplications) UpdateStatus(_ context.Context, app model.LoanApplication) error {
	m.store.applications[app.ID()] = app.ClearEvents()
	return nil
}

func (m *memApplications) FindByID(_ context.Context, id string) (model.LoanApplication, error) {
	app, ok := m.store.applications[id]
	if !ok {
		return model.LoanApplication{}, port.ErrApplicationNotFound
	}
	return app, nil
}

func (m *memApplications) List(_ context.Context, filter port.ApplicationFilter) ([]model.LoanApplication, error) {
	out := make([]model.LoanApplication, 0, len(m.store.applications))
	for _, app := range m.store.applications {
		if filter.Status != nil && !app.Status().Equal(*filter.Status) {
			continue
		}
		out = append(out, app)
	}
	return out, nil
}

func (m *memApplications) Summarize(_ context.Context, recentSince time.Time) (port.SummarySnapshot, error) {
	var snap port.SummarySnapshot
	sum := decimal.Zero
	for _, app := range m.store.applications {
		snap.Total++
		sum = sum.Add(app.Amount())
		switch app.Status().String() {
		case "approved":
			snap.Approved++
		case "rejected":
			snap.Rejected++
		case "pending":
			snap.Pending++
		case "manual_review":
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

type memUnitOfWork struct{ repos port.Repositories }

func (u *memUnitOfWork) Do(_ context.Context, fn func(repos port.Repositories) error) error {
	return fn(u.repos)
}

type fixedScorer struct{ score int }

func (s fixedScorer) Score(context.Context, model.Applicant, decimal.Decimal) (int, error) {
	return s.score, nil
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, ...event.DomainEvent) error { return nil }

func newTestServer(t *testing.T, score int) (*httptest.Server, *memStore) {
	t.Helper()
	store := newMemStore()
	repos := port.Repositories{
		Applicants:   store,
		Applications: &memApplications{store: store},
	}
	uow := &memUnitOfWork{repos: repos}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	handler := rest.NewHandler(
		usecase.NewSubmitApplicationUseCase(uow, fixedScorer{score: score}, service.NewDecisionPolicy(), nopPublisher{}, logger),
		usecase.NewUpdateStatusUseCase(uow, nopPublisher{}, logger),
		usecase.NewGetApplicationUseCase(repos),
		usecase.NewListApplicationsUseCase(repos),
		usecase.NewSummarizeApplicationsUseCase(repos),
		usecase.NewGetApplicantUseCase(repos),
		usecase.NewListApplicantsUseCase(repos),
		logger,
	)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, store
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestHandler_SubmitApplication(t *testing.T) {
	t.Run("creates and decides an application", func(t *testing.T) {
		srv, store := newTestServer(t, 20)

		resp, err := http.Post(srv.URL+"/api/v1/applications", "application/json", strings.NewReader(`{
			"applicant": {"name": "Ada Lovelace", "email": "ada@example.com"},
			"amount": 5000
		}`))
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var body struct {
			ID        string `json:"id"`
			Status    string `json:"status"`
			RiskScore *int   `json:"risk_score"`
			Applicant struct {
				Email string `json:"email"`
			} `json:"applicant_details"`
		}
		decodeBody(t, resp, &body)
		assert.Equal(t, "approved", body.Status)
		require.NotNil(t, body.RiskScore)
		assert.Equal(t, 20, *body.RiskScore)
		assert.Equal(t, "ada@example.com", body.Applicant.Email)
		assert.Len(t, store.applications, 1)
	})

	t.Run("returns 400 on a missing email", func(t *testing.T) {
		srv, store := newTestServer(t, 20)

		resp, err := http.Post(srv.URL+"/api/v1/applications", "application/json", strings.NewReader(`{
			"applicant": {"name": "Nameless"},
			"amount": 5000
		}`))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		resp.Body.Close()
		assert.Empty(t, store.applications)
	})

	t.Run("returns 400 on malformed JSON", func(t *testing.T) {
		srv, _ := newTestServer(t, 20)

		resp, err := http.Post(srv.URL+"/api/v1/applications", "application/json", strings.NewReader(`{not json`))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		resp.Body.Close()
	})
}

func TestHandler_UpdateStatus(t *testing.T) {
	submit := func(t *testing.T, srv *httptest.Server) string {
		resp, err := http.Post(srv.URL+"/api/v1/applications", "application/json", strings.NewReader(`{
			"applicant": {"name": "Grace Hopper", "email": "grace@example.com"},
			"amount": 8000
		}`))
		require.NoError(t, err)
		var body struct {
			ID string `json:"id"`
		}
		decodeBody(t, resp, &body)
		return body.ID
	}

	patch := func(t *testing.T, srv *httptest.Server, id, status string) *http.Response {
		req, err := http.NewRequest(http.MethodPatch,
			srv.URL+"/api/v1/applications/"+id+"/status",
			strings.NewReader(`{"status": "`+status+`"}`))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		return resp
	}

	t.Run("settles a manual_review application", func(t *testing.T) {
		srv, _ := newTestServer(t, 50) // lands in manual_review
		id := submit(t, srv)

		resp := patch(t, srv, id, "approved")
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Status string `json:"status"`
		}
		decodeBody(t, resp, &body)
		assert.Equal(t, "approved", body.Status)
	})

	t.Run("returns 400 when the application is already decided", func(t *testing.T) {
		srv, _ := newTestServer(t, 20) // auto-approved
		id := submit(t, srv)

		resp := patch(t, srv, id, "rejected")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("returns 404 for an unknown application", func(t *testing.T) {
		srv, _ := newTestServer(t, 50)

		resp := patch(t, srv, "missing-id", "approved")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		resp.Body.Close()
	})
}

func TestHandler_GetAndList(t *testing.T) {
	srv, _ := newTestServer(t, 80) // auto-rejected

	resp, err := http.Post(srv.URL+"/api/v1/applications", "application/json", strings.NewReader(`{
		"applicant": {"name": "Alan Turing", "email": "alan@example.com"},
		"amount": 90000
	}`))
	require.NoError(t, err)
	var created struct {
		ID string `json:"id"`
	}
	decodeBody(t, resp, &created)

	t.Run("fetches a single application", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/v1/applications/" + created.ID)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("returns 404 for an unknown application", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/v1/applications/missing-id")
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("filters the listing by status", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/v1/applications?status=rejected")
		require.NoError(t, err)
		var body struct {
			Count int `json:"count"`
		}
		decodeBody(t, resp, &body)
		assert.Equal(t, 1, body.Count)

		resp, err = http.Get(srv.URL + "/api/v1/applications?status=approved")
		require.NoError(t, err)
		decodeBody(t, resp, &body)
		assert.Zero(t, body.Count)
	})

	t.Run("rejects a bad status filter", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/v1/applications?status=funded")
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("rejects a bad date filter", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/v1/applications?start_date=yesterday")
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		resp.Body.Close()
	})
}

func TestHandler_Summary(t *testing.T) {
	srv, _ := newTestServer(t, 20)

	t.Run("returns zeros before any submissions", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/v1/applications/summary")
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Total        int64   `json:"total"`
			ApprovalRate float64 `json:"approval_rate"`
			Timestamp    string  `json:"timestamp"`
		}
		decodeBody(t, resp, &body)
		assert.Zero(t, body.Total)
		assert.Zero(t, body.ApprovalRate)
		assert.NotEmpty(t, body.Timestamp)
	})

	t.Run("counts submissions", func(t *testing.T) {
		_, err := http.Post(srv.URL+"/api/v1/applications", "application/json", strings.NewReader(`{
			"applicant": {"name": "Ada Lovelace", "email": "ada@example.com"},
			"amount": 5000
		}`))
		require.NoError(t, err)

		resp, err := http.Get(srv.URL + "/api/v1/applications/summary")
		require.NoError(t, err)

		var body struct {
			Total        int64   `json:"total"`
			Approved     int64   `json:"approved"`
			ApprovalRate float64 `json:"approval_rate"`
		}
		decodeBody(t, resp, &body)
		assert.Equal(t, int64(1), body.Total)
		assert.Equal(t, int64(1), body.Approved)
		assert.InDelta(t, 100.0, body.ApprovalRate, 0.001)
	})
}
