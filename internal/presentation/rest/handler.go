// Package rest exposes the loan application API over HTTP/JSON.
package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/fairlend/loanapp/internal/application/dto"
	"github.com/fairlend/loanapp/internal/application/usecase"
	"github.com/fairlend/loanapp/internal/domain/model"
	"github.com/fairlend/loanapp/internal/domain/port"
	"github.com/fairlend/loanapp/internal/domain/valueobject"
)

// Handler routes the REST API to the application usecases.
type Handler struct {
	submit           *usecase.SubmitApplicationUseCase
	updateStatus     *usecase.UpdateStatusUseCase
	getApplication   *usecase.GetApplicationUseCase
	listApplications *usecase.ListApplicationsUseCase
	summarize        *usecase.SummarizeApplicationsUseCase
	getApplicant     *usecase.GetApplicantUseCase
	listApplicants   *usecase.ListApplicantsUseCase
	logger           *slog.Logger
}

func NewHandler(
	submit *usecase.SubmitApplicationUseCase,
	updateStatus *usecase.UpdateStatusUseCase,
	getApplication *usecase.GetApplicationUseCase,
	listApplications *usecase.ListApplicationsUseCase,
	summarize *usecase.SummarizeApplicationsUseCase,
	getApplicant *usecase.GetApplicantUseCase,
	listApplicants *usecase.ListApplicantsUseCase,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		submit:           submit,
		updateStatus:     updateStatus,
		getApplication:   getApplication,
		listApplications: listApplications,
		summarize:        summarize,
		getApplicant:     getApplicant,
		listApplicants:   listApplicants,
		logger:           logger,
	}
}

// RegisterRoutes attaches the API routes to the given mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/applications", h.handleSubmit)
	mux.HandleFunc("GET /api/v1/applications", h.handleList)
	mux.HandleFunc("GET /api/v1/applications/summary", h.handleSummary)
	mux.HandleFunc("GET /api/v1/applications/{id}", h.handleGet)
	mux.HandleFunc("PATCH /api/v1/applications/{id}/status", h.handleUpdateStatus)
	mux.HandleFunc("GET /api/v1/applicants", h.handleListApplicants)
	mux.HandleFunc("GET /api/v1/applicants/{id}", h.handleGetApplicant)
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req dto.SubmitApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.submit.Execute(r.Context(), req)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.updateStatus.Execute(r.Context(), dto.UpdateStatusRequest{
		ApplicationID: r.PathValue("id"),
		Status:        body.Status,
	})
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	resp, err := h.getApplication.Execute(r.Context(), dto.GetApplicationRequest{
		ApplicationID: r.PathValue("id"),
	})
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	req := dto.ListApplicationsRequest{
		Status: r.URL.Query().Get("status"),
	}

	var err error
	if req.StartDate, err = parseDateParam(r, "start_date"); err != nil {
		writeError(w, http.StatusBadRequest, "start_date must be an RFC 3339 timestamp or YYYY-MM-DD date")
		return
	}
	if req.EndDate, err = parseDateParam(r, "end_date"); err != nil {
		writeError(w, http.StatusBadRequest, "end_date must be an RFC 3339 timestamp or YYYY-MM-DD date")
		return
	}

	resp, err := h.listApplications.Execute(r.Context(), req)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"applications": resp, "count": len(resp)})
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	resp, err := h.summarize.Execute(r.Context())
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetApplicant(w http.ResponseWriter, r *http.Request) {
	resp, err := h.getApplicant.Execute(r.Context(), dto.GetApplicantRequest{
		ApplicantID: r.PathValue("id"),
	})
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleListApplicants(w http.ResponseWriter, r *http.Request) {
	resp, err := h.listApplicants.Execute(r.Context())
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"applicants": resp, "count": len(resp)})
}

// writeDomainError maps domain failures onto HTTP statuses. Anything not in
// the taxonomy stays a generic 500 with the detail kept in logs only.
func (h *Handler) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var verr model.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, port.ErrApplicationNotFound), errors.Is(err, port.ErrApplicantNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, valueobject.ErrInvalidStatusTransition):
		writeError(w, http.StatusBadRequest, "only manual_review applications can be updated, and only to approved or rejected")
	default:
		h.logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func parseDateParam(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
