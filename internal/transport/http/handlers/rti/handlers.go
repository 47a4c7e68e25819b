package rtihandler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"rti/internal/domain/auth"
	"rti/internal/domain/rti"
	"rti/internal/transport/http/api"
	"rti/internal/transport/http/middleware"
)

// Generator is the slice of the submission service the handler needs.
type Generator interface {
	GenerateFPS(ctx context.Context, input rti.FpsInput) (*rti.FpsResult, error)
	ConfirmationPDF(result *rti.FpsResult) ([]byte, error)
}

type Handler struct {
	Service Generator
	Perms   middleware.PermissionStore
}

func NewHandler(service Generator, perms middleware.PermissionStore) *Handler {
	return &Handler{Service: service, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/rti", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermRTISubmit, h.Perms)).Post("/fps", h.handleGenerateFPS)
		r.With(middleware.RequirePermission(auth.PermRTISubmit, h.Perms)).Post("/fps/confirmation", h.handleConfirmationPDF)
	})
}

type fpsResponse struct {
	XML           string `json:"xml"`
	EmployeeCount int    `json:"employeeCount"`
	TaxYear       string `json:"taxYear"`
	TaxPeriod     int    `json:"taxPeriod"`
	GeneratedAt   string `json:"generatedAt"`
}

func (h *Handler) handleGenerateFPS(w http.ResponseWriter, r *http.Request) {
	result, ok := h.generate(w, r)
	if !ok {
		return
	}
	api.Success(w, fpsResponse{
		XML:           result.XML,
		EmployeeCount: result.EmployeeCount,
		TaxYear:       result.TaxYear,
		TaxPeriod:     result.TaxPeriod,
		GeneratedAt:   result.GeneratedAt.Format(time.RFC3339),
	})
}

func (h *Handler) handleConfirmationPDF(w http.ResponseWriter, r *http.Request) {
	result, ok := h.generate(w, r)
	if !ok {
		return
	}
	pdf, err := h.Service.ConfirmationPDF(result)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="fps-confirmation-p%d.pdf"`, result.TaxPeriod))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

// generate decodes and validates the request, runs the pipeline and maps
// failures onto the boundary statuses. Validation failures never touch the
// data store; data failures are internal errors, not empty successes.
func (h *Handler) generate(w http.ResponseWriter, r *http.Request) (*rti.FpsResult, bool) {
	var input rti.FpsInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid JSON payload")
		return nil, false
	}
	if input.CompanyID == "" {
		api.Fail(w, http.StatusBadRequest, "companyId is required")
		return nil, false
	}
	if input.TaxYear == "" {
		api.Fail(w, http.StatusBadRequest, "taxYear is required")
		return nil, false
	}
	if input.TaxPeriod == 0 {
		api.Fail(w, http.StatusBadRequest, "taxPeriod is required")
		return nil, false
	}

	result, err := h.Service.GenerateFPS(r.Context(), input)
	if err != nil {
		api.Fail(w, statusForError(err), err.Error())
		return nil, false
	}
	return result, true
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, rti.ErrMissingCompanyID),
		errors.Is(err, rti.ErrMalformedTaxYear),
		errors.Is(err, rti.ErrInvalidTaxPeriod):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
