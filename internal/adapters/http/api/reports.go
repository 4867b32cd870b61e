// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/veritas/internal/adapters/repository"
)

// Default page size for GET /reports when no limit is given.
const defaultListLimit = 10

// ReportsHandler handles stored report requests.
type ReportsHandler struct {
	deps     Dependencies
	maxLimit int
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(deps Dependencies, maxLimit int) *ReportsHandler {
	return &ReportsHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// HandleListReports handles GET /reports?limit=N requests, newest first.
func (h *ReportsHandler) HandleListReports(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_reports"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	n := defaultListLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		v, err := strconv.Atoi(limitStr)
		if err != nil || v < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		n = v
	}
	if n > h.maxLimit {
		writeError(w, http.StatusBadRequest, "limit_exceeded", NewKind(op, ErrBadRequest))
		return
	}
	evals, err := h.deps.Recent(r.Context(), n)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, evals)
}

// HandleReportByID handles GET /reports/{id} and
// POST /reports/{id}/validations requests.
func (h *ReportsHandler) HandleReportByID(w http.ResponseWriter, r *http.Request) {
	const op = "api.report_by_id"
	path := strings.TrimPrefix(r.URL.Path, "/reports/")
	if path == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	if id, ok := strings.CutSuffix(path, "/validations"); ok {
		h.handlePostValidations(w, r, id)
		return
	}
	if strings.Contains(path, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	eval, err := h.deps.Report(r.Context(), path)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", WrapKind(op, ErrNotFound, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, eval)
}

// handlePostValidations applies reviewer overrides to a stored report and
// returns the recomputed evaluation.
func (h *ReportsHandler) handlePostValidations(w http.ResponseWriter, r *http.Request, id string) {
	const op = "api.post_validations"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	var req validationsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	eval, err := h.deps.ApplyValidations(r.Context(), id, req.ValidatedErrors)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", WrapKind(op, ErrNotFound, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, eval)
}
