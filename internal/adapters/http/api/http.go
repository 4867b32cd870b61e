// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/veritas/internal/adapters/repository"
	"github.com/okian/veritas/internal/domain/evaluate"
	"github.com/okian/veritas/internal/domain/record"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Evaluate scores a prediction against its gold document and stores
	// the resulting report.
	Evaluate(ctx context.Context, gold, pred record.Record, validations []evaluate.Validation) (Evaluation, error)

	// ApplyValidations recomputes a stored report with reviewer overrides.
	ApplyValidations(ctx context.Context, id string, validations []evaluate.Validation) (Evaluation, error)

	// Read operations expose stored reports.
	Report(ctx context.Context, id string) (Evaluation, error)
	Recent(ctx context.Context, n int) ([]Evaluation, error)
}

// Evaluation mirrors the read shape returned by report queries.
type Evaluation = repository.Evaluation

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	evaluationsHandler *EvaluationsHandler
	reportsHandler     *ReportsHandler
	dashboardHandler   *dashboardHandler
}

// NewServer creates a new API server with all handlers. maxLimit caps the
// page size of report listings.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLimit int) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		evaluationsHandler: NewEvaluationsHandler(deps),
		reportsHandler:     NewReportsHandler(deps, maxLimit),
		dashboardHandler:   newDashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/evaluations", MetricsMiddleware(s.evaluationsHandler.HandlePostEvaluation, "evaluations"))
	mux.HandleFunc("/reports", MetricsMiddleware(s.reportsHandler.HandleListReports, "reports"))
	mux.HandleFunc("/reports/", MetricsMiddleware(s.reportsHandler.HandleReportByID, "report"))
}

// evaluationRequest mirrors the OpenAPI schema for POST /evaluations.
type evaluationRequest struct {
	Gold        record.Record         `json:"gold"`
	Prediction  record.Record         `json:"prediction"`
	Validations []evaluate.Validation `json:"validations,omitempty"`
}

func (e evaluationRequest) validate() error {
	switch {
	case e.Gold == nil:
		return errors.New("missing gold document")
	case e.Prediction == nil:
		return errors.New("missing prediction document")
	}
	for _, v := range e.Validations {
		if v.Field == "" {
			return errors.New("validation entry missing field")
		}
	}
	return nil
}

// validationsRequest mirrors the reviewer export consumed by
// POST /reports/{id}/validations.
type validationsRequest struct {
	ValidatedErrors []evaluate.Validation `json:"validated_errors"`
}

func (v validationsRequest) validate() error {
	if len(v.ValidatedErrors) == 0 {
		return errors.New("missing validated_errors")
	}
	for _, e := range v.ValidatedErrors {
		if e.Field == "" {
			return errors.New("validation entry missing field")
		}
	}
	return nil
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
