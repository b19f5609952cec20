/*
handlers.go - HTTP handlers for the timesheet engine

PURPOSE:
  Exposes the compliance computation over HTTP. Handlers only translate:
  parse the envelope, apply server-level defaults, call nomina.Process,
  attach rendered HTML and serialize.

ERROR HANDLING:
  - 400: malformed JSON body, missing or invalid date range, bad timezone
  - 500: anything else (should not happen; the engine never fails once the
         range is valid)
  Malformed individual records never produce an error; the engine drops or
  zero-fills them and reports anomalies through the avisos list.
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Gandalltf/prueba-productividad/nomina"
	"github.com/Gandalltf/prueba-productividad/report"
)

// Defaults are server-level fallbacks for request fields the caller omits.
type Defaults struct {
	Timezone          string
	FlexiblePeriods   []nomina.FlexiblePeriod // nil = engine default window
	EnforceSundayRest *bool
}

// Handler holds the dependencies for the HTTP surface.
type Handler struct {
	defaults Defaults
}

// NewHandler creates a handler with the given server defaults.
func NewHandler(defaults Defaults) *Handler {
	return &Handler{defaults: defaults}
}

// ProcessTimesheets computes compliant timesheets for the posted records.
// POST /api/nominas/process
func (h *Handler) ProcessTimesheets(w http.ResponseWriter, r *http.Request) {
	var req ProcessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON", err)
		return
	}

	start, end := req.Start(), req.End()
	if start == nil || end == nil {
		writeError(w, http.StatusBadRequest, "Missing start/end date", nomina.ErrMissingDateRange)
		return
	}

	result, err := nomina.Process(h.buildInput(&req, start, end))
	if err != nil {
		if nomina.IsClientError(err) {
			writeError(w, http.StatusBadRequest, "Invalid request", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Processing error", err)
		return
	}

	resp := ToResponse(result)
	for i, worker := range result.Workers {
		if html, err := report.WorkerHTML(worker); err == nil {
			resp.Workers[i].HTML = html
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// buildInput merges the request with the server defaults.
func (h *Handler) buildInput(req *ProcessRequest, start, end any) nomina.ProcessInput {
	in := req.ToInput()
	in.StartDate, in.EndDate = start, end
	if in.Timezone == "" {
		in.Timezone = h.defaults.Timezone
	}
	if req.FlexiblePeriods == nil {
		in.FlexiblePeriods = h.defaults.FlexiblePeriods
	}
	if in.EnforceSundayRest == nil {
		in.EnforceSundayRest = h.defaults.EnforceSundayRest
	}
	return in
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil && !errors.Is(err, nomina.ErrMissingDateRange) {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
