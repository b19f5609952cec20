/*
dto.go - Request envelope and response shapes

PURPOSE:
  Decouples the wire contract from the engine types. The request envelope
  is deliberately forgiving: integrations send the same payload under
  several field spellings ("items" vs "records", "start_date" vs
  "range.start"), and all of that aliasing is resolved here so the core
  never sees it. Response fields keep the Spanish names consumers already
  parse.
*/
package api

import (
	"github.com/Gandalltf/prueba-productividad/nomina"
)

// =============================================================================
// REQUEST ENVELOPE
// =============================================================================

// ProcessRequest is the JSON body of POST /api/nominas/process. Loose on
// purpose; see Rows/Start/End for alias resolution.
type ProcessRequest struct {
	Items   []map[string]any `json:"items"`
	Records []map[string]any `json:"records"`

	StartDate any `json:"start_date"`
	EndDate   any `json:"end_date"`
	Range     *struct {
		Start any `json:"start"`
		End   any `json:"end"`
	} `json:"range"`

	Timezone          string `json:"timezone"`
	WorkerFilter      any    `json:"worker_filter"`
	FlexiblePeriods   any    `json:"descanso_flexible_periods"`
	EnforceSundayRest *bool  `json:"enforce_sunday_rest"`
}

// Rows returns the record list under whichever alias the caller used.
func (r *ProcessRequest) Rows() []map[string]any {
	if len(r.Items) > 0 {
		return r.Items
	}
	return r.Records
}

// Start returns start_date, falling back to range.start.
func (r *ProcessRequest) Start() any {
	if !isEmptyValue(r.StartDate) {
		return r.StartDate
	}
	if r.Range != nil && !isEmptyValue(r.Range.Start) {
		return r.Range.Start
	}
	return nil
}

// End returns end_date, falling back to range.end.
func (r *ProcessRequest) End() any {
	if !isEmptyValue(r.EndDate) {
		return r.EndDate
	}
	if r.Range != nil && !isEmptyValue(r.Range.End) {
		return r.Range.End
	}
	return nil
}

func isEmptyValue(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}

// ToInput converts the envelope into an engine input, leaving omitted
// fields to the engine's own defaults.
func (r *ProcessRequest) ToInput() nomina.ProcessInput {
	var periods []nomina.FlexiblePeriod
	if r.FlexiblePeriods != nil {
		periods = nomina.ParseFlexiblePeriods(r.FlexiblePeriods)
	}
	return nomina.ProcessInput{
		Records:           r.Rows(),
		StartDate:         r.Start(),
		EndDate:           r.End(),
		Timezone:          r.Timezone,
		Selector:          nomina.ParseWorkerSelector(r.WorkerFilter),
		FlexiblePeriods:   periods,
		EnforceSundayRest: r.EnforceSundayRest,
	}
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// ProcessResponse is the top-level response body.
type ProcessResponse struct {
	Workers []WorkerResultDTO `json:"workers"`
}

// WorkerResultDTO is one worker's computed timesheet.
type WorkerResultDTO struct {
	Trabajador     string        `json:"trabajador"`
	Mes            string        `json:"mes"`
	Anio           int           `json:"anio"`
	Days           []DayDTO      `json:"days"`
	Totales        TotalsDTO     `json:"totales"`
	Transferencias []TransferDTO `json:"transferencias"`
	Avisos         []string      `json:"avisos"`
	HTML           string        `json:"html,omitempty"`
}

// DayDTO is one finalized day row.
type DayDTO struct {
	Fecha         string  `json:"fecha"`
	Dia           string  `json:"dia"`
	Fichaje       float64 `json:"fichaje"`
	Productividad float64 `json:"productividad"`
	Ajuste        float64 `json:"ajuste_desde_productividad"`
	Notas         string  `json:"notas"`
}

// TotalsDTO holds the month-level sums.
type TotalsDTO struct {
	Fichaje       float64 `json:"fichaje"`
	Productividad float64 `json:"productividad"`
}

// TransferDTO is one audit-log entry.
type TransferDTO struct {
	To        string            `json:"to"`
	Hours     float64           `json:"hours"`
	FromParts []TransferPartDTO `json:"from_parts"`
	Reason    string            `json:"reason"`
}

// TransferPartDTO is one source-day slice of a transfer.
type TransferPartDTO struct {
	From  string  `json:"from"`
	Hours float64 `json:"hours"`
}

// ErrorResponse is the standard error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

// ToResponse converts an engine result into the wire shape, HTML fragments
// not yet attached.
func ToResponse(result *nomina.Result) ProcessResponse {
	resp := ProcessResponse{Workers: make([]WorkerResultDTO, len(result.Workers))}
	for i, w := range result.Workers {
		resp.Workers[i] = toWorkerResultDTO(w)
	}
	return resp
}

func toWorkerResultDTO(w nomina.WorkerResult) WorkerResultDTO {
	days := make([]DayDTO, len(w.Days))
	for i, d := range w.Days {
		days[i] = DayDTO{
			Fecha:         d.Date.String(),
			Dia:           d.Weekday,
			Fichaje:       d.ClockIn.Float64(),
			Productividad: d.Productivity.Float64(),
			Ajuste:        d.Transferred.Float64(),
			Notas:         d.Notes,
		}
	}

	transfers := make([]TransferDTO, len(w.Transfers))
	for i, t := range w.Transfers {
		parts := make([]TransferPartDTO, len(t.FromParts))
		for j, p := range t.FromParts {
			parts[j] = TransferPartDTO{From: p.From.String(), Hours: p.Hours.Float64()}
		}
		transfers[i] = TransferDTO{
			To:        t.To.String(),
			Hours:     t.Hours.Float64(),
			FromParts: parts,
			Reason:    t.Reason,
		}
	}

	return WorkerResultDTO{
		Trabajador: w.Worker,
		Mes:        w.Month,
		Anio:       w.Year,
		Days:       days,
		Totales: TotalsDTO{
			Fichaje:       w.Totals.ClockIn.Float64(),
			Productividad: w.Totals.Productivity.Float64(),
		},
		Transferencias: transfers,
		Avisos:         w.Warnings,
	}
}
