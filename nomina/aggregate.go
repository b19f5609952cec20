/*
aggregate.go - Per-day and per-worker output assembly

PURPOSE:
  Folds an allocator's final state into the structured result: per-day
  summaries with Spanish weekday names, half-up rounded totals, the
  chronological transfer log and the warning list. This is also where the
  Sunday compliance check runs, since it inspects final (post-phase-3)
  clock-in totals.
*/
package nomina

import (
	"fmt"
	"strings"
)

// DaySummary is one finalized calendar day.
type DaySummary struct {
	Date         Date
	Weekday      string // Spanish name
	ClockIn      Hours
	Productivity Hours // remaining pool balance on this day
	Transferred  Hours
	Notes        string
}

// Totals holds a worker's month-level sums.
type Totals struct {
	ClockIn      Hours
	Productivity Hours
}

// WorkerResult is the full computed timesheet for one worker.
type WorkerResult struct {
	Worker    string
	Month     string // Spanish month name, from the range start
	Year      int
	Days      []DaySummary
	Totals    Totals
	Transfers []Transfer
	Warnings  []string
}

// Result is the engine's output: one entry per worker, in input encounter
// order.
type Result struct {
	Workers []WorkerResult
}

// result finalizes the allocator state into a WorkerResult. Emits the
// Sunday warning for any Sunday outside a flexible window that still
// carries clock-in hours: the rest rule could not be enforced there
// without corrupting real data.
func (a *allocator) result(worker string) WorkerResult {
	totalClockIn := ZeroHours()
	totalProd := ZeroHours()
	days := make([]DaySummary, 0, len(a.order))

	for _, d := range a.order {
		day := a.days[d]
		clockIn := day.clockIn.Round()
		prod := a.pool.available(d).Round()

		if a.restDay(d) && clockIn.IsPositive() {
			a.warnings = append(a.warnings, fmt.Sprintf(
				"Domingo %s con fichaje real fuera de periodo flexible (no se puede imponer descanso)", d))
		}

		days = append(days, DaySummary{
			Date:         d,
			Weekday:      SpanishWeekday(d),
			ClockIn:      clockIn,
			Productivity: prod,
			Transferred:  day.transferred.Round(),
			Notes:        strings.Join(day.notes, "; "),
		})
		totalClockIn = totalClockIn.Add(clockIn)
		totalProd = totalProd.Add(prod)
	}

	warnings := a.warnings
	if warnings == nil {
		warnings = []string{}
	}

	return WorkerResult{
		Worker: worker,
		Month:  SpanishMonth(a.rng.Start.Month()),
		Year:   a.rng.Start.Year(),
		Days:   days,
		Totals: Totals{
			ClockIn:      totalClockIn.Round(),
			Productivity: totalProd.Round(),
		},
		Transfers: a.transfers,
		Warnings:  warnings,
	}
}
