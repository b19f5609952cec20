/*
Package nomina computes compliant monthly timesheets from raw clock-in
("fichaje") and discretionary productivity hours.

PURPOSE:
  Given loose input rows and a date range, the engine redistributes surplus
  productivity hours so that every worked day reaches 7h where possible and
  every week holds at most 6 worked days, with weekly rest on Sunday except
  inside configurable flexible windows. Real clock-in data is never
  fabricated or removed; anything that cannot be resolved legally is
  reported through warnings.

PIPELINE:
  normalize (normalize.go) → allocate per worker (allocate.go, pool.go) →
  aggregate (aggregate.go). Everything is request-scoped and pure: no I/O,
  no shared state, workers processed independently.

USAGE:
  res, err := nomina.Process(nomina.ProcessInput{
      Records:   rows,
      StartDate: "2025-03-01",
      EndDate:   "2025-03-31",
  })

SEE ALSO:
  - allocate.go: the three allocation phases and their invariants
  - pool.go: the take/put interface that keeps hour conservation checkable
*/
package nomina

import (
	"fmt"
	"time"
)

// DefaultTimezone resolves record instants when the caller names none.
const DefaultTimezone = "Europe/Madrid"

// ProcessInput is the engine's single entry contract.
type ProcessInput struct {
	// Records are the raw, loosely-typed input rows.
	Records []map[string]any

	// StartDate and EndDate bound the computed calendar, inclusive. Loose
	// date values; any format accepted for record dates works here too.
	StartDate any
	EndDate   any

	// Timezone resolves record instants to calendar days. Defaults to
	// Europe/Madrid.
	Timezone string

	// Selector optionally restricts processing to one worker.
	Selector *WorkerSelector

	// FlexiblePeriods are the windows where Sunday may be worked. Nil means
	// the default Feb 15 - Jun 15 window; an explicit empty list means no
	// flexible days at all.
	FlexiblePeriods []FlexiblePeriod

	// EnforceSundayRest toggles the Sunday rest rule. Nil means enforced.
	EnforceSundayRest *bool
}

// Process runs the full pipeline and returns one result per worker, in the
// order workers were first encountered in the input.
func Process(in ProcessInput) (*Result, error) {
	tz := in.Timezone
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTimezone, tz)
	}

	if in.StartDate == nil || in.EndDate == nil {
		return nil, ErrMissingDateRange
	}
	startT, err := parseDateValue(in.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: start %v", ErrInvalidDateRange, in.StartDate)
	}
	endT, err := parseDateValue(in.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: end %v", ErrInvalidDateRange, in.EndDate)
	}
	rng := DateRange{Start: DateOf(startT), End: DateOf(endT)}
	if rng.End.Before(rng.Start) {
		return nil, fmt.Errorf("%w: start %s after end %s", ErrInvalidDateRange, rng.Start, rng.End)
	}

	periods := in.FlexiblePeriods
	if periods == nil {
		periods = DefaultFlexiblePeriods()
	}

	enforceSunday := true
	if in.EnforceSundayRest != nil {
		enforceSunday = *in.EnforceSundayRest
	}

	result := &Result{Workers: []WorkerResult{}}
	for _, worker := range normalizeRecords(in.Records, rng, loc, in.Selector) {
		alloc := newAllocator(worker.records, rng, periods, enforceSunday)
		alloc.run()
		result.Workers = append(result.Workers, alloc.result(worker.key))
	}
	return result, nil
}
