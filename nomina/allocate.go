/*
allocate.go - The hour-redistribution core

PURPOSE:
  Per-worker, three ordered phases over a shared day-indexed productivity
  pool:

    1. Top-up: raise genuinely worked days that sit below 7h.
    2. Weekly completion: manufacture full 7h days out of empty ones until
       each week has 6 worked days, pool permitting.
    3. Weekly cap: if a week ended up with more than 6 worked days, free
       exactly one generated day and reclaim its hours.

INVARIANT:
  A day with real clock-in hours (origClockIn > 0) is never zeroed, never
  freed, never treated as a rest day. States that cannot be resolved
  without breaking this are surfaced as warnings, never "fixed".

ORDERING:
  Days and weeks are always visited in ascending date order, so a given
  input produces the same transfers and warnings every time.
*/
package nomina

import (
	"fmt"
	"sort"
)

const maxWorkedDaysPerWeek = 6

// sevenHours is the daily target every worked day should reach.
var sevenHours = HoursOf(7)

// Transfer reasons and day notes, verbatim in the audit output.
const (
	ReasonTopUp        = "Topup <7h"
	ReasonCompleteWeek = "Completar 6 días"

	NoteGeneratedDay = "Día generado para completar 6 días de trabajo"
	NoteWeeklyRest   = "Descanso semanal aplicado (día generado liberado)"
)

// Transfer is one logged movement of hours from the pool into a day.
type Transfer struct {
	To        Date
	Hours     Hours
	FromParts []TransferPart
	Reason    string
}

// dayRecord is the mutable working state for one calendar day.
type dayRecord struct {
	date            Date
	clockIn         Hours // running total, starts as the real clock-in sum
	origClockIn     Hours // immutable snapshot of real input
	rawProductivity Hours
	transferred     Hours // hours moved in from the pool
	notes           []string
}

// generated reports whether the day is worked only because of transferred
// hours: no real clock-in, positive transfer.
func (d *dayRecord) generated() bool {
	return d.origClockIn.Round().IsZero() && d.transferred.Round().IsPositive()
}

// allocator owns one worker's days and pool for a single computation.
type allocator struct {
	rng               DateRange
	periods           []FlexiblePeriod
	enforceSundayRest bool

	order []Date
	days  map[Date]*dayRecord
	pool  *productivityPool

	transfers []Transfer
	warnings  []string
}

// newAllocator builds the full calendar of days in range, folds the
// worker's records into them and seeds the pool.
func newAllocator(records []Record, rng DateRange, periods []FlexiblePeriod, enforceSundayRest bool) *allocator {
	order := rng.Days()
	days := make(map[Date]*dayRecord, len(order))
	for _, d := range order {
		days[d] = &dayRecord{date: d}
	}

	for _, rec := range records {
		day := days[rec.Date]
		if day == nil {
			continue
		}
		if rec.Category == CategoryClockIn {
			day.clockIn = day.clockIn.Add(rec.Hours)
			day.origClockIn = day.origClockIn.Add(rec.Hours)
		} else {
			day.rawProductivity = day.rawProductivity.Add(rec.Hours)
		}
	}

	raw := make(map[Date]Hours, len(order))
	for d, day := range days {
		raw[d] = day.rawProductivity
	}

	return &allocator{
		rng:               rng,
		periods:           periods,
		enforceSundayRest: enforceSundayRest,
		order:             order,
		days:              days,
		pool:              newProductivityPool(order, raw),
	}
}

func (a *allocator) run() {
	a.topUp()
	a.completeWeeks()
	a.enforceWeeklyCap()
}

func (a *allocator) flexible(d Date) bool { return inAnyFlexiblePeriod(d, a.periods) }

// restDay reports whether d must stay untouched as weekly rest: a Sunday,
// with Sunday-rest enforcement on, outside any flexible window.
func (a *allocator) restDay(d Date) bool {
	return a.enforceSundayRest && d.IsSunday() && !a.flexible(d)
}

// weeks returns every Monday-Sunday block overlapping the range, ascending.
func (a *allocator) weeks() []DateRange {
	seen := make(map[Date]bool)
	var ws []DateRange
	for _, d := range a.order {
		w := WeekOf(d)
		if !seen[w.Start] {
			seen[w.Start] = true
			ws = append(ws, w)
		}
	}
	return ws
}

// weekDays returns the week's days clipped to the processed range.
func (a *allocator) weekDays(w DateRange) []Date {
	var days []Date
	for d := w.Start; d.BeforeOrEqual(w.End); d = d.AddDays(1) {
		if _, ok := a.days[d]; ok {
			days = append(days, d)
		}
	}
	return days
}

func anyFlexible(days []Date, periods []FlexiblePeriod) bool {
	for _, d := range days {
		if inAnyFlexiblePeriod(d, periods) {
			return true
		}
	}
	return false
}

// workedDays returns the subset of days with a positive clock-in total,
// Sunday included.
func (a *allocator) workedDays(days []Date) []Date {
	var worked []Date
	for _, d := range days {
		if a.days[d].clockIn.Round().IsPositive() {
			worked = append(worked, d)
		}
	}
	return worked
}

// =============================================================================
// PHASE 1 - TOP-UP
// =============================================================================

// topUp raises days that were genuinely worked but fall short of 7h,
// preferring each day's own productivity before borrowing from other days.
// Days at exactly zero are left alone; creating days is phase 2's job.
func (a *allocator) topUp() {
	for _, d := range a.order {
		if a.restDay(d) {
			continue
		}
		day := a.days[d]
		current := day.clockIn.Round()
		if current.GreaterThanOrEqual(sevenHours) || !current.IsPositive() {
			continue
		}

		need := sevenHours.Sub(current).Round()
		prefer := d
		got, parts, _ := a.pool.take(need, &prefer)
		if !got.IsPositive() {
			continue
		}

		day.clockIn = day.clockIn.Add(got).Round()
		day.transferred = day.transferred.Add(got).Round()
		a.transfers = append(a.transfers, Transfer{
			To:        d,
			Hours:     got,
			FromParts: parts,
			Reason:    ReasonTopUp,
		})
	}
}

// =============================================================================
// PHASE 2 - WEEKLY COMPLETION
// =============================================================================

// completeWeeks manufactures new 7h days out of empty ones until each week
// reaches 6 worked days or the pool runs dry. A day is only converted on a
// full 7h grant; a partial grant is returned to the pool and the week is
// abandoned.
func (a *allocator) completeWeeks() {
	for _, w := range a.weeks() {
		days := a.weekDays(w)
		if len(days) == 0 {
			continue
		}

		flex := anyFlexible(days, a.periods)
		need := maxWorkedDaysPerWeek - len(a.workedDays(days))
		if need <= 0 {
			continue
		}

		for _, d := range days {
			if need <= 0 {
				break
			}
			day := a.days[d]
			if !day.clockIn.Round().IsZero() {
				continue
			}
			if a.enforceSundayRest && d.IsSunday() && !flex {
				continue
			}
			if a.pool.total().LessThan(sevenHours) {
				break
			}

			got, parts, _ := a.pool.take(sevenHours, nil)
			if got.LessThan(sevenHours) {
				for _, p := range parts {
					a.pool.put(p.From, p.Hours)
				}
				break
			}

			day.clockIn = day.clockIn.Add(got).Round()
			day.transferred = day.transferred.Add(got).Round()
			day.notes = append(day.notes, NoteGeneratedDay)
			a.transfers = append(a.transfers, Transfer{
				To:        d,
				Hours:     got,
				FromParts: parts,
				Reason:    ReasonCompleteWeek,
			})
			need--
		}
	}
}

// =============================================================================
// PHASE 3 - WEEKLY CAP (SAFETY NET)
// =============================================================================

// enforceWeeklyCap frees exactly one day in any week that exceeds 6 worked
// days. Only generated days may be freed. Outside a flexible window the
// freed day must be Sunday; inside, the generated day with the least
// transferred hours goes first. When no legal candidate exists the week is
// left over cap and a warning is emitted.
func (a *allocator) enforceWeeklyCap() {
	for _, w := range a.weeks() {
		days := a.weekDays(w)
		if len(days) == 0 {
			continue
		}

		worked := a.workedDays(days)
		if len(worked) <= maxWorkedDaysPerWeek {
			continue
		}

		flex := anyFlexible(days, a.periods)

		var generated []Date
		for _, d := range worked {
			if a.days[d].generated() {
				generated = append(generated, d)
			}
		}

		var candidate *Date
		if !flex {
			// Rest must fall on Sunday, and only a generated Sunday may go.
			for _, d := range days {
				if d.IsSunday() && a.days[d].generated() {
					sunday := d
					candidate = &sunday
					break
				}
			}
		} else if len(generated) > 0 {
			sort.Slice(generated, func(i, j int) bool {
				hi := a.days[generated[i]].transferred.Round()
				hj := a.days[generated[j]].transferred.Round()
				if !hi.Equal(hj) {
					return hi.LessThan(hj)
				}
				return generated[i].Before(generated[j])
			})
			first := generated[0]
			candidate = &first
		}

		if candidate == nil {
			a.warnings = append(a.warnings, fmt.Sprintf(
				"Semana %s con más de 6 días trabajados y sin día generado liberable (no se puede imponer descanso sin tocar fichaje real)",
				w.Start))
			continue
		}

		a.freeDay(*candidate)
	}
}

// freeDay returns a generated day's transferred hours to the pool and
// resets it to rest. Valid only because a generated day's whole total is
// its transferred amount; it carried no real hours.
func (a *allocator) freeDay(d Date) {
	day := a.days[d]
	if aj := day.transferred.Round(); aj.IsPositive() {
		a.pool.put(d, aj)
		day.transferred = ZeroHours()
	}
	day.notes = append(day.notes, NoteWeeklyRest)
	day.clockIn = ZeroHours()
}
