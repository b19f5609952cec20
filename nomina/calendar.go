package nomina

import (
	"time"
)

// =============================================================================
// DATE - Calendar day (the engine's unit of time)
// =============================================================================

// Date is a calendar day. The zero time-of-day and UTC location are fixed by
// the constructors so values are safely comparable and usable as map keys.
type Date struct {
	Time time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates an instant to its calendar day in the instant's location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func (d Date) Before(o Date) bool        { return d.Time.Before(o.Time) }
func (d Date) After(o Date) bool         { return d.Time.After(o.Time) }
func (d Date) Equal(o Date) bool         { return d.Time.Equal(o.Time) }
func (d Date) BeforeOrEqual(o Date) bool { return !d.After(o) }
func (d Date) AfterOrEqual(o Date) bool  { return !d.Before(o) }

func (d Date) AddDays(n int) Date { return DateOf(d.Time.AddDate(0, 0, n)) }

func (d Date) Year() int             { return d.Time.Year() }
func (d Date) Month() time.Month     { return d.Time.Month() }
func (d Date) Day() int              { return d.Time.Day() }
func (d Date) Weekday() time.Weekday { return d.Time.Weekday() }
func (d Date) IsSunday() bool        { return d.Weekday() == time.Sunday }

// String returns the ISO form used in all machine-facing output.
func (d Date) String() string { return d.Time.Format("2006-01-02") }

// =============================================================================
// RANGES AND WEEKS
// =============================================================================

// DateRange is an inclusive [Start, End] span of calendar days.
type DateRange struct {
	Start Date
	End   Date
}

func (r DateRange) Contains(d Date) bool {
	return d.AfterOrEqual(r.Start) && d.BeforeOrEqual(r.End)
}

// Days returns every day in the range in ascending order.
func (r DateRange) Days() []Date {
	var days []Date
	for d := r.Start; d.BeforeOrEqual(r.End); d = d.AddDays(1) {
		days = append(days, d)
	}
	return days
}

// WeekOf returns the Monday-to-Sunday block containing d.
func WeekOf(d Date) DateRange {
	back := (int(d.Weekday()) + 6) % 7 // days since Monday
	start := d.AddDays(-back)
	return DateRange{Start: start, End: start.AddDays(6)}
}

// =============================================================================
// SPANISH CALENDAR NAMES
// =============================================================================
// Presentation strings live here, keyed by integer index; the allocator
// itself never looks at them.

var spanishWeekdays = map[time.Weekday]string{
	time.Monday:    "Lunes",
	time.Tuesday:   "Martes",
	time.Wednesday: "Miércoles",
	time.Thursday:  "Jueves",
	time.Friday:    "Viernes",
	time.Saturday:  "Sábado",
	time.Sunday:    "Domingo",
}

var spanishMonths = [13]string{
	"", "Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// SpanishWeekday returns the Spanish name of d's day of week.
func SpanishWeekday(d Date) string { return spanishWeekdays[d.Weekday()] }

// SpanishMonth returns the Spanish name of m.
func SpanishMonth(m time.Month) string { return spanishMonths[int(m)] }

// =============================================================================
// FLEXIBLE PERIODS - Year-agnostic recurring windows
// =============================================================================

// MonthDay is a day of the year without a year (e.g. Feb 15).
type MonthDay struct {
	Month time.Month
	Day   int
}

func (md MonthDay) beforeOrEqual(o MonthDay) bool {
	if md.Month != o.Month {
		return md.Month < o.Month
	}
	return md.Day <= o.Day
}

// FlexiblePeriod is a recurring yearly window during which Sunday may be
// worked and used as the freed rest day. If Start > End the window wraps
// across the year boundary (e.g. Nov 15 - Feb 15).
type FlexiblePeriod struct {
	Start MonthDay
	End   MonthDay
}

// Contains reports whether d falls inside the window, ignoring the year.
func (p FlexiblePeriod) Contains(d Date) bool {
	md := MonthDay{Month: d.Month(), Day: d.Day()}
	if p.Start.beforeOrEqual(p.End) {
		return p.Start.beforeOrEqual(md) && md.beforeOrEqual(p.End)
	}
	// Wrap-around window: inside if on either side of the year boundary.
	return p.Start.beforeOrEqual(md) || md.beforeOrEqual(p.End)
}

// DefaultFlexiblePeriods is the window applied when the caller supplies none:
// Feb 15 through Jun 15.
func DefaultFlexiblePeriods() []FlexiblePeriod {
	return []FlexiblePeriod{{
		Start: MonthDay{Month: time.February, Day: 15},
		End:   MonthDay{Month: time.June, Day: 15},
	}}
}

func inAnyFlexiblePeriod(d Date, periods []FlexiblePeriod) bool {
	for _, p := range periods {
		if p.Contains(d) {
			return true
		}
	}
	return false
}

// ParseFlexiblePeriods converts the loosely-shaped caller value into a
// period list. A single {start, end} object is accepted as a one-element
// list. Any invalid overall shape falls back to the default window;
// individual entries that fail to parse are skipped.
func ParseFlexiblePeriods(raw any) []FlexiblePeriod {
	switch v := raw.(type) {
	case nil:
		return DefaultFlexiblePeriods()
	case map[string]any:
		return parsePeriodEntries([]any{v})
	case []any:
		if len(v) == 0 {
			return DefaultFlexiblePeriods()
		}
		return parsePeriodEntries(v)
	case []FlexiblePeriod:
		if len(v) == 0 {
			return DefaultFlexiblePeriods()
		}
		return v
	default:
		return DefaultFlexiblePeriods()
	}
}

func parsePeriodEntries(entries []any) []FlexiblePeriod {
	// Non-nil even when every entry is invalid: a caller who supplied a list
	// gets that list's (possibly empty) windows, not the default.
	periods := []FlexiblePeriod{}
	for _, e := range entries {
		m, ok := e.(map[string]any)
		if !ok {
			continue
		}
		start, err1 := parseDateValue(m["start"])
		end, err2 := parseDateValue(m["end"])
		if err1 != nil || err2 != nil {
			continue
		}
		periods = append(periods, FlexiblePeriod{
			Start: MonthDay{Month: start.Month(), Day: start.Day()},
			End:   MonthDay{Month: end.Month(), Day: end.Day()},
		})
	}
	return periods
}
