package nomina

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// processWeek runs the engine over the first week of September 2025, which
// sits outside the default flexible window.
func processWeek(t *testing.T, rows []map[string]any) WorkerResult {
	t.Helper()
	res, err := Process(ProcessInput{
		Records:   rows,
		StartDate: "2025-09-01",
		EndDate:   "2025-09-07",
	})
	require.NoError(t, err)
	require.Len(t, res.Workers, 1)
	return res.Workers[0]
}

func dayByDate(t *testing.T, w WorkerResult, date string) DaySummary {
	t.Helper()
	for _, d := range w.Days {
		if d.Date.String() == date {
			return d
		}
	}
	t.Fatalf("day %s not in result", date)
	return DaySummary{}
}

// assertConservation checks that remaining pool plus transferred hours
// equals the raw productivity that went in.
func assertConservation(t *testing.T, w WorkerResult, initialProductivity float64) {
	t.Helper()
	transferred := ZeroHours()
	for _, d := range w.Days {
		transferred = transferred.Add(d.Transferred)
	}
	total := w.Totals.Productivity.Add(transferred).Round()
	assert.Equal(t, initialProductivity, total.Float64(),
		"conservation: pool %v + transferred %v != initial %v",
		w.Totals.Productivity, transferred, initialProductivity)
}

func TestProcess_InvalidInput(t *testing.T) {
	t.Run("missing dates", func(t *testing.T) {
		_, err := Process(ProcessInput{StartDate: "2025-09-01"})
		assert.ErrorIs(t, err, ErrMissingDateRange)
	})

	t.Run("unparseable date", func(t *testing.T) {
		_, err := Process(ProcessInput{StartDate: "mañana", EndDate: "2025-09-07"})
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})

	t.Run("unknown timezone", func(t *testing.T) {
		_, err := Process(ProcessInput{StartDate: "2025-09-01", EndDate: "2025-09-07", Timezone: "Mars/Olympus"})
		assert.ErrorIs(t, err, ErrUnknownTimezone)
	})
}

func TestProcess_TopUpFromOwnDay(t *testing.T) {
	// GIVEN: Monday with 5h real clock-in and 3h productivity on the same day
	// WHEN: processing that week
	// THEN: Monday is topped up to 7h using 2 of its own 3 productivity hours
	w := processWeek(t, []map[string]any{
		row("Ana", "FICHAJE", 5, "2025-09-01"),
		row("Ana", "PRODUCTIVIDAD", 3, "2025-09-01"),
	})

	monday := dayByDate(t, w, "2025-09-01")
	assert.Equal(t, 7.0, monday.ClockIn.Float64())
	assert.Equal(t, 1.0, monday.Productivity.Float64())
	assert.Equal(t, 2.0, monday.Transferred.Float64())

	require.Len(t, w.Transfers, 1)
	assert.Equal(t, ReasonTopUp, w.Transfers[0].Reason)
	require.Len(t, w.Transfers[0].FromParts, 1)
	assert.Equal(t, "2025-09-01", w.Transfers[0].FromParts[0].From.String())
	assert.Equal(t, 2.0, w.Transfers[0].FromParts[0].Hours.Float64())

	assert.Equal(t, 7.0, w.Totals.ClockIn.Float64())
	assert.Equal(t, 1.0, w.Totals.Productivity.Float64())
	assert.Equal(t, "Septiembre", w.Month)
	assert.Equal(t, 2025, w.Year)

	assertConservation(t, w, 3)
}

func TestProcess_ZeroDayIsNeverToppedUp(t *testing.T) {
	// A day with no real hours is not a top-up target, and 3h of pool is
	// not enough to generate a 7h day either.
	w := processWeek(t, []map[string]any{
		row("Ana", "FICHAJE", 7, "2025-09-01"),
		row("Ana", "PRODUCTIVIDAD", 3, "2025-09-02"),
	})

	tuesday := dayByDate(t, w, "2025-09-02")
	assert.Equal(t, 0.0, tuesday.ClockIn.Float64())
	assert.Equal(t, 3.0, tuesday.Productivity.Float64())
	assert.Empty(t, w.Transfers)
	assertConservation(t, w, 3)
}

func TestProcess_CompletesSixDayWeek(t *testing.T) {
	// GIVEN: Mon-Fri with 7h real each and 7h productivity on Monday
	// WHEN: processing that week (outside the flexible window)
	// THEN: Saturday is generated to reach 6 worked days; Sunday stays rest
	rows := []map[string]any{row("Ana", "PRODUCTIVIDAD", 7, "2025-09-01")}
	for day := 1; day <= 5; day++ {
		rows = append(rows, row("Ana", "FICHAJE", 7, fmt.Sprintf("2025-09-0%d", day)))
	}

	w := processWeek(t, rows)

	saturday := dayByDate(t, w, "2025-09-06")
	assert.Equal(t, 7.0, saturday.ClockIn.Float64())
	assert.Equal(t, 7.0, saturday.Transferred.Float64())
	assert.Contains(t, saturday.Notes, NoteGeneratedDay)

	sunday := dayByDate(t, w, "2025-09-07")
	assert.Equal(t, 0.0, sunday.ClockIn.Float64())

	require.Len(t, w.Transfers, 1)
	assert.Equal(t, ReasonCompleteWeek, w.Transfers[0].Reason)

	assert.Empty(t, w.Warnings)
	assert.Equal(t, 42.0, w.Totals.ClockIn.Float64())
	assertConservation(t, w, 7)
}

func TestProcess_SundayCountsTowardSixDays(t *testing.T) {
	// Mon-Fri plus a real-hours Sunday is already 6 worked days, so no
	// Saturday is generated even though the pool could afford one.
	rows := []map[string]any{row("Ana", "PRODUCTIVIDAD", 7, "2025-09-01")}
	for day := 1; day <= 5; day++ {
		rows = append(rows, row("Ana", "FICHAJE", 7, fmt.Sprintf("2025-09-0%d", day)))
	}
	rows = append(rows, row("Ana", "FICHAJE", 7, "2025-09-07"))

	w := processWeek(t, rows)

	assert.Equal(t, 0.0, dayByDate(t, w, "2025-09-06").ClockIn.Float64())
	assert.Equal(t, 7.0, w.Totals.Productivity.Float64(), "pool untouched")
}

func TestProcess_SevenRealDays_Unresolvable(t *testing.T) {
	// GIVEN: seven real 7h days in one week, outside the flexible window
	// WHEN: processing
	// THEN: nothing is freed (real hours are untouchable) and the state is
	//       surfaced through warnings instead
	var rows []map[string]any
	for day := 1; day <= 7; day++ {
		rows = append(rows, row("Ana", "FICHAJE", 7, fmt.Sprintf("2025-09-0%d", day)))
	}

	w := processWeek(t, rows)

	for day := 1; day <= 7; day++ {
		d := dayByDate(t, w, fmt.Sprintf("2025-09-0%d", day))
		assert.Equal(t, 7.0, d.ClockIn.Float64(), "real day %d must stay intact", day)
		assert.NotContains(t, d.Notes, NoteWeeklyRest)
	}

	require.Len(t, w.Warnings, 2)
	assert.True(t, strings.HasPrefix(w.Warnings[0], "Semana 2025-09-01"), "over-cap warning: %s", w.Warnings[0])
	assert.Equal(t,
		"Domingo 2025-09-07 con fichaje real fuera de periodo flexible (no se puede imponer descanso)",
		w.Warnings[1])
}

func TestProcess_SundayNotToppedUpOutsideFlexibleWindow(t *testing.T) {
	// A short real Sunday outside the flexible window is left alone and
	// reported, never topped up.
	w := processWeek(t, []map[string]any{
		row("Ana", "FICHAJE", 3, "2025-09-07"),
		row("Ana", "PRODUCTIVIDAD", 5, "2025-09-07"),
	})

	sunday := dayByDate(t, w, "2025-09-07")
	assert.Equal(t, 3.0, sunday.ClockIn.Float64())
	assert.Equal(t, 5.0, sunday.Productivity.Float64())
	require.Len(t, w.Warnings, 1)
	assert.Contains(t, w.Warnings[0], "Domingo 2025-09-07")
}

func TestProcess_SundayGeneratedInsideFlexibleWindow(t *testing.T) {
	// GIVEN: a range that is a single Sunday inside the default Feb-Jun
	//        window, with 7h of productivity available
	// WHEN: processing
	// THEN: that Sunday may be generated as a working day
	res, err := Process(ProcessInput{
		Records:   []map[string]any{row("Ana", "PRODUCTIVIDAD", 7, "2026-03-08")},
		StartDate: "2026-03-08",
		EndDate:   "2026-03-08",
	})
	require.NoError(t, err)
	require.Len(t, res.Workers, 1)

	sunday := res.Workers[0].Days[0]
	assert.Equal(t, "Domingo", sunday.Weekday)
	assert.Equal(t, 7.0, sunday.ClockIn.Float64())
	assert.Contains(t, sunday.Notes, NoteGeneratedDay)
	assert.Empty(t, res.Workers[0].Warnings)
}

func TestProcess_SundayRestDisabled(t *testing.T) {
	// With enforcement off, a short Sunday is topped up like any other day
	// and no warning fires.
	off := false
	res, err := Process(ProcessInput{
		Records: []map[string]any{
			row("Ana", "FICHAJE", 3, "2025-09-07"),
			row("Ana", "PRODUCTIVIDAD", 5, "2025-09-07"),
		},
		StartDate:         "2025-09-01",
		EndDate:           "2025-09-07",
		EnforceSundayRest: &off,
	})
	require.NoError(t, err)

	w := res.Workers[0]
	sunday := dayByDate(t, w, "2025-09-07")
	assert.Equal(t, 7.0, sunday.ClockIn.Float64())
	assert.Equal(t, 4.0, sunday.Transferred.Float64())
	assert.Empty(t, w.Warnings)
}

func TestProcess_WorkersIndependentAndOrdered(t *testing.T) {
	// Two workers share nothing: each has their own pool. Output order is
	// input encounter order, not alphabetical.
	w := []map[string]any{
		row("Zoe", "FICHAJE", 5, "2025-09-01"),
		row("Ana", "FICHAJE", 5, "2025-09-01"),
		row("Zoe", "PRODUCTIVIDAD", 2, "2025-09-01"),
	}
	res, err := Process(ProcessInput{Records: w, StartDate: "2025-09-01", EndDate: "2025-09-07"})
	require.NoError(t, err)
	require.Len(t, res.Workers, 2)

	assert.Equal(t, "Zoe", res.Workers[0].Worker)
	assert.Equal(t, "Ana", res.Workers[1].Worker)

	// Zoe's 2h pool tops her Monday to 7; Ana has no pool at all.
	assert.Equal(t, 7.0, dayByDate(t, res.Workers[0], "2025-09-01").ClockIn.Float64())
	assert.Equal(t, 5.0, dayByDate(t, res.Workers[1], "2025-09-01").ClockIn.Float64())
}

func TestProcess_MonthNameFromRangeStart(t *testing.T) {
	res, err := Process(ProcessInput{
		Records:   []map[string]any{row("Ana", "FICHAJE", 7, "2026-03-02")},
		StartDate: "2026-03-01",
		EndDate:   "2026-03-31",
	})
	require.NoError(t, err)
	assert.Equal(t, "Marzo", res.Workers[0].Month)
	assert.Equal(t, 2026, res.Workers[0].Year)
	assert.Len(t, res.Workers[0].Days, 31)
}

func TestProcess_DecimalcommaAndDrift(t *testing.T) {
	// Comma decimals parse, and repeated rounding keeps two-decimal totals.
	w := processWeek(t, []map[string]any{
		row("Ana", "FICHAJE", "5,25", "2025-09-01"),
		row("Ana", "PRODUCTIVIDAD", "1,1", "2025-09-02"),
		row("Ana", "PRODUCTIVIDAD", "0,9", "2025-09-03"),
	})

	monday := dayByDate(t, w, "2025-09-01")
	assert.Equal(t, 7.0, monday.ClockIn.Float64(), "5.25 + 1.1 + 0.9 - 0.25 left in pool")
	assert.Equal(t, 1.75, monday.Transferred.Float64())
	assertConservation(t, w, 2.0)
}
