/*
normalize.go - Record normalization

PURPOSE:
  Turns the loosely-typed input rows into fixed-shape Records: resolves
  field-name aliases, parses heterogeneous dates and locale decimals,
  converts instants to calendar days in the configured time zone, filters
  to the requested range and worker, and groups by worker key.

ALIASING:
  Source rows use Spanish field names with inconsistent casing. Each
  logical field has an ordered list of accepted keys, resolved once here;
  the allocator never sees raw rows.

FAILURE MODE:
  A row with an unparseable date is dropped silently. Unparseable hour
  values become zero. Normalization never returns an error.
*/
package nomina

import (
	"fmt"
	"time"
)

// Accepted key variants per logical field, in resolution order.
var (
	workerNameKeys = []string{"trabajador", "TRABAJADOR", "Trabajador"}
	categoryKeys   = []string{"categoria", "CATEGORÍA", "CATEGORIA"}
	hoursKeys      = []string{"horas", "HORAS"}
)

const (
	dateKey     = "fecha"
	workerIDKey = "trabajador_id"
)

// dateLayouts are tried in order when parsing date fields.
var dateLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"02-01-2006",
}

// parseDateValue parses a loose date value. Layouts without an offset are
// interpreted as UTC.
func parseDateValue(v any) (time.Time, error) {
	if t, ok := v.(time.Time); ok {
		return t, nil
	}
	s := stringify(v)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

// localDate resolves a loose date value to a calendar day in loc.
func localDate(v any, loc *time.Location) (Date, error) {
	t, err := parseDateValue(v)
	if err != nil {
		return Date{}, err
	}
	return DateOf(t.In(loc)), nil
}

// fieldValue returns the first present, non-empty value among the aliases.
func fieldValue(row map[string]any, keys ...string) any {
	for _, k := range keys {
		v, ok := row[k]
		if !ok || v == nil {
			continue
		}
		if s, isStr := v.(string); isStr && s == "" {
			continue
		}
		return v
	}
	return nil
}

func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// normalizedWorker is one worker's records, keyed and in input order.
type normalizedWorker struct {
	key     string
	records []Record
}

// normalizeRecords parses, filters and groups the input rows. Workers come
// back in the order they were first encountered; that order is observable
// in the final output.
func normalizeRecords(rows []map[string]any, rng DateRange, loc *time.Location, sel *WorkerSelector) []normalizedWorker {
	var workers []normalizedWorker
	index := make(map[string]int)

	for _, row := range rows {
		day, err := localDate(row[dateKey], loc)
		if err != nil {
			continue // drop the row, keep going
		}
		if !rng.Contains(day) {
			continue
		}

		name := stringify(fieldValue(row, workerNameKeys...))
		id := row[workerIDKey]
		if !sel.matches(name, id) {
			continue
		}

		rec := Record{
			WorkerName: name,
			WorkerID:   id,
			Category:   classifyCategory(fieldValue(row, categoryKeys...)),
			Hours:      ParseHours(fieldValue(row, hoursKeys...)),
			Date:       day,
		}

		key := rec.workerKey()
		i, seen := index[key]
		if !seen {
			i = len(workers)
			index[key] = i
			workers = append(workers, normalizedWorker{key: key})
		}
		workers[i].records = append(workers[i].records, rec)
	}
	return workers
}
