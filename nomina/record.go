package nomina

import (
	"fmt"
	"strings"
)

// =============================================================================
// CATEGORIES
// =============================================================================

// Category is the kind of hours a record carries.
type Category string

const (
	// CategoryClockIn is real time-tracking data ("fichaje"). Ground truth:
	// the allocator never fabricates or removes it.
	CategoryClockIn Category = "FICHAJE"

	// CategoryProductivity is discretionary hours available for
	// redistribution.
	CategoryProductivity Category = "PRODUCTIVIDAD"
)

// classifyCategory maps a loose category label onto a Category. Any value
// containing a productivity marker is productivity; everything else,
// including unknown labels, defaults to clock-in.
func classifyCategory(v any) Category {
	if strings.Contains(strings.ToUpper(stringify(v)), "PROD") {
		return CategoryProductivity
	}
	return CategoryClockIn
}

// =============================================================================
// RECORD - One normalized input row
// =============================================================================

// Record is a single normalized hour entry. Immutable once built.
type Record struct {
	WorkerName string
	WorkerID   any // loosely typed id from the source row, may be nil
	Category   Category
	Hours      Hours
	Date       Date
}

// workerKey groups records: the worker name when present, otherwise a
// synthetic key derived from the id.
func (r Record) workerKey() string {
	if r.WorkerName != "" {
		return r.WorkerName
	}
	return fmt.Sprintf("ID:%v", r.WorkerID)
}

// =============================================================================
// WORKER SELECTOR
// =============================================================================

// WorkerSelector restricts processing to a single worker, either by exact
// numeric id or by case-insensitive trimmed name.
type WorkerSelector struct {
	id   *float64
	name string
}

func SelectByID(id float64) *WorkerSelector    { return &WorkerSelector{id: &id} }
func SelectByName(name string) *WorkerSelector { return &WorkerSelector{name: name} }

// ParseWorkerSelector builds a selector from a loosely-typed filter value.
// Nil or an empty string means no filtering.
func ParseWorkerSelector(v any) *WorkerSelector {
	switch x := v.(type) {
	case nil:
		return nil
	case float64:
		return SelectByID(x)
	case int:
		return SelectByID(float64(x))
	case int64:
		return SelectByID(float64(x))
	case string:
		if strings.TrimSpace(x) == "" {
			return nil
		}
		return SelectByName(x)
	default:
		return SelectByName(stringify(v))
	}
}

func (s *WorkerSelector) matches(name string, id any) bool {
	if s == nil {
		return true
	}
	if s.id != nil {
		f, ok := asFloat(id)
		return ok && f == *s.id
	}
	return strings.EqualFold(strings.TrimSpace(name), strings.TrimSpace(s.name))
}

func asFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	default:
		return 0, false
	}
}
